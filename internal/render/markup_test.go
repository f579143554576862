package render

import "testing"

func TestBannerHTML(t *testing.T) {
	got := BannerHTML("http://banners.com/banner1.jpg")
	want := `<html><body><img src="http://banners.com/banner1.jpg"/></body></html>`
	if got != want {
		t.Fatalf("markup %q, want %q", got, want)
	}
}

func TestBannerHTML_NoEscaping(t *testing.T) {
	// The URL is passed through verbatim, byte for byte.
	got := BannerHTML(`http://x/?a=1&b="quoted"`)
	want := `<html><body><img src="http://x/?a=1&b="quoted""/></body></html>`
	if got != want {
		t.Fatalf("markup %q, want %q", got, want)
	}
}
