package render

const (
	htmlPrefix = `<html><body><img src="`
	htmlSuffix = `"/></body></html>`
)

// BannerHTML wraps a banner URL in the fixed serving markup. The URL is
// embedded verbatim, with no escaping: clients must receive the exact bytes
// that were loaded from the banners config.
func BannerHTML(url string) string {
	return htmlPrefix + url + htmlSuffix
}
