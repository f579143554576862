package inventory

import (
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/patrickwarner/bannerrotator/internal/render"
)

func TestAddBanner_Validation(t *testing.T) {
	cases := []struct {
		name       string
		url        string
		total      int32
		categories []string
		wantErr    error
	}{
		{"empty url", "", 1, []string{"x"}, ErrIllegalURL},
		{"zero amount", "http://a/1.jpg", 0, []string{"x"}, ErrIllegalImpressionAmount},
		{"negative amount", "http://a/1.jpg", -3, []string{"x"}, ErrIllegalImpressionAmount},
		{"no categories", "http://a/1.jpg", 1, nil, ErrEmptyCategories},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewStore()
			if err := s.AddBanner(c.url, c.total, c.categories); err != c.wantErr {
				t.Fatalf("expected %v, got %v", c.wantErr, err)
			}
			if s.Len() != 0 {
				t.Fatalf("rejected record mutated the store: %d banners", s.Len())
			}
		})
	}
}

func TestAddBanner_AfterFreezePanics(t *testing.T) {
	s := NewStore()
	s.Freeze()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	_ = s.AddBanner("http://a/1.jpg", 1, []string{"x"})
}

func TestSelect_DepletesBudget(t *testing.T) {
	s := NewStore()
	if err := s.AddBanner("http://a/1.jpg", 2, []string{"x"}); err != nil {
		t.Fatalf("add banner: %v", err)
	}
	if err := s.AddBanner("http://b/1.jpg", 1, []string{"y"}); err != nil {
		t.Fatalf("add banner: %v", err)
	}
	s.Freeze()

	for i := 0; i < 2; i++ {
		html, ok := s.Select([]string{"x"})
		if !ok {
			t.Fatalf("serve %d for x: expected a banner", i+1)
		}
		if !strings.Contains(html, "http://a/1.jpg") {
			t.Fatalf("serve %d for x: wrong banner: %q", i+1, html)
		}
	}
	if _, ok := s.Select([]string{"x"}); ok {
		t.Fatal("third serve for x should be empty")
	}

	html, ok := s.Select([]string{"y"})
	if !ok || !strings.Contains(html, "http://b/1.jpg") {
		t.Fatalf("serve for y: got %q ok=%v", html, ok)
	}
	if _, ok := s.Select([]string{"y"}); ok {
		t.Fatal("second serve for y should be empty")
	}
}

func TestSelect_SharedCategory(t *testing.T) {
	s := NewStore()
	if err := s.AddBanner("http://a/1.jpg", 1, []string{"z"}); err != nil {
		t.Fatalf("add banner: %v", err)
	}
	if err := s.AddBanner("http://b/1.jpg", 1, []string{"z"}); err != nil {
		t.Fatalf("add banner: %v", err)
	}
	s.Freeze()

	served := make(map[string]int)
	for i := 0; i < 2; i++ {
		html, ok := s.Select([]string{"z"})
		if !ok {
			t.Fatalf("serve %d for z: expected a banner", i+1)
		}
		served[html]++
	}

	if len(served) != 2 {
		t.Fatalf("expected both banners served exactly once, got %v", served)
	}
	if _, ok := s.Select([]string{"z"}); ok {
		t.Fatal("third serve for z should be empty")
	}
}

func TestSelect_UnknownCategory(t *testing.T) {
	s := NewStore()
	if err := s.AddBanner("http://a/1.jpg", 1, []string{"x"}); err != nil {
		t.Fatalf("add banner: %v", err)
	}
	s.Freeze()

	if _, ok := s.Select([]string{"missing"}); ok {
		t.Fatal("expected no banner for an unknown category")
	}
}

func TestSelect_SkipsExhaustedCandidates(t *testing.T) {
	s := NewStore()
	if err := s.AddBanner("http://a/1.jpg", 1, []string{"x"}); err != nil {
		t.Fatalf("add banner: %v", err)
	}
	if err := s.AddBanner("http://b/1.jpg", 5, []string{"x"}); err != nil {
		t.Fatalf("add banner: %v", err)
	}
	s.Freeze()

	// Force the draw onto position 0 until it is exhausted.
	stubRand(t, func(int64) int64 { return 0 })

	html, ok := s.Select([]string{"x"})
	if !ok || !strings.Contains(html, "http://a/1.jpg") {
		t.Fatalf("expected banner a first, got %q ok=%v", html, ok)
	}

	// Banner a is now exhausted: the filter must drop it, leaving b as the
	// only candidate regardless of the draw.
	for i := 0; i < 5; i++ {
		html, ok := s.Select([]string{"x"})
		if !ok || !strings.Contains(html, "http://b/1.jpg") {
			t.Fatalf("serve %d: expected banner b, got %q ok=%v", i+1, html, ok)
		}
	}
}

func TestSelect_GlobalDrawHasNoEligibilityFilter(t *testing.T) {
	s := NewStore()
	if err := s.AddBanner("http://a/1.jpg", 1, []string{"x"}); err != nil {
		t.Fatalf("add banner: %v", err)
	}
	if err := s.AddBanner("http://b/1.jpg", 5, []string{"y"}); err != nil {
		t.Fatalf("add banner: %v", err)
	}
	s.Freeze()

	if _, ok := s.Select([]string{"x"}); !ok {
		t.Fatal("expected to exhaust banner a")
	}

	// The whole-inventory draw keeps the exhausted banner's weight in the
	// table; landing on it is a miss even though banner b has budget left.
	stubRand(t, func(int64) int64 { return 0 })
	if _, ok := s.Select(nil); ok {
		t.Fatal("expected a miss when the draw lands on an exhausted banner")
	}
}

func TestSelect_DistributionMatchesWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	stubRand(t, rng.Int63n)

	s := NewStore()
	banners := []struct {
		url   string
		total int32
	}{
		{"http://a/1.jpg", 10000},
		{"http://b/1.jpg", 20000},
		{"http://c/1.jpg", 70000},
	}
	var sum float64
	for _, b := range banners {
		if err := s.AddBanner(b.url, b.total, []string{"all"}); err != nil {
			t.Fatalf("add banner: %v", err)
		}
		sum += float64(b.total)
	}
	s.Freeze()

	const draws = 10000
	counts := make(map[string]int)
	for i := 0; i < draws; i++ {
		html, ok := s.Select(nil)
		if !ok {
			t.Fatal("expected a banner from the whole inventory")
		}
		counts[html]++
	}

	for _, b := range banners {
		want := float64(b.total) / sum
		got := float64(counts[render.BannerHTML(b.url)]) / draws
		if diff := got - want; diff < -0.02 || diff > 0.02 {
			t.Fatalf("%s: frequency %.3f, want %.3f +/- 0.02", b.url, got, want)
		}
	}
}

func TestSelect_ConcurrentLastImpression(t *testing.T) {
	s := NewStore()
	if err := s.AddBanner("http://a/1.jpg", 1, []string{"c"}); err != nil {
		t.Fatalf("add banner: %v", err)
	}
	s.Freeze()

	const racers = 32
	var wg sync.WaitGroup
	results := make(chan bool, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok := s.Select([]string{"c"})
			results <- ok
		}()
	}
	wg.Wait()
	close(results)

	successes := 0
	for ok := range results {
		if ok {
			successes++
		}
	}
	if successes != 1 {
		t.Fatalf("expected exactly one success among racers, got %d", successes)
	}
}

func TestSelect_ConcurrentNeverExceedsTotal(t *testing.T) {
	const total = 100

	s := NewStore()
	if err := s.AddBanner("http://a/1.jpg", total, []string{"c"}); err != nil {
		t.Fatalf("add banner: %v", err)
	}
	s.Freeze()

	const workers = 8
	const attempts = 50
	var wg sync.WaitGroup
	results := make(chan bool, workers*attempts)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < attempts; j++ {
				_, ok := s.Select([]string{"c"})
				results <- ok
			}
		}()
	}
	wg.Wait()
	close(results)

	successes := 0
	for ok := range results {
		if ok {
			successes++
		}
	}
	if successes != total {
		t.Fatalf("expected %d successful serves, got %d", total, successes)
	}
	if _, ok := s.Select([]string{"c"}); ok {
		t.Fatal("budget exceeded: serve succeeded after depletion")
	}
}

func TestSelect_DeduplicatesAcrossCategories(t *testing.T) {
	s := NewStore()
	if err := s.AddBanner("http://a/1.jpg", 1, []string{"x", "y"}); err != nil {
		t.Fatalf("add banner: %v", err)
	}
	s.Freeze()

	html, ok := s.Select([]string{"x", "y"})
	if !ok || !strings.Contains(html, "http://a/1.jpg") {
		t.Fatalf("expected banner a, got %q ok=%v", html, ok)
	}
	if _, ok := s.Select([]string{"x", "y"}); ok {
		t.Fatal("expected only one impression from a single-budget banner")
	}
}
