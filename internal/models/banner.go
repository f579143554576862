package models

import (
	"sync/atomic"

	"github.com/patrickwarner/bannerrotator/internal/render"
)

// Banner is a single rotated inventory item. URL and Total never change
// after creation; the remaining impression count is the only mutable state
// and is depleted exclusively through the compare-and-swap loop in Show, so
// a Banner is safe for unbounded concurrent use without locking.
type Banner struct {
	URL   string
	Total int32

	remaining atomic.Int32
}

// NewBanner creates a banner with its full impression budget available.
func NewBanner(url string, total int32) *Banner {
	b := &Banner{URL: url, Total: total}
	b.remaining.Store(total)
	return b
}

// Show consumes one impression and returns the rendered markup. It fails
// without blocking when the budget is exhausted, including when a concurrent
// caller wins the race for the last impression. Successful calls can never
// exceed Total, regardless of contention.
func (b *Banner) Show() (string, bool) {
	for {
		left := b.remaining.Load()
		if left <= 0 {
			return "", false
		}
		if b.remaining.CompareAndSwap(left, left-1) {
			return render.BannerHTML(b.URL), true
		}
	}
}

// CanShow reports whether the banner still has impressions left. It is a
// plain snapshot read: the answer may already be stale when a subsequent
// Show is attempted, so it is only useful as a best-effort pre-filter.
func (b *Banner) CanShow() bool {
	return b.remaining.Load() > 0
}

// Remaining returns the current impression budget snapshot.
func (b *Banner) Remaining() int32 {
	return b.remaining.Load()
}
