package inventory

import (
	"fmt"
	"sort"

	"github.com/patrickwarner/bannerrotator/internal/models"
)

// Store holds the full banner inventory. The loader builds it single
// threaded, one AddBanner call per record, then calls Freeze. From that
// point on the banner list, the category index and the global weight table
// are immutable and safe for unbounded concurrent Select calls without
// locking; the only state that keeps changing is each banner's remaining
// impression count, which models.Banner depletes atomically.
//
// A banner's position in the list is its permanent identity. Positions are
// never reused, and the category index refers to banners by position.
type Store struct {
	banners []*models.Banner
	index   map[string][]int
	global  *CumulativeWeights
	frozen  bool
}

// NewStore creates an empty, unfrozen store.
func NewStore() *Store {
	return &Store{
		index:  make(map[string][]int),
		global: NewCumulativeWeights(),
	}
}

// AddBanner validates and appends one banner. A rejected record leaves the
// store completely untouched. AddBanner belongs to the load phase: calling
// it after Freeze is a contract violation and panics.
func (s *Store) AddBanner(url string, total int32, categories []string) error {
	if s.frozen {
		panic("inventory: AddBanner called after Freeze")
	}
	if url == "" {
		return ErrIllegalURL
	}
	if total <= 0 {
		return ErrIllegalImpressionAmount
	}
	if len(categories) == 0 {
		return ErrEmptyCategories
	}

	pos := len(s.banners)
	s.banners = append(s.banners, models.NewBanner(url, total))
	for _, category := range categories {
		s.index[category] = append(s.index[category], pos)
	}
	s.global.AddWeight(total)
	return nil
}

// Freeze ends the load phase. The store may be shared with concurrent
// readers only after Freeze returns.
func (s *Store) Freeze() {
	s.frozen = true
}

// Len reports the number of loaded banners.
func (s *Store) Len() int {
	return len(s.banners)
}

// Select picks one banner with probability proportional to its declared
// impression budget and consumes one impression from it, returning the
// rendered markup. An empty category list draws from the whole inventory;
// otherwise only banners tagged with at least one requested category and
// not already exhausted are candidates. Candidate weights are always the
// declared totals, never the shrinking remainders; depletion only ever
// removes a banner from candidacy, it never re-weights the others.
//
// Select never retries: when the drawn banner loses the race for its last
// impression the caller gets a miss, even though other eligible banners
// existed when the call began. The eligibility snapshot and the depletion
// attempt are deliberately two separate steps.
func (s *Store) Select(categories []string) (string, bool) {
	weights := s.global
	if len(categories) > 0 {
		candidates := s.filter(categories)
		if len(candidates) == 0 {
			return "", false
		}
		weights = NewProjectedWeights(len(candidates))
		for _, pos := range candidates {
			weights.AddWeightForIndex(s.banner(pos).Total, pos)
		}
	}

	pos, ok := weights.SelectUniformly()
	if !ok {
		return "", false
	}
	return s.banner(pos).Show()
}

// filter unions the position lists of the requested categories, dropping
// duplicates and banners that currently read exhausted. Unknown categories
// contribute nothing. The result is sorted ascending so a seeded random
// source reproduces the same draw across runs.
func (s *Store) filter(categories []string) []int {
	seen := make(map[int]struct{})
	for _, category := range categories {
		for _, pos := range s.index[category] {
			if s.banner(pos).CanShow() {
				seen[pos] = struct{}{}
			}
		}
	}

	candidates := make([]int, 0, len(seen))
	for pos := range seen {
		candidates = append(candidates, pos)
	}
	sort.Ints(candidates)
	return candidates
}

// banner resolves an indexed position. An out-of-range position means the
// append-only contract was broken somewhere, so fail fast.
func (s *Store) banner(pos int) *models.Banner {
	if pos < 0 || pos >= len(s.banners) {
		panic(fmt.Sprintf("inventory: index references banner %d, store has %d", pos, len(s.banners)))
	}
	return s.banners[pos]
}
