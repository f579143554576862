package inventory

import (
	"math/rand"
	"sort"
)

// randInt63n is the random source for weighted draws. Tests swap it out for
// a seeded or scripted source to make selection reproducible.
var randInt63n = rand.Int63n

// CumulativeWeights performs O(log N) weighted random selection over an
// ordered list of candidates using prefix sums.
//
// The table comes in two variants. An identity table covers every banner in
// load order, so a table position is a banner position. A projected table
// covers a filtered subset and carries an explicit position list translating
// table positions back to banner positions. The two differ only in that
// final translation step.
type CumulativeWeights struct {
	sums []uint64
	// projection maps table position to banner position. nil means identity.
	projection []int
}

// NewCumulativeWeights creates an identity table.
func NewCumulativeWeights() *CumulativeWeights {
	return &CumulativeWeights{}
}

// NewProjectedWeights creates a projected table sized for n entries.
func NewProjectedWeights(n int) *CumulativeWeights {
	return &CumulativeWeights{projection: make([]int, 0, n)}
}

// AddWeight appends a weight to an identity table. Calling it on a projected
// table breaks the table's position contract and panics.
func (c *CumulativeWeights) AddWeight(weight int32) {
	if c.projection != nil {
		panic("inventory: AddWeight on a projected weight table")
	}
	c.push(weight)
}

// AddWeightForIndex appends a weight for the banner at position idx to a
// projected table. Calling it on an identity table panics.
func (c *CumulativeWeights) AddWeightForIndex(weight int32, idx int) {
	if c.projection == nil {
		panic("inventory: AddWeightForIndex on an identity weight table")
	}
	c.projection = append(c.projection, idx)
	c.push(weight)
}

func (c *CumulativeWeights) push(weight int32) {
	var last uint64
	if n := len(c.sums); n > 0 {
		last = c.sums[n-1]
	}
	c.sums = append(c.sums, last+uint64(weight))
}

// SelectUniformly draws one entry with probability proportional to its
// weight and returns the underlying banner position. An empty table yields
// no selection; a single entry is returned without consuming randomness.
// Otherwise a uniform integer r is drawn from the closed interval [0, W]
// where W is the total weight, and the smallest prefix sum >= r wins.
func (c *CumulativeWeights) SelectUniformly() (int, bool) {
	if len(c.sums) == 0 {
		return 0, false
	}
	idx := 0
	if len(c.sums) > 1 {
		total := c.sums[len(c.sums)-1]
		r := uint64(randInt63n(int64(total) + 1))
		idx = sort.Search(len(c.sums), func(i int) bool { return c.sums[i] >= r })
	}
	return c.project(idx), true
}

// Len reports the number of table entries.
func (c *CumulativeWeights) Len() int {
	return len(c.sums)
}

func (c *CumulativeWeights) project(idx int) int {
	if c.projection == nil {
		return idx
	}
	return c.projection[idx]
}
