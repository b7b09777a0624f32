package engine

import "math/rand"

// countingSource counts every value drawn from the underlying source so the
// exact stream position survives save/load, rejection sampling included.
type countingSource struct {
	src rand.Source
	n   int64
}

func (s *countingSource) Int63() int64 {
	s.n++
	return s.src.Int63()
}

func (s *countingSource) Seed(seed int64) {
	s.src.Seed(seed)
	s.n = 0
}

// RNG wraps math/rand.Rand with deterministic position tracking.
type RNG struct {
	seed int64
	cs   *countingSource
	src  *rand.Rand
}

// NewRNG creates a new deterministic RNG from a seed.
func NewRNG(seed int64) *RNG {
	cs := &countingSource{src: rand.NewSource(seed)}
	return &RNG{
		seed: seed,
		cs:   cs,
		src:  rand.New(cs),
	}
}

// Between returns a uniform random integer in [lo, hi]. If hi < lo the
// range collapses to lo.
func (r *RNG) Between(lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	return lo + r.src.Intn(hi-lo+1)
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Position returns the number of values drawn from the source since creation.
func (r *RNG) Position() int64 {
	return r.cs.n
}

// RestoreRNG creates an RNG and advances it to the given position.
// This reproduces the exact RNG state for save/load.
func RestoreRNG(seed int64, position int64) *RNG {
	rng := NewRNG(seed)
	for i := int64(0); i < position; i++ {
		rng.cs.Int63()
	}
	return rng
}
