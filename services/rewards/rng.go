package rewards

import (
	"math/rand/v2"
	"sync"
)

// RandomSource abstracts the randomness used by the sampler and allocator
type RandomSource interface {
	Float64() float64     // [0, 1)
	NormFloat64() float64 // standard normal
	IntN(n int) int       // [0, n)
}

// global math/rand/v2 functions: safe for concurrent requests
type defaultRNG struct{}

func (defaultRNG) Float64() float64     { return rand.Float64() }
func (defaultRNG) NormFloat64() float64 { return rand.NormFloat64() }
func (defaultRNG) IntN(n int) int       { return rand.IntN(n) }

func DefaultRNG() RandomSource { return defaultRNG{} }

// Replicable RNG (tests, simulations)
type seededRNG struct {
	mu sync.Mutex
	r  *rand.Rand
}

func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

func (s *seededRNG) NormFloat64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.NormFloat64()
}

func (s *seededRNG) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

// weightedIndex picks an index proportionally to weights. Returns -1 when the
// total weight is not positive.
func weightedIndex(rng RandomSource, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}
	r := rng.Float64() * total
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		last = i
		if r < w {
			return i
		}
		r -= w
	}
	// float rounding
	return last
}
