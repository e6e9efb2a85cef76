package engine

import (
	"math/rand"
	"time"
)

// Source supplies the randomness combat consumes: a uniform float in [0,1)
// for probability checks and an inclusive integer range for variance rolls.
// Injecting it keeps every combat outcome reproducible under a fixed seed.
type Source interface {
	Float64() float64
	Between(min, max int) int
}

type randSource struct {
	r *rand.Rand
}

// NewSource returns a deterministic Source for the given seed.
func NewSource(seed int64) Source {
	return &randSource{r: rand.New(rand.NewSource(seed))}
}

// SystemSource returns a Source seeded from the wall clock.
func SystemSource() Source {
	return NewSource(time.Now().UnixNano())
}

func (s *randSource) Float64() float64 { return s.r.Float64() }

func (s *randSource) Between(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.r.Intn(max-min+1)
}

// clamp bounds v to [lo, hi].
func clamp(lo, hi, v float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
