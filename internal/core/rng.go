package core

import "math/rand/v2"

// Source yields uniform values in [0, 1). Simulations take a Source so tests
// can script the exact sequence of draws.
type Source interface {
	Float64() float64
}

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Float64 returns a value in [0, 1).
func (r *RNG) Float64() float64 {
	return r.r.Float64()
}

// Range draws a value in [min, max) from src. A collapsed or inverted range
// returns min without consuming a draw.
func Range(src Source, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + (max-min)*src.Float64()
}

// Sign returns +1 or -1 with equal probability.
func Sign(src Source) float64 {
	if src.Float64() > 0.5 {
		return 1
	}
	return -1
}

// Sequence replays a fixed list of draws, cycling when exhausted. It is meant
// for tests that need to force particular branches.
type Sequence struct {
	values []float64
	pos    int
}

// NewSequence returns a Sequence over values. An empty list always yields 0.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

// Float64 returns the next scripted value.
func (s *Sequence) Float64() float64 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v
}

// Draws reports how many values have been consumed.
func (s *Sequence) Draws() int { return s.pos }
