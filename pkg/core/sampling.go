package core

import "math/rand"

// Sampler provides random numbers to the tracing algorithms.
// Can be swapped out for deterministic testing.
type Sampler interface {
	Get1D() float64
	Get2D() Point
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a RandomSampler with a fixed seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Point {
	return NewPoint(r.random.Float64(), r.random.Float64())
}

// FixedSampler always returns the same values
type FixedSampler struct {
	Value float64
}

// Get1D returns the fixed value
func (f FixedSampler) Get1D() float64 { return f.Value }

// Get2D returns the fixed value in both coordinates
func (f FixedSampler) Get2D() Point { return NewPoint(f.Value, f.Value) }
