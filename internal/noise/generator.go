// Package noise provides the reproducible pseudo-random stream used to jitter
// synthetic training data. It is a chaotic sine map, not a statistically
// rigorous generator: fine for visual noise, nothing more.
package noise

import "math"

// SineGenerator yields frac(sin(seed)*10000) after advancing seed by one
type SineGenerator struct {
	seed int64
}

// NewSineGenerator starts a stream at seed
func NewSineGenerator(seed int64) *SineGenerator {
	return &SineGenerator{seed: seed}
}

// Next advances the state and returns the next sample in [0, 1)
func (g *SineGenerator) Next() float64 {
	g.seed++
	v := math.Sin(float64(g.seed)) * 10000
	return v - math.Floor(v)
}

// Seed returns the current state
func (g *SineGenerator) Seed() int64 {
	return g.seed
}
