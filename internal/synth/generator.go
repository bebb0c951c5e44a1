// Package synth builds the noisy training set the playground fits against.
package synth

import (
	"math"

	"fitlab/domain/playground"
	"fitlab/internal/errors"
	"fitlab/internal/noise"
	"fitlab/ports"
)

// Domain bounds of the training data
const (
	DomainLo = -2.0
	DomainHi = 2.0
)

type Config struct {
	NumPoints  int
	NoiseLevel float64
	Seed       int64
}

func DefaultConfig() Config {
	return Config{
		NumPoints:  30,
		NoiseLevel: 0.3,
		Seed:       1,
	}
}

// Generate samples the ground truth at NumPoints evenly spaced x-values over
// [-2, 2] and jitters each y uniformly within ±NoiseLevel. The same config
// always yields the same set.
func Generate(cfg Config) (*playground.TrainingSet, error) {
	if cfg.NumPoints < 2 {
		return nil, errors.InvalidInputf("numPoints must be >= 2, got %d", cfg.NumPoints)
	}
	if math.IsNaN(cfg.NoiseLevel) || math.IsInf(cfg.NoiseLevel, 0) || cfg.NoiseLevel < 0 {
		return nil, errors.InvalidInputf("noise level must be a finite value >= 0, got %v", cfg.NoiseLevel)
	}

	return generateFrom(cfg, noise.NewSineGenerator(cfg.Seed)), nil
}

func generateFrom(cfg Config, src ports.NoiseSource) *playground.TrainingSet {
	points := make([]playground.DataPoint, cfg.NumPoints)
	span := DomainHi - DomainLo
	for i := range points {
		x := DomainLo + span*float64(i)/float64(cfg.NumPoints-1)
		r := src.Next()
		points[i] = playground.DataPoint{
			X: x,
			Y: playground.GroundTruth(x) + (r-0.5)*2*cfg.NoiseLevel,
		}
	}

	return &playground.TrainingSet{
		Points:     points,
		NoiseLevel: cfg.NoiseLevel,
		Seed:       cfg.Seed,
	}
}
