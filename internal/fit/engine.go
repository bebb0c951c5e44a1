// Package fit produces the model curve the playground draws over its data.
//
// Nothing here learns. A complexity of 1 gets an ordinary least-squares line;
// anything higher gets the ground truth plus a synthetic high-frequency wiggle
// whose amplitude follows the noise level, optionally shrunk by an L1 or L2
// style penalty. Every returned Predict closure is pure.
package fit

import (
	"math"

	"fitlab/domain/playground"

	"gonum.org/v1/gonum/floats"
)

// Wiggle amplitude per unit of noise
const wiggleGain = 0.7

// Fit returns the model for params over ts. Range checks belong to the caller;
// Fit itself is total.
func Fit(ts *playground.TrainingSet, params playground.ModelParameters) playground.FittedModel {
	penalty := params.Penalty
	if penalty == nil {
		penalty = playground.NoPenalty{}
	}
	regime, text := describe(params.Complexity, penalty)

	if params.Complexity <= 1 {
		m, b := LeastSquares(ts.XS(), ts.YS())
		return playground.FittedModel{
			Predict:     func(x float64) float64 { return m*x + b },
			Description: text,
			Regime:      regime,
		}
	}

	complexity := float64(params.Complexity)
	amplitude := params.NoiseLevel * wiggleGain
	return playground.FittedModel{
		Predict: func(x float64) float64 {
			w := amplitude * math.Sin(x*math.Pi*complexity/2)
			return playground.GroundTruth(x) + penalty.Shrink(w)
		},
		Description: text,
		Regime:      regime,
	}
}

// Wiggle is the unshrunk deviation the high-complexity model adds to the truth
func Wiggle(x float64, complexity int, noiseLevel float64) float64 {
	return noiseLevel * wiggleGain * math.Sin(x*math.Pi*float64(complexity)/2)
}

// LeastSquares fits y = m*x + b by the normal equations. When every x is the
// same (or there is nothing to fit) it returns the flat line through mean(y).
func LeastSquares(xs, ys []float64) (m, b float64) {
	if len(xs) == 0 || len(xs) != len(ys) {
		return 0, 0
	}
	n := float64(len(xs))
	sx := floats.Sum(xs)
	sy := floats.Sum(ys)
	sxy := floats.Dot(xs, ys)
	sxx := floats.Dot(xs, xs)

	denom := n*sxx - sx*sx
	if denom == 0 || math.IsNaN(denom) || math.IsInf(denom, 0) {
		return 0, sy / n
	}
	m = (n*sxy - sx*sy) / denom
	b = (sy - m*sx) / n
	return m, b
}
