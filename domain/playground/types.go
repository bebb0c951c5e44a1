// Package playground holds the value types shared by the fitting pipeline:
// training data, plot lines, penalties and fitted models.
package playground

import (
	"math"

	"fitlab/domain/core"
)

// DataPoint is an immutable (x, y) pair
type DataPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TrainingSet is the noisy sample the model is fitted against
type TrainingSet struct {
	Points     []DataPoint `json:"points"`
	NoiseLevel float64     `json:"noise_level"`
	Seed       int64       `json:"seed"`
}

// Len returns the number of points in the set
func (ts *TrainingSet) Len() int {
	if ts == nil {
		return 0
	}
	return len(ts.Points)
}

// XS returns the x-coordinates as a fresh slice
func (ts *TrainingSet) XS() []float64 {
	xs := make([]float64, ts.Len())
	for i, p := range ts.Points {
		xs[i] = p.X
	}
	return xs
}

// YS returns the y-coordinates as a fresh slice
func (ts *TrainingSet) YS() []float64 {
	ys := make([]float64, ts.Len())
	for i, p := range ts.Points {
		ys[i] = p.Y
	}
	return ys
}

// Fingerprint hashes the exact coordinates of the set
func (ts *TrainingSet) Fingerprint() core.Hash {
	return core.HashFloats(ts.XS(), ts.YS())
}

// PlotLine is a function sampled at evenly spaced x-values
type PlotLine []DataPoint

// GroundTruth is the target function the training data approximates
func GroundTruth(x float64) float64 {
	return math.Sin(x * math.Pi / 2)
}

// Regime classifies the fit a set of parameters produces
type Regime string

const (
	RegimeUnderfit      Regime = "underfit"
	RegimeGoodFit       Regime = "good_fit"
	RegimeOverfit       Regime = "overfit"
	RegimeRegularizedL1 Regime = "regularized_l1"
	RegimeRegularizedL2 Regime = "regularized_l2"
)

// ModelParameters are the knobs the fit engine reads
type ModelParameters struct {
	Complexity int     `json:"complexity"`
	Penalty    Penalty `json:"-"`
	NoiseLevel float64 `json:"noise_level"`
}

// FittedModel is a pure function plus the explanation of how it came to be
type FittedModel struct {
	Predict     func(float64) float64 `json:"-"`
	Description string                `json:"description"`
	Regime      Regime                `json:"regime"`
}

// Diagnostics summarises how a fitted model relates to its data
type Diagnostics struct {
	TrainMSE       float64 `json:"train_mse"`
	TruthMSE       float64 `json:"truth_mse"`
	TrainR2        float64 `json:"train_r2"`
	MaxAbsResidual float64 `json:"max_abs_residual"`
	ResidualStdDev float64 `json:"residual_std_dev"`
}

// SweepPoint is one complexity level of a bias/variance sweep
type SweepPoint struct {
	Complexity int     `json:"complexity"`
	TrainMSE   float64 `json:"train_mse"`
	TruthMSE   float64 `json:"truth_mse"`
	Regime     Regime  `json:"regime"`
}
