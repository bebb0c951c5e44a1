// Package playground owns the mutable side of the app: the slider settings,
// the seed, and the session that ties them to one browser. Every derived value
// is recomputed from scratch on each change.
package playground

import (
	"math"

	domain "fitlab/domain/playground"
	"fitlab/internal/curve"
	"fitlab/internal/errors"
	"fitlab/internal/fit"
	"fitlab/internal/synth"
)

// Slider ranges
const (
	MinComplexity = 1
	MaxComplexity = 20
	MaxNoiseLevel = 1.0
	MaxStrength   = 10.0
)

// Upper bounds on render size
const (
	MaxNumPoints  = 1000
	MaxCurveSteps = 2000
)

// Settings is what the user controls
type Settings struct {
	Complexity  int                `json:"complexity"`
	NoiseLevel  float64            `json:"noise_level"`
	PenaltyKind domain.PenaltyKind `json:"reg_kind"`
	Strength    float64            `json:"reg_strength"`
}

// DefaultSettings is what a fresh session starts with
func DefaultSettings() Settings {
	return Settings{
		Complexity:  3,
		NoiseLevel:  0.3,
		PenaltyKind: domain.KindNone,
		Strength:    1,
	}
}

// Options fix the shape of every render
type Options struct {
	NumPoints     int
	CurveSteps    int
	MaxComplexity int
}

func DefaultOptions() Options {
	return Options{
		NumPoints:     30,
		CurveSteps:    200,
		MaxComplexity: MaxComplexity,
	}
}

// Validate checks every option against its bounds
func (o Options) Validate() error {
	if o.NumPoints < 2 || o.NumPoints > MaxNumPoints {
		return errors.InvalidInputf("numPoints must be in [2, %d], got %d", MaxNumPoints, o.NumPoints)
	}
	if o.CurveSteps < 1 || o.CurveSteps > MaxCurveSteps {
		return errors.InvalidInputf("curve steps must be in [1, %d], got %d", MaxCurveSteps, o.CurveSteps)
	}
	if o.MaxComplexity < MinComplexity || o.MaxComplexity > MaxComplexity {
		return errors.InvalidInputf("max complexity must be in [%d, %d], got %d", MinComplexity, MaxComplexity, o.MaxComplexity)
	}
	return nil
}

// Snapshot is everything the chart and the explanation panel need
type Snapshot struct {
	Settings    Settings           `json:"settings"`
	Seed        int64              `json:"seed"`
	Training    []domain.DataPoint `json:"training"`
	Truth       domain.PlotLine    `json:"truth"`
	Model       domain.PlotLine    `json:"model"`
	Description string             `json:"description"`
	Regime      domain.Regime      `json:"regime"`
	Diagnostics domain.Diagnostics `json:"diagnostics"`
	Fingerprint string             `json:"fingerprint"`
}

// Clamp snaps settings onto the slider grid: complexity to whole steps in
// [1, maxComplexity], noise to 0.05 steps in [0, 1], strength to 0.1 steps in
// [0, 10]. The kind is left alone.
func Clamp(s Settings, maxComplexity int) Settings {
	if s.Complexity < MinComplexity {
		s.Complexity = MinComplexity
	}
	if s.Complexity > maxComplexity {
		s.Complexity = maxComplexity
	}
	s.NoiseLevel = snap(s.NoiseLevel, 0, MaxNoiseLevel, 20)
	s.Strength = snap(s.Strength, 0, MaxStrength, 10)
	return s
}

func snap(v, lo, hi, perUnit float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return math.Round(v*perUnit) / perUnit
}

// Penalty turns the kind and strength pair into the fit engine's variant
func (s Settings) Penalty() (domain.Penalty, error) {
	return domain.NewPenalty(s.PenaltyKind, s.Strength)
}

// Render builds a snapshot from scratch. It is the stateless path used by the
// headless API and the export CLI.
func Render(s Settings, seed int64, opts Options) (*Snapshot, *domain.TrainingSet, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	if _, err := domain.ParsePenaltyKind(string(s.PenaltyKind)); err != nil {
		return nil, nil, err
	}
	s = Clamp(s, opts.MaxComplexity)

	ts, err := synth.Generate(synth.Config{NumPoints: opts.NumPoints, NoiseLevel: s.NoiseLevel, Seed: seed})
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to build training set")
	}
	out, err := derive(ts, s, opts)
	if err != nil {
		return nil, nil, err
	}
	return out, ts, nil
}

// derive computes every value that depends on the training set and settings
func derive(ts *domain.TrainingSet, s Settings, opts Options) (*Snapshot, error) {
	penalty, err := s.Penalty()
	if err != nil {
		return nil, err
	}
	model := fit.Fit(ts, domain.ModelParameters{
		Complexity: s.Complexity,
		Penalty:    penalty,
		NoiseLevel: s.NoiseLevel,
	})

	truth, err := curve.Sample(domain.GroundTruth, curve.DefaultDomain, opts.CurveSteps)
	if err != nil {
		return nil, err
	}
	line, err := curve.Sample(model.Predict, curve.DefaultDomain, opts.CurveSteps)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Settings:    s,
		Seed:        ts.Seed,
		Training:    ts.Points,
		Truth:       truth,
		Model:       line,
		Description: model.Description,
		Regime:      model.Regime,
		Diagnostics: fit.Evaluate(model, ts, truth),
		Fingerprint: ts.Fingerprint().String(),
	}, nil
}

// ExportFor packages a snapshot for synth.WriteXLSX
func ExportFor(snap *Snapshot, ts *domain.TrainingSet) synth.Export {
	penalty, err := snap.Settings.Penalty()
	if err != nil {
		penalty = domain.NoPenalty{}
	}
	return synth.Export{
		Training:    ts,
		Truth:       snap.Truth,
		Model:       snap.Model,
		Complexity:  snap.Settings.Complexity,
		Penalty:     penalty,
		Description: snap.Description,
		Regime:      snap.Regime,
	}
}
