package fit

import (
	"context"
	"runtime"

	"fitlab/domain/playground"
	"fitlab/internal/curve"
	"fitlab/internal/errors"

	"golang.org/x/sync/errgroup"
)

// Sweep refits ts at every complexity from 1 to maxComplexity, keeping the
// penalty and noise level from params, and reports training error against
// error from the true curve. Results are ordered by complexity.
func Sweep(ctx context.Context, ts *playground.TrainingSet, params playground.ModelParameters, maxComplexity, steps int) ([]playground.SweepPoint, error) {
	if maxComplexity < 1 {
		return nil, errors.InvalidInputf("max complexity must be >= 1, got %d", maxComplexity)
	}
	truth, err := curve.Sample(playground.GroundTruth, curve.DefaultDomain, steps)
	if err != nil {
		return nil, err
	}

	points := make([]playground.SweepPoint, maxComplexity)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i := range points {
		complexity := i + 1
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p := params
			p.Complexity = complexity
			model := Fit(ts, p)
			diag := Evaluate(model, ts, truth)
			points[complexity-1] = playground.SweepPoint{
				Complexity: complexity,
				TrainMSE:   diag.TrainMSE,
				TruthMSE:   diag.TruthMSE,
				Regime:     model.Regime,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}
