package fit

import (
	"math"

	"fitlab/domain/playground"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// Evaluate scores model against the training set and a sampled truth line.
// Undefined quantities (empty inputs, R² of a constant target) come back as 0
// so the result always encodes as JSON.
func Evaluate(model playground.FittedModel, ts *playground.TrainingSet, truth playground.PlotLine) playground.Diagnostics {
	var d playground.Diagnostics
	if model.Predict == nil {
		return d
	}

	if ts.Len() > 0 {
		ys := ts.YS()
		preds := make([]float64, len(ys))
		residuals := make([]float64, len(ys))
		squared := make([]float64, len(ys))
		absolute := make([]float64, len(ys))
		for i, p := range ts.Points {
			preds[i] = model.Predict(p.X)
			residuals[i] = p.Y - preds[i]
			squared[i] = residuals[i] * residuals[i]
			absolute[i] = math.Abs(residuals[i])
		}

		mse, _ := stats.Mean(squared)
		sd, _ := stats.StandardDeviation(residuals)
		maxAbs, _ := stats.Max(absolute)

		d.TrainMSE = finite(mse)
		d.ResidualStdDev = finite(sd)
		d.MaxAbsResidual = finite(maxAbs)
		d.TrainR2 = finite(stat.RSquaredFrom(preds, ys, nil))
	}

	if len(truth) > 0 {
		squared := make([]float64, len(truth))
		for i, p := range truth {
			diff := model.Predict(p.X) - p.Y
			squared[i] = diff * diff
		}
		mse, _ := stats.Mean(squared)
		d.TruthMSE = finite(mse)
	}

	return d
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
