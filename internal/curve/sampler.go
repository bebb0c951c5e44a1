// Package curve turns scalar functions into plottable lines
package curve

import (
	"math"

	"fitlab/domain/playground"
	"fitlab/internal/errors"
)

// Domain is a closed interval [Lo, Hi]
type Domain struct {
	Lo float64
	Hi float64
}

// DefaultDomain matches the training data's x-range
var DefaultDomain = Domain{Lo: -2, Hi: 2}

// Validate requires Lo < Hi with both ends finite
func (d Domain) Validate() error {
	if math.IsNaN(d.Lo) || math.IsNaN(d.Hi) || math.IsInf(d.Lo, 0) || math.IsInf(d.Hi, 0) {
		return errors.InvalidInputf("domain bounds must be finite, got [%v, %v]", d.Lo, d.Hi)
	}
	if d.Lo >= d.Hi {
		return errors.InvalidInputf("domain lower bound must be below upper bound, got [%v, %v]", d.Lo, d.Hi)
	}
	return nil
}

// Sample evaluates fn at steps+1 evenly spaced points spanning the domain.
// The first and last x are exactly Lo and Hi.
func Sample(fn func(float64) float64, d Domain, steps int) (playground.PlotLine, error) {
	if fn == nil {
		return nil, errors.InvalidInput("curve function is required")
	}
	if steps < 1 {
		return nil, errors.InvalidInputf("steps must be >= 1, got %d", steps)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	line := make(playground.PlotLine, steps+1)
	span := d.Hi - d.Lo
	for i := range line {
		x := d.Lo + span*float64(i)/float64(steps)
		if i == steps {
			x = d.Hi
		}
		line[i] = playground.DataPoint{X: x, Y: fn(x)}
	}
	return line, nil
}
