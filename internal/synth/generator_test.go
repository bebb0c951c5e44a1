package synth

import (
	"math"
	"testing"

	"fitlab/domain/playground"
	"fitlab/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDeterministic(t *testing.T) {
	cfg := Config{NumPoints: 30, NoiseLevel: 0.4, Seed: 11}

	a, err := Generate(cfg)
	require.NoError(t, err)
	b, err := Generate(cfg)
	require.NoError(t, err)

	assert.Equal(t, a.Points, b.Points)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.Equal(t, 0.4, a.NoiseLevel)
	assert.Equal(t, int64(11), a.Seed)
}

func TestGenerateEvenlySpacedX(t *testing.T) {
	ts, err := Generate(Config{NumPoints: 30, NoiseLevel: 0.2, Seed: 1})
	require.NoError(t, err)
	require.Len(t, ts.Points, 30)

	assert.Equal(t, -2.0, ts.Points[0].X)
	assert.Equal(t, 2.0, ts.Points[29].X)
	for i, p := range ts.Points {
		assert.Equal(t, -2+4*float64(i)/29, p.X, "x[%d]", i)
	}
}

func TestGenerateSeedChangesOnlyY(t *testing.T) {
	a, err := Generate(Config{NumPoints: 30, NoiseLevel: 0.5, Seed: 1})
	require.NoError(t, err)
	b, err := Generate(Config{NumPoints: 30, NoiseLevel: 0.5, Seed: 2})
	require.NoError(t, err)

	assert.Equal(t, a.XS(), b.XS())
	assert.NotEqual(t, a.YS(), b.YS())
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestGenerateNoiseBounded(t *testing.T) {
	const level = 0.35
	ts, err := Generate(Config{NumPoints: 200, NoiseLevel: level, Seed: 99})
	require.NoError(t, err)

	for _, p := range ts.Points {
		dev := math.Abs(p.Y - playground.GroundTruth(p.X))
		assert.LessOrEqual(t, dev, level+1e-12)
	}
}

func TestGenerateZeroNoiseIsGroundTruth(t *testing.T) {
	ts, err := Generate(Config{NumPoints: 30, NoiseLevel: 0, Seed: 1})
	require.NoError(t, err)

	for _, p := range ts.Points {
		assert.Equal(t, math.Sin(p.X*math.Pi/2), p.Y)
	}
}

func TestGenerateRejectsBadInput(t *testing.T) {
	cases := []Config{
		{NumPoints: 1, NoiseLevel: 0.1},
		{NumPoints: 0, NoiseLevel: 0.1},
		{NumPoints: 10, NoiseLevel: -0.1},
		{NumPoints: 10, NoiseLevel: math.NaN()},
		{NumPoints: 10, NoiseLevel: math.Inf(1)},
	}
	for _, cfg := range cases {
		_, err := Generate(cfg)
		require.Error(t, err, "%+v", cfg)
		assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
	}
}

type constNoise float64

func (c constNoise) Next() float64 { return float64(c) }

func TestGenerateFromSource(t *testing.T) {
	ts := generateFrom(Config{NumPoints: 3, NoiseLevel: 1}, constNoise(0.75))

	// (0.75-0.5)*2*1 = 0.5 above the truth at every point
	for _, p := range ts.Points {
		assert.InDelta(t, playground.GroundTruth(p.X)+0.5, p.Y, 1e-15)
	}
	assert.Equal(t, []float64{-2, 0, 2}, ts.XS())
}
