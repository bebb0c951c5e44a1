package playground

import (
	"math"
	"sync"
	"testing"

	domain "fitlab/domain/playground"
	"fitlab/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func stringPtr(v string) *string  { return &v }

func newController(t *testing.T) *Controller {
	t.Helper()
	c, err := NewController(DefaultOptions(), 1)
	require.NoError(t, err)
	return c
}

func TestClamp(t *testing.T) {
	tests := []struct {
		in   Settings
		want Settings
	}{
		{Settings{Complexity: 0, NoiseLevel: -1, Strength: -3}, Settings{Complexity: 1}},
		{Settings{Complexity: 99, NoiseLevel: 4, Strength: 42}, Settings{Complexity: 20, NoiseLevel: 1, Strength: 10}},
		{Settings{Complexity: 7, NoiseLevel: 0.33, Strength: 2.46}, Settings{Complexity: 7, NoiseLevel: 0.35, Strength: 2.5}},
		{Settings{Complexity: 7, NoiseLevel: math.NaN(), Strength: math.NaN()}, Settings{Complexity: 7}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Clamp(tt.in, MaxComplexity))
	}
	assert.Equal(t, 0.3, Clamp(Settings{Complexity: 1, NoiseLevel: 0.3}, MaxComplexity).NoiseLevel)
}

func TestNewControllerDefaults(t *testing.T) {
	c := newController(t)

	assert.Equal(t, DefaultSettings(), c.Settings())
	assert.Equal(t, int64(1), c.Seed())

	snap, err := c.Snapshot()
	require.NoError(t, err)
	assert.Len(t, snap.Training, 30)
	assert.Len(t, snap.Truth, 201)
	assert.Len(t, snap.Model, 201)
	assert.Equal(t, domain.RegimeGoodFit, snap.Regime)
	assert.NotEmpty(t, snap.Fingerprint)
}

func TestNewControllerRejectsBadOptions(t *testing.T) {
	_, err := NewController(Options{NumPoints: 1, CurveSteps: 10, MaxComplexity: 20}, 1)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestApplyComplexityKeepsTrainingSet(t *testing.T) {
	c := newController(t)
	before := c.Training()

	snap, err := c.Apply(Update{Complexity: intPtr(12)})
	require.NoError(t, err)

	assert.Same(t, before, c.Training())
	assert.Equal(t, 12, snap.Settings.Complexity)
	assert.Equal(t, domain.RegimeOverfit, snap.Regime)
}

func TestApplyNoiseRegeneratesTrainingSet(t *testing.T) {
	c := newController(t)
	before := c.Training()

	snap, err := c.Apply(Update{NoiseLevel: floatPtr(0.8)})
	require.NoError(t, err)

	after := c.Training()
	assert.NotSame(t, before, after)
	assert.Equal(t, 0.8, after.NoiseLevel)
	assert.Equal(t, before.XS(), after.XS())
	assert.Equal(t, int64(1), snap.Seed, "noise changes keep the seed")

	// The same noise level is a no-op for the training set
	_, err = c.Apply(Update{NoiseLevel: floatPtr(0.79)})
	require.NoError(t, err)
	assert.Same(t, after, c.Training())
}

func TestApplyPenalty(t *testing.T) {
	c := newController(t)

	snap, err := c.Apply(Update{Complexity: intPtr(10), PenaltyKind: stringPtr("L2"), Strength: floatPtr(4)})
	require.NoError(t, err)
	assert.Equal(t, domain.KindL2, snap.Settings.PenaltyKind)
	assert.Equal(t, domain.RegimeRegularizedL2, snap.Regime)

	snap, err = c.Apply(Update{Strength: floatPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, domain.RegimeOverfit, snap.Regime)
}

func TestApplyRejectsUnknownKindWithoutSideEffects(t *testing.T) {
	c := newController(t)
	before := c.Settings()

	_, err := c.Apply(Update{Complexity: intPtr(15), PenaltyKind: stringPtr("elastic")})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
	assert.Equal(t, before, c.Settings())
}

func TestFailedRegenerationLeavesStateUntouched(t *testing.T) {
	c := newController(t)
	before := c.Settings()
	training := c.Training()
	seed := c.Seed()

	// A point count synth rejects makes every regeneration fail
	c.opts.NumPoints = 1

	_, err := c.Apply(Update{NoiseLevel: floatPtr(0.8), Complexity: intPtr(12)})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
	assert.Equal(t, before, c.Settings())
	assert.Same(t, training, c.Training())

	_, err = c.Regenerate()
	require.Error(t, err)
	assert.Equal(t, seed, c.Seed())
	assert.Same(t, training, c.Training())
}

func TestRegenerateIncrementsSeed(t *testing.T) {
	c := newController(t)
	first, err := c.Snapshot()
	require.NoError(t, err)

	second, err := c.Regenerate()
	require.NoError(t, err)

	assert.Equal(t, first.Seed+1, second.Seed)
	assert.NotEqual(t, first.Fingerprint, second.Fingerprint)

	// A stateless render with the same inputs reproduces the session exactly
	again, _, err := Render(c.Settings(), second.Seed, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, second.Fingerprint, again.Fingerprint)
	assert.Equal(t, second.Model, again.Model)
}

func TestRenderValidates(t *testing.T) {
	_, _, err := Render(Settings{Complexity: 3, PenaltyKind: "elastic"}, 1, DefaultOptions())
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, _, err = Render(DefaultSettings(), 1, Options{NumPoints: 30, CurveSteps: 0, MaxComplexity: 20})
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestOptionsValidateBounds(t *testing.T) {
	assert.NoError(t, Options{NumPoints: MaxNumPoints, CurveSteps: MaxCurveSteps, MaxComplexity: MaxComplexity}.Validate())

	for _, opts := range []Options{
		{NumPoints: MaxNumPoints + 1, CurveSteps: 200, MaxComplexity: 20},
		{NumPoints: 30, CurveSteps: MaxCurveSteps + 1, MaxComplexity: 20},
		{NumPoints: 30, CurveSteps: 200, MaxComplexity: MaxComplexity + 1},
		{NumPoints: 30, CurveSteps: 200, MaxComplexity: 0},
	} {
		err := opts.Validate()
		assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err), "%+v", opts)
	}
}

func TestExportMatchesSnapshot(t *testing.T) {
	c := newController(t)
	_, err := c.Apply(Update{PenaltyKind: stringPtr("l1"), Strength: floatPtr(2)})
	require.NoError(t, err)

	exp, err := c.Export()
	require.NoError(t, err)
	assert.Equal(t, domain.Lasso{S: 2}, exp.Penalty)
	assert.Same(t, c.Training(), exp.Training)
	assert.Equal(t, 3, exp.Complexity)
	assert.Equal(t, domain.RegimeRegularizedL1, exp.Regime)
}

func TestControllerConcurrentUse(t *testing.T) {
	c := newController(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%4 == 0 {
				_, _ = c.Regenerate()
				return
			}
			_, _ = c.Apply(Update{Complexity: intPtr(i + 1)})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(5), c.Seed())
}
