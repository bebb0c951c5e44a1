package playground

import (
	"sync"

	domain "fitlab/domain/playground"
	"fitlab/internal/errors"
	"fitlab/internal/synth"
)

// Update is a partial settings change; nil fields are left as they are
type Update struct {
	Complexity  *int     `json:"complexity,omitempty"`
	NoiseLevel  *float64 `json:"noise_level,omitempty"`
	PenaltyKind *string  `json:"reg_kind,omitempty"`
	Strength    *float64 `json:"reg_strength,omitempty"`
}

// Controller holds one user's settings, seed and current training set
type Controller struct {
	mu       sync.Mutex
	opts     Options
	settings Settings
	seed     int64
	training *domain.TrainingSet
}

// NewController starts a session at seed with default settings
func NewController(opts Options, seed int64) (*Controller, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	c := &Controller{
		opts:     opts,
		settings: Clamp(DefaultSettings(), opts.MaxComplexity),
		seed:     seed,
	}
	ts, err := c.generate(c.settings.NoiseLevel, seed)
	if err != nil {
		return nil, err
	}
	c.training = ts
	return c, nil
}

// Settings returns the current settings
func (c *Controller) Settings() Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// Seed returns the current seed
func (c *Controller) Seed() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seed
}

// Apply validates the whole update before changing anything, then clamps the
// result onto the slider grid. The training set is rebuilt only when the
// noise level actually changes.
func (c *Controller) Apply(u Update) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.settings
	if u.PenaltyKind != nil {
		kind, err := domain.ParsePenaltyKind(*u.PenaltyKind)
		if err != nil {
			return nil, err
		}
		next.PenaltyKind = kind
	}
	if u.Complexity != nil {
		next.Complexity = *u.Complexity
	}
	if u.NoiseLevel != nil {
		next.NoiseLevel = *u.NoiseLevel
	}
	if u.Strength != nil {
		next.Strength = *u.Strength
	}
	next = Clamp(next, c.opts.MaxComplexity)

	if next.NoiseLevel != c.settings.NoiseLevel {
		ts, err := c.generate(next.NoiseLevel, c.seed)
		if err != nil {
			return nil, err
		}
		c.training = ts
	}
	c.settings = next
	return derive(c.training, c.settings, c.opts)
}

// Regenerate advances the seed and draws a fresh training set
func (c *Controller) Regenerate() (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ts, err := c.generate(c.settings.NoiseLevel, c.seed+1)
	if err != nil {
		return nil, err
	}
	c.seed++
	c.training = ts
	return derive(c.training, c.settings, c.opts)
}

// Snapshot recomputes every derived value from the current state
func (c *Controller) Snapshot() (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return derive(c.training, c.settings, c.opts)
}

// Export snapshots the current state in a form synth can write out
func (c *Controller) Export() (synth.Export, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap, err := derive(c.training, c.settings, c.opts)
	if err != nil {
		return synth.Export{}, err
	}
	return ExportFor(snap, c.training), nil
}

// Training returns the current training set. It is never mutated in place,
// so the caller may keep it.
func (c *Controller) Training() *domain.TrainingSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.training
}

// generate builds a training set without touching controller state
func (c *Controller) generate(noiseLevel float64, seed int64) (*domain.TrainingSet, error) {
	ts, err := synth.Generate(synth.Config{
		NumPoints:  c.opts.NumPoints,
		NoiseLevel: noiseLevel,
		Seed:       seed,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to regenerate training set")
	}
	return ts, nil
}
