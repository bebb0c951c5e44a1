package playground

import (
	"context"
	"sync"
	"time"

	"fitlab/domain/core"
	"fitlab/internal"
	"fitlab/internal/errors"
)

type session struct {
	controller *Controller
	lastSeen   time.Time
}

// Registry maps browser sessions to their controllers and forgets sessions
// that have been idle longer than the TTL.
type Registry struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*session
	opts     Options
	seed     int64
	ttl      time.Duration
	now      func() time.Time
	logger   *internal.Logger
}

// NewRegistry creates an empty registry. New sessions start at seed.
func NewRegistry(opts Options, seed int64, ttl time.Duration, logger *internal.Logger) (*Registry, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Registry{
		sessions: make(map[core.SessionID]*session),
		opts:     opts,
		seed:     seed,
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}, nil
}

// Options returns the render options every session shares
func (r *Registry) Options() Options {
	return r.opts
}

// Get returns the controller for id and marks the session as active
func (r *Registry) Get(id core.SessionID) (*Controller, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, errors.NotFound("session " + id.String())
	}
	s.lastSeen = r.now()
	return s.controller, nil
}

// GetOrCreate returns the session for id. An empty or unknown id gets a new
// session under a freshly minted ID; callers never choose their own.
func (r *Registry) GetOrCreate(id core.SessionID) (core.SessionID, *Controller, error) {
	if !id.IsEmpty() {
		if c, err := r.Get(id); err == nil {
			return id, c, nil
		}
	}
	id = core.NewSessionID()

	c, err := NewController(r.opts, r.seed)
	if err != nil {
		return "", nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = &session{controller: c, lastSeen: r.now()}
	r.logger.Debug("[Playground] Created session %s (%d active)", id, len(r.sessions))
	return id, c, nil
}

// Len reports the number of live sessions
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Prune drops sessions idle for longer than the TTL and returns how many
func (r *Registry) Prune() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for id, s := range r.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		r.logger.Info("[Playground] Pruned %d idle sessions (%d active)", removed, len(r.sessions))
	}
	return removed
}

// StartJanitor prunes on every tick until ctx is done
func (r *Registry) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.Prune()
			}
		}
	}()
}
