// Package api serves the fitting pipeline as a stateless JSON API. Every
// request carries its own settings and seed, so responses are reproducible.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	domain "fitlab/domain/playground"
	"fitlab/internal"
	"fitlab/internal/errors"
	"fitlab/internal/fit"
	"fitlab/internal/playground"
	"fitlab/internal/synth"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handler routes the /v1 endpoints
type Handler struct {
	router   *chi.Mux
	defaults playground.Options
	seed     int64
	logger   *internal.Logger
}

// NewHandler builds the router. defaults supply anything a request omits.
func NewHandler(defaults playground.Options, seed int64, logger *internal.Logger) *Handler {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	h := &Handler{
		router:   chi.NewRouter(),
		defaults: defaults,
		seed:     seed,
		logger:   logger,
	}

	h.router.Use(middleware.RequestID)
	h.router.Use(middleware.Logger)
	h.router.Use(middleware.Recoverer)
	h.router.Use(middleware.Compress(5))

	h.router.Get("/healthz", h.handleHealth)
	h.router.Route("/v1", func(r chi.Router) {
		r.Get("/dataset", h.handleDataset)
		r.Get("/fit", h.handleFit)
		r.Get("/sweep", h.handleSweep)
	})
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

type request struct {
	settings playground.Settings
	seed     int64
	opts     playground.Options
}

// parseRequest reads settings from the query string. Missing values take the
// playground defaults; malformed values and points or steps outside their
// bounds are an error.
func (h *Handler) parseRequest(r *http.Request) (request, error) {
	q := r.URL.Query()
	req := request{
		settings: playground.DefaultSettings(),
		seed:     h.seed,
		opts:     h.defaults,
	}

	var err error
	if req.opts.NumPoints, err = intParam(q.Get("points"), req.opts.NumPoints); err != nil {
		return req, errors.InvalidInputf("points: %v", err)
	}
	if req.opts.CurveSteps, err = intParam(q.Get("steps"), req.opts.CurveSteps); err != nil {
		return req, errors.InvalidInputf("steps: %v", err)
	}
	if req.settings.Complexity, err = intParam(q.Get("complexity"), req.settings.Complexity); err != nil {
		return req, errors.InvalidInputf("complexity: %v", err)
	}
	if req.settings.NoiseLevel, err = floatParam(q.Get("noise"), req.settings.NoiseLevel); err != nil {
		return req, errors.InvalidInputf("noise: %v", err)
	}
	if req.settings.Strength, err = floatParam(q.Get("strength"), req.settings.Strength); err != nil {
		return req, errors.InvalidInputf("strength: %v", err)
	}
	if raw := q.Get("seed"); raw != "" {
		if req.seed, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return req, errors.InvalidInputf("seed: %v", err)
		}
	}
	if raw := q.Get("reg"); raw != "" {
		kind, err := domain.ParsePenaltyKind(raw)
		if err != nil {
			return req, err
		}
		req.settings.PenaltyKind = kind
	}
	if err := req.opts.Validate(); err != nil {
		return req, err
	}
	return req, nil
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleDataset returns only the training set
func (h *Handler) handleDataset(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseRequest(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	noise := playground.Clamp(req.settings, req.opts.MaxComplexity).NoiseLevel
	ts, err := synth.Generate(synth.Config{NumPoints: req.opts.NumPoints, NoiseLevel: noise, Seed: req.seed})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"training":    ts,
		"fingerprint": ts.Fingerprint().String(),
	})
}

// handleFit returns the full snapshot the playground would draw
func (h *Handler) handleFit(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseRequest(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	snap, _, err := playground.Render(req.settings, req.seed, req.opts)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleSweep fits every complexity against one training set
func (h *Handler) handleSweep(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseRequest(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	snap, ts, err := playground.Render(req.settings, req.seed, req.opts)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	penalty, err := snap.Settings.Penalty()
	if err != nil {
		h.fail(w, r, err)
		return
	}

	points, err := fit.Sweep(r.Context(), ts, domain.ModelParameters{
		Penalty:    penalty,
		NoiseLevel: snap.Settings.NoiseLevel,
	}, req.opts.MaxComplexity, req.opts.CurveSteps)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"settings": snap.Settings,
		"seed":     req.seed,
		"points":   points,
	})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("[API] %s %s: %v", r.Method, r.URL.Path, err)
	} else {
		h.logger.Debug("[API] %s %s rejected: %v", r.Method, r.URL.Path, err)
	}
	writeJSON(w, status, map[string]string{"code": errors.GetCode(err), "error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		internal.DefaultLogger.Error("[API] encode response: %v", err)
	}
}

func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func floatParam(raw string, def float64) (float64, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.ParseFloat(raw, 64)
}
