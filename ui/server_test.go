package ui

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fitlab/domain/core"
	"fitlab/internal"
	"fitlab/internal/errors"
	"fitlab/internal/playground"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type stateBody struct {
	Settings        playground.Settings `json:"settings"`
	Seed            int64               `json:"seed"`
	Training        []json.RawMessage   `json:"training"`
	Model           []json.RawMessage   `json:"model"`
	Regime          string              `json:"regime"`
	Description     string              `json:"description"`
	DescriptionHTML string              `json:"description_html"`
	Fingerprint     string              `json:"fingerprint"`
}

type client struct {
	t      *testing.T
	server *Server
	cookie *http.Cookie
}

func newClient(t *testing.T) *client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := internal.NewLogger(internal.LogLevelError)
	registry, err := playground.NewRegistry(playground.DefaultOptions(), 1, time.Hour, logger)
	require.NoError(t, err)
	server, err := NewServer(registry, logger)
	require.NoError(t, err)
	return &client{t: t, server: server}
}

func (c *client) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	c.t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rec := httptest.NewRecorder()
	c.server.Handler().ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		if ck.Name == SessionCookie {
			c.cookie = ck
		}
	}
	return rec
}

func (c *client) state(rec *httptest.ResponseRecorder) stateBody {
	c.t.Helper()
	require.Equal(c.t, http.StatusOK, rec.Code, rec.Body.String())
	var body stateBody
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestIndexRendersControls(t *testing.T) {
	c := newClient(t)
	rec := c.do(http.MethodGet, "/", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	html := rec.Body.String()
	assert.Contains(t, html, `id="complexity" type="range" min="1" max="20" step="1"`)
	assert.Contains(t, html, `step="0.05"`)
	assert.Contains(t, html, `value="l2"`)
	assert.Contains(t, html, "<strong>Good fit.</strong>")
	require.NotNil(t, c.cookie)
}

func TestStateUsesSessionCookie(t *testing.T) {
	c := newClient(t)
	first := c.state(c.do(http.MethodGet, "/api/playground/state", nil))
	require.NotNil(t, c.cookie)

	c.state(c.do(http.MethodPost, "/api/playground/params", map[string]interface{}{"complexity": 9}))
	again := c.state(c.do(http.MethodGet, "/api/playground/state", nil))

	assert.Equal(t, 3, first.Settings.Complexity)
	assert.Equal(t, 9, again.Settings.Complexity)
	assert.Equal(t, "overfit", again.Regime)
	assert.Len(t, again.Training, 30)
	assert.Len(t, again.Model, 201)
	assert.Contains(t, again.DescriptionHTML, "<strong>Overfitting.</strong>")
}

func TestUnknownSessionCookieIsReplaced(t *testing.T) {
	c := newClient(t)
	forged := core.NewSessionID().String()
	c.cookie = &http.Cookie{Name: SessionCookie, Value: forged}

	c.state(c.do(http.MethodGet, "/api/playground/state", nil))

	require.NotNil(t, c.cookie)
	assert.NotEqual(t, forged, c.cookie.Value)
	assert.Equal(t, 1, c.server.registry.Len())
}

func TestParamsClampAndRegularize(t *testing.T) {
	c := newClient(t)
	body := c.state(c.do(http.MethodPost, "/api/playground/params", map[string]interface{}{
		"complexity":   50,
		"reg_kind":     "l1",
		"reg_strength": 3.04,
	}))

	assert.Equal(t, 20, body.Settings.Complexity)
	assert.Equal(t, 3.0, body.Settings.Strength)
	assert.Equal(t, "regularized_l1", body.Regime)
}

func TestParamsRejectsBadInput(t *testing.T) {
	c := newClient(t)

	rec := c.do(http.MethodPost, "/api/playground/params", map[string]interface{}{"reg_kind": "elastic"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), errors.CodeInvalidInput)

	rec = c.do(http.MethodPost, "/api/playground/params", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegenerateAdvancesSeed(t *testing.T) {
	c := newClient(t)
	before := c.state(c.do(http.MethodGet, "/api/playground/state", nil))
	after := c.state(c.do(http.MethodPost, "/api/playground/regenerate", nil))

	assert.Equal(t, before.Seed+1, after.Seed)
	assert.NotEqual(t, before.Fingerprint, after.Fingerprint)
}

func TestSessionsAreIsolated(t *testing.T) {
	a := newClient(t)
	b := &client{t: t, server: a.server}

	a.state(a.do(http.MethodPost, "/api/playground/regenerate", nil))
	other := b.state(b.do(http.MethodGet, "/api/playground/state", nil))

	assert.Equal(t, int64(1), other.Seed)
	assert.Equal(t, 2, a.server.registry.Len())
}

func TestSweepEndpoint(t *testing.T) {
	c := newClient(t)
	rec := c.do(http.MethodGet, "/api/playground/sweep", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Points []struct {
			Complexity int     `json:"complexity"`
			TrainMSE   float64 `json:"train_mse"`
		} `json:"points"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Points, 20)
	assert.Equal(t, 1, body.Points[0].Complexity)
	assert.Equal(t, 20, body.Points[19].Complexity)
}

func TestExportCSV(t *testing.T) {
	c := newClient(t)
	rec := c.do(http.MethodGet, "/api/playground/export?format=csv", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	assert.Equal(t, "x,y", lines[0])
	assert.Len(t, lines, 31)
}

func TestExportXLSX(t *testing.T) {
	c := newClient(t)
	rec := c.do(http.MethodGet, "/api/playground/export", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "fitlab_seed1.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("training")
	require.NoError(t, err)
	assert.Len(t, rows, 31)
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	c := newClient(t)
	rec := c.do(http.MethodGet, "/api/playground/export?format=pdf", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	c := newClient(t)
	rec := c.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestStaticAssetsServed(t *testing.T) {
	c := newClient(t)
	rec := c.do(http.MethodGet, "/static/js/playground.js", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/playground/params")
}
