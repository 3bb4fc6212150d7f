package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/d9705996/hubclient/internal/health"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockPinger is an in-test implementation of health.Pinger.
type mockPinger struct{ err error }

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestServeHealth_AlwaysOK(t *testing.T) {
	h := health.New(map[string]health.Pinger{"api": &mockPinger{err: errors.New("down")}})
	w := httptest.NewRecorder()
	h.ServeHealth(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	body := decode(t, w)
	assert.Equal(t, "available", body["status"])
	info, ok := body["system_info"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, info, "version")
}

func TestServeReady_AllHealthy(t *testing.T) {
	h := health.New(map[string]health.Pinger{
		"api":             &mockPinger{},
		"session_storage": &mockPinger{},
	})
	w := httptest.NewRecorder()
	h.ServeReady(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, map[string]any{"api": "ok", "session_storage": "ok"}, body["checks"])
}

func TestServeReady_OneUnhealthy(t *testing.T) {
	h := health.New(map[string]health.Pinger{
		"api":             &mockPinger{err: errors.New("connection refused")},
		"session_storage": &mockPinger{},
	})
	w := httptest.NewRecorder()
	h.ServeReady(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	body := decode(t, w)
	assert.Equal(t, "dependency unavailable", body["error"])
	checks := body["checks"].(map[string]any)
	assert.Equal(t, "connection refused", checks["api"])
	assert.Equal(t, "ok", checks["session_storage"])
}

func TestServeReady_NilPinger(t *testing.T) {
	h := health.New(map[string]health.Pinger{"api": nil})
	w := httptest.NewRecorder()
	h.ServeReady(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestServeReady_NoChecks(t *testing.T) {
	h := health.New(nil)
	w := httptest.NewRecorder()
	h.ServeReady(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
