package main

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d9705996/hubclient/internal/session"
)

var uiFS = fstest.MapFS{
	"index.html":    {Data: []byte("<!doctype html><div id=app></div>")},
	"assets/app.js": {Data: []byte("console.log('hub')")},
}

func newTestMux(t *testing.T, base string) *http.ServeMux {
	t.Helper()
	a, closeFn, err := opener(base, session.NewMemoryStorage())(context.Background())
	require.NoError(t, err)
	t.Cleanup(closeFn)
	return newServeMux(a, uiFS)
}

func get(mux http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestServe_StaticAsset(t *testing.T) {
	_, base := newHub(t)
	w := get(newTestMux(t, base), "/assets/app.js")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "console.log('hub')", w.Body.String())
}

func TestServe_ClientRoutesFallBackToIndex(t *testing.T) {
	_, base := newHub(t)
	mux := newTestMux(t, base)

	for _, p := range []string{"/", "/signin", "/resources/intro-algebra", "/dashboard/reviewer", "/no/such/page"} {
		t.Run(p, func(t *testing.T) {
			w := get(mux, p)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), "id=app")
			assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
		})
	}
}

func TestServe_MissingIndex(t *testing.T) {
	_, base := newHub(t)
	a, closeFn, err := opener(base, session.NewMemoryStorage())(context.Background())
	require.NoError(t, err)
	defer closeFn()

	w := get(newServeMux(a, fstest.MapFS{}), "/signin")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServe_HealthAndReady(t *testing.T) {
	h, base := newHub(t)
	mux := newTestMux(t, base)

	w := get(mux, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	_, _, calls := h.lastRequest()
	assert.Zero(t, calls)

	w = get(mux, "/readyz")
	assert.Equal(t, http.StatusOK, w.Code)
	req, _, _ := h.lastRequest()
	assert.Equal(t, "/v1/healthcheck", req.URL.Path)
}

func TestServe_NotReadyWhenAPIDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	w := get(newTestMux(t, base), "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestServe_Metrics(t *testing.T) {
	_, base := newHub(t)
	w := get(newTestMux(t, base), "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAccessLog_RecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	h := accessLog(log)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	w := get(h, "/brew")
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Contains(t, buf.String(), "status=418")
	assert.Contains(t, buf.String(), "path=/brew")
}
