// Package health exposes the /healthz and /readyz handlers for hubctl serve.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/d9705996/hubclient/internal/version"
)

// Pinger is implemented by anything that can check a downstream dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds the named dependencies checked by /readyz.
type Handler struct {
	checks    map[string]Pinger
	startTime time.Time
	timeout   time.Duration
}

// New creates a Handler. With no checks, /readyz always reports 503 because
// there is nothing to be ready for.
func New(checks map[string]Pinger) *Handler {
	return &Handler{checks: checks, startTime: time.Now(), timeout: 3 * time.Second}
}

type systemInfo struct {
	Version       string `json:"version"`
	Commit        string `json:"commit"`
	BuildDate     string `json:"build_date"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// ServeHealth handles GET /healthz. It never touches dependencies.
func (h *Handler) ServeHealth(w http.ResponseWriter, _ *http.Request) {
	render(w, http.StatusOK, map[string]any{
		"status": "available",
		"system_info": systemInfo{
			Version:       version.Version,
			Commit:        version.Commit,
			BuildDate:     version.Date,
			UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		},
	})
}

// ServeReady handles GET /readyz.
// Returns 200 when every check pings cleanly; 503 otherwise.
func (h *Handler) ServeReady(w http.ResponseWriter, r *http.Request) {
	if len(h.checks) == 0 {
		render(w, http.StatusServiceUnavailable, map[string]any{
			"error": "no dependencies registered",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	results := make(map[string]string, len(names))
	for _, name := range names {
		p := h.checks[name]
		if p == nil {
			results[name] = "not initialised"
			status = http.StatusServiceUnavailable
			continue
		}
		if err := p.Ping(ctx); err != nil {
			results[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	body := map[string]any{"checks": results}
	if status == http.StatusOK {
		body["status"] = "ok"
	} else {
		body["error"] = "dependency unavailable"
	}
	render(w, status, body)
}

func render(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
