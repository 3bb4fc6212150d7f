package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/d9705996/hubclient/internal/app"
	"github.com/d9705996/hubclient/internal/health"
	"github.com/d9705996/hubclient/internal/route"
)

func (c *cli) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the built web UI with health and metrics endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.setup(cmd)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), a)
		},
	}
}

func serve(ctx context.Context, a *app.App) error {
	log := a.Log
	cfg := a.Config

	if _, err := os.Stat(cfg.UI.Dir); err != nil {
		return fmt.Errorf("ui dir %s: %w", cfg.UI.Dir, err)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      accessLog(log)(newServeMux(a, os.DirFS(cfg.UI.Dir))),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("http server listening", "addr", srv.Addr, "ui", cfg.UI.Dir, "api", a.API.BaseURL())
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info("server stopped cleanly")
	return nil
}

func newServeMux(a *app.App, ui fs.FS) *http.ServeMux {
	checks := make(map[string]health.Pinger)
	for name, p := range a.Checks() {
		checks[name] = p
	}
	hh := health.New(checks)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", hh.ServeHealth)
	mux.HandleFunc("GET /readyz", hh.ServeReady)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /", spaHandler{ui: ui, files: http.FileServer(http.FS(ui)), log: a.Log})
	return mux
}

// spaHandler serves static files and falls back to index.html for any path
// that is not a file, so client-side routes load the app.
type spaHandler struct {
	ui    fs.FS
	files http.Handler
	log   *slog.Logger
}

func (s spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	if name != "" {
		if info, err := fs.Stat(s.ui, name); err == nil && !info.IsDir() {
			s.files.ServeHTTP(w, r)
			return
		}
	}

	s.log.Debug("spa fallback", "path", r.URL.Path, "page", route.Parse(r.URL.Path).Page)
	index, err := fs.ReadFile(s.ui, "index.html")
	if err != nil {
		http.Error(w, "ui not built", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(index)
}

// accessLog logs every request at debug level once it has been served.
func accessLog(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			log.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration", time.Since(start),
			)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
