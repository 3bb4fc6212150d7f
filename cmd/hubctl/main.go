// hubctl is the command-line client for the resource hub.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/d9705996/hubclient/internal/apiclient"
	"github.com/d9705996/hubclient/internal/app"
	"github.com/d9705996/hubclient/internal/config"
	"github.com/d9705996/hubclient/internal/observability"
	"github.com/d9705996/hubclient/internal/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, describeError(err))
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := newCLI(openApp, os.Stdout)
	defer c.shutdown()
	return c.rootCmd().ExecuteContext(ctx)
}

// openApp loads config, boots observability and builds the application
// state. The returned func flushes exporters and closes storage.
func openApp(ctx context.Context) (*app.App, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	obs, log, err := observability.New(ctx, &observability.Config{
		ServiceName:    "hubctl",
		ServiceVersion: version.Version,
		LogLevel:       cfg.Log.Level,
		LogFormat:      cfg.Log.Format,
		OTLPEndpoint:   cfg.OTel.OTLPEndpoint,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("init observability: %w", err)
	}
	slog.SetDefault(log)
	log.Debug("starting hubctl", "version", version.Version, "api", cfg.API.BaseURL, "session_driver", cfg.Session.Driver)

	a, err := app.New(cfg, log)
	if err != nil {
		obs.Shutdown(context.Background())
		return nil, nil, fmt.Errorf("init app: %w", err)
	}

	return a, func() {
		if err := a.Close(); err != nil {
			log.Error("close app", "err", err)
		}
		obs.Shutdown(context.Background())
	}, nil
}

// describeError renders err for the terminal, listing field errors from the
// server on their own lines.
func describeError(err error) string {
	apiErr, ok := apiclient.AsAPIError(err)
	if !ok {
		return "Error: " + err.Error()
	}

	var b strings.Builder
	if apiErr.IsNetwork() {
		fmt.Fprintf(&b, "Error: %s", apiErr.Message)
	} else {
		fmt.Fprintf(&b, "Error (%d): %s", apiErr.Status, apiErr.Message)
	}
	writeFieldErrors(&b, apiErr.FieldErrors)
	return b.String()
}

func writeFieldErrors(w io.Writer, fields map[string]string) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "\n  %s: %s", k, fields[k])
	}
}
