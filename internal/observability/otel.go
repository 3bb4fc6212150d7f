// Package observability sets up the hubctl logger and the OpenTelemetry
// providers the API client reports into.
package observability

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	otelprometheus "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"
)

const shutdownTimeout = 10 * time.Second

// Config selects the service identity, log shape and trace destination.
type Config struct {
	ServiceName    string
	ServiceVersion string
	LogLevel       string
	LogFormat      string
	// OTLPEndpoint is a gRPC collector address. Spans are not exported
	// when it is empty.
	OTLPEndpoint string
	// LogOutput defaults to stderr so stdout stays free for command output.
	LogOutput io.Writer
}

// Provider owns the installed SDK providers until Shutdown.
type Provider struct {
	logger    *slog.Logger
	shutdowns []func(context.Context) error
}

// New builds the logger, installs global tracer and meter providers and
// returns both. Metrics go to the default Prometheus registry.
func New(ctx context.Context, cfg *Config) (*Provider, *slog.Logger, error) {
	out := cfg.LogOutput
	if out == nil {
		out = os.Stderr
	}
	logger := NewLogger(out, cfg.LogLevel, cfg.LogFormat)

	res, err := newResource(cfg.ServiceName, cfg.ServiceVersion)
	if err != nil {
		return nil, nil, err
	}
	tp, err := newTracerProvider(ctx, res, cfg.OTLPEndpoint, logger)
	if err != nil {
		return nil, nil, err
	}
	mp, err := newMeterProvider(res)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, nil, err
	}

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{}))

	return &Provider{
		logger:    logger,
		shutdowns: []func(context.Context) error{tp.Shutdown, mp.Shutdown},
	}, logger, nil
}

func newResource(name, version string) (*resource.Resource, error) {
	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(name),
		semconv.ServiceVersion(version),
	))
	if err != nil {
		return nil, fmt.Errorf("observability: resource: %w", err)
	}
	return res, nil
}

func newTracerProvider(ctx context.Context, res *resource.Resource, endpoint string, logger *slog.Logger) (*sdktrace.TracerProvider, error) {
	if endpoint == "" {
		logger.Debug("otel: no OTLP endpoint configured; traces disabled")
		return sdktrace.NewTracerProvider(sdktrace.WithResource(res)), nil
	}
	exp, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("observability: otlp exporter: %w", err)
	}
	logger.Debug("otel: exporting traces", "endpoint", endpoint)
	return sdktrace.NewTracerProvider(sdktrace.WithResource(res), sdktrace.WithBatcher(exp)), nil
}

// newMeterProvider registers its reader on the default Prometheus registry,
// so it may succeed only once per process.
func newMeterProvider(res *resource.Resource) (*sdkmetric.MeterProvider, error) {
	reader, err := otelprometheus.New()
	if err != nil {
		return nil, fmt.Errorf("observability: prometheus exporter: %w", err)
	}
	return sdkmetric.NewMeterProvider(sdkmetric.WithResource(res), sdkmetric.WithReader(reader)), nil
}

// Shutdown flushes pending spans and metrics. It gives up after ten seconds
// and logs, rather than returns, any failure.
func (p *Provider) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	var errs []error
	for _, fn := range p.shutdowns {
		errs = append(errs, fn(ctx))
	}
	if err := errors.Join(errs...); err != nil {
		p.logger.Error("otel shutdown", "err", err)
	}
}
