package apiclient

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/d9705996/hubclient/internal/apiclient"

const (
	attrMethod    = attribute.Key("http.request.method")
	attrStatus    = attribute.Key("http.response.status_code")
	attrErrorType = attribute.Key("error.type")
	attrURL       = attribute.Key("url.full")
)

// telemetry records a span and two metric instruments per API call.
type telemetry struct {
	tracer   trace.Tracer
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

func newTelemetry(tp trace.TracerProvider, mp metric.MeterProvider, log *slog.Logger) *telemetry {
	meter := mp.Meter(instrumentationName)
	t := &telemetry{tracer: tp.Tracer(instrumentationName)}

	var err error
	t.requests, err = meter.Int64Counter("hubclient.api.requests",
		metric.WithDescription("API requests issued, by method and outcome"))
	if err != nil {
		log.Warn("create request counter", "err", err)
		t.requests, _ = noop.NewMeterProvider().Meter(instrumentationName).Int64Counter("hubclient.api.requests")
	}
	t.duration, err = meter.Float64Histogram("hubclient.api.duration",
		metric.WithDescription("API request latency"),
		metric.WithUnit("s"))
	if err != nil {
		log.Warn("create duration histogram", "err", err)
		t.duration, _ = noop.NewMeterProvider().Meter(instrumentationName).Float64Histogram("hubclient.api.duration")
	}
	return t
}

// start opens a client span named after the method alone; endpoints carry
// ids and query strings, so the URL goes into an attribute.
func (t *telemetry) start(ctx context.Context, method, url string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrMethod.String(method), attrURL.String(url)))
}

// finish ends the span and records the instruments. status is the one the
// caller observes: 0 for transport and decoding failures, even when the
// server answered 2xx.
func (t *telemetry) finish(ctx context.Context, span trace.Span, method string, status int, elapsed time.Duration, err error) {
	attrs := []attribute.KeyValue{attrMethod.String(method), attrStatus.Int(status)}
	if err != nil {
		attrs = append(attrs, attrErrorType.String(errorType(err, status)))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.SetAttributes(attrs...)
	span.End()

	t.requests.Add(ctx, 1, metric.WithAttributes(attrs...))
	t.duration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attrs...))
}

// errorType is "network" for transport and decoding failures, otherwise the
// HTTP status code.
func errorType(err error, status int) string {
	if apiErr, ok := AsAPIError(err); ok && apiErr.IsNetwork() {
		return "network"
	}
	return strconv.Itoa(status)
}
