// Package apiclient is a thin wrapper over the resource hub REST API.
// Every call returns the decoded JSON envelope unchanged or an *APIError.
// There is no retry, caching or request de-duplication.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:4000/v1"

var errNullBody = errors.New("response body is JSON null")

// Client issues requests against a configured base URL. Resource groups are
// exposed as fields, one per backend area.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	telemetry  *telemetry

	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider

	Users     *UserService
	Tokens    *TokenService
	Resources *ResourceService
	Reviews   *ReviewService
	Admin     *AdminService
	Fellows   *FellowService
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client. The default client has no
// timeout; use the call context to bound a request.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(client *Client) {
		client.logger = logger
	}
}

// WithTracerProvider sets the provider for request spans. The global provider
// is used by default.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(client *Client) {
		client.tracerProvider = tp
	}
}

// WithMeterProvider sets the provider for request metrics. The global
// provider is used by default.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(client *Client) {
		client.meterProvider = mp
	}
}

// New creates a Client. An empty baseURL selects DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tracerProvider == nil {
		c.tracerProvider = otel.GetTracerProvider()
	}
	if c.meterProvider == nil {
		c.meterProvider = otel.GetMeterProvider()
	}
	c.telemetry = newTelemetry(c.tracerProvider, c.meterProvider, c.logger)

	c.Users = &UserService{c: c}
	c.Tokens = &TokenService{c: c}
	c.Resources = &ResourceService{c: c}
	c.Reviews = &ReviewService{c: c}
	c.Admin = &AdminService{c: c}
	c.Fellows = &FellowService{c: c}
	return c
}

// BaseURL returns the normalised base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// requestOptions describes one call. A non-empty token adds a bearer
// Authorization header; a non-nil body is sent as JSON.
type requestOptions struct {
	method  string
	headers http.Header
	token   string
	body    any
}

// request performs the call and translates every failure into *APIError.
func (c *Client) request(ctx context.Context, endpoint string, opts requestOptions) (_ Envelope, err error) {
	method := opts.method
	if method == "" {
		method = http.MethodGet
	}
	url := c.baseURL + endpoint
	requestID := uuid.NewString()
	log := c.logger.With("request_id", requestID, "method", method, "url", url)

	ctx, span := c.telemetry.start(ctx, method, url)
	start := time.Now()
	status := 0
	defer func() {
		reported := status
		if apiErr, ok := AsAPIError(err); ok {
			reported = apiErr.Status
		}
		c.telemetry.finish(ctx, span, method, reported, time.Since(start), err)
	}()

	var body io.Reader
	if opts.body != nil {
		b, err := json.Marshal(opts.body)
		if err != nil {
			log.Error("encode request body", "err", err)
			return nil, newNetworkError(err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		log.Error("build request", "err", err)
		return nil, newNetworkError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range opts.headers {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if opts.token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.token)
	}

	log.Debug("api request", "authenticated", opts.token != "")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("api request failed", "err", err)
		return nil, newNetworkError(err)
	}
	defer func() { _ = resp.Body.Close() }()
	status = resp.StatusCode

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("read response body", "status", status, "err", err)
		return nil, newNetworkError(err)
	}
	var data Envelope
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Error("decode response body", "status", status, "err", err)
		return nil, newNetworkError(err)
	}
	if data == nil {
		log.Error("decode response body", "status", status, "err", errNullBody)
		return nil, newNetworkError(errNullBody)
	}

	log.Debug("api response", "status", status, "duration", time.Since(start))
	if status < 200 || status > 299 {
		apiErr := errorFromBody(status, data)
		log.Warn("api error response", "status", status, "message", apiErr.Message)
		return nil, apiErr
	}
	return data, nil
}
