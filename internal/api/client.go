// Package api is the typed client for the Sabor Real REST backend. It owns
// request construction (JSON bodies, bearer credentials), response decoding,
// and the normalization of non-2xx responses into pkg/errors values.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/Sakurayo-Crispita/saborreal-storefront/pkg/httpclient"
	"github.com/Sakurayo-Crispita/saborreal-storefront/pkg/tracing"
)

// Doer executes an HTTP request. Satisfied by both httpclient.Client and
// httpclient.CircuitBreakerClient.
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// TokenSource returns the current bearer credential, or "" when
// unauthenticated. The session owns the token; the api client only reads it.
type TokenSource func() string

var (
	backendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_requests_total",
			Help: "Total number of requests issued to the backend, by operation and status code",
		},
		[]string{"operation", "status"},
	)

	backendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_request_duration_seconds",
			Help:    "Latency of backend requests, by operation",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

func init() {
	prometheus.MustRegister(backendRequestsTotal)
	prometheus.MustRegister(backendRequestDuration)
}

// Client issues requests to the backend.
type Client struct {
	baseURL        string
	http           Doer
	token          TokenSource
	onUnauthorized func()
	logger         *slog.Logger
}

// New creates a backend client. token may be nil for a purely anonymous
// client (catalog browsing only).
func New(baseURL string, doer Doer, token TokenSource, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    doer,
		token:   token,
		logger:  logger,
	}
}

// SetTokenSource installs the bearer-credential source after construction.
// Needed because the session that owns the token is built around this
// client.
func (c *Client) SetTokenSource(src TokenSource) {
	c.token = src
}

// OnUnauthorized registers the hook fired when an authenticated call comes
// back 401. The session uses this to force-expire itself before the error
// reaches the caller.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// request describes a single backend call.
type request struct {
	operation string // short name for metrics and spans
	method    string
	path      string
	query     url.Values
	body      any  // JSON-encoded when non-nil
	authed    bool // attach the bearer credential
	out       any  // decoded from a 2xx response when non-nil
}

// do executes one backend call. A 204 response resolves without decoding.
// A non-2xx response is normalized via httpclient.ParseResponseError; 401 on
// an authenticated call additionally fires the unauthorized hook before the
// error is returned.
func (c *Client) do(ctx context.Context, r request) error {
	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	var bodyReader io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", r.operation, err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u, bodyReader)
	if err != nil {
		return fmt.Errorf("create %s request: %w", r.operation, err)
	}
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if r.authed && c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	ctx, span := tracing.Tracer("storefront/api").Start(ctx, r.operation)
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", r.method),
		attribute.String("http.path", r.path),
	)

	start := time.Now()
	resp, err := c.http.Do(ctx, req)
	backendRequestDuration.WithLabelValues(r.operation).Observe(time.Since(start).Seconds())
	if err != nil {
		backendRequestsTotal.WithLabelValues(r.operation, "transport_error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		return fmt.Errorf("%s: %w", r.operation, err)
	}

	backendRequestsTotal.WithLabelValues(r.operation, strconv.Itoa(resp.StatusCode)).Inc()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized && r.authed && c.onUnauthorized != nil {
			c.logger.WarnContext(ctx, "authenticated call rejected, expiring session",
				slog.String("operation", r.operation),
			)
			c.onUnauthorized()
		}
		err := httpclient.ParseResponseError(resp)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	defer func() { _ = resp.Body.Close() }()

	if r.out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(r.out); err != nil {
		return fmt.Errorf("decode %s response: %w", r.operation, err)
	}
	return nil
}
