package httpclient

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testCBConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:         name,
		MaxRequests:  1,
		Interval:     60 * time.Second,
		Timeout:      100 * time.Millisecond, // Short for tests.
		FailureRatio: 0.5,
		MinRequests:  3,
	}
}

func noRetryClient() *Client {
	return New(Config{Timeout: 5 * time.Second, MaxRetries: 0, MaxConnsPerHost: 4})
}

func TestCircuitBreaker_ClosedState_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	cb := NewCircuitBreakerClient(noRetryClient(), testCBConfig("backend-closed"), testLogger())

	resp, err := cb.Get(context.Background(), server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestCircuitBreaker_TripsOnFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cb := NewCircuitBreakerClient(noRetryClient(), testCBConfig("backend-trip"), testLogger())

	// Produce enough failures to trip the breaker.
	for i := 0; i < 3; i++ {
		_, err := cb.Get(context.Background(), server.URL)
		require.Error(t, err) // 5xx responses count as breaker failures.
	}

	assert.Equal(t, gobreaker.StateOpen, cb.State())

	// Subsequent requests fail immediately without touching the server.
	_, err := cb.Get(context.Background(), server.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCircuitOpen)
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	var healthy atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if healthy.Load() {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cb := NewCircuitBreakerClient(noRetryClient(), testCBConfig("backend-recover"), testLogger())

	for i := 0; i < 3; i++ {
		_, _ = cb.Get(context.Background(), server.URL)
	}
	require.Equal(t, gobreaker.StateOpen, cb.State())

	// Backend recovers; after the open timeout a probe request closes the
	// breaker again.
	healthy.Store(true)
	time.Sleep(150 * time.Millisecond)

	resp, err := cb.Get(context.Background(), server.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestCircuitBreaker_FallbackWhenOpen(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cb := NewCircuitBreakerClient(noRetryClient(), testCBConfig("backend-fallback"), testLogger()).
		WithFallback(func(ctx context.Context, err error) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader(`[]`)),
			}, nil
		})

	for i := 0; i < 3; i++ {
		_, _ = cb.Get(context.Background(), server.URL)
	}
	require.Equal(t, gobreaker.StateOpen, cb.State())

	resp, err := cb.Get(context.Background(), server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
