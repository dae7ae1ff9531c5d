package clients

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nishantarora/portfolio/internal/adapters/http/middleware"
	"github.com/nishantarora/portfolio/internal/platform/config"
)

func testConfig(baseURL string) *Config {
	return &Config{
		BaseURL:     baseURL,
		ServiceName: "content-host",
		Timeout:     5 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     3,
			InitialInterval: time.Millisecond,
			MaxInterval:     10 * time.Millisecond,
			Multiplier:      2.0,
			JitterFactor:    0.25,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   5,
			Timeout:       time.Second,
			HalfOpenLimit: 2,
		},
	}
}

func statusServer(t *testing.T, calls *int32, status func(n int32) int) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		n := atomic.AddInt32(calls, 1)
		w.WriteHeader(status(n))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil)
	require.ErrorContains(t, err, "config is required")

	cfg := testConfig("https://example.com")
	cfg.ServiceName = ""

	_, err = New(cfg)
	require.ErrorContains(t, err, "service name is required")
}

func TestClient_BuildURL(t *testing.T) {
	client, err := New(testConfig("https://raw.example.com/site/"))
	require.NoError(t, err)

	assert.Equal(t, "https://raw.example.com/site/posts/posts.json", client.buildURL("/posts/posts.json"))
	assert.Equal(t, "https://raw.example.com/site/posts/a.md", client.buildURL("posts/a.md"))
}

func TestClient_HeaderPropagation(t *testing.T) {
	var requestID, correlationID, userAgent string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get(middleware.HeaderRequestID)
		correlationID = r.Header.Get(middleware.HeaderCorrelationID)
		userAgent = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.UserAgent = "portfolio/test"

	client, err := New(cfg)
	require.NoError(t, err)

	ctx := middleware.ContextWithRequestID(context.Background(), "req-1")
	ctx = middleware.ContextWithCorrelationID(ctx, "corr-1")

	resp, err := client.Get(ctx, "/feed.xml")
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, "corr-1", correlationID)
	assert.Equal(t, "portfolio/test", userAgent)
}

func TestClient_Retries(t *testing.T) {
	tests := []struct {
		name        string
		status      func(n int32) int
		wantStatus  int
		wantErr     error
		wantAttempt int32
	}{
		{
			name: "server error then success",
			status: func(n int32) int {
				if n < 3 {
					return http.StatusInternalServerError
				}
				return http.StatusOK
			},
			wantStatus:  http.StatusOK,
			wantAttempt: 3,
		},
		{
			name:        "not found is not retried",
			status:      func(int32) int { return http.StatusNotFound },
			wantStatus:  http.StatusNotFound,
			wantAttempt: 1,
		},
		{
			name:        "persistent server error exhausts attempts",
			status:      func(int32) int { return http.StatusServiceUnavailable },
			wantErr:     ErrMaxRetriesExceeded,
			wantAttempt: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			srv := statusServer(t, &calls, tt.status)

			client, err := New(testConfig(srv.URL))
			require.NoError(t, err)

			resp, err := client.Get(context.Background(), "/posts/posts.json")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantStatus, resp.StatusCode)
				require.NoError(t, resp.Body.Close())
			}

			assert.Equal(t, tt.wantAttempt, atomic.LoadInt32(&calls))
		})
	}
}

func TestClient_CircuitOpensAndShortCircuits(t *testing.T) {
	var calls int32
	srv := statusServer(t, &calls, func(int32) int { return http.StatusBadGateway })

	cfg := testConfig(srv.URL)
	cfg.Retry.MaxAttempts = 1
	cfg.Circuit.MaxFailures = 2

	client, err := New(cfg)
	require.NoError(t, err)

	_, err = client.Get(context.Background(), "/a")
	require.Error(t, err)
	assert.Equal(t, StateClosed, client.CircuitState())

	_, err = client.Get(context.Background(), "/a")
	require.Error(t, err)
	assert.Equal(t, StateOpen, client.CircuitState())

	before := atomic.LoadInt32(&calls)

	_, err = client.Get(context.Background(), "/a")
	require.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, before, atomic.LoadInt32(&calls))
}

func TestClient_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := New(testConfig(srv.URL))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err = client.Get(ctx, "/slow")
	require.Error(t, err)
}

func TestClient_BackOffGrows(t *testing.T) {
	cfg := testConfig("https://example.com")
	cfg.Retry.InitialInterval = 100 * time.Millisecond
	cfg.Retry.MaxInterval = time.Second
	cfg.Retry.JitterFactor = 0

	client, err := New(cfg)
	require.NoError(t, err)

	b := client.newBackOff()

	assert.Equal(t, 100*time.Millisecond, b.NextBackOff())
	assert.Equal(t, 200*time.Millisecond, b.NextBackOff())
	assert.Equal(t, 400*time.Millisecond, b.NextBackOff())
	assert.Equal(t, 800*time.Millisecond, b.NextBackOff())
	assert.Equal(t, time.Second, b.NextBackOff())
}

type testNetError struct{ timeout bool }

func (e testNetError) Error() string   { return "test net error" }
func (e testNetError) Timeout() bool   { return e.timeout }
func (e testNetError) Temporary() bool { return true }

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"deadline", context.DeadlineExceeded, false},
		{"net timeout", testNetError{timeout: true}, true},
		{"net non-timeout", testNetError{}, false},
		{"connection refused", &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, isRetryableError(tt.err))
		})
	}
}
