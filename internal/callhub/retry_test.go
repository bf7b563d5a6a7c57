package callhub

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func fastRetry(maxRetries int) RetryPolicy {
	return RetryPolicy{
		MaxRetries:     maxRetries,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		Factor:         2.0,
	}
}

func TestRetryOn429ThenSuccess(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, APIKey: "k", Retry: fastRetry(3)}, testLogger())
	_, err := c.get(context.Background(), "/v1/agents/", nil)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryOn500(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, APIKey: "k", Retry: fastRetry(2)}, testLogger())
	_, err := c.get(context.Background(), "/v1/agents/", nil)
	require.Error(t, err)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusInternalServerError, reqErr.Status)
	// 1 initial attempt + 2 retries
	assert.Equal(t, 3, calls)
}

func TestNoRetryOn404(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Not found."}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, APIKey: "k", Retry: fastRetry(3)}, testLogger())
	_, err := c.get(context.Background(), "/v1/agents/99/", nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, 1, calls)
}

func TestRetryAfterHeaderHonored(t *testing.T) {
	calls := 0
	var gap time.Duration
	var last time.Time
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		now := time.Now()
		if calls == 2 {
			gap = now.Sub(last)
		}
		last = now
		if calls == 1 {
			// Ask for a delay well above the policy's own backoff.
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, APIKey: "k", Retry: fastRetry(1)}, testLogger())
	_, err := c.get(context.Background(), "/", nil)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, gap, time.Second)
}

func TestRetryConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := New(Config{BaseURL: srv.URL, APIKey: "k", Retry: fastRetry(2)}, testLogger())
	_, err := c.get(context.Background(), "/", nil)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, 0, reqErr.Status)
}

func TestRetryCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(Config{BaseURL: srv.URL, APIKey: "k", Retry: fastRetry(5)}, testLogger())
	_, err := c.get(ctx, "/", nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestParseRetryAfter(t *testing.T) {
	d, ok := parseRetryAfter("30")
	assert.True(t, ok)
	assert.Equal(t, 30*time.Second, d)

	future := time.Now().Add(10 * time.Second).UTC().Format(http.TimeFormat)
	d, ok = parseRetryAfter(future)
	assert.True(t, ok)
	assert.Greater(t, d, 5*time.Second)

	// Dates in the past collapse to zero rather than going negative.
	past := time.Now().Add(-time.Hour).UTC().Format(http.TimeFormat)
	d, ok = parseRetryAfter(past)
	assert.True(t, ok)
	assert.Equal(t, time.Duration(0), d)

	_, ok = parseRetryAfter("")
	assert.False(t, ok)

	_, ok = parseRetryAfter("garbage")
	assert.False(t, ok)
}

func TestBackoffGrowsAndCaps(t *testing.T) {
	p := RetryPolicy{
		MaxRetries:     4,
		InitialBackoff: 10 * time.Millisecond,
		MaxBackoff:     25 * time.Millisecond,
		Factor:         2.0,
		jitter:         func() float64 { return 1.0 },
	}.withDefaults()

	var delays []time.Duration
	backoff := p.InitialBackoff
	for i := 0; i < 4; i++ {
		delay := min(time.Duration(float64(backoff)*p.jitter()), p.MaxBackoff)
		backoff = min(time.Duration(float64(backoff)*p.Factor), p.MaxBackoff)
		delays = append(delays, delay)
	}

	assert.Equal(t, []time.Duration{
		10 * time.Millisecond,
		20 * time.Millisecond,
		25 * time.Millisecond,
		25 * time.Millisecond,
	}, delays)
}
