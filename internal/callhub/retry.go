package callhub

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"
)

// RetryPolicy configures exponential backoff for outbound requests.
// Only HTTP 429, 5xx, connection errors and timeouts are retried; other
// client errors are handed back to the caller untouched.
type RetryPolicy struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Factor         float64

	// jitter returns a multiplier applied to the backoff delay.
	// Overridable in tests; defaults to Uniform(0.8, 1.2).
	jitter func() float64
}

// DefaultRetryPolicy matches the CallHub rate-limit guidance: 3 retries,
// 2s initial delay doubling up to 60s.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:     3,
		InitialBackoff: 2 * time.Second,
		MaxBackoff:     60 * time.Second,
		Factor:         2.0,
	}
}

func (p RetryPolicy) withDefaults() RetryPolicy {
	def := DefaultRetryPolicy()
	if p.MaxRetries == 0 {
		p.MaxRetries = def.MaxRetries
	}
	if p.InitialBackoff == 0 {
		p.InitialBackoff = def.InitialBackoff
	}
	if p.MaxBackoff == 0 {
		p.MaxBackoff = def.MaxBackoff
	}
	if p.Factor == 0 {
		p.Factor = def.Factor
	}
	if p.jitter == nil {
		p.jitter = func() float64 { return 0.8 + 0.4*rand.Float64() }
	}
	return p
}

// Do runs op with retries. op is responsible for building a fresh request on
// every attempt. A response with a non-retryable status is returned as-is;
// status handling is the caller's job. After the retry budget is exhausted
// the last failure is wrapped in a RequestError.
func (p RetryPolicy) Do(ctx context.Context, logger *slog.Logger, op func(context.Context) (*http.Response, error)) (*http.Response, error) {
	p = p.withDefaults()

	backoff := p.InitialBackoff
	var lastErr error
	lastStatus := 0

	for attempt := 0; ; attempt++ {
		resp, err := op(ctx)
		if err == nil && !retryableStatus(resp.StatusCode) {
			return resp, nil
		}

		var retryAfter time.Duration
		haveRetryAfter := false

		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// Transport-level failures (connection refused, timeouts)
			// are always retryable.
			lastErr = err
			lastStatus = 0
		} else {
			lastStatus = resp.StatusCode
			lastErr = fmt.Errorf("HTTP %s", resp.Status)
			retryAfter, haveRetryAfter = parseRetryAfter(resp.Header.Get("Retry-After"))
			resp.Body.Close()
		}

		if attempt >= p.MaxRetries {
			return nil, &RequestError{Status: lastStatus, Err: lastErr}
		}

		var delay time.Duration
		if haveRetryAfter {
			// The server knows best; use its delay verbatim.
			delay = retryAfter
		} else {
			delay = min(time.Duration(float64(backoff)*p.jitter()), p.MaxBackoff)
			backoff = min(time.Duration(float64(backoff)*p.Factor), p.MaxBackoff)
		}

		logger.Warn("request failed, retrying",
			"attempt", attempt+1,
			"max_retries", p.MaxRetries,
			"delay", delay,
			"retry_after", haveRetryAfter,
			"error", lastErr,
		)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func retryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || (status >= 500 && status < 600)
}

// parseRetryAfter handles both forms of the Retry-After header: a number of
// seconds or an HTTP-date. Negative delays collapse to zero.
func parseRetryAfter(value string) (time.Duration, bool) {
	if value == "" {
		return 0, false
	}
	if secs, err := time.ParseDuration(value + "s"); err == nil {
		return max(secs, 0), true
	}
	if date, err := http.ParseTime(value); err == nil {
		return max(time.Until(date), 0), true
	}
	return 0, false
}
