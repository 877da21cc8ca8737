package services

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
)

// RetryPolicy decides whether a request is attempted again, how long to wait
// between attempts, and when to give up.
type RetryPolicy struct {
	// MaxRetries is the number of backoff retries after the initial attempt.
	// Rate-limit waits (429 with Retry-After) do not count against it.
	MaxRetries int

	// InitialDelay is the backoff before the first retry; it doubles each
	// attempt up to MaxDelay.
	InitialDelay time.Duration

	// MaxDelay bounds both the exponential backoff and Retry-After waits.
	MaxDelay time.Duration

	// RetryNetwork also retries transport-level failures (no response at
	// all) against the backoff budget. Off by default: the transport's own
	// timeout already bounds a hung request.
	RetryNetwork bool
}

// DefaultRetryPolicy returns the default retry configuration.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:   5,
		InitialDelay: 1 * time.Second,
		MaxDelay:     60 * time.Second,
	}
}

// retryableStatus reports whether a status code calls for another attempt.
func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// run invokes op until it yields a response that does not call for another
// attempt, or until the attempt budget is exhausted, in which case the last
// response is returned as-is. The policy never fails on a status code alone;
// the caller inspects the final status.
func (p RetryPolicy) run(ctx context.Context, logger *log.Logger, op func() (*Response, error)) (*Response, error) {
	attempt := 0
	for {
		resp, err := op()
		if err != nil {
			if !p.RetryNetwork || attempt >= p.MaxRetries {
				return nil, err
			}
			wait := p.backoffDelay(attempt)
			logger.Warn("request failed, retrying", "attempt", attempt+1, "wait", wait, "err", err)
			if err := sleep(ctx, wait); err != nil {
				return nil, err
			}
			attempt++
			continue
		}

		if !retryableStatus(resp.StatusCode) {
			return resp, nil
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			if wait, ok := retryAfter(resp.Headers); ok {
				wait = min(wait, p.MaxDelay)
				logger.Warn("rate limited", "wait", wait)
				if err := sleep(ctx, wait); err != nil {
					return nil, err
				}
				// Rate-limit waits are not failures; the attempt
				// budget is untouched.
				continue
			}
		}

		if attempt >= p.MaxRetries {
			logger.Error("all attempts failed", "attempts", attempt+1, "status", resp.StatusCode)
			return resp, nil
		}

		wait := p.backoffDelay(attempt)
		logger.Warn("retrying after backoff", "status", resp.StatusCode, "attempt", attempt+1, "wait", wait)
		if err := sleep(ctx, wait); err != nil {
			return nil, err
		}
		attempt++
	}
}

// backoffDelay returns min(InitialDelay * 2^attempt, MaxDelay).
func (p RetryPolicy) backoffDelay(attempt int) time.Duration {
	d := p.InitialDelay << attempt
	if d <= 0 || d > p.MaxDelay {
		d = p.MaxDelay
	}
	return d
}

// retryAfter parses the Retry-After header as seconds.
func retryAfter(h http.Header) (time.Duration, bool) {
	v := h.Get("Retry-After")
	if v == "" {
		return 0, false
	}
	secs, err := strconv.ParseFloat(v, 64)
	if err != nil || secs < 0 {
		return 0, false
	}
	return time.Duration(secs * float64(time.Second)), true
}

// sleep waits for d or until the context is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
