// Package retry provides bounded retry with exponential backoff for
// blocking calls to external services.
package retry

import (
	"context"
	"time"
)

// Policy describes a retry schedule. It is a plain value: construct one at
// startup and reuse it at every call site.
type Policy struct {
	// MaxRetries is the number of retries after the first attempt.
	// Total attempts on permanent failure = MaxRetries + 1.
	MaxRetries int
	// InitialDelay is the sleep before the first retry.
	InitialDelay time.Duration
	// BackoffFactor multiplies the delay after each retry.
	BackoffFactor float64
}

// DefaultPolicy returns the schedule used for worker calls: 3 retries
// starting at 1s, doubling each time.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:    3,
		InitialDelay:  time.Second,
		BackoffFactor: 2.0,
	}
}

// Do invokes fn until it succeeds, fails with a non-retryable error, or the
// attempt budget is exhausted. Non-retryable errors propagate immediately
// without sleeping. Sleeps respect ctx: a cancelled context returns ctx.Err()
// wrapped around nothing further.
func (p Policy) Do(ctx context.Context, fn func() error, retryable func(error) bool) error {
	delay := p.InitialDelay
	var lastErr error

	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if retryable != nil && !retryable(lastErr) {
			return lastErr
		}
		if attempt == p.MaxRetries {
			break
		}
		if err := sleep(ctx, delay); err != nil {
			return err
		}
		delay = time.Duration(float64(delay) * p.BackoffFactor)
	}

	return lastErr
}

// DoValue is Do for calls that return a value. On failure the zero value is
// returned along with the last error.
func DoValue[T any](ctx context.Context, p Policy, fn func() (T, error), retryable func(error) bool) (T, error) {
	var result T
	err := p.Do(ctx, func() error {
		var callErr error
		result, callErr = fn()
		return callErr
	}, retryable)
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// sleep blocks for d or until ctx is cancelled.
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
