package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errTransient = errors.New("transient")
var errPermanent = errors.New("permanent")

// fastPolicy keeps backoff sleeps negligible in tests.
func fastPolicy(maxRetries int) Policy {
	return Policy{
		MaxRetries:    maxRetries,
		InitialDelay:  time.Microsecond,
		BackoffFactor: 2.0,
	}
}

func isTransient(err error) bool {
	return errors.Is(err, errTransient)
}

func TestDoSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := fastPolicy(3).Do(context.Background(), func() error {
		calls++
		return nil
	}, isTransient)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestDoRetriesThenSucceeds(t *testing.T) {
	calls := 0
	result, err := DoValue(context.Background(), fastPolicy(3), func() (string, error) {
		calls++
		if calls <= 2 {
			return "", errTransient
		}
		return "ok", nil
	}, isTransient)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "ok" {
		t.Errorf("expected success value, got %q", result)
	}
	if calls != 3 {
		t.Errorf("fails twice then succeeds should invoke exactly 3 times, got %d", calls)
	}
}

func TestDoExhaustsRetries(t *testing.T) {
	calls := 0
	err := fastPolicy(2).Do(context.Background(), func() error {
		calls++
		return errTransient
	}, isTransient)

	if !errors.Is(err, errTransient) {
		t.Fatalf("expected the last failure to surface, got %v", err)
	}
	if calls != 3 {
		t.Errorf("maxRetries=2 should invoke exactly 3 times, got %d", calls)
	}
}

func TestDoNonRetryablePropagatesImmediately(t *testing.T) {
	calls := 0
	start := time.Now()
	err := Policy{MaxRetries: 5, InitialDelay: time.Hour, BackoffFactor: 2.0}.Do(
		context.Background(),
		func() error {
			calls++
			return errPermanent
		},
		isTransient,
	)

	if !errors.Is(err, errPermanent) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("non-retryable failure should invoke exactly once, got %d", calls)
	}
	if time.Since(start) > time.Second {
		t.Error("non-retryable failure should not sleep")
	}
}

func TestDoNilRetryableRetriesEverything(t *testing.T) {
	calls := 0
	err := fastPolicy(1).Do(context.Background(), func() error {
		calls++
		return errPermanent
	}, nil)

	if !errors.Is(err, errPermanent) {
		t.Fatalf("expected last error, got %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 calls with nil predicate, got %d", calls)
	}
}

func TestDoHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	done := make(chan error, 1)
	go func() {
		done <- Policy{MaxRetries: 3, InitialDelay: time.Hour, BackoffFactor: 2.0}.Do(
			ctx,
			func() error {
				calls++
				return errTransient
			},
			isTransient,
		)
	}()

	// Give the first attempt time to fail and enter the backoff sleep.
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Do did not return after cancellation")
	}
	if calls != 1 {
		t.Errorf("expected 1 call before cancellation, got %d", calls)
	}
}

func TestDoValueReturnsZeroOnFailure(t *testing.T) {
	result, err := DoValue(context.Background(), fastPolicy(0), func() (int, error) {
		return 42, errPermanent
	}, isTransient)

	if err == nil {
		t.Fatal("expected error")
	}
	if result != 0 {
		t.Errorf("expected zero value on failure, got %d", result)
	}
}
