package httputil

// Notes:
// - Delays are kept at a millisecond so the backoff path runs without
//   slowing the suite; the doubling itself is not timed.

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errTransient = errors.New("transient")

// ---------------------------------------------------------------------------
// TestRetry - Attempt Counting
// ---------------------------------------------------------------------------

func TestRetry(t *testing.T) {
	t.Parallel()

	permanent := errors.New("permanent")

	tests := []struct {
		name      string
		attempts  int
		failures  int // calls that fail before success
		failWith  error
		wantCalls int
		wantErr   error
	}{
		{
			name:      "success first try",
			attempts:  3,
			wantCalls: 1,
		},
		{
			name:      "retryable then success",
			attempts:  3,
			failures:  2,
			failWith:  &RetryableError{Err: errTransient},
			wantCalls: 3,
		},
		{
			name:      "retryable exhausts attempts",
			attempts:  2,
			failures:  5,
			failWith:  &RetryableError{Err: errTransient},
			wantCalls: 2,
			wantErr:   errTransient,
		},
		{
			name:      "permanent error not retried",
			attempts:  3,
			failures:  5,
			failWith:  permanent,
			wantCalls: 1,
			wantErr:   permanent,
		},
		{
			name:      "zero attempts runs once",
			attempts:  0,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			calls := 0
			err := Retry(context.Background(), tt.attempts, time.Millisecond, func() error {
				calls++
				if calls <= tt.failures {
					return tt.failWith
				}
				return nil
			})

			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if tt.wantErr == nil && err != nil {
				t.Errorf("Retry() error = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Retry() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRetry_ContextCancellation
// ---------------------------------------------------------------------------

func TestRetry_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := Retry(ctx, 5, time.Hour, func() error {
		calls++
		cancel()
		return &RetryableError{Err: errTransient}
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Retry() error = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	wrapped := errors.Join(errors.New("outer"), &RetryableError{Err: errTransient})

	if !IsRetryable(wrapped) {
		t.Error("IsRetryable(wrapped) = false, want true")
	}
	if IsRetryable(errTransient) {
		t.Error("IsRetryable(plain) = true, want false")
	}
}
