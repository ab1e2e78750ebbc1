package rfd2pdf

import (
	"context"
	"fmt"
)

// runTask runs fn on its own goroutine and returns its result, or ctx.Err()
// when ctx ends first. A panic inside fn is reported as ErrTaskFailure
// rather than crashing the caller.
//
// runTask never returns while fn is still running: after cancellation it
// waits for fn to notice ctx and exit, so the caller may remove anything fn
// was writing to. fn must honor ctx.
func runTask[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	type result struct {
		value T
		err   error
	}

	done := make(chan result, 1)

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- result{err: fmt.Errorf("%w: panic: %v", ErrTaskFailure, rec)}
			}
		}()
		v, err := fn(ctx)
		done <- result{value: v, err: err}
	}()

	select {
	case <-ctx.Done():
		<-done
		return zero, ctx.Err()
	case r := <-done:
		return r.value, r.err
	}
}
