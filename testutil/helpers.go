// Package testutil holds helpers shared by reactorx tests: draining channels
// with timeouts and running a Runtime for the duration of a test.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/comalice/reactorx"
)

var (
	// ErrTimeout is returned when a value does not arrive in time.
	ErrTimeout = errors.New("timed out waiting for value")
	// ErrClosed is returned when the channel closes before a value arrives.
	ErrClosed = errors.New("channel closed")
)

// Next receives one value from ch.
func Next[T any](ch <-chan T, timeout time.Duration) (T, error) {
	var zero T
	select {
	case v, ok := <-ch:
		if !ok {
			return zero, ErrClosed
		}
		return v, nil
	case <-time.After(timeout):
		return zero, ErrTimeout
	}
}

// Collect receives exactly n values from ch within timeout.
func Collect[T any](ch <-chan T, n int, timeout time.Duration) ([]T, error) {
	out := make([]T, 0, n)
	deadline := time.After(timeout)
	for len(out) < n {
		select {
		case v, ok := <-ch:
			if !ok {
				return out, fmt.Errorf("after %d of %d values: %w", len(out), n, ErrClosed)
			}
			out = append(out, v)
		case <-deadline:
			return out, fmt.Errorf("after %d of %d values: %w", len(out), n, ErrTimeout)
		}
	}
	return out, nil
}

// WaitFor receives from ch until pred holds and returns the matching value.
func WaitFor[T any](ctx context.Context, ch <-chan T, timeout time.Duration, pred func(T) bool) (T, error) {
	var zero T
	deadline := time.After(timeout)
	for {
		select {
		case v, ok := <-ch:
			if !ok {
				return zero, ErrClosed
			}
			if pred(v) {
				return v, nil
			}
		case <-deadline:
			return zero, ErrTimeout
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
}

// Quiet reports whether ch stays silent (no value, not closed) for d.
func Quiet[T any](ch <-chan T, d time.Duration) bool {
	select {
	case <-ch:
		return false
	case <-time.After(d):
		return true
	}
}

// Run starts rt and stops it when the test ends. The returned context is
// cancelled at the same time.
func Run[A, M, S any](tb testing.TB, rt *reactorx.Runtime[A, M, S]) context.Context {
	tb.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	if err := rt.Start(ctx); err != nil {
		cancel()
		tb.Fatalf("start runtime: %v", err)
	}
	tb.Cleanup(func() {
		if err := rt.Stop(); err != nil {
			tb.Errorf("stop runtime: %v", err)
		}
		cancel()
	})
	return ctx
}
