// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log"
	"time"

	"github.com/comalice/reactorx"
)

// Counter is a minimal reactor: every action is emitted fanout times and
// each mutation adds one to the state.
type Counter struct {
	Fanout int
}

func (c Counter) Mutate(_ context.Context, _ struct{}, _ int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < max(c.Fanout, 1); i++ {
			if !yield(1) {
				return
			}
		}
	}
}

func (Counter) Reduce(s, m int) int {
	return s + m
}

// QuietLogger discards runtime diagnostics.
func QuietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// NewCounterRuntime returns a started counter runtime. Stop it when done.
func NewCounterRuntime(fanout int, opts ...reactorx.Option) *reactorx.Runtime[struct{}, int, int] {
	opts = append([]reactorx.Option{reactorx.WithLogger(QuietLogger())}, opts...)
	rt := reactorx.NewRuntime[struct{}, int, int](Counter{Fanout: fanout}, 0, opts...)
	if err := rt.Start(context.Background()); err != nil {
		panic(err)
	}
	return rt
}

// SendAll sends n actions, retrying while the queue is full.
func SendAll(rt *reactorx.Runtime[struct{}, int, int], n int) error {
	for i := 0; i < n; i++ {
		for {
			err := rt.Send(struct{}{})
			if err == nil {
				break
			}
			if !errors.Is(err, reactorx.ErrQueueFull) {
				return err
			}
			time.Sleep(time.Microsecond)
		}
	}
	return nil
}

// WaitForState polls until pred holds for rt's state.
func WaitForState[A, M, S any](rt *reactorx.Runtime[A, M, S], timeout time.Duration, pred func(S) bool) error {
	deadline := time.Now().Add(timeout)
	for !pred(rt.State()) {
		if time.Now().After(deadline) {
			return fmt.Errorf("timeout waiting for state, last %+v", rt.State())
		}
		time.Sleep(100 * time.Microsecond)
	}
	return nil
}
