package extensibility

import (
	"context"
	"iter"
	"log"
	"time"

	"github.com/comalice/reactorx"
)

// LoggingReactor wraps a Reactor and logs every action together with the
// mutations it produced and how long the sequence took to drain.
type LoggingReactor[A, M, S any] struct {
	inner  reactorx.Reactor[A, M, S]
	logger *log.Logger
}

// NewLoggingReactor wraps inner. A nil logger means log.Default().
func NewLoggingReactor[A, M, S any](inner reactorx.Reactor[A, M, S], logger *log.Logger) *LoggingReactor[A, M, S] {
	if logger == nil {
		logger = log.Default()
	}
	return &LoggingReactor[A, M, S]{inner: inner, logger: logger}
}

// Mutate logs before and after draining the inner mutation sequence.
func (r *LoggingReactor[A, M, S]) Mutate(ctx context.Context, action A, current S) iter.Seq[M] {
	seq := r.inner.Mutate(ctx, action, current)
	return func(yield func(M) bool) {
		r.logger.Printf("LOG: Executing action %T %+v", action, action)
		start := time.Now()
		n := 0
		defer func() {
			r.logger.Printf("LOG: Action %T produced %d mutation(s) in %v", action, n, time.Since(start))
		}()
		for m := range seq {
			n++
			if !yield(m) {
				return
			}
		}
	}
}

func (r *LoggingReactor[A, M, S]) Reduce(state S, mutation M) S {
	return r.inner.Reduce(state, mutation)
}

// Transform delegates to the inner reactor when it is a Transformer and
// passes mutations through unchanged otherwise.
func (r *LoggingReactor[A, M, S]) Transform(ctx context.Context, mutations <-chan M) <-chan M {
	if t, ok := r.inner.(reactorx.Transformer[M]); ok {
		return t.Transform(ctx, mutations)
	}
	return mutations
}
