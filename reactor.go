// Package reactorx provides a unidirectional reactive state container.
//
// A Reactor turns actions into ordered sequences of mutations and folds each
// mutation into an immutable state snapshot. A Runtime drives a Reactor: it
// queues actions, runs the mutation pipeline, merges in mutations coming from
// external sources, applies them one at a time on a single goroutine, and
// publishes every resulting snapshot to its observers.
//
//	rt := reactorx.NewRuntime(myReactor, initial)
//	rt.Start(ctx)
//	defer rt.Stop()
//	rt.Send(action)
//	for s := range rt.Observe(ctx) { ... }
//
// Fields that must be delivered once per assignment (alerts, navigation
// requests) are modelled with Pulse and observed through ObservePulse.
package reactorx

import (
	"context"
	"errors"
	"iter"
	"time"
)

// Reactor defines the behaviour of a container.
//
// Mutate converts one action into a lazy, ordered, finite sequence of
// mutations. It receives a copy of the current snapshot for read-only use and
// may block between yields while waiting on asynchronous work; it must return
// promptly once ctx is done or yield reports false.
//
// Reduce folds one mutation into a state and returns the next state. It must be
// pure: same inputs, same output, no side effects.
type Reactor[A, M, S any] interface {
	Mutate(ctx context.Context, action A, current S) iter.Seq[M]
	Reduce(state S, mutation M) S
}

// Transformer is implemented by reactors that merge additional mutation
// streams, usually derived from shared services, into the stream produced by
// Mutate. The returned channel must preserve the order of mutations.
type Transformer[M any] interface {
	Transform(ctx context.Context, mutations <-chan M) <-chan M
}

// Source feeds externally produced mutations into a Runtime.
type Source[M any] interface {
	Mutations() <-chan M
}

// Metadata describes one applied mutation.
type Metadata struct {
	ReactorID string    `json:"reactorID" yaml:"reactorID"`
	Sequence  uint64    `json:"sequence" yaml:"sequence"`
	Mutation  string    `json:"mutation" yaml:"mutation"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// Publisher is notified after every applied mutation.
type Publisher[M any] interface {
	Publish(ctx context.Context, mutation M, metadata Metadata) error
	Close() error
}

var (
	// ErrQueueFull is returned by Send when the action queue is at capacity.
	ErrQueueFull = errors.New("action queue full (backpressure)")
	// ErrStopped is returned once the runtime has been torn down.
	ErrStopped = errors.New("runtime stopped")
)
