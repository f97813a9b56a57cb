package reactorx

import (
	"context"
	"fmt"
	"log"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const tracerName = "github.com/comalice/reactorx"

// Runtime is a running container for a Reactor.
// Thread-safe: Send, State and Observe may be called from any goroutine.
// Mutations are applied on a single goroutine, one at a time.
type Runtime[A, M, S any] struct {
	id      string
	reactor Reactor[A, M, S]

	mu      sync.RWMutex
	state   S
	seq     uint64
	subs    map[*subscriber[S]]struct{}
	started bool
	stopped bool
	cancel  context.CancelFunc

	actions   chan A
	done      chan struct{}
	logger    *log.Logger
	tracer    trace.Tracer
	publisher Publisher[M]
	sources   []Source[M]
	subBuffer int
}

// NewRuntime creates a Runtime for reactor seeded with initial.
// Panics if a publisher or source option carries a different mutation type.
func NewRuntime[A, M, S any](reactor Reactor[A, M, S], initial S, opts ...Option) *Runtime[A, M, S] {
	cfg := settings{
		queueSize:        defaultQueueSize,
		subscriberBuffer: defaultSubscriberBuffer,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.Default()
	}
	if cfg.tracerProvider == nil {
		cfg.tracerProvider = otel.GetTracerProvider()
	}

	r := &Runtime[A, M, S]{
		id:        uuid.NewString(),
		reactor:   reactor,
		state:     initial,
		subs:      make(map[*subscriber[S]]struct{}),
		actions:   make(chan A, cfg.queueSize),
		done:      make(chan struct{}),
		logger:    cfg.logger,
		tracer:    cfg.tracerProvider.Tracer(tracerName),
		subBuffer: cfg.subscriberBuffer,
	}

	if cfg.publisher != nil {
		p, ok := cfg.publisher.(Publisher[M])
		if !ok {
			panic(fmt.Sprintf("reactorx: publisher %T does not publish %s", cfg.publisher, reflect.TypeFor[M]()))
		}
		r.publisher = p
	}
	for _, src := range cfg.sources {
		s, ok := src.(Source[M])
		if !ok {
			panic(fmt.Sprintf("reactorx: source %T does not produce %s", src, reflect.TypeFor[M]()))
		}
		r.sources = append(r.sources, s)
	}
	return r
}

// ID returns the runtime's unique identifier.
func (r *Runtime[A, M, S]) ID() string {
	return r.id
}

// Start launches the action pump, the transform stage and the reduce loop.
// Idempotent while running; returns ErrStopped after Stop.
func (r *Runtime[A, M, S]) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return ErrStopped
	}
	if r.started {
		return nil
	}
	r.started = true
	ctx, r.cancel = context.WithCancel(ctx)

	g, gctx := errgroup.WithContext(ctx)

	mutations := make(chan M)
	g.Go(func() error {
		r.pump(gctx, mutations)
		return nil
	})

	var stream <-chan M = mutations
	if t, ok := r.reactor.(Transformer[M]); ok {
		stream = t.Transform(gctx, stream)
	}
	if len(r.sources) > 0 {
		srcs := []<-chan M{stream}
		for _, s := range r.sources {
			srcs = append(srcs, s.Mutations())
		}
		stream = Merge(gctx, srcs...)
	}

	g.Go(func() error {
		r.apply(gctx, stream)
		return nil
	})

	go func() {
		_ = g.Wait()
		// Teardown through ctx counts as a stop.
		r.mu.Lock()
		r.stopped = true
		r.mu.Unlock()
		r.finish()
		close(r.done)
	}()
	return nil
}

// Send enqueues an action. Never blocks; returns ErrQueueFull on backpressure
// and ErrStopped after teardown. Actions sent before Start are queued.
func (r *Runtime[A, M, S]) Send(action A) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.stopped {
		return ErrStopped
	}
	select {
	case r.actions <- action:
		return nil
	default:
		return ErrQueueFull
	}
}

// State returns the current snapshot.
func (r *Runtime[A, M, S]) State() S {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Observe subscribes to state snapshots. The current snapshot is delivered
// first, then one snapshot per applied mutation in application order. The
// channel closes when ctx is done or the runtime stops.
func (r *Runtime[A, M, S]) Observe(ctx context.Context) <-chan S {
	sub := &subscriber[S]{ctx: ctx, ch: make(chan S, r.subBuffer)}

	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		sub.close()
		return sub.ch
	}
	sub.ch <- r.state
	r.subs[sub] = struct{}{}
	r.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-r.done:
		}
		r.unsubscribe(sub)
	}()
	return sub.ch
}

// Stop tears the runtime down and waits for its goroutines to exit. No
// mutation is applied once Stop has begun. Safe to call multiple times.
func (r *Runtime[A, M, S]) Stop() error {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		<-r.done
		return nil
	}
	r.stopped = true
	started := r.started
	if r.cancel != nil {
		r.cancel()
	}
	r.mu.Unlock()

	if !started {
		r.finish()
		close(r.done)
	}
	<-r.done
	return nil
}

// Done is closed once the runtime has fully stopped.
func (r *Runtime[A, M, S]) Done() <-chan struct{} {
	return r.done
}

// pump runs the mutation pipeline for each queued action, in queue order.
func (r *Runtime[A, M, S]) pump(ctx context.Context, out chan<- M) {
	defer close(out)
	for {
		select {
		case action := <-r.actions:
			r.mutate(ctx, action, out)
		case <-ctx.Done():
			return
		}
	}
}

func (r *Runtime[A, M, S]) mutate(ctx context.Context, action A, out chan<- M) {
	ctx, span := r.tracer.Start(ctx, "reactorx.mutate", trace.WithAttributes(
		attribute.String("reactorx.id", r.id),
		attribute.String("reactorx.action", fmt.Sprintf("%T", action)),
	))
	count := 0
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Printf("reactor %s: mutate %T panicked: %v", r.id, action, rec)
			span.SetStatus(codes.Error, fmt.Sprint(rec))
		}
		span.SetAttributes(attribute.Int("reactorx.mutations", count))
		span.End()
	}()

	for m := range r.reactor.Mutate(ctx, action, r.State()) {
		if !send(ctx, out, m) {
			return
		}
		count++
	}
}

// apply is the only goroutine that calls Reduce.
func (r *Runtime[A, M, S]) apply(ctx context.Context, in <-chan M) {
	for {
		select {
		case m, ok := <-in:
			if !ok {
				return
			}
			r.reduce(ctx, m)
		case <-ctx.Done():
			return
		}
	}
}

func (r *Runtime[A, M, S]) reduce(ctx context.Context, m M) {
	r.mu.Lock()
	if ctx.Err() != nil {
		r.mu.Unlock()
		return
	}
	next := r.reactor.Reduce(r.state, m)
	r.state = next
	r.seq++
	seq := r.seq
	subs := make([]*subscriber[S], 0, len(r.subs))
	for sub := range r.subs {
		subs = append(subs, sub)
	}
	r.mu.Unlock()

	for _, sub := range subs {
		sub.deliver(ctx.Done(), next)
	}

	if r.publisher != nil {
		md := Metadata{
			ReactorID: r.id,
			Sequence:  seq,
			Mutation:  fmt.Sprintf("%T", m),
			Timestamp: time.Now(),
		}
		if err := r.publisher.Publish(ctx, m, md); err != nil {
			r.logger.Printf("reactor %s: publish %s: %v", r.id, md.Mutation, err)
		}
	}
}

func (r *Runtime[A, M, S]) unsubscribe(sub *subscriber[S]) {
	r.mu.Lock()
	delete(r.subs, sub)
	r.mu.Unlock()
	sub.close()
}

// finish releases every subscription and the publisher.
func (r *Runtime[A, M, S]) finish() {
	r.mu.Lock()
	subs := r.subs
	r.subs = make(map[*subscriber[S]]struct{})
	r.mu.Unlock()

	for sub := range subs {
		sub.close()
	}
	if r.publisher != nil {
		if err := r.publisher.Close(); err != nil {
			r.logger.Printf("reactor %s: close publisher: %v", r.id, err)
		}
	}
}

type subscriber[S any] struct {
	ctx    context.Context
	ch     chan S
	mu     sync.Mutex
	closed bool
}

// deliver blocks until v is buffered, the subscriber goes away or stop fires.
func (s *subscriber[S]) deliver(stop <-chan struct{}, v S) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.ch <- v:
	case <-s.ctx.Done():
	case <-stop:
	}
}

func (s *subscriber[S]) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}

// ObservePulse delivers each assignment of the pulse field selected by pick
// exactly once. Assignments made before the subscription are not delivered;
// repeated assignments of an identical value are each delivered. Every
// observer gets its own delivery.
func ObservePulse[A, M, S, T any](ctx context.Context, rt *Runtime[A, M, S], pick func(S) Pulse[T]) <-chan T {
	states := rt.Observe(ctx)
	out := make(chan T)
	go func() {
		defer close(out)
		first, ok := <-states
		if !ok {
			return
		}
		last := pick(first).Version()
		for s := range states {
			p := pick(s)
			if p.Version() == last {
				continue
			}
			last = p.Version()
			v, ok := p.Value()
			if !ok {
				continue
			}
			if !send(ctx, out, v) {
				return
			}
		}
	}()
	return out
}
