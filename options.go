package reactorx

import (
	"log"

	"go.opentelemetry.io/otel/trace"
)

const (
	defaultQueueSize        = 1000
	defaultSubscriberBuffer = 64
)

// Option configures a Runtime via the functional options pattern.
type Option func(*settings)

type settings struct {
	queueSize        int
	subscriberBuffer int
	logger           *log.Logger
	tracerProvider   trace.TracerProvider
	// Typed as any so options stay free of type parameters; NewRuntime
	// asserts them back to the runtime's mutation type.
	publisher any
	sources   []any
}

// WithQueueSize sets the capacity of the action queue.
func WithQueueSize(size int) Option {
	return func(s *settings) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithSubscriberBuffer sets the per-observer snapshot buffer. Observers that
// fall further behind than this stall the reduce loop until they catch up.
func WithSubscriberBuffer(size int) Option {
	return func(s *settings) {
		if size > 0 {
			s.subscriberBuffer = size
		}
	}
}

// WithLogger replaces log.Default for runtime diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(s *settings) {
		s.logger = l
	}
}

// WithTracerProvider sets the provider used for mutate spans. Defaults to the
// global otel provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *settings) {
		s.tracerProvider = tp
	}
}

// WithPublisher registers a Publisher notified after each applied mutation.
// Its mutation type must match the runtime's.
func WithPublisher[M any](p Publisher[M]) Option {
	return func(s *settings) {
		s.publisher = p
	}
}

// WithSource merges an extra mutation source into the runtime.
// Its mutation type must match the runtime's.
func WithSource[M any](src Source[M]) Option {
	return func(s *settings) {
		s.sources = append(s.sources, src)
	}
}
