// Package production provides Publisher implementations for reactorx runtimes:
// forwarding applied mutations to a channel, a logger, or a YAML trace.
package production

import (
	"context"

	"github.com/comalice/reactorx"
)

// PublishedMutation bundles a mutation with its runtime metadata.
type PublishedMutation[M any] struct {
	Mutation M
	Metadata reactorx.Metadata
}

// ChannelPublisher forwards applied mutations to a Go channel.
// Non-blocking publish with drop on backpressure.
type ChannelPublisher[M any] struct {
	ch chan<- PublishedMutation[M]
}

// NewChannelPublisher creates a ChannelPublisher with the given output channel.
func NewChannelPublisher[M any](ch chan<- PublishedMutation[M]) *ChannelPublisher[M] {
	return &ChannelPublisher[M]{ch: ch}
}

func (p *ChannelPublisher[M]) Publish(ctx context.Context, mutation M, metadata reactorx.Metadata) error {
	select {
	case p.ch <- PublishedMutation[M]{Mutation: mutation, Metadata: metadata}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil // Non-blocking drop
	}
}

func (p *ChannelPublisher[M]) Close() error {
	close(p.ch)
	return nil
}
