// Package extensibility holds pluggable pieces for reactorx runtimes:
// mutation sources and reactor decorators.
package extensibility

import (
	"sync"
	"time"
)

// ChannelSource is a reactorx.Source backed by a Go channel.
// Provides a simple way to feed external mutations into a Runtime.
type ChannelSource[M any] struct {
	ch chan M
}

// NewChannelSource creates a ChannelSource reading from ch.
// The channel should be buffered if backpressure handling is needed.
func NewChannelSource[M any](ch chan M) *ChannelSource[M] {
	return &ChannelSource[M]{ch: ch}
}

// Mutations returns the receive-only channel for mutations.
func (s *ChannelSource[M]) Mutations() <-chan M {
	return s.ch
}

// TickerSource emits a mutation built by build on every tick of a time.Ticker.
// Ticks are dropped while the consumer is behind.
type TickerSource[M any] struct {
	ch       chan M
	build    func(time.Time) M
	ticker   *time.Ticker
	stop     chan struct{}
	stopOnce sync.Once
}

// NewTickerSource creates a TickerSource that emits every d.
func NewTickerSource[M any](d time.Duration, build func(time.Time) M) *TickerSource[M] {
	t := &TickerSource[M]{
		ch:     make(chan M, 10),
		build:  build,
		ticker: time.NewTicker(d),
		stop:   make(chan struct{}),
	}
	go t.run()
	return t
}

func (t *TickerSource[M]) run() {
	for {
		select {
		case now := <-t.ticker.C:
			select {
			case t.ch <- t.build(now):
			default:
				// drop if full
			}
		case <-t.stop:
			t.ticker.Stop()
			close(t.ch)
			return
		}
	}
}

// Mutations returns the mutation channel. It is closed by Stop.
func (t *TickerSource[M]) Mutations() <-chan M {
	return t.ch
}

// Stop stops the ticker and closes the channel. Safe to call more than once.
func (t *TickerSource[M]) Stop() {
	t.stopOnce.Do(func() { close(t.stop) })
}
