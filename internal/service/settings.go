// Package service holds the shared services screens depend on. A Provider is
// created once and handed to every screen; screens only subscribe to it.
package service

import (
	"context"
	"errors"
	"sync"

	"github.com/comalice/reactorx/internal/theme"
)

// ErrClosed is returned when publishing on a closed service.
var ErrClosed = errors.New("settings service closed")

// Event is a settings notification. Implemented by SettingsChanged.
type Event interface {
	isSettingsEvent()
}

// SettingsChanged reports a new background color.
type SettingsChanged struct {
	Color theme.Color
}

func (SettingsChanged) isSettingsEvent() {}

// SettingsService broadcasts settings changes.
type SettingsService interface {
	// Events subscribes to settings events until ctx is done or the service
	// is closed, at which point the channel is closed.
	Events(ctx context.Context) <-chan Event
	// SetBackgroundColor broadcasts SettingsChanged to every subscriber.
	SetBackgroundColor(ctx context.Context, c theme.Color) error
	Close() error
}

// SettingsBus is an in-process SettingsService. Each subscriber has its own
// buffered channel; a full subscriber blocks the publisher until it drains,
// its context ends or the publisher's context ends.
type SettingsBus struct {
	mu     sync.RWMutex
	subs   map[*busSub]struct{}
	buffer int
	closed bool
	done   chan struct{}
}

// NewSettingsBus creates a SettingsBus with the given per-subscriber buffer.
func NewSettingsBus(buffer int) *SettingsBus {
	if buffer <= 0 {
		buffer = 1
	}
	return &SettingsBus{
		subs:   make(map[*busSub]struct{}),
		buffer: buffer,
		done:   make(chan struct{}),
	}
}

func (b *SettingsBus) Events(ctx context.Context) <-chan Event {
	sub := &busSub{ctx: ctx, ch: make(chan Event, b.buffer)}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		sub.close()
		return sub.ch
	}
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-b.done:
		}
		b.mu.Lock()
		delete(b.subs, sub)
		b.mu.Unlock()
		sub.close()
	}()
	return sub.ch
}

func (b *SettingsBus) SetBackgroundColor(ctx context.Context, c theme.Color) error {
	return b.publish(ctx, SettingsChanged{Color: c})
}

func (b *SettingsBus) publish(ctx context.Context, e Event) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrClosed
	}
	subs := make([]*busSub, 0, len(b.subs))
	for sub := range b.subs {
		subs = append(subs, sub)
	}
	b.mu.RUnlock()

	var err error
	for _, sub := range subs {
		if derr := sub.deliver(ctx, e); derr != nil && err == nil {
			err = derr
		}
	}
	return err
}

// Subscribers returns the number of live subscriptions.
func (b *SettingsBus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close ends every subscription. Safe to call multiple times.
func (b *SettingsBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	close(b.done)
	return nil
}

type busSub struct {
	ctx    context.Context
	ch     chan Event
	mu     sync.Mutex
	closed bool
}

// deliver reports an error only when ctx ended before e was handed over.
func (s *busSub) deliver(ctx context.Context, e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	select {
	case s.ch <- e:
		return nil
	default:
	}
	select {
	case s.ch <- e:
		return nil
	case <-s.ctx.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *busSub) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}
