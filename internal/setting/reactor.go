// Package setting implements the settings screen pushed from the text-field
// screen. Choosing a color updates the local state and broadcasts the change
// through the shared settings service.
package setting

import (
	"context"
	"fmt"
	"iter"
	"log"

	"github.com/comalice/reactorx"
	"github.com/comalice/reactorx/internal/service"
	"github.com/comalice/reactorx/internal/theme"
)

// Action is a user intent on the settings screen.
type Action interface {
	isAction()
}

// SelectColor picks a new background color.
type SelectColor struct {
	Color theme.Color
}

func (SelectColor) isAction() {}

// Mutation is a state change on the settings screen.
type Mutation interface {
	isMutation()
}

// SetBackgroundColor records the selected color.
type SetBackgroundColor struct {
	Color theme.Color
}

func (SetBackgroundColor) isMutation() {}

// State is the settings screen snapshot.
type State struct {
	BackgroundColor *theme.Color
}

// Reactor is the settings screen's reactorx.Reactor.
type Reactor struct {
	provider *service.Provider
	logger   *log.Logger
}

// NewReactor creates a settings Reactor bound to provider.
func NewReactor(provider *service.Provider, logger *log.Logger) *Reactor {
	if logger == nil {
		logger = log.Default()
	}
	return &Reactor{provider: provider, logger: logger}
}

func (r *Reactor) Mutate(ctx context.Context, action Action, _ State) iter.Seq[Mutation] {
	switch a := action.(type) {
	case SelectColor:
		return func(yield func(Mutation) bool) {
			if err := r.provider.Settings.SetBackgroundColor(ctx, a.Color); err != nil {
				r.logger.Printf("setting: broadcast %s: %v", a.Color, err)
				return
			}
			yield(SetBackgroundColor{Color: a.Color})
		}
	default:
		panic(fmt.Sprintf("setting: unreachable action %T", action))
	}
}

func (r *Reactor) Reduce(state State, mutation Mutation) State {
	next := state
	switch m := mutation.(type) {
	case SetBackgroundColor:
		c := m.Color
		next.BackgroundColor = &c
	default:
		panic(fmt.Sprintf("setting: unreachable mutation %T", mutation))
	}
	return next
}

// Runtime is the container type driving a settings screen.
type Runtime = reactorx.Runtime[Action, Mutation, State]

// Screen is the presentable handle for a settings screen. It owns a fully
// initialized, not yet started, container.
type Screen struct {
	initial *theme.Color
	rt      *Runtime
}

// NewScreen builds a settings screen seeded with color (may be nil).
func NewScreen(color *theme.Color, provider *service.Provider, logger *log.Logger, opts ...reactorx.Option) *Screen {
	var initial *theme.Color
	if color != nil {
		c := *color
		initial = &c
	}
	if logger != nil {
		opts = append([]reactorx.Option{reactorx.WithLogger(logger)}, opts...)
	}
	rt := reactorx.NewRuntime[Action, Mutation, State](NewReactor(provider, logger), State{BackgroundColor: initial}, opts...)
	return &Screen{initial: initial, rt: rt}
}

// InitialBackgroundColor reports the color the screen was created with.
func (s *Screen) InitialBackgroundColor() *theme.Color {
	return s.initial
}

// Runtime exposes the screen's container.
func (s *Screen) Runtime() *Runtime {
	return s.rt
}

// Present starts the screen's container.
func (s *Screen) Present(ctx context.Context) error {
	return s.rt.Start(ctx)
}

// Dismiss tears the screen's container down.
func (s *Screen) Dismiss() error {
	return s.rt.Stop()
}
