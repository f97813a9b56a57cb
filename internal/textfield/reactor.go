// Package textfield implements the text-input screen: typed text is echoed in
// upper case together with its length, digits raise an alert, and the
// background color follows the shared settings service.
package textfield

import (
	"context"
	"fmt"
	"iter"
	"log"

	"github.com/comalice/reactorx"
	"github.com/comalice/reactorx/internal/service"
	"github.com/comalice/reactorx/internal/setting"
	"github.com/comalice/reactorx/internal/theme"
)

// AlertContainsDigit is shown when the input has a digit in it.
const AlertContainsDigit = "소문자를 입력할 수 없습니다."

// Reactor is the text-field screen's reactorx.Reactor.
type Reactor struct {
	provider  *service.Provider
	initial   State
	logger    *log.Logger
	childOpts []reactorx.Option
}

// Option configures a Reactor.
type Option func(*Reactor)

// WithBackgroundColor seeds the initial background color.
func WithBackgroundColor(c theme.Color) Option {
	return func(r *Reactor) {
		r.initial.BackgroundColor = &c
	}
}

// WithLogger sets the logger handed to child screens.
func WithLogger(l *log.Logger) Option {
	return func(r *Reactor) {
		r.logger = l
	}
}

// WithChildOptions configures the containers of pushed settings screens.
func WithChildOptions(opts ...reactorx.Option) Option {
	return func(r *Reactor) {
		r.childOpts = append(r.childOpts, opts...)
	}
}

// New creates a text-field Reactor bound to provider.
func New(provider *service.Provider, opts ...Option) *Reactor {
	r := &Reactor{provider: provider}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// InitialState returns the snapshot a new container starts from.
func (r *Reactor) InitialState() State {
	return r.initial
}

func (r *Reactor) Mutate(ctx context.Context, action Action, current State) iter.Seq[Mutation] {
	switch a := action.(type) {
	case InputField:
		if ContainsDigit(a.Text) {
			return reactorx.Just[Mutation](ShowAlertMessage{Message: AlertContainsDigit})
		}
		return reactorx.Concat(
			reactorx.Just[Mutation](SetCapitalizedString{Value: Capitalize(a.Text)}),
			reactorx.Just[Mutation](SetLengthOfString{Value: CharacterCount(a.Text)}),
		)
	case DidTapSettingButton:
		return func(yield func(Mutation) bool) {
			screen := setting.NewScreen(current.BackgroundColor, r.provider, r.logger, r.childOpts...)
			yield(PushChildController{Screen: screen})
		}
	default:
		panic(fmt.Sprintf("textfield: unreachable action %T", action))
	}
}

// Transform merges background color changes from the settings service.
func (r *Reactor) Transform(ctx context.Context, mutations <-chan Mutation) <-chan Mutation {
	events := reactorx.FlatMap(ctx, r.provider.Settings.Events(ctx), mutationsForEvent)
	return reactorx.Merge(ctx, mutations, events)
}

func mutationsForEvent(e service.Event) iter.Seq[Mutation] {
	switch e := e.(type) {
	case service.SettingsChanged:
		c := e.Color
		return reactorx.Just[Mutation](SetBackgroundColor{Color: &c})
	default:
		return reactorx.Empty[Mutation]()
	}
}

func (r *Reactor) Reduce(state State, mutation Mutation) State {
	return Reduce(state, mutation)
}

// Reduce applies one mutation. Each mutation sets exactly one field.
func Reduce(state State, mutation Mutation) State {
	next := state
	switch m := mutation.(type) {
	case SetBackgroundColor:
		next.BackgroundColor = nil
		if m.Color != nil {
			c := *m.Color
			next.BackgroundColor = &c
		}
	case SetCapitalizedString:
		s := m.Value
		next.CapitalizedString = &s
	case SetLengthOfString:
		n := m.Value
		next.LengthOfString = &n
	case ShowAlertMessage:
		next.AlertMessage = state.AlertMessage.Set(m.Message)
	case PushChildController:
		next.SettingScreen = state.SettingScreen.Set(m.Screen)
	default:
		panic(fmt.Sprintf("textfield: unreachable mutation %T", mutation))
	}
	return next
}

// Runtime is the container type driving a text-field screen.
type Runtime = reactorx.Runtime[Action, Mutation, State]

// NewRuntime wraps r in a container seeded with r.InitialState().
func NewRuntime(r *Reactor, opts ...reactorx.Option) *Runtime {
	return reactorx.NewRuntime[Action, Mutation, State](r, r.InitialState(), opts...)
}
