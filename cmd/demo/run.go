package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/comalice/reactorx"
	"github.com/comalice/reactorx/internal/config"
	"github.com/comalice/reactorx/internal/extensibility"
	"github.com/comalice/reactorx/internal/production"
	"github.com/comalice/reactorx/internal/service"
	"github.com/comalice/reactorx/internal/setting"
	"github.com/comalice/reactorx/internal/textfield"
	"github.com/comalice/reactorx/internal/theme"
)

type screenRuntime = reactorx.Runtime[textfield.Action, textfield.Mutation, textfield.State]

func run(ctx context.Context, cfg config.Config, settle time.Duration, in io.Reader, out io.Writer, logger *log.Logger) error {
	color, err := cfg.BackgroundColor()
	if err != nil {
		return err
	}

	provider := service.NewProvider()
	defer provider.Close()

	fieldOpts := []textfield.Option{
		textfield.WithLogger(logger),
		textfield.WithChildOptions(append(cfg.RuntimeOptions(), reactorx.WithLogger(logger))...),
	}
	if color != nil {
		fieldOpts = append(fieldOpts, textfield.WithBackgroundColor(*color))
	}
	screen := textfield.New(provider, fieldOpts...)

	var reactor reactorx.Reactor[textfield.Action, textfield.Mutation, textfield.State] = screen
	if cfg.Verbose {
		reactor = extensibility.NewLoggingReactor(reactor, logger)
	}

	opts := append(cfg.RuntimeOptions(), reactorx.WithLogger(logger))
	var pubs []reactorx.Publisher[textfield.Mutation]
	if cfg.Verbose {
		pubs = append(pubs, production.NewLogPublisher[textfield.Mutation](logger))
	}
	if cfg.TraceFile != "" {
		f, err := os.Create(cfg.TraceFile)
		if err != nil {
			return fmt.Errorf("create trace: %w", err)
		}
		defer f.Close()
		pubs = append(pubs, production.NewYAMLTracePublisher[textfield.Mutation](f))
	}
	var applied chan production.PublishedMutation[textfield.Mutation]
	if cfg.ShowMutations {
		applied = make(chan production.PublishedMutation[textfield.Mutation], 64)
		pubs = append(pubs, production.NewChannelPublisher(applied))
	}
	if len(pubs) > 0 {
		opts = append(opts, reactorx.WithPublisher[textfield.Mutation](production.NewMultiPublisher(pubs...)))
	}

	external := make(chan textfield.Mutation, 16)
	opts = append(opts, reactorx.WithSource[textfield.Mutation](extensibility.NewChannelSource(external)))
	if cfg.CycleInterval > 0 {
		cycle := extensibility.NewTickerSource(cfg.CycleInterval, colorCycle())
		defer cycle.Stop()
		opts = append(opts, reactorx.WithSource[textfield.Mutation](cycle))
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	rt := reactorx.NewRuntime[textfield.Action, textfield.Mutation, textfield.State](reactor, screen.InitialState(), opts...)
	if err := rt.Start(runCtx); err != nil {
		return err
	}
	defer rt.Stop()

	notes := make(chan string, 16)
	outputs := []<-chan string{
		field(runCtx, rt, "text", func(s textfield.State) string { return orDash(s.CapitalizedString) }),
		field(runCtx, rt, "length", func(s textfield.State) string {
			if s.LengthOfString == nil {
				return "-"
			}
			return strconv.Itoa(*s.LengthOfString)
		}),
		field(runCtx, rt, "background", func(s textfield.State) string { return colorName(s.BackgroundColor) }),
		reactorx.Map(runCtx, reactorx.ObservePulse(runCtx, rt, func(s textfield.State) reactorx.Pulse[string] {
			return s.AlertMessage
		}), func(msg string) string { return "alert: " + msg }),
		notes,
	}
	if applied != nil {
		outputs = append(outputs, reactorx.Map(runCtx, applied, func(p production.PublishedMutation[textfield.Mutation]) string {
			return fmt.Sprintf("mutation #%d %s", p.Metadata.Sequence, p.Metadata.Mutation)
		}))
	}
	lines := reactorx.Merge(runCtx, outputs...)
	printed := make(chan struct{})
	go func() {
		defer close(printed)
		for l := range lines {
			fmt.Fprintln(out, l)
		}
	}()

	screens := reactorx.ObservePulse(runCtx, rt, func(s textfield.State) reactorx.Pulse[*setting.Screen] {
		return s.SettingScreen
	})
	inputs := scan(runCtx, in)

	var (
		child          *setting.Screen
		awaitingScreen bool
		done           <-chan time.Time
	)
loop:
	for {
		next := inputs
		if awaitingScreen {
			next = nil
		}
		select {
		case <-runCtx.Done():
			break loop
		case <-done:
			break loop
		case s, ok := <-screens:
			if !ok {
				break loop
			}
			awaitingScreen = false
			if child != nil {
				child.Dismiss()
			}
			if err := s.Present(runCtx); err != nil {
				return fmt.Errorf("present settings: %w", err)
			}
			child = s
			notes <- "settings: open"
		case line, ok := <-next:
			if !ok || line == ":quit" {
				inputs, done = nil, time.After(settle)
				continue
			}
			cmd, arg, _ := strings.Cut(line, " ")
			switch cmd {
			case ":settings":
				if err := rt.Send(textfield.DidTapSettingButton{}); err != nil {
					notes <- "error: " + err.Error()
					continue
				}
				awaitingScreen = true
			case ":color":
				if child == nil {
					notes <- "error: no settings screen open"
					continue
				}
				c, err := theme.ParseColor(arg)
				if err != nil {
					notes <- "error: " + err.Error()
					continue
				}
				if err := child.Runtime().Send(setting.SelectColor{Color: c}); err != nil {
					notes <- "error: " + err.Error()
				}
			case ":bg":
				c, err := theme.ParseColor(arg)
				if err != nil {
					notes <- "error: " + err.Error()
					continue
				}
				select {
				case external <- textfield.SetBackgroundColor{Color: &c}:
				default:
					notes <- "error: background feed full"
				}
			case ":back":
				if child != nil {
					child.Dismiss()
					child = nil
					notes <- "settings: closed"
				}
			default:
				if err := rt.Send(textfield.InputField{Text: line}); err != nil {
					notes <- "error: " + err.Error()
				}
			}
		}
	}

	if child != nil {
		child.Dismiss()
	}
	rt.Stop()
	close(notes)
	<-printed
	return nil
}

// field renders one state field, printing only when it changes.
func field(ctx context.Context, rt *screenRuntime, name string, pick func(textfield.State) string) <-chan string {
	values := reactorx.Distinct(ctx, reactorx.Map(ctx, rt.Observe(ctx), pick))
	return reactorx.Map(ctx, values, func(v string) string { return name + ": " + v })
}

// colorCycle steps through cycleColors, one color per call.
func colorCycle() func(time.Time) textfield.Mutation {
	i := 0
	return func(time.Time) textfield.Mutation {
		c := cycleColors[i%len(cycleColors)]
		i++
		return textfield.SetBackgroundColor{Color: &c}
	}
}

var cycleColors = []theme.Color{theme.Red, theme.Orange, theme.Yellow, theme.Green, theme.Blue, theme.Purple}

// scan emits input lines until EOF or ctx is done.
func scan(ctx context.Context, in io.Reader) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case out <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func orDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func colorName(c *theme.Color) string {
	if c == nil {
		return "-"
	}
	if name, ok := c.Name(); ok {
		return name
	}
	return c.String()
}
