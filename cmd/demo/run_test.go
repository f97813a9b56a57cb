package main

import (
	"bytes"
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/comalice/reactorx/internal/config"
	"github.com/comalice/reactorx/internal/textfield"
)

func runDemo(t *testing.T, cfg config.Config, input string) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var out bytes.Buffer
	quiet := log.New(io.Discard, "", 0)
	if err := run(ctx, cfg, 300*time.Millisecond, strings.NewReader(input), &out, quiet); err != nil {
		t.Fatalf("run: %v", err)
	}
	return out.String()
}

func TestRun_Session(t *testing.T) {
	cfg := config.Default()
	cfg.InitialColor = "red"

	out := runDemo(t, cfg, "hello\nab1\n:settings\n:color blue\n")

	for _, want := range []string{
		"background: red",
		"text: HELLO",
		"length: 5",
		"alert: " + textfield.AlertContainsDigit,
		"settings: open",
		"background: blue",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRun_Back(t *testing.T) {
	out := runDemo(t, config.Default(), ":settings\n:back\n:color green\n")
	for _, want := range []string{"settings: open", "settings: closed", "error: no settings screen open"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRun_ColorWithoutSettings(t *testing.T) {
	out := runDemo(t, config.Default(), ":color green\n")
	if !strings.Contains(out, "error: no settings screen open") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if strings.Contains(out, "background: green") {
		t.Errorf("color applied without a settings screen:\n%s", out)
	}
}

func TestRun_QuitStopsReading(t *testing.T) {
	out := runDemo(t, config.Default(), "one\n:quit\ntwo\n")
	if !strings.Contains(out, "text: ONE") {
		t.Errorf("missing first line:\n%s", out)
	}
	if strings.Contains(out, "TWO") {
		t.Errorf("input after :quit was processed:\n%s", out)
	}
}

func TestRun_TraceFile(t *testing.T) {
	cfg := config.Default()
	cfg.TraceFile = filepath.Join(t.TempDir(), "trace.yaml")
	cfg.Verbose = true

	runDemo(t, cfg, "abc\n")

	data, err := os.ReadFile(cfg.TraceFile)
	if err != nil {
		t.Fatal(err)
	}
	trace := string(data)
	for _, want := range []string{"textfield.SetCapitalizedString", "value: ABC", "sequence: 2"} {
		if !strings.Contains(trace, want) {
			t.Errorf("trace missing %q:\n%s", want, trace)
		}
	}
}

func TestRun_ExternalBackground(t *testing.T) {
	out := runDemo(t, config.Default(), ":bg purple\n:bg mauve\n")
	if !strings.Contains(out, "background: purple") {
		t.Errorf("external color not applied:\n%s", out)
	}
	if !strings.Contains(out, "error: unknown color") {
		t.Errorf("bad color not reported:\n%s", out)
	}
}

func TestRun_ShowMutations(t *testing.T) {
	cfg := config.Default()
	cfg.ShowMutations = true
	out := runDemo(t, cfg, "abc\n")
	for _, want := range []string{
		"mutation #1 textfield.SetCapitalizedString",
		"mutation #2 textfield.SetLengthOfString",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRun_ColorCycle(t *testing.T) {
	cfg := config.Default()
	cfg.CycleInterval = 20 * time.Millisecond
	out := runDemo(t, cfg, "")
	for _, want := range []string{"background: red", "background: orange"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRun_BadColor(t *testing.T) {
	cfg := config.Default()
	cfg.InitialColor = "mauve"
	err := run(context.Background(), cfg, 0, strings.NewReader(""), io.Discard, log.New(io.Discard, "", 0))
	if err == nil {
		t.Error("expected error for unknown initial color")
	}
}
