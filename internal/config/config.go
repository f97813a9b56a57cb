// Package config loads demo configuration from an optional YAML file with
// REACTORX_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/comalice/reactorx"
	"github.com/comalice/reactorx/internal/theme"
)

// Config controls runtime sizing, logging and tracing of the demo.
// A zero CycleInterval leaves the background color alone.
type Config struct {
	QueueSize        int           `yaml:"queueSize"        env:"REACTORX_QUEUE_SIZE"`
	SubscriberBuffer int           `yaml:"subscriberBuffer" env:"REACTORX_SUBSCRIBER_BUFFER"`
	InitialColor     string        `yaml:"initialColor"     env:"REACTORX_INITIAL_COLOR"`
	LogPrefix        string        `yaml:"logPrefix"        env:"REACTORX_LOG_PREFIX"`
	TraceFile        string        `yaml:"traceFile"        env:"REACTORX_TRACE_FILE"`
	Verbose          bool          `yaml:"verbose"          env:"REACTORX_VERBOSE"`
	ShowMutations    bool          `yaml:"showMutations"    env:"REACTORX_SHOW_MUTATIONS"`
	CycleInterval    time.Duration `yaml:"cycleInterval"    env:"REACTORX_CYCLE_INTERVAL"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		QueueSize:        1000,
		SubscriberBuffer: 64,
		LogPrefix:        "[reactorx] ",
	}
}

// Load applies defaults, then the YAML file at path (skipped when path is
// empty), then environment variables.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs []error
	if c.QueueSize <= 0 {
		errs = append(errs, fmt.Errorf("queueSize must be positive, got %d", c.QueueSize))
	}
	if c.SubscriberBuffer <= 0 {
		errs = append(errs, fmt.Errorf("subscriberBuffer must be positive, got %d", c.SubscriberBuffer))
	}
	if c.CycleInterval < 0 {
		errs = append(errs, fmt.Errorf("cycleInterval must not be negative, got %v", c.CycleInterval))
	}
	if _, err := c.BackgroundColor(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// BackgroundColor parses InitialColor. Empty means no color.
func (c Config) BackgroundColor() (*theme.Color, error) {
	if c.InitialColor == "" {
		return nil, nil
	}
	col, err := theme.ParseColor(c.InitialColor)
	if err != nil {
		return nil, fmt.Errorf("initialColor: %w", err)
	}
	return &col, nil
}

// RuntimeOptions converts the sizing fields into runtime options.
func (c Config) RuntimeOptions() []reactorx.Option {
	return []reactorx.Option{
		reactorx.WithQueueSize(c.QueueSize),
		reactorx.WithSubscriberBuffer(c.SubscriberBuffer),
	}
}
