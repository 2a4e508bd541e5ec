// Package config loads and validates the gridpath configuration file.
//
// The file is YAML. Missing keys keep the values of Default(); the merged
// result is validated with struct tags before it is handed out.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/gridpath/grid"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the top-level configuration.
type Config struct {
	Grid    GridConfig    `yaml:"grid"`
	Search  SearchConfig  `yaml:"search"`
	Animate AnimateConfig `yaml:"animate"`
	Bench   BenchConfig   `yaml:"bench"`
	Log     LogConfig     `yaml:"log"`
}

// GridConfig sizes generated grids.
type GridConfig struct {
	Rows    int     `yaml:"rows" validate:"gt=0,lte=1000"`
	Width   int     `yaml:"width" validate:"gte=0"`
	Density float64 `yaml:"density" validate:"gte=0,lte=1"`
	Seed    int64   `yaml:"seed"`
}

// SearchConfig tunes the search.
type SearchConfig struct {
	// MaxExpansions of 0 disables the budget.
	MaxExpansions int  `yaml:"max_expansions" validate:"gte=0"`
	Display       bool `yaml:"display"`
}

// AnimateConfig controls frame pacing in the CLI and TUI.
type AnimateConfig struct {
	Delay time.Duration `yaml:"delay" validate:"gte=0"`
}

// BenchConfig controls the bench command.
type BenchConfig struct {
	Grids   int `yaml:"grids" validate:"gt=0"`
	Workers int `yaml:"workers" validate:"gt=0,lte=256"`
}

// LogConfig selects the log level.
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// Default returns the built-in configuration: a 25-row board 800 pixels wide.
func Default() Config {
	return Config{
		Grid: GridConfig{
			Rows:    grid.DefaultRows,
			Width:   grid.DefaultWidth,
			Density: 0.25,
			Seed:    1,
		},
		Search:  SearchConfig{Display: true},
		Animate: AnimateConfig{Delay: 15 * time.Millisecond},
		Bench:   BenchConfig{Grids: 100, Workers: 4},
		Log:     LogConfig{Level: "info"},
	}
}

var validate = validator.New()

// Validate checks every field constraint.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// SlogLevel maps Log.Level onto a slog level.
func (c Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(c.Log.Level))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// Load reads path over Default() and validates the result. An empty path
// returns the validated defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML over Default() and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
