// Package config handles configuration loading from TOML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
)

// Config is the root configuration structure.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Store  StoreConfig  `toml:"store"`
	Log    LogConfig    `toml:"log"`
}

// LayoutConfig holds the section resize settings.
type LayoutConfig struct {
	// SnapPoints are the widths (percent) a drag snaps to. Defaults to
	// 25, 50, 75, 100.
	SnapPoints []float64 `toml:"snap_points"`
	MinWidth   float64   `toml:"min_width"`
	MaxWidth   float64   `toml:"max_width"`
	// FallbackContainerWidth is the percentage basis when the canvas has not
	// been measured yet.
	FallbackContainerWidth float64 `toml:"fallback_container_width"`
	// MouseThrottleMS rate-limits mouse motion events. Zero uses the default.
	MouseThrottleMS int `toml:"mouse_throttle_ms"`
}

// SnapPointsOrDefault returns the configured snap points or the report widths.
func (l LayoutConfig) SnapPointsOrDefault() []float64 {
	if len(l.SnapPoints) == 0 {
		return []float64{25, 50, 75, 100}
	}
	return l.SnapPoints
}

// BoundsOrDefault returns the configured bounds, or [25, 100] when both are unset.
func (l LayoutConfig) BoundsOrDefault() (lo, hi float64) {
	if l.MinWidth == 0 && l.MaxWidth == 0 {
		return 25, 100
	}
	return l.MinWidth, l.MaxWidth
}

// FallbackContainerWidthOrDefault returns the fallback basis or 800.
func (l LayoutConfig) FallbackContainerWidthOrDefault() float64 {
	if l.FallbackContainerWidth <= 0 {
		return 800
	}
	return l.FallbackContainerWidth
}

// MouseThrottleMSOrDefault returns the motion throttle or 15 ms.
func (l LayoutConfig) MouseThrottleMSOrDefault() int {
	if l.MouseThrottleMS <= 0 {
		return 15
	}
	return l.MouseThrottleMS
}

// StoreConfig holds the report database settings.
type StoreConfig struct {
	Path string `toml:"path"`
}

// PathOrDefault returns the configured database path or <DataDir>/dvlayout.db.
func (s StoreConfig) PathOrDefault() (string, error) {
	if s.Path != "" {
		return s.Path, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "dvlayout.db"), nil
}

// LogConfig holds logging settings. Logs always go to a file because the
// TUI owns the terminal.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// LevelOrDefault returns the configured level or "info".
func (l LogConfig) LevelOrDefault() string {
	if l.Level == "" {
		return "info"
	}
	return l.Level
}

// FileOrDefault returns the configured log file or <DataDir>/dvlayout.log.
func (l LogConfig) FileOrDefault() (string, error) {
	if l.File != "" {
		return l.File, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "dvlayout.log"), nil
}

// Load reads configuration from a TOML file and applies environment variable
// overrides. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	var errs []error

	lo, hi := c.Layout.BoundsOrDefault()
	if lo < 0 {
		errs = append(errs, fmt.Errorf("layout.min_width=%v must not be negative", lo))
	}
	if lo > hi {
		errs = append(errs, fmt.Errorf("layout.min_width=%v exceeds layout.max_width=%v", lo, hi))
	}

	points := c.Layout.SnapPointsOrDefault()
	if !slices.IsSorted(points) {
		errs = append(errs, fmt.Errorf("layout.snap_points=%v must be in ascending order", points))
	}
	// Default points outside custom bounds are dropped by the controller;
	// only configured points have to fit.
	for _, p := range c.Layout.SnapPoints {
		if p < lo || p > hi {
			errs = append(errs, fmt.Errorf("layout.snap_points value %v is outside [%v, %v]", p, lo, hi))
		}
	}

	if c.Layout.FallbackContainerWidth < 0 {
		errs = append(errs, fmt.Errorf("layout.fallback_container_width=%v must be positive", c.Layout.FallbackContainerWidth))
	}

	if _, err := zerolog.ParseLevel(c.Log.LevelOrDefault()); err != nil {
		errs = append(errs, fmt.Errorf("log.level=%q is invalid: %v", c.Log.Level, err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"DVLAYOUT_DB", func(v string) {
			if v != "" {
				cfg.Store.Path = v
			}
		}},
		{"DVLAYOUT_LOG_LEVEL", func(v string) {
			if v != "" {
				cfg.Log.Level = v
			}
		}},
	} {
		setter.apply(os.Getenv(setter.env))
	}
}

// DataDir returns the path to the data directory (~/.config/dvlayout).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "dvlayout"), nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", err
	}
	return dir, nil
}
