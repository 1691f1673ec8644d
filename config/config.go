// Package config loads Delegate settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"

	"github.com/takimoto3/appdelegate"
)

// Prefix is prepended to every environment variable name.
const Prefix = "APPDELEGATE"

// Config holds all Delegate configuration.
type Config struct {
	Launch   LaunchConfig
	Features FeatureConfig
	Logging  LogConfig
}

// LaunchConfig holds launch handling configuration.
type LaunchConfig struct {
	// ClearDelay is how long the launch memory is kept after
	// did-finish-launching.
	ClearDelay time.Duration `envconfig:"CLEAR_DELAY" default:"5s"`
}

// FeatureConfig holds the OS features launch item classification may use.
type FeatureConfig struct {
	Shortcuts   bool `envconfig:"SHORTCUTS" default:"true"`
	OpenInPlace bool `envconfig:"OPEN_IN_PLACE" default:"true"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from APPDELEGATE_* environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Launch.ClearDelay <= 0 {
		return nil, fmt.Errorf("failed to load config: %s_CLEAR_DELAY must be positive, got %v", Prefix, cfg.Launch.ClearDelay)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Launch: LaunchConfig{
			ClearDelay: appdelegate.DefaultClearDelay,
		},
		Features: FeatureConfig{
			Shortcuts:   true,
			OpenInPlace: true,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}

// Options converts the configuration to Delegate options. A nil logger
// leaves the Delegate's default in place.
func (c *Config) Options(logger *zap.Logger) []appdelegate.Option {
	opts := []appdelegate.Option{
		appdelegate.WithClearDelay(c.Launch.ClearDelay),
		appdelegate.WithFeatures(appdelegate.Features{
			Shortcuts:   c.Features.Shortcuts,
			OpenInPlace: c.Features.OpenInPlace,
		}),
	}
	if logger != nil {
		opts = append(opts, appdelegate.WithLogger(logger))
	}
	return opts
}
