// Package config loads runtime settings for the amino hosts from the
// environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port          int     `envconfig:"PORT" default:"8080"`
	Host          string  `envconfig:"AMINO_HOST" default:"window"`
	Width         int     `envconfig:"AMINO_WIDTH" default:"640"`
	Height        int     `envconfig:"AMINO_HEIGHT" default:"480"`
	FPS           int     `envconfig:"AMINO_FPS" default:"60"`
	AutoPaint     bool    `envconfig:"AMINO_AUTOPAINT" default:"false"`
	Debug         bool    `envconfig:"AMINO_DEBUG" default:"false"`
	LogLevel      string  `envconfig:"AMINO_LOG_LEVEL" default:"info"`
	PixelRatio    float64 `envconfig:"AMINO_PIXEL_RATIO" default:"1"`
	ScreenshotDir string  `envconfig:"AMINO_SCREENSHOT_DIR" default:"screenshots"`
	TestScript    string  `envconfig:"AMINO_TEST_SCRIPT"`
}

// Load reads the environment and validates the result.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings no host can run with.
func (c *Config) Validate() error {
	switch c.Host {
	case "window", "remote":
	default:
		return fmt.Errorf("config: unknown host %q (want window or remote)", c.Host)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: invalid size %dx%d", c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("config: invalid fps %d", c.FPS)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("config: unknown log level %q", c.LogLevel)
}
