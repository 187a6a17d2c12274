// Package config loads peek's runtime configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the process-wide configuration.
type Config struct {
	DBPath          string        `env:"PEEK_DB"`
	Workspace       string        `env:"PEEK_WORKSPACE"        envDefault:"default"`
	EnableBudget    bool          `env:"PEEK_ENABLE_BUDGET"    envDefault:"true"`
	RefreshInterval time.Duration `env:"PEEK_REFRESH_INTERVAL" envDefault:"2s"`
	LogLevel        string        `env:"PEEK_LOG_LEVEL"        envDefault:"info"`
	LogFile         string        `env:"PEEK_LOG_FILE"`
}

// Load reads the configuration from environment variables, falling back to
// defaults for unset values.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBPath()
	}
	if cfg.RefreshInterval <= 0 {
		return Config{}, fmt.Errorf("PEEK_REFRESH_INTERVAL must be positive, got %s", cfg.RefreshInterval)
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultDBPath returns ~/.peek/peek.db, or peek.db in the working directory
// when the home directory cannot be resolved.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "peek.db"
	}
	return filepath.Join(home, ".peek", "peek.db")
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
