// Package config loads the live bridge's settings from the
// environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Live holds the settings of the live bridge server.
type Live struct {
	// Addr is the listen address.
	Addr string `env:"STATEBIND_ADDR" envDefault:":8090"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `env:"STATEBIND_SHUTDOWN_TIMEOUT" envDefault:"5s"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"STATEBIND_LOG_LEVEL" envDefault:"info"`

	// MetricsNamespace prefixes all Prometheus metrics.
	MetricsNamespace string `env:"STATEBIND_METRICS_NAMESPACE" envDefault:"statebind"`
}

// LoadLive reads the live bridge configuration from environment
// variables.
func LoadLive() (Live, error) {
	var cfg Live
	if err := env.Parse(&cfg); err != nil {
		return Live{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// SlogLevel converts the configured log level to a slog.Level.
// Unrecognized values fall back to info.
func (l Live) SlogLevel() slog.Level {
	switch strings.ToLower(l.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
