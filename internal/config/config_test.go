package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLiveDefaults(t *testing.T) {
	cfg, err := LoadLive()
	require.NoError(t, err)

	assert.Equal(t, ":8090", cfg.Addr)
	assert.Equal(t, "statebind", cfg.MetricsNamespace)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadLiveFromEnv(t *testing.T) {
	t.Setenv("STATEBIND_ADDR", ":9999")
	t.Setenv("STATEBIND_LOG_LEVEL", "debug")
	t.Setenv("STATEBIND_SHUTDOWN_TIMEOUT", "10s")

	cfg, err := LoadLive()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, "10s", cfg.ShutdownTimeout.String())
}

func TestSlogLevelFallback(t *testing.T) {
	cfg := Live{LogLevel: "bogus"}
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}
