package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no config.toml in sight

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "pos-terminal", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "7070", cfg.App.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "http://localhost:8080/api/v1", cfg.Backend.BaseURL)
	assert.Equal(t, "file", cfg.LocalStore.Backend)
	assert.Equal(t, "terminal-state.json", cfg.LocalStore.Path)
	assert.Equal(t, 5*time.Minute, cfg.Sync.Interval)
	assert.Equal(t, 2*time.Second, cfg.Draft.Debounce)
	assert.Equal(t, 1.0, cfg.Telemetry.SamplingRatio)
	assert.False(t, cfg.Telemetry.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("POS_BACKEND_BASE_URL", "https://erp.example.com/api/v1")
	t.Setenv("POS_LOCAL_STORE_BACKEND", "sqlite")
	t.Setenv("POS_SYNC_INTERVAL", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://erp.example.com/api/v1", cfg.Backend.BaseURL)
	assert.Equal(t, "sqlite", cfg.LocalStore.Backend)
	assert.Equal(t, 30*time.Second, cfg.Sync.Interval)
}

func TestLoad_RejectsUnknownStoreBackend(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("POS_LOCAL_STORE_BACKEND", "etcd")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsSubSecondSyncInterval(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("POS_SYNC_INTERVAL", "100ms")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsMemoryStoreInProduction(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("POS_APP_ENV", "production")
	t.Setenv("POS_LOCAL_STORE_BACKEND", "memory")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_MemoryStoreAllowedInDevelopment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("POS_LOCAL_STORE_BACKEND", "memory")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.LocalStore.Backend)
}

func TestRedisAddr(t *testing.T) {
	cfg := RedisConfig{Host: "redis.local", Port: 6380}
	assert.Equal(t, "redis.local:6380", cfg.RedisAddr())
}
