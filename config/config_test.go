package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.True(t, cfg.Cache.Enable)
	assert.Equal(t, "memory", cfg.Cache.Type)
	assert.Equal(t, 3600, cfg.Cache.TTL)
	assert.Equal(t, 1<<20, cfg.Evaluator.MaxContentBytes)
	assert.Equal(t, int64(10<<20), cfg.Evaluator.MaxUploadBytes)
	assert.Equal(t, 50, cfg.Evaluator.MaxBatchSize)
	assert.Equal(t, 4, cfg.Evaluator.Workers)
	assert.Equal(t, "0.0.0.0:8080", cfg.Address())
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9090
  mode: debug
cache:
  type: redis
  address: ${TEST_REDIS_ADDR}
evaluator:
  workers: 8
  preview: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("TEST_REDIS_ADDR", "redis:6380")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "redis", cfg.Cache.Type)
	assert.Equal(t, "redis:6380", cfg.Cache.Address)
	assert.Equal(t, 8, cfg.Evaluator.Workers)
	assert.True(t, cfg.Evaluator.Preview)
	// 未配置的项使用默认值
	assert.Equal(t, 50, cfg.Evaluator.MaxBatchSize)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0644))
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("EVALUATOR_MAX_BATCH_SIZE", "5")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Evaluator.MaxBatchSize)
}

func TestLoadWritesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Evaluator, cfg.Evaluator)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache:\n  type: memcached\n"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "unsupported cache type")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "invalid server port"},
		{"zero workers", func(c *Config) { c.Evaluator.Workers = 0 }, "workers must be positive"},
		{"zero batch", func(c *Config) { c.Evaluator.MaxBatchSize = 0 }, "max_batch_size must be positive"},
		{"bad cache", func(c *Config) { c.Cache.Type = "disk" }, "unsupported cache type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}
