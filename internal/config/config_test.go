package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/ndarray/internal/linalg"
	"github.com/born-ml/ndarray/internal/logger"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Full(t *testing.T) {
	path := writeConfig(t, `
optim_space: true
parallel:
  enabled: false
  workers: 3
  min_chunk: 16
log_level: debug
log_format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	require.NotNil(t, cfg.OptimSpace)
	assert.True(t, *cfg.OptimSpace)
	assert.Equal(t, "debug", cfg.LogLevel)

	lc := cfg.Linalg(nil)
	assert.True(t, lc.OptimSpace)
	assert.False(t, lc.Parallel.Enabled)
	assert.Equal(t, 3, lc.Parallel.NumWorkers)
	assert.Equal(t, 16, lc.Parallel.MinChunkSize)
	assert.NotNil(t, lc.Logger)
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "parallel:\n  workers: 2\n"))
	require.NoError(t, err)

	def := linalg.DefaultConfig()
	lc := cfg.Linalg(nil)
	assert.False(t, lc.OptimSpace)
	assert.Equal(t, def.Parallel.Enabled, lc.Parallel.Enabled)
	assert.Equal(t, 2, lc.Parallel.NumWorkers)
	assert.Equal(t, def.Parallel.MinChunkSize, lc.Parallel.MinChunkSize)
}

func TestLoad_Missing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.OptimSpace)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed yaml", "optim_space: [unterminated"},
		{"wrong type", "optim_space: sometimes"},
		{"zero workers", "parallel:\n  workers: 0\n"},
		{"negative chunk", "parallel:\n  min_chunk: -4\n"},
		{"unknown format", "log_format: xml\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
		})
	}
}

func TestConfig_Logger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{LogLevel: "warn", LogFormat: "json"}
	log := cfg.Logger(&buf)

	log.Info("hidden")
	assert.Zero(t, buf.Len())
	log.Warn("shown")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}

func TestConfig_LinalgLogger(t *testing.T) {
	log := logger.Discard()
	lc := Config{}.Linalg(log)
	assert.Same(t, log, lc.Logger)
}
