package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigContent = `
[development]
host = "localhost"
port = 8080
log_level = "trace"
log_to_stdout = true
data_dir = "./data"
prometheus_metrics_port = "2112"

[production]
port = 9000
log_level = "debug"
data_dir = "/var/lib/trainlog"
sentry_enabled = true
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigContent), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeTestConfig(t)

	cfg, err := Load("development", path)
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.True(t, cfg.LogToStdout)
	assert.False(t, cfg.SentryEnabled)

	t.Run("short env names", func(t *testing.T) {
		cfg, err := Load("prod", path)
		require.NoError(t, err)
		assert.Equal(t, 9000, cfg.Port)
		assert.True(t, cfg.SentryEnabled)
	})

	t.Run("unknown env", func(t *testing.T) {
		_, err := Load("staging", path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load("development", "/no/such/config.toml")
		assert.Error(t, err)
	})
}
