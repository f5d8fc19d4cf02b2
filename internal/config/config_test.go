package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greendilt/footprint/internal/config"
)

// writeConfig writes YAML content to a temp file and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Empty(t, cfg.Stats.URL)
	assert.Empty(t, cfg.Stats.SubmitURL)
	assert.Equal(t, 10*time.Second, cfg.Stats.Timeout())
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
stats:
  url: https://example.test/stats
  submit_url: https://example.test/rows
  timeout_seconds: 3
logging:
  level: debug
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/stats", cfg.Stats.URL)
	assert.Equal(t, "https://example.test/rows", cfg.Stats.SubmitURL)
	assert.Equal(t, 3*time.Second, cfg.Stats.Timeout())
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "stats: [not a mapping")
	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(config.EnvStatsURL, "https://env.test/stats")
	t.Setenv(config.EnvSubmitURL, "https://env.test/rows")
	t.Setenv(config.EnvLogLevel, "warn")

	path := writeConfig(t, `
stats:
  url: https://file.test/stats
logging:
  level: debug
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.test/stats", cfg.Stats.URL, "env wins over file")
	assert.Equal(t, "https://env.test/rows", cfg.Stats.SubmitURL)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestTimeoutFallback(t *testing.T) {
	cfg := config.StatsConfig{TimeoutSeconds: 0}
	assert.Equal(t, 10*time.Second, cfg.Timeout())

	cfg.TimeoutSeconds = -5
	assert.Equal(t, 10*time.Second, cfg.Timeout())
}
