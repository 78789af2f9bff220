package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
sheets:
  script_url: https://script.google.com/macros/s/abc/exec
metrics:
  prometheus_enabled: true
notify:
  enabled: false
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://script.google.com/macros/s/abc/exec", cfg.Sheets.ScriptURL)
	assert.Equal(t, 10, cfg.Sheets.TimeoutSeconds, "default timeout applied")
	assert.Equal(t, ":8080", cfg.API.Addr, "default api addr applied")
	assert.Equal(t, ":9090", cfg.Metrics.PrometheusPort, "default prom port applied")
	assert.True(t, cfg.Metrics.PrometheusEnabled)
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{"sheets":{"script_url":"https://example.com/exec"},"api":{"addr":":9000"}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.API.Addr)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeFile(t, "config.yaml", `
sheets:
  script_url: https://example.com/exec
`)
	t.Setenv("DRONECOORD_SHEETS__TIMEOUT_SECONDS", "3")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Sheets.TimeoutSeconds)
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	path := writeFile(t, "config.toml", `x = 1`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRequiresScriptURL(t *testing.T) {
	path := writeFile(t, "config.yaml", `api: {addr: ":8080"}`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadEnabledNotifierNeedsBroker(t *testing.T) {
	path := writeFile(t, "config.yaml", `
sheets:
  script_url: https://example.com/exec
notify:
  enabled: true
`)
	_, err := Load(path)
	assert.Error(t, err)
}
