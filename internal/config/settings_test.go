package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/test-config")
	path, err := SettingsPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/test-config", "dirsh", SettingsName), path)

	t.Setenv("XDG_CONFIG_HOME", "")
	path, err = SettingsPath()
	require.NoError(t, err)
	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, ".config", "dirsh", SettingsName), path)
}

func TestLoadSettings_Missing(t *testing.T) {
	settings, err := LoadSettings(filepath.Join(t.TempDir(), "config.yml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)
}

func TestLoadSettings_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
log_level: debug
color: false
metrics_addr: 127.0.0.1:9464
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	settings, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", settings.LogLevel)
	assert.False(t, settings.Color)
	assert.Equal(t, "127.0.0.1:9464", settings.MetricsAddr)
	assert.Equal(t, DefaultSettings().Prompt, settings.Prompt)
}

func TestLoadSettings_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("color: [[["), 0644))
	_, err := LoadSettings(path)
	assert.Error(t, err)
}

func TestSettings_HistoryPath(t *testing.T) {
	assert.Equal(t, "/tmp/h", Settings{HistoryFile: "/tmp/h"}.HistoryPath())

	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	assert.Equal(t, filepath.Join("/tmp/data", "dirsh", "history"), Settings{}.HistoryPath())
}

func TestSettings_StatePath(t *testing.T) {
	assert.Equal(t, "/tmp/s.json", Settings{StateFile: "/tmp/s.json"}.StatePath())

	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	assert.Equal(t, filepath.Join("/tmp/data", "dirsh", "state.json"), Settings{}.StatePath())
}
