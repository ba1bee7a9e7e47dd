package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/NikitaCOEUR/dirsh/internal/derrors"
	"github.com/NikitaCOEUR/dirsh/internal/logger"
)

// SettingsName is the name of the user settings file
const SettingsName = "config.yml"

// Settings holds per-user console preferences.
type Settings struct {
	LogLevel    string `koanf:"log_level"`
	HistoryFile string `koanf:"history_file"`
	Color       bool   `koanf:"color"`

	// Prompt is a text/template; .Cwd is the working directory path.
	Prompt string `koanf:"prompt"`

	// StateFile persists toggle states between sessions.
	StateFile string `koanf:"state_file"`

	// MetricsAddr serves /metrics when non-empty (e.g. "127.0.0.1:9464").
	MetricsAddr string `koanf:"metrics_addr"`
}

// DefaultSettings returns the settings used when no file exists
func DefaultSettings() Settings {
	return Settings{
		LogLevel: logger.DefaultLevel,
		Prompt:   "{{ .Cwd }}> ",
		Color:    true,
	}
}

// SettingsPath returns the path to the user settings file
func SettingsPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "dirsh", SettingsName), nil
}

// LoadSettings reads the settings file at path over the defaults. A missing
// file is not an error.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return settings, nil
	}
	if err != nil {
		return settings, derrors.NewConfigurationError(path, "failed to read settings", err)
	}

	parser, err := parserFor(path)
	if err != nil {
		return settings, derrors.NewConfigurationError(path, "cannot parse settings", err)
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(content), parser); err != nil {
		return settings, derrors.NewConfigurationError(path, "failed to load settings", err)
	}
	if err := k.Unmarshal("", &settings); err != nil {
		return settings, derrors.NewConfigurationError(path, "failed to unmarshal settings", err)
	}
	return settings, nil
}

// HistoryPath returns the history file, defaulting under XDG_DATA_HOME.
func (s Settings) HistoryPath() string {
	if s.HistoryFile != "" {
		return s.HistoryFile
	}
	return dataPath("history")
}

// StatePath returns the toggle state file, defaulting under XDG_DATA_HOME.
func (s Settings) StatePath() string {
	if s.StateFile != "" {
		return s.StateFile
	}
	return dataPath("state.json")
}

func dataPath(name string) string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "dirsh", name)
}
