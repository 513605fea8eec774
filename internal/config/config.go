// Package config resolves storage locations and user settings for clipvault.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// GetDataDir resolves the base directory for all clipvault storage. It checks
// CLIPVAULT_DIR first, then XDG paths, and finally falls back to the user's
// home directory.
func GetDataDir() string {
	if explicit := os.Getenv("CLIPVAULT_DIR"); explicit != "" {
		return explicit
	}

	xdg.Reload()

	dataHome := xdg.DataHome
	if dataHome == "" {
		home := xdg.Home
		if home == "" {
			var err error
			home, err = os.UserHomeDir()
			if err != nil {
				return filepath.Join(os.TempDir(), "clipvault")
			}
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "clipvault")
}

// GetDBPath returns the absolute path to the SQLite index file.
func GetDBPath() string {
	return filepath.Join(GetDataDir(), "index.db")
}

// GetObjectsDir returns the directory that stores binary side-files.
func GetObjectsDir() string {
	return filepath.Join(GetDataDir(), "objects")
}

// GetSettingsPath returns the path of the settings file. CLIPVAULT_SETTINGS
// overrides the XDG config location.
func GetSettingsPath() string {
	if explicit := os.Getenv("CLIPVAULT_SETTINGS"); explicit != "" {
		return explicit
	}

	xdg.Reload()

	configHome := xdg.ConfigHome
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "clipvault", "settings.json")
		}
		configHome = filepath.Join(home, ".config")
	}

	return filepath.Join(configHome, "clipvault", "settings.json")
}

// Settings holds user-tunable behavior. Retention thresholds use pointers so
// an absent field falls back to the default while an explicit 0 means
// "unbounded" for that dimension.
type Settings struct {
	MaxAgeDays *int `json:"max_age_days,omitempty"`
	MaxItems   *int `json:"max_items,omitempty"`

	PollIntervalMS int `json:"poll_interval_ms"`
	MaxItemSize    int `json:"max_item_size_bytes"`
}

// DefaultSettings returns the built-in defaults for the daemon knobs.
// Retention pointers stay nil so the retention defaults apply.
func DefaultSettings() Settings {
	return Settings{
		PollIntervalMS: 500,
		MaxItemSize:    10 * 1024 * 1024,
	}
}

// LoadSettings reads the settings file at path, or the default location when
// path is empty. A missing file yields the defaults.
func LoadSettings(path string) (Settings, error) {
	if path == "" {
		path = GetSettingsPath()
	}

	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("failed to read settings file: %w", err)
	}

	if err := json.Unmarshal(data, &settings); err != nil {
		return DefaultSettings(), fmt.Errorf("failed to parse settings file: %w", err)
	}

	settings.normalize()
	return settings, nil
}

// SaveSettings writes the settings file, creating parent directories.
func SaveSettings(path string, settings Settings) error {
	if path == "" {
		path = GetSettingsPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func (s *Settings) normalize() {
	defaults := DefaultSettings()
	if s.PollIntervalMS <= 0 {
		s.PollIntervalMS = defaults.PollIntervalMS
	}
	if s.MaxItemSize <= 0 {
		s.MaxItemSize = defaults.MaxItemSize
	}
	if s.MaxAgeDays != nil && *s.MaxAgeDays < 0 {
		s.MaxAgeDays = nil
	}
	if s.MaxItems != nil && *s.MaxItems < 0 {
		s.MaxItems = nil
	}
}
