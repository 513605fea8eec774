package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetDataDirWithExplicitEnv(t *testing.T) {
	tmpDir := t.TempDir()
	customDir := filepath.Join(tmpDir, "custom")

	t.Setenv("CLIPVAULT_DIR", customDir)
	t.Setenv("XDG_DATA_HOME", "")

	got := GetDataDir()
	if got != customDir {
		t.Fatalf("expected %q, got %q", customDir, got)
	}
}

func TestGetDataDirFallsBackToXDG(t *testing.T) {
	tmpDir := t.TempDir()
	xdgDir := filepath.Join(tmpDir, "xdg")

	t.Setenv("CLIPVAULT_DIR", "")
	t.Setenv("XDG_DATA_HOME", xdgDir)

	got := GetDataDir()
	want := filepath.Join(xdgDir, "clipvault")
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestGetDBAndObjectsPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("CLIPVAULT_DIR", tmpDir)

	if got, want := GetDBPath(), filepath.Join(tmpDir, "index.db"); got != want {
		t.Fatalf("GetDBPath expected %q, got %q", want, got)
	}

	if got, want := GetObjectsDir(), filepath.Join(tmpDir, "objects"); got != want {
		t.Fatalf("GetObjectsDir expected %q, got %q", want, got)
	}
}

func TestLoadSettingsMissingFileYieldsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	settings, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings error: %v", err)
	}

	defaults := DefaultSettings()
	if settings.PollIntervalMS != defaults.PollIntervalMS {
		t.Fatalf("expected default poll interval, got %d", settings.PollIntervalMS)
	}
	if settings.MaxAgeDays != nil || settings.MaxItems != nil {
		t.Fatal("retention thresholds should be unset by default")
	}
}

func TestLoadSettingsDistinguishesZeroFromUnset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"max_age_days": 0}`), 0o600); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	settings, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings error: %v", err)
	}

	if settings.MaxAgeDays == nil || *settings.MaxAgeDays != 0 {
		t.Fatalf("explicit zero must survive load, got %v", settings.MaxAgeDays)
	}
	if settings.MaxItems != nil {
		t.Fatalf("absent field must stay unset, got %v", settings.MaxItems)
	}
}

func TestSaveAndLoadSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")

	age := 7
	in := DefaultSettings()
	in.MaxAgeDays = &age
	in.PollIntervalMS = 250

	if err := SaveSettings(path, in); err != nil {
		t.Fatalf("SaveSettings error: %v", err)
	}

	out, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings error: %v", err)
	}
	if out.MaxAgeDays == nil || *out.MaxAgeDays != 7 {
		t.Fatalf("unexpected max age: %v", out.MaxAgeDays)
	}
	if out.PollIntervalMS != 250 {
		t.Fatalf("unexpected poll interval: %d", out.PollIntervalMS)
	}
}

func TestLoadSettingsRejectsNegativeThresholds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"max_age_days": -3, "max_items": -1, "poll_interval_ms": -5}`), 0o600); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	settings, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings error: %v", err)
	}
	if settings.MaxAgeDays != nil || settings.MaxItems != nil {
		t.Fatal("negative thresholds should be treated as unset")
	}
	if settings.PollIntervalMS != DefaultSettings().PollIntervalMS {
		t.Fatalf("negative poll interval should fall back, got %d", settings.PollIntervalMS)
	}
}
