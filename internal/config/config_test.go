package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	return home
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := setupHome(t)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.TickInterval != time.Second {
		t.Fatalf("TickInterval = %v, want 1s", cfg.TickInterval)
	}
	if cfg.EndingAlertWindow != 5*time.Second {
		t.Fatalf("EndingAlertWindow = %v, want 5s", cfg.EndingAlertWindow)
	}
	if filepath.Base(cfg.SettingsPath) != "settings.yaml" {
		t.Fatalf("SettingsPath = %q, want settings.yaml", cfg.SettingsPath)
	}
	if cfg.LogPath != "" {
		t.Fatalf("LogPath = %q, want empty", cfg.LogPath)
	}
}

func TestLoad_DefaultLocation(t *testing.T) {
	home := setupHome(t)

	dir := filepath.Join(home, ".config", "tomata")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("tick_interval_ms = 250\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.TickInterval != 250*time.Millisecond {
		t.Fatalf("TickInterval = %v, want 250ms", cfg.TickInterval)
	}
}

func TestLoad_ParsesAndExpands(t *testing.T) {
	home := setupHome(t)
	path := writeConfig(t, `
settings_path = "  ~/pomodoro/settings.yaml  "
tick_interval_ms = 500
ending_alert_seconds = 0
log_path = "~/pomodoro/tomata.log"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.SettingsPath != filepath.Join(home, "pomodoro", "settings.yaml") {
		t.Fatalf("SettingsPath = %q", cfg.SettingsPath)
	}
	if cfg.TickInterval != 500*time.Millisecond {
		t.Fatalf("TickInterval = %v, want 500ms", cfg.TickInterval)
	}
	if cfg.EndingAlertWindow != 0 {
		t.Fatalf("EndingAlertWindow = %v, want 0", cfg.EndingAlertWindow)
	}
	if !strings.HasPrefix(cfg.LogPath, home) {
		t.Fatalf("LogPath = %q, want it under HOME %q", cfg.LogPath, home)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	setupHome(t)
	cases := []struct {
		name    string
		content string
	}{
		{"zero tick", "tick_interval_ms = 0\n"},
		{"negative tick", "tick_interval_ms = -10\n"},
		{"negative alert window", "ending_alert_seconds = -1\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Load = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoad_MalformedTOML(t *testing.T) {
	setupHome(t)
	if _, err := Load(writeConfig(t, "tick_interval_ms = \"fast\"\n")); err == nil {
		t.Fatalf("Load should fail on a string tick interval")
	}
	if _, err := Load(writeConfig(t, "not valid toml {{{\n")); err == nil {
		t.Fatalf("Load should fail on malformed toml")
	}
}
