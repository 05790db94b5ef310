package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"tomata/internal/platform"
	"tomata/internal/storage"
)

// AppName names the per-user configuration directory.
const AppName = "Tomata"

// ErrInvalidConfig indicates a config file with out-of-range values.
var ErrInvalidConfig = errors.New("invalid config")

const (
	configFileName            = "config.toml"
	defaultTickInterval       = time.Second
	defaultEndingAlertSeconds = 5
)

// Config holds the application-level options that are not user settings.
type Config struct {
	SettingsPath      string
	TickInterval      time.Duration
	EndingAlertWindow time.Duration
	LogPath           string
}

// DefaultPath returns the config file location inside the user config dir.
func DefaultPath() (string, error) {
	dir, err := platform.ConfigDir(AppName)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Default returns the configuration used when no config file exists.
func Default() (Config, error) {
	dir, err := platform.ConfigDir(AppName)
	if err != nil {
		return Config{}, err
	}
	return Config{
		SettingsPath:      filepath.Join(dir, storage.SettingsFileName),
		TickInterval:      defaultTickInterval,
		EndingAlertWindow: defaultEndingAlertSeconds * time.Second,
	}, nil
}

// Load parses the config file at path (or the default location when empty),
// falling back to defaults when the file is missing.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return Config{}, err
	}

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		SettingsPath       string `toml:"settings_path"`
		TickIntervalMS     *int   `toml:"tick_interval_ms"`
		EndingAlertSeconds *int   `toml:"ending_alert_seconds"`
		LogPath            string `toml:"log_path"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if settingsPath := strings.TrimSpace(raw.SettingsPath); settingsPath != "" {
		cfg.SettingsPath, err = expandPath(settingsPath)
		if err != nil {
			return Config{}, fmt.Errorf("settings_path: %w", err)
		}
	}

	if raw.TickIntervalMS != nil {
		if *raw.TickIntervalMS <= 0 {
			return Config{}, fmt.Errorf("%w: tick_interval_ms must be positive, got %d", ErrInvalidConfig, *raw.TickIntervalMS)
		}
		cfg.TickInterval = time.Duration(*raw.TickIntervalMS) * time.Millisecond
	}

	if raw.EndingAlertSeconds != nil {
		if *raw.EndingAlertSeconds < 0 {
			return Config{}, fmt.Errorf("%w: ending_alert_seconds must not be negative, got %d", ErrInvalidConfig, *raw.EndingAlertSeconds)
		}
		cfg.EndingAlertWindow = time.Duration(*raw.EndingAlertSeconds) * time.Second
	}

	if logPath := strings.TrimSpace(raw.LogPath); logPath != "" {
		cfg.LogPath, err = expandPath(logPath)
		if err != nil {
			return Config{}, fmt.Errorf("log_path: %w", err)
		}
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultPath()
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
