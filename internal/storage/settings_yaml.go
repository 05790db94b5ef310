package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"tomata/internal/core/model"
)

// SettingsFileName is the file name used inside the application config directory.
const SettingsFileName = "settings.yaml"

// yamlSettings is the on-disk snapshot. Pointer fields make missing keys detectable.
type yamlSettings struct {
	WorkPeriodSeconds             *int64   `yaml:"work_period_seconds"`
	ShortBreakPeriodSeconds       *int64   `yaml:"short_break_period_seconds"`
	LongBreakPeriodSeconds        *int64   `yaml:"long_break_period_seconds"`
	ShortBreaksNumber             *int     `yaml:"short_breaks_number"`
	LongBreaksAreIncluded         *bool    `yaml:"long_breaks_are_included"`
	NextPeriodStartsAutomatically *bool    `yaml:"next_period_starts_automatically"`
	SystemNotificationsAreEnabled *bool    `yaml:"system_notifications_are_enabled"`
	PeriodEndingSoundIsEnabled    *bool    `yaml:"period_ending_sound_is_enabled"`
	BeepVolume                    *float64 `yaml:"beep_volume"`
}

// LoadSettings reads a settings snapshot from YAML.
// It reports false when the file is missing, unreadable, malformed or incomplete;
// callers fall back to defaults.
func LoadSettings(path string) (model.Settings, bool) {
	rawData, err := os.ReadFile(path)
	if err != nil {
		return model.Settings{}, false
	}

	// Unknown keys are ignored.
	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return model.Settings{}, false
	}

	settings, ok := fileData.toSettings()
	if !ok || settings.Validate() != nil {
		return model.Settings{}, false
	}
	return settings, true
}

// SaveSettings writes the full snapshot to YAML, replacing the file atomically.
func SaveSettings(path string, settings model.Settings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	serialized, err := yaml.Marshal(fromSettings(settings))
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp settings file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(serialized); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close settings file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("chmod settings file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}
	return nil
}

// LoadOrCreate loads the snapshot at path, or writes and returns defaults when
// none is usable. The returned settings are valid even when err is non-nil.
func LoadOrCreate(path string) (model.Settings, error) {
	if settings, ok := LoadSettings(path); ok {
		return settings, nil
	}
	settings := model.DefaultSettings()
	if err := SaveSettings(path, settings); err != nil {
		return settings, err
	}
	return settings, nil
}

func (fileData yamlSettings) toSettings() (model.Settings, bool) {
	if fileData.WorkPeriodSeconds == nil ||
		fileData.ShortBreakPeriodSeconds == nil ||
		fileData.LongBreakPeriodSeconds == nil ||
		fileData.ShortBreaksNumber == nil ||
		fileData.LongBreaksAreIncluded == nil ||
		fileData.NextPeriodStartsAutomatically == nil ||
		fileData.SystemNotificationsAreEnabled == nil ||
		fileData.PeriodEndingSoundIsEnabled == nil ||
		fileData.BeepVolume == nil {
		return model.Settings{}, false
	}

	const maxSeconds = int64(1<<63-1) / int64(time.Second)
	for _, seconds := range []int64{*fileData.WorkPeriodSeconds, *fileData.ShortBreakPeriodSeconds, *fileData.LongBreakPeriodSeconds} {
		if seconds < 0 || seconds > maxSeconds {
			return model.Settings{}, false
		}
	}

	return model.Settings{
		WorkPeriod:                    time.Duration(*fileData.WorkPeriodSeconds) * time.Second,
		ShortBreakPeriod:              time.Duration(*fileData.ShortBreakPeriodSeconds) * time.Second,
		LongBreakPeriod:               time.Duration(*fileData.LongBreakPeriodSeconds) * time.Second,
		ShortBreaksNumber:             *fileData.ShortBreaksNumber,
		LongBreaksIncluded:            *fileData.LongBreaksAreIncluded,
		NextPeriodStartsAutomatically: *fileData.NextPeriodStartsAutomatically,
		SystemNotificationsEnabled:    *fileData.SystemNotificationsAreEnabled,
		PeriodEndingSoundEnabled:      *fileData.PeriodEndingSoundIsEnabled,
		BeepVolume:                    *fileData.BeepVolume,
	}, true
}

func fromSettings(settings model.Settings) yamlSettings {
	work := int64(settings.WorkPeriod / time.Second)
	short := int64(settings.ShortBreakPeriod / time.Second)
	long := int64(settings.LongBreakPeriod / time.Second)
	return yamlSettings{
		WorkPeriodSeconds:             &work,
		ShortBreakPeriodSeconds:       &short,
		LongBreakPeriodSeconds:        &long,
		ShortBreaksNumber:             &settings.ShortBreaksNumber,
		LongBreaksAreIncluded:         &settings.LongBreaksIncluded,
		NextPeriodStartsAutomatically: &settings.NextPeriodStartsAutomatically,
		SystemNotificationsAreEnabled: &settings.SystemNotificationsEnabled,
		PeriodEndingSoundIsEnabled:    &settings.PeriodEndingSoundEnabled,
		BeepVolume:                    &settings.BeepVolume,
	}
}
