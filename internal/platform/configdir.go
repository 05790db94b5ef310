package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConfigDir returns the directory holding appName's configuration files.
// The OS-standard config dir is preferred; a home-relative fallback is used
// when it cannot be resolved.
func ConfigDir(appName string) (string, error) {
	name := strings.TrimSpace(appName)
	if name == "" {
		return "", fmt.Errorf("config dir: app name is empty")
	}

	base, err := userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, strings.ToLower(name)), nil
}

func userConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}
