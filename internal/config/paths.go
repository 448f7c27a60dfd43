package config

import (
	"os"
	"path/filepath"
	"strings"
)

// AppName is the application name used for config directories
const AppName = "mdsummary"

// configDir returns the config directory path (~/.config/mdsummary)
// Uses XDG_CONFIG_HOME if set, otherwise falls back to ~/.config
func configDir() (string, error) {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, AppName), nil
	}

	// XDG仕様のデフォルト
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", AppName), nil
}

// configPath returns the user config file path (~/.config/mdsummary/config.yaml)
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// defaultCacheDir returns the default cache directory path
func defaultCacheDir() (string, error) {
	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userCacheDir, AppName), nil
}

// DotToPointer converts a dot-separated path to a JSON Pointer.
// Example: "summary.max_length" -> "/summary/max_length"
func DotToPointer(dotPath string) string {
	return "/" + strings.ReplaceAll(dotPath, ".", "/")
}
