package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appName        = "cognito-srp"
	configFileName = "config.yaml"
)

// UserConfigDir returns the per-user configuration directory, e.g.
// ~/.config/cognito-srp on Linux.
func UserConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, appName), nil
}

// DefaultPath returns the config file used when no path is given.
func DefaultPath() (string, error) {
	dir, err := UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// EnsureDir creates dir with owner-only permissions if it does not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// Save writes cfg as YAML to path with owner-only permissions.
func Save(cfg *Config, path string) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	data, err := marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
