package config

import (
	"os"
	"path/filepath"
)

// Default values
const (
	DefaultFormat = "toml"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".crateinfo"
	}
	return filepath.Join(home, ".crateinfo")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
