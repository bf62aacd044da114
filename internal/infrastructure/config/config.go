// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for docflow configuration.
	DefaultConfigDir = ".docflow"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultRolesFile is the default role directory file name.
	DefaultRolesFile = "roles.yaml"
	// DefaultDatabaseFile is the default SQLite database file name.
	DefaultDatabaseFile = "docflow.db"
)

// Config holds static infrastructure configuration (read-only after init).
type Config struct {
	SQLite SQLiteConfig `yaml:"sqlite,omitempty"`
	Roles  RolesConfig  `yaml:"roles,omitempty"`
}

// SQLiteConfig holds configuration for the SQLite store.
type SQLiteConfig struct {
	// Path is the file path to the SQLite database. Empty means the default
	// location under the config directory.
	Path string `yaml:"path,omitempty"`
}

// RolesConfig holds configuration for the role directory.
type RolesConfig struct {
	// Path is the file path to the roles YAML file. Empty means the default
	// location under the config directory.
	Path string `yaml:"path,omitempty"`
}

// Default returns a Config with default values for the given base path.
func Default(basePath string) *Config {
	return &Config{
		SQLite: SQLiteConfig{Path: filepath.Join(basePath, DefaultConfigDir, DefaultDatabaseFile)},
		Roles:  RolesConfig{Path: filepath.Join(basePath, DefaultConfigDir, DefaultRolesFile)},
	}
}

// Load loads configuration from the .docflow directory in the given path.
func Load(basePath string) (*Config, error) {
	configFile := ConfigFilePath(basePath)

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s (run 'docflow init' first)", configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Start with defaults
	cfg := Default(basePath)

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the .docflow directory, creating it if
// needed.
func Save(basePath string, cfg *Config) error {
	if err := os.MkdirAll(ConfigDir(basePath), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(ConfigFilePath(basePath), data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// ConfigDir returns the path to the .docflow config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// RolesFilePath returns the path to the roles file.
func RolesFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultRolesFile)
}

// Exists checks if a docflow config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}
