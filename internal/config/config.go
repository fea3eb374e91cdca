// Package config loads tinyplan configuration.
//
// Load order (later sources override earlier):
//  1. Built-in defaults
//  2. User config (~/.tinyplan/config.yaml) - optional
//  3. Project config (.tinyplan/config.yaml) - optional
//  4. Environment variables (TINYPLAN_*)
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// Dir is the per-directory config location.
	Dir = ".tinyplan"
	// ConfigFileName is the config file name inside Dir.
	ConfigFileName = "config.yaml"
	// DBFileName is the default SQLite database file name.
	DBFileName = "tinyplan.db"
)

// DatabaseConfig selects the store location and dialect.
type DatabaseConfig struct {
	// Dialect is "sqlite" or "postgres".
	Dialect string `yaml:"dialect"`
	// Path is the SQLite database file (ignored for postgres).
	Path string `yaml:"path"`
	// DSN is the postgres connection string (ignored for sqlite).
	DSN string `yaml:"dsn"`
}

// Config is the tinyplan configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
}

// Default returns the built-in configuration: SQLite under ~/.tinyplan.
func Default() *Config {
	path := DBFileName
	if home, err := os.UserHomeDir(); err == nil {
		path = filepath.Join(home, Dir, DBFileName)
	}
	return &Config{
		Database: DatabaseConfig{
			Dialect: "sqlite",
			Path:    path,
		},
	}
}

// Load resolves the effective configuration.
func Load() (*Config, error) {
	cfg := Default()

	// User config (~/.tinyplan/config.yaml)
	if home, err := os.UserHomeDir(); err == nil {
		userPath := filepath.Join(home, Dir, ConfigFileName)
		if _, err := os.Stat(userPath); err == nil {
			if err := mergeFromFile(cfg, userPath); err != nil {
				return nil, err
			}
		}
	}

	// Project config (.tinyplan/config.yaml)
	projectPath := filepath.Join(Dir, ConfigFileName)
	if _, err := os.Stat(projectPath); err == nil {
		if err := mergeFromFile(cfg, projectPath); err != nil {
			return nil, err
		}
	}

	applyEnvVars(cfg)

	return cfg, nil
}

// DSN returns the driver DSN for the configured dialect.
func (c *Config) DSN() string {
	if c.Database.Dialect == "postgres" {
		return c.Database.DSN
	}
	return c.Database.Path
}

// mergeFromFile merges configuration from a YAML file into cfg.
// Only fields set in the file override the current values.
func mergeFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fileCfg.Database.Dialect != "" {
		cfg.Database.Dialect = fileCfg.Database.Dialect
	}
	if fileCfg.Database.Path != "" {
		cfg.Database.Path = fileCfg.Database.Path
	}
	if fileCfg.Database.DSN != "" {
		cfg.Database.DSN = fileCfg.Database.DSN
	}

	return nil
}

// applyEnvVars applies TINYPLAN_* overrides.
func applyEnvVars(cfg *Config) {
	if v := os.Getenv("TINYPLAN_DB_DIALECT"); v != "" {
		cfg.Database.Dialect = v
	}
	if v := os.Getenv("TINYPLAN_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("TINYPLAN_DB_DSN"); v != "" {
		cfg.Database.DSN = v
	}
}

// Write saves the configuration to the given path, creating parent
// directories as needed.
func (c *Config) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
