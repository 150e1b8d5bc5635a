// Package config loads, validates and watches the factprime YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DirName is the per-workspace directory holding config and logs.
const DirName = ".factprime"

// Config holds all factprime configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Terminal UI
	UI UIConfig `yaml:"ui"`

	// Numeric core limits and CLI concurrency
	Numeric NumericConfig `yaml:"numeric"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "factprime",
		Version: "1.0.0",
		UI:      DefaultUIConfig(),
		Numeric: DefaultNumericConfig(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultPath returns <workspace>/.factprime/config.yaml.
func DefaultPath(workspace string) string {
	return filepath.Join(workspace, DirName, "config.yaml")
}

// LogsDir returns <workspace>/.factprime/logs.
func LogsDir(workspace string) string {
	return filepath.Join(workspace, DirName, "logs")
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Return defaults if config file doesn't exist
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
// Unparseable numeric values are ignored.
func (c *Config) applyEnvOverrides() {
	if theme := os.Getenv("FACTPRIME_THEME"); theme != "" {
		c.UI.Theme = strings.ToLower(theme)
	}
	if v := os.Getenv("FACTPRIME_MAX_FACTORIAL"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Numeric.MaxFactorialInput = n
		}
	}
	if v := os.Getenv("FACTPRIME_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Numeric.Workers = n
		}
	}
	if level := os.Getenv("FACTPRIME_LOG_LEVEL"); level != "" {
		c.Logging.Level = strings.ToLower(level)
	}
	if v := os.Getenv("FACTPRIME_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Logging.DebugMode = b
		}
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.UI.Validate(); err != nil {
		return err
	}
	if err := c.Numeric.Validate(); err != nil {
		return err
	}
	return c.Logging.Validate()
}
