package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds user preferences. A value is loaded once at startup and passed
// explicitly into the components that need it; nothing reads it through a
// global.
type Config struct {
	Locale        string `yaml:"locale" json:"locale"`                 // BCP 47 tag, e.g. "en-US"
	Timezone      string `yaml:"timezone" json:"timezone"`             // IANA name, "" = system local
	ConfirmDelete bool   `yaml:"confirm_delete" json:"confirm_delete"` // Require confirmation before deleting an event

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	logPath := ""
	if home != "" {
		logPath = filepath.Join(home, ".ironcal", "logs", "ironcal.log")
	}

	return &Config{
		Locale:        getEnv("IRONCAL_LOCALE", "en-US"),
		Timezone:      getEnv("IRONCAL_TZ", ""),
		ConfirmDelete: true,
		LogLevel:      getEnv("IRONCAL_LOG_LEVEL", "INFO"),
		LogFile:       getEnv("IRONCAL_LOG_FILE", logPath),
		LogConsole:    getEnv("IRONCAL_LOG_CONSOLE", "false") == "true",
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Load loads config from ~/.ironcal/config.yaml
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(filepath.Join(home, ".ironcal", "config.yaml"))
}

// LoadFrom loads config from an explicit path, falling back to defaults when
// the file does not exist.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save saves config to ~/.ironcal/config.yaml
func (c *Config) Save() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	configDir := filepath.Join(home, ".ironcal")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, "config.yaml")
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Location resolves the configured timezone, or the system local zone when
// unset or invalid.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
