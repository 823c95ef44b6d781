// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"bill-optimizer/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Tariff contains tariff schedule configuration
	Tariff TariffConfig `json:"tariff"`

	// Model contains statistical model configuration
	Model ModelConfig `json:"model"`

	// History contains estimation history configuration
	History HistoryConfig `json:"history"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// TariffConfig contains tariff-related settings
type TariffConfig struct {
	// SchedulePath is an optional HCL file overriding the built-in
	// NEPRA schedule
	SchedulePath string `json:"schedule_path,omitempty"`

	// DefaultCategory is the consumer category assumed when a request
	// does not name one
	DefaultCategory string `json:"default_category"`
}

// ModelConfig contains statistical model settings
type ModelConfig struct {
	// ArtifactPath is the path to the trained model artifact (JSON).
	// When empty or unreadable every estimate takes the deterministic path.
	ArtifactPath string `json:"artifact_path,omitempty"`
}

// HistoryConfig contains estimation history settings
type HistoryConfig struct {
	// Enabled turns on persistence of estimation results
	Enabled bool `json:"enabled"`

	// DatabasePath is the SQLite database file
	DatabasePath string `json:"database_path"`

	// MaxRecords caps how many recent estimations a listing returns
	MaxRecords int `json:"max_records"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`

	// MetricsEnabled exposes Prometheus metrics on /metrics
	MetricsEnabled bool `json:"metrics_enabled"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	dbPath := filepath.Join(homeDir, ".bill-optimizer", "history.db")

	return &Config{
		Version: "1.0",
		Tariff: TariffConfig{
			DefaultCategory: "General",
		},
		Model: ModelConfig{},
		History: HistoryConfig{
			Enabled:      true,
			DatabasePath: dbPath,
			MaxRecords:   50,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			MetricsEnabled: true,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file. A missing file is an error: the
// path always comes from the caller explicitly, and a typo'd path silently
// running on defaults is worse than failing.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
