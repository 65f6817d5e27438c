// Package config loads and persists the taxatlas configuration from
// .taxatlas/config.json with sensible defaults.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// ConfigDir is the name of the per-project configuration directory
const ConfigDir = ".taxatlas"

// Config represents the complete taxatlas configuration
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	// Dataset holds flat-file locations
	Dataset DatasetConfig `json:"dataset" mapstructure:"dataset"`

	// Auth configures the shared-secret write token
	Auth AuthConfig `json:"auth" mapstructure:"auth"`

	// API configures the HTTP server
	API APIConfig `json:"api" mapstructure:"api"`

	// Logging configures log output
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// DatasetConfig locates the dataset files and the build inputs
type DatasetConfig struct {
	// Dir holds the region-partitioned JSON files
	Dir string `json:"dir" mapstructure:"dir"`

	// LegacyPath is the combined single-file snapshot
	LegacyPath string `json:"legacyPath" mapstructure:"legacyPath"`

	// SourceCsv is the default raw CSV for builds
	SourceCsv string `json:"sourceCsv" mapstructure:"sourceCsv"`

	// MappingsPath and TuningPath override the built-in build tables
	MappingsPath string `json:"mappingsPath" mapstructure:"mappingsPath"`
	TuningPath   string `json:"tuningPath" mapstructure:"tuningPath"`

	// Backups controls snapshot backups on save
	Backups BackupsConfig `json:"backups" mapstructure:"backups"`
}

// BackupsConfig controls pre-save snapshot backups
type BackupsConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`
	Keep    int  `json:"keep" mapstructure:"keep"`
}

// AuthConfig holds the write-token verification material.
// TokenHash is a bcrypt hash (preferred); Token is a plaintext fallback.
type AuthConfig struct {
	TokenHash string `json:"tokenHash,omitempty" mapstructure:"tokenHash"`
	Token     string `json:"token,omitempty" mapstructure:"token"`
}

// APIConfig configures the HTTP JSON API
type APIConfig struct {
	Addr    string `json:"addr" mapstructure:"addr"`
	Metrics bool   `json:"metrics" mapstructure:"metrics"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Dataset: DatasetConfig{
			Dir:        "data/regions",
			LegacyPath: "data/jurisdictions.json",
			SourceCsv:  "data/source/rates.csv",
			Backups: BackupsConfig{
				Enabled: true,
				Keep:    5,
			},
		},
		API: APIConfig{
			Addr:    "localhost:8640",
			Metrics: true,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from <root>/.taxatlas/config.json,
// falling back to defaults when the file does not exist
func LoadConfig(root string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(root, ConfigDir))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to <root>/.taxatlas/config.json
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, ConfigDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is usable
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Dataset.Dir == "" {
		return &ConfigError{Field: "dataset.dir", Message: "dataset directory is required"}
	}
	if c.Dataset.LegacyPath == "" {
		return &ConfigError{Field: "dataset.legacyPath", Message: "legacy snapshot path is required"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
