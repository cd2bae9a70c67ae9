// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"quotecalc/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Settings is the path to the organization settings YAML file
	Settings string `json:"settings"`

	// Validation contains validation defaults
	Validation ValidationConfig `json:"validation"`

	// Report contains report output settings
	Report ReportConfig `json:"report"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// ValidationConfig contains validation-related settings
type ValidationConfig struct {
	// Tolerance is the maximum allowed absolute deviation per field,
	// in settlement-currency units
	Tolerance string `json:"tolerance"`

	// Mode is the default validation mode (summary, detailed)
	Mode string `json:"mode"`

	// Workers is the batch validation worker count
	Workers int `json:"workers"`
}

// ReportConfig contains report-related settings
type ReportConfig struct {
	// DefaultFormat is the default report format (text, html, json, pdf)
	DefaultFormat string `json:"default_format"`

	// OutputPath is the default report output path ("" means stdout)
	OutputPath string `json:"output_path,omitempty"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version:  "1",
		Settings: "organization.yaml",
		Validation: ValidationConfig{
			Tolerance: "2.00",
			Mode:      "summary",
			Workers:   4,
		},
		Report: ReportConfig{
			DefaultFormat: "text",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load reads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes configuration to a file
func Save(cfg *Config, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

var (
	mu      sync.RWMutex
	current = DefaultConfig()
)

// Get returns the current configuration
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Set replaces the current configuration
func Set(cfg *Config) {
	mu.Lock()
	defer mu.Unlock()
	current = cfg
}
