package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all bridge configuration.
type Config struct {
	Logging   LogConfig
	Detection DetectionConfig
	OCR       OCRConfig
	KnownApps KnownAppsConfig
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"BRIDGE_LOG_LEVEL" default:"info" yaml:"level"`
	Development bool   `envconfig:"BRIDGE_LOG_DEV" default:"false" yaml:"development"`
}

// DetectionConfig holds app-detection provider configuration.
//
// Roots and Patterns drive the installed-applications scan; empty values fall
// back to the platform detector's defaults.
type DetectionConfig struct {
	ScanRoots    []string `envconfig:"BRIDGE_SCAN_ROOTS" yaml:"scan_roots"`
	ScanPatterns []string `envconfig:"BRIDGE_SCAN_PATTERNS" yaml:"scan_patterns"`
	Serialize    bool     `envconfig:"BRIDGE_DETECT_SERIALIZE" default:"true" yaml:"serialize"`
}

// OCRConfig holds OCR provider configuration.
type OCRConfig struct {
	// MaxImageBytes caps the accepted image buffer. Oversized buffers are
	// rejected before the native engine sees them.
	MaxImageBytes int  `envconfig:"BRIDGE_OCR_MAX_BYTES" default:"16777216" yaml:"max_image_bytes"`
	Serialize     bool `envconfig:"BRIDGE_OCR_SERIALIZE" default:"true" yaml:"serialize"`
}

// KnownAppsConfig holds the known-applications catalog configuration.
type KnownAppsConfig struct {
	// Path to a YAML file with extra catalog entries, merged over the
	// built-in list. Empty means built-ins only.
	Path string `envconfig:"BRIDGE_KNOWN_APPS" yaml:"path"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// LoadFile overlays a YAML file on top of the environment-derived config.
// File values win for fields the file sets.
func LoadFile(path string) (*Config, error) {
	cfg := LoadOrDefault()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		Detection: DetectionConfig{
			Serialize: true,
		},
		OCR: OCRConfig{
			MaxImageBytes: 16 * 1024 * 1024,
			Serialize:     true,
		},
	}
}
