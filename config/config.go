// Package config provides configuration loading and management for spdxstore.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the complete spdxstore configuration
type Config struct {
	Document DocumentConfig `yaml:"document"`
	Ontology OntologyConfig `yaml:"ontology"`
	NATS     NATSConfig     `yaml:"nats"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DocumentConfig configures document defaults
type DocumentConfig struct {
	// DefaultNamespace is the namespace assigned to documents that do not
	// declare one (e.g., "https://example.com/spdxdocs/unnamed")
	DefaultNamespace string `yaml:"default_namespace"`
	// SpecVersion is the SPDX spec version assumed for documents without a
	// declared version (default: "SPDX-2.3")
	SpecVersion string `yaml:"spec_version"`
}

// OntologyConfig configures the OWL schema source
type OntologyConfig struct {
	// Path overrides the embedded SPDX ontology with a Turtle file on disk
	// (empty = use embedded schema)
	Path string `yaml:"path"`
}

// NATSConfig configures the change-feed connection
type NATSConfig struct {
	// URL is the NATS server URL (empty = change feed disabled)
	URL string `yaml:"url"`
	// Stream is the JetStream stream name for graph mutation events
	Stream string `yaml:"stream"`
}

// LoggingConfig configures structured logging
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error
	Level string `yaml:"level"`
	// Format is the handler format: text or json
	Format string `yaml:"format"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Document: DocumentConfig{
			DefaultNamespace: "https://example.com/spdxdocs/unnamed",
			SpecVersion:      "SPDX-2.3",
		},
		Ontology: OntologyConfig{
			Path: "", // Embedded schema
		},
		NATS: NATSConfig{
			URL:    "",
			Stream: "graph",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Document.DefaultNamespace == "" {
		return fmt.Errorf("document.default_namespace is required")
	}
	if c.Document.SpecVersion == "" {
		return fmt.Errorf("document.spec_version is required")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error")
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json")
	}
	if c.NATS.URL != "" && c.NATS.Stream == "" {
		return fmt.Errorf("nats.stream is required when nats.url is set")
	}
	return nil
}

// SlogLevel maps the configured level to a slog.Level
func (c *Config) SlogLevel() slog.Level {
	switch c.Logging.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Document
	if other.Document.DefaultNamespace != "" {
		c.Document.DefaultNamespace = other.Document.DefaultNamespace
	}
	if other.Document.SpecVersion != "" {
		c.Document.SpecVersion = other.Document.SpecVersion
	}

	// Ontology
	if other.Ontology.Path != "" {
		c.Ontology.Path = other.Ontology.Path
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	if other.NATS.Stream != "" {
		c.NATS.Stream = other.NATS.Stream
	}

	// Logging
	if other.Logging.Level != "" {
		c.Logging.Level = other.Logging.Level
	}
	if other.Logging.Format != "" {
		c.Logging.Format = other.Logging.Format
	}
}
