package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Common errors for configuration loading.
var (
	ErrFileNotFound     = errors.New("configuration file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidJSON      = errors.New("invalid JSON syntax")
	ErrInvalidYAML      = errors.New("invalid YAML syntax")
	ErrEmptyFile        = errors.New("configuration file is empty")
)

// Config is the engine configuration.
type Config struct {
	// Discover controls whether the engine scans descriptor resources
	// at construction. Defaults to true.
	Discover *bool `json:"discover,omitempty" yaml:"discover,omitempty"`

	// PluginDirs are directory patterns searched for descriptor
	// resources. Patterns support ** for recursive matching.
	PluginDirs []string `json:"pluginDirs,omitempty" yaml:"pluginDirs,omitempty"`

	// Logging configures the engine logger.
	Logging LoggingConfig `json:"logging,omitempty" yaml:"logging,omitempty"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	// Level is the minimum level: debug, info, warn or error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is the output format: text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`

	// File is an optional path that receives a copy of the log output
	// in addition to stderr.
	File string `json:"file,omitempty" yaml:"file,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	discover := true
	return &Config{
		Discover: &discover,
		Logging:  LoggingConfig{Level: "info", Format: "text"},
	}
}

// DiscoverEnabled reports whether discovery should run.
func (c *Config) DiscoverEnabled() bool {
	return c.Discover == nil || *c.Discover
}

// LoadFromFile reads a Config from a JSON or YAML file. The format is
// detected from the file extension (.yaml/.yml for YAML, otherwise
// JSON).
func LoadFromFile(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		return ParseYAML(data)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w in file: %s", ErrInvalidJSON, path)
	}
	return ParseJSON(data)
}

// ParseYAML parses a YAML configuration document.
func ParseYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseJSON parses a JSON configuration document.
func ParseJSON(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks structural constraints.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level: %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid logging format: %q", c.Logging.Format)
	}
	for _, pattern := range c.PluginDirs {
		if strings.TrimSpace(pattern) == "" {
			return errors.New("pluginDirs entries must not be empty")
		}
	}
	return nil
}
