// Package config provides configuration management for the paint-by-numbers
// worksheet server.
//
// Configuration is loaded exclusively from a JSON file at
// ~/.config/paintnumbers/config.json. No environment variables or
// auto-discovery mechanisms are used - every tunable has a default, so the
// config file itself is optional.
//
// Example config file:
//
//	{
//	  "max_colors": 16,
//	  "min_region_size": 20,
//	  "temp_dir": "/tmp/paintnumbers",
//	  "timeout": 30,
//	  "log_level": "info",
//	  "log_file": "",
//	  "enable_timing": false
//	}
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config holds the worksheet server configuration.
//
// All fields are optional in the config file; unset fields take the defaults
// documented below.
type Config struct {
	// MaxColors is the default palette size handed to worksheet.Process when
	// a tool call does not specify one explicitly.
	// Defaults to 16 if not specified.
	MaxColors int `json:"max_colors"`

	// MinRegionSize is the default floor passed as Options.MinRegionSize.
	// A value of 0 tells the pipeline to compute the dynamic floor itself.
	// Defaults to 0 (dynamic).
	MinRegionSize int `json:"min_region_size"`

	// TempDir is the directory used for scratch files (preview renders,
	// session export staging).
	// Defaults to the OS temp dir + "paintnumbers" if not specified.
	TempDir string `json:"temp_dir"`

	// Timeout is the maximum duration allowed for a single Process call.
	// Defaults to 30 seconds if not specified.
	Timeout time.Duration `json:"timeout"`

	// LogLevel is the logging verbosity level.
	// Valid values: "debug", "info", "warn", "error"
	// Defaults to "info" if not specified.
	LogLevel string `json:"log_level"`

	// LogFile is the optional path to a log file for persistent logging.
	// If empty, logs only go to stderr.
	LogFile string `json:"log_file"`

	// EnableTiming enables request tracking and operation timing for all
	// tools. When enabled, each operation gets a unique request ID and
	// duration is logged.
	EnableTiming bool `json:"enable_timing"`
}

// Default configuration values applied when fields are not specified in the
// config file.
const (
	// DefaultMaxColors is the default worksheet palette size.
	DefaultMaxColors = 16

	// DefaultTimeout is the default maximum duration for a Process call.
	DefaultTimeout = 30 * time.Second

	// DefaultLogLevel is the default logging verbosity ("info").
	DefaultLogLevel = "info"
)

// Load loads configuration from the default config file at
// ~/.config/paintnumbers/config.json.
//
// Unlike many CLI tools in this space, a missing config file is not an
// error here - every field has a usable default, so Load falls back to
// defaults rather than requiring an explicit file on disk.
func Load() (*Config, error) {
	cfg := &Config{
		MaxColors: DefaultMaxColors,
		Timeout:   DefaultTimeout,
		LogLevel:  DefaultLogLevel,
	}

	if err := cfg.loadFromFile(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := cfg.setDefaults(); err != nil {
		return nil, fmt.Errorf("failed to set defaults: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// configJSON is a temporary struct for unmarshaling JSON with timeout as an
// int (seconds).
type configJSON struct {
	MaxColors     int    `json:"max_colors"`
	MinRegionSize int    `json:"min_region_size"`
	TempDir       string `json:"temp_dir"`
	Timeout       int    `json:"timeout"` // timeout in seconds
	LogLevel      string `json:"log_level"`
	LogFile       string `json:"log_file"`
	EnableTiming  bool   `json:"enable_timing"`
}

// loadFromFile loads configuration from the default config file location.
// A missing file is reported via the plain os.IsNotExist error so Load can
// treat it as "use defaults" rather than a hard failure.
func (c *Config) loadFromFile() error {
	configPath := getConfigFilePath()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}

	var cj configJSON
	if err := json.Unmarshal(data, &cj); err != nil {
		return fmt.Errorf("malformed config file %s: %w", configPath, err)
	}

	c.MaxColors = cj.MaxColors
	c.MinRegionSize = cj.MinRegionSize
	c.TempDir = cj.TempDir
	if cj.Timeout > 0 {
		c.Timeout = time.Duration(cj.Timeout) * time.Second
	}
	if cj.LogLevel != "" {
		c.LogLevel = cj.LogLevel
	}
	c.LogFile = cj.LogFile
	c.EnableTiming = cj.EnableTiming

	return nil
}

// setDefaults fills in any fields left unset after loadFromFile, and
// ensures TempDir exists.
func (c *Config) setDefaults() error {
	if c.MaxColors <= 0 {
		c.MaxColors = DefaultMaxColors
	}

	if c.TempDir == "" {
		c.TempDir = filepath.Join(os.TempDir(), "paintnumbers")
	}
	if err := os.MkdirAll(c.TempDir, 0755); err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}

	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}

	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}

	return nil
}

// Validate checks if the configuration is valid and usable.
//
// Validation checks:
//   - MaxColors is between 2 and 128 (worksheet.Process's own bounds)
//   - MinRegionSize is non-negative
//   - Temp directory is writable
//   - Timeout is positive
//   - LogLevel is one of: debug, info, warn, error
func (c *Config) Validate() error {
	if c.MaxColors < 2 || c.MaxColors > 128 {
		return fmt.Errorf("max_colors must be between 2 and 128, got %d", c.MaxColors)
	}

	if c.MinRegionSize < 0 {
		return fmt.Errorf("min_region_size must be non-negative, got %d", c.MinRegionSize)
	}

	testFile := filepath.Join(c.TempDir, ".test")
	if err := os.WriteFile(testFile, []byte("test"), 0644); err != nil {
		return fmt.Errorf("temp directory is not writable: %w", err)
	}
	os.Remove(testFile)

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// getConfigFilePath is a function variable that returns the default config
// file path. Can be overridden in tests.
var getConfigFilePath = func() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "paintnumbers", "config.json")
}
