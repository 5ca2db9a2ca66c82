package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "paintnumbers-test-*")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tempDir)

	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: &Config{
				MaxColors: 16,
				TempDir:   tempDir,
				Timeout:   30 * time.Second,
				LogLevel:  "info",
			},
			wantErr: false,
		},
		{
			name: "max colors too low",
			config: &Config{
				MaxColors: 1,
				TempDir:   tempDir,
				Timeout:   30 * time.Second,
				LogLevel:  "info",
			},
			wantErr: true,
		},
		{
			name: "max colors too high",
			config: &Config{
				MaxColors: 257,
				TempDir:   tempDir,
				Timeout:   30 * time.Second,
				LogLevel:  "info",
			},
			wantErr: true,
		},
		{
			name: "negative min region size",
			config: &Config{
				MaxColors:     16,
				MinRegionSize: -1,
				TempDir:       tempDir,
				Timeout:       30 * time.Second,
				LogLevel:      "info",
			},
			wantErr: true,
		},
		{
			name: "invalid timeout",
			config: &Config{
				MaxColors: 16,
				TempDir:   tempDir,
				Timeout:   -1 * time.Second,
				LogLevel:  "info",
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			config: &Config{
				MaxColors: 16,
				TempDir:   tempDir,
				Timeout:   30 * time.Second,
				LogLevel:  "invalid",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "paintnumbers-test-*")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tempDir)

	orig := getConfigFilePath
	getConfigFilePath = func() string {
		return filepath.Join(tempDir, "does-not-exist.json")
	}
	defer func() { getConfigFilePath = orig }()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.MaxColors != DefaultMaxColors {
		t.Errorf("MaxColors = %d, want %d", cfg.MaxColors, DefaultMaxColors)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %v, want %v", cfg.LogLevel, DefaultLogLevel)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "paintnumbers-test-*")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tempDir)

	configPath := filepath.Join(tempDir, "config.json")
	contents := `{"max_colors": 24, "min_region_size": 10, "log_level": "debug", "timeout": 60}`
	if err := os.WriteFile(configPath, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}

	orig := getConfigFilePath
	getConfigFilePath = func() string { return configPath }
	defer func() { getConfigFilePath = orig }()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.MaxColors != 24 {
		t.Errorf("MaxColors = %d, want 24", cfg.MaxColors)
	}
	if cfg.MinRegionSize != 10 {
		t.Errorf("MinRegionSize = %d, want 10", cfg.MinRegionSize)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
	if cfg.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want 60s", cfg.Timeout)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "paintnumbers-test-*")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tempDir)

	configPath := filepath.Join(tempDir, "config.json")
	if err := os.WriteFile(configPath, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	orig := getConfigFilePath
	getConfigFilePath = func() string { return configPath }
	defer func() { getConfigFilePath = orig }()

	if _, err := Load(); err == nil {
		t.Error("Load() with malformed config file: want error, got nil")
	}
}
