package server

import (
	"testing"
	"time"

	"github.com/willibrandon/mtlog"
	"github.com/willibrandon/mtlog/sinks"

	"github.com/willibrandon/paintnumbers/pkg/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		MaxColors:     16,
		MinRegionSize: 0,
		TempDir:       t.TempDir(),
		Timeout:       30 * time.Second,
		LogLevel:      "info",
	}
}

func TestNew(t *testing.T) {
	cfg := testConfig(t)
	logger := mtlog.New(mtlog.WithSink(sinks.NewMemorySink()))

	srv, err := New(cfg, logger)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if srv == nil {
		t.Fatal("New() returned nil server")
	}
	if srv.config != cfg {
		t.Error("server.config does not match provided config")
	}
	if srv.logger == nil {
		t.Error("server.logger is nil")
	}
	if srv.mcp == nil {
		t.Error("server.mcp is nil")
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	logger := mtlog.New(mtlog.WithSink(sinks.NewMemorySink()))

	tests := []struct {
		name          string
		mutate        func(*config.Config)
		wantErrSubstr string
	}{
		{
			name:          "max colors too low",
			mutate:        func(c *config.Config) { c.MaxColors = 1 },
			wantErrSubstr: "max_colors",
		},
		{
			name:          "invalid log level",
			mutate:        func(c *config.Config) { c.LogLevel = "verbose" },
			wantErrSubstr: "invalid log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.mutate(cfg)

			_, err := New(cfg, logger)
			if err == nil {
				t.Fatal("New() expected error, got nil")
			}
			if !contains(err.Error(), tt.wantErrSubstr) {
				t.Errorf("New() error = %v, want substring %q", err, tt.wantErrSubstr)
			}
		})
	}
}

func TestServer_Config(t *testing.T) {
	cfg := testConfig(t)
	logger := mtlog.New(mtlog.WithSink(sinks.NewMemorySink()))

	srv, err := New(cfg, logger)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if srv.Config() != cfg {
		t.Error("Config() does not match provided config")
	}
}

// contains is a helper to check if a string contains a substring.
func contains(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(substr) == 0 ||
		(len(s) > 0 && len(substr) > 0 && containsHelper(s, substr)))
}

func containsHelper(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
