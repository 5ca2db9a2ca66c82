package testutil

import (
	"testing"

	"github.com/willibrandon/paintnumbers/pkg/config"
)

// NewTestConfig returns a valid Config suitable for tests, rooted at a
// per-test temp directory so Validate's writability check always passes.
func NewTestConfig(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		MaxColors:     config.DefaultMaxColors,
		MinRegionSize: 0,
		TempDir:       t.TempDir(),
		Timeout:       config.DefaultTimeout,
		LogLevel:      config.DefaultLogLevel,
	}
}
