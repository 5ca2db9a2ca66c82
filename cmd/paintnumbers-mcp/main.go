package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blang/semver"
	"github.com/joho/godotenv"
	"github.com/rhysd/go-github-selfupdate/selfupdate"

	"github.com/willibrandon/mtlog"
	"github.com/willibrandon/mtlog/core"
	"github.com/willibrandon/mtlog/sinks"

	"github.com/willibrandon/paintnumbers/pkg/config"
	"github.com/willibrandon/paintnumbers/pkg/server"
	"github.com/willibrandon/paintnumbers/pkg/worksheet"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	BuildTime = "unknown"

	// updateSlug is the GitHub "owner/repo" slug self-update checks against.
	updateSlug = "willibrandon/paintnumbers-mcp"
)

func main() {
	// .env is an optional local-dev convenience; it never overrides an
	// already-present environment variable and the JSON config file stays
	// authoritative for everything it sets.
	_ = godotenv.Load()

	var (
		showVersion = flag.Bool("version", false, "Show version information")
		showHealth  = flag.Bool("health", false, "Check health and exit")
		debugMode   = flag.Bool("debug", false, "Enable debug logging")
		doUpdate    = flag.Bool("update", false, "Check GitHub releases and update this binary in place")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("paintnumbers-mcp version %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	if *doUpdate {
		os.Exit(runSelfUpdate())
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if *debugMode {
		cfg.LogLevel = "debug"
	}

	logger := createLogger(cfg.LogLevel)

	if *showHealth {
		os.Exit(performHealthCheck(cfg, logger))
	}

	logger.Information("Starting worksheet MCP Server version {Version} (built {BuildTime})", Version, BuildTime)
	logger.Debug("Configuration loaded: {@Config}", cfg)

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create server: {Error}", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Run(ctx)
	}()

	select {
	case sig := <-sigChan:
		logger.Information("Received shutdown signal: {Signal}", sig)
		cancel()
		time.Sleep(100 * time.Millisecond)
	case err := <-errChan:
		if err != nil {
			logger.Error("Server error: {Error}", err)
			os.Exit(1)
		}
	}

	logger.Information("Server stopped")
}

// createLogger creates a configured logger instance.
func createLogger(logLevel string) core.Logger {
	sink := sinks.NewConsoleSink()

	var opts []mtlog.Option
	opts = append(opts, mtlog.WithSink(sink))

	switch logLevel {
	case "debug":
		opts = append(opts, mtlog.WithMinimumLevel(core.DebugLevel))
	case "warn":
		opts = append(opts, mtlog.WithMinimumLevel(core.WarningLevel))
	case "error":
		opts = append(opts, mtlog.WithMinimumLevel(core.ErrorLevel))
	default:
		opts = append(opts, mtlog.WithMinimumLevel(core.InformationLevel))
	}

	return mtlog.New(opts...)
}

// performHealthCheck runs worksheet.Process over a tiny synthetic image to
// confirm the core pipeline is reachable and the configured temp directory
// is usable, without depending on any external executable.
func performHealthCheck(cfg *config.Config, logger core.Logger) int {
	logger.Information("Performing health check...")

	if err := os.MkdirAll(cfg.TempDir, 0755); err != nil {
		logger.Error("Health check failed: temp directory {Path} is not accessible - {Error}", cfg.TempDir, err)
		return 1
	}
	logger.Information("✓ Temp directory is accessible at {Path}", cfg.TempDir)

	pixels := make([]byte, 8*8*4)
	for i := 0; i < 8*8; i++ {
		o := i * 4
		pixels[o], pixels[o+1], pixels[o+2], pixels[o+3] = byte(i * 4), byte(i * 2), byte(i), 255
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := worksheet.Process(ctx, pixels, 8, 8, worksheet.Options{MaxColors: 4}); err != nil {
		logger.Error("Health check failed: worksheet.Process self-test failed - {Error}", err)
		return 1
	}
	logger.Information("✓ worksheet.Process self-test passed")

	logger.Information("Health check passed - all systems operational")
	return 0
}

// runSelfUpdate checks GitHub releases for updateSlug against the build's
// Version and, if a newer release exists, replaces the running binary.
func runSelfUpdate() int {
	current, err := semver.Parse(normalizeVersion(Version))
	if err != nil {
		fmt.Fprintf(os.Stderr, "current version %q is not valid semver, cannot check for updates: %v\n", Version, err)
		return 1
	}

	latest, err := selfupdate.UpdateSelf(current, updateSlug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "update check failed: %v\n", err)
		return 1
	}

	if latest.Version.Equals(current) {
		fmt.Printf("already running the latest version: %s\n", current)
		return 0
	}

	fmt.Printf("updated from %s to %s\n", current, latest.Version)
	return 0
}

// normalizeVersion strips a leading "v" so "v1.2.3" and "1.2.3" both parse;
// "dev" builds fail this deliberately since self-update has no baseline to
// compare against.
func normalizeVersion(v string) string {
	if len(v) > 0 && v[0] == 'v' {
		return v[1:]
	}
	return v
}
