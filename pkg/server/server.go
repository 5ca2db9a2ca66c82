// Package server provides the MCP server implementation for the worksheet
// processor.
//
// This package orchestrates the MCP (Model Context Protocol) server
// lifecycle, connecting MCP tool requests to the worksheet pipeline through
// the worksheet, persist, ingest, and tools packages.
//
// Server Lifecycle:
//  1. Create server with New() using validated config
//  2. Tools are automatically registered during initialization
//  3. Run() starts the server with stdio transport
//  4. Server processes tool requests via MCP protocol
//  5. Context cancellation triggers graceful shutdown
//
// The server uses stdio transport for communication with MCP clients.
package server

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/willibrandon/mtlog/core"

	"github.com/willibrandon/paintnumbers/pkg/config"
	"github.com/willibrandon/paintnumbers/pkg/tools"
)

// Server wraps the MCP server and provides worksheet tool implementations.
//
// The server initializes the MCP server and automatically registers all
// available tools. It handles the complete lifecycle of MCP tool request
// processing.
type Server struct {
	mcp    *mcp.Server
	config *config.Config
	logger core.Logger
}

// New creates a new worksheet MCP server with the given configuration.
//
// The configuration is validated before server creation. If validation
// fails, an error is returned immediately.
func New(cfg *config.Config, logger core.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "paintnumbers-mcp",
		Version: "0.1.0",
	}, nil)

	s := &Server{
		mcp:    mcpServer,
		config: cfg,
		logger: logger,
	}

	s.registerTools()

	return s, nil
}

// Run starts the MCP server with stdio transport.
//
// The server listens for MCP protocol messages on stdin and writes
// responses to stdout. Tool requests are processed synchronously in the
// order received.
//
// Run blocks until the context is cancelled, the client closes the
// connection, or a fatal error occurs. Context cancellation triggers
// graceful shutdown and does not return an error.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Information("Starting worksheet MCP server")
	s.logger.Debug("Configuration: {@Config}", s.config)

	transport := &mcp.StdioTransport{}

	if err := s.mcp.Run(ctx, transport); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// registerTools registers all MCP tools with the server.
//
// Called automatically during server initialization. Registers:
//   - process_worksheet: the full k-means pipeline
//   - preview_palette: cheap advisory median-cut estimate
//   - export_worksheet_image: rendered WebP output
//   - save_session / load_session: §6 persistence document round-trip
//   - analyze_image: advisory brightness/edge/palette-size hints
func (s *Server) registerTools() {
	s.logger.Debug("Registering MCP tools")

	tools.RegisterProcessTools(s.mcp, s.config, s.logger)
	tools.RegisterPreviewTools(s.mcp, s.config, s.logger)
	tools.RegisterExportTools(s.mcp, s.config, s.logger)
	tools.RegisterSessionTools(s.mcp, s.config, s.logger)
	tools.RegisterAnalysisTools(s.mcp, s.config, s.logger)
}

// Config returns the server's configuration, primarily for tests and for
// the self-test health check in cmd/paintnumbers-mcp.
func (s *Server) Config() *config.Config {
	return s.config
}
