package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/willibrandon/mtlog/core"

	"github.com/willibrandon/paintnumbers/pkg/config"
	"github.com/willibrandon/paintnumbers/pkg/persist"
)

// SaveSessionInput defines the input parameters for the save_session tool.
type SaveSessionInput struct {
	SessionJSON   string `json:"session_json" jsonschema:"A session document previously returned by process_worksheet, with filledRegions/activeTheme/toolConfig updated by the caller"`
	FilledRegions []int  `json:"filled_regions,omitempty" jsonschema:"Region IDs the player has filled in"`
	ActiveTheme   string `json:"active_theme,omitempty" jsonschema:"Name of the currently selected palette theme"`
}

// SaveSessionOutput defines the output for the save_session tool.
type SaveSessionOutput struct {
	SessionJSON string `json:"session_json" jsonschema:"The session document with filled_regions and active_theme applied"`
}

// LoadSessionInput defines the input parameters for the load_session tool.
type LoadSessionInput struct {
	SessionJSON string `json:"session_json" jsonschema:"A session document to validate and decode"`
}

// LoadSessionOutput defines the output for the load_session tool.
type LoadSessionOutput struct {
	ArtistName    string `json:"artist_name"`
	SourceWidth   int    `json:"source_width"`
	SourceHeight  int    `json:"source_height"`
	PaletteSize   int    `json:"palette_size"`
	RegionCount   int    `json:"region_count"`
	FilledRegions []int  `json:"filled_regions"`
	ActiveTheme   string `json:"active_theme"`
}

// RegisterSessionTools registers the save_session and load_session tools
// with the MCP server.
func RegisterSessionTools(server *mcp.Server, cfg *config.Config, logger core.Logger) {
	mcp.AddTool(
		server,
		&mcp.Tool{
			Name:        "save_session",
			Description: "Update a worksheet session document's mutable game state (filled regions, active theme) and return the updated document, ready to be persisted by the caller.",
		},
		maybeWrapWithTiming("save_session", logger, cfg.EnableTiming,
			func(ctx context.Context, req *mcp.CallToolRequest, input SaveSessionInput) (*mcp.CallToolResult, *SaveSessionOutput, error) {
				session, err := persist.FromJSON([]byte(input.SessionJSON))
				if err != nil {
					return nil, nil, fmt.Errorf("save_session: %w", err)
				}

				session.FilledRegions = input.FilledRegions
				if input.ActiveTheme != "" {
					session.ActiveTheme = input.ActiveTheme
				}

				data, err := persist.ToJSON(session)
				if err != nil {
					return nil, nil, fmt.Errorf("save_session: %w", err)
				}

				return nil, &SaveSessionOutput{SessionJSON: string(data)}, nil
			}))

	mcp.AddTool(
		server,
		&mcp.Tool{
			Name:        "load_session",
			Description: "Decode a saved session document, validating the processedData envelope and source image, and return a summary of its contents.",
		},
		maybeWrapWithTiming("load_session", logger, cfg.EnableTiming,
			func(ctx context.Context, req *mcp.CallToolRequest, input LoadSessionInput) (*mcp.CallToolResult, *LoadSessionOutput, error) {
				session, err := persist.FromJSON([]byte(input.SessionJSON))
				if err != nil {
					return nil, nil, fmt.Errorf("load_session: %w", err)
				}

				processed, err := persist.Load(session)
				if err != nil {
					return nil, nil, fmt.Errorf("load_session: %w", err)
				}

				if _, err := persist.DecodeSourceImage(session.SourceImage); err != nil {
					return nil, nil, fmt.Errorf("load_session: %w", err)
				}

				return nil, &LoadSessionOutput{
					ArtistName:    session.ArtistName,
					SourceWidth:   processed.OriginalWidth,
					SourceHeight:  processed.OriginalHeight,
					PaletteSize:   len(processed.Palette),
					RegionCount:   len(processed.Regions),
					FilledRegions: session.FilledRegions,
					ActiveTheme:   session.ActiveTheme,
				}, nil
			}))
}
