package tools

import (
	"bytes"
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/willibrandon/mtlog/core"

	"github.com/willibrandon/paintnumbers/pkg/config"
	"github.com/willibrandon/paintnumbers/pkg/ingest"
	"github.com/willibrandon/paintnumbers/pkg/worksheet"
)

// PreviewPaletteInput defines the input parameters for the preview_palette tool.
type PreviewPaletteInput struct {
	SourcePath  string `json:"source_path,omitempty" jsonschema:"Path to source image file; mutually exclusive with image_base64"`
	ImageBase64 string `json:"image_base64,omitempty" jsonschema:"Inline image bytes, base64-encoded; mutually exclusive with source_path"`
	MaxColors   int    `json:"max_colors,omitempty" jsonschema:"Target preview palette size (default: the server's configured max_colors)"`
}

// PreviewPaletteOutput defines the output for the preview_palette tool.
type PreviewPaletteOutput struct {
	Palette []worksheet.PaletteColor `json:"palette" jsonschema:"Advisory palette estimate, not the final process_worksheet palette"`
}

// RegisterPreviewTools registers the preview_palette tool with the MCP server.
func RegisterPreviewTools(server *mcp.Server, cfg *config.Config, logger core.Logger) {
	mcp.AddTool(
		server,
		&mcp.Tool{
			Name:        "preview_palette",
			Description: "Produce a fast, advisory palette estimate for an image using median-cut quantization over a downsampled copy. Intended for instant UI feedback while process_worksheet runs the full k-means pipeline; it never affects process_worksheet's output.",
		},
		maybeWrapWithTiming("preview_palette", logger, cfg.EnableTiming,
			func(ctx context.Context, req *mcp.CallToolRequest, input PreviewPaletteInput) (*mcp.CallToolResult, *PreviewPaletteOutput, error) {
				raw, err := loadImageBytes(input.SourcePath, input.ImageBase64)
				if err != nil {
					return nil, nil, err
				}

				img, _, err := ingest.Decode(bytes.NewReader(raw))
				if err != nil {
					return nil, nil, fmt.Errorf("preview_palette: %w", err)
				}

				maxColors := input.MaxColors
				if maxColors == 0 {
					maxColors = cfg.MaxColors
				}

				palette := worksheet.PreviewPalette(img, maxColors)
				return nil, &PreviewPaletteOutput{Palette: palette}, nil
			}))
}
