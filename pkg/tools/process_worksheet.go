package tools

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/willibrandon/mtlog/core"

	"github.com/willibrandon/paintnumbers/pkg/analysis"
	"github.com/willibrandon/paintnumbers/pkg/config"
	"github.com/willibrandon/paintnumbers/pkg/ingest"
	"github.com/willibrandon/paintnumbers/pkg/persist"
	"github.com/willibrandon/paintnumbers/pkg/worksheet"
)

// ProcessWorksheetInput defines the input parameters for the
// process_worksheet tool.
type ProcessWorksheetInput struct {
	SourcePath  string `json:"source_path,omitempty" jsonschema:"Path to source image file (.png, .jpg, .bmp, .tiff, .webp, .gif); mutually exclusive with image_base64"`
	ImageBase64 string `json:"image_base64,omitempty" jsonschema:"Inline image bytes, base64-encoded; mutually exclusive with source_path"`
	MaxColors   int    `json:"max_colors,omitempty" jsonschema:"Target palette size, 2-128 (default: an edge-density estimate, see analyze_image)"`
	ArtistName  string `json:"artist_name,omitempty" jsonschema:"Name recorded in the saved session document"`
}

// ProcessWorksheetOutput defines the output for the process_worksheet tool.
type ProcessWorksheetOutput struct {
	SourceWidth  int    `json:"source_width" jsonschema:"Width of the decoded source image"`
	SourceHeight int    `json:"source_height" jsonschema:"Height of the decoded source image"`
	PaletteSize  int    `json:"palette_size" jsonschema:"Number of distinct colors in the final palette"`
	RegionCount  int    `json:"region_count" jsonschema:"Number of finalized regions"`
	SessionJSON  string `json:"session_json" jsonschema:"The full persistence-format session document, JSON-encoded"`
}

// RegisterProcessTools registers the process_worksheet tool with the MCP server.
func RegisterProcessTools(server *mcp.Server, cfg *config.Config, logger core.Logger) {
	mcp.AddTool(
		server,
		&mcp.Tool{
			Name:        "process_worksheet",
			Description: "Convert a raster image into a color-by-numbers worksheet: a quantized palette of up to max_colors colors, a partition of the image into connected regions, and per-region metadata (border pixels, label anchor). Returns the full persistence-format session document.",
		},
		maybeWrapWithTiming("process_worksheet", logger, cfg.EnableTiming,
			func(ctx context.Context, req *mcp.CallToolRequest, input ProcessWorksheetInput) (*mcp.CallToolResult, *ProcessWorksheetOutput, error) {
				raw, err := loadImageBytes(input.SourcePath, input.ImageBase64)
				if err != nil {
					return nil, nil, err
				}

				img, _, err := ingest.Decode(bytes.NewReader(raw))
				if err != nil {
					return nil, nil, fmt.Errorf("process_worksheet: %w", err)
				}
				pixels, width, height := ingest.ToRGBA(img)

				maxColors := input.MaxColors
				if maxColors == 0 {
					if suggested, suggestErr := analysis.SuggestMaxColors(img); suggestErr == nil {
						maxColors = suggested
					} else {
						maxColors = cfg.MaxColors
					}
				}
				opts := worksheet.Options{MaxColors: maxColors, MinRegionSize: cfg.MinRegionSize}

				processed, err := worksheet.Process(ctx, pixels, width, height, opts)
				if err != nil {
					return nil, nil, fmt.Errorf("process_worksheet: %w", err)
				}

				session, err := persist.Save(processed, img, input.ArtistName, 0, nil, "classic", persist.ToolConfig{})
				if err != nil {
					return nil, nil, fmt.Errorf("process_worksheet: save session: %w", err)
				}

				sessionJSON, err := persist.ToJSON(session)
				if err != nil {
					return nil, nil, fmt.Errorf("process_worksheet: encode session: %w", err)
				}

				return nil, &ProcessWorksheetOutput{
					SourceWidth:  width,
					SourceHeight: height,
					PaletteSize:  len(processed.Palette),
					RegionCount:  len(processed.Regions),
					SessionJSON:  string(sessionJSON),
				}, nil
			}))
}

// loadImageBytes resolves a tool input's image source: an on-disk path or
// inline base64, exactly one of which must be set.
func loadImageBytes(sourcePath, imageBase64 string) ([]byte, error) {
	switch {
	case sourcePath != "" && imageBase64 != "":
		return nil, fmt.Errorf("specify only one of source_path or image_base64")
	case sourcePath != "":
		data, err := os.ReadFile(sourcePath)
		if err != nil {
			return nil, fmt.Errorf("read source_path: %w", err)
		}
		return data, nil
	case imageBase64 != "":
		data, err := base64.StdEncoding.DecodeString(imageBase64)
		if err != nil {
			return nil, fmt.Errorf("decode image_base64: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("one of source_path or image_base64 is required")
	}
}
