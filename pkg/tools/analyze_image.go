package tools

import (
	"bytes"
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/willibrandon/mtlog/core"

	"github.com/willibrandon/paintnumbers/pkg/analysis"
	"github.com/willibrandon/paintnumbers/pkg/config"
	"github.com/willibrandon/paintnumbers/pkg/ingest"
)

// AnalyzeImageInput defines the input parameters for the analyze_image tool.
type AnalyzeImageInput struct {
	SourcePath       string `json:"source_path,omitempty" jsonschema:"Path to source image file; mutually exclusive with image_base64"`
	ImageBase64      string `json:"image_base64,omitempty" jsonschema:"Inline image bytes, base64-encoded; mutually exclusive with source_path"`
	BrightnessLevels int    `json:"brightness_levels,omitempty" jsonschema:"Number of brightness buckets, 2-256 (default 5)"`
	EdgeThreshold    int    `json:"edge_threshold,omitempty" jsonschema:"Sobel edge threshold, 0-255 (default 40)"`
}

// AnalyzeImageOutput defines the output for the analyze_image tool.
type AnalyzeImageOutput struct {
	Brightness         *analysis.BrightnessMap `json:"brightness"`
	Edges              *analysis.EdgeMap       `json:"edges"`
	SuggestedMaxColors int                     `json:"suggested_max_colors" jsonschema:"Edge-density-driven palette size estimate; the same value process_worksheet defaults to when max_colors is omitted"`
}

// RegisterAnalysisTools registers the analyze_image tool with the MCP server.
//
// This is advisory pre-processing: a host UI can use the brightness map to
// lay out a UI guide, and suggested_max_colors to pre-fill a max_colors
// field, before calling process_worksheet.
func RegisterAnalysisTools(server *mcp.Server, cfg *config.Config, logger core.Logger) {
	mcp.AddTool(
		server,
		&mcp.Tool{
			Name:        "analyze_image",
			Description: "Produce advisory pre-processing hints for an image: a quantized brightness map, a Sobel edge map, and an edge-density-driven palette size estimate. Useful for laying out a UI guide or pre-filling max_colors before calling process_worksheet.",
		},
		maybeWrapWithTiming("analyze_image", logger, cfg.EnableTiming,
			func(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeImageInput) (*mcp.CallToolResult, *AnalyzeImageOutput, error) {
				raw, err := loadImageBytes(input.SourcePath, input.ImageBase64)
				if err != nil {
					return nil, nil, err
				}

				img, _, err := ingest.Decode(bytes.NewReader(raw))
				if err != nil {
					return nil, nil, fmt.Errorf("analyze_image: %w", err)
				}

				levels := input.BrightnessLevels
				if levels == 0 {
					levels = 5
				}
				threshold := input.EdgeThreshold
				if threshold == 0 {
					threshold = 40
				}

				bounds := img.Bounds()
				targetW, targetH := bounds.Dx()/4, bounds.Dy()/4
				if targetW < 1 {
					targetW = 1
				}
				if targetH < 1 {
					targetH = 1
				}
				brightness, err := analysis.GenerateBrightnessMap(img, targetW, targetH, levels)
				if err != nil {
					return nil, nil, fmt.Errorf("analyze_image: brightness map: %w", err)
				}

				edges, err := analysis.DetectEdges(img, threshold, 0, 0)
				if err != nil {
					return nil, nil, fmt.Errorf("analyze_image: edge detection: %w", err)
				}

				suggested, err := analysis.SuggestMaxColors(img)
				if err != nil {
					return nil, nil, fmt.Errorf("analyze_image: suggest max colors: %w", err)
				}

				return nil, &AnalyzeImageOutput{
					Brightness:         brightness,
					Edges:              edges,
					SuggestedMaxColors: suggested,
				}, nil
			}))
}
