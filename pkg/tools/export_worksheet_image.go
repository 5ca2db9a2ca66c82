package tools

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"

	"github.com/deepteams/webp"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/willibrandon/mtlog/core"

	"github.com/willibrandon/paintnumbers/pkg/config"
	"github.com/willibrandon/paintnumbers/pkg/persist"
	"github.com/willibrandon/paintnumbers/pkg/worksheet"
)

// ExportWorksheetImageInput defines the input parameters for the
// export_worksheet_image tool.
type ExportWorksheetImageInput struct {
	SessionJSON   string `json:"session_json" jsonschema:"A saved session document, as returned by process_worksheet or load_session"`
	FilledRegions []int  `json:"filled_regions,omitempty" jsonschema:"Region IDs to render with their palette color instead of white"`
}

// ExportWorksheetImageOutput defines the output for the
// export_worksheet_image tool.
type ExportWorksheetImageOutput struct {
	ImageBase64 string `json:"image_base64" jsonschema:"Lossless WebP encoding of the rendered worksheet, base64"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

// RegisterExportTools registers the export_worksheet_image tool with the MCP server.
func RegisterExportTools(server *mcp.Server, cfg *config.Config, logger core.Logger) {
	mcp.AddTool(
		server,
		&mcp.Tool{
			Name:        "export_worksheet_image",
			Description: "Render a saved worksheet session to an image: unfilled regions drawn white, regions listed in filled_regions painted with their palette color, every region outlined in black. Returns a lossless WebP encoding.",
		},
		maybeWrapWithTiming("export_worksheet_image", logger, cfg.EnableTiming,
			func(ctx context.Context, req *mcp.CallToolRequest, input ExportWorksheetImageInput) (*mcp.CallToolResult, *ExportWorksheetImageOutput, error) {
				session, err := persist.FromJSON([]byte(input.SessionJSON))
				if err != nil {
					return nil, nil, fmt.Errorf("export_worksheet_image: %w", err)
				}

				processed, err := persist.Load(session)
				if err != nil {
					return nil, nil, fmt.Errorf("export_worksheet_image: %w", err)
				}

				filled := make(map[int]bool, len(input.FilledRegions))
				for _, id := range input.FilledRegions {
					filled[id] = true
				}

				rendered := worksheet.Render(processed, filled)

				var buf bytes.Buffer
				if err := webp.Encode(&buf, rendered, &webp.EncoderOptions{Lossless: true, Quality: 75}); err != nil {
					return nil, nil, fmt.Errorf("export_worksheet_image: encode webp: %w", err)
				}

				bounds := rendered.Bounds()
				return nil, &ExportWorksheetImageOutput{
					ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
					Width:       bounds.Dx(),
					Height:      bounds.Dy(),
				}, nil
			}))
}
