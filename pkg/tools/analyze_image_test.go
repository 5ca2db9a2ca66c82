package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeImage_ViaMCP(t *testing.T) {
	session := createProcessTestSession(t)
	defer session.Close()

	imgB64 := testPNGBase64(t, 64, 64)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "analyze_image",
		Arguments: map[string]any{
			"image_base64":      imgB64,
			"brightness_levels": 4,
			"edge_threshold":    30,
		},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	var output AnalyzeImageOutput
	require.NoError(t, json.Unmarshal([]byte(result.Content[0].(*mcp.TextContent).Text), &output))

	assert.NotNil(t, output.Brightness)
	assert.NotNil(t, output.Edges)
	assert.NotEmpty(t, output.Brightness.Grid)
	assert.True(t, output.SuggestedMaxColors >= 2 && output.SuggestedMaxColors <= 128)
}

func TestAnalyzeImage_RequiresSource(t *testing.T) {
	session := createProcessTestSession(t)
	defer session.Close()

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "analyze_image",
		Arguments: map[string]any{},
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}
