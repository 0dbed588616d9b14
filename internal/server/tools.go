package server

import (
	"maps"

	"github.com/ironsheep/image-transform-mcp/internal/filter"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func vecSchema(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": description,
		"properties": map[string]interface{}{
			"x": map[string]interface{}{"type": "number"},
			"y": map[string]interface{}{"type": "number"},
		},
	}
}

// transformProperties are the arguments shared by every transform tool.
func transformProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the image file",
		},
		"scale": vecSchema("Scale factors about the pivot. Default {x:1, y:1}; negative values mirror"),
		"rotate": map[string]interface{}{
			"type":        "number",
			"description": "Rotation about the pivot in degrees. Default 0",
			"default":     0,
		},
		"translate": vecSchema("Translation in pixels applied after scale and rotation. Default {x:0, y:0}"),
		"pivot":     vecSchema("Center of scale and rotation in pixels. Default {x:0, y:0}"),
		"filter": map[string]interface{}{
			"type":        "string",
			"description": "Reconstruction filter. Default " + filter.Default,
			"enum":        filter.Names(),
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	transformProps := transformProperties()

	imageTransformProps := maps.Clone(transformProps)
	imageTransformProps["output_path"] = map[string]interface{}{
		"type":        "string",
		"description": "Optional path to also save the result (.png, .jpg, .jpeg or .bmp)",
	}

	sampleProps := maps.Clone(transformProps)
	sampleProps["points"] = map[string]interface{}{
		"type":        "array",
		"description": "Positions in the transformed image. Pixel (i, j) has its center at (i+0.5, j+0.5)",
		"items": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"x":     map[string]interface{}{"type": "number"},
				"y":     map[string]interface{}{"type": "number"},
				"label": map[string]interface{}{"type": "string"},
			},
			"required": []string{"x", "y"},
		},
	}
	sampleProps["sample_filter"] = map[string]interface{}{
		"type":        "string",
		"description": "Filter used to read the transformed image at each point. Default nearest",
		"enum":        filter.Names(),
	}

	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and channels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Transform Operations
		{
			Name:        "image_transform",
			Description: "Scale, rotate and translate an image about a pivot and return it as base64-encoded PNG over the original canvas, along with its data window, matrix and fingerprints.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": imageTransformProps,
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_transform_bounds",
			Description: "Report the format, scaled format, data window, matrix and fingerprints of a transform without computing any pixels.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": transformProps,
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_sample",
			Description: "Sample every channel of a transformed image at real-valued positions.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": sampleProps,
				"required":   []string{"path", "points"},
			},
		},
		{
			Name:        "image_filters",
			Description: "List the reconstruction filters and their support radii.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
