package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/ironsheep/image-transform-mcp/internal/filter"
	"github.com/ironsheep/image-transform-mcp/internal/geom"
	"github.com/ironsheep/image-transform-mcp/internal/imaging"
	"github.com/ironsheep/image-transform-mcp/internal/transform"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_transform").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		if s.cfg.Debug() {
			log.Printf("Tool %s failed: %v", params.Name, err)
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Transform Operations
	case "image_transform":
		return s.handleImageTransform(ctx, args)
	case "image_transform_bounds":
		return s.handleImageTransformBounds(ctx, args)
	case "image_sample":
		return s.handleImageSample(ctx, args)
	case "image_filters":
		return s.handleImageFilters()

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Transform Handlers ===

// transformArgs are the arguments shared by the transform tools. Omitted
// vectors take their identity values.
type transformArgs struct {
	Path      string    `json:"path"`
	Scale     *geom.Vec `json:"scale"`
	Rotate    float64   `json:"rotate"`
	Translate *geom.Vec `json:"translate"`
	Pivot     *geom.Vec `json:"pivot"`
	Filter    string    `json:"filter"`
}

func (a transformArgs) request(workers int) imaging.TransformRequest {
	p := transform.DefaultParams()
	if a.Scale != nil {
		p.Scale = *a.Scale
	}
	p.Rotate = a.Rotate
	if a.Translate != nil {
		p.Translate = *a.Translate
	}
	if a.Pivot != nil {
		p.Pivot = *a.Pivot
	}
	return imaging.TransformRequest{Params: p, Filter: a.Filter, Workers: workers}
}

type imageTransformArgs struct {
	transformArgs
	OutputPath string `json:"output_path"`
}

func (s *Server) handleImageTransform(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageTransformArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	src, err := s.cache.Source(a.Path, s.cfg.TileSize)
	if err != nil {
		return nil, err
	}
	result, err := imaging.TransformImage(ctx, src, s.store, a.request(s.cfg.Workers), a.OutputPath)
	if err != nil {
		return nil, err
	}
	if s.cfg.Debug() {
		stats := s.store.Stats()
		log.Printf("Transformed %s: data window %+v, cache hits %d misses %d", a.Path, result.DataWindow, stats.Hits, stats.Misses)
	}
	return result, nil
}

func (s *Server) handleImageTransformBounds(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a transformArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	src, err := s.cache.Source(a.Path, s.cfg.TileSize)
	if err != nil {
		return nil, err
	}
	return imaging.TransformBounds(ctx, src, a.request(s.cfg.Workers))
}

type imageSampleArgs struct {
	transformArgs
	SampleFilter string                `json:"sample_filter"`
	Points       []imaging.SamplePoint `json:"points"`
}

func (s *Server) handleImageSample(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageSampleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Points) == 0 {
		return nil, fmt.Errorf("at least one point is required")
	}
	src, err := s.cache.Source(a.Path, s.cfg.TileSize)
	if err != nil {
		return nil, err
	}
	return imaging.SampleTransformed(ctx, src, s.store, a.request(s.cfg.Workers), a.SampleFilter, a.Points)
}

// FilterInfo describes one registered reconstruction filter.
type FilterInfo struct {
	Name    string  `json:"name"`
	Support float64 `json:"support"`
	Radius  int     `json:"radius"`
	Default bool    `json:"default,omitempty"`
}

func (s *Server) handleImageFilters() (interface{}, error) {
	names := filter.Names()
	filters := make([]FilterInfo, 0, len(names))
	for _, name := range names {
		f, err := filter.Create(name)
		if err != nil {
			return nil, err
		}
		filters = append(filters, FilterInfo{
			Name:    f.Name(),
			Support: f.Support(),
			Radius:  f.Radius(),
			Default: f.Name() == filter.Default,
		})
	}
	return map[string]interface{}{"filters": filters}, nil
}
