// Package server implements the MCP (Model Context Protocol) server for affine
// image transforms.
//
// This package provides a JSON-RPC 2.0 server that exposes the transform
// engine through the MCP protocol, so MCP-compatible clients can scale, rotate
// and translate images and inspect the exact geometry of the result.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Transform Operations:
//   - image_transform: Render a transformed image as base64 PNG
//   - image_transform_bounds: Format, data window, matrix and fingerprints only
//   - image_sample: Sample a transformed image at real-valued positions
//   - image_filters: List reconstruction filters
//
// Every transform tool accepts scale, rotate (degrees), translate, pivot and
// filter. Omitted values leave the image unchanged.
//
// # Caching
//
// Decoded images are cached by path for the lifetime of the process. Computed
// tiles and metadata are cached in a content-addressed store shared by every
// request, so repeating a transform, or sampling one that was just rendered,
// reuses the tiles already computed. Config.CacheTiles bounds the store.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv, err := server.New(server.ConfigFromEnv(os.Getenv))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
