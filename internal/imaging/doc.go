// Package imaging connects image files to the transform engine for the MCP
// server.
//
// It decodes images from disk into an ImageCache, exposes them as tiled
// raster sources, and turns transform requests into JSON-ready results:
// rendered images as base64 PNG, bounds and fingerprints without pixel work,
// and filtered samples at real-valued positions.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward. Regions are reported as
// Box values with (X1,Y1) inclusive and (X2,Y2) exclusive. Pixel (i, j)
// covers [i, i+1) x [j, j+1) and has its center at (i+0.5, j+0.5).
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Transform helpers build a fresh
// transform per call and share only the read-only sources and the optional
// cache.Store.
//
// # Error Handling
//
// Errors from the engine are wrapped with context and keep their sentinels,
// so callers can test for transform.ErrNonInvertible, filter.ErrUnknownFilter
// and the like with errors.Is.
package imaging
