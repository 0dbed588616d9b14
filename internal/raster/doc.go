// Package raster provides the tiled, per-channel image model the transform
// engine reads from and produces.
//
// An image is exposed through the Source interface: a format, a data window,
// a set of channel names and, per channel, fixed-size square tiles of float32
// samples addressed by their origin. Every output also has a Fingerprint, a
// content hash computed from metadata and upstream fingerprints only, which
// callers use as a memoization key.
//
// # Tiles
//
// Tiles are TileSize x TileSize squares whose origins are multiples of
// TileSize. Samples are stored row-major, so the sample for absolute pixel
// (x, y) lives at Data[(x-Origin.X) + (y-Origin.Y)*Size]. Pixels outside a
// source's data window read as zero.
//
// # Thread Safety
//
// Sources are safe for concurrent use. A Sampler is a transient per-call
// object and must not be shared between goroutines.
package raster
