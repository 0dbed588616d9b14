package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/image-transform-mcp/internal/raster"
)

// ImageCache provides thread-safe caching of decoded images and of the tiled
// sources built from them.
//
// Images are keyed by their file path. Sources are keyed by path and tile
// size, since the tile grid is part of a source's identity. Once loaded, an
// image stays cached until Evict or Clear.
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	src, err := cache.Source("/path/to/image.png", 64)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	node := transform.New(src, params, "lanczos", nil)
type ImageCache struct {
	mu      sync.RWMutex
	images  map[string]loadedImage
	sources map[sourceKey]*raster.MemorySource
}

type loadedImage struct {
	img    image.Image
	format string
}

type sourceKey struct {
	path     string
	tileSize int
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images:  make(map[string]loadedImage),
		sources: make(map[sourceKey]*raster.MemorySource),
	}
}

// Load retrieves an image from the cache or decodes it from disk if not
// cached. PNG, JPEG, GIF, BMP, TIFF and WebP files are supported.
//
// The image is cached using the exact path string provided. Different paths to
// the same file result in separate cache entries.
func (c *ImageCache) Load(path string) (image.Image, error) {
	loaded, err := c.load(path)
	if err != nil {
		return nil, err
	}
	return loaded.img, nil
}

func (c *ImageCache) load(path string) (loadedImage, error) {
	c.mu.RLock()
	if loaded, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return loaded, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return loadedImage{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return loadedImage{}, fmt.Errorf("failed to decode image: %w", err)
	}

	loaded := loadedImage{img: img, format: format}
	c.mu.Lock()
	c.images[path] = loaded
	c.mu.Unlock()

	return loaded, nil
}

// Source returns the image at path as a tiled raster source with tile size
// tileSize (raster.DefaultTileSize when not positive). The image's bounds
// become both its display window and its data window.
func (c *ImageCache) Source(path string, tileSize int) (*raster.MemorySource, error) {
	if tileSize <= 0 {
		tileSize = raster.DefaultTileSize
	}
	key := sourceKey{path: path, tileSize: tileSize}

	c.mu.RLock()
	if src, ok := c.sources[key]; ok {
		c.mu.RUnlock()
		return src, nil
	}
	c.mu.RUnlock()

	img, err := c.Load(path)
	if err != nil {
		return nil, err
	}
	src := raster.FromImage(img, tileSize)

	c.mu.Lock()
	if existing, ok := c.sources[key]; ok {
		src = existing
	} else {
		c.sources[key] = src
	}
	c.mu.Unlock()

	return src, nil
}

// Clear removes all images and sources from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]loadedImage)
	c.sources = make(map[sourceKey]*raster.MemorySource)
	c.mu.Unlock()
}

// Evict removes an image and every source built from it. Unknown paths are
// ignored.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	for key := range c.sources {
		if key.path == path {
			delete(c.sources, key)
		}
	}
	c.mu.Unlock()
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the decoder that recognized the file: "png", "jpeg", "gif",
	// "bmp", "tiff" or "webp".
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the image has an alpha (transparency) channel.
	HasAlpha bool `json:"has_alpha"`

	// Channels lists the channels the image exposes to transforms.
	Channels []string `json:"channels"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image into the cache and returns its metadata.
//
// Color depth is determined by the decoded Go image type:
//   - *image.RGBA64, *image.NRGBA64, *image.Gray16 -> "16-bit"
//   - All other types -> "8-bit"
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	loaded, err := cache.load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	hasAlpha := false
	colorDepth := "8-bit"
	switch loaded.img.(type) {
	case *image.RGBA, *image.NRGBA:
		hasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
		colorDepth = "16-bit"
	case *image.Gray16:
		colorDepth = "16-bit"
	}

	bounds := loaded.img.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        loaded.format,
		ColorDepth:    colorDepth,
		HasAlpha:      hasAlpha,
		Channels:      raster.RGBA,
		FileSizeBytes: stat.Size(),
	}, nil
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of an image without additional metadata.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &DimensionsResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
