package transform

import (
	"context"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/ironsheep/image-transform-mcp/internal/geom"
	"github.com/ironsheep/image-transform-mcp/internal/raster"
)

// createInMemoryImage creates a uniformly colored test image
func createInMemoryImage(width, height int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createGradientImage creates an image whose red channel encodes x and green encodes y
func createGradientImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 0, A: 255})
		}
	}
	return img
}

// pixelSource is a single channel "Y" source backed by a mutable pixel map.
// Pixels inside the data window default to base. It records which tiles
// were read.
type pixelSource struct {
	base       float32
	dataWindow image.Rectangle
	tileSize   int

	mu     sync.Mutex
	pixels map[image.Point]float32
	reads  map[image.Point]int
}

func newPixelSource(base float32, dataWindow image.Rectangle, tileSize int) *pixelSource {
	return &pixelSource{
		base:       base,
		dataWindow: dataWindow,
		tileSize:   tileSize,
		pixels:     map[image.Point]float32{},
		reads:      map[image.Point]int{},
	}
}

func (s *pixelSource) set(x, y int, v float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pixels[image.Pt(x, y)] = v
}

func (s *pixelSource) value(p image.Point) float32 {
	if !p.In(s.dataWindow) {
		return 0
	}
	if v, ok := s.pixels[p]; ok {
		return v
	}
	return s.base
}

func (s *pixelSource) readCount(origin image.Point) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads[origin]
}

func (s *pixelSource) TileSize() int { return s.tileSize }

func (s *pixelSource) Format(ctx context.Context) (geom.Format, error) {
	return geom.NewFormat(s.dataWindow), nil
}

func (s *pixelSource) FormatHash(ctx context.Context) (raster.Fingerprint, error) {
	h := raster.NewHasher()
	h.Format(geom.NewFormat(s.dataWindow))
	return h.Sum(), nil
}

func (s *pixelSource) DataWindow(ctx context.Context) (image.Rectangle, error) {
	return s.dataWindow, nil
}

func (s *pixelSource) DataWindowHash(ctx context.Context) (raster.Fingerprint, error) {
	h := raster.NewHasher()
	h.Rect(s.dataWindow)
	return h.Sum(), nil
}

func (s *pixelSource) ChannelNames(ctx context.Context) ([]string, error) {
	return []string{"Y"}, nil
}

func (s *pixelSource) ChannelNamesHash(ctx context.Context) (raster.Fingerprint, error) {
	h := raster.NewHasher()
	h.String("Y")
	return h.Sum(), nil
}

func (s *pixelSource) ChannelData(ctx context.Context, channel string, origin image.Point) (*raster.Tile, error) {
	if err := raster.CheckTile(ctx, s, channel, origin); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads[origin]++
	tile := raster.NewTile(origin, s.tileSize)
	for y := 0; y < s.tileSize; y++ {
		for x := 0; x < s.tileSize; x++ {
			tile.Data[x+y*s.tileSize] = s.value(image.Pt(origin.X+x, origin.Y+y))
		}
	}
	return tile, nil
}

func (s *pixelSource) ChannelDataHash(ctx context.Context, channel string, origin image.Point) (raster.Fingerprint, error) {
	if err := raster.CheckTile(ctx, s, channel, origin); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	h := raster.NewHasher()
	h.String(channel)
	h.Point(origin)
	for y := 0; y < s.tileSize; y++ {
		for x := 0; x < s.tileSize; x++ {
			h.Float(float64(s.value(image.Pt(origin.X+x, origin.Y+y))))
		}
	}
	return h.Sum(), nil
}

func nearlyEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
