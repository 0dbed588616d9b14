package raster

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/ironsheep/image-transform-mcp/internal/geom"
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

// constSource is a single channel source with a constant value inside its
// data window. It counts tile reads.
type constSource struct {
	value      float32
	dataWindow image.Rectangle
	tileSize   int

	mu    sync.Mutex
	reads map[image.Point]int
}

func newConstSource(value float32, dataWindow image.Rectangle, tileSize int) *constSource {
	return &constSource{value: value, dataWindow: dataWindow, tileSize: tileSize, reads: map[image.Point]int{}}
}

func (s *constSource) TileSize() int { return s.tileSize }

func (s *constSource) Format(ctx context.Context) (geom.Format, error) {
	return geom.NewFormat(s.dataWindow), nil
}

func (s *constSource) FormatHash(ctx context.Context) (Fingerprint, error) {
	h := NewHasher()
	h.Rect(s.dataWindow)
	return h.Sum(), nil
}

func (s *constSource) DataWindow(ctx context.Context) (image.Rectangle, error) {
	return s.dataWindow, nil
}

func (s *constSource) DataWindowHash(ctx context.Context) (Fingerprint, error) {
	return s.FormatHash(ctx)
}

func (s *constSource) ChannelNames(ctx context.Context) ([]string, error) {
	return []string{"Y"}, nil
}

func (s *constSource) ChannelNamesHash(ctx context.Context) (Fingerprint, error) {
	h := NewHasher()
	h.String("Y")
	return h.Sum(), nil
}

func (s *constSource) ChannelData(ctx context.Context, channel string, origin image.Point) (*Tile, error) {
	if err := CheckTile(ctx, s, channel, origin); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.reads[origin]++
	s.mu.Unlock()
	tile := NewTile(origin, s.tileSize)
	for y := origin.Y; y < origin.Y+s.tileSize; y++ {
		for x := origin.X; x < origin.X+s.tileSize; x++ {
			if image.Pt(x, y).In(s.dataWindow) {
				tile.Data[(x-origin.X)+(y-origin.Y)*s.tileSize] = s.value
			}
		}
	}
	return tile, nil
}

func (s *constSource) ChannelDataHash(ctx context.Context, channel string, origin image.Point) (Fingerprint, error) {
	h := NewHasher()
	h.String(fmt.Sprint(s.value))
	h.Rect(s.dataWindow)
	h.String(channel)
	h.Point(origin)
	return h.Sum(), nil
}
