package raster

import (
	"context"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-transform-mcp/internal/geom"
)

// RGBA is the channel set of every image-backed source.
var RGBA = []string{"R", "G", "B", "A"}

// MemorySource is a Source backed by a decoded image held in memory. Channels
// are the non-premultiplied R, G, B and A components scaled to [0, 1].
type MemorySource struct {
	img      *image.NRGBA
	origin   image.Point
	format   geom.Format
	tileSize int
	content  Fingerprint
}

// FromImage wraps img as a Source whose display and data windows are both
// img.Bounds().
func FromImage(img image.Image, tileSize int) *MemorySource {
	return FromImageAt(img, img.Bounds().Min, tileSize)
}

// FromImageAt wraps img as a Source with its top-left pixel placed at origin.
func FromImageAt(img image.Image, origin image.Point, tileSize int) *MemorySource {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	nrgba := imaging.Clone(img)
	bounds := nrgba.Bounds().Add(origin)

	h := NewHasher()
	h.Rect(bounds)
	h.Bytes(nrgba.Pix)

	return &MemorySource{
		img:      nrgba,
		origin:   origin,
		format:   geom.NewFormat(bounds),
		tileSize: tileSize,
		content:  h.Sum(),
	}
}

// Image returns the backing pixels. Callers must not modify them.
func (m *MemorySource) Image() *image.NRGBA {
	return m.img
}

func (m *MemorySource) TileSize() int {
	return m.tileSize
}

func (m *MemorySource) Format(ctx context.Context) (geom.Format, error) {
	return m.format, nil
}

func (m *MemorySource) FormatHash(ctx context.Context) (Fingerprint, error) {
	h := NewHasher()
	h.Format(m.format)
	return h.Sum(), nil
}

func (m *MemorySource) DataWindow(ctx context.Context) (image.Rectangle, error) {
	return m.format.DisplayWindow, nil
}

func (m *MemorySource) DataWindowHash(ctx context.Context) (Fingerprint, error) {
	h := NewHasher()
	h.Rect(m.format.DisplayWindow)
	return h.Sum(), nil
}

func (m *MemorySource) ChannelNames(ctx context.Context) ([]string, error) {
	return RGBA, nil
}

func (m *MemorySource) ChannelNamesHash(ctx context.Context) (Fingerprint, error) {
	h := NewHasher()
	for _, name := range RGBA {
		h.String(name)
	}
	return h.Sum(), nil
}

func (m *MemorySource) ChannelData(ctx context.Context, channel string, tileOrigin image.Point) (*Tile, error) {
	if err := CheckTile(ctx, m, channel, tileOrigin); err != nil {
		return nil, err
	}
	c := channelIndex(channel)
	tile := NewTile(tileOrigin, m.tileSize)
	region := tile.Bounds().Intersect(m.format.DisplayWindow)
	for y := region.Min.Y; y < region.Max.Y; y++ {
		row := m.img.PixOffset(region.Min.X-m.origin.X, y-m.origin.Y)
		out := (region.Min.X - tileOrigin.X) + (y-tileOrigin.Y)*m.tileSize
		for x := region.Min.X; x < region.Max.X; x++ {
			tile.Data[out] = float32(m.img.Pix[row+c]) / 255
			row += 4
			out++
		}
	}
	return tile, nil
}

func (m *MemorySource) ChannelDataHash(ctx context.Context, channel string, tileOrigin image.Point) (Fingerprint, error) {
	h := NewHasher()
	h.Fingerprint(m.content)
	h.String(channel)
	h.Point(tileOrigin)
	h.Int(m.tileSize)
	return h.Sum(), nil
}

func channelIndex(name string) int {
	for i, n := range RGBA {
		if n == name {
			return i
		}
	}
	return -1
}
