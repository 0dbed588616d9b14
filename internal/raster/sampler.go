package raster

import (
	"context"
	"image"
	"math"

	"github.com/ironsheep/image-transform-mcp/internal/filter"
)

// Sampler produces filtered point samples of one channel of a Source at
// real-valued coordinates.
//
// The sampler only ever reads pixels inside its readable region: the requested
// sample region grown by the filter radius and clipped to the source's data
// window. Everything outside reads as zero, which is also the value a Source
// reports outside its data window. Input tiles are fetched lazily and kept for
// the lifetime of the sampler.
type Sampler struct {
	src      Source
	channel  string
	filter   filter.Filter
	readable image.Rectangle
	tiles    map[image.Point]*Tile
}

// NewSampler binds a sampler to a channel of src. region is the box that
// sample positions will fall in.
func NewSampler(ctx context.Context, src Source, channel string, region image.Rectangle, f filter.Filter) (*Sampler, error) {
	dataWindow, err := src.DataWindow(ctx)
	if err != nil {
		return nil, err
	}
	r := f.Radius()
	readable := region.Inset(-r).Intersect(dataWindow)
	if region.Empty() {
		readable = image.Rectangle{}
	}
	return &Sampler{
		src:      src,
		channel:  channel,
		filter:   f,
		readable: readable,
		tiles:    make(map[image.Point]*Tile),
	}, nil
}

// Readable returns the pixels the sampler may read from its source.
func (s *Sampler) Readable() image.Rectangle {
	return s.readable
}

// Hash appends the sampler's fingerprint: its channel, readable region and the
// fingerprints of every input tile it may read.
func (s *Sampler) Hash(ctx context.Context, h *Hasher) error {
	h.String(s.channel)
	h.Rect(s.readable)
	for _, origin := range TileOrigins(s.readable, s.src.TileSize()) {
		fp, err := s.src.ChannelDataHash(ctx, s.channel, origin)
		if err != nil {
			return err
		}
		h.Fingerprint(fp)
	}
	return nil
}

// Sample returns the filtered value at (x, y). Pixel (i, j) has its center at
// (i+0.5, j+0.5); kernel weights are normalized so that a constant input
// reconstructs to the same constant.
func (s *Sampler) Sample(ctx context.Context, x, y float64) (float32, error) {
	if s.filter.IsPoint() {
		return s.pixel(ctx, int(math.Floor(x)), int(math.Floor(y)))
	}

	support := s.filter.Support()
	x0 := int(math.Ceil(x - 0.5 - support))
	x1 := int(math.Floor(x - 0.5 + support))
	y0 := int(math.Ceil(y - 0.5 - support))
	y1 := int(math.Floor(y - 0.5 + support))

	var sum, weights float64
	for j := y0; j <= y1; j++ {
		wy := s.filter.Weight(float64(j) + 0.5 - y)
		if wy == 0 {
			continue
		}
		for i := x0; i <= x1; i++ {
			wx := s.filter.Weight(float64(i) + 0.5 - x)
			if wx == 0 {
				continue
			}
			v, err := s.pixel(ctx, i, j)
			if err != nil {
				return 0, err
			}
			w := wx * wy
			sum += w * float64(v)
			weights += w
		}
	}

	if weights == 0 {
		return 0, nil
	}
	return float32(sum / weights), nil
}

func (s *Sampler) pixel(ctx context.Context, x, y int) (float32, error) {
	p := image.Pt(x, y)
	if !p.In(s.readable) {
		return 0, nil
	}
	origin := TileOrigin(p, s.src.TileSize())
	tile, ok := s.tiles[origin]
	if !ok {
		var err error
		tile, err = s.src.ChannelData(ctx, s.channel, origin)
		if err != nil {
			return 0, err
		}
		s.tiles[origin] = tile
	}
	return tile.At(x, y), nil
}
