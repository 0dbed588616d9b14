package raster

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-transform-mcp/internal/filter"
	"github.com/ironsheep/image-transform-mcp/internal/geom"
)

// Reformatter resizes an image so that its display window matches a target
// format's integer dimensions.
type Reformatter interface {
	Reformat(ctx context.Context, src Source, target geom.Format, f filter.Filter) (Source, error)
}

// ResizeReformatter resizes the source's display window to the target
// dimensions and places it at the target display window, which also becomes
// the data window.
//
// 8-bit images loaded into a MemorySource are resized with imaging.Resize.
// Any other source is resized channel by channel in float32 with separable
// filter weights, so values outside [0, 1] and channels other than R, G, B
// and A survive.
type ResizeReformatter struct {
	// Workers bounds the goroutines used to render the source before
	// resizing. Zero means GOMAXPROCS.
	Workers int
}

// Reformat returns src resized to target. Pixels are only computed on first
// use of the returned source's channel data.
func (r ResizeReformatter) Reformat(ctx context.Context, src Source, target geom.Format, f filter.Filter) (Source, error) {
	if target.Empty() {
		return nil, fmt.Errorf("cannot reformat to empty format %v", target)
	}
	format, err := src.Format(ctx)
	if err != nil {
		return nil, err
	}
	if format.DisplayWindow == target.DisplayWindow {
		return src, nil
	}
	return &resizedSource{
		src:     src,
		target:  target,
		filter:  f,
		workers: r.Workers,
	}, nil
}

type resizedSource struct {
	src     Source
	target  geom.Format
	filter  filter.Filter
	workers int

	mu      sync.Mutex
	mem     *MemorySource
	planes  map[string]*plane
	content *Fingerprint
}

func (s *resizedSource) TileSize() int {
	return s.src.TileSize()
}

func (s *resizedSource) Format(ctx context.Context) (geom.Format, error) {
	return s.target, nil
}

func (s *resizedSource) FormatHash(ctx context.Context) (Fingerprint, error) {
	h := NewHasher()
	h.Format(s.target)
	return h.Sum(), nil
}

func (s *resizedSource) DataWindow(ctx context.Context) (image.Rectangle, error) {
	return s.target.DisplayWindow, nil
}

func (s *resizedSource) DataWindowHash(ctx context.Context) (Fingerprint, error) {
	h := NewHasher()
	h.Rect(s.target.DisplayWindow)
	return h.Sum(), nil
}

func (s *resizedSource) ChannelNames(ctx context.Context) ([]string, error) {
	return s.src.ChannelNames(ctx)
}

func (s *resizedSource) ChannelNamesHash(ctx context.Context) (Fingerprint, error) {
	return s.src.ChannelNamesHash(ctx)
}

func (s *resizedSource) ChannelData(ctx context.Context, channel string, tileOrigin image.Point) (*Tile, error) {
	if err := CheckTile(ctx, s, channel, tileOrigin); err != nil {
		return nil, err
	}
	if m := memorySource(s.src); m != nil {
		mem := s.materialize(m)
		return mem.ChannelData(ctx, channel, tileOrigin)
	}
	p, err := s.resizedPlane(ctx, channel)
	if err != nil {
		return nil, err
	}
	return p.tile(tileOrigin, s.TileSize()), nil
}

func (s *resizedSource) ChannelDataHash(ctx context.Context, channel string, tileOrigin image.Point) (Fingerprint, error) {
	content, err := s.sourceContent(ctx)
	if err != nil {
		return 0, err
	}
	h := NewHasher()
	h.Fingerprint(content)
	h.Format(s.target)
	h.String(s.filter.Name())
	h.String(channel)
	h.Point(tileOrigin)
	return h.Sum(), nil
}

// sourceContent fingerprints everything the resize reads: the source format
// and every tile of every channel inside the display window. Channels are all
// included because resizing weights color by alpha.
func (s *resizedSource) sourceContent(ctx context.Context) (Fingerprint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.content != nil {
		return *s.content, nil
	}

	h := NewHasher()
	format, err := s.src.Format(ctx)
	if err != nil {
		return 0, err
	}
	h.Format(format)
	dataWindow, err := s.src.DataWindow(ctx)
	if err != nil {
		return 0, err
	}
	h.Rect(dataWindow)
	names, err := s.src.ChannelNames(ctx)
	if err != nil {
		return 0, err
	}
	region := format.DisplayWindow.Intersect(dataWindow)
	for _, name := range names {
		h.String(name)
		for _, origin := range TileOrigins(region, s.src.TileSize()) {
			fp, err := s.src.ChannelDataHash(ctx, name, origin)
			if err != nil {
				return 0, err
			}
			h.Fingerprint(fp)
		}
	}
	sum := h.Sum()
	s.content = &sum
	return sum, nil
}

// memorySource returns the MemorySource beneath any wrappers of src, or nil.
func memorySource(src Source) *MemorySource {
	for {
		switch v := src.(type) {
		case *MemorySource:
			return v
		case interface{ Unwrap() Source }:
			src = v.Unwrap()
		default:
			return nil
		}
	}
}

func (s *resizedSource) materialize(m *MemorySource) *MemorySource {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mem == nil {
		resized := imaging.Resize(m.Image(), s.target.Width(), s.target.Height(), s.filter.Resample())
		s.mem = FromImageAt(resized, s.target.DisplayWindow.Min, s.src.TileSize())
	}
	return s.mem
}

func (s *resizedSource) resizedPlane(ctx context.Context, channel string) (*plane, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.planes[channel]; ok {
		return p, nil
	}

	in, err := readPlane(ctx, s.src, channel, s.workers)
	if err != nil {
		return nil, fmt.Errorf("reformat: %w", err)
	}
	p, err := resizePlane(ctx, in, s.target.DisplayWindow, s.filter)
	if err != nil {
		return nil, fmt.Errorf("reformat: %w", err)
	}
	if s.planes == nil {
		s.planes = map[string]*plane{}
	}
	s.planes[channel] = p
	return p, nil
}
