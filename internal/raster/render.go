package raster

import (
	"context"
	"image"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"
)

// ToImage renders the display window of src into an NRGBA image, computing
// tiles in parallel on up to workers goroutines (GOMAXPROCS when workers is
// not positive).
//
// Channels R, G, B and A map to the matching components, clamped to [0, 1].
// A missing color channel renders as 0 and a missing A as fully opaque.
// Pixels outside the data window are left transparent black.
func ToImage(ctx context.Context, src Source, workers int) (*image.NRGBA, error) {
	format, err := src.Format(ctx)
	if err != nil {
		return nil, err
	}
	dataWindow, err := src.DataWindow(ctx)
	if err != nil {
		return nil, err
	}
	names, err := src.ChannelNames(ctx)
	if err != nil {
		return nil, err
	}

	out := image.NewNRGBA(format.DisplayWindow)
	region := format.DisplayWindow.Intersect(dataWindow)
	if region.Empty() {
		return out, nil
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, origin := range TileOrigins(region, src.TileSize()) {
		origin := origin
		g.Go(func() error {
			return fillTile(ctx, src, names, out, region, origin)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// fillTile writes one tile's worth of pixels. Goroutines write disjoint pixels
// of out, so no locking is needed.
func fillTile(ctx context.Context, src Source, names []string, out *image.NRGBA, region image.Rectangle, origin image.Point) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	area := TileBounds(origin, src.TileSize()).Intersect(region)
	for c, name := range RGBA {
		if !slices.Contains(names, name) {
			if name == "A" {
				fillOpaque(out, area)
			}
			continue
		}
		tile, err := src.ChannelData(ctx, name, origin)
		if err != nil {
			return err
		}
		for y := area.Min.Y; y < area.Max.Y; y++ {
			i := out.PixOffset(area.Min.X, y) + c
			for x := area.Min.X; x < area.Max.X; x++ {
				out.Pix[i] = ToByte(tile.At(x, y))
				i += 4
			}
		}
	}
	return nil
}

func fillOpaque(out *image.NRGBA, area image.Rectangle) {
	for y := area.Min.Y; y < area.Max.Y; y++ {
		i := out.PixOffset(area.Min.X, y) + 3
		for x := area.Min.X; x < area.Max.X; x++ {
			out.Pix[i] = 0xff
			i += 4
		}
	}
}

// ToByte converts a channel value to 8 bits, clamping to [0, 1].
func ToByte(v float32) uint8 {
	switch {
	case v != v || v <= 0:
		return 0
	case v >= 1:
		return 0xff
	default:
		return uint8(v*255 + 0.5)
	}
}
