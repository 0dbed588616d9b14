package transform

import (
	"context"
	"fmt"
	"image"

	"github.com/ironsheep/image-transform-mcp/internal/filter"
	"github.com/ironsheep/image-transform-mcp/internal/geom"
	"github.com/ironsheep/image-transform-mcp/internal/raster"
)

// ComputeTile resamples one output tile of channel through m. Each output
// pixel center is mapped back into input space with the inverse of m and the
// input is filtered there with f.
//
// The result depends only on the arguments and the input pixels inside the
// inverse-mapped tile (plus the filter radius); no other tile is read and no
// state is kept between calls.
func ComputeTile(ctx context.Context, in raster.Source, channel string, tileOrigin image.Point, m geom.Matrix, f filter.Filter) (*raster.Tile, error) {
	if err := raster.CheckTile(ctx, in, channel, tileOrigin); err != nil {
		return nil, err
	}
	size := in.TileSize()
	tile := raster.TileBounds(tileOrigin, size)

	inv, err := m.Inverse()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNonInvertible, err)
	}
	sampleBox := TransformBox(inv, tile)

	sampler, err := raster.NewSampler(ctx, in, channel, sampleBox, f)
	if err != nil {
		return nil, err
	}

	out := raster.NewTile(tileOrigin, size)
	for j := 0; j < size; j++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for i := 0; i < size; i++ {
			p := inv.Apply(geom.V(float64(tile.Min.X+i)+0.5, float64(tile.Min.Y+j)+0.5))
			v, err := sampler.Sample(ctx, p.X, p.Y)
			if err != nil {
				return nil, err
			}
			out.Data[i+j*size] = v
		}
	}

	Logger().Debug("tile computed",
		"channel", channel,
		"origin", tileOrigin,
		"sampleBox", sampleBox,
		"filter", f.Name())
	return out, nil
}
