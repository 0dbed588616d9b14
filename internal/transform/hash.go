package transform

import (
	"context"
	"image"

	"github.com/ironsheep/image-transform-mcp/internal/filter"
	"github.com/ironsheep/image-transform-mcp/internal/geom"
	"github.com/ironsheep/image-transform-mcp/internal/raster"
)

// HashFormat fingerprints the output format, which depends on nothing else.
func HashFormat(outputFormat geom.Format) raster.Fingerprint {
	h := raster.NewHasher()
	h.String("transform.format")
	h.Format(outputFormat)
	return h.Sum()
}

// HashDataWindow fingerprints the transformed data window. The formats feed
// the adjusted matrix, so both are part of the key along with the input data
// window and the parameters.
func HashDataWindow(inDataWindow, inFormat raster.Fingerprint, outputFormat geom.Format, p Params) raster.Fingerprint {
	h := raster.NewHasher()
	h.String("transform.dataWindow")
	h.Fingerprint(inDataWindow)
	h.Fingerprint(inFormat)
	h.Format(outputFormat)
	p.hash(h)
	return h.Sum()
}

// HashChannelData fingerprints one output tile: the sampler over the tile's
// inverse-mapped sample region, the tile origin, the filter, the parameters
// and the matrix derived from them.
//
// The origin is included even though the sample region is derived from it:
// distinct output tiles can share a sample region yet read different parts
// of it.
func HashChannelData(ctx context.Context, in raster.Source, channel string, tileOrigin image.Point, m geom.Matrix, f filter.Filter, p Params) (raster.Fingerprint, error) {
	inv, err := m.Inverse()
	if err != nil {
		return 0, ErrNonInvertible
	}
	sampleBox := TransformBox(inv, raster.TileBounds(tileOrigin, in.TileSize()))
	sampler, err := raster.NewSampler(ctx, in, channel, sampleBox, f)
	if err != nil {
		return 0, err
	}

	h := raster.NewHasher()
	h.String("transform.channelData")
	if err := sampler.Hash(ctx, h); err != nil {
		return 0, err
	}
	h.Point(tileOrigin)
	h.Int(in.TileSize())
	h.String(f.Name())
	p.hash(h)
	h.Matrix(m)
	return h.Sum(), nil
}
