package cache

import (
	"context"
	"image"

	"github.com/ironsheep/image-transform-mcp/internal/geom"
	"github.com/ironsheep/image-transform-mcp/internal/raster"
)

// Source is a raster.Source whose outputs are served from a Store when their
// fingerprints have been seen before. Tiles it returns are shared and must
// not be modified.
type Source struct {
	store *Store
	src   raster.Source
}

var _ raster.Source = (*Source)(nil)

// Unwrap returns the wrapped source.
func (c *Source) Unwrap() raster.Source {
	return c.src
}

func (c *Source) TileSize() int {
	return c.src.TileSize()
}

func (c *Source) Format(ctx context.Context) (geom.Format, error) {
	key, err := c.src.FormatHash(ctx)
	if err != nil {
		return geom.Format{}, err
	}
	return memo(ctx, c.store, c.store.formats, raster.KindFormat, key, c.src.Format)
}

func (c *Source) FormatHash(ctx context.Context) (raster.Fingerprint, error) {
	return c.src.FormatHash(ctx)
}

func (c *Source) DataWindow(ctx context.Context) (image.Rectangle, error) {
	key, err := c.src.DataWindowHash(ctx)
	if err != nil {
		return image.Rectangle{}, err
	}
	return memo(ctx, c.store, c.store.windows, raster.KindDataWindow, key, c.src.DataWindow)
}

func (c *Source) DataWindowHash(ctx context.Context) (raster.Fingerprint, error) {
	return c.src.DataWindowHash(ctx)
}

func (c *Source) ChannelNames(ctx context.Context) ([]string, error) {
	return c.src.ChannelNames(ctx)
}

func (c *Source) ChannelNamesHash(ctx context.Context) (raster.Fingerprint, error) {
	return c.src.ChannelNamesHash(ctx)
}

func (c *Source) ChannelData(ctx context.Context, channel string, tileOrigin image.Point) (*raster.Tile, error) {
	if err := raster.CheckTile(ctx, c.src, channel, tileOrigin); err != nil {
		return nil, err
	}
	key, err := c.src.ChannelDataHash(ctx, channel, tileOrigin)
	if err != nil {
		return nil, err
	}
	return memo(ctx, c.store, c.store.tiles, raster.KindChannelData, key, func(ctx context.Context) (*raster.Tile, error) {
		return c.src.ChannelData(ctx, channel, tileOrigin)
	})
}

func (c *Source) ChannelDataHash(ctx context.Context, channel string, tileOrigin image.Point) (raster.Fingerprint, error) {
	return c.src.ChannelDataHash(ctx, channel, tileOrigin)
}
