package raster

import (
	"context"
	"errors"
	"fmt"
	"image"
	"slices"

	"github.com/ironsheep/image-transform-mcp/internal/geom"
)

var (
	// ErrUnknownChannel is returned when a channel is requested that the
	// source does not have.
	ErrUnknownChannel = errors.New("unknown channel")

	// ErrUnalignedTile is returned when a tile origin is not on the tile grid.
	ErrUnalignedTile = errors.New("tile origin not aligned to tile grid")
)

// Source is a tiled image. Every output comes with a fingerprint that is
// computed without touching pixel data.
type Source interface {
	TileSize() int

	Format(ctx context.Context) (geom.Format, error)
	FormatHash(ctx context.Context) (Fingerprint, error)

	DataWindow(ctx context.Context) (image.Rectangle, error)
	DataWindowHash(ctx context.Context) (Fingerprint, error)

	ChannelNames(ctx context.Context) ([]string, error)
	ChannelNamesHash(ctx context.Context) (Fingerprint, error)

	ChannelData(ctx context.Context, channel string, tileOrigin image.Point) (*Tile, error)
	ChannelDataHash(ctx context.Context, channel string, tileOrigin image.Point) (Fingerprint, error)
}

// Kind names one of a Source's outputs.
type Kind int

const (
	KindFormat Kind = iota
	KindDataWindow
	KindChannelNames
	KindChannelData
)

func (k Kind) String() string {
	switch k {
	case KindFormat:
		return "format"
	case KindDataWindow:
		return "dataWindow"
	case KindChannelNames:
		return "channelNames"
	case KindChannelData:
		return "channelData"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Hash returns the fingerprint of one output of src. channel and tileOrigin are
// only consulted for KindChannelData.
func Hash(ctx context.Context, src Source, kind Kind, channel string, tileOrigin image.Point) (Fingerprint, error) {
	switch kind {
	case KindFormat:
		return src.FormatHash(ctx)
	case KindDataWindow:
		return src.DataWindowHash(ctx)
	case KindChannelNames:
		return src.ChannelNamesHash(ctx)
	case KindChannelData:
		return src.ChannelDataHash(ctx, channel, tileOrigin)
	default:
		return 0, fmt.Errorf("unknown output kind %d", int(kind))
	}
}

// CheckTile validates a channel data request against src, returning
// ErrUnalignedTile or ErrUnknownChannel.
func CheckTile(ctx context.Context, src Source, channel string, tileOrigin image.Point) error {
	if !Aligned(tileOrigin, src.TileSize()) {
		return fmt.Errorf("%w: %v (tile size %d)", ErrUnalignedTile, tileOrigin, src.TileSize())
	}
	names, err := src.ChannelNames(ctx)
	if err != nil {
		return err
	}
	if !slices.Contains(names, channel) {
		return fmt.Errorf("%w: %q (have %v)", ErrUnknownChannel, channel, names)
	}
	return nil
}
