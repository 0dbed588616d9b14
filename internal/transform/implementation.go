package transform

import (
	"context"
	"image"

	"github.com/ironsheep/image-transform-mcp/internal/filter"
	"github.com/ironsheep/image-transform-mcp/internal/geom"
	"github.com/ironsheep/image-transform-mcp/internal/raster"
)

// Implementation resamples an already reformatted input through the adjusted
// matrix. It is a raster.Source; channel names pass straight through.
//
// OutputFormat is the format the input had before it was reformatted. It is
// reported as this source's format and, together with In's format, determines
// how much of the requested scale is still left to apply.
//
// When Params are the identity every output passes through from In.
type Implementation struct {
	In           raster.Source
	Params       Params
	Filter       string
	OutputFormat geom.Format
}

var _ raster.Source = (*Implementation)(nil)

// Enabled reports whether the implementation does any work.
func (t *Implementation) Enabled() bool {
	return t.Params.Enabled()
}

// Matrix returns the adjusted matrix for the current input.
func (t *Implementation) Matrix(ctx context.Context) (geom.Matrix, error) {
	inFormat, err := t.In.Format(ctx)
	if err != nil {
		return geom.Matrix{}, err
	}
	return AdjustedMatrix(t.Params, inFormat, t.OutputFormat)
}

func (t *Implementation) TileSize() int {
	return t.In.TileSize()
}

func (t *Implementation) Format(ctx context.Context) (geom.Format, error) {
	if !t.Enabled() {
		return t.In.Format(ctx)
	}
	return t.OutputFormat, nil
}

func (t *Implementation) FormatHash(ctx context.Context) (raster.Fingerprint, error) {
	if !t.Enabled() {
		return t.In.FormatHash(ctx)
	}
	return HashFormat(t.OutputFormat), nil
}

func (t *Implementation) DataWindow(ctx context.Context) (image.Rectangle, error) {
	if !t.Enabled() {
		return t.In.DataWindow(ctx)
	}
	inWindow, err := t.In.DataWindow(ctx)
	if err != nil {
		return image.Rectangle{}, err
	}
	m, err := t.Matrix(ctx)
	if err != nil {
		return image.Rectangle{}, err
	}
	return TransformBox(m, inWindow), nil
}

func (t *Implementation) DataWindowHash(ctx context.Context) (raster.Fingerprint, error) {
	if !t.Enabled() {
		return t.In.DataWindowHash(ctx)
	}
	inWindow, err := t.In.DataWindowHash(ctx)
	if err != nil {
		return 0, err
	}
	inFormat, err := t.In.FormatHash(ctx)
	if err != nil {
		return 0, err
	}
	return HashDataWindow(inWindow, inFormat, t.OutputFormat, t.Params), nil
}

func (t *Implementation) ChannelNames(ctx context.Context) ([]string, error) {
	return t.In.ChannelNames(ctx)
}

func (t *Implementation) ChannelNamesHash(ctx context.Context) (raster.Fingerprint, error) {
	return t.In.ChannelNamesHash(ctx)
}

func (t *Implementation) ChannelData(ctx context.Context, channel string, tileOrigin image.Point) (*raster.Tile, error) {
	if err := raster.CheckTile(ctx, t, channel, tileOrigin); err != nil {
		return nil, err
	}
	if !t.Enabled() {
		return t.In.ChannelData(ctx, channel, tileOrigin)
	}
	m, f, err := t.setup(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeTile(ctx, t.In, channel, tileOrigin, m, f)
}

func (t *Implementation) ChannelDataHash(ctx context.Context, channel string, tileOrigin image.Point) (raster.Fingerprint, error) {
	if err := raster.CheckTile(ctx, t, channel, tileOrigin); err != nil {
		return 0, err
	}
	if !t.Enabled() {
		return t.In.ChannelDataHash(ctx, channel, tileOrigin)
	}
	m, f, err := t.setup(ctx)
	if err != nil {
		return 0, err
	}
	return HashChannelData(ctx, t.In, channel, tileOrigin, m, f, t.Params)
}

// Hash returns the fingerprint of one output.
func (t *Implementation) Hash(ctx context.Context, kind raster.Kind, channel string, tileOrigin image.Point) (raster.Fingerprint, error) {
	return raster.Hash(ctx, t, kind, channel, tileOrigin)
}

func (t *Implementation) setup(ctx context.Context) (geom.Matrix, filter.Filter, error) {
	f, err := filter.Create(t.Filter)
	if err != nil {
		return geom.Matrix{}, filter.Filter{}, err
	}
	m, err := t.Matrix(ctx)
	if err != nil {
		return geom.Matrix{}, filter.Filter{}, err
	}
	return m, f, nil
}
