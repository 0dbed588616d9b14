package transform

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/ironsheep/image-transform-mcp/internal/filter"
	"github.com/ironsheep/image-transform-mcp/internal/geom"
	"github.com/ironsheep/image-transform-mcp/internal/raster"
)

// ImageTransform applies Params to an image in two stages: the input is
// reformatted to the integer size RescaleFormat gives for the requested scale,
// then an Implementation resamples the result with the residual transform.
//
// The output keeps the input's format. The reformat target is available as
// ScaledFormat.
//
// An ImageTransform is immutable; changing a parameter means building a new
// one, and the fingerprints of its outputs change accordingly.
type ImageTransform struct {
	in          raster.Source
	params      Params
	filter      string
	reformatter raster.Reformatter

	mu   sync.Mutex
	impl *Implementation
}

var _ raster.Source = (*ImageTransform)(nil)

// New returns a transform of in. An empty filterName selects filter.Default
// and a nil reformatter selects raster.ResizeReformatter.
func New(in raster.Source, params Params, filterName string, reformatter raster.Reformatter) *ImageTransform {
	if reformatter == nil {
		reformatter = raster.ResizeReformatter{}
	}
	return &ImageTransform{
		in:          in,
		params:      params,
		filter:      filterName,
		reformatter: reformatter,
	}
}

// Params returns the transform parameters.
func (t *ImageTransform) Params() Params {
	return t.params
}

// Enabled reports whether the transform does anything. A disabled transform
// passes every output through from its input.
func (t *ImageTransform) Enabled() bool {
	return t.params.Enabled()
}

// ScaledFormat returns the format the input is reformatted to. A resize cannot
// flip an image, so the magnitude of the scale is used and any mirroring is
// left to the residual matrix.
func (t *ImageTransform) ScaledFormat(ctx context.Context) (geom.Format, error) {
	f, err := t.in.Format(ctx)
	if err != nil {
		return geom.Format{}, err
	}
	return t.scaledFormat(f)
}

// scaledFormat rescales inFormat by the canvas scale. The size is checked
// against MaxCanvasPixels in floating point first, so an oversized scale never
// reaches an integer conversion or an allocation.
func (t *ImageTransform) scaledFormat(inFormat geom.Format) (geom.Format, error) {
	if err := t.params.Validate(); err != nil {
		return geom.Format{}, err
	}
	s := t.params.canvasScale()
	w := float64(inFormat.Width()) * s.X
	h := float64(inFormat.Height()) * s.Y
	if !(w <= MaxCanvasPixels && h <= MaxCanvasPixels && w*h <= MaxCanvasPixels) {
		return geom.Format{}, fmt.Errorf("%w: %v scaled by %v", ErrCanvasTooLarge, inFormat, t.params.Scale)
	}
	scaled := RescaleFormat(inFormat, s.X, s.Y)
	if scaled.Width()*scaled.Height() > MaxCanvasPixels {
		return geom.Format{}, fmt.Errorf("%w: %v is over %d pixels", ErrCanvasTooLarge, scaled, MaxCanvasPixels)
	}
	return scaled, nil
}

// ScaledFormatHash fingerprints ScaledFormat: the input format and the scale.
func (t *ImageTransform) ScaledFormatHash(ctx context.Context) (raster.Fingerprint, error) {
	in, err := t.in.FormatHash(ctx)
	if err != nil {
		return 0, err
	}
	h := raster.NewHasher()
	h.String("transform.scaledFormat")
	h.Fingerprint(in)
	h.Vec(t.params.Scale)
	return h.Sum(), nil
}

// Matrix returns the adjusted matrix applied after the reformat. A disabled
// transform reports the identity.
func (t *ImageTransform) Matrix(ctx context.Context) (geom.Matrix, error) {
	if !t.Enabled() {
		return geom.Identity(), nil
	}
	impl, err := t.implementation(ctx)
	if err != nil {
		return geom.Matrix{}, err
	}
	return impl.Matrix(ctx)
}

// source returns what every output is read from: the input itself when the
// transform is disabled, otherwise the reformat + resample pipeline.
func (t *ImageTransform) source(ctx context.Context) (raster.Source, error) {
	if !t.Enabled() {
		return t.in, nil
	}
	return t.implementation(ctx)
}

func (t *ImageTransform) implementation(ctx context.Context) (*Implementation, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.impl != nil {
		return t.impl, nil
	}

	if err := t.params.Validate(); err != nil {
		return nil, err
	}
	f, err := filter.Create(t.filter)
	if err != nil {
		return nil, err
	}
	inFormat, err := t.in.Format(ctx)
	if err != nil {
		return nil, err
	}
	scaled, err := t.scaledFormat(inFormat)
	if err != nil {
		return nil, err
	}
	if scaled.Empty() {
		return nil, fmt.Errorf("%w: scaled format of %v by %v", ErrEmptyFormat, inFormat, t.params.Scale)
	}
	reformatted, err := t.reformatter.Reformat(ctx, t.in, scaled, f)
	if err != nil {
		return nil, fmt.Errorf("reformat to %v: %w", scaled, err)
	}

	t.impl = &Implementation{
		In:           reformatted,
		Params:       t.params,
		Filter:       f.Name(),
		OutputFormat: inFormat,
	}
	Logger().Debug("transform pipeline built",
		"format", inFormat,
		"scaledFormat", scaled,
		"filter", f.Name())
	return t.impl, nil
}

func (t *ImageTransform) TileSize() int {
	return t.in.TileSize()
}

func (t *ImageTransform) Format(ctx context.Context) (geom.Format, error) {
	src, err := t.source(ctx)
	if err != nil {
		return geom.Format{}, err
	}
	return src.Format(ctx)
}

func (t *ImageTransform) FormatHash(ctx context.Context) (raster.Fingerprint, error) {
	src, err := t.source(ctx)
	if err != nil {
		return 0, err
	}
	return src.FormatHash(ctx)
}

func (t *ImageTransform) DataWindow(ctx context.Context) (image.Rectangle, error) {
	src, err := t.source(ctx)
	if err != nil {
		return image.Rectangle{}, err
	}
	return src.DataWindow(ctx)
}

func (t *ImageTransform) DataWindowHash(ctx context.Context) (raster.Fingerprint, error) {
	src, err := t.source(ctx)
	if err != nil {
		return 0, err
	}
	return src.DataWindowHash(ctx)
}

func (t *ImageTransform) ChannelNames(ctx context.Context) ([]string, error) {
	return t.in.ChannelNames(ctx)
}

func (t *ImageTransform) ChannelNamesHash(ctx context.Context) (raster.Fingerprint, error) {
	return t.in.ChannelNamesHash(ctx)
}

func (t *ImageTransform) ChannelData(ctx context.Context, channel string, tileOrigin image.Point) (*raster.Tile, error) {
	src, err := t.source(ctx)
	if err != nil {
		return nil, err
	}
	return src.ChannelData(ctx, channel, tileOrigin)
}

func (t *ImageTransform) ChannelDataHash(ctx context.Context, channel string, tileOrigin image.Point) (raster.Fingerprint, error) {
	src, err := t.source(ctx)
	if err != nil {
		return 0, err
	}
	return src.ChannelDataHash(ctx, channel, tileOrigin)
}

// Hash returns the fingerprint of one output.
func (t *ImageTransform) Hash(ctx context.Context, kind raster.Kind, channel string, tileOrigin image.Point) (raster.Fingerprint, error) {
	return raster.Hash(ctx, t, kind, channel, tileOrigin)
}
