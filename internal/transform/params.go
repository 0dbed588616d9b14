package transform

import (
	"errors"
	"fmt"
	"math"

	"github.com/ironsheep/image-transform-mcp/internal/geom"
	"github.com/ironsheep/image-transform-mcp/internal/raster"
)

var (
	// ErrNonInvertible is returned when the parameters describe a transform
	// that collapses the image, such as a zero scale.
	ErrNonInvertible = errors.New("non-invertible transform")

	// ErrEmptyFormat is returned when a format needed to derive the matrix has
	// a zero dimension.
	ErrEmptyFormat = errors.New("format has zero size")

	// ErrCanvasTooLarge is returned when the scale would reformat the input
	// to a canvas of more than MaxCanvasPixels pixels.
	ErrCanvasTooLarge = errors.New("scaled canvas too large")
)

// MaxCanvasPixels bounds the area of the canvas an input is reformatted to.
const MaxCanvasPixels = 1 << 26

// Params are the user-facing 2D transform parameters. Rotate is in degrees.
type Params struct {
	Scale     geom.Vec `json:"scale"`
	Rotate    float64  `json:"rotate"`
	Translate geom.Vec `json:"translate"`
	Pivot     geom.Vec `json:"pivot"`
}

// DefaultParams returns the identity transform.
func DefaultParams() Params {
	return Params{Scale: geom.V(1, 1)}
}

// Enabled reports whether the parameters do anything at all. The comparison
// is exact; pivot is ignored since it only matters for scale and rotation.
func (p Params) Enabled() bool {
	return !(p.Rotate == 0 &&
		p.Scale.X == 1 && p.Scale.Y == 1 &&
		p.Translate.X == 0 && p.Translate.Y == 0)
}

// Validate rejects parameters that cannot produce an invertible matrix.
func (p Params) Validate() error {
	if !p.Scale.IsFinite() || !p.Translate.IsFinite() || !p.Pivot.IsFinite() ||
		math.IsNaN(p.Rotate) || math.IsInf(p.Rotate, 0) {
		return fmt.Errorf("%w: parameters must be finite", ErrNonInvertible)
	}
	if p.Scale.X == 0 || p.Scale.Y == 0 {
		return fmt.Errorf("%w: scale %v has a zero component", ErrNonInvertible, p.Scale)
	}
	return nil
}

func (p Params) hash(h *raster.Hasher) {
	h.Vec(p.Scale)
	h.Float(p.Rotate)
	h.Vec(p.Translate)
	h.Vec(p.Pivot)
}

// canvasScale is the scale magnitude used to size the reformatted canvas.
func (p Params) canvasScale() geom.Vec {
	return geom.V(math.Abs(p.Scale.X), math.Abs(p.Scale.Y))
}
