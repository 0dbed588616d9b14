package transform

import (
	"fmt"
	"math"

	"github.com/ironsheep/image-transform-mcp/internal/geom"
)

// AdjustedMatrix returns the transform to apply to an image that has already
// been reformatted from outputFormat's size to inputFormat's size, so that the
// overall result matches p applied to the original image.
func AdjustedMatrix(p Params, inputFormat, outputFormat geom.Format) (geom.Matrix, error) {
	if err := p.Validate(); err != nil {
		return geom.Matrix{}, err
	}
	if inputFormat.Empty() || outputFormat.Empty() {
		return geom.Matrix{}, fmt.Errorf("%w: input %v, output %v", ErrEmptyFormat, inputFormat, outputFormat)
	}

	// The scale the reformat has already applied.
	trueScale := inputFormat.Size().Div(outputFormat.Size())

	m := geom.Translate(p.Pivot.Neg().Mul(trueScale)).
		Then(geom.Scale(p.Scale.Div(trueScale))).
		Then(geom.Rotate(-p.Rotate * math.Pi / 180)).
		Then(geom.Translate(p.Translate)).
		Then(geom.Translate(p.Pivot))

	if !m.Invertible() {
		return geom.Matrix{}, fmt.Errorf("%w: determinant %g", ErrNonInvertible, m.Determinant())
	}
	return m, nil
}
