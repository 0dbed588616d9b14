package transform

import (
	"image"
	"math"

	"github.com/ironsheep/image-transform-mcp/internal/geom"
)

// TransformBox returns the smallest integer box containing box mapped through
// m. The inner corners of the box (Max-1) are transformed, and one is added
// back to the rounded-up maximum to restore the exclusive bound.
//
// A degenerate box maps to a degenerate box at the transformed position of
// its Min corner.
func TransformBox(m geom.Matrix, box image.Rectangle) image.Rectangle {
	if box.Empty() {
		p := m.Apply(geom.V(float64(box.Min.X), float64(box.Min.Y)))
		at := image.Pt(int(math.Floor(p.X)), int(math.Floor(p.Y)))
		return image.Rectangle{Min: at, Max: at}
	}
	corners := [4]geom.Vec{
		geom.V(float64(box.Min.X), float64(box.Min.Y)),
		geom.V(float64(box.Max.X-1), float64(box.Max.Y-1)),
		geom.V(float64(box.Max.X-1), float64(box.Min.Y)),
		geom.V(float64(box.Min.X), float64(box.Max.Y-1)),
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		p := m.Apply(c)
		minX = math.Min(minX, math.Floor(p.X))
		minY = math.Min(minY, math.Floor(p.Y))
		maxX = math.Max(maxX, math.Ceil(p.X))
		maxY = math.Max(maxY, math.Ceil(p.Y))
	}

	return image.Rect(int(minX), int(minY), int(maxX)+1, int(maxY)+1)
}
