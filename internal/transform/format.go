package transform

import (
	"image"
	"math"

	"github.com/ironsheep/image-transform-mcp/internal/geom"
)

// RescaleFormat returns the format an image of format f has after scaling by
// (scaleX, scaleY). Rotation and translation play no part: this is the size of
// the canvas, not where content moves to. The result has square pixels.
func RescaleFormat(f geom.Format, scaleX, scaleY float64) geom.Format {
	w := f.DisplayWindow
	minX, maxX := rescaleAxis(w.Min.X, w.Max.X, scaleX)
	minY, maxY := rescaleAxis(w.Min.Y, w.Max.Y, scaleY)
	return geom.Format{
		DisplayWindow: image.Rectangle{Min: image.Pt(minX, minY), Max: image.Pt(maxX, maxY)},
		PixelAspect:   1,
	}
}

// rescaleAxis maps [lo, hi) by s using the same inner-corner rule as
// TransformBox. A negative s flips the interval, which is reordered so that
// min <= max still holds.
func rescaleAxis(lo, hi int, s float64) (int, int) {
	if hi <= lo {
		v := int(math.Floor(float64(lo) * s))
		return v, v
	}
	a, b := float64(lo)*s, float64(hi-1)*s
	if a > b {
		a, b = b, a
	}
	return int(math.Floor(a)), int(math.Ceil(b)) + 1
}
