package transform

import (
	"image"
	"testing"

	"github.com/ironsheep/image-transform-mcp/internal/geom"
)

func TestRescaleFormat_UnitScale(t *testing.T) {
	formats := []geom.Format{
		geom.NewFormat(image.Rect(0, 0, 100, 50)),
		geom.NewFormat(image.Rect(-10, 5, 30, 40)),
		geom.NewFormat(image.Rect(0, 0, 1, 1)),
	}
	for _, f := range formats {
		if got := RescaleFormat(f, 1, 1); got != f {
			t.Errorf("RescaleFormat(%v, 1, 1) = %v", f, got)
		}
	}
}

func TestRescaleFormat(t *testing.T) {
	tests := []struct {
		name           string
		window         image.Rectangle
		scaleX, scaleY float64
		want           image.Rectangle
	}{
		{"double", image.Rect(0, 0, 100, 100), 2, 2, image.Rect(0, 0, 199, 199)},
		{"half", image.Rect(0, 0, 100, 100), 0.5, 0.5, image.Rect(0, 0, 51, 51)},
		{"per axis", image.Rect(0, 0, 10, 20), 3, 1, image.Rect(0, 0, 28, 20)},
		{"offset origin", image.Rect(10, 10, 20, 20), 2, 2, image.Rect(20, 20, 39, 39)},
		{"negative flips and reorders", image.Rect(0, 0, 10, 10), -1, 1, image.Rect(-9, 0, 1, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RescaleFormat(geom.NewFormat(tt.window), tt.scaleX, tt.scaleY)
			if got.DisplayWindow != tt.want {
				t.Errorf("display window = %v, want %v", got.DisplayWindow, tt.want)
			}
			if got.PixelAspect != 1 {
				t.Errorf("pixel aspect = %g, want 1", got.PixelAspect)
			}
		})
	}
}

func TestRescaleFormat_IgnoresPixelAspect(t *testing.T) {
	f := geom.Format{DisplayWindow: image.Rect(0, 0, 10, 10), PixelAspect: 2}
	if got := RescaleFormat(f, 2, 2).PixelAspect; got != 1 {
		t.Errorf("pixel aspect = %g, want 1", got)
	}
}
