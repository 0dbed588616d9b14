package transform

import (
	"image"
	"testing"

	"github.com/ironsheep/image-transform-mcp/internal/geom"
)

func TestTransformBox_Identity(t *testing.T) {
	boxes := []image.Rectangle{
		image.Rect(0, 0, 1, 1),
		image.Rect(0, 0, 100, 50),
		image.Rect(-64, -3, 17, 200),
		image.Rect(5, 5, 6, 1000),
	}
	for _, box := range boxes {
		if got := TransformBox(geom.Identity(), box); got != box {
			t.Errorf("TransformBox(identity, %v) = %v", box, got)
		}
	}
}

func TestTransformBox_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		m    geom.Matrix
		box  image.Rectangle
		want image.Rectangle
	}{
		{"identity keeps position", geom.Identity(), image.Rect(7, 3, 7, 9), image.Rectangle{Min: image.Pt(7, 3), Max: image.Pt(7, 3)}},
		{"zero height", geom.Identity(), image.Rect(-2, 4, 6, 4), image.Rectangle{Min: image.Pt(-2, 4), Max: image.Pt(-2, 4)}},
		{"translated", geom.Translate(geom.V(10.5, -3)), image.Rect(2, 2, 2, 2), image.Rectangle{Min: image.Pt(12, -1), Max: image.Pt(12, -1)}},
		{"scaled", geom.Scale(geom.V(3, 2)), image.Rect(4, 5, 4, 5), image.Rectangle{Min: image.Pt(12, 10), Max: image.Pt(12, 10)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Rectangle.Eq treats all empty rectangles as equal, so compare fields.
			got := TransformBox(tt.m, tt.box)
			if got != tt.want {
				t.Errorf("TransformBox(%v) = %v, want %v", tt.box, got, tt.want)
			}
			if !got.Empty() {
				t.Errorf("TransformBox(%v) = %v, want an empty box", tt.box, got)
			}
		})
	}
}

func TestTransformBox(t *testing.T) {
	tests := []struct {
		name string
		m    geom.Matrix
		box  image.Rectangle
		want image.Rectangle
	}{
		{"translate", geom.Translate(geom.V(3, -2)), image.Rect(0, 0, 10, 10), image.Rect(3, -2, 13, 8)},
		{"fractional translate", geom.Translate(geom.V(0.5, 0.5)), image.Rect(0, 0, 10, 10), image.Rect(0, 0, 11, 11)},
		{"scale", geom.Scale(geom.V(2, 2)), image.Rect(0, 0, 10, 10), image.Rect(0, 0, 19, 19)},
		{"mirror", geom.Scale(geom.V(-1, 1)), image.Rect(0, 0, 10, 10), image.Rect(-9, 0, 1, 10)},
		{"empty", geom.Scale(geom.V(2, 2)), image.Rectangle{}, image.Rectangle{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TransformBox(tt.m, tt.box); got != tt.want {
				t.Errorf("TransformBox = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransformBox_RoundTripEncloses(t *testing.T) {
	matrices := map[string]geom.Matrix{
		"rotate":    geom.Rotate(0.5),
		"scale":     geom.Scale(geom.V(1.7, 0.3)),
		"translate": geom.Translate(geom.V(0.3, -7.9)),
		"composite": geom.Scale(geom.V(2.5, 2.5)).Then(geom.Rotate(-1.1)).Then(geom.Translate(geom.V(12.25, -4))),
		"mirror":    geom.Scale(geom.V(-1, 1)).Then(geom.Translate(geom.V(64, 0))),
	}
	boxes := []image.Rectangle{
		image.Rect(0, 0, 64, 64),
		image.Rect(-10, 20, 3, 21),
		image.Rect(100, 100, 164, 228),
	}

	for name, m := range matrices {
		t.Run(name, func(t *testing.T) {
			inv, err := m.Inverse()
			if err != nil {
				t.Fatalf("Inverse failed: %v", err)
			}
			for _, box := range boxes {
				got := TransformBox(m, TransformBox(inv, box))
				if !box.In(got) {
					t.Errorf("round trip of %v = %v, does not enclose it", box, got)
				}
			}
		})
	}
}
