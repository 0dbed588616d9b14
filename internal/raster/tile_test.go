package raster

import (
	"image"
	"testing"
)

func TestTileOrigin(t *testing.T) {
	tests := []struct {
		p    image.Point
		want image.Point
	}{
		{image.Pt(0, 0), image.Pt(0, 0)},
		{image.Pt(3, 3), image.Pt(0, 0)},
		{image.Pt(4, 7), image.Pt(4, 4)},
		{image.Pt(-1, -4), image.Pt(-4, -4)},
		{image.Pt(-5, 9), image.Pt(-8, 8)},
	}

	for _, tt := range tests {
		if got := TileOrigin(tt.p, 4); got != tt.want {
			t.Errorf("TileOrigin(%v, 4) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestAligned(t *testing.T) {
	tests := []struct {
		p    image.Point
		want bool
	}{
		{image.Pt(0, 0), true},
		{image.Pt(64, -128), true},
		{image.Pt(1, 0), false},
		{image.Pt(0, -63), false},
	}

	for _, tt := range tests {
		if got := Aligned(tt.p, 64); got != tt.want {
			t.Errorf("Aligned(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestTileOrigins(t *testing.T) {
	got := TileOrigins(image.Rect(-1, 0, 5, 4), 4)
	want := []image.Point{{-4, 0}, {0, 0}, {4, 0}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("origin %d: got %v, want %v", i, got[i], want[i])
		}
	}

	if got := TileOrigins(image.Rect(3, 3, 3, 10), 4); got != nil {
		t.Errorf("empty box: got %v, want nil", got)
	}
}

func TestTile_At(t *testing.T) {
	tile := NewTile(image.Pt(8, 4), 4)
	tile.Data[1+2*4] = 0.75
	if got := tile.At(9, 6); got != 0.75 {
		t.Errorf("At(9,6) = %g, want 0.75", got)
	}
	if got := tile.Bounds(); got != image.Rect(8, 4, 12, 8) {
		t.Errorf("Bounds = %v", got)
	}
}
