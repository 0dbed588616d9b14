package imaging

import (
	"context"
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/ironsheep/image-transform-mcp/internal/cache"
	"github.com/ironsheep/image-transform-mcp/internal/filter"
	"github.com/ironsheep/image-transform-mcp/internal/geom"
	"github.com/ironsheep/image-transform-mcp/internal/raster"
	"github.com/ironsheep/image-transform-mcp/internal/transform"
)

func TestSampleTransformed(t *testing.T) {
	ctx := context.Background()
	src := raster.FromImage(createPatternImage(40, 40), 16)
	req := TransformRequest{
		Params: transform.Params{Scale: geom.V(1, 1), Translate: geom.V(10, 0)},
		Filter: "nearest",
	}
	points := []SamplePoint{
		{X: 15.5, Y: 5.5, Label: "red"},
		{X: 35.5, Y: 5.5, Label: "green"},
		{X: 5.5, Y: 5.5, Label: "uncovered"},
	}

	result, err := SampleTransformed(ctx, src, nil, req, "", points)
	if err != nil {
		t.Fatalf("SampleTransformed failed: %v", err)
	}
	if result.Filter != "nearest" {
		t.Errorf("Filter: got %s, want nearest", result.Filter)
	}
	if len(result.Samples) != len(points) {
		t.Fatalf("got %d samples, want %d", len(result.Samples), len(points))
	}

	tests := []struct {
		hex  string
		rgba RGBAColor
	}{
		{"#FF0000", RGBAColor{255, 0, 0, 255}},
		{"#00FF00", RGBAColor{0, 255, 0, 255}},
		{"#000000", RGBAColor{0, 0, 0, 0}},
	}
	for i, tt := range tests {
		s := result.Samples[i]
		if s.Label != points[i].Label || s.X != points[i].X || s.Y != points[i].Y {
			t.Errorf("sample %d: got label %q at (%g,%g)", i, s.Label, s.X, s.Y)
		}
		if s.Hex != tt.hex || s.RGBA != tt.rgba {
			t.Errorf("sample %q: got %s %+v, want %s %+v", s.Label, s.Hex, s.RGBA, tt.hex, tt.rgba)
		}
		if len(s.Channels) != 4 {
			t.Errorf("sample %q: got %d channels, want 4", s.Label, len(s.Channels))
		}
	}
}

func TestSampleTransformed_FilteredUniform(t *testing.T) {
	ctx := context.Background()
	src := raster.FromImage(createInMemoryImage(32, 32, color.RGBA{255, 255, 255, 255}), 8)
	store, err := cache.NewStore(32)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	req := TransformRequest{Params: transform.Params{Scale: geom.V(1, 1), Rotate: 45, Pivot: geom.V(16, 16)}, Filter: "bilinear"}

	result, err := SampleTransformed(ctx, src, store, req, "bilinear", []SamplePoint{{X: 16.25, Y: 15.75}})
	if err != nil {
		t.Fatalf("SampleTransformed failed: %v", err)
	}
	for name, v := range result.Samples[0].Channels {
		if math.Abs(float64(v)-1) > 1e-5 {
			t.Errorf("channel %s at the pivot: got %g, want 1", name, v)
		}
	}
}

func TestSampleTransformed_Errors(t *testing.T) {
	ctx := context.Background()
	src := raster.FromImage(createPatternImage(8, 8), 8)
	req := TransformRequest{Params: transform.Params{Scale: geom.V(2, 2)}}

	if _, err := SampleTransformed(ctx, src, nil, req, "spline64", []SamplePoint{{X: 1, Y: 1}}); !errors.Is(err, filter.ErrUnknownFilter) {
		t.Errorf("unknown sample filter error = %v, want ErrUnknownFilter", err)
	}
	if _, err := SampleTransformed(ctx, src, nil, req, "", []SamplePoint{{X: math.NaN(), Y: 1}}); err == nil {
		t.Error("SampleTransformed should reject NaN coordinates")
	}
	bad := TransformRequest{Params: transform.Params{Scale: geom.V(0, 2)}}
	if _, err := SampleTransformed(ctx, src, nil, bad, "", []SamplePoint{{X: 1, Y: 1}}); !errors.Is(err, transform.ErrNonInvertible) {
		t.Errorf("zero scale error = %v, want ErrNonInvertible", err)
	}
}
