package transform

import (
	"context"
	"image"
	"testing"

	"github.com/ironsheep/image-transform-mcp/internal/filter"
	"github.com/ironsheep/image-transform-mcp/internal/geom"
	"github.com/ironsheep/image-transform-mcp/internal/raster"
)

func TestHashChannelData_Stable(t *testing.T) {
	ctx := context.Background()
	p := Params{Scale: geom.V(1.5, 1.5), Rotate: 10}
	m, _ := AdjustedMatrix(p, square(32), square(32))
	f, _ := filter.Create("mitchell")

	a, err := HashChannelData(ctx, newPixelSource(0.5, image.Rect(0, 0, 32, 32), 8), "Y", image.Pt(8, 8), m, f, p)
	if err != nil {
		t.Fatalf("HashChannelData failed: %v", err)
	}
	b, err := HashChannelData(ctx, newPixelSource(0.5, image.Rect(0, 0, 32, 32), 8), "Y", image.Pt(8, 8), m, f, p)
	if err != nil {
		t.Fatalf("HashChannelData failed: %v", err)
	}
	if a != b {
		t.Errorf("identical inputs hash differently: %v vs %v", a, b)
	}
}

func TestHashChannelData_Changes(t *testing.T) {
	ctx := context.Background()
	src := newPixelSource(0.5, image.Rect(0, 0, 64, 64), 8)
	p := Params{Scale: geom.V(2, 2)}
	m, _ := AdjustedMatrix(p, square(64), square(64))
	mitchell, _ := filter.Create("mitchell")
	box, _ := filter.Create("box")

	base, err := HashChannelData(ctx, src, "Y", image.Pt(16, 16), m, mitchell, p)
	if err != nil {
		t.Fatalf("HashChannelData failed: %v", err)
	}

	tests := []struct {
		name string
		hash func() (raster.Fingerprint, error)
	}{
		{"filter", func() (raster.Fingerprint, error) {
			return HashChannelData(ctx, src, "Y", image.Pt(16, 16), m, box, p)
		}},
		{"origin", func() (raster.Fingerprint, error) {
			return HashChannelData(ctx, src, "Y", image.Pt(24, 16), m, mitchell, p)
		}},
		{"pivot", func() (raster.Fingerprint, error) {
			q := p
			q.Pivot = geom.V(1, 1)
			mq, _ := AdjustedMatrix(q, square(64), square(64))
			return HashChannelData(ctx, src, "Y", image.Pt(16, 16), mq, mitchell, q)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.hash()
			if err != nil {
				t.Fatalf("HashChannelData failed: %v", err)
			}
			if got == base {
				t.Errorf("changing %s left the fingerprint at %v", tt.name, got)
			}
		})
	}
}

func TestHashChannelData_OriginWithSharedSampleRegion(t *testing.T) {
	ctx := context.Background()
	src := newPixelSource(0.5, image.Rect(0, 0, 16, 16), 4)
	p := Params{Scale: geom.V(100, 100)}
	m, _ := AdjustedMatrix(p, square(16), square(16))
	f, _ := filter.Create("bilinear")
	inv, _ := m.Inverse()

	a, b := image.Pt(0, 0), image.Pt(4, 0)
	boxA := TransformBox(inv, raster.TileBounds(a, 4))
	boxB := TransformBox(inv, raster.TileBounds(b, 4))
	if boxA != boxB {
		t.Fatalf("expected a shared sample region, got %v and %v", boxA, boxB)
	}

	ha, err := HashChannelData(ctx, src, "Y", a, m, f, p)
	if err != nil {
		t.Fatalf("HashChannelData failed: %v", err)
	}
	hb, err := HashChannelData(ctx, src, "Y", b, m, f, p)
	if err != nil {
		t.Fatalf("HashChannelData failed: %v", err)
	}
	if ha == hb {
		t.Errorf("tiles %v and %v share fingerprint %v", a, b, ha)
	}
}

func TestHashChannelData_UpstreamScope(t *testing.T) {
	ctx := context.Background()
	src := newPixelSource(0.5, image.Rect(0, 0, 64, 64), 8)
	p := Params{Scale: geom.V(1, 1), Translate: geom.V(8, 0)}
	m, _ := AdjustedMatrix(p, square(64), square(64))
	f, _ := filter.Create("bilinear")
	origin := image.Pt(16, 16)

	base, _ := HashChannelData(ctx, src, "Y", origin, m, f, p)

	src.set(50, 50, 1)
	if got, _ := HashChannelData(ctx, src, "Y", origin, m, f, p); got != base {
		t.Errorf("editing an unread input tile changed the fingerprint")
	}

	src.set(10, 18, 1)
	if got, _ := HashChannelData(ctx, src, "Y", origin, m, f, p); got == base {
		t.Errorf("editing a sampled input pixel left the fingerprint unchanged")
	}
}

func TestHashChannelData_DoesNotReadPixels(t *testing.T) {
	ctx := context.Background()
	src := newPixelSource(0.5, image.Rect(0, 0, 32, 32), 8)
	p := Params{Scale: geom.V(0.5, 0.5)}
	m, _ := AdjustedMatrix(p, square(32), square(32))
	f, _ := filter.Create("lanczos")

	if _, err := HashChannelData(ctx, src, "Y", image.Pt(0, 0), m, f, p); err != nil {
		t.Fatalf("HashChannelData failed: %v", err)
	}
	for _, o := range raster.TileOrigins(image.Rect(0, 0, 32, 32), 8) {
		if n := src.readCount(o); n != 0 {
			t.Errorf("hashing read input tile %v %d times", o, n)
		}
	}
}

func TestHashFormatAndDataWindow(t *testing.T) {
	if HashFormat(square(10)) != HashFormat(square(10)) {
		t.Error("HashFormat is not stable")
	}
	if HashFormat(square(10)) == HashFormat(square(11)) {
		t.Error("HashFormat ignores the display window")
	}

	var dw, inFormat raster.Fingerprint = 1, 2
	p := Params{Scale: geom.V(2, 2)}
	base := HashDataWindow(dw, inFormat, square(10), p)
	if HashDataWindow(dw, inFormat, square(10), p) != base {
		t.Error("HashDataWindow is not stable")
	}
	if HashDataWindow(dw+1, inFormat, square(10), p) == base {
		t.Error("HashDataWindow ignores the input data window")
	}
	q := p
	q.Rotate = 45
	if HashDataWindow(dw, inFormat, square(10), q) == base {
		t.Error("HashDataWindow ignores the parameters")
	}
}
