package raster

import (
	"context"
	"image"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/image-transform-mcp/internal/filter"
)

// plane is one channel of a region held as float32, row-major.
type plane struct {
	rect image.Rectangle
	data []float32
}

func newPlane(rect image.Rectangle) *plane {
	return &plane{rect: rect, data: make([]float32, rect.Dx()*rect.Dy())}
}

func (p *plane) offset(x, y int) int {
	return (x - p.rect.Min.X) + (y-p.rect.Min.Y)*p.rect.Dx()
}

// tile cuts the tile at origin out of p. Pixels outside p are zero.
func (p *plane) tile(origin image.Point, size int) *Tile {
	t := NewTile(origin, size)
	area := TileBounds(origin, size).Intersect(p.rect)
	for y := area.Min.Y; y < area.Max.Y; y++ {
		row := p.data[p.offset(area.Min.X, y):p.offset(area.Max.X, y)]
		copy(t.Data[(area.Min.X-origin.X)+(y-origin.Y)*size:], row)
	}
	return t
}

// readPlane gathers channel over the display window of src. Pixels outside
// the data window are zero.
func readPlane(ctx context.Context, src Source, channel string, workers int) (*plane, error) {
	format, err := src.Format(ctx)
	if err != nil {
		return nil, err
	}
	dataWindow, err := src.DataWindow(ctx)
	if err != nil {
		return nil, err
	}
	out := newPlane(format.DisplayWindow)
	region := format.DisplayWindow.Intersect(dataWindow)
	if region.Empty() {
		return out, nil
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, origin := range TileOrigins(region, src.TileSize()) {
		origin := origin
		g.Go(func() error {
			tile, err := src.ChannelData(ctx, channel, origin)
			if err != nil {
				return err
			}
			area := TileBounds(origin, src.TileSize()).Intersect(region)
			for y := area.Min.Y; y < area.Max.Y; y++ {
				i := out.offset(area.Min.X, y)
				for x := area.Min.X; x < area.Max.X; x++ {
					out.data[i] = tile.At(x, y)
					i++
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// contribution lists the source samples feeding one destination sample.
type contribution struct {
	first   int
	weights []float64
}

// resizeWeights builds the separable weights that map srcN samples to dstN.
// Destination sample d is centered at (d+0.5)*srcN/dstN in source space. When
// shrinking, the kernel is widened by the reduction factor so that every
// source sample contributes. Taps falling outside [0, srcN) are dropped and
// the rest renormalized.
func resizeWeights(srcN, dstN int, f filter.Filter) []contribution {
	scale := float64(dstN) / float64(srcN)
	reduction := 1.0
	if scale < 1 {
		reduction = 1 / scale
	}

	out := make([]contribution, dstN)
	for d := range out {
		center := (float64(d) + 0.5) / scale
		nearest := min(max(int(math.Floor(center)), 0), srcN-1)
		if f.IsPoint() {
			out[d] = contribution{first: nearest, weights: []float64{1}}
			continue
		}

		radius := f.Support() * reduction
		lo := max(int(math.Ceil(center-0.5-radius)), 0)
		hi := min(int(math.Floor(center-0.5+radius)), srcN-1)
		weights := make([]float64, 0, max(hi-lo+1, 1))
		var sum float64
		for i := lo; i <= hi; i++ {
			w := f.Weight((float64(i) + 0.5 - center) / reduction)
			weights = append(weights, w)
			sum += w
		}
		if sum == 0 {
			out[d] = contribution{first: nearest, weights: []float64{1}}
			continue
		}
		for i := range weights {
			weights[i] /= sum
		}
		out[d] = contribution{first: lo, weights: weights}
	}
	return out
}

// resizePlane resamples p to a plane covering target, horizontally first.
func resizePlane(ctx context.Context, p *plane, target image.Rectangle, f filter.Filter) (*plane, error) {
	srcW, srcH := p.rect.Dx(), p.rect.Dy()
	dstW, dstH := target.Dx(), target.Dy()
	out := newPlane(target)
	if srcW == 0 || srcH == 0 {
		return out, nil
	}

	cols := resizeWeights(srcW, dstW, f)
	rows := resizeWeights(srcH, dstH, f)

	wide := make([]float32, dstW*srcH)
	for y := 0; y < srcH; y++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		src := p.data[y*srcW : (y+1)*srcW]
		for x, c := range cols {
			var v float64
			for k, w := range c.weights {
				v += w * float64(src[c.first+k])
			}
			wide[x+y*dstW] = float32(v)
		}
	}

	for y, c := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for x := 0; x < dstW; x++ {
			var v float64
			for k, w := range c.weights {
				v += w * float64(wide[x+(c.first+k)*dstW])
			}
			out.data[x+y*dstW] = float32(v)
		}
	}
	return out, nil
}
