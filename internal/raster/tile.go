package raster

import "image"

// DefaultTileSize is the tile edge length used when none is configured.
const DefaultTileSize = 64

// Tile is one channel's samples for a TileSize x TileSize square. A tile is
// immutable once returned by a Source.
type Tile struct {
	Origin image.Point
	Size   int
	Data   []float32
}

// NewTile allocates a zeroed tile.
func NewTile(origin image.Point, size int) *Tile {
	return &Tile{
		Origin: origin,
		Size:   size,
		Data:   make([]float32, size*size),
	}
}

// Bounds returns the pixels covered by the tile.
func (t *Tile) Bounds() image.Rectangle {
	return TileBounds(t.Origin, t.Size)
}

// At returns the sample at absolute pixel (x, y), which must lie inside Bounds.
func (t *Tile) At(x, y int) float32 {
	return t.Data[(x-t.Origin.X)+(y-t.Origin.Y)*t.Size]
}

// TileBounds returns the box covered by the tile at origin.
func TileBounds(origin image.Point, size int) image.Rectangle {
	return image.Rectangle{Min: origin, Max: origin.Add(image.Pt(size, size))}
}

// TileOrigin returns the origin of the tile containing pixel p.
func TileOrigin(p image.Point, size int) image.Point {
	return image.Pt(floorDiv(p.X, size)*size, floorDiv(p.Y, size)*size)
}

// Aligned reports whether origin lies on the tile grid.
func Aligned(origin image.Point, size int) bool {
	return size > 0 && floorMod(origin.X, size) == 0 && floorMod(origin.Y, size) == 0
}

// TileOrigins returns the origins of every tile overlapping r, row by row.
func TileOrigins(r image.Rectangle, size int) []image.Point {
	if r.Empty() {
		return nil
	}
	lo := TileOrigin(r.Min, size)
	hi := TileOrigin(r.Max.Sub(image.Pt(1, 1)), size)
	origins := make([]image.Point, 0, ((hi.X-lo.X)/size+1)*((hi.Y-lo.Y)/size+1))
	for y := lo.Y; y <= hi.Y; y += size {
		for x := lo.X; x <= hi.X; x += size {
			origins = append(origins, image.Pt(x, y))
		}
	}
	return origins
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
