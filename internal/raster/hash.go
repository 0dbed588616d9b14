package raster

import (
	"encoding/binary"
	"fmt"
	"image"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/ironsheep/image-transform-mcp/internal/geom"
)

// Fingerprint is a content hash used as a cache key. Equal fingerprints imply
// equal computed outputs.
type Fingerprint uint64

func (f Fingerprint) String() string {
	return fmt.Sprintf("%016x", uint64(f))
}

// Hasher accumulates values into a Fingerprint. The zero value is not usable;
// call NewHasher.
type Hasher struct {
	d   *xxhash.Digest
	buf [8]byte
}

// NewHasher returns an empty hasher.
func NewHasher() *Hasher {
	return &Hasher{d: xxhash.New()}
}

func (h *Hasher) word(v uint64) {
	binary.LittleEndian.PutUint64(h.buf[:], v)
	_, _ = h.d.Write(h.buf[:]) // xxhash writes never fail
}

// String appends s, length-prefixed so that adjacent strings cannot alias.
func (h *Hasher) String(s string) {
	h.word(uint64(len(s)))
	_, _ = h.d.WriteString(s)
}

// Int appends an integer.
func (h *Hasher) Int(v int) {
	h.word(uint64(int64(v)))
}

// Float appends the exact bit pattern of v.
func (h *Hasher) Float(v float64) {
	h.word(math.Float64bits(v))
}

// Vec appends both components of v.
func (h *Hasher) Vec(v geom.Vec) {
	h.Float(v.X)
	h.Float(v.Y)
}

// Point appends an integer point.
func (h *Hasher) Point(p image.Point) {
	h.Int(p.X)
	h.Int(p.Y)
}

// Rect appends an integer box.
func (h *Hasher) Rect(r image.Rectangle) {
	h.Point(r.Min)
	h.Point(r.Max)
}

// Format appends a format.
func (h *Hasher) Format(f geom.Format) {
	h.Rect(f.DisplayWindow)
	h.Float(f.PixelAspect)
}

// Matrix appends all six affine coefficients.
func (h *Hasher) Matrix(m geom.Matrix) {
	for _, v := range m.A {
		h.Float(v)
	}
}

// Fingerprint appends an upstream fingerprint.
func (h *Hasher) Fingerprint(f Fingerprint) {
	h.word(uint64(f))
}

// Bytes appends raw content.
func (h *Hasher) Bytes(b []byte) {
	h.word(uint64(len(b)))
	_, _ = h.d.Write(b)
}

// Sum returns the fingerprint of everything appended so far.
func (h *Hasher) Sum() Fingerprint {
	return Fingerprint(h.d.Sum64())
}
