package geom

import (
	"errors"
	"math"

	"golang.org/x/image/math/f64"
)

// ErrSingular is returned when inverting a matrix with a zero determinant.
var ErrSingular = errors.New("matrix is singular")

// singularEpsilon is the determinant magnitude below which a matrix is treated
// as non-invertible.
const singularEpsilon = 1e-12

// Matrix is a 2D affine transform, the top two rows of a 3x3 homogeneous
// matrix whose last row is (0, 0, 1):
//
//	| A[0] A[1] A[2] |
//	| A[3] A[4] A[5] |
//	|  0    0    1   |
//
// Points are column vectors: x' = A[0]*x + A[1]*y + A[2].
type Matrix struct {
	A f64.Aff3
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{A: f64.Aff3{1, 0, 0, 0, 1, 0}}
}

// Translate returns a translation by t.
func Translate(t Vec) Matrix {
	return Matrix{A: f64.Aff3{1, 0, t.X, 0, 1, t.Y}}
}

// Scale returns a scale about the origin by s.
func Scale(s Vec) Matrix {
	return Matrix{A: f64.Aff3{s.X, 0, 0, 0, s.Y, 0}}
}

// Rotate returns a counter-clockwise rotation about the origin, in radians.
func Rotate(radians float64) Matrix {
	sin, cos := math.Sincos(radians)
	return Matrix{A: f64.Aff3{cos, -sin, 0, sin, cos, 0}}
}

// Multiply returns m * o, the transform that applies o first and then m.
func (m Matrix) Multiply(o Matrix) Matrix {
	a, b := m.A, o.A
	return Matrix{A: f64.Aff3{
		a[0]*b[0] + a[1]*b[3],
		a[0]*b[1] + a[1]*b[4],
		a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3],
		a[3]*b[1] + a[4]*b[4],
		a[3]*b[2] + a[4]*b[5] + a[5],
	}}
}

// Then returns the transform that applies m first and then next.
func (m Matrix) Then(next Matrix) Matrix {
	return next.Multiply(m)
}

// Determinant returns the determinant of the linear part.
func (m Matrix) Determinant() float64 {
	return m.A[0]*m.A[4] - m.A[1]*m.A[3]
}

// IsFinite reports whether every coefficient is a finite number.
func (m Matrix) IsFinite() bool {
	for _, v := range m.A {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Invertible reports whether Inverse would succeed.
func (m Matrix) Invertible() bool {
	return m.IsFinite() && math.Abs(m.Determinant()) >= singularEpsilon
}

// Inverse returns the inverse transform, or ErrSingular.
func (m Matrix) Inverse() (Matrix, error) {
	if !m.Invertible() {
		return Matrix{}, ErrSingular
	}
	a := m.A
	inv := 1 / m.Determinant()
	return Matrix{A: f64.Aff3{
		a[4] * inv,
		-a[1] * inv,
		(a[1]*a[5] - a[2]*a[4]) * inv,
		-a[3] * inv,
		a[0] * inv,
		(a[2]*a[3] - a[0]*a[5]) * inv,
	}}, nil
}

// Apply transforms the point p.
func (m Matrix) Apply(p Vec) Vec {
	return Vec{
		X: m.A[0]*p.X + m.A[1]*p.Y + m.A[2],
		Y: m.A[3]*p.X + m.A[4]*p.Y + m.A[5],
	}
}

// ScaleFactors returns the lengths of the transformed unit axes.
func (m Matrix) ScaleFactors() Vec {
	return Vec{
		X: math.Hypot(m.A[0], m.A[3]),
		Y: math.Hypot(m.A[1], m.A[4]),
	}
}
