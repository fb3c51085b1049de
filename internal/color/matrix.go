// Package color resolves the color-space conversion matrices applied by
// the compositing kernels.
//
// All matrices operate on normalized component values: an 8-bit code c
// maps to c/255, for luma, chroma and RGB alike. A matrix is a 3x4
// row-major affine transform (f64.Aff4) whose fourth column is the offset:
//
//	[o0]   [m0 m1  m2 ] [i0]   [m3 ]
//	[o1] = [m4 m5  m6 ] [i1] + [m7 ]
//	[o2]   [m8 m9  m10] [i2]   [m11]
package color

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Identity leaves every component unchanged.
var Identity = f64.Aff4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
}

// Mul returns the composition a*b: applying the result equals applying b,
// then a.
func Mul(a, b f64.Aff4) f64.Aff4 {
	var m f64.Aff4
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			m[r*4+c] = a[r*4]*b[c] + a[r*4+1]*b[4+c] + a[r*4+2]*b[8+c]
		}
		m[r*4+3] = a[r*4]*b[3] + a[r*4+1]*b[7] + a[r*4+2]*b[11] + a[r*4+3]
	}
	return m
}

// Apply transforms v by m.
func Apply(m f64.Aff4, v [3]float64) [3]float64 {
	return [3]float64{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2] + m[3],
		m[4]*v[0] + m[5]*v[1] + m[6]*v[2] + m[7],
		m[8]*v[0] + m[9]*v[1] + m[10]*v[2] + m[11],
	}
}

// Equal reports whether a and b agree element-wise within eps.
func Equal(a, b f64.Aff4, eps float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

// invert returns the inverse of an affine transform. The second result is
// false when the linear part is singular.
func invert(m f64.Aff4) (f64.Aff4, bool) {
	a, b, c := m[0], m[1], m[2]
	d, e, f := m[4], m[5], m[6]
	g, h, i := m[8], m[9], m[10]

	det := a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
	if math.Abs(det) < 1e-12 {
		return f64.Aff4{}, false
	}
	inv := 1 / det

	var r f64.Aff4
	r[0] = (e*i - f*h) * inv
	r[1] = (c*h - b*i) * inv
	r[2] = (b*f - c*e) * inv
	r[4] = (f*g - d*i) * inv
	r[5] = (a*i - c*g) * inv
	r[6] = (c*d - a*f) * inv
	r[8] = (d*h - e*g) * inv
	r[9] = (b*g - a*h) * inv
	r[10] = (a*e - b*d) * inv

	// Offset column: -L^-1 * t.
	r[3] = -(r[0]*m[3] + r[1]*m[7] + r[2]*m[11])
	r[7] = -(r[4]*m[3] + r[5]*m[7] + r[6]*m[11])
	r[11] = -(r[8]*m[3] + r[9]*m[7] + r[10]*m[11])
	return r, true
}
