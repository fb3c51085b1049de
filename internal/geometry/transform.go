package geometry

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Transform returns the affine map the kernel applies to a target pixel
// (x, y) to obtain the normalized source coordinate, ignoring the common
// shift.
func Transform(s Sampling) f64.Aff3 {
	var m f64.Aff3
	left, top := float64(s.Target.Left), float64(s.Target.Top)
	origin := [2]float64{left, top}

	// Row 0 drives source X, row 1 source Y. Each row reads the target axis
	// selected by RotateIndices.
	rows := [2]struct {
		start, stride float64
		axis          uint32
	}{
		{s.StartX, s.StrideX, s.RotateIndices[0]},
		{s.StartY, s.StrideY, s.RotateIndices[1]},
	}
	for i, r := range rows {
		m[i*3+int(r.axis)] = r.stride
		m[i*3+2] = r.start - r.stride*origin[r.axis]
	}
	return m
}

// Invert returns the inverse of an affine map. The second result is false
// when m is singular.
func Invert(m f64.Aff3) (f64.Aff3, bool) {
	det := m[0]*m[4] - m[1]*m[3]
	if math.Abs(det) < 1e-300 {
		return f64.Aff3{}, false
	}
	inv := 1 / det
	a, b := m[4]*inv, -m[1]*inv
	d, e := -m[3]*inv, m[0]*inv
	return f64.Aff3{
		a, b, -(a*m[2] + b*m[5]),
		d, e, -(d*m[2] + e*m[5]),
	}, true
}

// Apply maps the point (x, y) through m.
func Apply(m f64.Aff3, x, y float64) (float64, float64) {
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}
