package color

import (
	"math"

	"golang.org/x/image/math/f64"

	"github.com/gogpu/vpcomp/layer"
)

// Procamp returns the adjustment matrix for p in the YUV domain.
//
//	[Y']   [ c       0       0    ] [Y]   [ 16  - 16*c + b      ]
//	[U'] = [ 0   c*s*cos  c*s*sin ] [U] + [ 128 - 128*(m5 + m6) ]
//	[V']   [ 0  -c*s*sin  c*s*cos ] [V]   [ 128 - 128*(m5 - m6) ]
//
// Offsets are scaled to normalized units. Neutral parameters yield
// Identity up to rounding.
func Procamp(p layer.Procamp) f64.Aff4 {
	c := p.Contrast
	hue := p.Hue * math.Pi / 180
	cs := c * p.Saturation

	var m f64.Aff4
	m[0] = c
	m[3] = (16 - 16*c + p.Brightness) / 255
	m[5] = math.Cos(hue) * cs
	m[6] = math.Sin(hue) * cs
	m[7] = 128 * (1 - m[5] - m[6]) / 255
	m[9] = -m[6]
	m[10] = m[5]
	m[11] = 128 * (1 - m[5] + m[6]) / 255
	return m
}
