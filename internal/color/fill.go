package color

import (
	"github.com/gogpu/vpcomp/format"
	"github.com/gogpu/vpcomp/layer"
)

// FillColor converts the 0xAARRGGBB color of f, expressed in f.ColorSpace,
// to normalized components in dst. The result holds the three components
// in dst order (R, G, B or Y, U, V) followed by alpha. When f.ColorSpace is
// a YUV space the R, G and B bytes carry Y, U and V.
func FillColor(f layer.ColorFill, dst format.ColorSpace) ([4]float32, error) {
	src := f.ColorSpace
	if !src.Valid() {
		src = format.SRGB
	}

	a := float64(f.Color>>24&0xff) / 255
	v := [3]float64{
		float64(f.Color>>16&0xff) / 255,
		float64(f.Color>>8&0xff) / 255,
		float64(f.Color&0xff) / 255,
	}

	m, err := Normalized(src, dst)
	if err != nil {
		return [4]float32{}, err
	}
	v = Apply(m, v)
	return [4]float32{
		float32(clamp01(v[0])),
		float32(clamp01(v[1])),
		float32(clamp01(v[2])),
		float32(a),
	}, nil
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
