package admission

import (
	"github.com/gogpu/vpcomp/format"
	"github.com/gogpu/vpcomp/layer"
)

// fastPathOutput reports whether the fast-path kernel writes f directly.
func fastPathOutput(f format.Format) bool {
	return f == format.NV12 || f == format.P010 || f == format.P016
}

// FastPathRegion returns the output region the fast-path kernel covers:
// the output destination with color fill, otherwise the single input's
// destination, clamped to the output surface.
func FastPathRegion(admitted []layer.Layer, target *layer.Layer, colorFill bool) layer.Rect {
	r := target.Dst
	if !colorFill && len(admitted) > 0 {
		r = admitted[0].Dst
	}
	return r.ClampTo(target.Width(), target.Height())
}

// FastPathEligible reports whether the admitted layers can be composed by
// the fast-path kernel: at most one plain layer, or color fill alone, into
// a 4:2:0 semi-planar output with a 2-pixel aligned region.
func FastPathEligible(admitted []layer.Layer, target *layer.Layer, colorFill bool) bool {
	switch len(admitted) {
	case 0:
		if !colorFill {
			return false
		}
	case 1:
		l := &admitted[0]
		if l.Blend.Mode != layer.BlendNone || l.Deinterlace.Enabled || l.LumaKey.Enabled {
			return false
		}
	default:
		return false
	}

	if !fastPathOutput(target.Format) {
		return false
	}
	return FastPathRegion(admitted, target, colorFill).IsAligned(2)
}
