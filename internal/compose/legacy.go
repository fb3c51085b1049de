package compose

import (
	"fmt"

	"golang.org/x/image/math/f64"

	"github.com/gogpu/vpcomp/internal/admission"
	"github.com/gogpu/vpcomp/internal/color"
	"github.com/gogpu/vpcomp/internal/errs"
	"github.com/gogpu/vpcomp/internal/geometry"
	"github.com/gogpu/vpcomp/internal/params"
	"github.com/gogpu/vpcomp/layer"
)

// minSitingScale is the smallest scale the downscale workaround keeps
// chroma siting enabled for.
const minSitingScale = float32(1.0 / 3.0)

// LegacyLayer is the fixed-function state of one admitted layer.
type LegacyLayer struct {
	// Layer is the admitted layer with its blend mode normalized.
	Layer    layer.Layer
	Geometry geometry.Legacy
	CSC      f64.Aff4

	// Alpha is the constant blend alpha in [1, 255].
	Alpha uint16

	ChromaSiting bool
}

// LegacyBlock is the fixed-function compositor's parameter block.
type LegacyBlock struct {
	Layers []LegacyLayer

	// Target is the output after limit adjustment.
	Target layer.Layer

	ColorFill  bool
	Background [4]float32
	Alpha      layer.AlphaOutput
}

// Legacy runs the fixed-function compositor.
type Legacy struct {
	caps   admission.Caps
	colors *color.Resolver
}

// Kind returns KindLegacy.
func (*Legacy) Kind() Kind { return KindLegacy }

// Build assembles the fixed-function block. c is not modified.
func (s *Legacy) Build(c *params.Composition) (*Plan, error) {
	blk := &LegacyBlock{
		Target:    AdjustForLimits(c.Layers, *c.Target, c.ColorFill.Enabled),
		ColorFill: c.ColorFill.Enabled,
		Alpha:     c.Alpha,
		Layers:    make([]LegacyLayer, 0, len(c.Layers)),
	}
	if c.ColorFill.Enabled {
		bg, err := color.FillColor(c.ColorFill, blk.Target.ColorSpace)
		if err != nil {
			return nil, fmt.Errorf("color fill: %w", err)
		}
		blk.Background = bg
	}

	for i := range c.Layers {
		ll := LegacyLayer{Layer: c.Layers[i]}
		l := &ll.Layer
		l.ID = i

		var err error
		if ll.Alpha, err = ConstantAlpha(&l.Blend); err != nil {
			return nil, fmt.Errorf("layer %d: %w", l.OriginID, err)
		}
		if ll.Geometry, err = geometry.ResolveLegacy(l, &blk.Target); err != nil {
			return nil, fmt.Errorf("layer %d: %w", l.OriginID, err)
		}
		if ll.CSC, err = s.colors.Resolve(l.ColorSpace, blk.Target.ColorSpace, l.Procamp); err != nil {
			return nil, fmt.Errorf("layer %d: %w", l.OriginID, err)
		}
		ll.ChromaSiting = chromaSitingEnabled(l, &ll.Geometry, s.caps)
		blk.Layers = append(blk.Layers, ll)
	}
	return &Plan{Kind: KindLegacy, Legacy: blk}, nil
}

// ConstantAlpha returns the 8-bit constant alpha of b and normalizes
// fully opaque constant blending: Constant becomes None and the source
// variants become Source. A transparent constant layer is an error; it
// should have been removed before admission.
func ConstantAlpha(b *layer.Blend) (uint16, error) {
	if !b.Mode.UsesConstantAlpha() {
		return 255, nil
	}
	if b.Alpha <= 0 {
		return 0, fmt.Errorf("transparent %s layer: %w", b.Mode, errs.InvalidParameter)
	}

	alpha := uint16(255 * float32(b.Alpha))
	if b.Alpha >= 1 || alpha >= 255 {
		if b.Mode == layer.BlendConstant {
			b.Mode = layer.BlendNone
		} else {
			b.Mode = layer.BlendSource
		}
		b.Alpha = 1
		alpha = 255
	}
	return alpha, nil
}

// AdjustForLimits returns target with its rectangles shrunk to the single
// input's destination when there is no color fill and that destination
// lies inside the target. The fixed-function mask is derived from these
// rectangles.
func AdjustForLimits(layers []layer.Layer, target layer.Layer, colorFill bool) layer.Layer {
	if colorFill || len(layers) != 1 {
		return target
	}
	dst := layers[0].Dst
	if target.Dst.Contains(dst) {
		target.Src = dst
		target.Dst = dst
	}
	return target
}

func chromaSitingEnabled(l *layer.Layer, g *geometry.Legacy, caps admission.Caps) bool {
	if !g.ChromaUp && !g.ChromaDown {
		return false
	}
	if !caps.DownscaleWorkaround {
		return true
	}
	return l.Scaling == layer.ScalingBilinear &&
		float32(g.ScaleX) >= minSitingScale &&
		float32(g.ScaleY) >= minSitingScale
}
