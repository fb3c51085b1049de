package geometry

import (
	"fmt"

	"github.com/gogpu/vpcomp/internal/chroma"
	"github.com/gogpu/vpcomp/internal/errs"
	"github.com/gogpu/vpcomp/layer"
)

// Filter is the 3D sampler filter of the fixed-function compositor.
type Filter uint8

const (
	FilterNearest Filter = iota
	FilterBilinear
)

// String returns the filter name.
func (f Filter) String() string {
	if f == FilterNearest {
		return "Nearest"
	}
	return "Bilinear"
}

// FilterFor maps a scaling mode to the 3D sampler filter. Everything but
// nearest samples bilinearly.
func FilterFor(m layer.ScalingMode) Filter {
	if m == layer.ScalingNearest {
		return FilterNearest
	}
	return FilterBilinear
}

// Legacy holds the fixed-function compositor's per-layer sampling state.
// Scale is destination over source size; Step is source pixels per
// destination pixel; Offset is the first source sample in pixels; Shift
// moves destination coordinates to the layer origin.
type Legacy struct {
	ScaleX, ScaleY   float64
	StepX, StepY     float64
	OffsetX, OffsetY float64
	ShiftX, ShiftY   float64

	Filter Filter

	// ClippedDst is the destination rectangle the layer writes, widened
	// eightfold for one-bit XOR cursors.
	ClippedDst layer.Rect

	ChromaUp, ChromaDown bool
}

// ResolveLegacy computes the fixed-function sampling state of l composed
// into target. l.ID is the layer's position in the admitted set.
func ResolveLegacy(l, target *layer.Layer) (Legacy, error) {
	if !l.Rotation.Valid() {
		return Legacy{}, fmt.Errorf("rotation %d: %w", l.Rotation, errs.InvalidRotation)
	}

	var g Legacy
	srcW, srcH := float64(l.Src.Width()), float64(l.Src.Height())
	dstW, dstH := float64(l.Dst.Width()), float64(l.Dst.Height())
	swap := l.Rotation.SwapsAxes()

	// Src is pre-rotation, Dst post-rotation.
	if swap {
		g.ScaleX, g.ScaleY = dstW/srcH, dstH/srcW
	} else {
		g.ScaleX, g.ScaleY = dstW/srcW, dstH/srcH
	}

	g.OffsetX, g.OffsetY = SamplerBias, SamplerBias
	diScaleY := 1.0
	if g.ScaleX == 1 && g.ScaleY == 1 && (l.IScaling || l.FieldWeaving) {
		// 1:1 interleaved scaling samples nearest; offsets stay put.
		diScaleY = 0.5
	} else {
		switch l.SampleType {
		case layer.InterleavedEvenFirstTopField, layer.InterleavedOddFirstTopField:
			diScaleY = 0.5
			g.OffsetY += 0.25
		case layer.SingleTopField:
			g.OffsetY += 0.25
		case layer.InterleavedEvenFirstBottomField, layer.InterleavedOddFirstBottomField:
			diScaleY = 0.5
			g.OffsetY -= 0.25
		case layer.SingleBottomField:
			g.OffsetY -= 0.25
		}
	}

	nonZero := func(v float64) float64 {
		if v > 0 {
			return v
		}
		return 1
	}
	if swap {
		g.StepX = srcW / nonZero(dstH)
		g.StepY = srcH * diScaleY / nonZero(dstW)
	} else {
		g.StepX = srcW / nonZero(dstW)
		g.StepY = srcH * diScaleY / nonZero(dstH)
	}

	g.OffsetX += float64(l.Src.Left)
	g.OffsetY += float64(l.Src.Top) * diScaleY

	g.ChromaUp, g.ChromaDown = chroma.SamplingNeeded(l.Primary, l.ID, l.Format, target.Format)

	g.Filter = FilterFor(l.Scaling)
	if g.Filter == FilterBilinear {
		g.ShiftX, g.ShiftY = LinearShift, LinearShift
	}

	tw, th := float64(target.Width()), float64(target.Height())
	left, top := float64(l.Dst.Left), float64(l.Dst.Top)
	switch l.Rotation {
	case layer.Identity:
		g.ShiftX -= left
		g.ShiftY -= top
	case layer.Rotate90:
		g.ShiftX -= top
		g.ShiftY -= tw - srcH*g.ScaleX - left
	case layer.Rotate180:
		g.ShiftX -= tw - srcW*g.ScaleX - left
		g.ShiftY -= th - srcH*g.ScaleY - top
	case layer.Rotate270:
		g.ShiftX -= th - srcW*g.ScaleY - top
		g.ShiftY -= left
	case layer.MirrorHorizontal:
		g.ShiftX -= tw - srcW*g.ScaleX - left
		g.ShiftY -= top
	case layer.MirrorVertical:
		g.ShiftX -= left
		g.ShiftY -= th - srcH*g.ScaleY - top
	case layer.Rotate90MirrorHorizontal:
		g.ShiftX -= top
		g.ShiftY -= left
	case layer.Rotate90MirrorVertical:
		g.ShiftX -= th - srcW*g.ScaleY - top
		g.ShiftY -= tw - srcH*g.ScaleX - left
	}

	g.ClippedDst = l.Dst
	if l.XorComposite {
		// Each cursor bit covers one output pixel.
		g.ClippedDst.Right = g.ClippedDst.Left + g.ClippedDst.Width()*8
	}
	return g, nil
}
