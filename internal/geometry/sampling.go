// Package geometry maps layer rectangles, rotation and scaling mode to the
// sampling parameters of the compositing kernels and of the fixed-function
// compositor.
package geometry

import (
	"fmt"

	"github.com/gogpu/vpcomp/format"
	"github.com/gogpu/vpcomp/internal/chroma"
	"github.com/gogpu/vpcomp/internal/errs"
	"github.com/gogpu/vpcomp/layer"
)

const (
	// SamplerBias nudges nearest sampling off texel edges.
	SamplerBias = 0.015625
	// LinearShift moves bilinear sampling to texel centers.
	LinearShift = 0.5
)

// InterlaceSafe reports whether l may be read in field mode. Field access
// needs the chroma plane offset of NV12 to be a multiple of 4 rows; other
// formats are always safe.
func InterlaceSafe(l *layer.Layer) bool {
	h := min(l.Surface.Height, l.MaxSrc.Bottom)
	return h%4 == 0 || l.Format != format.NV12
}

// ScalingNeeded reports whether the destination size differs from the
// source size. Dst is post-rotation, so axis-swapping rotations compare
// crossed dimensions.
func ScalingNeeded(l *layer.Layer) bool {
	sw, sh := l.Src.Width(), l.Src.Height()
	if l.Rotation.SwapsAxes() {
		sw, sh = sh, sw
	}
	return l.Dst.Width() != sw || l.Dst.Height() != sh
}

// SamplerMode picks the 3D sampler filter for l at admission position
// layerIndex when composing into out. Nearest is used only when nothing is
// scaled, no chroma resampling is needed and the layer is progressive or
// scaled as interleaved frames or woven fields.
func SamplerMode(l *layer.Layer, layerIndex int, out format.Format) layer.ScalingMode {
	up, down := chroma.SamplingNeeded(l.Primary, layerIndex, l.Format, out)
	if !ScalingNeeded(l) && !up && !down &&
		(l.Progressive() || l.IScaling || l.FieldWeaving) {
		return layer.ScalingNearest
	}
	return layer.ScalingBilinear
}

// Sampler types written to the kernel records.
const (
	SamplerNearest  uint8 = 0
	SamplerBilinear uint8 = 1
)

// Sampling is the compute-kernel view of a layer: where to start reading
// in normalized source coordinates and how far to step per target pixel.
type Sampling struct {
	SamplerType uint8

	// CommonShiftX and CommonShiftY offset every sample in normalized
	// coordinates.
	CommonShiftX, CommonShiftY float64

	// Target is the destination rectangle in target pixels.
	Target layer.Rect

	// StartX and StartY locate the first sample. StrideX and StrideY are
	// signed steps per target pixel.
	StartX, StartY   float64
	StrideX, StrideY float64

	// RotateIndices selects which target axis drives the source X and Y
	// coordinates: {0, 1} normally, {1, 0} for axis-swapping rotations.
	RotateIndices [2]uint32

	// InputWidth and InputHeight are the readable source extent used for
	// normalization.
	InputWidth, InputHeight int
}

// InputExtent returns the readable source extent of l: the surface size
// clipped by the right and bottom edges of the source rectangle.
func InputExtent(l *layer.Layer) (w, h int) {
	return min(l.Surface.Width, l.Src.Right), min(l.Surface.Height, l.Src.Bottom)
}

// ResolveSampling computes the compute-kernel sampling parameters of l.
// Only nearest and bilinear scaling are valid here; anything else fails
// with errs.InvalidParameter, as does an empty source extent or
// destination. Rotations outside the canonical set fail with
// errs.InvalidRotation.
func ResolveSampling(l *layer.Layer) (Sampling, error) {
	inW, inH := InputExtent(l)
	if inW <= 0 || inH <= 0 {
		return Sampling{}, fmt.Errorf("empty source extent %dx%d: %w", inW, inH, errs.InvalidParameter)
	}
	if l.Dst.Width() <= 0 || l.Dst.Height() <= 0 {
		return Sampling{}, fmt.Errorf("empty destination %v: %w", l.Dst, errs.InvalidParameter)
	}
	s := Sampling{Target: l.Dst, InputWidth: inW, InputHeight: inH}

	switch l.Scaling {
	case layer.ScalingBilinear:
		s.CommonShiftX = LinearShift / float64(inW)
		s.CommonShiftY = LinearShift / float64(inH)
		s.SamplerType = SamplerBilinear
	case layer.ScalingNearest:
		s.CommonShiftX = SamplerBias / float64(inW)
		s.CommonShiftY = SamplerBias / float64(inH)
		s.SamplerType = SamplerNearest
	default:
		return Sampling{}, fmt.Errorf("scaling mode %s: %w", l.Scaling, errs.InvalidParameter)
	}

	dstW, dstH := float64(l.Dst.Width()), float64(l.Dst.Height())
	srcW, srcH := float64(l.Src.Width()), float64(l.Src.Height())

	var strideX, strideY float64
	if l.Rotation.SwapsAxes() {
		strideX = srcW / dstH / float64(inW)
		strideY = srcH / dstW / float64(inH)
	} else {
		strideX = srcW / dstW / float64(inW)
		strideY = srcH / dstH / float64(inH)
	}

	left := float64(l.Src.Left) / float64(inW)
	right := float64(l.Src.Right-1) / float64(inW)
	top := float64(l.Src.Top) / float64(inH)
	bottom := float64(l.Src.Bottom-1) / float64(inH)

	if err := rotate(&s, l.Rotation, strideX, strideY, left, right, top, bottom); err != nil {
		return Sampling{}, err
	}
	return s, nil
}

// rotate fills the start point, signed strides and axis selection for r.
func rotate(s *Sampling, r layer.Rotation, strideX, strideY, left, right, top, bottom float64) error {
	type corner struct {
		swap          bool
		right, bottom bool
		negX, negY    bool
	}
	var c corner
	switch r {
	case layer.Identity:
		c = corner{}
	case layer.Rotate90:
		c = corner{swap: true, bottom: true, negY: true}
	case layer.Rotate180:
		c = corner{right: true, bottom: true, negX: true, negY: true}
	case layer.Rotate270:
		c = corner{swap: true, right: true, negX: true}
	case layer.MirrorHorizontal:
		c = corner{right: true, negX: true}
	case layer.MirrorVertical:
		c = corner{bottom: true, negY: true}
	case layer.Rotate90MirrorVertical:
		c = corner{swap: true, right: true, bottom: true, negX: true, negY: true}
	case layer.Rotate90MirrorHorizontal:
		c = corner{swap: true}
	default:
		return fmt.Errorf("rotation %d: %w", r, errs.InvalidRotation)
	}

	s.RotateIndices = [2]uint32{0, 1}
	if c.swap {
		s.RotateIndices = [2]uint32{1, 0}
	}
	s.StartX, s.StartY = left, top
	if c.right {
		s.StartX = right
	}
	if c.bottom {
		s.StartY = bottom
	}
	s.StrideX, s.StrideY = strideX, strideY
	if c.negX {
		s.StrideX = -strideX
	}
	if c.negY {
		s.StrideY = -strideY
	}
	return nil
}
