package params

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/vpcomp/format"
	"github.com/gogpu/vpcomp/internal/chroma"
	"github.com/gogpu/vpcomp/internal/color"
	"github.com/gogpu/vpcomp/internal/errs"
	"github.com/gogpu/vpcomp/kernel"
	"github.com/gogpu/vpcomp/layer"
)

// ImageParam is the per-layer record of the compositing kernels.
type ImageParam struct {
	CSC           color.KernelMatrix
	InputChannels format.Channels

	// Sampling start and signed stride in normalized source coordinates.
	StartX, StartY   float32
	StrideX, StrideY float32

	// Dst is the layer placement in target pixels.
	Dst layer.Rect

	CommonShiftX, CommonShiftY float32
	ChromaShiftX, ChromaShiftY float32

	RotateIndices [2]uint32
	PlaneCount    uint32
	SamplerType   uint32

	// LumaLow and LumaHigh are normalized keying bounds, -1 when keying
	// is off.
	LumaLow, LumaHigh float32
	ConstAlpha        float32

	ChromaShift    bool
	IgnoreSrcAlpha bool
	IgnoreDstAlpha bool
}

// TargetParam is the output record of the compositing kernels.
type TargetParam struct {
	Channels   format.Channels
	ROI        layer.Rect
	Background [4]float32
	Siting     chroma.Weights

	PlaneCount       uint32
	FactorX, FactorY uint32
	ColorFill        bool

	Alpha float32

	// Aligned region of the fast-path kernel: start corner and size in
	// 2x2 blocks.
	AlignedX, AlignedY          uint32
	AlignedWidth, AlignedHeight uint32

	Combine [2]uint32
	// AlphaLayerIndex is 0 when the output alpha comes from the bottom
	// layer and 8 when Alpha is written.
	AlphaLayerIndex uint32
}

// FixedAlpha reports whether the kernel writes Alpha instead of the
// layer alpha.
func (t *TargetParam) FixedAlpha() bool { return t.AlphaLayerIndex != 0 }

// writer stores little-endian 32-bit lanes into a record buffer.
type writer struct {
	b   []byte
	off int
}

func (w *writer) u32(v uint32) {
	binary.LittleEndian.PutUint32(w.b[w.off:], v)
	w.off += 4
}

func (w *writer) f32(v float32) { w.u32(math.Float32bits(v)) }

func (w *writer) i32(v int) { w.u32(uint32(int32(v))) }

func (w *writer) flag(v bool) {
	if v {
		w.u32(1)
		return
	}
	w.u32(0)
}

func (w *writer) vec4f(v [4]float32) {
	for _, x := range v {
		w.f32(x)
	}
}

func (w *writer) vec4u(v [4]uint32) {
	for _, x := range v {
		w.u32(x)
	}
}

func (w *writer) pad(lanes int) {
	for range lanes {
		w.u32(0)
	}
}

func checkSize(name string, b []byte, want int) error {
	if len(b) != want {
		return fmt.Errorf("%s: %d bytes, want %d: %w", name, len(b), want, errs.ArgSizeMismatch)
	}
	return nil
}

// Encode writes p into b, which must be exactly kernel.ImageParamSize
// bytes long.
func (p *ImageParam) Encode(b []byte) error {
	if err := checkSize("image param", b, kernel.ImageParamSize); err != nil {
		return err
	}
	w := writer{b: b}
	w.vec4f(p.CSC.S0123)
	w.vec4f(p.CSC.S4567)
	w.vec4f(p.CSC.S89AB)
	w.vec4f(p.CSC.SCDEF)
	w.vec4u(p.InputChannels)

	w.vec4f([4]float32{p.StartX, p.StartY, p.StrideX, p.StrideY})

	w.i32(p.Dst.Left)
	w.i32(p.Dst.Top)
	w.i32(p.Dst.Right)
	w.i32(p.Dst.Bottom)

	w.vec4f([4]float32{p.CommonShiftX, p.CommonShiftY, p.ChromaShiftX, p.ChromaShiftY})
	w.vec4u([4]uint32{p.RotateIndices[0], p.RotateIndices[1], p.PlaneCount, p.SamplerType})

	w.f32(p.LumaLow)
	w.f32(p.LumaHigh)
	w.f32(p.ConstAlpha)
	w.pad(1)

	w.flag(p.ChromaShift)
	w.flag(p.IgnoreSrcAlpha)
	w.flag(p.IgnoreDstAlpha)
	w.pad(1)
	return nil
}

// Encode writes t into b, which must be exactly kernel.TargetParamSize
// bytes long.
func (t *TargetParam) Encode(b []byte) error {
	if err := checkSize("target param", b, kernel.TargetParamSize); err != nil {
		return err
	}
	w := writer{b: b}
	w.vec4u(t.Channels)
	w.vec4u([4]uint32{
		uint32(max(0, t.ROI.Left)),
		uint32(max(0, t.ROI.Top)),
		uint32(max(0, t.ROI.Right)),
		uint32(max(0, t.ROI.Bottom)),
	})
	w.vec4f(t.Background)
	w.vec4f(t.Siting)

	w.u32(t.PlaneCount)
	w.u32(t.FactorX)
	w.u32(t.FactorY)
	w.flag(t.ColorFill)

	w.f32(t.Alpha)
	w.pad(3)

	w.vec4u([4]uint32{t.AlignedX, t.AlignedY, t.AlignedWidth, t.AlignedHeight})

	w.u32(t.Combine[0])
	w.u32(t.Combine[1])
	w.flag(t.FixedAlpha())
	w.pad(1)
	return nil
}
