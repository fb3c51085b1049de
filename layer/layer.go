package layer

import (
	"fmt"

	"github.com/gogpu/vpcomp/format"
	"github.com/gogpu/vpcomp/internal/errs"
	"github.com/gogpu/vpcomp/surface"
)

// MaxLayers is the number of input layers one composition pass handles.
const MaxLayers = 8

// Spec is the caller's description of one input layer or the output.
// Nil feature blocks mean the feature is absent.
type Spec struct {
	// Surface is the tag the surface provider resolves.
	Surface surface.Tag

	// ColorSpace defaults to the format's natural space when unset.
	ColorSpace format.ColorSpace
	Siting     format.ChromaSiting

	// Src is the crop rectangle in source pixels, Dst the placement in
	// target pixels. MaxSrc bounds the readable source region and
	// defaults to Src.
	Src, Dst, MaxSrc Rect

	Rotation          Rotation
	Scaling           ScalingMode
	SampleType        SampleType
	InterlacedScaling InterlacedScaling

	Deinterlace *Deinterlace
	LumaKey     *LumaKey
	Blend       *Blend
	Procamp     *Procamp

	// PaletteID selects a palette for palettized formats, -1 for none.
	PaletteID *int
}

// Request is one composition request: ordered inputs and one output.
type Request struct {
	Inputs    []Spec
	Output    Spec
	ColorFill *ColorFill
	Alpha     *AlphaOutput
}

// Layer is the normalized, self-contained description of one input or
// the output. Every feature block holds its default when absent from the
// Spec.
type Layer struct {
	// ID is the position within the admitted set; OriginID is the
	// position within the request and survives admission.
	ID       int
	OriginID int

	Tag     surface.Tag
	Surface *surface.Surface
	Format  format.Format

	// Primary marks the main video stream, the first input. Only the
	// primary layer takes the siting-aware chroma paths.
	Primary bool

	ColorSpace format.ColorSpace
	Siting     format.ChromaSiting

	Src, Dst, MaxSrc Rect

	Rotation          Rotation
	Scaling           ScalingMode
	SampleType        SampleType
	InterlacedScaling InterlacedScaling

	Deinterlace Deinterlace
	LumaKey     LumaKey
	Blend       Blend
	Procamp     Procamp

	PaletteID int

	// IScaling is set when interleaved content is scaled as a frame.
	IScaling bool
	// FieldWeaving is set when two fields are woven into a frame.
	FieldWeaving bool
	// XorComposite is set for monochrome XOR cursors.
	XorComposite bool

	// Intermediate is the packed surface used in place of a format the
	// compositing kernels cannot access directly.
	Intermediate format.Intermediate

	QueryVariance bool
}

// Width returns the surface width.
func (l *Layer) Width() int { return l.Surface.Width }

// Height returns the surface height.
func (l *Layer) Height() int { return l.Surface.Height }

// Progressive reports whether the layer is a progressive frame.
func (l *Layer) Progressive() bool { return l.SampleType == Progressive }

// KernelFormat returns the format the compositing kernel reads or writes:
// the intermediate format when one is needed, the surface format
// otherwise.
func (l *Layer) KernelFormat() format.Format {
	if l.Intermediate.Needed() {
		return l.Intermediate.Format
	}
	return l.Format
}

// DefaultScaling returns the scaling mode applied to layers that do not
// request one. Without forceBilinear the default is nearest. With it, the
// first input requesting nearest or bilinear decides, and a later input
// requesting the other one is rejected.
func DefaultScaling(req *Request, forceBilinear bool) (ScalingMode, error) {
	mode := ScalingNearest
	if !forceBilinear {
		return mode, nil
	}

	inited := false
	for i := range req.Inputs {
		s := req.Inputs[i].Scaling
		if s != ScalingNearest && s != ScalingBilinear {
			continue
		}
		if !inited {
			mode = s
			inited = true
			continue
		}
		if s != mode {
			return mode, fmt.Errorf("layer %d: scaling %s conflicts with %s: %w", i, s, mode, errs.InvalidParameter)
		}
	}
	return mode, nil
}

// Build resolves every spec of req against p and returns the normalized
// inputs and output. A tag p cannot resolve fails with an error matching
// the missing-surface sentinel.
func Build(req *Request, p surface.Provider, defaultScaling ScalingMode) ([]Layer, Layer, error) {
	inputs := make([]Layer, 0, len(req.Inputs))
	for i := range req.Inputs {
		l, err := build(&req.Inputs[i], p, true, i, defaultScaling)
		if err != nil {
			return nil, Layer{}, fmt.Errorf("input %d: %w", i, err)
		}
		inputs = append(inputs, l)
	}

	out, err := build(&req.Output, p, false, 0, defaultScaling)
	if err != nil {
		return nil, Layer{}, fmt.Errorf("output: %w", err)
	}
	return inputs, out, nil
}

func build(spec *Spec, p surface.Provider, isInput bool, index int, defaultScaling ScalingMode) (Layer, error) {
	surf, err := surface.Require(p, spec.Surface)
	if err != nil {
		return Layer{}, err
	}

	l := Layer{
		ID:                index,
		OriginID:          index,
		Tag:               spec.Surface,
		Surface:           surf,
		Format:            surf.Format,
		Primary:           isInput && index == 0,
		ColorSpace:        spec.ColorSpace,
		Siting:            spec.Siting,
		Src:               spec.Src,
		Dst:               spec.Dst,
		MaxSrc:            spec.MaxSrc,
		Rotation:          spec.Rotation,
		Scaling:           spec.Scaling,
		SampleType:        spec.SampleType,
		InterlacedScaling: spec.InterlacedScaling,
		Procamp:           DefaultProcamp(),
		Blend:             Blend{Mode: BlendNone, Alpha: 1},
		PaletteID:         -1,
		QueryVariance:     surf.QueryVariance,
	}

	if !l.ColorSpace.Valid() {
		l.ColorSpace = format.DefaultColorSpace(l.Format)
	}
	if l.Src == (Rect{}) {
		l.Src = R(0, 0, surf.Width, surf.Height)
	}
	if l.Dst == (Rect{}) {
		l.Dst = l.Src
	}
	if l.MaxSrc == (Rect{}) {
		l.MaxSrc = l.Src
	}
	if l.Scaling == ScalingUnset {
		l.Scaling = defaultScaling
	}

	if spec.Deinterlace != nil {
		l.Deinterlace = *spec.Deinterlace
	}
	if spec.LumaKey != nil {
		l.LumaKey = *spec.LumaKey
	}
	if spec.Blend != nil {
		l.Blend = *spec.Blend
	}
	if spec.Procamp != nil {
		l.Procamp = *spec.Procamp
	}
	if spec.PaletteID != nil {
		l.PaletteID = *spec.PaletteID
	}

	l.IScaling = l.InterlacedScaling == InterleavedToInterleaved
	l.FieldWeaving = l.InterlacedScaling == FieldToInterleaved
	l.XorComposite = l.Blend.Mode == BlendXorMono
	l.Intermediate = format.IntermediateFor(l.Format, isInput)
	return l, nil
}
