package layer

import "github.com/gogpu/vpcomp/format"

// DeinterlaceMode selects the deinterlacing algorithm.
type DeinterlaceMode uint8

const (
	// DeinterlaceBob line-doubles a single field.
	DeinterlaceBob DeinterlaceMode = iota
	// DeinterlaceAdvanced uses motion-adaptive deinterlacing.
	DeinterlaceAdvanced
)

// Deinterlace configures deinterlacing of a layer.
type Deinterlace struct {
	Enabled bool
	Mode    DeinterlaceMode
}

// Bob reports whether bob deinterlacing is active.
func (d Deinterlace) Bob() bool { return d.Enabled && d.Mode == DeinterlaceBob }

// LumaKey makes pixels whose luma falls in [Low, High] transparent.
// Low and High are 8-bit code values.
type LumaKey struct {
	Enabled bool
	Low     int
	High    int
}

// BlendMode selects how a layer is blended over the layers below it.
type BlendMode uint8

const (
	// BlendNone copies the layer opaquely.
	BlendNone BlendMode = iota
	// BlendSource uses per-pixel source alpha.
	BlendSource
	// BlendPartial uses per-pixel source alpha on premultiplied content.
	BlendPartial
	// BlendConstant applies a constant alpha.
	BlendConstant
	// BlendConstantSource combines constant alpha with source alpha.
	BlendConstantSource
	// BlendConstantPartial combines constant alpha with partial blending.
	BlendConstantPartial
	// BlendXorMono composites a monochrome cursor with XOR.
	BlendXorMono
)

// String returns the blend mode name.
func (m BlendMode) String() string {
	switch m {
	case BlendNone:
		return "None"
	case BlendSource:
		return "Source"
	case BlendPartial:
		return "Partial"
	case BlendConstant:
		return "Constant"
	case BlendConstantSource:
		return "ConstantSource"
	case BlendConstantPartial:
		return "ConstantPartial"
	case BlendXorMono:
		return "XorMono"
	default:
		return "Unknown"
	}
}

// UsesConstantAlpha reports whether the mode applies Blend.Alpha.
func (m BlendMode) UsesConstantAlpha() bool {
	return m == BlendConstant || m == BlendConstantSource || m == BlendConstantPartial
}

// Blend configures layer blending. Alpha is in [0, 1].
type Blend struct {
	Mode  BlendMode
	Alpha float64
}

// Procamp holds brightness/contrast/hue/saturation adjustment.
// Brightness is in code values, Hue in degrees.
type Procamp struct {
	Enabled    bool
	Brightness float64
	Contrast   float64
	Hue        float64
	Saturation float64
}

// DefaultProcamp returns the neutral adjustment.
func DefaultProcamp() Procamp {
	return Procamp{Contrast: 1, Saturation: 1}
}

// ColorFill paints the output area not covered by any layer.
type ColorFill struct {
	Enabled bool
	// Color is 0xAARRGGBB.
	Color uint32
	// ColorSpace is the space Color is expressed in.
	ColorSpace format.ColorSpace
}

// AlphaMode selects how the output alpha channel is produced.
type AlphaMode uint8

const (
	// AlphaNone writes a fixed alpha value.
	AlphaNone AlphaMode = iota
	// AlphaOpaque writes fully opaque alpha.
	AlphaOpaque
	// AlphaBackground writes the color-fill alpha.
	AlphaBackground
	// AlphaSourceStream copies alpha from the source layers.
	AlphaSourceStream
)

// String returns the alpha mode name.
func (m AlphaMode) String() string {
	switch m {
	case AlphaNone:
		return "None"
	case AlphaOpaque:
		return "Opaque"
	case AlphaBackground:
		return "Background"
	case AlphaSourceStream:
		return "SourceStream"
	default:
		return "Unknown"
	}
}

// AlphaOutput configures the output alpha channel.
type AlphaOutput struct {
	// Enabled turns on alpha calculation; when off alpha is written as 0.
	Enabled bool
	Mode    AlphaMode
	Alpha   float64
}
