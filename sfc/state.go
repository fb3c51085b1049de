package sfc

import (
	"github.com/gogpu/vpcomp/format"
	"github.com/gogpu/vpcomp/layer"
)

// Region is a scaler rectangle in pixels.
type Region struct {
	X, Y          int
	Width, Height int
}

// Coef is a bilinear filter position in eighths of a pixel.
type Coef uint8

// Filter positions.
const (
	Coef0Over8 Coef = 0
	Coef4Over8 Coef = 4
	Coef8Over8 Coef = 8
)

// AVSState is the adaptive scaler state. It is programmed only when the
// conversion scales.
type AVSState struct {
	// HorizontalSiting and VerticalSiting place input chroma samples.
	HorizontalSiting Coef
	VerticalSiting   Coef

	ChromaUpsampling bool

	// BypassAdaptiveFilter disables the adaptive filter; it is only
	// useful when upscaling.
	BypassAdaptiveFilter bool
}

// CSCState is the color conversion state. It is programmed only when the
// output is RGB.
type CSCState struct {
	// Matrix is row major: R, G, B rows over Y, U, V columns.
	Matrix    [9]float32
	InOffset  [3]float32
	OutOffset [3]float32

	// IEF reports image enhancement; the scaler path never enables it.
	IEF bool
}

// State is the scaler state of one conversion, ready for the command
// encoder.
type State struct {
	Pipe     Pipe
	Codec    Codec
	Ordering Ordering

	InputFormat  format.Format
	OutputFormat format.Format
	Subsampling  Subsampling

	// InputFrame is the padded input frame.
	InputFrame Region
	// OutputFrame is the output surface aligned to the output format.
	OutputFrame Region

	// SourceRegion shrinks inward and ScaledRegion grows outward to the
	// output alignment.
	SourceRegion Region
	ScaledRegion Region

	ScaleX, ScaleY float32
	Scaling        bool

	// ChromaDownsampleH and ChromaDownsampleV place output chroma samples.
	ChromaDownsampleH Coef
	ChromaDownsampleV Coef

	AVS AVSState

	CSCEnabled bool
	CSC        CSCState
	RGBASwap   bool

	Rotation layer.Rotation
	Alpha    float32

	// MMC is always off: downscaled and converted outputs are written
	// uncompressed.
	MMC bool

	// OutputToMemory reports that the scaler writes the output surface
	// itself instead of returning pixels to the feeding engine.
	OutputToMemory bool

	// AVSLineBufferSize is the byte size of the AVS line buffer.
	AVSLineBufferSize int
}

// BT.601 limited range to RGB.
var bt601ToRGB = [9]float32{
	1.16438353, 0, 1.59602666,
	1.16438353, -0.391761959, -0.812967300,
	1.16438353, 2.01723218, 0,
}

var identity = [9]float32{
	1, 0, 0,
	0, 1, 0,
	0, 0, 1,
}

func (b *Builder) build() State {
	req, c := &b.req, &b.check
	in, out := req.Input, req.Output

	st := State{
		Pipe:         req.Pipe,
		Codec:        req.Codec,
		Ordering:     c.ordering,
		InputFormat:  in.Format,
		OutputFormat: out.Format,
		Subsampling:  c.subsampling,
		InputFrame:   Region{Width: c.inW, Height: c.inH},
		OutputFrame: Region{
			Width:  ceilAlign(out.Width, c.alignW),
			Height: ceilAlign(out.Height, c.alignH),
		},
		SourceRegion: Region{
			X:      ceilAlign(c.src.Left, c.alignW),
			Y:      ceilAlign(c.src.Top, c.alignH),
			Width:  floorAlign(c.src.Width(), c.alignW),
			Height: floorAlign(c.src.Height(), c.alignH),
		},
		ScaledRegion: Region{
			X:      floorAlign(c.dst.Left, c.alignW),
			Y:      floorAlign(c.dst.Top, c.alignH),
			Width:  ceilAlign(c.dst.Width(), c.alignW),
			Height: ceilAlign(c.dst.Height(), c.alignH),
		},
		ScaleX:         c.scaleX,
		ScaleY:         c.scaleY,
		Scaling:        c.scaleX != 1 || c.scaleY != 1,
		Rotation:       c.rotation,
		Alpha:          1,
		OutputToMemory: req.Pipe != PipeVEBox && req.Codec != CodecJPEG,
	}

	st.ChromaDownsampleH, st.ChromaDownsampleV = sitingCoefs(req.Siting)
	if st.Scaling {
		siting := req.Siting
		if siting == format.SitingNone {
			siting = format.DefaultSiting
		}
		st.AVS.HorizontalSiting, st.AVS.VerticalSiting = sitingCoefs(siting)
		st.AVS.ChromaUpsampling = true
		st.AVS.BypassAdaptiveFilter = c.scaleX <= 1 && c.scaleY <= 1
	}

	st.CSCEnabled, st.CSC = cscFor(req)
	st.RGBASwap = st.CSCEnabled

	if req.Pipe == PipeVEBox {
		st.AVSLineBufferSize = (c.inH + 7) / 8 * 5 * cachelineSize
	} else {
		st.AVSLineBufferSize = (c.inW + 7) / 8 * 3 * cachelineSize
	}
	return st
}

// sitingCoefs maps a chroma siting to horizontal and vertical filter
// positions.
func sitingCoefs(s format.ChromaSiting) (h, v Coef) {
	switch {
	case s&format.HorzCenter != 0:
		h = Coef4Over8
	case s&format.HorzRight != 0:
		h = Coef8Over8
	}
	switch {
	case s&format.VertCenter != 0:
		v = Coef4Over8
	case s&format.VertBottom != 0:
		v = Coef8Over8
	}
	return h, v
}

// cscFor returns the color conversion of an RGB output. Decoded BGR
// JPEG pictures are written without conversion; RGB pictures pass through
// the identity.
func cscFor(req *Request) (bool, CSCState) {
	if req.Output.Format != format.A8R8G8B8 {
		return false, CSCState{}
	}
	jpeg := req.Codec == CodecJPEG
	if jpeg && req.JPEG.ChromaType == JPEGBGR {
		return false, CSCState{}
	}
	if jpeg && req.JPEG.ChromaType == JPEGRGB {
		return true, CSCState{Matrix: identity}
	}

	s := CSCState{
		Matrix:   bt601ToRGB,
		InOffset: [3]float32{-16, -128, -128},
	}
	if req.Input.Format == format.P400 {
		s.Matrix = [9]float32{}
		for _, i := range []int{0, 3, 6} {
			s.Matrix[i] = bt601ToRGB[i]
		}
	}
	return true, s
}
