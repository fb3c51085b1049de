package sfc

import "github.com/gogpu/vpcomp/format"

// Pipe is the engine that feeds the scaler.
type Pipe uint8

const (
	// PipeVDBox feeds the scaler directly from the decoder.
	PipeVDBox Pipe = iota
	// PipeVEBox feeds the scaler from the video enhancement engine.
	PipeVEBox
)

// String returns the pipe name.
func (p Pipe) String() string {
	switch p {
	case PipeVDBox:
		return "VDBox"
	case PipeVEBox:
		return "VEBox"
	default:
		return "Unknown"
	}
}

// Codec is the decoder producing the scaler input.
type Codec uint8

const (
	CodecAVC Codec = iota
	CodecVC1
	CodecVP8
	CodecJPEG
	CodecHEVC
	CodecVP9
)

var codecNames = [...]string{"AVC", "VC1", "VP8", "JPEG", "HEVC", "VP9"}

// String returns the codec name.
func (c Codec) String() string {
	if int(c) < len(codecNames) {
		return codecNames[c]
	}
	return "Unknown"
}

// ChromaType is the component layout of a decoded JPEG picture.
type ChromaType uint8

const (
	JPEGYUV400 ChromaType = iota
	JPEGYUV420
	JPEGYUV422H2Y
	JPEGYUV422H4Y
	JPEGYUV422V2Y
	JPEGYUV422V4Y
	JPEGYUV411
	JPEGYUV444
	JPEGRGB
	JPEGBGR
)

var chromaTypeNames = [...]string{
	"YUV400", "YUV420", "YUV422H2Y", "YUV422H4Y", "YUV422V2Y",
	"YUV422V4Y", "YUV411", "YUV444", "RGB", "BGR",
}

// String returns the chroma type name.
func (c ChromaType) String() string {
	if int(c) < len(chromaTypeNames) {
		return chromaTypeNames[c]
	}
	return "Unknown"
}

// Subsampling is the input chroma subsampling code written to the scaler
// state. The values are the hardware encoding.
type Subsampling uint8

const (
	Subsampling400  Subsampling = 0
	Subsampling420  Subsampling = 1
	Subsampling422H Subsampling = 2
	Subsampling444  Subsampling = 4
	Subsampling411  Subsampling = 5
)

// subsamplingOf maps a color pack to its subsampling code.
func subsamplingOf(p format.ColorPack) (Subsampling, bool) {
	switch p {
	case format.Pack400:
		return Subsampling400, true
	case format.Pack411:
		return Subsampling411, true
	case format.Pack420:
		return Subsampling420, true
	case format.Pack422:
		return Subsampling422H, true
	case format.Pack444:
		return Subsampling444, true
	}
	return 0, false
}

// Ordering is the order in which the feeding engine delivers pixel blocks.
type Ordering uint8

const (
	OrderingVE4x8 Ordering = iota
	OrderingVE4x4
	OrderingVD16x16NoShift
	OrderingVD16x16Shift
	OrderingVD8x8JPEG
	OrderingVD16x16JPEG
	OrderingVD16x16VP8
)

var orderings = [...]struct {
	name string
	code uint32
}{
	OrderingVE4x8:          {"VE4x8", 0},
	OrderingVE4x4:          {"VE4x4", 1},
	OrderingVD16x16NoShift: {"VD16x16NoShift", 0},
	OrderingVD16x16Shift:   {"VD16x16Shift", 1},
	OrderingVD8x8JPEG:      {"VD8x8JPEG", 2},
	OrderingVD16x16JPEG:    {"VD16x16JPEG", 3},
	OrderingVD16x16VP8:     {"VD16x16VP8", 4},
}

// String returns the ordering name.
func (o Ordering) String() string {
	if int(o) < len(orderings) {
		return orderings[o].name
	}
	return "Unknown"
}

// Code returns the hardware encoding. Encodings of the two pipes overlap.
func (o Ordering) Code() uint32 {
	if int(o) < len(orderings) {
		return orderings[o].code
	}
	return 0
}

// BlockSize returns the edge of the block the ordering delivers, which is
// also the alignment a decoded input frame is padded to.
func (o Ordering) BlockSize() int {
	if o == OrderingVD8x8JPEG {
		return 8
	}
	return 16
}

// Phase is the state of a Builder.
type Phase uint8

const (
	Uninitialized Phase = iota
	Checked
	Initialized
	StateEmitted
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Uninitialized:
		return "Uninitialized"
	case Checked:
		return "Checked"
	case Initialized:
		return "Initialized"
	case StateEmitted:
		return "StateEmitted"
	default:
		return "Unknown"
	}
}
