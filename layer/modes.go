package layer

// Rotation is one of the eight canonical rotate/mirror transforms.
type Rotation uint8

const (
	// Identity leaves the layer unrotated.
	Identity Rotation = iota
	// Rotate90 rotates clockwise by 90 degrees.
	Rotate90
	// Rotate180 rotates by 180 degrees.
	Rotate180
	// Rotate270 rotates clockwise by 270 degrees.
	Rotate270
	// MirrorHorizontal flips left to right.
	MirrorHorizontal
	// MirrorVertical flips top to bottom.
	MirrorVertical
	// Rotate90MirrorVertical rotates by 90 degrees, then flips vertically.
	Rotate90MirrorVertical
	// Rotate90MirrorHorizontal rotates by 90 degrees, then flips horizontally.
	Rotate90MirrorHorizontal

	rotationCount
)

// String returns the rotation name.
func (r Rotation) String() string {
	switch r {
	case Identity:
		return "Identity"
	case Rotate90:
		return "Rotate90"
	case Rotate180:
		return "Rotate180"
	case Rotate270:
		return "Rotate270"
	case MirrorHorizontal:
		return "MirrorHorizontal"
	case MirrorVertical:
		return "MirrorVertical"
	case Rotate90MirrorVertical:
		return "Rotate90MirrorVertical"
	case Rotate90MirrorHorizontal:
		return "Rotate90MirrorHorizontal"
	default:
		return "Unknown"
	}
}

// Valid reports whether r is one of the eight canonical values.
func (r Rotation) Valid() bool { return r < rotationCount }

// SwapsAxes reports whether r exchanges the horizontal and vertical axes.
func (r Rotation) SwapsAxes() bool {
	switch r {
	case Rotate90, Rotate270, Rotate90MirrorHorizontal, Rotate90MirrorVertical:
		return true
	}
	return false
}

// Rotations returns the eight canonical rotations in declaration order.
func Rotations() []Rotation {
	out := make([]Rotation, 0, rotationCount)
	for r := Identity; r < rotationCount; r++ {
		out = append(out, r)
	}
	return out
}

// ScalingMode selects the sampling filter for a layer.
type ScalingMode uint8

const (
	// ScalingUnset means the layer did not request a filter; the request
	// default applies.
	ScalingUnset ScalingMode = iota
	// ScalingNearest point-samples the source.
	ScalingNearest
	// ScalingBilinear filters with a 2x2 linear kernel.
	ScalingBilinear
	// ScalingAVS uses the adaptive polyphase scaler of the fixed-function
	// path.
	ScalingAVS
)

// String returns the scaling mode name.
func (m ScalingMode) String() string {
	switch m {
	case ScalingUnset:
		return "Unset"
	case ScalingNearest:
		return "Nearest"
	case ScalingBilinear:
		return "Bilinear"
	case ScalingAVS:
		return "AVS"
	default:
		return "Unknown"
	}
}

// SampleType describes how the source frame is scanned.
type SampleType uint8

const (
	// Progressive is a full progressive frame.
	Progressive SampleType = iota
	// SingleTopField is a single top field stored alone.
	SingleTopField
	// SingleBottomField is a single bottom field stored alone.
	SingleBottomField
	// InterleavedEvenFirstTopField reads the top field of an interleaved
	// frame whose even lines come first.
	InterleavedEvenFirstTopField
	// InterleavedEvenFirstBottomField reads the bottom field of an
	// interleaved frame whose even lines come first.
	InterleavedEvenFirstBottomField
	// InterleavedOddFirstTopField reads the top field of an interleaved
	// frame whose odd lines come first.
	InterleavedOddFirstTopField
	// InterleavedOddFirstBottomField reads the bottom field of an
	// interleaved frame whose odd lines come first.
	InterleavedOddFirstBottomField
)

// String returns the sample type name.
func (s SampleType) String() string {
	switch s {
	case Progressive:
		return "Progressive"
	case SingleTopField:
		return "SingleTopField"
	case SingleBottomField:
		return "SingleBottomField"
	case InterleavedEvenFirstTopField:
		return "InterleavedEvenFirstTopField"
	case InterleavedEvenFirstBottomField:
		return "InterleavedEvenFirstBottomField"
	case InterleavedOddFirstTopField:
		return "InterleavedOddFirstTopField"
	case InterleavedOddFirstBottomField:
		return "InterleavedOddFirstBottomField"
	default:
		return "Unknown"
	}
}

// Interleaved reports whether both fields share one surface.
func (s SampleType) Interleaved() bool {
	return s >= InterleavedEvenFirstTopField && s <= InterleavedOddFirstBottomField
}

// TopField reports whether the top field is sampled.
func (s SampleType) TopField() bool {
	return s == SingleTopField || s == InterleavedEvenFirstTopField || s == InterleavedOddFirstTopField
}

// BottomField reports whether the bottom field is sampled.
func (s SampleType) BottomField() bool {
	return s == SingleBottomField || s == InterleavedEvenFirstBottomField || s == InterleavedOddFirstBottomField
}

// InterlacedScaling describes how interlaced content is scaled.
type InterlacedScaling uint8

const (
	// InterlacedScalingNone scales each field on its own.
	InterlacedScalingNone InterlacedScaling = iota
	// InterleavedToInterleaved scales an interleaved frame as a whole.
	InterleavedToInterleaved
	// FieldToInterleaved weaves two fields into an interleaved output.
	FieldToInterleaved
	// InterleavedToField splits an interleaved frame into fields.
	InterleavedToField
)

// String returns the interlaced scaling name.
func (s InterlacedScaling) String() string {
	switch s {
	case InterlacedScalingNone:
		return "None"
	case InterleavedToInterleaved:
		return "InterleavedToInterleaved"
	case FieldToInterleaved:
		return "FieldToInterleaved"
	case InterleavedToField:
		return "InterleavedToField"
	default:
		return "Unknown"
	}
}
