package format

// ColorSpace identifies the color encoding of a surface.
type ColorSpace uint8

// Color spaces.
const (
	ColorSpaceNone ColorSpace = iota
	SRGB                      // full-range RGB
	STRGB                     // studio-range (16-235) RGB
	BT601
	BT601FullRange
	BT709
	BT709FullRange
	XVYCC601
	XVYCC709
	BT601Gray
	BT601GrayFullRange
	BT2020
	BT2020FullRange
	BT2020RGB   // full-range BT.2020 RGB
	BT2020STRGB // studio-range BT.2020 RGB

	colorSpaceCount
)

var colorSpaceNames = [colorSpaceCount]string{
	ColorSpaceNone:     "None",
	SRGB:               "sRGB",
	STRGB:              "stRGB",
	BT601:              "BT601",
	BT601FullRange:     "BT601_FullRange",
	BT709:              "BT709",
	BT709FullRange:     "BT709_FullRange",
	XVYCC601:           "xvYCC601",
	XVYCC709:           "xvYCC709",
	BT601Gray:          "BT601Gray",
	BT601GrayFullRange: "BT601Gray_FullRange",
	BT2020:             "BT2020",
	BT2020FullRange:    "BT2020_FullRange",
	BT2020RGB:          "BT2020_RGB",
	BT2020STRGB:        "BT2020_stRGB",
}

// String returns the color space name.
func (cs ColorSpace) String() string {
	if cs >= colorSpaceCount {
		return "Unknown"
	}
	return colorSpaceNames[cs]
}

// Valid reports whether cs names a concrete color space.
func (cs ColorSpace) Valid() bool {
	return cs > ColorSpaceNone && cs < colorSpaceCount
}

// IsRGB reports whether cs is an RGB color space.
func (cs ColorSpace) IsRGB() bool {
	switch cs {
	case SRGB, STRGB, BT2020RGB, BT2020STRGB:
		return true
	}
	return false
}

// IsBT709RGB reports whether cs is one of the BT.709-primaries RGB spaces.
func (cs ColorSpace) IsBT709RGB() bool {
	return cs == SRGB || cs == STRGB
}

// IsBT2020RGB reports whether cs is one of the BT.2020 RGB spaces.
func (cs ColorSpace) IsBT2020RGB() bool {
	return cs == BT2020RGB || cs == BT2020STRGB
}

// IsBT2020 reports whether cs uses BT.2020 primaries.
func (cs ColorSpace) IsBT2020() bool {
	switch cs {
	case BT2020, BT2020FullRange, BT2020RGB, BT2020STRGB:
		return true
	}
	return false
}

// FullRange reports whether cs uses the full [0, 255] code range.
func (cs ColorSpace) FullRange() bool {
	switch cs {
	case SRGB, BT2020RGB, BT601FullRange, BT709FullRange, BT601GrayFullRange, BT2020FullRange:
		return true
	}
	return false
}

// Gray reports whether cs carries luma only.
func (cs ColorSpace) Gray() bool {
	return cs == BT601Gray || cs == BT601GrayFullRange
}

// DefaultColorSpace returns the color space assumed for a format when the
// caller does not declare one.
func DefaultColorSpace(f Format) ColorSpace {
	if f.IsRGB() {
		return SRGB
	}
	if f == P400 {
		return BT601Gray
	}
	return BT709
}
