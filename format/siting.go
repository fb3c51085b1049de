package format

import "strings"

// ChromaSiting is the declared position of chroma samples relative to
// luma samples. Horizontal and vertical bits combine; zero means the
// siting was not specified.
type ChromaSiting uint8

// Chroma siting bits.
const (
	SitingNone ChromaSiting = 0

	HorzLeft   ChromaSiting = 1 << 0
	HorzCenter ChromaSiting = 1 << 1
	HorzRight  ChromaSiting = 1 << 2
	VertTop    ChromaSiting = 1 << 4
	VertCenter ChromaSiting = 1 << 5
	VertBottom ChromaSiting = 1 << 6
)

// DefaultSiting is the siting assumed for 4:2:0 layouts when none is given.
const DefaultSiting = HorzLeft | VertCenter

// Has reports whether all bits of flag are set.
func (s ChromaSiting) Has(flag ChromaSiting) bool {
	return s&flag == flag
}

// String returns a "|"-joined list of the set bits.
func (s ChromaSiting) String() string {
	if s == SitingNone {
		return "None"
	}
	var parts []string
	for _, b := range []struct {
		bit  ChromaSiting
		name string
	}{
		{HorzLeft, "HorzLeft"},
		{HorzCenter, "HorzCenter"},
		{HorzRight, "HorzRight"},
		{VertTop, "VertTop"},
		{VertCenter, "VertCenter"},
		{VertBottom, "VertBottom"},
	} {
		if s&b.bit != 0 {
			parts = append(parts, b.name)
		}
	}
	return strings.Join(parts, "|")
}
