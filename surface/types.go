// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import "strconv"

// Kind is the role a surface plays in a composition.
type Kind uint8

const (
	// KindInput is an input layer surface.
	KindInput Kind = iota

	// KindOutput is an output target surface.
	KindOutput

	// KindIntermediateInput is the packed copy of a planar input the
	// compositor reads in place of the original.
	KindIntermediateInput

	// KindIntermediateOutput is the packed surface the compositor writes
	// before it is unpacked into a planar target.
	KindIntermediateOutput

	// KindSeparateSecondPlane is the split chroma plane of an intermediate
	// input for 4:2:2 and 4:1:1 planar layouts.
	KindSeparateSecondPlane

	// KindSubPlane binds an additional plane of the surface bound at the
	// preceding index of the same kernel.
	KindSubPlane

	// KindPalette is a palette lookup table used by the fixed-function path.
	KindPalette

	// KindInvalid marks an unused binding slot.
	KindInvalid
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInput:
		return "Input"
	case KindOutput:
		return "Output"
	case KindIntermediateInput:
		return "IntermediateInput"
	case KindIntermediateOutput:
		return "IntermediateOutput"
	case KindSeparateSecondPlane:
		return "SeparateSecondPlane"
	case KindSubPlane:
		return "SubPlane"
	case KindPalette:
		return "Palette"
	case KindInvalid:
		return "Invalid"
	default:
		return "Unknown"
	}
}

// Tag addresses one surface of a composition.
type Tag struct {
	Kind  Kind
	Index int
}

// Input returns the tag of input layer i.
func Input(i int) Tag { return Tag{Kind: KindInput, Index: i} }

// Output returns the tag of output target i.
func Output(i int) Tag { return Tag{Kind: KindOutput, Index: i} }

// IntermediateInput returns the tag of the intermediate copy of input i.
func IntermediateInput(i int) Tag { return Tag{Kind: KindIntermediateInput, Index: i} }

// IntermediateOutput returns the tag of the intermediate output surface.
func IntermediateOutput() Tag { return Tag{Kind: KindIntermediateOutput} }

// SeparateSecondPlane returns the tag of the split chroma plane of input i.
func SeparateSecondPlane(i int) Tag { return Tag{Kind: KindSeparateSecondPlane, Index: i} }

// SubPlane returns the sub-plane tag.
func SubPlane() Tag { return Tag{Kind: KindSubPlane} }

// Palette returns the tag of palette i.
func Palette(i int) Tag { return Tag{Kind: KindPalette, Index: i} }

// Unbound returns the tag of an unused binding slot.
func Unbound() Tag { return Tag{Kind: KindInvalid} }

// IsBound reports whether t refers to an actual surface slot.
func (t Tag) IsBound() bool { return t.Kind != KindInvalid }

// String returns the tag as Kind or Kind[index].
func (t Tag) String() string {
	switch t.Kind {
	case KindIntermediateOutput, KindSubPlane, KindInvalid:
		return t.Kind.String()
	}
	return t.Kind.String() + "[" + strconv.Itoa(t.Index) + "]"
}
