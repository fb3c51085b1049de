package params

import (
	"encoding/binary"
	"fmt"

	"github.com/gogpu/vpcomp/kernel"
	"github.com/gogpu/vpcomp/layer"
	"github.com/gogpu/vpcomp/surface"
)

// Arg is one filled kernel argument. Data aliases argument cache storage.
type Arg struct {
	Index uint32
	Name  string
	Kind  kernel.ArgKind
	Data  []byte
}

// Uint32 returns lane i of a scalar or vector argument.
func (a Arg) Uint32(i int) uint32 {
	return binary.LittleEndian.Uint32(a.Data[4*i:])
}

// Binding binds one kernel surface slot to a surface tag.
type Binding struct {
	Slot uint32
	Name string
	Tag  surface.Tag

	// Output marks the surface the kernel writes. Sub-plane bindings
	// follow the binding before them and are never marked.
	Output bool

	// VerticalStride doubles the row pitch so a single field is read.
	VerticalStride bool

	// CombineChannelY writes luma of both output planes through the first
	// binding.
	CombineChannelY bool
}

// Job is one kernel dispatch.
type Job struct {
	Kernel string

	// Layer is the input layer a per-layer conversion job reads, -1 for
	// jobs that run once per composition.
	Layer int

	Args     []Arg
	Surfaces []Binding

	LocalSize [3]uint32
	// Threads is the dispatch size in work groups.
	Threads [2]uint32
	// GlobalSize is set for kernels that take it as an argument.
	GlobalSize [3]uint32

	PerfTag PerfTag
}

// Arg returns the filled argument called name.
func (j *Job) Arg(name string) (Arg, bool) {
	for _, a := range j.Args {
		if a.Name == name {
			return a, true
		}
	}
	return Arg{}, false
}

// Surface returns the binding of the slot called name.
func (j *Job) Surface(name string) (Binding, bool) {
	for _, b := range j.Surfaces {
		if b.Name == name {
			return b, true
		}
	}
	return Binding{}, false
}

// PerfTag labels the main job for performance accounting.
type PerfTag uint8

const (
	// PerfTagNone marks conversion jobs.
	PerfTagNone PerfTag = iota
	// PerfTagFastPath is the fast-path kernel without rotation.
	PerfTagFastPath
	// PerfTagFastPathRotation is the fast-path kernel with a rotated layer.
	PerfTagFastPathRotation

	// perfTagPlain + n is the common kernel with n plain layers, n in
	// [0, MaxLayers].
	perfTagPlain
	// perfTagPrimary + n - 1 is the common kernel with n layers including
	// the primary stream.
	perfTagPrimary = perfTagPlain + layer.MaxLayers + 1
	// perfTagRotation + n - 1 is the common kernel with n layers and at
	// least one rotation.
	perfTagRotation = perfTagPrimary + layer.MaxLayers
	perfTagEnd      = perfTagRotation + layer.MaxLayers
)

// String returns the tag name.
func (t PerfTag) String() string {
	switch {
	case t == PerfTagNone:
		return "None"
	case t == PerfTagFastPath:
		return "FastPath"
	case t == PerfTagFastPathRotation:
		return "FastPathRotation"
	case t >= perfTagPlain && t < perfTagPrimary:
		return fmt.Sprintf("%dLayer", t-perfTagPlain)
	case t >= perfTagPrimary && t < perfTagRotation:
		return fmt.Sprintf("Primary%dLayer", t-perfTagPrimary+1)
	case t >= perfTagRotation && t < perfTagEnd:
		return fmt.Sprintf("Rotation%dLayer", t-perfTagRotation+1)
	default:
		return "Unknown"
	}
}

// SelectPerfTag returns the tag of a main job composing layers. Rotation
// takes precedence over the primary stream.
func SelectPerfTag(layers []layer.Layer, fastPath bool) PerfTag {
	rotation, primary := false, false
	for i := range layers {
		if layers[i].Primary {
			primary = true
		}
		if layers[i].Rotation != layer.Identity {
			rotation = true
		}
	}
	n := PerfTag(len(layers))
	switch {
	case fastPath && rotation:
		return PerfTagFastPathRotation
	case fastPath:
		return PerfTagFastPath
	case rotation:
		return perfTagRotation + n - 1
	case primary:
		return perfTagPrimary + n - 1
	default:
		return perfTagPlain + n
	}
}
