// Package kernel describes the compute kernels used by the compositor:
// their argument slots, bound surfaces and local work size.
//
// The parameter builders never hardcode argument offsets. They walk the
// argument list a Provider returns and fill each slot by name, so a kernel
// revision may add or reorder arguments without touching the builders.
//
// Two providers ship with the package: WGSLProvider reflects the embedded
// WGSL sources through naga, and Static serves a precomputed table of the
// same data for builds that do not want the shader compiler at runtime.
package kernel

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/vpcomp/internal/errs"
)

// Kernel names.
const (
	Common      = "fc_common"
	FastExpress = "fc_fast_express"
	Read420PL3  = "fc_420pl3_input"
	Write420PL3 = "fc_420pl3_output"
	Read422HV   = "fc_422hv_input"
	Read444PL3  = "fc_444pl3_input"
	Write444PL3 = "fc_444pl3_output"
)

// Names returns every kernel name in a stable order.
func Names() []string {
	return []string{
		Common,
		FastExpress,
		Read420PL3,
		Write420PL3,
		Read422HV,
		Read444PL3,
		Write444PL3,
	}
}

// Bind groups of every kernel: arguments in group 0, surfaces in group 1.
const (
	ArgGroup     = 0
	SurfaceGroup = 1
)

// SamplerArgSize is the storage size of a sampler argument: the filter
// value written for it.
const SamplerArgSize = 4

// ArgKind classifies a kernel argument.
type ArgKind uint8

const (
	// ArgScalar is a single 32-bit value.
	ArgScalar ArgKind = iota
	// ArgVector is a small vector of 32-bit values.
	ArgVector
	// ArgRecord is a parameter record made of 16-byte groups.
	ArgRecord
	// ArgSampler is an inline sampler; its storage holds the filter.
	ArgSampler
)

// String returns the kind name.
func (k ArgKind) String() string {
	switch k {
	case ArgScalar:
		return "Scalar"
	case ArgVector:
		return "Vector"
	case ArgRecord:
		return "Record"
	case ArgSampler:
		return "Sampler"
	default:
		return "Unknown"
	}
}

// Arg is one argument slot of a kernel.
type Arg struct {
	Index uint32
	Name  string
	Kind  ArgKind
	Size  uint32
}

// Slot is one bound surface of a kernel. Output slots are written through
// a storage texture of Format; input slots are sampled and leave Format
// undefined.
type Slot struct {
	Index  uint32
	Name   string
	Output bool
	Format gputypes.TextureFormat
}

// Kernel is the metadata of one compute kernel.
type Kernel struct {
	Name      string
	Args      []Arg
	Surfaces  []Slot
	LocalSize [3]uint32
}

// Arg returns the argument called name.
func (k *Kernel) Arg(name string) (Arg, bool) {
	for _, a := range k.Args {
		if a.Name == name {
			return a, true
		}
	}
	return Arg{}, false
}

// Slot returns the surface slot called name.
func (k *Kernel) Slot(name string) (Slot, bool) {
	for _, s := range k.Surfaces {
		if s.Name == name {
			return s, true
		}
	}
	return Slot{}, false
}

// Provider supplies kernel metadata by name.
type Provider interface {
	Kernel(name string) (*Kernel, error)
}

func unknown(name string) error {
	return fmt.Errorf("kernel %q: %w", name, errs.UnknownKernel)
}
