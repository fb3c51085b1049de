package kernel

import "github.com/gogpu/gputypes"

// Record sizes of the compositing kernels.
const (
	ImageParamSize  = 176
	TargetParamSize = 128
)

// Static serves a precomputed copy of the metadata WGSLProvider reflects
// from the embedded sources. The zero value is ready to use.
type Static struct{}

// Kernel returns the metadata of the named kernel. The result is a fresh
// copy the caller may modify.
func (Static) Kernel(name string) (*Kernel, error) {
	build, ok := staticKernels[name]
	if !ok {
		return nil, unknown(name)
	}
	k := build()
	k.Name = name
	return k, nil
}

var staticKernels = map[string]func() *Kernel{
	Common:      commonKernel,
	FastExpress: fastExpressKernel,
	Read420PL3:  read420PL3Kernel,
	Write420PL3: write420PL3Kernel,
	Read422HV:   read422HVKernel,
	Read444PL3:  read444PL3Kernel,
	Write444PL3: write444PL3Kernel,
}

var tileLocalSize = [3]uint32{128, 2, 1}

func scalarArg(i uint32, name string) Arg {
	return Arg{Index: i, Name: name, Kind: ArgScalar, Size: 4}
}

func vectorArg(i uint32, name string, n uint32) Arg {
	return Arg{Index: i, Name: name, Kind: ArgVector, Size: 4 * n}
}

func recordArg(i uint32, name string, size uint32) Arg {
	return Arg{Index: i, Name: name, Kind: ArgRecord, Size: size}
}

func samplerArg(i uint32, name string) Arg {
	return Arg{Index: i, Name: name, Kind: ArgSampler, Size: SamplerArgSize}
}

func inputSlot(i uint32, name string) Slot {
	return Slot{Index: i, Name: name}
}

func outputSlot(i uint32, name string, f gputypes.TextureFormat) Slot {
	return Slot{Index: i, Name: name, Output: true, Format: f}
}

func commonKernel() *Kernel {
	k := &Kernel{LocalSize: tileLocalSize}
	k.Args = append(k.Args, scalarArg(0, ArgLayerNumber))
	for i := range 8 {
		k.Args = append(k.Args, recordArg(uint32(i+1), LayerImageParam(i), ImageParamSize))
	}
	k.Args = append(k.Args,
		recordArg(9, ArgTargetParam, TargetParamSize),
		samplerArg(10, ArgLinearSampler),
		samplerArg(11, ArgNearestSampler),
		vectorArg(12, ArgLocalSize, 3),
		vectorArg(13, ArgEnqueuedLocalSize, 3),
	)
	for p := range 2 {
		for i := range 8 {
			k.Surfaces = append(k.Surfaces, inputSlot(uint32(p*8+i), LayerInput(i, p)))
		}
	}
	k.Surfaces = append(k.Surfaces, outputSlot(16, SlotOutputPlane0, gputypes.TextureFormatRGBA8Unorm))
	return k
}

func fastExpressKernel() *Kernel {
	return &Kernel{
		LocalSize: [3]uint32{16, 2, 1},
		Args: []Arg{
			scalarArg(0, ArgLayerNumber),
			recordArg(1, ArgImageParam, ImageParamSize),
			recordArg(2, ArgTargetParam, TargetParamSize),
			samplerArg(3, ArgLinearSampler),
			samplerArg(4, ArgNearestSampler),
			vectorArg(5, ArgGlobalSize, 3),
			vectorArg(6, ArgLocalSize, 3),
			vectorArg(7, ArgEnqueuedLocalSize, 3),
		},
		Surfaces: []Slot{
			inputSlot(0, SlotInputPlane0),
			inputSlot(1, SlotInputPlane1),
			outputSlot(2, SlotOutputPlane0, gputypes.TextureFormatR8Unorm),
			outputSlot(3, SlotOutputPlane1, gputypes.TextureFormatRG8Unorm),
		},
	}
}

func read420PL3Kernel() *Kernel {
	return &Kernel{
		LocalSize: tileLocalSize,
		Args: []Arg{
			scalarArg(0, ArgWidth),
			scalarArg(1, ArgHeight),
			scalarArg(2, ArgLumaIndex),
			vectorArg(3, ArgChromaIndices, 4),
			vectorArg(4, ArgLocalSize, 3),
			vectorArg(5, ArgEnqueuedLocalSize, 3),
		},
		Surfaces: []Slot{
			inputSlot(0, SlotInputY),
			inputSlot(1, SlotInputU),
			inputSlot(2, SlotInputV),
			outputSlot(3, SlotOutputY, gputypes.TextureFormatR8Unorm),
			outputSlot(4, SlotOutputUV, gputypes.TextureFormatRG8Unorm),
		},
	}
}

func write420PL3Kernel() *Kernel {
	return &Kernel{
		LocalSize: tileLocalSize,
		Args: []Arg{
			scalarArg(0, ArgWidth),
			scalarArg(1, ArgHeight),
			scalarArg(2, ArgLumaIndex),
			scalarArg(3, ArgUIndex),
			scalarArg(4, ArgVIndex),
			vectorArg(5, ArgLocalSize, 3),
		},
		Surfaces: []Slot{
			inputSlot(0, SlotInputY),
			inputSlot(1, SlotInputUV),
			outputSlot(2, SlotOutputY, gputypes.TextureFormatR8Unorm),
			outputSlot(3, SlotOutputU, gputypes.TextureFormatR8Unorm),
			outputSlot(4, SlotOutputV, gputypes.TextureFormatR8Unorm),
		},
	}
}

func read422HVKernel() *Kernel {
	return &Kernel{
		LocalSize: tileLocalSize,
		Args: []Arg{
			scalarArg(0, ArgWidthUV),
			scalarArg(1, ArgHeightUV),
			scalarArg(2, ArgInputIndex),
			vectorArg(3, ArgOutputIndex, 4),
			vectorArg(4, ArgLocalSize, 3),
		},
		Surfaces: []Slot{
			inputSlot(0, SlotPlane0),
			inputSlot(1, SlotPlane1),
			inputSlot(2, SlotPlane2),
			outputSlot(3, SlotOutPlane0, gputypes.TextureFormatR8Unorm),
			outputSlot(4, SlotOutPlane1, gputypes.TextureFormatRG8Unorm),
		},
	}
}

func read444PL3Kernel() *Kernel {
	return &Kernel{
		LocalSize: tileLocalSize,
		Args: []Arg{
			vectorArg(0, ArgInputIndex, 4),
			vectorArg(1, ArgOutputIndex, 4),
			scalarArg(2, ArgPlaneIndex),
			vectorArg(3, ArgLocalSize, 3),
		},
		Surfaces: []Slot{
			inputSlot(0, SlotPlane0),
			inputSlot(1, SlotPlane1),
			inputSlot(2, SlotPlane2),
			outputSlot(3, SlotOutPlane0, gputypes.TextureFormatRGBA8Unorm),
		},
	}
}

func write444PL3Kernel() *Kernel {
	return &Kernel{
		LocalSize: tileLocalSize,
		Args: []Arg{
			vectorArg(0, ArgInputIndex, 4),
			vectorArg(1, ArgOutputIndex, 4),
			vectorArg(2, ArgLocalSize, 3),
		},
		Surfaces: []Slot{
			inputSlot(0, SlotPlane0),
			outputSlot(1, SlotOutPlane0, gputypes.TextureFormatR8Unorm),
			outputSlot(2, SlotOutPlane1, gputypes.TextureFormatR8Unorm),
			outputSlot(3, SlotOutPlane2, gputypes.TextureFormatR8Unorm),
		},
	}
}
