package kernel

import (
	_ "embed"
)

// Kernel sources. The compositing kernels share the parameter records,
// which are prepended to their bodies.

//go:embed shaders/records.wgsl
var shaderRecords string

//go:embed shaders/fc_common.wgsl
var shaderCommon string

//go:embed shaders/fc_fast_express.wgsl
var shaderFastExpress string

//go:embed shaders/fc_420pl3_input.wgsl
var shaderRead420PL3 string

//go:embed shaders/fc_420pl3_output.wgsl
var shaderWrite420PL3 string

//go:embed shaders/fc_422hv_input.wgsl
var shaderRead422HV string

//go:embed shaders/fc_444pl3_input.wgsl
var shaderRead444PL3 string

//go:embed shaders/fc_444pl3_output.wgsl
var shaderWrite444PL3 string

// EntryPoint is the compute entry point of every kernel.
const EntryPoint = "main"

// Source returns the complete WGSL source of the named kernel.
func Source(name string) (string, error) {
	switch name {
	case Common:
		return shaderRecords + "\n" + shaderCommon, nil
	case FastExpress:
		return shaderRecords + "\n" + shaderFastExpress, nil
	case Read420PL3:
		return shaderRead420PL3, nil
	case Write420PL3:
		return shaderWrite420PL3, nil
	case Read422HV:
		return shaderRead422HV, nil
	case Read444PL3:
		return shaderRead444PL3, nil
	case Write444PL3:
		return shaderWrite444PL3, nil
	}
	return "", unknown(name)
}
