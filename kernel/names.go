package kernel

import (
	"strconv"
	"strings"
)

// Argument names.
const (
	ArgLayerNumber       = "layer_number"
	ArgImageParam        = "image_param"
	ArgTargetParam       = "target_param"
	ArgLinearSampler     = "linear_sampler"
	ArgNearestSampler    = "nearest_sampler"
	ArgGlobalSize        = "global_size"
	ArgLocalSize         = "local_size"
	ArgEnqueuedLocalSize = "enqueued_local_size"

	ArgWidth         = "width"
	ArgHeight        = "height"
	ArgWidthUV       = "width_uv"
	ArgHeightUV      = "height_uv"
	ArgLumaIndex     = "luma_index"
	ArgChromaIndices = "chroma_indices"
	ArgUIndex        = "u_index"
	ArgVIndex        = "v_index"
	ArgInputIndex    = "input_index"
	ArgOutputIndex   = "output_index"
	ArgPlaneIndex    = "plane_index"
)

// Surface slot names.
const (
	SlotInputPlane0  = "input_pl0"
	SlotInputPlane1  = "input_pl1"
	SlotOutputPlane0 = "output_pl0"
	SlotOutputPlane1 = "output_pl1"

	SlotInputY   = "input_y"
	SlotInputU   = "input_u"
	SlotInputV   = "input_v"
	SlotInputUV  = "input_uv"
	SlotOutputY  = "output_y"
	SlotOutputU  = "output_u"
	SlotOutputV  = "output_v"
	SlotOutputUV = "output_uv"

	SlotPlane0    = "input_plane0"
	SlotPlane1    = "input_plane1"
	SlotPlane2    = "input_plane2"
	SlotOutPlane0 = "output_plane0"
	SlotOutPlane1 = "output_plane1"
	SlotOutPlane2 = "output_plane2"
)

// LayerImageParam returns the image record argument of layer i in the
// common kernel.
func LayerImageParam(i int) string {
	return ArgImageParam + strconv.Itoa(i)
}

// LayerInput returns the slot name of plane p of layer i in the common
// kernel.
func LayerInput(i, p int) string {
	return "input" + strconv.Itoa(i) + "_pl" + strconv.Itoa(p)
}

// ParseLayerInput is the inverse of LayerInput.
func ParseLayerInput(name string) (layer, plane int, ok bool) {
	rest, found := strings.CutPrefix(name, "input")
	if !found {
		return 0, 0, false
	}
	l, p, found := strings.Cut(rest, "_pl")
	if !found {
		return 0, 0, false
	}
	var err error
	if layer, err = strconv.Atoi(l); err != nil {
		return 0, 0, false
	}
	if plane, err = strconv.Atoi(p); err != nil {
		return 0, 0, false
	}
	return layer, plane, true
}
