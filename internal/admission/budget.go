// Package admission decides which input layers fit into one composition
// pass. Layers are evaluated strictly in input order against a resource
// budget; the first layer that does not fit ends the pass and it and all
// later layers are deferred to a subsequent pass.
package admission

import "fmt"

// Sampler mode bits of Budget.Sampler.
const (
	SamplerNearest  uint8 = 1 << iota // 3D sampler, nearest filter
	SamplerBilinear                   // 3D sampler, bilinear filter
	SamplerLumaKey                    // 3D sampler with luma keying

	SamplerAll = SamplerNearest | SamplerBilinear | SamplerLumaKey
)

// Caps describes the hardware features admission depends on.
type Caps struct {
	// AVS reports an adaptive polyphase sampler. Without it AVS requests
	// degrade to bilinear and sampler luma keying is unavailable.
	AVS bool

	// DownscaleWorkaround restricts chroma siting on the fixed-function
	// path to bilinear scaling no smaller than one third.
	DownscaleWorkaround bool
}

// Budget is the per-pass resource counter set. A counter below zero, or
// an empty sampler mask, rejects the layer that caused it.
type Budget struct {
	Layers   int
	Palettes int
	Procamp  int
	LumaKeys int
	AVS      int
	Sampler  uint8
}

// LegacyBudget returns the fixed-function budget for caps.
func LegacyBudget(caps Caps) Budget {
	b := Budget{
		Layers:   8,
		Palettes: 2,
		Procamp:  1,
		LumaKeys: 1,
		Sampler:  SamplerAll,
	}
	if caps.AVS {
		b.AVS = 1
	}
	return b
}

// ComputeBudget returns the compute-kernel budget: only layer slots are
// limited.
func ComputeBudget(slots int) Budget {
	return Budget{Layers: slots, Sampler: SamplerAll}
}

// exhausted returns the first exhausted resource, or ReasonNone.
func (b Budget) exhausted() Reason {
	switch {
	case b.Layers < 0:
		return ReasonLayers
	case b.Palettes < 0:
		return ReasonPalettes
	case b.Procamp < 0:
		return ReasonProcamp
	case b.LumaKeys < 0:
		return ReasonLumaKey
	case b.AVS < 0:
		return ReasonAVS
	case b.Sampler == 0:
		return ReasonSampler
	}
	return ReasonNone
}

// String formats the counters for log records.
func (b Budget) String() string {
	return fmt.Sprintf("layers=%d palettes=%d procamp=%d lumakeys=%d avs=%d sampler=%#x",
		b.Layers, b.Palettes, b.Procamp, b.LumaKeys, b.AVS, b.Sampler)
}

// Reason explains why a layer was deferred.
type Reason uint8

const (
	// ReasonNone means every layer was admitted.
	ReasonNone Reason = iota
	// ReasonLayers means the layer slots ran out.
	ReasonLayers
	// ReasonPalettes means too many palettized layers.
	ReasonPalettes
	// ReasonProcamp means too many layers with procamp enabled.
	ReasonProcamp
	// ReasonLumaKey means the luma-key budget ran out, or a luma-keyed
	// layer arrived after more than one layer was already admitted.
	ReasonLumaKey
	// ReasonAVS means no adaptive polyphase sampler was left.
	ReasonAVS
	// ReasonSampler means the layer's sampler mode is incompatible with
	// the layers already admitted.
	ReasonSampler
)

// String returns the reason name.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "None"
	case ReasonLayers:
		return "Layers"
	case ReasonPalettes:
		return "Palettes"
	case ReasonProcamp:
		return "Procamp"
	case ReasonLumaKey:
		return "LumaKey"
	case ReasonAVS:
		return "AVS"
	case ReasonSampler:
		return "Sampler"
	default:
		return "Unknown"
	}
}
