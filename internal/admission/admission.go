package admission

import (
	"fmt"

	"github.com/gogpu/vpcomp/format"
	"github.com/gogpu/vpcomp/internal/errs"
	"github.com/gogpu/vpcomp/internal/geometry"
	"github.com/gogpu/vpcomp/layer"
)

// Decision is the outcome of one admission pass.
type Decision struct {
	// Admitted holds the layers of this pass in input order. Each layer's
	// ID is its position here; OriginID is its position in the request.
	Admitted []layer.Layer

	// Deferred holds the rejected layer and every layer after it.
	Deferred []layer.Layer

	// Removed holds fully transparent layers dropped before admission.
	Removed []layer.Layer

	// Reason is why the first deferred layer was rejected.
	Reason Reason

	// Budget is what remained after the last admitted layer.
	Budget Budget
}

// RemoveTransparent splits off constant-alpha layers whose alpha is zero
// or negative. They contribute nothing to the output.
func RemoveTransparent(layers []layer.Layer) (kept, removed []layer.Layer) {
	kept = make([]layer.Layer, 0, len(layers))
	for i := range layers {
		b := layers[i].Blend
		if b.Mode.UsesConstantAlpha() && b.Alpha <= 0 {
			removed = append(removed, layers[i])
			continue
		}
		kept = append(kept, layers[i])
	}
	return kept, removed
}

// applyInterlaceFallback forces progressive access on layers whose field
// layout cannot be addressed, turning off deinterlacing and interlaced
// scaling with it.
func applyInterlaceFallback(l *layer.Layer) {
	if geometry.InterlaceSafe(l) {
		return
	}
	l.SampleType = layer.Progressive
	l.Deinterlace.Enabled = false
	l.InterlacedScaling = layer.InterlacedScalingNone
	l.IScaling = false
	l.FieldWeaving = false
}

// forceBilinear upgrades nearest layers to bilinear. The 3D sampler holds
// one filter per pass, so a later bilinear layer would override them.
func forceBilinear(admitted []layer.Layer) {
	for i := range admitted {
		if admitted[i].Scaling == layer.ScalingNearest {
			admitted[i].Scaling = layer.ScalingBilinear
		}
	}
}

// SelectLegacy runs fixed-function admission over layers composed into
// target. Transparent layers are removed first. With forceBilinear set,
// every admitted nearest layer is switched to bilinear as soon as one
// admitted layer needs bilinear.
func SelectLegacy(layers []layer.Layer, target *layer.Layer, caps Caps, forceBilinearOpt bool) (Decision, error) {
	kept, removed := RemoveTransparent(layers)
	d := Decision{Removed: removed, Budget: LegacyBudget(caps)}

	bilinearInUse := false
	for i := range kept {
		l := kept[i]
		reason := admitLegacy(&d.Budget, &l, len(d.Admitted), target.Format, caps)
		if reason != ReasonNone {
			d.Reason = reason
			d.Deferred = append(d.Deferred, kept[i:]...)
			break
		}
		if l.Scaling == layer.ScalingBilinear {
			bilinearInUse = true
		}
		l.ID = len(d.Admitted)
		d.Admitted = append(d.Admitted, l)
	}

	if forceBilinearOpt && bilinearInUse {
		forceBilinear(d.Admitted)
	}
	return d, finish(&d, kept)
}

// admitLegacy charges l against b. It returns ReasonNone and updates l's
// scaling and sample type when l fits; b keeps the charges either way.
func admitLegacy(b *Budget, l *layer.Layer, admitted int, out format.Format, caps Caps) Reason {
	b.Layers--
	if l.PaletteID >= 0 {
		b.Palettes--
	}
	if l.Procamp.Enabled {
		b.Procamp--
	}

	lumaKey := l.LumaKey.Enabled
	if lumaKey {
		b.LumaKeys--
		// A luma-keyed layer may only sit directly above the bottom layer.
		if b.LumaKeys < 0 || admitted > 1 {
			return ReasonLumaKey
		}
		if admitted == 1 {
			b.Sampler = SamplerAll
		}
	}

	mode := l.Scaling
	if !caps.AVS && mode == layer.ScalingAVS {
		mode = layer.ScalingBilinear
	}

	// Bob deinterlacing needs field access, so it only counts when the
	// layer stays interlaced.
	applyInterlaceFallback(l)
	bob := l.Deinterlace.Bob()

	if mode == layer.ScalingAVS && !lumaKey && !bob {
		b.AVS--
	} else {
		mode = geometry.SamplerMode(l, admitted, out)

		const mask = SamplerNearest | SamplerBilinear
		switch {
		case caps.AVS && lumaKey && admitted > 0 && !l.Format.IsPL3():
			b.Sampler &= SamplerLumaKey
		case b.Sampler&mask != 0:
			b.Sampler &= mask
		default:
			// Without an AVS sampler the counter is already zero and the
			// layer is rejected below.
			mode = layer.ScalingAVS
			b.AVS--
		}
	}

	if r := b.exhausted(); r != ReasonNone {
		return r
	}
	l.Scaling = mode
	return ReasonNone
}

// SelectCompute runs compute-kernel admission: only the slots layer
// counter is charged. AVS requests degrade to bilinear and every layer
// gets the 3D sampler mode its geometry needs.
func SelectCompute(layers []layer.Layer, target *layer.Layer, slots int, forceBilinearOpt bool) (Decision, error) {
	kept, removed := RemoveTransparent(layers)
	d := Decision{Removed: removed, Budget: ComputeBudget(slots)}

	bilinearInUse := false
	for i := range kept {
		l := kept[i]
		d.Budget.Layers--
		applyInterlaceFallback(&l)
		mode := geometry.SamplerMode(&l, len(d.Admitted), target.Format)
		if d.Budget.Layers < 0 {
			d.Reason = ReasonLayers
			d.Deferred = append(d.Deferred, kept[i:]...)
			break
		}
		if mode == layer.ScalingBilinear {
			bilinearInUse = true
		}
		l.Scaling = mode
		l.ID = len(d.Admitted)
		d.Admitted = append(d.Admitted, l)
	}

	if forceBilinearOpt && bilinearInUse {
		forceBilinear(d.Admitted)
	}
	return d, finish(&d, kept)
}

// finish reports errs.NoLayersAdmitted when layers reached admission but
// none fit.
func finish(d *Decision, considered []layer.Layer) error {
	if len(considered) > 0 && len(d.Admitted) == 0 {
		return fmt.Errorf("layer %d rejected (%s): %w", considered[0].OriginID, d.Reason, errs.NoLayersAdmitted)
	}
	return nil
}
