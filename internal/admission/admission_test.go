package admission

import (
	"errors"
	"reflect"
	"testing"

	"github.com/gogpu/vpcomp/format"
	"github.com/gogpu/vpcomp/internal/errs"
	"github.com/gogpu/vpcomp/layer"
	"github.com/gogpu/vpcomp/surface"
)

func testLayer(index int, f format.Format, w, h int, dst layer.Rect) layer.Layer {
	src := layer.R(0, 0, w, h)
	return layer.Layer{
		ID:        index,
		OriginID:  index,
		Surface:   surface.New(f, w, h),
		Format:    f,
		Primary:   index == 0,
		Src:       src,
		Dst:       dst,
		MaxSrc:    src,
		Scaling:   layer.ScalingNearest,
		Blend:     layer.Blend{Mode: layer.BlendNone, Alpha: 1},
		Procamp:   layer.DefaultProcamp(),
		PaletteID: -1,
	}
}

func plainLayers(n int) []layer.Layer {
	out := make([]layer.Layer, n)
	for i := range out {
		out[i] = testLayer(i, format.A8R8G8B8, 64, 64, layer.R(0, 0, 64, 64))
	}
	return out
}

func argbTarget() *layer.Layer {
	t := testLayer(0, format.A8R8G8B8, 64, 64, layer.R(0, 0, 64, 64))
	t.Primary = false
	return &t
}

func TestLegacyBudget(t *testing.T) {
	b := LegacyBudget(Caps{})
	want := Budget{Layers: 8, Palettes: 2, Procamp: 1, LumaKeys: 1, AVS: 0, Sampler: 7}
	if b != want {
		t.Errorf("LegacyBudget = %v, want %v", b, want)
	}
	if b := LegacyBudget(Caps{AVS: true}); b.AVS != 1 {
		t.Errorf("AVS budget = %d, want 1", b.AVS)
	}
}

func TestRemoveTransparent(t *testing.T) {
	layers := plainLayers(4)
	layers[1].Blend = layer.Blend{Mode: layer.BlendConstant, Alpha: 0}
	layers[2].Blend = layer.Blend{Mode: layer.BlendSource, Alpha: 0}
	layers[3].Blend = layer.Blend{Mode: layer.BlendConstantPartial, Alpha: -0.5}

	kept, removed := RemoveTransparent(layers)
	if len(kept) != 2 || kept[0].OriginID != 0 || kept[1].OriginID != 2 {
		t.Errorf("kept = %v", origins(kept))
	}
	if len(removed) != 2 {
		t.Errorf("removed %d layers, want 2", len(removed))
	}
}

func origins(ls []layer.Layer) []int {
	out := make([]int, len(ls))
	for i := range ls {
		out[i] = ls[i].OriginID
	}
	return out
}

func TestSelectComputeDefersOverflow(t *testing.T) {
	d, err := SelectCompute(plainLayers(9), argbTarget(), layer.MaxLayers, false)
	if err != nil {
		t.Fatalf("SelectCompute error: %v", err)
	}
	if len(d.Admitted) != 8 {
		t.Fatalf("admitted %d layers, want 8", len(d.Admitted))
	}
	for i := range d.Admitted {
		if d.Admitted[i].ID != i || d.Admitted[i].OriginID != i {
			t.Errorf("layer %d: ID %d OriginID %d", i, d.Admitted[i].ID, d.Admitted[i].OriginID)
		}
	}
	if len(d.Deferred) != 1 || d.Deferred[0].OriginID != 8 {
		t.Errorf("deferred = %v, want [8]", origins(d.Deferred))
	}
	if d.Reason != ReasonLayers {
		t.Errorf("Reason = %v", d.Reason)
	}
}

func TestSelectDeterministic(t *testing.T) {
	layers := plainLayers(9)
	layers[3].Dst = layer.R(0, 0, 128, 128)

	a, errA := SelectCompute(layers, argbTarget(), layer.MaxLayers, true)
	b, errB := SelectCompute(layers, argbTarget(), layer.MaxLayers, true)
	if errA != nil || errB != nil {
		t.Fatalf("errors: %v %v", errA, errB)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("SelectCompute differs between identical runs")
	}

	c, _ := SelectLegacy(layers, argbTarget(), Caps{AVS: true}, false)
	e, _ := SelectLegacy(layers, argbTarget(), Caps{AVS: true}, false)
	if !reflect.DeepEqual(c, e) {
		t.Error("SelectLegacy differs between identical runs")
	}
}

func TestSelectComputeNoneAdmitted(t *testing.T) {
	_, err := SelectCompute(plainLayers(1), argbTarget(), 0, false)
	if !errors.Is(err, errs.NoLayersAdmitted) {
		t.Errorf("error = %v, want NoLayersAdmitted", err)
	}

	layers := plainLayers(1)
	layers[0].Blend = layer.Blend{Mode: layer.BlendConstant, Alpha: 0}
	d, err := SelectCompute(layers, argbTarget(), layer.MaxLayers, false)
	if err != nil {
		t.Errorf("fill-only request failed: %v", err)
	}
	if len(d.Admitted) != 0 || len(d.Removed) != 1 {
		t.Errorf("admitted %d removed %d", len(d.Admitted), len(d.Removed))
	}
}

func TestForceBilinear(t *testing.T) {
	layers := plainLayers(2)
	layers[1] = testLayer(1, format.A8R8G8B8, 32, 32, layer.R(0, 0, 64, 64))

	d, _ := SelectCompute(layers, argbTarget(), layer.MaxLayers, false)
	if d.Admitted[0].Scaling != layer.ScalingNearest || d.Admitted[1].Scaling != layer.ScalingBilinear {
		t.Errorf("without force: %v %v", d.Admitted[0].Scaling, d.Admitted[1].Scaling)
	}

	d, _ = SelectCompute(layers, argbTarget(), layer.MaxLayers, true)
	for i := range d.Admitted {
		if d.Admitted[i].Scaling != layer.ScalingBilinear {
			t.Errorf("layer %d scaling = %v, want Bilinear", i, d.Admitted[i].Scaling)
		}
	}
}

func TestInterlaceFallback(t *testing.T) {
	l := testLayer(0, format.NV12, 64, 66, layer.R(0, 0, 64, 66))
	l.SampleType = layer.SingleTopField
	l.Deinterlace = layer.Deinterlace{Enabled: true, Mode: layer.DeinterlaceBob}
	target := testLayer(0, format.NV12, 64, 66, layer.R(0, 0, 64, 66))

	d, err := SelectCompute([]layer.Layer{l}, &target, layer.MaxLayers, false)
	if err != nil {
		t.Fatal(err)
	}
	got := d.Admitted[0]
	if got.SampleType != layer.Progressive || got.Deinterlace.Enabled {
		t.Errorf("sample type %v, deinterlace %v", got.SampleType, got.Deinterlace.Enabled)
	}
	if got.Scaling != layer.ScalingNearest {
		t.Errorf("Scaling = %v, want Nearest", got.Scaling)
	}
}

func TestSelectLegacy(t *testing.T) {
	tests := []struct {
		name     string
		caps     Caps
		layers   func() []layer.Layer
		admitted int
		reason   Reason
	}{
		{
			name:     "plain layers",
			layers:   func() []layer.Layer { return plainLayers(3) },
			admitted: 3,
		},
		{
			name:     "layer slots",
			layers:   func() []layer.Layer { return plainLayers(10) },
			admitted: 8,
			reason:   ReasonLayers,
		},
		{
			name: "second procamp",
			layers: func() []layer.Layer {
				ls := plainLayers(3)
				ls[0].Procamp.Enabled = true
				ls[1].Procamp.Enabled = true
				return ls
			},
			admitted: 1,
			reason:   ReasonProcamp,
		},
		{
			name: "third palette",
			layers: func() []layer.Layer {
				ls := plainLayers(3)
				for i := range ls {
					ls[i].PaletteID = i
				}
				return ls
			},
			admitted: 2,
			reason:   ReasonPalettes,
		},
		{
			name: "luma key above two layers",
			layers: func() []layer.Layer {
				ls := plainLayers(3)
				ls[2].LumaKey = layer.LumaKey{Enabled: true, Low: 16, High: 32}
				return ls
			},
			admitted: 2,
			reason:   ReasonLumaKey,
		},
		{
			name: "second luma key",
			layers: func() []layer.Layer {
				ls := plainLayers(2)
				ls[0].LumaKey.Enabled = true
				ls[1].LumaKey.Enabled = true
				return ls
			},
			admitted: 1,
			reason:   ReasonLumaKey,
		},
		{
			name: "sampler luma key exhausts AVS",
			caps: Caps{AVS: true},
			layers: func() []layer.Layer {
				ls := plainLayers(4)
				ls[1].LumaKey.Enabled = true
				return ls
			},
			admitted: 3,
			reason:   ReasonAVS,
		},
		{
			name: "second AVS layer",
			caps: Caps{AVS: true},
			layers: func() []layer.Layer {
				ls := plainLayers(2)
				ls[0].Scaling = layer.ScalingAVS
				ls[1].Scaling = layer.ScalingAVS
				return ls
			},
			admitted: 1,
			reason:   ReasonAVS,
		},
		{
			name: "AVS without hardware",
			layers: func() []layer.Layer {
				ls := plainLayers(2)
				ls[0].Scaling = layer.ScalingAVS
				ls[1].Scaling = layer.ScalingAVS
				return ls
			},
			admitted: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layers := tt.layers()
			d, err := SelectLegacy(layers, argbTarget(), tt.caps, false)
			if err != nil {
				t.Fatalf("SelectLegacy error: %v", err)
			}
			if len(d.Admitted) != tt.admitted {
				t.Errorf("admitted %d, want %d", len(d.Admitted), tt.admitted)
			}
			if d.Reason != tt.reason {
				t.Errorf("Reason = %v, want %v", d.Reason, tt.reason)
			}
			if len(d.Admitted)+len(d.Deferred) != len(layers) {
				t.Errorf("admitted %d + deferred %d != %d", len(d.Admitted), len(d.Deferred), len(layers))
			}
		})
	}
}

func TestLegacyScalingModes(t *testing.T) {
	ls := plainLayers(3)
	ls[1].LumaKey.Enabled = true
	d, err := SelectLegacy(ls, argbTarget(), Caps{AVS: true}, false)
	if err != nil {
		t.Fatal(err)
	}
	want := []layer.ScalingMode{layer.ScalingNearest, layer.ScalingNearest, layer.ScalingAVS}
	for i, m := range want {
		if d.Admitted[i].Scaling != m {
			t.Errorf("layer %d scaling = %v, want %v", i, d.Admitted[i].Scaling, m)
		}
	}
	if d.Budget.Sampler != SamplerLumaKey {
		t.Errorf("sampler mask = %#x", d.Budget.Sampler)
	}
}

func TestFastPathEligible(t *testing.T) {
	nv12 := func(w, h int) *layer.Layer {
		l := testLayer(0, format.NV12, w, h, layer.R(0, 0, w, h))
		return &l
	}
	one := func(f format.Format, dst layer.Rect) []layer.Layer {
		return []layer.Layer{testLayer(0, f, 1920, 1080, dst)}
	}
	full := layer.R(0, 0, 1920, 1080)

	tests := []struct {
		name      string
		admitted  []layer.Layer
		target    *layer.Layer
		colorFill bool
		want      bool
	}{
		{"single NV12", one(format.NV12, full), nv12(1920, 1080), false, true},
		{"fill only", nil, nv12(1920, 1080), true, true},
		{"nothing", nil, nv12(1920, 1080), false, false},
		{"two layers", plainLayers(2), nv12(64, 64), false, false},
		{"ARGB output", one(format.NV12, full), argbTarget(), false, false},
		{"odd destination", one(format.NV12, layer.R(1, 0, 1921, 1080)), nv12(1920, 1080), false, false},
		{"clamped odd edge", one(format.NV12, layer.R(0, 0, 1920, 1080)), nv12(1919, 1080), false, false},
		{"negative origin clamps", one(format.NV12, layer.R(-3, 0, 1920, 1080)), nv12(1920, 1080), false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FastPathEligible(tt.admitted, tt.target, tt.colorFill); got != tt.want {
				t.Errorf("FastPathEligible = %v, want %v", got, tt.want)
			}
		})
	}

	blended := one(format.NV12, full)
	blended[0].Blend.Mode = layer.BlendSource
	if FastPathEligible(blended, nv12(1920, 1080), false) {
		t.Error("blended layer must not take the fast path")
	}
	keyed := one(format.NV12, full)
	keyed[0].LumaKey.Enabled = true
	if FastPathEligible(keyed, nv12(1920, 1080), false) {
		t.Error("luma-keyed layer must not take the fast path")
	}
}
