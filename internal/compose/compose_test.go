package compose

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/vpcomp/format"
	"github.com/gogpu/vpcomp/internal/admission"
	"github.com/gogpu/vpcomp/internal/color"
	"github.com/gogpu/vpcomp/internal/errs"
	"github.com/gogpu/vpcomp/internal/geometry"
	"github.com/gogpu/vpcomp/internal/params"
	"github.com/gogpu/vpcomp/kernel"
	"github.com/gogpu/vpcomp/layer"
	"github.com/gogpu/vpcomp/surface"
)

type input struct {
	f    format.Format
	w, h int
	dst  layer.Rect
}

func composition(t *testing.T, out format.Format, w, h int, inputs ...input) *params.Composition {
	t.Helper()
	set := surface.NewSet()
	req := &layer.Request{Output: layer.Spec{Surface: surface.Output(0)}}
	for i, in := range inputs {
		set.Register(surface.Input(i), surface.New(in.f, in.w, in.h))
		req.Inputs = append(req.Inputs, layer.Spec{Surface: surface.Input(i), Dst: in.dst})
	}
	set.Register(surface.Output(0), surface.New(out, w, h))

	ls, target, err := layer.Build(req, set, layer.ScalingNearest)
	if err != nil {
		t.Fatalf("layer.Build: %v", err)
	}
	return &params.Composition{Layers: ls, Target: &target}
}

func geometryWithScale(s float64) geometry.Legacy {
	return geometry.Legacy{ScaleX: s, ScaleY: s, ChromaUp: true}
}

func newComposer(cfg Config) *Composer {
	colors := color.NewResolver(16)
	b := params.NewBuilder(kernel.Static{}, params.NewArgCache(0), colors)
	return New(cfg, b, colors)
}

func TestKindString(t *testing.T) {
	tests := []struct {
		k    Kind
		want string
	}{
		{KindLegacy, "Legacy"},
		{KindCommon, "Common"},
		{KindFastPath, "FastPath"},
		{Kind(7), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("Kind(%d) = %q, want %q", tt.k, got, tt.want)
		}
	}
}

func TestSelect(t *testing.T) {
	nv12 := input{f: format.NV12, w: 1920, h: 1080}
	tests := []struct {
		name   string
		cfg    Config
		out    format.Format
		inputs []input
		want   Kind
	}{
		{"single nv12", Config{}, format.NV12, []input{nv12}, KindFastPath},
		{"fast path disabled", Config{FastPathDisabled: true}, format.NV12, []input{nv12}, KindCommon},
		{"two layers", Config{}, format.NV12, []input{nv12, nv12}, KindCommon},
		{"rgb output", Config{}, format.A8R8G8B8, []input{nv12}, KindCommon},
		{"odd destination", Config{}, format.NV12, []input{{f: format.NV12, w: 64, h: 64, dst: layer.R(1, 0, 65, 64)}}, KindCommon},
		{"legacy", Config{Legacy: true}, format.NV12, []input{nv12}, KindLegacy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := composition(t, tt.out, 1920, 1080, tt.inputs...)
			if got := newComposer(tt.cfg).Select(c).Kind(); got != tt.want {
				t.Errorf("Select = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestComposeDefersOverflow(t *testing.T) {
	inputs := make([]input, 9)
	for i := range inputs {
		inputs[i] = input{f: format.A8R8G8B8, w: 64, h: 64}
	}
	c := composition(t, format.A8R8G8B8, 64, 64, inputs...)

	p, d, err := newComposer(Config{}).Compose(c)
	if err != nil {
		t.Fatal(err)
	}
	if p.Kind != KindCommon {
		t.Errorf("Kind = %s", p.Kind)
	}
	if len(d.Admitted) != 8 || len(d.Deferred) != 1 || d.Deferred[0].OriginID != 8 {
		t.Fatalf("admitted %d, deferred %d", len(d.Admitted), len(d.Deferred))
	}
	if d.Reason != admission.ReasonLayers {
		t.Errorf("Reason = %s", d.Reason)
	}
	n, ok := p.Block.Main.Arg(kernel.ArgLayerNumber)
	if !ok || n.Uint32(0) != 8 {
		t.Errorf("layer_number = %v", n.Data)
	}
}

func TestComposeNoneAdmitted(t *testing.T) {
	c := composition(t, format.A8R8G8B8, 64, 64, input{f: format.A8R8G8B8, w: 64, h: 64})
	cm := newComposer(Config{})
	cm.cfg.Slots = 0

	_, d, err := cm.Compose(c)
	if !errors.Is(err, errs.NoLayersAdmitted) {
		t.Fatalf("error = %v, want NoLayersAdmitted", err)
	}
	if len(d.Deferred) != 1 {
		t.Errorf("deferred %d layers, want 1", len(d.Deferred))
	}
}

func TestConstantAlpha(t *testing.T) {
	tests := []struct {
		name      string
		blend     layer.Blend
		wantAlpha uint16
		wantMode  layer.BlendMode
		wantErr   bool
	}{
		{"none", layer.Blend{Mode: layer.BlendNone, Alpha: 0.3}, 255, layer.BlendNone, false},
		{"source", layer.Blend{Mode: layer.BlendSource}, 255, layer.BlendSource, false},
		{"constant half", layer.Blend{Mode: layer.BlendConstant, Alpha: 0.5}, 127, layer.BlendConstant, false},
		{"constant opaque", layer.Blend{Mode: layer.BlendConstant, Alpha: 1}, 255, layer.BlendNone, false},
		{"constant source opaque", layer.Blend{Mode: layer.BlendConstantSource, Alpha: 1.5}, 255, layer.BlendSource, false},
		{"constant partial opaque", layer.Blend{Mode: layer.BlendConstantPartial, Alpha: 1}, 255, layer.BlendSource, false},
		{"constant partial", layer.Blend{Mode: layer.BlendConstantPartial, Alpha: 0.2}, 51, layer.BlendConstantPartial, false},
		{"transparent", layer.Blend{Mode: layer.BlendConstant, Alpha: 0}, 0, layer.BlendConstant, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.blend
			got, err := ConstantAlpha(&b)
			if tt.wantErr {
				if !errors.Is(err, errs.InvalidParameter) {
					t.Fatalf("error = %v, want InvalidParameter", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.wantAlpha || b.Mode != tt.wantMode {
				t.Errorf("ConstantAlpha = %d mode %s, want %d mode %s", got, b.Mode, tt.wantAlpha, tt.wantMode)
			}
		})
	}
}

func TestAdjustForLimits(t *testing.T) {
	target := layer.Layer{Src: layer.R(0, 0, 100, 100), Dst: layer.R(0, 0, 100, 100)}
	inside := layer.Layer{Dst: layer.R(10, 10, 50, 50)}
	outside := layer.Layer{Dst: layer.R(-10, 10, 50, 50)}

	tests := []struct {
		name      string
		layers    []layer.Layer
		colorFill bool
		want      layer.Rect
	}{
		{"inside", []layer.Layer{inside}, false, inside.Dst},
		{"color fill", []layer.Layer{inside}, true, target.Dst},
		{"outside", []layer.Layer{outside}, false, target.Dst},
		{"two layers", []layer.Layer{inside, inside}, false, target.Dst},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AdjustForLimits(tt.layers, target, tt.colorFill)
			if got.Dst != tt.want || got.Src != tt.want {
				t.Errorf("target = %v/%v, want %v", got.Src, got.Dst, tt.want)
			}
		})
	}
}

func TestLegacyBuild(t *testing.T) {
	c := composition(t, format.A8R8G8B8, 64, 64,
		input{f: format.NV12, w: 64, h: 64},
		input{f: format.A8R8G8B8, w: 32, h: 32, dst: layer.R(0, 0, 64, 64)},
	)
	c.Layers[1].Blend = layer.Blend{Mode: layer.BlendConstant, Alpha: 1}
	c.ColorFill = layer.ColorFill{Enabled: true, Color: 0xff00ff00, ColorSpace: format.SRGB}

	p, d, err := newComposer(Config{Legacy: true}).Compose(c)
	if err != nil {
		t.Fatal(err)
	}
	if p.Kind != KindLegacy || p.Block != nil {
		t.Fatalf("plan = %s, compute block %v", p.Kind, p.Block != nil)
	}
	blk := p.Legacy
	if len(blk.Layers) != len(d.Admitted) || len(blk.Layers) != 2 {
		t.Fatalf("got %d legacy layers", len(blk.Layers))
	}
	if math.Abs(float64(blk.Background[1]-1)) > 1e-6 || blk.Background[3] != 1 {
		t.Errorf("background = %v", blk.Background)
	}

	top := blk.Layers[1]
	if top.Layer.Blend.Mode != layer.BlendNone || top.Alpha != 255 {
		t.Errorf("opaque constant layer = %s alpha %d", top.Layer.Blend.Mode, top.Alpha)
	}
	if top.Geometry.ScaleX != 2 || top.Geometry.ScaleY != 2 {
		t.Errorf("scale = %v x %v, want 2", top.Geometry.ScaleX, top.Geometry.ScaleY)
	}
	if top.ChromaSiting {
		t.Error("chroma siting on an RGB layer")
	}
	if !blk.Layers[0].ChromaSiting {
		t.Error("chroma siting off for the NV12 primary")
	}
	if c.Layers[1].Blend.Mode != layer.BlendConstant {
		t.Error("Build modified the admitted layers")
	}
}

func TestChromaSitingWorkaround(t *testing.T) {
	tests := []struct {
		name    string
		scaling layer.ScalingMode
		scale   float64
		want    bool
	}{
		{"bilinear unscaled", layer.ScalingBilinear, 1, true},
		{"bilinear third", layer.ScalingBilinear, 1.0 / 3.0, true},
		{"bilinear quarter", layer.ScalingBilinear, 0.25, false},
		{"nearest", layer.ScalingNearest, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &layer.Layer{Scaling: tt.scaling}
			g := geometryWithScale(tt.scale)
			if got := chromaSitingEnabled(l, &g, admission.Caps{DownscaleWorkaround: true}); got != tt.want {
				t.Errorf("chromaSitingEnabled = %v, want %v", got, tt.want)
			}
			if !chromaSitingEnabled(l, &g, admission.Caps{}) {
				t.Error("disabled without the workaround")
			}
		})
	}

	none := geometryWithScale(1)
	none.ChromaUp = false
	if chromaSitingEnabled(&layer.Layer{}, &none, admission.Caps{}) {
		t.Error("enabled without chroma resampling")
	}
}
