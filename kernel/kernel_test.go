package kernel

import (
	"errors"
	"reflect"
	"slices"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/vpcomp/internal/errs"
)

func TestSourceKnownKernels(t *testing.T) {
	for _, name := range Names() {
		src, err := Source(name)
		if err != nil {
			t.Fatalf("Source(%s): %v", name, err)
		}
		if src == "" {
			t.Errorf("Source(%s) is empty", name)
		}
	}
	if _, err := Source("fc_unknown"); !errors.Is(err, errs.UnknownKernel) {
		t.Errorf("Source(fc_unknown) error = %v, want UnknownKernel", err)
	}
}

func TestReflectMatchesStatic(t *testing.T) {
	p := NewWGSLProvider()
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			got, err := p.Kernel(name)
			if err != nil {
				t.Fatalf("reflect: %v", err)
			}
			want, err := Static{}.Kernel(name)
			if err != nil {
				t.Fatalf("static: %v", err)
			}
			if got.LocalSize != want.LocalSize {
				t.Errorf("LocalSize = %v, want %v", got.LocalSize, want.LocalSize)
			}
			if !reflect.DeepEqual(got.Args, want.Args) {
				t.Errorf("Args mismatch\n got: %+v\nwant: %+v", got.Args, want.Args)
			}
			if !reflect.DeepEqual(got.Surfaces, want.Surfaces) {
				t.Errorf("Surfaces mismatch\n got: %+v\nwant: %+v", got.Surfaces, want.Surfaces)
			}
		})
	}
}

func TestWGSLProviderCaches(t *testing.T) {
	p := NewWGSLProvider()
	a, err := p.Kernel(Common)
	if err != nil {
		t.Fatal(err)
	}
	b, err := p.Kernel(Common)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("second lookup reflected the kernel again")
	}
	if _, err := p.Kernel("fc_unknown"); !errors.Is(err, errs.UnknownKernel) {
		t.Errorf("unknown kernel error = %v", err)
	}
}

func TestCommonKernelSlots(t *testing.T) {
	k, err := Static{}.Kernel(Common)
	if err != nil {
		t.Fatal(err)
	}
	for i := range 8 {
		a, ok := k.Arg(LayerImageParam(i))
		if !ok {
			t.Fatalf("missing %s", LayerImageParam(i))
		}
		if a.Size != ImageParamSize || a.Kind != ArgRecord {
			t.Errorf("%s = %+v", a.Name, a)
		}
		for p := range 2 {
			if _, ok := k.Slot(LayerInput(i, p)); !ok {
				t.Errorf("missing slot %s", LayerInput(i, p))
			}
		}
	}
	out, ok := k.Slot(SlotOutputPlane0)
	if !ok || !out.Output {
		t.Errorf("output slot = %+v, %v", out, ok)
	}
	if _, ok := k.Arg("missing"); ok {
		t.Error("Arg(missing) found")
	}
}

func TestParseLayerInput(t *testing.T) {
	tests := []struct {
		name         string
		layer, plane int
		ok           bool
	}{
		{"input0_pl0", 0, 0, true},
		{"input7_pl1", 7, 1, true},
		{"input_pl0", 0, 0, false},
		{"input_plane0", 0, 0, false},
		{"output_pl0", 0, 0, false},
		{"inputx_pl1", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, p, ok := ParseLayerInput(tt.name)
			if ok != tt.ok || l != tt.layer || p != tt.plane {
				t.Errorf("ParseLayerInput(%q) = %d, %d, %v", tt.name, l, p, ok)
			}
		})
	}
	for i := range 8 {
		l, p, ok := ParseLayerInput(LayerInput(i, 1))
		if !ok || l != i || p != 1 {
			t.Errorf("round trip of layer %d: %d, %d, %v", i, l, p, ok)
		}
	}
}

func TestLayoutEntries(t *testing.T) {
	k, err := Static{}.Kernel(FastExpress)
	if err != nil {
		t.Fatal(err)
	}

	args := ArgLayoutEntries(k)
	if len(args) != len(k.Args) {
		t.Fatalf("got %d argument entries, want %d", len(args), len(k.Args))
	}
	for i, e := range args {
		a := k.Args[i]
		if e.Binding != a.Index || e.Visibility != gputypes.ShaderStageCompute {
			t.Errorf("entry %d = %+v", i, e)
		}
		switch a.Kind {
		case ArgSampler:
			if e.Sampler == nil || e.Buffer != nil {
				t.Errorf("%s: want sampler entry", a.Name)
			}
		default:
			if e.Buffer == nil || e.Buffer.Type != gputypes.BufferBindingTypeUniform || e.Buffer.MinBindingSize != uint64(a.Size) {
				t.Errorf("%s: buffer entry = %+v", a.Name, e.Buffer)
			}
		}
	}

	surfaces := SurfaceLayoutEntries(k)
	for i, e := range surfaces {
		s := k.Surfaces[i]
		if s.Output {
			if e.StorageTexture == nil || e.StorageTexture.Format != s.Format {
				t.Errorf("%s: storage entry = %+v", s.Name, e.StorageTexture)
			}
			continue
		}
		if e.Texture == nil || e.Texture.SampleType != gputypes.TextureSampleTypeFloat {
			t.Errorf("%s: texture entry = %+v", s.Name, e.Texture)
		}
	}
}

func TestRegistry(t *testing.T) {
	if got := Available(); !slices.Contains(got, ProviderWGSL) || !slices.Contains(got, ProviderStatic) {
		t.Fatalf("Available() = %v", got)
	}
	p, name := Default()
	if name != ProviderWGSL {
		t.Errorf("Default() name = %s, want %s", name, ProviderWGSL)
	}
	if _, ok := p.(*WGSLProvider); !ok {
		t.Errorf("Default() = %T", p)
	}

	s, err := Lookup(ProviderStatic)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(Static); !ok {
		t.Errorf("Lookup(static) = %T", s)
	}
	if _, err := Lookup("none"); !errors.Is(err, errs.InvalidParameter) {
		t.Errorf("Lookup(none) error = %v", err)
	}

	Register("test", func() Provider { return Static{} })
	defer Unregister("test")
	if _, err := Lookup("test"); err != nil {
		t.Errorf("Lookup(test): %v", err)
	}
}

func TestArgKindString(t *testing.T) {
	tests := []struct {
		k    ArgKind
		want string
	}{
		{ArgScalar, "Scalar"},
		{ArgVector, "Vector"},
		{ArgRecord, "Record"},
		{ArgSampler, "Sampler"},
		{ArgKind(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("ArgKind(%d).String() = %q, want %q", tt.k, got, tt.want)
		}
	}
}
