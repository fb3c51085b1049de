package format

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/vpcomp/internal/errs"
)

func TestFormatString(t *testing.T) {
	tests := []struct {
		f    Format
		want string
	}{
		{NV12, "NV12"},
		{P400, "400P"},
		{P422H, "422H"},
		{P411, "411P"},
		{P444, "444P"},
		{A16B16G16R16F, "A16B16G16R16F"},
		{Invalid, "Invalid"},
		{Format(250), "Invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.f.String(); got != tt.want {
				t.Errorf("Format(%d).String() = %q, want %q", tt.f, got, tt.want)
			}
		})
	}
}

func TestEveryFormatHasName(t *testing.T) {
	for f := Invalid + 1; f < formatCount; f++ {
		if Info(f).Name == "" {
			t.Errorf("Format(%d) has no descriptor", f)
		}
		if !f.Valid() {
			t.Errorf("Format(%d).Valid() = false", f)
		}
	}
	if Invalid.Valid() {
		t.Error("Invalid.Valid() = true")
	}
}

func TestChromaFactor(t *testing.T) {
	tests := []struct {
		f    Format
		x, y int
	}{
		{A8R8G8B8, 1, 1},
		{AYUV, 1, 1},
		{P400, 1, 1},
		{RGBP, 1, 1},
		{P444, 1, 1},
		{NV12, 2, 2},
		{P010, 2, 2},
		{P210, 2, 2},
		{I420, 2, 2},
		{YV12, 2, 2},
		{YUY2, 2, 1},
		{VYUY, 2, 1},
		{Y216, 2, 1},
		{P422H, 2, 1},
		{P422V, 1, 2},
		{P411, 4, 1},
	}
	for _, tt := range tests {
		t.Run(tt.f.String(), func(t *testing.T) {
			x, y, err := ChromaFactor(tt.f)
			if err != nil {
				t.Fatalf("ChromaFactor(%v) error: %v", tt.f, err)
			}
			if x != tt.x || y != tt.y {
				t.Errorf("ChromaFactor(%v) = (%d, %d), want (%d, %d)", tt.f, x, y, tt.x, tt.y)
			}
		})
	}
}

func TestChromaFactorUnsupported(t *testing.T) {
	for _, f := range []Format{Invalid, R8UN, R8G8UN} {
		_, _, err := ChromaFactor(f)
		if !errors.Is(err, errs.UnsupportedFormatForChromaSiting) {
			t.Errorf("ChromaFactor(%v) error = %v, want UnsupportedFormatForChromaSiting", f, err)
		}
	}
}

func TestBitDepth(t *testing.T) {
	tests := []struct {
		f    Format
		want Bits
	}{
		{A8R8G8B8, Bits{8, 8, 8}},
		{Y416, Bits{16, 16, 16}},
		{Y410, Bits{10, 10, 2}},
		{A16R16G16B16F, Bits{}},
		{NV12, Bits{8, 8, 0}},
		{P010, Bits{10, 16, 0}},
		{Y210, Bits{10, 16, 0}},
		{P216, Bits{16, 16, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.f.String(), func(t *testing.T) {
			got, err := BitDepth(tt.f)
			if err != nil {
				t.Fatalf("BitDepth(%v) error: %v", tt.f, err)
			}
			if got != tt.want {
				t.Errorf("BitDepth(%v) = %+v, want %+v", tt.f, got, tt.want)
			}
		})
	}

	if _, err := BitDepth(I420); !errors.Is(err, errs.UnsupportedFormat) {
		t.Errorf("BitDepth(I420) error = %v, want UnsupportedFormat", err)
	}
}

func TestFormatClasses(t *testing.T) {
	if !I420.IsPL3() || !I420.IsPL3YUV420() {
		t.Error("I420 should be a three-plane 4:2:0 format")
	}
	if P422H.IsPL3YUV420() {
		t.Error("422H is not 4:2:0")
	}
	if !NV12.IsPL2() || NV12.IsPL3() {
		t.Error("NV12 should be two-plane")
	}
	if !UYVY.IsPacked422() || UYVY.IsYUY2() {
		t.Error("UYVY classification wrong")
	}
	if !YUYV.IsYUY2() {
		t.Error("YUYV should alias YUY2")
	}
	if got := P411.Pack(); got != Pack411 {
		t.Errorf("411P pack = %v, want %v", got, Pack411)
	}
}

func TestColorSpaceClasses(t *testing.T) {
	tests := []struct {
		cs                    ColorSpace
		rgb, bt709rgb, bt2020 bool
		fullRange, bt2020RGB  bool
	}{
		{SRGB, true, true, false, true, false},
		{STRGB, true, true, false, false, false},
		{BT601, false, false, false, false, false},
		{BT709FullRange, false, false, false, true, false},
		{BT2020, false, false, true, false, false},
		{BT2020RGB, true, false, true, true, true},
		{BT2020STRGB, true, false, true, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.cs.String(), func(t *testing.T) {
			if got := tt.cs.IsRGB(); got != tt.rgb {
				t.Errorf("IsRGB = %v, want %v", got, tt.rgb)
			}
			if got := tt.cs.IsBT709RGB(); got != tt.bt709rgb {
				t.Errorf("IsBT709RGB = %v, want %v", got, tt.bt709rgb)
			}
			if got := tt.cs.IsBT2020(); got != tt.bt2020 {
				t.Errorf("IsBT2020 = %v, want %v", got, tt.bt2020)
			}
			if got := tt.cs.FullRange(); got != tt.fullRange {
				t.Errorf("FullRange = %v, want %v", got, tt.fullRange)
			}
			if got := tt.cs.IsBT2020RGB(); got != tt.bt2020RGB {
				t.Errorf("IsBT2020RGB = %v, want %v", got, tt.bt2020RGB)
			}
		})
	}
}

func TestChromaSitingString(t *testing.T) {
	tests := []struct {
		s    ChromaSiting
		want string
	}{
		{SitingNone, "None"},
		{HorzLeft | VertTop, "HorzLeft|VertTop"},
		{DefaultSiting, "HorzLeft|VertCenter"},
		{HorzCenter | VertBottom, "HorzCenter|VertBottom"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("ChromaSiting(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
	if !(HorzLeft | VertTop).Has(VertTop) {
		t.Error("Has(VertTop) = false")
	}
}

func TestPlaneTextures(t *testing.T) {
	tests := []struct {
		f    Format
		want []gputypes.TextureFormat
	}{
		{NV12, []gputypes.TextureFormat{gputypes.TextureFormatR8Unorm, gputypes.TextureFormatRG8Unorm}},
		{P010, []gputypes.TextureFormat{gputypes.TextureFormatR16Unorm, gputypes.TextureFormatRG16Unorm}},
		{A8R8G8B8, []gputypes.TextureFormat{gputypes.TextureFormatBGRA8Unorm}},
		{YUY2, []gputypes.TextureFormat{gputypes.TextureFormatRG8Unorm}},
	}
	for _, tt := range tests {
		t.Run(tt.f.String(), func(t *testing.T) {
			got, err := PlaneTextures(tt.f)
			if err != nil {
				t.Fatalf("PlaneTextures(%v) error: %v", tt.f, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("PlaneTextures(%v) = %v, want %v", tt.f, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("plane %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}

	for f := Invalid + 1; f < formatCount; f++ {
		planes, err := PlaneTextures(f)
		if err != nil {
			t.Errorf("PlaneTextures(%v) error: %v", f, err)
			continue
		}
		if f != R8UN && f != R8G8UN && len(planes) != Info(f).Planes {
			t.Errorf("PlaneTextures(%v) has %d planes, descriptor says %d", f, len(planes), Info(f).Planes)
		}
	}
}
