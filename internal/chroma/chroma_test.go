package chroma

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/vpcomp/format"
	"github.com/gogpu/vpcomp/internal/errs"
	"github.com/gogpu/vpcomp/layer"
)

func TestSamplingNeeded(t *testing.T) {
	tests := []struct {
		name     string
		primary  bool
		index    int
		in, out  format.Format
		up, down bool
	}{
		{"NV12 to ARGB", true, 0, format.NV12, format.A8R8G8B8, true, false},
		{"NV12 to YUY2", true, 0, format.NV12, format.YUY2, true, false},
		{"NV12 sub-layer", true, 1, format.NV12, format.A8R8G8B8, false, false},
		{"YUY2 to ARGB", true, 0, format.YUY2, format.A8R8G8B8, true, false},
		{"YUY2 to NV12", true, 3, format.YUY2, format.NV12, false, true},
		{"secondary layer", false, 0, format.NV12, format.A8R8G8B8, false, false},
		{"NV12 to NV12", true, 0, format.NV12, format.NV12, false, false},
		{"ARGB not eligible", true, 0, format.A8R8G8B8, format.NV12, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up, down := SamplingNeeded(tt.primary, tt.index, tt.in, tt.out)
			if up != tt.up || down != tt.down {
				t.Errorf("SamplingNeeded = (%v, %v), want (%v, %v)", up, down, tt.up, tt.down)
			}
		})
	}
}

func TestUpsample(t *testing.T) {
	const w, h = 100, 50
	tests := []struct {
		name    string
		f       format.Format
		siting  format.ChromaSiting
		mode    layer.ScalingMode
		enabled bool
		x, y    float64 // before normalization
	}{
		{"NV12 default", format.NV12, format.SitingNone, layer.ScalingBilinear, true, 0.5, 0},
		{"NV12 top left", format.NV12, format.HorzLeft | format.VertTop, layer.ScalingBilinear, true, 0.5, 0.5},
		{"NV12 center left", format.NV12, format.HorzLeft | format.VertCenter, layer.ScalingBilinear, true, 0.5, 0},
		{"NV12 bottom left", format.NV12, format.HorzLeft | format.VertBottom, layer.ScalingBilinear, true, 0.5, -0.5},
		{"NV12 top center", format.NV12, format.HorzCenter | format.VertTop, layer.ScalingBilinear, true, 0, 0.5},
		{"NV12 center center", format.NV12, format.HorzCenter | format.VertCenter, layer.ScalingBilinear, false, 0, 0},
		{"NV12 bottom center", format.NV12, format.HorzCenter | format.VertBottom, layer.ScalingBilinear, true, 0, -0.5},
		{"NV12 nearest", format.NV12, format.HorzLeft | format.VertTop, layer.ScalingNearest, false, 0.5, 0.5},
		{"YUY2 center", format.YUY2, format.HorzCenter | format.VertTop, layer.ScalingBilinear, true, 0, 0.5},
		{"YUY2 left", format.YUY2, format.HorzLeft | format.VertTop, layer.ScalingBilinear, false, 0.5, 0.5},
		{"422V center", format.P422V, format.HorzLeft | format.VertCenter, layer.ScalingBilinear, true, 0.5, 0},
		{"411 center", format.P411, format.HorzLeft | format.VertCenter, layer.ScalingBilinear, true, 1, 1.5},
		{"411 top", format.P411, format.HorzLeft | format.VertTop, layer.ScalingBilinear, true, 1.5, 1.5},
		{"444 any", format.AYUV, format.HorzCenter | format.VertCenter, layer.ScalingBilinear, false, 0.5, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Upsample(tt.f, tt.siting, tt.mode, w, h)
			if err != nil {
				t.Fatalf("Upsample error: %v", err)
			}
			if got.Enabled != tt.enabled {
				t.Errorf("Enabled = %v, want %v", got.Enabled, tt.enabled)
			}
			if math.Abs(got.X-tt.x/w) > 1e-12 || math.Abs(got.Y-tt.y/h) > 1e-12 {
				t.Errorf("shift = (%v, %v), want (%v, %v)", got.X, got.Y, tt.x/w, tt.y/h)
			}
		})
	}
}

func TestDownsample(t *testing.T) {
	tests := []struct {
		name   string
		f      format.Format
		siting format.ChromaSiting
		want   Weights
	}{
		{"NV12 default", format.NV12, format.SitingNone, Weights{0.5, 0, 0.5, 0}},
		{"NV12 top left", format.NV12, format.HorzLeft | format.VertTop, Weights{1, 0, 0, 0}},
		{"NV12 bottom left", format.NV12, format.HorzLeft | format.VertBottom, Weights{0, 0, 1, 0}},
		{"NV12 top center", format.NV12, format.HorzCenter | format.VertTop, Weights{0.5, 0.5, 0, 0}},
		{"NV12 center center", format.NV12, format.HorzCenter | format.VertCenter, Weights{0.25, 0.25, 0.25, 0.25}},
		{"NV12 bottom center", format.NV12, format.HorzCenter | format.VertBottom, Weights{0, 0, 0.5, 0.5}},
		{"YUY2 center", format.YUY2, format.HorzCenter | format.VertTop, Weights{0.5, 0.5, 0, 0}},
		{"YUY2 default", format.YUY2, format.SitingNone, Weights{1, 0, 0, 0}},
		{"ARGB", format.A8R8G8B8, format.HorzCenter | format.VertCenter, Weights{1, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DownsampleFor(tt.f, tt.siting)
			if err != nil {
				t.Fatalf("DownsampleFor error: %v", err)
			}
			if got.Weights != tt.want {
				t.Errorf("Weights = %v, want %v", got.Weights, tt.want)
			}
			var sum float32
			for _, w := range got.Weights {
				sum += w
			}
			if sum != 1 {
				t.Errorf("weights sum to %v", sum)
			}
		})
	}

	d, _ := DownsampleFor(format.NV12, format.SitingNone)
	if d.FactorX != 2 || d.FactorY != 2 {
		t.Errorf("NV12 factors = %d, %d", d.FactorX, d.FactorY)
	}
}

func TestUnknownFactor(t *testing.T) {
	if _, err := Upsample(format.R8UN, format.SitingNone, layer.ScalingBilinear, 8, 8); !errors.Is(err, errs.UnsupportedFormatForChromaSiting) {
		t.Errorf("Upsample error = %v", err)
	}
	if _, err := DownsampleFor(format.Invalid, format.SitingNone); !errors.Is(err, errs.UnsupportedFormatForChromaSiting) {
		t.Errorf("DownsampleFor error = %v", err)
	}
}
