package format

import (
	"errors"
	"testing"

	"github.com/gogpu/vpcomp/internal/errs"
)

func TestInputChannels(t *testing.T) {
	tests := []struct {
		f, sec Format
		want   Channels
	}{
		{A8R8G8B8, Invalid, Channels{0, 1, 2, 3}},
		{RGBP, Invalid, Channels{2, 0, 1, 3}},
		{BGRP, Invalid, Channels{2, 1, 0, 3}},
		{AYUV, Invalid, Channels{1, 2, 0, 3}},
		{YUY2, Invalid, Channels{0, 5, 7, 3}},
		{YVYU, Invalid, Channels{0, 7, 5, 3}},
		{UYVY, Invalid, Channels{1, 4, 6, 3}},
		{VYUY, Invalid, Channels{1, 6, 4, 3}},
		{Y410, Invalid, Channels{1, 0, 2, 3}},
		{NV12, Invalid, Channels{0, 4, 5, 3}},
		{P400, Invalid, Channels{0, 0, 0, 3}},
		{I420, Invalid, Channels{0, 4, 5, 5}},
		{P422V, Invalid, Channels{1, 2, 3, 3}},
		{R8UN, R8G8UN, Channels{0, 4, 5, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.f.String(), func(t *testing.T) {
			got, err := InputChannels(tt.f, tt.sec)
			if err != nil {
				t.Fatalf("InputChannels(%v, %v) error: %v", tt.f, tt.sec, err)
			}
			if got != tt.want {
				t.Errorf("InputChannels(%v, %v) = %v, want %v", tt.f, tt.sec, got, tt.want)
			}
		})
	}

	if _, err := InputChannels(R8UN, Invalid); !errors.Is(err, errs.UnsupportedFormat) {
		t.Errorf("InputChannels(R8UN, Invalid) error = %v, want UnsupportedFormat", err)
	}
}

func TestOutputChannels(t *testing.T) {
	tests := []struct {
		f    Format
		want Channels
	}{
		{A8R8G8B8, Channels{0, 1, 2, 3}},
		{AYUV, Channels{2, 0, 1, 3}},
		{RGBP, Channels{1, 2, 0, 3}},
		{P444, Channels{0, 1, 2, 3}},
		{NV12, Channels{1, 2, 3, 3}},
		{YUY2, Channels{0, 1, 0, 1}},
		{YVYU, Channels{0, 1, 1, 0}},
		{UYVY, Channels{1, 0, 0, 1}},
		{VYUY, Channels{1, 0, 1, 0}},
		{I420, Channels{0, 1, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.f.String(), func(t *testing.T) {
			got, err := OutputChannels(tt.f)
			if err != nil {
				t.Fatalf("OutputChannels(%v) error: %v", tt.f, err)
			}
			if got != tt.want {
				t.Errorf("OutputChannels(%v) = %v, want %v", tt.f, got, tt.want)
			}
		})
	}

	if _, err := OutputChannels(P422H); err == nil {
		t.Error("OutputChannels(422H) should fail")
	}
}

func TestPlaneCount(t *testing.T) {
	tests := []struct {
		name     string
		f        Format
		sep, in  bool
		want     uint32
		wantFail bool
	}{
		{"ARGB", A8R8G8B8, false, true, 1, false},
		{"NV12", NV12, false, true, 2, false},
		{"YUY2 input", YUY2, false, true, 2, false},
		{"YUY2 output", YUY2, false, false, 3, false},
		{"R8UN separate", R8UN, true, true, 2, false},
		{"I420 direct", I420, false, true, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PlaneCount(tt.f, tt.sep, tt.in)
			if tt.wantFail {
				if err == nil {
					t.Fatalf("PlaneCount(%v) = %d, want error", tt.f, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("PlaneCount(%v) error: %v", tt.f, err)
			}
			if got != tt.want {
				t.Errorf("PlaneCount(%v) = %d, want %d", tt.f, got, tt.want)
			}
		})
	}
}

func TestIntermediateFor(t *testing.T) {
	tests := []struct {
		f      Format
		input  bool
		want   Intermediate
		needed bool
		sepSec bool
	}{
		{RGBP, true, Intermediate{Format: A8R8G8B8}, true, false},
		{BGRP, false, Intermediate{Format: A8R8G8B8}, true, false},
		{P444, true, Intermediate{Format: AYUV}, true, false},
		{I420, true, Intermediate{Format: NV12}, true, false},
		{YV12, false, Intermediate{Format: NV12}, true, false},
		{P422H, true, Intermediate{Format: R8UN, SecondPlane: R8G8UN}, true, true},
		{P422H, false, Intermediate{}, false, false},
		{NV12, true, Intermediate{}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.f.String(), func(t *testing.T) {
			got := IntermediateFor(tt.f, tt.input)
			if got != tt.want {
				t.Errorf("IntermediateFor(%v, %v) = %+v, want %+v", tt.f, tt.input, got, tt.want)
			}
			if got.Needed() != tt.needed {
				t.Errorf("Needed() = %v, want %v", got.Needed(), tt.needed)
			}
			if got.SeparateSecondPlane() != tt.sepSec {
				t.Errorf("SeparateSecondPlane() = %v, want %v", got.SeparateSecondPlane(), tt.sepSec)
			}
		})
	}
}
