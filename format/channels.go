package format

import "github.com/gogpu/vpcomp/internal/errs"

// Channels maps the four logical components a kernel works with to the
// physical channels it reads or writes.
type Channels [4]uint32

func unsupported(op string, f Format) error {
	return &FormatError{Op: op, Format: f, Err: errs.UnsupportedFormat}
}

// InputChannels returns the channel indices a compositing kernel uses to
// read f. secondPlane is the format of a separately bound second plane and
// only matters for R8UN, which is read together with an R8G8UN plane.
func InputChannels(f, secondPlane Format) (Channels, error) {
	switch f {
	case A8R8G8B8, X8R8G8B8, B10G10R10A2, A16R16G16B16, A16R16G16B16F, R5G6B5, R8G8B8, P444:
		return Channels{0, 1, 2, 3}, nil
	case RGBP:
		return Channels{2, 0, 1, 3}, nil
	case AYUV:
		return Channels{1, 2, 0, 3}, nil
	case A8B8G8R8, X8B8G8R8, R10G10B10A2, A16B16G16R16, A16B16G16R16F:
		return Channels{0, 1, 2, 3}, nil
	case YUY2, YUYV, Y210, Y216:
		return Channels{0, 5, 7, 3}, nil
	case YVYU:
		return Channels{0, 7, 5, 3}, nil
	case UYVY:
		return Channels{1, 4, 6, 3}, nil
	case VYUY:
		return Channels{1, 6, 4, 3}, nil
	case Y410, Y416:
		return Channels{1, 0, 2, 3}, nil
	case NV12, P010, P016, P210, P216:
		return Channels{0, 4, 5, 3}, nil
	case P400:
		return Channels{0, 0, 0, 3}, nil
	case BGRP:
		return Channels{2, 1, 0, 3}, nil
	case YV12, I420, IMC3, IYUV:
		return Channels{0, 4, 5, 5}, nil
	case P422H, P422V, P411:
		return Channels{1, 2, 3, 3}, nil
	case R8UN:
		if secondPlane == R8G8UN {
			return Channels{0, 4, 5, 3}, nil
		}
	}
	return Channels{}, unsupported("input channels", f)
}

// OutputChannels returns the channel indices a kernel uses to write f.
func OutputChannels(f Format) (Channels, error) {
	switch f {
	case A8R8G8B8, X8R8G8B8, B10G10R10A2, A16R16G16B16, A16R16G16B16F, R5G6B5, R8G8B8:
		return Channels{0, 1, 2, 3}, nil
	case AYUV:
		return Channels{2, 0, 1, 3}, nil
	case A8B8G8R8, X8B8G8R8, R10G10B10A2, A16B16G16R16, A16B16G16R16F:
		return Channels{0, 1, 2, 3}, nil
	case RGBP, BGRP:
		return Channels{1, 2, 0, 3}, nil
	case P444:
		return Channels{0, 1, 2, 3}, nil
	case Y410, Y416:
		return Channels{1, 0, 2, 3}, nil
	case NV12, P010, P016, P210, P216:
		return Channels{1, 2, 3, 3}, nil
	case P400:
		return Channels{0, 0, 0, 3}, nil
	case YUY2, YUYV, Y210, Y216:
		return Channels{0, 1, 0, 1}, nil
	case YVYU:
		return Channels{0, 1, 1, 0}, nil
	case UYVY:
		return Channels{1, 0, 0, 1}, nil
	case VYUY:
		return Channels{1, 0, 1, 0}, nil
	case YV12, I420, IMC3, IYUV:
		return Channels{0, 1, 0, 0}, nil
	}
	return Channels{}, unsupported("output channels", f)
}

// LumaChannel returns the channel holding luma in the first plane of a
// three-plane YUV format.
func LumaChannel(f Format) (uint32, error) {
	switch f {
	case YV12, I420, IMC3, IYUV, P422H, P422V, P411:
		return 0, nil
	}
	return 0, unsupported("luma channel", f)
}

// PlaneCount returns the number of planes a kernel binds for f.
// Packed 4:2:2 formats bind two planes when read and three when written.
// Formats outside the table bind two planes when a separate second plane
// is in use and are rejected otherwise.
func PlaneCount(f Format, separateSecondPlane, isInput bool) (uint32, error) {
	switch f {
	case A8R8G8B8, X8R8G8B8, A16R16G16B16, R10G10B10A2, AYUV, A16R16G16B16F,
		A8B8G8R8, X8B8G8R8, A16B16G16R16, B10G10R10A2, A16B16G16R16F,
		Y410, Y416, P400, R5G6B5, R8G8B8:
		return 1, nil
	case NV12, P010, P016, P210, P216:
		return 2, nil
	case YUY2, YUYV, YVYU, UYVY, VYUY, Y210, Y216:
		if isInput {
			return 2, nil
		}
		return 3, nil
	}
	if separateSecondPlane {
		return 2, nil
	}
	return 0, unsupported("plane count", f)
}

// Intermediate describes the packed representation a compositing kernel
// reads or writes in place of a format it cannot access directly.
type Intermediate struct {
	// Format is the packed format of the intermediate surface.
	Format Format
	// SecondPlane is the format of a separately allocated second plane,
	// Invalid when the intermediate has a single surface.
	SecondPlane Format
}

// Needed reports whether an intermediate surface is required.
func (i Intermediate) Needed() bool { return i.Format != Invalid }

// SeparateSecondPlane reports whether the chroma plane is split out.
func (i Intermediate) SeparateSecondPlane() bool { return i.SecondPlane != Invalid }

// IntermediateFor returns the intermediate surface used for f. Three-plane
// 4:2:2 and 4:1:1 layouts only have an intermediate when read.
func IntermediateFor(f Format, isInput bool) Intermediate {
	switch f {
	case RGBP, BGRP:
		return Intermediate{Format: A8R8G8B8}
	case P444:
		return Intermediate{Format: AYUV}
	case I420, IMC3, IYUV, YV12:
		return Intermediate{Format: NV12}
	case P422H, P422V, P411:
		if isInput {
			return Intermediate{Format: R8UN, SecondPlane: R8G8UN}
		}
	}
	return Intermediate{}
}
