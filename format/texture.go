package format

import "github.com/gogpu/gputypes"

// PlaneTextures returns the WebGPU texture format used to view each plane
// of f. Packed 4:2:2 layouts are viewed as two-component textures so a
// single texel holds one luma and one chroma sample.
func PlaneTextures(f Format) ([]gputypes.TextureFormat, error) {
	switch f {
	case A8R8G8B8, X8R8G8B8:
		return []gputypes.TextureFormat{gputypes.TextureFormatBGRA8Unorm}, nil
	case A8B8G8R8, X8B8G8R8, AYUV, R8G8B8:
		return []gputypes.TextureFormat{gputypes.TextureFormatRGBA8Unorm}, nil
	case A16R16G16B16, A16B16G16R16, Y416:
		return []gputypes.TextureFormat{gputypes.TextureFormatRGBA16Unorm}, nil
	case A16R16G16B16F, A16B16G16R16F:
		return []gputypes.TextureFormat{gputypes.TextureFormatRGBA16Float}, nil
	case R10G10B10A2, B10G10R10A2, Y410:
		return []gputypes.TextureFormat{gputypes.TextureFormatRGB10A2Unorm}, nil
	case R5G6B5:
		return []gputypes.TextureFormat{gputypes.TextureFormatRGBA8Unorm}, nil
	case YUY2, YUYV, YVYU, UYVY, VYUY:
		return []gputypes.TextureFormat{gputypes.TextureFormatRG8Unorm}, nil
	case Y210, Y216:
		return []gputypes.TextureFormat{gputypes.TextureFormatRG16Unorm}, nil
	case NV12:
		return []gputypes.TextureFormat{gputypes.TextureFormatR8Unorm, gputypes.TextureFormatRG8Unorm}, nil
	case P010, P016, P210, P216:
		return []gputypes.TextureFormat{gputypes.TextureFormatR16Unorm, gputypes.TextureFormatRG16Unorm}, nil
	case P400, R8UN:
		return []gputypes.TextureFormat{gputypes.TextureFormatR8Unorm}, nil
	case R8G8UN:
		return []gputypes.TextureFormat{gputypes.TextureFormatRG8Unorm}, nil
	case I420, IYUV, YV12, IMC3, P422H, P422V, P411, P444, RGBP, BGRP:
		return []gputypes.TextureFormat{
			gputypes.TextureFormatR8Unorm,
			gputypes.TextureFormatR8Unorm,
			gputypes.TextureFormatR8Unorm,
		}, nil
	}
	return nil, unsupported("plane textures", f)
}
