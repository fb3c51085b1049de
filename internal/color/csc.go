package color

import (
	"fmt"

	"golang.org/x/image/math/f64"

	"github.com/gogpu/vpcomp/format"
	"github.com/gogpu/vpcomp/internal/errs"
)

// Luma coefficients of the supported matrix families.
type lumaCoefficients struct {
	kr, kb float64
}

var (
	coeffBT601  = lumaCoefficients{kr: 0.299, kb: 0.114}
	coeffBT709  = lumaCoefficients{kr: 0.2126, kb: 0.0722}
	coeffBT2020 = lumaCoefficients{kr: 0.2627, kb: 0.0593}
)

// Normalized code ranges.
const (
	studioLumaOffset = 16.0 / 255
	studioLumaScale  = 219.0 / 255
	studioChroma     = 224.0 / 255
	chromaOffset     = 128.0 / 255
)

// encoder returns the matrix that encodes full-range RGB into cs.
func encoder(cs format.ColorSpace) (f64.Aff4, bool) {
	switch cs {
	case format.SRGB, format.BT2020RGB:
		return Identity, true
	case format.STRGB, format.BT2020STRGB:
		s, o := studioLumaScale, studioLumaOffset
		return f64.Aff4{
			s, 0, 0, o,
			0, s, 0, o,
			0, 0, s, o,
		}, true
	case format.BT601, format.XVYCC601:
		return ycbcr(coeffBT601, false, false), true
	case format.BT601FullRange:
		return ycbcr(coeffBT601, true, false), true
	case format.BT709, format.XVYCC709:
		return ycbcr(coeffBT709, false, false), true
	case format.BT709FullRange:
		return ycbcr(coeffBT709, true, false), true
	case format.BT601Gray:
		return ycbcr(coeffBT601, false, true), true
	case format.BT601GrayFullRange:
		return ycbcr(coeffBT601, true, true), true
	case format.BT2020:
		return ycbcr(coeffBT2020, false, false), true
	case format.BT2020FullRange:
		return ycbcr(coeffBT2020, true, false), true
	}
	return f64.Aff4{}, false
}

// decoder returns the matrix that decodes cs into full-range RGB.
func decoder(cs format.ColorSpace) (f64.Aff4, bool) {
	if cs.Gray() {
		scale, offset := studioLumaScale, studioLumaOffset
		if cs.FullRange() {
			scale, offset = 1, 0
		}
		k := 1 / scale
		return f64.Aff4{
			k, 0, 0, -offset * k,
			k, 0, 0, -offset * k,
			k, 0, 0, -offset * k,
		}, true
	}
	enc, ok := encoder(cs)
	if !ok {
		return f64.Aff4{}, false
	}
	return invert(enc)
}

// ycbcr builds the RGB to YCbCr matrix for the given coefficients. Gray
// spaces keep the luma row and pin chroma to its neutral value.
func ycbcr(k lumaCoefficients, fullRange, gray bool) f64.Aff4 {
	kg := 1 - k.kr - k.kb
	ys, yo, cs := studioLumaScale, studioLumaOffset, studioChroma
	if fullRange {
		ys, yo, cs = 1, 0, 1
	}

	m := f64.Aff4{
		ys * k.kr, ys * kg, ys * k.kb, yo,
		0, 0, 0, chromaOffset,
		0, 0, 0, chromaOffset,
	}
	if gray {
		return m
	}

	cb := cs / (2 * (1 - k.kb))
	cr := cs / (2 * (1 - k.kr))
	m[4], m[5], m[6] = -k.kr*cb, -kg*cb, (1-k.kb)*cb
	m[8], m[9], m[10] = (1-k.kr)*cr, -kg*cr, -k.kb*cr
	return m
}

// Normalized returns the matrix converting normalized values encoded in
// src into values encoded in dst. Spaces on different primaries have no
// matrix path and fail with errs.UnsupportedColorSpacePair.
func Normalized(src, dst format.ColorSpace) (f64.Aff4, error) {
	if src == dst && src.Valid() {
		return Identity, nil
	}
	if !src.Valid() || !dst.Valid() || src.IsBT2020() != dst.IsBT2020() {
		return f64.Aff4{}, fmt.Errorf("%s -> %s: %w", src, dst, errs.UnsupportedColorSpacePair)
	}

	dec, ok := decoder(src)
	if !ok {
		return f64.Aff4{}, fmt.Errorf("%s -> %s: %w", src, dst, errs.UnsupportedColorSpacePair)
	}
	enc, ok := encoder(dst)
	if !ok {
		return f64.Aff4{}, fmt.Errorf("%s -> %s: %w", src, dst, errs.UnsupportedColorSpacePair)
	}
	return Mul(enc, dec), nil
}
