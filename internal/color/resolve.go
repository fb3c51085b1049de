package color

import (
	"golang.org/x/image/math/f64"

	"github.com/gogpu/vpcomp/format"
	"github.com/gogpu/vpcomp/internal/cache"
	"github.com/gogpu/vpcomp/layer"
)

// Resolve returns the matrix a compositing kernel applies to a layer
// encoded in src to produce values encoded in dst, with p applied when
// enabled.
//
// Without procamp the result is Identity for equal spaces and the
// normalized conversion otherwise. With procamp the adjustment runs in the
// YUV domain, wrapped by pre and back conversions:
//   - YUV to RGB: procamp on the source, then convert.
//   - RGB to YUV: convert, then procamp.
//   - RGB to RGB on BT.709 or BT.2020 primaries: through the YUV space of
//     those primaries and back.
//   - YUV to YUV: convert when the spaces differ, then procamp.
func Resolve(src, dst format.ColorSpace, p layer.Procamp) (f64.Aff4, error) {
	if !p.Enabled {
		if src == dst {
			return Identity, nil
		}
		return Normalized(src, dst)
	}

	pre, back := Identity, Identity
	var err error
	switch {
	case dst.IsRGB() && !src.IsRGB():
		back, err = Normalized(src, dst)
	case src.IsRGB() && !dst.IsRGB():
		pre, err = Normalized(src, dst)
	case src.IsBT709RGB() && dst.IsBT709RGB():
		if pre, err = Normalized(src, format.BT709); err == nil {
			back, err = Normalized(format.BT709, dst)
		}
	case src.IsBT2020RGB() && dst.IsBT2020RGB():
		if pre, err = Normalized(src, format.BT2020); err == nil {
			back, err = Normalized(format.BT2020, dst)
		}
	case src != dst:
		pre, err = Normalized(src, dst)
	}
	if err != nil {
		return f64.Aff4{}, err
	}
	return Mul(back, Mul(Procamp(p), pre)), nil
}

// KernelMatrix is the matrix layout the compositing kernels read: the
// three linear rows followed by the offset column. The fourth lane of
// every vector is padding.
type KernelMatrix struct {
	S0123 [4]float32
	S4567 [4]float32
	S89AB [4]float32
	SCDEF [4]float32
}

// Kernel converts m into the kernel layout.
func Kernel(m f64.Aff4) KernelMatrix {
	return KernelMatrix{
		S0123: [4]float32{float32(m[0]), float32(m[1]), float32(m[2])},
		S4567: [4]float32{float32(m[4]), float32(m[5]), float32(m[6])},
		S89AB: [4]float32{float32(m[8]), float32(m[9]), float32(m[10])},
		SCDEF: [4]float32{float32(m[3]), float32(m[7]), float32(m[11])},
	}
}

type resolveKey struct {
	src, dst format.ColorSpace
	procamp  layer.Procamp
}

// Resolver memoizes Resolve. Failed resolutions are not cached.
type Resolver struct {
	cache *cache.Cache[resolveKey, f64.Aff4]
}

// NewResolver returns a Resolver keeping at most limit matrices.
func NewResolver(limit int) *Resolver {
	return &Resolver{cache: cache.New[resolveKey, f64.Aff4](limit)}
}

// Resolve is the memoized form of the package-level Resolve.
func (r *Resolver) Resolve(src, dst format.ColorSpace, p layer.Procamp) (f64.Aff4, error) {
	if !p.Enabled {
		// Disabled parameters do not influence the result.
		p = layer.Procamp{}
	}
	key := resolveKey{src: src, dst: dst, procamp: p}
	if m, ok := r.cache.Get(key); ok {
		return m, nil
	}
	m, err := Resolve(src, dst, p)
	if err != nil {
		return f64.Aff4{}, err
	}
	r.cache.Set(key, m)
	return m, nil
}

// Stats reports the memo cache statistics.
func (r *Resolver) Stats() cache.Stats { return r.cache.Stats() }
