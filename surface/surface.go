// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"

	"github.com/gogpu/vpcomp/format"
)

// Handle is an opaque reference to the memory backing a surface.
// The zero value means no backing allocation.
type Handle uint64

// InvalidHandle represents a surface without backing memory.
const InvalidHandle Handle = 0

// PitchAlignment is the row alignment, in bytes, used by New.
const PitchAlignment = 64

// Plane describes one plane of a surface.
type Plane struct {
	// Offset is the byte offset of the plane from the surface base.
	Offset int

	// Pitch is the row stride in bytes.
	Pitch int

	// Width and Height are the plane dimensions in texels.
	Width  int
	Height int
}

// Surface describes one image surface.
//
// Surfaces are plain values owned by the caller. The compositor reads them
// but never retains or modifies them.
type Surface struct {
	// Format is the pixel layout.
	Format format.Format

	// Width and Height are the luma dimensions in pixels.
	Width  int
	Height int

	// Pitch is the row stride of the first plane in bytes.
	Pitch int

	// Planes holds the layout of every plane, first plane first.
	Planes []Plane

	// Handle references the backing memory.
	Handle Handle

	// QueryVariance asks the fixed-function path to report per-frame
	// variance statistics for this surface.
	QueryVariance bool
}

// New returns a surface descriptor with a contiguous plane layout derived
// from the format's chroma subsampling.
func New(f format.Format, width, height int) *Surface {
	s := &Surface{
		Format: f,
		Width:  width,
		Height: height,
	}
	s.Planes = layoutPlanes(f, width, height)
	if len(s.Planes) > 0 {
		s.Pitch = s.Planes[0].Pitch
	}
	return s
}

// Bounds returns the surface rectangle anchored at the origin.
func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.Width, s.Height)
}

// PlaneCount returns the number of planes in the layout.
func (s *Surface) PlaneCount() int {
	return len(s.Planes)
}

// Size returns the total byte size of all planes.
func (s *Surface) Size() int {
	total := 0
	for _, p := range s.Planes {
		if end := p.Offset + p.Pitch*p.Height; end > total {
			total = end
		}
	}
	return total
}

// bytesPerTexel returns the bytes per texel of each plane.
func bytesPerTexel(f format.Format) []int {
	switch f {
	case format.A16R16G16B16, format.A16B16G16R16, format.A16R16G16B16F, format.A16B16G16R16F, format.Y416:
		return []int{8}
	case format.R5G6B5:
		return []int{2}
	case format.R8G8B8:
		return []int{3}
	case format.YUY2, format.YUYV, format.YVYU, format.UYVY, format.VYUY:
		return []int{2}
	case format.Y210, format.Y216:
		return []int{4}
	case format.NV12:
		return []int{1, 2}
	case format.P010, format.P016, format.P210, format.P216:
		return []int{2, 4}
	case format.P400, format.R8UN:
		return []int{1}
	case format.R8G8UN:
		return []int{2}
	}
	if format.Info(f).Planes == 3 {
		return []int{1, 1, 1}
	}
	return []int{4}
}

func alignUp(v, a int) int {
	return (v + a - 1) / a * a
}

func layoutPlanes(f format.Format, width, height int) []Plane {
	if !f.Valid() || width <= 0 || height <= 0 {
		return nil
	}

	bpp := bytesPerTexel(f)
	fx, fy := 1, 1
	if x, y, err := format.ChromaFactor(f); err == nil {
		fx, fy = x, y
	}
	// P210/P216 declare a 2x2 factor but store full-height chroma rows.
	if f == format.P210 || f == format.P216 {
		fy = 1
	}

	planes := make([]Plane, 0, len(bpp))
	offset := 0
	for i, b := range bpp {
		w, h := width, height
		if i > 0 {
			w = (width + fx - 1) / fx
			h = (height + fy - 1) / fy
		}
		pitch := alignUp(w*b, PitchAlignment)
		planes = append(planes, Plane{Offset: offset, Pitch: pitch, Width: w, Height: h})
		offset += pitch * h
	}
	return planes
}
