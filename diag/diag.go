// Package diag describes a finished composition for offline comparison
// between the fixed-function and compute compositors. Reports are
// advisory; nothing in the composition depends on them.
package diag

import (
	"strings"

	"github.com/gogpu/vpcomp/format"
	"github.com/gogpu/vpcomp/layer"
)

// Diff flags features of a compute composition whose output differs in
// precision or behavior from the fixed-function compositor.
type Diff uint32

const (
	// DiffBilinearScaling: bilinear sampling shifts differ.
	DiffBilinearScaling Diff = 1 << 0
	// DiffMediaSampler: bilinear reads of semi-planar surfaces go through
	// different surface states.
	DiffMediaSampler Diff = 1 << 1
	// Diff400PRead: 400P input reads differ even with nearest sampling.
	Diff400PRead Diff = 1 << 2
	// DiffRotation: the rotation shift is applied at a different place.
	DiffRotation Diff = 1 << 3
	// DiffProcamp: deinterlace or procamp in use.
	DiffProcamp Diff = 1 << 4
	// DiffLumaKey: keys compare in float rather than integer.
	DiffLumaKey Diff = 1 << 5
	// DiffPackedSiting: packed 4:2:2 output with horizontally centered
	// siting.
	DiffPackedSiting Diff = 1 << 6
	// DiffFixedAlpha: opaque alpha fill into an alpha-carrying output.
	DiffFixedAlpha Diff = 1 << 7
	// DiffRGB565Write: the fixed-function path truncates 5/6/5 writes.
	DiffRGB565Write Diff = 1 << 8
	// DiffBT2020Fill: color fill into a BT.2020 output.
	DiffBT2020Fill Diff = 1 << 9
	// DiffPL3Siting: three-plane 4:2:0 output sited anywhere but top
	// left.
	DiffPL3Siting Diff = 1 << 10
	// DiffFastPath: the fast-path kernel ran.
	DiffFastPath Diff = 1 << 16
	// DiffCompute: the compute compositor ran. Always set on compute
	// reports.
	DiffCompute Diff = 1 << 31
)

var diffNames = []struct {
	bit  Diff
	name string
}{
	{DiffBilinearScaling, "BilinearScaling"},
	{DiffMediaSampler, "MediaSampler"},
	{Diff400PRead, "400PRead"},
	{DiffRotation, "Rotation"},
	{DiffProcamp, "Procamp"},
	{DiffLumaKey, "LumaKey"},
	{DiffPackedSiting, "PackedSiting"},
	{DiffFixedAlpha, "FixedAlpha"},
	{DiffRGB565Write, "RGB565Write"},
	{DiffBT2020Fill, "BT2020Fill"},
	{DiffPL3Siting, "PL3Siting"},
	{DiffFastPath, "FastPath"},
	{DiffCompute, "Compute"},
}

// Has reports whether every bit of f is set.
func (d Diff) Has(f Diff) bool { return d&f == f }

// String returns a "|"-joined list of the set flags.
func (d Diff) String() string {
	if d == 0 {
		return "None"
	}
	var parts []string
	for _, n := range diffNames {
		if d&n.bit != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// DiffOf computes the difference flags of a compute composition.
func DiffOf(layers []layer.Layer, target *layer.Layer, colorFill bool, alpha layer.AlphaOutput, fastPath bool) Diff {
	d := DiffCompute
	if fastPath {
		d |= DiffFastPath
	}

	for i := range layers {
		l := &layers[i]
		if l.Scaling == layer.ScalingBilinear {
			d |= DiffBilinearScaling
			switch l.Format {
			case format.NV12, format.P010, format.P016:
				d |= DiffMediaSampler
			}
		}
		if l.Format == format.P400 {
			d |= Diff400PRead
		}
		if l.Rotation != layer.Identity {
			d |= DiffRotation
		}
		if l.Deinterlace.Enabled || l.Procamp.Enabled {
			d |= DiffProcamp
		}
		if l.LumaKey.Enabled {
			d |= DiffLumaKey
		}
	}

	if target == nil {
		return d
	}
	f := target.Format
	if f.IsPacked422() && target.Siting&format.HorzCenter != 0 {
		d |= DiffPackedSiting
	}
	if f.IsPL3YUV420() && target.Siting != format.HorzLeft|format.VertTop {
		d |= DiffPL3Siting
	}
	switch f {
	case format.A8R8G8B8, format.A8B8G8R8, format.R10G10B10A2, format.B10G10R10A2, format.Y410:
		if alpha.Mode == layer.AlphaOpaque {
			d |= DiffFixedAlpha
		}
	case format.R5G6B5:
		d |= DiffRGB565Write
	}
	if colorFill && target.ColorSpace.IsBT2020() {
		d |= DiffBT2020Fill
	}
	return d
}

// Features counts the features one composition used.
type Features struct {
	Layers         int
	Procamp        int
	Rotation       int
	ChromaUpsample int
	LumaKey        int
	Deinterlace    int

	ColorFill bool
	Alpha     bool
}

// FeaturesOf counts the features of the admitted layers.
func FeaturesOf(layers []layer.Layer, colorFill bool, alpha layer.AlphaOutput) Features {
	f := Features{Layers: len(layers), ColorFill: colorFill, Alpha: alpha.Enabled}
	for i := range layers {
		l := &layers[i]
		if l.Procamp.Enabled {
			f.Procamp++
		}
		if l.Rotation != layer.Identity {
			f.Rotation++
		}
		if l.Deinterlace.Enabled {
			f.Deinterlace++
		}
		if l.LumaKey.Enabled {
			f.LumaKey++
		}
		if l.Siting&format.VertCenter == 0 || l.Siting&format.HorzCenter == 0 {
			f.ChromaUpsample++
		}
	}
	return f
}

// Pack returns the 32-bit feature word: six 4-bit counters from the low
// bits up (layers, procamp, rotation, chroma upsample, luma key,
// deinterlace), a reserved nibble, then the color fill and alpha bits.
// Counters saturate at 15.
func (f Features) Pack() uint32 {
	nibble := func(v int) uint32 { return uint32(min(max(v, 0), 15)) }
	v := nibble(f.Layers) |
		nibble(f.Procamp)<<4 |
		nibble(f.Rotation)<<8 |
		nibble(f.ChromaUpsample)<<12 |
		nibble(f.LumaKey)<<16 |
		nibble(f.Deinterlace)<<20
	if f.ColorFill {
		v |= 1 << 28
	}
	if f.Alpha {
		v |= 1 << 29
	}
	return v
}
