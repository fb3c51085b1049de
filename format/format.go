package format

import "github.com/gogpu/vpcomp/internal/errs"

// Format identifies the pixel layout of a surface.
type Format uint8

// Surface formats understood by the compositor.
const (
	// Invalid is the zero Format.
	Invalid Format = iota

	A8R8G8B8
	X8R8G8B8
	A8B8G8R8
	X8B8G8R8
	A16R16G16B16
	A16B16G16R16
	A16R16G16B16F
	A16B16G16R16F
	R10G10B10A2
	B10G10R10A2
	R5G6B5
	R8G8B8

	// Packed YUV 4:4:4.
	AYUV
	Y410
	Y416

	// Packed YUV 4:2:2.
	YUY2
	YUYV
	YVYU
	UYVY
	VYUY
	Y210
	Y216

	// Semi-planar YUV.
	NV12
	P010
	P016
	P210
	P216

	// Planar formats.
	P400
	I420
	IYUV
	YV12
	IMC3
	P422H
	P422V
	P411
	P444
	RGBP
	BGRP

	// R8UN and R8G8UN are intermediate plane formats used when a
	// 4:2:2 or 4:1:1 planar input is split into luma and chroma planes.
	R8UN
	R8G8UN

	formatCount
)

// ColorPack is the chroma subsampling family of a format.
type ColorPack uint8

// Color packs.
const (
	PackNone ColorPack = iota
	Pack400
	Pack411
	Pack420
	Pack422
	Pack444
)

// String returns the color pack name.
func (p ColorPack) String() string {
	switch p {
	case Pack400:
		return "4:0:0"
	case Pack411:
		return "4:1:1"
	case Pack420:
		return "4:2:0"
	case Pack422:
		return "4:2:2"
	case Pack444:
		return "4:4:4"
	default:
		return "None"
	}
}

// Bits describes the component precision of a format.
type Bits struct {
	Origin int // significant bits per component
	Stored int // bits occupied in memory per component
	Alpha  int // alpha bits, 0 when the format has no alpha
}

// Descriptor is the static description of a Format.
type Descriptor struct {
	Name    string
	Pack    ColorPack
	RGB     bool
	Planes  int
	FactorX int // horizontal chroma subsampling factor, 0 when undefined
	FactorY int // vertical chroma subsampling factor, 0 when undefined
	Bits    Bits
	HasBits bool
	Float   bool
}

var descriptors = [formatCount]Descriptor{
	A8R8G8B8:      {Name: "A8R8G8B8", Pack: Pack444, RGB: true, Planes: 1, FactorX: 1, FactorY: 1, Bits: Bits{8, 8, 8}, HasBits: true},
	X8R8G8B8:      {Name: "X8R8G8B8", Pack: Pack444, RGB: true, Planes: 1, FactorX: 1, FactorY: 1, Bits: Bits{8, 8, 8}, HasBits: true},
	A8B8G8R8:      {Name: "A8B8G8R8", Pack: Pack444, RGB: true, Planes: 1, FactorX: 1, FactorY: 1, Bits: Bits{8, 8, 8}, HasBits: true},
	X8B8G8R8:      {Name: "X8B8G8R8", Pack: Pack444, RGB: true, Planes: 1, FactorX: 1, FactorY: 1, Bits: Bits{8, 8, 8}, HasBits: true},
	A16R16G16B16:  {Name: "A16R16G16B16", Pack: Pack444, RGB: true, Planes: 1, FactorX: 1, FactorY: 1, Bits: Bits{16, 16, 16}, HasBits: true},
	A16B16G16R16:  {Name: "A16B16G16R16", Pack: Pack444, RGB: true, Planes: 1, FactorX: 1, FactorY: 1, Bits: Bits{16, 16, 16}, HasBits: true},
	A16R16G16B16F: {Name: "A16R16G16B16F", Pack: Pack444, RGB: true, Planes: 1, FactorX: 1, FactorY: 1, HasBits: true, Float: true},
	A16B16G16R16F: {Name: "A16B16G16R16F", Pack: Pack444, RGB: true, Planes: 1, FactorX: 1, FactorY: 1, HasBits: true, Float: true},
	R10G10B10A2:   {Name: "R10G10B10A2", Pack: Pack444, RGB: true, Planes: 1, FactorX: 1, FactorY: 1, Bits: Bits{10, 10, 2}, HasBits: true},
	B10G10R10A2:   {Name: "B10G10R10A2", Pack: Pack444, RGB: true, Planes: 1, FactorX: 1, FactorY: 1, Bits: Bits{10, 10, 2}, HasBits: true},
	R5G6B5:        {Name: "R5G6B5", Pack: Pack444, RGB: true, Planes: 1, FactorX: 1, FactorY: 1},
	R8G8B8:        {Name: "R8G8B8", Pack: Pack444, RGB: true, Planes: 1, FactorX: 1, FactorY: 1, Bits: Bits{8, 8, 0}, HasBits: true},

	AYUV: {Name: "AYUV", Pack: Pack444, Planes: 1, FactorX: 1, FactorY: 1, Bits: Bits{8, 8, 8}, HasBits: true},
	Y410: {Name: "Y410", Pack: Pack444, Planes: 1, FactorX: 1, FactorY: 1, Bits: Bits{10, 10, 2}, HasBits: true},
	Y416: {Name: "Y416", Pack: Pack444, Planes: 1, FactorX: 1, FactorY: 1, Bits: Bits{16, 16, 16}, HasBits: true},

	YUY2: {Name: "YUY2", Pack: Pack422, Planes: 1, FactorX: 2, FactorY: 1, Bits: Bits{8, 8, 0}, HasBits: true},
	YUYV: {Name: "YUYV", Pack: Pack422, Planes: 1, FactorX: 2, FactorY: 1, Bits: Bits{8, 8, 0}, HasBits: true},
	YVYU: {Name: "YVYU", Pack: Pack422, Planes: 1, FactorX: 2, FactorY: 1, Bits: Bits{8, 8, 0}, HasBits: true},
	UYVY: {Name: "UYVY", Pack: Pack422, Planes: 1, FactorX: 2, FactorY: 1, Bits: Bits{8, 8, 0}, HasBits: true},
	VYUY: {Name: "VYUY", Pack: Pack422, Planes: 1, FactorX: 2, FactorY: 1, Bits: Bits{8, 8, 0}, HasBits: true},
	Y210: {Name: "Y210", Pack: Pack422, Planes: 1, FactorX: 2, FactorY: 1, Bits: Bits{10, 16, 0}, HasBits: true},
	Y216: {Name: "Y216", Pack: Pack422, Planes: 1, FactorX: 2, FactorY: 1, Bits: Bits{16, 16, 0}, HasBits: true},

	NV12: {Name: "NV12", Pack: Pack420, Planes: 2, FactorX: 2, FactorY: 2, Bits: Bits{8, 8, 0}, HasBits: true},
	P010: {Name: "P010", Pack: Pack420, Planes: 2, FactorX: 2, FactorY: 2, Bits: Bits{10, 16, 0}, HasBits: true},
	P016: {Name: "P016", Pack: Pack420, Planes: 2, FactorX: 2, FactorY: 2, Bits: Bits{16, 16, 0}, HasBits: true},
	P210: {Name: "P210", Pack: Pack422, Planes: 2, FactorX: 2, FactorY: 2, Bits: Bits{10, 16, 0}, HasBits: true},
	P216: {Name: "P216", Pack: Pack422, Planes: 2, FactorX: 2, FactorY: 2, Bits: Bits{16, 16, 0}, HasBits: true},

	P400:  {Name: "400P", Pack: Pack400, Planes: 1, FactorX: 1, FactorY: 1, Bits: Bits{8, 8, 0}, HasBits: true},
	I420:  {Name: "I420", Pack: Pack420, Planes: 3, FactorX: 2, FactorY: 2},
	IYUV:  {Name: "IYUV", Pack: Pack420, Planes: 3, FactorX: 2, FactorY: 2},
	YV12:  {Name: "YV12", Pack: Pack420, Planes: 3, FactorX: 2, FactorY: 2},
	IMC3:  {Name: "IMC3", Pack: Pack420, Planes: 3, FactorX: 2, FactorY: 2},
	P422H: {Name: "422H", Pack: Pack422, Planes: 3, FactorX: 2, FactorY: 1},
	P422V: {Name: "422V", Pack: Pack422, Planes: 3, FactorX: 1, FactorY: 2},
	P411:  {Name: "411P", Pack: Pack411, Planes: 3, FactorX: 4, FactorY: 1},
	P444:  {Name: "444P", Pack: Pack444, Planes: 3, FactorX: 1, FactorY: 1},
	RGBP:  {Name: "RGBP", Pack: Pack444, RGB: true, Planes: 3, FactorX: 1, FactorY: 1},
	BGRP:  {Name: "BGRP", Pack: Pack444, RGB: true, Planes: 3, FactorX: 1, FactorY: 1},

	R8UN:   {Name: "R8UN", Planes: 1},
	R8G8UN: {Name: "R8G8UN", Planes: 1},
}

// Info returns the static descriptor of f.
// The zero Descriptor is returned for unknown formats.
func Info(f Format) Descriptor {
	if f >= formatCount {
		return Descriptor{}
	}
	return descriptors[f]
}

// String returns the conventional format name.
func (f Format) String() string {
	if f == Invalid || f >= formatCount {
		return "Invalid"
	}
	return descriptors[f].Name
}

// Valid reports whether f is a known, non-zero format.
func (f Format) Valid() bool {
	return f > Invalid && f < formatCount
}

// Pack returns the color pack of f.
func (f Format) Pack() ColorPack { return Info(f).Pack }

// IsRGB reports whether f stores RGB components.
func (f Format) IsRGB() bool { return Info(f).RGB }

// IsPL3 reports whether f is a three-plane format.
func (f Format) IsPL3() bool { return Info(f).Planes == 3 }

// IsPL3YUV420 reports whether f is one of the three-plane 4:2:0 formats.
func (f Format) IsPL3YUV420() bool {
	switch f {
	case I420, IYUV, YV12, IMC3:
		return true
	}
	return false
}

// IsPL2 reports whether f is a two-plane (semi-planar) format.
func (f Format) IsPL2() bool { return Info(f).Planes == 2 }

// IsPacked422 reports whether f belongs to the packed 4:2:2 family.
func (f Format) IsPacked422() bool {
	switch f {
	case YUY2, YUYV, YVYU, UYVY, VYUY, Y210, Y216:
		return true
	}
	return false
}

// IsYUY2 reports whether f is the YUY2 format or its YUYV alias.
func (f Format) IsYUY2() bool {
	return f == YUY2 || f == YUYV
}

// IsFloat reports whether f stores half-float components.
func (f Format) IsFloat() bool { return Info(f).Float }

// ChromaFactor returns the horizontal and vertical chroma subsampling
// factors of f. Formats whose subsampling is undefined fail with an
// error matching errs.UnsupportedFormatForChromaSiting.
func ChromaFactor(f Format) (x, y int, err error) {
	d := Info(f)
	if d.FactorX == 0 || d.FactorY == 0 {
		return 0, 0, &FormatError{Op: "chroma factor", Format: f, Err: errs.UnsupportedFormatForChromaSiting}
	}
	return d.FactorX, d.FactorY, nil
}

// BitDepth returns the component precision of f.
// Half-float formats report zero bits.
func BitDepth(f Format) (Bits, error) {
	d := Info(f)
	if !d.HasBits {
		return Bits{}, &FormatError{Op: "bit depth", Format: f, Err: errs.UnsupportedFormat}
	}
	return d.Bits, nil
}
