package sfc

import (
	"github.com/gogpu/vpcomp/format"
	"github.com/gogpu/vpcomp/layer"
)

// InputSupported reports whether the scaler reads f.
func InputSupported(f format.Format) bool {
	switch f {
	case format.NV12, format.P400, format.IMC3, format.P422H, format.P444, format.P010:
		return true
	}
	return false
}

// OutputSupported reports whether the scaler writes f.
func OutputSupported(f format.Format) bool {
	switch f {
	case format.A8R8G8B8, format.NV12, format.P010, format.YUY2:
		return true
	}
	return false
}

// OutputAlignment returns the alignment units of an output format.
func OutputAlignment(f format.Format) (w, h int) {
	switch f {
	case format.NV12, format.P010:
		return 2, 2
	case format.YUY2, format.UYVY:
		return 2, 1
	}
	return 1, 1
}

// jpegInputs maps each JPEG chroma type to the surface format the decoder
// writes it to and the block ordering it delivers. Chroma types missing
// from the table have no scaler path.
var jpegInputs = map[ChromaType]struct {
	format   format.Format
	ordering Ordering
}{
	JPEGYUV400:    {format.P400, OrderingVD8x8JPEG},
	JPEGYUV420:    {format.IMC3, OrderingVD16x16JPEG},
	JPEGYUV422H2Y: {format.P422H, OrderingVD8x8JPEG},
	JPEGYUV422H4Y: {format.P422H, OrderingVD16x16JPEG},
	JPEGYUV444:    {format.P444, OrderingVD8x8JPEG},
	JPEGRGB:       {format.P444, OrderingVD8x8JPEG},
	JPEGBGR:       {format.P444, OrderingVD8x8JPEG},
}

// orderingFor returns the input ordering of the feeding engine.
func orderingFor(req *Request) (Ordering, error) {
	if req.Pipe == PipeVEBox {
		return OrderingVE4x8, nil
	}
	switch req.Codec {
	case CodecVC1:
		return OrderingVD16x16NoShift, nil
	case CodecAVC:
		if req.Deblocking {
			return OrderingVD16x16Shift, nil
		}
		return OrderingVD16x16NoShift, nil
	case CodecVP8:
		if req.Deblocking {
			return OrderingVD16x16Shift, nil
		}
		return OrderingVD16x16VP8, nil
	case CodecJPEG:
		in, ok := jpegInputs[req.JPEG.ChromaType]
		if !ok {
			return 0, unsupported("jpeg chroma type %s", req.JPEG.ChromaType)
		}
		return in.ordering, nil
	}
	return 0, unsupported("no %s ordering for codec %s", req.Pipe, req.Codec)
}

func (b *Builder) checkJPEG(req *Request) error {
	j := &req.JPEG
	if j.Scans != 1 {
		return unsupported("jpeg with %d scans", j.Scans)
	}
	in, ok := jpegInputs[j.ChromaType]
	if !ok {
		return unsupported("jpeg chroma type %s", j.ChromaType)
	}
	if req.Input.Format != in.format {
		return unsupported("jpeg %s decoded to %s, want %s", j.ChromaType, req.Input.Format, in.format)
	}
	switch j.Rotation {
	case layer.Identity, layer.Rotate90, layer.Rotate180, layer.Rotate270:
	default:
		return unsupported("jpeg rotation %s", j.Rotation)
	}
	if (j.ChromaType == JPEGRGB || j.ChromaType == JPEGBGR) && req.Output.Format != format.A8R8G8B8 {
		return unsupported("jpeg %s to %s", j.ChromaType, req.Output.Format)
	}
	return nil
}

func (l *Limits) within(w, h int) bool {
	return w >= l.MinWidth && w <= l.MaxWidth && h >= l.MinHeight && h <= l.MaxHeight
}

func (l *Limits) scaleWithin(s float32) bool {
	return s >= l.MinScale && s <= l.MaxScale
}

// evaluate runs the support checks in hardware order and returns the
// derived geometry.
func (b *Builder) evaluate(req *Request) (checked, error) {
	var c checked
	lim := &b.opts.limits
	in, out := req.Input, req.Output

	if !InputSupported(in.Format) {
		return c, unsupported("input format %s", in.Format)
	}
	if !OutputSupported(out.Format) {
		return c, unsupported("output format %s", out.Format)
	}
	if req.Codec == CodecJPEG && req.Pipe == PipeVDBox {
		if err := b.checkJPEG(req); err != nil {
			return c, err
		}
		c.rotation = req.JPEG.Rotation
	}

	var err error
	if c.ordering, err = orderingFor(req); err != nil {
		return c, err
	}
	var ok bool
	if c.subsampling, ok = subsamplingOf(in.Format.Pack()); !ok {
		return c, unsupported("input chroma layout %s", in.Format.Pack())
	}

	if req.Pipe == PipeVEBox {
		c.inW = ceilAlign(in.Width, lim.VEBoxWidthAlign)
		c.inH = ceilAlign(in.Height, lim.VEBoxHeightAlign)
	} else {
		if !lim.within(in.Width, in.Height) {
			return c, unsupported("input %dx%d", in.Width, in.Height)
		}
		block := c.ordering.BlockSize()
		c.inW = ceilAlign(in.Width, block)
		c.inH = ceilAlign(in.Height, block)
	}
	if !lim.within(c.inW, c.inH) {
		return c, unsupported("padded input %dx%d", c.inW, c.inH)
	}

	c.alignW, c.alignH = OutputAlignment(out.Format)
	dstW, dstH := ceilAlign(out.Width, c.alignW), ceilAlign(out.Height, c.alignH)

	c.src = req.InputRegion
	if c.src == (layer.Rect{}) {
		c.src = layer.R(0, 0, in.Width, in.Height)
	}
	srcW := floorAlign(c.src.Width(), c.alignW)
	srcH := floorAlign(c.src.Height(), c.alignH)
	if srcW <= 0 || srcH <= 0 || srcW > in.Width || srcH > in.Height {
		return c, unsupported("input region %s out of bounds", c.src)
	}

	if !lim.within(dstW, dstH) {
		return c, unsupported("output %dx%d", dstW, dstH)
	}

	c.dst = req.OutputRegion
	if c.dst == (layer.Rect{}) {
		c.dst = layer.R(0, 0, out.Width, out.Height)
	}
	outW := ceilAlign(c.dst.Width(), c.alignW)
	outH := ceilAlign(c.dst.Height(), c.alignH)
	if outW <= 0 || outH <= 0 || outW > out.Width || outH > out.Height {
		return c, unsupported("output region %s out of bounds", c.dst)
	}

	if c.rotation == layer.Rotate90 || c.rotation == layer.Rotate270 {
		srcW, srcH = srcH, srcW
	}
	c.scaleX = float32(outW) / float32(srcW)
	c.scaleY = float32(outH) / float32(srcH)
	if !lim.scaleWithin(c.scaleX) || !lim.scaleWithin(c.scaleY) {
		return c, unsupported("scale %gx%g", c.scaleX, c.scaleY)
	}
	return c, nil
}

func floorAlign(v, a int) int {
	if a <= 1 {
		return v
	}
	return v - v%a
}

func ceilAlign(v, a int) int {
	if a <= 1 {
		return v
	}
	return floorAlign(v+a-1, a)
}
