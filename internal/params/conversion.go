package params

import (
	"fmt"

	"github.com/gogpu/vpcomp/format"
	"github.com/gogpu/vpcomp/internal/errs"
	"github.com/gogpu/vpcomp/kernel"
	"github.com/gogpu/vpcomp/layer"
	"github.com/gogpu/vpcomp/surface"
)

// preConversion returns the job unpacking input i into its intermediate.
func (b *Builder) preConversion(i int, l *layer.Layer) (Job, error) {
	switch l.Format {
	case format.I420, format.IYUV, format.YV12, format.IMC3:
		return b.read420PL3(i, l)
	case format.RGBP, format.BGRP, format.P444:
		return b.read444PL3(i, l)
	case format.P422H, format.P422V, format.P411:
		return b.read422HV(i, l)
	}
	return Job{}, fmt.Errorf("no input conversion for %s: %w", l.Format, errs.UnsupportedFormat)
}

// postConversion returns the job writing the intermediate output into t.
func (b *Builder) postConversion(t *layer.Layer) (Job, error) {
	switch t.Format {
	case format.I420, format.IYUV, format.YV12, format.IMC3:
		return b.write420PL3(t)
	case format.RGBP, format.BGRP, format.P444:
		return b.write444PL3(t)
	}
	return Job{}, fmt.Errorf("no output conversion for %s: %w", t.Format, errs.UnsupportedFormat)
}

// bindings maps slot names to fixed bindings.
func bindings(m map[string]Binding) binder {
	return func(s kernel.Slot) (Binding, bool) {
		bd, ok := m[s.Name]
		return bd, ok
	}
}

func (b *Builder) read420PL3(i int, l *layer.Layer) (Job, error) {
	k, err := b.lookup(kernel.Read420PL3)
	if err != nil {
		return Job{}, err
	}
	luma, err := format.LumaChannel(l.Format)
	if err != nil {
		return Job{}, err
	}
	ch, err := format.InputChannels(l.Format, format.Invalid)
	if err != nil {
		return Job{}, err
	}
	w, h := l.Width(), l.Height()

	fill := func(a kernel.Arg, data []byte) (bool, error) {
		switch a.Name {
		case kernel.ArgWidth:
			return true, putU32(a, data, uint32(w))
		case kernel.ArgHeight:
			return true, putU32(a, data, uint32(h))
		case kernel.ArgLumaIndex:
			return true, putU32(a, data, luma)
		case kernel.ArgChromaIndices:
			return true, putU32(a, data, ch[:]...)
		}
		return false, nil
	}
	bind := bindings(map[string]Binding{
		kernel.SlotInputY:   {Tag: surface.Input(i)},
		kernel.SlotInputU:   {Tag: surface.SubPlane()},
		kernel.SlotInputV:   {Tag: surface.SubPlane()},
		kernel.SlotOutputY:  {Tag: surface.IntermediateInput(i), Output: true},
		kernel.SlotOutputUV: {Tag: surface.SubPlane()},
	})

	j, err := b.dispatch(k, i, fill, bind)
	if err != nil {
		return Job{}, err
	}
	j.Threads = tiles(k.LocalSize, w, h)
	return j, nil
}

func (b *Builder) write420PL3(t *layer.Layer) (Job, error) {
	k, err := b.lookup(kernel.Write420PL3)
	if err != nil {
		return Job{}, err
	}
	luma, err := format.LumaChannel(t.Format)
	if err != nil {
		return Job{}, err
	}
	ch, err := format.OutputChannels(t.Format)
	if err != nil {
		return Job{}, err
	}
	w, h := t.Width(), t.Height()

	fill := func(a kernel.Arg, data []byte) (bool, error) {
		switch a.Name {
		case kernel.ArgWidth:
			return true, putU32(a, data, uint32(w))
		case kernel.ArgHeight:
			return true, putU32(a, data, uint32(h))
		case kernel.ArgLumaIndex:
			return true, putU32(a, data, luma)
		case kernel.ArgUIndex:
			return true, putU32(a, data, ch[0])
		case kernel.ArgVIndex:
			return true, putU32(a, data, ch[1])
		}
		return false, nil
	}
	bind := bindings(map[string]Binding{
		kernel.SlotInputY:  {Tag: surface.IntermediateOutput()},
		kernel.SlotInputUV: {Tag: surface.SubPlane()},
		kernel.SlotOutputY: {Tag: surface.Output(0), Output: true},
		kernel.SlotOutputU: {Tag: surface.SubPlane()},
		kernel.SlotOutputV: {Tag: surface.SubPlane()},
	})

	j, err := b.dispatch(k, -1, fill, bind)
	if err != nil {
		return Job{}, err
	}
	j.Threads = tiles(k.LocalSize, w, h)
	return j, nil
}

// chromaPlaneSize returns the size of the chroma planes of a three-plane
// 4:2:2 or 4:1:1 surface.
func chromaPlaneSize(f format.Format, w, h int) (int, int, error) {
	switch f {
	case format.P422H:
		return w / 2, h, nil
	case format.P422V:
		return w, h / 2, nil
	case format.P411:
		return w / 4, h, nil
	}
	return 0, 0, fmt.Errorf("chroma plane of %s: %w", f, errs.InvalidParameter)
}

func (b *Builder) read422HV(i int, l *layer.Layer) (Job, error) {
	k, err := b.lookup(kernel.Read422HV)
	if err != nil {
		return Job{}, err
	}
	w, h := l.Width(), l.Height()
	cw, chh, err := chromaPlaneSize(l.Format, w, h)
	if err != nil {
		return Job{}, err
	}
	idx, err := format.LumaChannel(l.Format)
	if err != nil {
		return Job{}, err
	}
	ch, err := format.InputChannels(l.Format, format.Invalid)
	if err != nil {
		return Job{}, err
	}

	fill := func(a kernel.Arg, data []byte) (bool, error) {
		switch a.Name {
		case kernel.ArgWidthUV:
			return true, putU32(a, data, uint32(cw))
		case kernel.ArgHeightUV:
			return true, putU32(a, data, uint32(chh))
		case kernel.ArgInputIndex:
			return true, putU32(a, data, idx)
		case kernel.ArgOutputIndex:
			return true, putU32(a, data, ch[:]...)
		}
		return false, nil
	}
	bind := bindings(map[string]Binding{
		kernel.SlotPlane0:    {Tag: surface.Input(i)},
		kernel.SlotPlane1:    {Tag: surface.SubPlane()},
		kernel.SlotPlane2:    {Tag: surface.SubPlane()},
		kernel.SlotOutPlane0: {Tag: surface.IntermediateInput(i), Output: true},
		kernel.SlotOutPlane1: {Tag: surface.SeparateSecondPlane(i), Output: true},
	})

	j, err := b.dispatch(k, i, fill, bind)
	if err != nil {
		return Job{}, err
	}
	j.Threads = tiles(k.LocalSize, w, h)
	return j, nil
}

func (b *Builder) read444PL3(i int, l *layer.Layer) (Job, error) {
	k, err := b.lookup(kernel.Read444PL3)
	if err != nil {
		return Job{}, err
	}
	in, err := format.InputChannels(l.Format, format.Invalid)
	if err != nil {
		return Job{}, err
	}
	out, err := format.OutputChannels(l.Intermediate.Format)
	if err != nil {
		return Job{}, err
	}
	w, h := l.Width(), l.Height()

	fill := func(a kernel.Arg, data []byte) (bool, error) {
		switch a.Name {
		case kernel.ArgInputIndex:
			return true, putU32(a, data, in[:]...)
		case kernel.ArgOutputIndex:
			return true, putU32(a, data, out[:]...)
		case kernel.ArgPlaneIndex:
			return true, putU32(a, data, 0)
		}
		return false, nil
	}
	bind := bindings(map[string]Binding{
		kernel.SlotPlane0:    {Tag: surface.Input(i)},
		kernel.SlotPlane1:    {Tag: surface.SubPlane()},
		kernel.SlotPlane2:    {Tag: surface.SubPlane()},
		kernel.SlotOutPlane0: {Tag: surface.IntermediateInput(i), Output: true},
	})

	j, err := b.dispatch(k, i, fill, bind)
	if err != nil {
		return Job{}, err
	}
	j.Threads = tiles(k.LocalSize, w, h)
	return j, nil
}

func (b *Builder) write444PL3(t *layer.Layer) (Job, error) {
	k, err := b.lookup(kernel.Write444PL3)
	if err != nil {
		return Job{}, err
	}
	in, err := format.InputChannels(t.Intermediate.Format, t.Intermediate.SecondPlane)
	if err != nil {
		return Job{}, err
	}
	out, err := format.OutputChannels(t.Format)
	if err != nil {
		return Job{}, err
	}
	w, h := t.Width(), t.Height()

	fill := func(a kernel.Arg, data []byte) (bool, error) {
		switch a.Name {
		case kernel.ArgInputIndex:
			return true, putU32(a, data, in[:]...)
		case kernel.ArgOutputIndex:
			return true, putU32(a, data, out[:]...)
		}
		return false, nil
	}
	bind := bindings(map[string]Binding{
		kernel.SlotPlane0:    {Tag: surface.IntermediateOutput()},
		kernel.SlotOutPlane0: {Tag: surface.Output(0), Output: true},
		kernel.SlotOutPlane1: {Tag: surface.SubPlane()},
		kernel.SlotOutPlane2: {Tag: surface.SubPlane()},
	})

	j, err := b.dispatch(k, -1, fill, bind)
	if err != nil {
		return Job{}, err
	}
	j.Threads = tiles(k.LocalSize, w, h)
	return j, nil
}
