// Package params assembles the argument blocks of the compute compositing
// kernels: per-layer image records, the target record, the main dispatch
// and the plane conversion jobs around it.
package params

import (
	"encoding/binary"
	"fmt"

	"github.com/gogpu/vpcomp/format"
	"github.com/gogpu/vpcomp/internal/admission"
	"github.com/gogpu/vpcomp/internal/chroma"
	"github.com/gogpu/vpcomp/internal/color"
	"github.com/gogpu/vpcomp/internal/errs"
	"github.com/gogpu/vpcomp/internal/geometry"
	"github.com/gogpu/vpcomp/kernel"
	"github.com/gogpu/vpcomp/layer"
	"github.com/gogpu/vpcomp/surface"
)

// Fast-path dispatch shape: work groups per row.
const fastPathGroupsPerRow = 8

// Alpha layer indices of the target record.
const (
	alphaFromLayer = 0
	alphaFixed     = layer.MaxLayers
)

// Composition is the admitted input of one build.
type Composition struct {
	Layers    []layer.Layer
	Target    *layer.Layer
	ColorFill layer.ColorFill
	Alpha     layer.AlphaOutput
}

// Block is the parameter block of one compute composition.
type Block struct {
	// Pre holds one conversion job per input read through an
	// intermediate surface, in layer order.
	Pre  []Job
	Main Job
	// Post holds the conversion of the intermediate output, if any.
	Post []Job

	Images   []ImageParam
	Target   TargetParam
	FastPath bool
}

// Jobs returns every job in dispatch order.
func (b *Block) Jobs() []Job {
	jobs := make([]Job, 0, len(b.Pre)+1+len(b.Post))
	jobs = append(jobs, b.Pre...)
	jobs = append(jobs, b.Main)
	return append(jobs, b.Post...)
}

// Builder fills kernel arguments by name from the metadata a provider
// returns.
type Builder struct {
	provider kernel.Provider
	args     *ArgCache
	colors   *color.Resolver
}

// NewBuilder returns a builder drawing argument storage from args and
// color matrices from colors.
func NewBuilder(provider kernel.Provider, args *ArgCache, colors *color.Resolver) *Builder {
	return &Builder{provider: provider, args: args, colors: colors}
}

// Build assembles the block composing c with the fast-path kernel when
// fastPath is set and the common kernel otherwise.
func (b *Builder) Build(c *Composition, fastPath bool) (*Block, error) {
	if len(c.Layers) > layer.MaxLayers {
		return nil, fmt.Errorf("%d layers for %d slots: %w", len(c.Layers), layer.MaxLayers, errs.LayerCountOverflow)
	}

	blk := &Block{FastPath: fastPath, Images: make([]ImageParam, len(c.Layers))}
	for i := range c.Layers {
		l := &c.Layers[i]
		if l.Intermediate.Needed() {
			j, err := b.preConversion(i, l)
			if err != nil {
				return nil, fmt.Errorf("layer %d: %w", i, err)
			}
			blk.Pre = append(blk.Pre, j)
		}
		p, err := b.ImageParam(l, c.Target.ColorSpace)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		blk.Images[i] = p
	}

	t, err := b.TargetParam(c, fastPath)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}
	blk.Target = t

	if fastPath {
		blk.Main, err = b.fastPathJob(c, blk.Images, &blk.Target)
	} else {
		blk.Main, err = b.commonJob(c, blk.Images, &blk.Target)
	}
	if err != nil {
		return nil, err
	}
	blk.Main.PerfTag = SelectPerfTag(c.Layers, fastPath)

	if c.Target.Intermediate.Needed() {
		j, err := b.postConversion(c.Target)
		if err != nil {
			return nil, fmt.Errorf("target: %w", err)
		}
		blk.Post = append(blk.Post, j)
	}
	return blk, nil
}

// ImageParam builds the image record of l composed into main.
func (b *Builder) ImageParam(l *layer.Layer, main format.ColorSpace) (ImageParam, error) {
	kf := l.KernelFormat()

	m, err := b.colors.Resolve(l.ColorSpace, main, l.Procamp)
	if err != nil {
		return ImageParam{}, err
	}
	channels, err := format.InputChannels(kf, l.Intermediate.SecondPlane)
	if err != nil {
		return ImageParam{}, err
	}
	s, err := geometry.ResolveSampling(l)
	if err != nil {
		return ImageParam{}, err
	}
	// Siting belongs to the original surface, not the intermediate.
	sh, err := chroma.Upsample(l.Format, l.Siting, l.Scaling, s.InputWidth, s.InputHeight)
	if err != nil {
		return ImageParam{}, err
	}
	planes, err := format.PlaneCount(kf, l.Intermediate.SeparateSecondPlane(), true)
	if err != nil {
		return ImageParam{}, err
	}

	p := ImageParam{
		CSC:           color.Kernel(m),
		InputChannels: channels,
		StartX:        float32(s.StartX),
		StartY:        float32(s.StartY),
		StrideX:       float32(s.StrideX),
		StrideY:       float32(s.StrideY),
		Dst:           s.Target,
		CommonShiftX:  float32(s.CommonShiftX),
		CommonShiftY:  float32(s.CommonShiftY),
		ChromaShiftX:  float32(sh.X),
		ChromaShiftY:  float32(sh.Y),
		RotateIndices: s.RotateIndices,
		PlaneCount:    planes,
		SamplerType:   uint32(s.SamplerType),
		ChromaShift:   sh.Enabled,
		LumaLow:       -1,
		LumaHigh:      -1,
	}
	if err := applyBlend(&p, l.Blend); err != nil {
		return ImageParam{}, err
	}
	if l.LumaKey.Enabled {
		p.LumaLow = float32(l.LumaKey.Low) / 255
		p.LumaHigh = float32(l.LumaKey.High) / 255
	}
	return p, nil
}

func applyBlend(p *ImageParam, bl layer.Blend) error {
	p.ConstAlpha = 1
	switch bl.Mode {
	case layer.BlendNone:
		p.IgnoreSrcAlpha, p.IgnoreDstAlpha = true, true
	case layer.BlendSource:
		p.IgnoreSrcAlpha, p.IgnoreDstAlpha = false, false
	case layer.BlendPartial:
		p.IgnoreSrcAlpha, p.IgnoreDstAlpha = true, false
	case layer.BlendConstant:
		p.IgnoreSrcAlpha, p.IgnoreDstAlpha = true, true
		p.ConstAlpha = float32(bl.Alpha)
	case layer.BlendConstantSource:
		p.IgnoreSrcAlpha, p.IgnoreDstAlpha = false, false
		p.ConstAlpha = float32(bl.Alpha)
	case layer.BlendConstantPartial:
		p.IgnoreSrcAlpha, p.IgnoreDstAlpha = true, false
		p.ConstAlpha = float32(bl.Alpha)
	default:
		return fmt.Errorf("blend mode %s: %w", bl.Mode, errs.InvalidParameter)
	}
	return nil
}

// TargetParam builds the target record of c. The aligned region and the
// combine channels are only set for the fast-path kernel.
func (b *Builder) TargetParam(c *Composition, fastPath bool) (TargetParam, error) {
	t := c.Target
	kf := t.KernelFormat()

	planes, err := format.PlaneCount(kf, t.Intermediate.SeparateSecondPlane(), false)
	if err != nil {
		return TargetParam{}, err
	}
	channels, err := format.OutputChannels(kf)
	if err != nil {
		return TargetParam{}, err
	}
	ds, err := chroma.DownsampleFor(t.Format, t.Siting)
	if err != nil {
		return TargetParam{}, err
	}

	p := TargetParam{
		Channels:   channels,
		ROI:        t.Dst.ClampTo(t.Width(), t.Height()),
		Siting:     ds.Weights,
		PlaneCount: planes,
		FactorX:    uint32(ds.FactorX),
		FactorY:    uint32(ds.FactorY),
		ColorFill:  c.ColorFill.Enabled,
	}
	if c.ColorFill.Enabled {
		p.Background, err = color.FillColor(c.ColorFill, t.ColorSpace)
		if err != nil {
			return TargetParam{}, err
		}
	}
	// Background alpha must be resolved first.
	if err := applyAlpha(&p, c.Alpha); err != nil {
		return TargetParam{}, err
	}

	if fastPath {
		if len(c.Layers) == 0 && !c.ColorFill.Enabled {
			return TargetParam{}, fmt.Errorf("fast path without layers or color fill: %w", errs.InvalidParameter)
		}
		r := admission.FastPathRegion(c.Layers, t, c.ColorFill.Enabled).AlignedOut(8, 4)
		p.AlignedX = uint32(r.Left)
		p.AlignedY = uint32(r.Top)
		p.AlignedWidth = uint32(r.Width() / 2)
		p.AlignedHeight = uint32(r.Height() / 2)
		p.Combine = [2]uint32{0, 1}
	}
	return p, nil
}

func applyAlpha(p *TargetParam, a layer.AlphaOutput) error {
	p.AlphaLayerIndex = alphaFixed
	switch a.Mode {
	case layer.AlphaNone:
		p.Alpha = float32(a.Alpha)
	case layer.AlphaOpaque:
		p.Alpha = 1
	case layer.AlphaBackground:
		p.Alpha = p.Background[3]
	case layer.AlphaSourceStream:
		p.AlphaLayerIndex = alphaFromLayer
	default:
		return fmt.Errorf("alpha mode %s: %w", a.Mode, errs.InvalidParameter)
	}
	if !a.Enabled {
		p.Alpha = 0
		p.AlphaLayerIndex = alphaFixed
	}
	return nil
}

// filler writes argument a into data and reports whether the job uses it.
type filler func(a kernel.Arg, data []byte) (bool, error)

// binder returns the binding of slot s and whether the job binds it.
type binder func(s kernel.Slot) (Binding, bool)

func (b *Builder) lookup(name string) (*kernel.Kernel, error) {
	k, err := b.provider.Kernel(name)
	if err != nil {
		return nil, err
	}
	if k.LocalSize[0] == 0 || k.LocalSize[1] == 0 {
		return nil, fmt.Errorf("kernel %s: local size %v: %w", name, k.LocalSize, errs.InvalidParameter)
	}
	return k, nil
}

// dispatch walks the arguments and slots of k. Local size arguments are
// filled here; everything else goes through fill and bind.
func (b *Builder) dispatch(k *kernel.Kernel, layerIndex int, fill filler, bind binder) (Job, error) {
	j := Job{Kernel: k.Name, Layer: layerIndex, LocalSize: k.LocalSize}
	key := ArgKey{Kernel: k.Name, Layer: max(layerIndex, 0)}

	for _, a := range k.Args {
		key.Index = a.Index
		data, err := b.args.Storage(key, a)
		if err != nil {
			return Job{}, err
		}
		var ok bool
		switch a.Name {
		case kernel.ArgLocalSize, kernel.ArgEnqueuedLocalSize:
			ok, err = true, putU32(a, data, k.LocalSize[:]...)
		default:
			ok, err = fill(a, data)
		}
		if err != nil {
			return Job{}, fmt.Errorf("kernel %s argument %s: %w", k.Name, a.Name, err)
		}
		if ok {
			j.Args = append(j.Args, Arg{Index: a.Index, Name: a.Name, Kind: a.Kind, Data: data})
		}
	}

	for _, s := range k.Surfaces {
		bd, ok := bind(s)
		if !ok {
			continue
		}
		bd.Slot = s.Index
		bd.Name = s.Name
		j.Surfaces = append(j.Surfaces, bd)
	}
	return j, nil
}

func putU32(a kernel.Arg, data []byte, vs ...uint32) error {
	if len(data) != 4*len(vs) {
		return fmt.Errorf("%d bytes for %d lanes of %s: %w", len(data), len(vs), a.Kind, errs.ArgSizeMismatch)
	}
	for i, v := range vs {
		binary.LittleEndian.PutUint32(data[4*i:], v)
	}
	return nil
}

func ceilDiv(a, b uint32) uint32 { return (a + b - 1) / b }

// tiles returns the work groups covering a width x height area.
func tiles(local [3]uint32, width, height int) [2]uint32 {
	return [2]uint32{
		ceilDiv(uint32(max(0, width)), local[0]),
		ceilDiv(uint32(max(0, height)), local[1]),
	}
}

// inputTag returns the surface the main kernel reads for layer l.
func inputTag(i int, l *layer.Layer) surface.Tag {
	if l.Intermediate.Needed() {
		return surface.IntermediateInput(i)
	}
	return surface.Input(i)
}

// outputTag returns the surface the main kernel writes for t.
func outputTag(t *layer.Layer) surface.Tag {
	if t.Intermediate.Needed() {
		return surface.IntermediateOutput()
	}
	return surface.Output(0)
}

// samplerArg fills the two inline sampler arguments.
func samplerArg(a kernel.Arg, data []byte) (bool, error) {
	switch a.Name {
	case kernel.ArgLinearSampler:
		return true, putU32(a, data, uint32(geometry.SamplerBilinear))
	case kernel.ArgNearestSampler:
		return true, putU32(a, data, uint32(geometry.SamplerNearest))
	}
	return false, nil
}

var imageParamSlot = func() map[string]int {
	m := make(map[string]int, layer.MaxLayers)
	for i := range layer.MaxLayers {
		m[kernel.LayerImageParam(i)] = i
	}
	return m
}()

func (b *Builder) commonJob(c *Composition, images []ImageParam, target *TargetParam) (Job, error) {
	k, err := b.lookup(kernel.Common)
	if err != nil {
		return Job{}, err
	}
	n := len(c.Layers)

	fill := func(a kernel.Arg, data []byte) (bool, error) {
		switch a.Name {
		case kernel.ArgLayerNumber:
			return true, putU32(a, data, uint32(n))
		case kernel.ArgTargetParam:
			return true, target.Encode(data)
		}
		if i, ok := imageParamSlot[a.Name]; ok {
			// Unused layer slots stay zeroed.
			if i < n {
				return true, images[i].Encode(data)
			}
			return true, nil
		}
		return samplerArg(a, data)
	}

	bind := func(s kernel.Slot) (Binding, bool) {
		if s.Name == kernel.SlotOutputPlane0 {
			return Binding{Tag: outputTag(c.Target), Output: true}, true
		}
		i, plane, ok := kernel.ParseLayerInput(s.Name)
		if !ok {
			return Binding{}, false
		}
		return layerBinding(c.Layers, i, plane), true
	}

	j, err := b.dispatch(k, -1, fill, bind)
	if err != nil {
		return Job{}, err
	}
	j.Threads = tiles(k.LocalSize, target.ROI.Right, target.ROI.Bottom)
	return j, nil
}

// layerBinding binds plane 0 or 1 of layer i. Missing layers leave plane
// 0 unbound and plane 1 on the sub-plane of plane 0.
func layerBinding(layers []layer.Layer, i, plane int) Binding {
	if i >= len(layers) {
		if plane == 0 {
			return Binding{Tag: surface.Unbound()}
		}
		return Binding{Tag: surface.SubPlane()}
	}
	l := &layers[i]
	bob := l.Deinterlace.Bob()
	if plane == 0 {
		return Binding{Tag: inputTag(i, l), VerticalStride: bob}
	}
	if l.Intermediate.SeparateSecondPlane() {
		return Binding{Tag: surface.SeparateSecondPlane(i), VerticalStride: bob}
	}
	return Binding{Tag: surface.SubPlane()}
}

func (b *Builder) fastPathJob(c *Composition, images []ImageParam, target *TargetParam) (Job, error) {
	k, err := b.lookup(kernel.FastExpress)
	if err != nil {
		return Job{}, err
	}
	n := len(c.Layers)
	if n > 1 {
		return Job{}, fmt.Errorf("fast path with %d layers: %w", n, errs.InvalidParameter)
	}

	// One invocation covers a 2x2 block of the aligned region.
	items := target.AlignedWidth * target.AlignedHeight
	groups := ceilDiv(items, k.LocalSize[0]*k.LocalSize[1])
	rows := ceilDiv(groups, fastPathGroupsPerRow)
	global := [3]uint32{k.LocalSize[0] * fastPathGroupsPerRow, k.LocalSize[1] * rows, 1}

	fill := func(a kernel.Arg, data []byte) (bool, error) {
		switch a.Name {
		case kernel.ArgLayerNumber:
			return true, putU32(a, data, uint32(n))
		case kernel.ArgImageParam:
			if n != 1 {
				return false, nil
			}
			return true, images[0].Encode(data)
		case kernel.ArgTargetParam:
			return true, target.Encode(data)
		case kernel.ArgGlobalSize:
			return true, putU32(a, data, global[:]...)
		}
		return samplerArg(a, data)
	}

	bind := func(s kernel.Slot) (Binding, bool) {
		switch s.Name {
		case kernel.SlotInputPlane0:
			return layerBinding(c.Layers, 0, 0), true
		case kernel.SlotInputPlane1:
			return layerBinding(c.Layers, 0, 1), true
		case kernel.SlotOutputPlane0:
			return Binding{Tag: outputTag(c.Target), Output: true, CombineChannelY: true}, true
		case kernel.SlotOutputPlane1:
			return Binding{Tag: surface.SubPlane()}, true
		}
		return Binding{}, false
	}

	j, err := b.dispatch(k, -1, fill, bind)
	if err != nil {
		return Job{}, err
	}
	j.Threads = [2]uint32{fastPathGroupsPerRow, rows}
	j.GlobalSize = global
	return j, nil
}
