package kernel

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
)

// WGSLProvider reflects kernel metadata from the embedded WGSL sources.
// Each kernel is parsed once, on first use. It is safe for concurrent use.
type WGSLProvider struct {
	mu      sync.Mutex
	kernels map[string]*Kernel
}

// NewWGSLProvider returns an empty provider.
func NewWGSLProvider() *WGSLProvider {
	return &WGSLProvider{kernels: make(map[string]*Kernel)}
}

// Kernel returns the metadata of the named kernel.
func (p *WGSLProvider) Kernel(name string) (*Kernel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if k, ok := p.kernels[name]; ok {
		return k, nil
	}
	src, err := Source(name)
	if err != nil {
		return nil, err
	}
	k, err := Reflect(name, src)
	if err != nil {
		return nil, err
	}
	p.kernels[name] = k

	slogger().Debug("kernel: reflected",
		"kernel", name,
		"args", len(k.Args),
		"surfaces", len(k.Surfaces),
		"local_size", k.LocalSize)
	return k, nil
}

// Reflect parses src and derives the kernel metadata: group 0 bindings
// become arguments, group 1 bindings become surface slots, and the
// workgroup size of the compute entry point becomes the local size.
func Reflect(name, src string) (*Kernel, error) {
	ast, err := naga.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("kernel %s: parse: %w", name, err)
	}
	module, err := naga.LowerWithSource(ast, src)
	if err != nil {
		return nil, fmt.Errorf("kernel %s: lower: %w", name, err)
	}

	k := &Kernel{Name: name}
	found := false
	for _, ep := range module.EntryPoints {
		if ep.Name == EntryPoint && ep.Stage == ir.StageCompute {
			k.LocalSize = ep.Workgroup
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("kernel %s: no compute entry point %q", name, EntryPoint)
	}

	for i := range module.GlobalVariables {
		gv := &module.GlobalVariables[i]
		if gv.Binding == nil {
			continue
		}
		switch gv.Binding.Group {
		case ArgGroup:
			a, err := reflectArg(module, gv)
			if err != nil {
				return nil, fmt.Errorf("kernel %s: %w", name, err)
			}
			k.Args = append(k.Args, a)
		case SurfaceGroup:
			s, err := reflectSlot(module, gv)
			if err != nil {
				return nil, fmt.Errorf("kernel %s: %w", name, err)
			}
			k.Surfaces = append(k.Surfaces, s)
		default:
			return nil, fmt.Errorf("kernel %s: %s in bind group %d", name, gv.Name, gv.Binding.Group)
		}
	}

	sort.Slice(k.Args, func(i, j int) bool { return k.Args[i].Index < k.Args[j].Index })
	sort.Slice(k.Surfaces, func(i, j int) bool { return k.Surfaces[i].Index < k.Surfaces[j].Index })
	return k, nil
}

func reflectArg(module *ir.Module, gv *ir.GlobalVariable) (Arg, error) {
	a := Arg{Index: gv.Binding.Binding, Name: gv.Name}
	switch module.Types[gv.Type].Inner.(type) {
	case ir.SamplerType:
		a.Kind = ArgSampler
		a.Size = SamplerArgSize
		return a, nil
	case ir.ScalarType:
		a.Kind = ArgScalar
	case ir.VectorType:
		a.Kind = ArgVector
	case ir.StructType:
		a.Kind = ArgRecord
	default:
		return Arg{}, fmt.Errorf("argument %s: unsupported type", gv.Name)
	}
	if gv.Space != ir.SpaceUniform {
		return Arg{}, fmt.Errorf("argument %s: not a uniform", gv.Name)
	}
	a.Size = ir.TypeSize(module, gv.Type)
	return a, nil
}

func reflectSlot(module *ir.Module, gv *ir.GlobalVariable) (Slot, error) {
	img, ok := module.Types[gv.Type].Inner.(ir.ImageType)
	if !ok {
		return Slot{}, fmt.Errorf("surface %s: not a texture", gv.Name)
	}
	s := Slot{Index: gv.Binding.Binding, Name: gv.Name}
	if img.Class == ir.ImageClassStorage {
		f, err := storageFormat(img.StorageFormat)
		if err != nil {
			return Slot{}, fmt.Errorf("surface %s: %w", gv.Name, err)
		}
		s.Output = true
		s.Format = f
	}
	return s, nil
}

// storageFormat maps the storage texture formats the kernels write.
func storageFormat(f ir.StorageFormat) (gputypes.TextureFormat, error) {
	switch f {
	case ir.StorageFormatR8Unorm:
		return gputypes.TextureFormatR8Unorm, nil
	case ir.StorageFormatRg8Unorm:
		return gputypes.TextureFormatRG8Unorm, nil
	case ir.StorageFormatRgba8Unorm:
		return gputypes.TextureFormatRGBA8Unorm, nil
	}
	return gputypes.TextureFormatUndefined, fmt.Errorf("unsupported storage format %d", f)
}
