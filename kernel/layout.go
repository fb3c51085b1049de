package kernel

import "github.com/gogpu/gputypes"

// ArgLayoutEntries returns the bind group 0 layout of k. Samplers bind as
// filtering samplers; every other argument is a uniform buffer of its
// declared size.
func ArgLayoutEntries(k *Kernel) []gputypes.BindGroupLayoutEntry {
	entries := make([]gputypes.BindGroupLayoutEntry, 0, len(k.Args))
	for _, a := range k.Args {
		e := gputypes.BindGroupLayoutEntry{
			Binding:    a.Index,
			Visibility: gputypes.ShaderStageCompute,
		}
		if a.Kind == ArgSampler {
			e.Sampler = &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering}
		} else {
			e.Buffer = &gputypes.BufferBindingLayout{
				Type:           gputypes.BufferBindingTypeUniform,
				MinBindingSize: uint64(a.Size),
			}
		}
		entries = append(entries, e)
	}
	return entries
}

// SurfaceLayoutEntries returns the bind group 1 layout of k: sampled 2D
// textures for inputs and write-only storage textures for outputs.
func SurfaceLayoutEntries(k *Kernel) []gputypes.BindGroupLayoutEntry {
	entries := make([]gputypes.BindGroupLayoutEntry, 0, len(k.Surfaces))
	for _, s := range k.Surfaces {
		e := gputypes.BindGroupLayoutEntry{
			Binding:    s.Index,
			Visibility: gputypes.ShaderStageCompute,
		}
		if s.Output {
			e.StorageTexture = &gputypes.StorageTextureBindingLayout{
				Access:        gputypes.StorageTextureAccessWriteOnly,
				Format:        s.Format,
				ViewDimension: gputypes.TextureViewDimension2D,
			}
		} else {
			e.Texture = &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			}
		}
		entries = append(entries, e)
	}
	return entries
}
