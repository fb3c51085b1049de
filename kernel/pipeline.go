// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

// pipeline.go creates HAL compute pipelines for the compositing kernels:
// shader module, one bind group layout per group, pipeline layout and
// pipeline, in that order.

package kernel

import (
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// pipelineEntry holds the HAL objects of one kernel.
type pipelineEntry struct {
	module    hal.ShaderModule
	bgLayouts [2]hal.BindGroupLayout
	layout    hal.PipelineLayout
	pipeline  hal.ComputePipeline
}

// destroy releases whatever part of e was created, newest first.
func (e *pipelineEntry) destroy(device hal.Device) {
	if e.pipeline != nil {
		device.DestroyComputePipeline(e.pipeline)
		e.pipeline = nil
	}
	if e.layout != nil {
		device.DestroyPipelineLayout(e.layout)
		e.layout = nil
	}
	for i := range e.bgLayouts {
		if e.bgLayouts[i] != nil {
			device.DestroyBindGroupLayout(e.bgLayouts[i])
			e.bgLayouts[i] = nil
		}
	}
	if e.module != nil {
		device.DestroyShaderModule(e.module)
		e.module = nil
	}
}

// PipelineCache creates compute pipelines on first use and keeps them
// until Close. It is safe for concurrent use.
type PipelineCache struct {
	mu       sync.Mutex
	device   hal.Device
	provider Provider
	entries  map[string]*pipelineEntry
}

// NewPipelineCache returns an empty cache creating pipelines on device
// with the bind group layouts provider describes.
func NewPipelineCache(device hal.Device, provider Provider) *PipelineCache {
	return &PipelineCache{
		device:   device,
		provider: provider,
		entries:  make(map[string]*pipelineEntry),
	}
}

// Init creates the pipelines of the named kernels, or of every kernel when
// names is empty. Pipelines that already exist are kept.
func (c *PipelineCache) Init(names ...string) error {
	if len(names) == 0 {
		names = Names()
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, name := range names {
		if _, err := c.entry(name); err != nil {
			return err
		}
	}
	slogger().Info("kernel: pipelines initialized", "count", len(c.entries))
	return nil
}

// Pipeline returns the compute pipeline of the named kernel, creating it
// if needed.
func (c *PipelineCache) Pipeline(name string) (hal.ComputePipeline, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, err := c.entry(name)
	if err != nil {
		return nil, err
	}
	return e.pipeline, nil
}

// BindGroupLayouts returns the argument and surface layouts of a kernel
// whose pipeline exists.
func (c *PipelineCache) BindGroupLayouts(name string) ([2]hal.BindGroupLayout, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[name]
	if !ok {
		return [2]hal.BindGroupLayout{}, false
	}
	return e.bgLayouts, true
}

// Len returns the number of created pipelines.
func (c *PipelineCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Close releases every pipeline. The cache may be used again afterwards.
func (c *PipelineCache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for name, e := range c.entries {
		e.destroy(c.device)
		delete(c.entries, name)
	}
}

// entry returns the cached pipeline of name or creates it. c.mu is held.
func (c *PipelineCache) entry(name string) (*pipelineEntry, error) {
	if e, ok := c.entries[name]; ok {
		return e, nil
	}

	k, err := c.provider.Kernel(name)
	if err != nil {
		return nil, err
	}
	src, err := Source(name)
	if err != nil {
		return nil, err
	}

	e := &pipelineEntry{}

	// 1. Shader module from the WGSL source.
	e.module, err = c.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  name,
		Source: hal.ShaderSource{WGSL: src},
	})
	if err != nil {
		return nil, fmt.Errorf("kernel %s: create shader module: %w", name, err)
	}

	// 2. One bind group layout for the arguments, one for the surfaces.
	entries := [2][]gputypes.BindGroupLayoutEntry{ArgLayoutEntries(k), SurfaceLayoutEntries(k)}
	for g := range entries {
		e.bgLayouts[g], err = c.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
			Label:   fmt.Sprintf("%s_bgl%d", name, g),
			Entries: entries[g],
		})
		if err != nil {
			e.destroy(c.device)
			return nil, fmt.Errorf("kernel %s: create bind group layout %d: %w", name, g, err)
		}
	}

	// 3. Pipeline layout.
	e.layout, err = c.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            name + "_pl",
		BindGroupLayouts: []hal.BindGroupLayout{e.bgLayouts[ArgGroup], e.bgLayouts[SurfaceGroup]},
	})
	if err != nil {
		e.destroy(c.device)
		return nil, fmt.Errorf("kernel %s: create pipeline layout: %w", name, err)
	}

	// 4. Compute pipeline.
	e.pipeline, err = c.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:  name,
		Layout: e.layout,
		Compute: hal.ComputeState{
			Module:     e.module,
			EntryPoint: EntryPoint,
		},
	})
	if err != nil {
		e.destroy(c.device)
		return nil, fmt.Errorf("kernel %s: create compute pipeline: %w", name, err)
	}
	c.entries[name] = e

	slogger().Debug("kernel: pipeline created",
		"kernel", name,
		"args", len(k.Args),
		"surfaces", len(k.Surfaces),
		"shader_bytes", len(src))
	return e, nil
}
