//go:build !nogpu

package kernel

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/vpcomp/internal/errs"
)

// createNoopDevice creates a noop device for testing.
// Returns the device and a cleanup function.
func createNoopDevice(t *testing.T) (hal.Device, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, cleanup
}

func TestPipelineCacheInit(t *testing.T) {
	device, cleanup := createNoopDevice(t)
	defer cleanup()

	c := NewPipelineCache(device, Static{})
	if err := c.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if got, want := c.Len(), len(Names()); got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
	for _, name := range Names() {
		if _, ok := c.BindGroupLayouts(name); !ok {
			t.Errorf("no layouts for %s", name)
		}
	}

	// A second Init keeps the existing pipelines.
	if err := c.Init(Common); err != nil {
		t.Fatalf("second Init: %v", err)
	}
	if got := c.Len(); got != len(Names()) {
		t.Errorf("Len() after second Init = %d", got)
	}

	c.Close()
	if c.Len() != 0 {
		t.Errorf("Len() after Close = %d", c.Len())
	}
}

func TestPipelineCacheLazy(t *testing.T) {
	device, cleanup := createNoopDevice(t)
	defer cleanup()

	c := NewPipelineCache(device, NewWGSLProvider())
	defer c.Close()

	p1, err := c.Pipeline(FastExpress)
	if err != nil {
		t.Fatalf("Pipeline: %v", err)
	}
	if p1 == nil {
		t.Fatal("nil pipeline")
	}
	p2, err := c.Pipeline(FastExpress)
	if err != nil {
		t.Fatal(err)
	}
	if p1 != p2 {
		t.Error("pipeline created twice")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if _, ok := c.BindGroupLayouts(Common); ok {
		t.Error("layouts reported for a kernel never created")
	}
}

func TestPipelineCacheUnknownKernel(t *testing.T) {
	device, cleanup := createNoopDevice(t)
	defer cleanup()

	c := NewPipelineCache(device, Static{})
	if _, err := c.Pipeline("fc_unknown"); !errors.Is(err, errs.UnknownKernel) {
		t.Errorf("error = %v, want UnknownKernel", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}
