// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"sync"
	"testing"

	"github.com/gogpu/vpcomp/format"
	"github.com/gogpu/vpcomp/internal/errs"
)

func TestSetRegisterLookup(t *testing.T) {
	set := NewSet()
	in := New(format.NV12, 1920, 1080)
	set.Register(Input(0), in)

	got, ok := set.Lookup(Input(0))
	if !ok {
		t.Fatal("registered surface not found")
	}
	if got != in {
		t.Error("Lookup returned a different surface")
	}
	if set.Len() != 1 {
		t.Errorf("Len() = %d, want 1", set.Len())
	}

	set.Remove(Input(0))
	if _, ok := set.Lookup(Input(0)); ok {
		t.Error("surface should be gone after Remove")
	}
}

func TestSetRequireMissing(t *testing.T) {
	set := NewSet()
	_, err := set.Require(Output(0))
	if !errors.Is(err, errs.MissingRequiredSurface) {
		t.Fatalf("Require error = %v, want MissingRequiredSurface", err)
	}

	_, err = Require(nil, Input(0))
	if !errors.Is(err, errs.MissingRequiredSurface) {
		t.Fatalf("Require(nil) error = %v, want MissingRequiredSurface", err)
	}
}

func TestSetNilSurfaceIsMissing(t *testing.T) {
	set := NewSet()
	set.Register(Input(1), nil)
	if _, ok := set.Lookup(Input(1)); ok {
		t.Error("nil surface should not resolve")
	}
}

func TestSetTagsOrdered(t *testing.T) {
	set := NewSet()
	set.Register(Output(0), New(format.A8R8G8B8, 8, 8))
	set.Register(Input(2), New(format.NV12, 8, 8))
	set.Register(Input(0), New(format.NV12, 8, 8))
	set.Register(SubPlane(), New(format.R8UN, 8, 8))

	want := []Tag{Input(0), Input(2), Output(0), SubPlane()}
	got := set.Tags()
	if len(got) != len(want) {
		t.Fatalf("Tags() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Tags()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSetConcurrent(t *testing.T) {
	set := NewSet()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			set.Register(Input(i), New(format.NV12, 16, 16))
			_, _ = set.Lookup(Input(i))
		}(i)
	}
	wg.Wait()
	if set.Len() != 8 {
		t.Errorf("Len() = %d, want 8", set.Len())
	}
}
