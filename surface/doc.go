// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface describes the image surfaces a composition reads and
// writes.
//
// A Surface is a plain descriptor: format, dimensions, per-plane layout and
// an opaque backing handle owned by the caller's memory manager. The
// compositor never touches pixel memory; it only consumes these fields to
// decide how an execution unit should sample and write the planes.
//
// # Tags
//
// Every surface taking part in a composition is addressed by a [Tag]: the
// kind of slot it fills (input layer, output target, intermediate plane,
// and so on) plus an index. Parameter blocks refer to surfaces by tag, so
// the same block can be replayed against a different set of allocations.
//
// # Providers
//
// A [Provider] resolves tags to surfaces. [Set] is the map-backed
// implementation:
//
//	set := surface.NewSet()
//	set.Register(surface.Input(0), surface.New(format.NV12, 1920, 1080))
//	set.Register(surface.Output(0), surface.New(format.A8R8G8B8, 1920, 1080))
//
//	s, ok := set.Lookup(surface.Input(0))
//
// A tag without a registered surface is reported by [Set.Require] as an
// error matching the missing-surface sentinel of the root package.
package surface
