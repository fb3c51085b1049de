// Package vpcomp decides how a video-processing pipeline composites layers
// and converts formats.
//
// # Overview
//
// A composition request names up to eight input layers and one output
// surface. vpcomp normalizes the layers, admits as many as the chosen
// compositor can take in one pass, and produces the parameter block a
// driver submits: kernel arguments and surface bindings for the compute
// compositors, or per-layer sampler state for the fixed-function one.
// vpcomp never touches pixels or submits work.
//
// # Quick Start
//
//	c, err := vpcomp.New()
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	set := surface.NewSet()
//	set.Register(surface.Input(0), surface.New(format.NV12, 1920, 1080))
//	set.Register(surface.Output(0), surface.New(format.NV12, 1920, 1080))
//
//	res, err := c.Compose(&layer.Request{
//	    Inputs: []layer.Spec{{Surface: surface.Input(0)}},
//	    Output: layer.Spec{Surface: surface.Output(0)},
//	}, set)
//
// res.Strategy is StrategyFastPath here and res.Jobs() holds one dispatch.
//
// # Strategies
//
//   - StrategyFastPath: one plain layer into a 4:2:0 semi-planar output
//   - StrategyCommon: up to eight layers with blending, keying and
//     deinterlacing
//   - StrategyLegacy: the fixed-function compositor (WithLegacyFallback)
//
// Layers that do not fit one pass are returned in Result.Deferred; the
// caller composes them in a later pass over the same output.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Compositor, Result, Option, Strategy
//   - Data model: format, surface, layer
//   - Kernels: kernel (argument layouts and providers)
//   - Fixed-function scaler: sfc
//   - Diagnostics: diag
//   - Internal: geometry, color and chroma resolvers, admission,
//     parameter building with the argument cache
package vpcomp

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
