// Package sfc builds the state of the fixed-function scaler that converts
// one decoded picture into one output surface.
//
// A Builder walks a fixed sequence of phases:
//
//	Uninitialized -> Checked -> Initialized -> StateEmitted
//
// Check decides whether the scaler supports the conversion. When it does
// not, the Builder stays in Checked with the conversion marked unsupported
// and every later call fails with ErrUnsupportedSfcConversion; the caller
// must pick another pipeline for that frame. Reset returns the Builder to
// Uninitialized for the next frame.
package sfc

import (
	"fmt"

	"github.com/gogpu/vpcomp/format"
	"github.com/gogpu/vpcomp/internal/errs"
	"github.com/gogpu/vpcomp/layer"
	"github.com/gogpu/vpcomp/surface"
)

// cachelineSize is the unit of the AVS line buffer.
const cachelineSize = 64

// Limits bounds the conversions the scaler accepts.
type Limits struct {
	MinWidth, MinHeight int
	MaxWidth, MaxHeight int

	// VEBoxWidthAlign and VEBoxHeightAlign pad the input frame when the
	// video enhancement engine feeds the scaler.
	VEBoxWidthAlign, VEBoxHeightAlign int

	// MinScale and MaxScale bound the scaling ratio on each axis.
	MinScale, MaxScale float32
}

// DefaultLimits returns the limits of current hardware.
func DefaultLimits() Limits {
	return Limits{
		MinWidth:         128,
		MinHeight:        128,
		MaxWidth:         16384,
		MaxHeight:        16384,
		VEBoxWidthAlign:  16,
		VEBoxHeightAlign: 4,
		MinScale:         0.125,
		MaxScale:         8,
	}
}

// JPEG describes a decoded JPEG picture.
type JPEG struct {
	ChromaType ChromaType

	// Scans is the number of scans in the picture. The scaler handles
	// single-scan (interleaved) pictures only.
	Scans int

	// Rotation is applied by the scaler. Only the four plain rotations
	// are accepted.
	Rotation layer.Rotation
}

// Request is one conversion.
type Request struct {
	Input  *surface.Surface
	Output *surface.Surface

	// InputRegion and OutputRegion select the converted rectangles. The
	// zero value selects the whole surface.
	InputRegion  layer.Rect
	OutputRegion layer.Rect

	// Siting is the chroma siting of the picture. SitingNone selects
	// left-center siting.
	Siting format.ChromaSiting

	Pipe  Pipe
	Codec Codec

	// Deblocking reports in-loop deblocking for AVC and VP8, which shifts
	// the decoder's output blocks.
	Deblocking bool

	// JPEG describes the picture when Codec is CodecJPEG.
	JPEG JPEG
}

// Option configures a Builder.
type Option func(*options)

type options struct {
	limits Limits
}

func defaultOptions() options {
	return options{limits: DefaultLimits()}
}

// WithLimits replaces the default hardware limits.
func WithLimits(l Limits) Option {
	return func(o *options) { o.limits = l }
}

// Builder carries one conversion through the scaler state phases.
// A Builder is not safe for concurrent use.
type Builder struct {
	opts options

	phase  Phase
	reason error
	req    Request
	check  checked
	state  State
}

// checked holds what Check derived for Initialize.
type checked struct {
	ordering    Ordering
	subsampling Subsampling
	rotation    layer.Rotation

	// inW and inH are the padded input frame size.
	inW, inH int

	// alignW and alignH are the output alignment units.
	alignW, alignH int

	src, dst       layer.Rect
	scaleX, scaleY float32
}

// NewBuilder returns a Builder in the Uninitialized phase.
func NewBuilder(opts ...Option) *Builder {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Builder{opts: o}
}

// Phase returns the current phase.
func (b *Builder) Phase() Phase { return b.phase }

// Supported reports whether Check accepted the conversion.
func (b *Builder) Supported() bool { return b.phase >= Checked && b.reason == nil }

// Reset returns the Builder to Uninitialized.
func (b *Builder) Reset() {
	*b = Builder{opts: b.opts}
}

// Check decides whether the scaler supports req. An unsupported conversion
// returns an error matching ErrUnsupportedSfcConversion and leaves the
// Builder in Checked.
func (b *Builder) Check(req *Request) error {
	if b.phase != Uninitialized {
		return fmt.Errorf("sfc: check in phase %s: %w", b.phase, errs.InvalidState)
	}
	if req == nil || req.Input == nil || req.Output == nil {
		return fmt.Errorf("sfc: input and output surfaces are required: %w", errs.MissingRequiredSurface)
	}

	b.req = *req
	b.phase = Checked
	b.check, b.reason = b.evaluate(&b.req)
	if b.reason != nil {
		slogger().Debug("sfc: conversion unsupported",
			"input", req.Input.Format, "output", req.Output.Format, "reason", b.reason)
		return b.reason
	}
	slogger().Debug("sfc: conversion supported",
		"input", req.Input.Format, "output", req.Output.Format,
		"scale_x", b.check.scaleX, "scale_y", b.check.scaleY, "ordering", b.check.ordering)
	return nil
}

// Initialize derives the scaler state of the checked conversion.
func (b *Builder) Initialize() error {
	if b.phase != Checked {
		return fmt.Errorf("sfc: initialize in phase %s: %w", b.phase, errs.InvalidState)
	}
	if b.reason != nil {
		return b.reason
	}
	b.state = b.build()
	b.phase = Initialized
	return nil
}

// Emit returns the scaler state and finishes the conversion. The returned
// state is a copy owned by the caller.
func (b *Builder) Emit() (*State, error) {
	if b.phase == Checked && b.reason != nil {
		return nil, b.reason
	}
	if b.phase != Initialized {
		return nil, fmt.Errorf("sfc: emit in phase %s: %w", b.phase, errs.InvalidState)
	}
	b.phase = StateEmitted
	st := b.state
	return &st, nil
}

// Build runs Check, Initialize and Emit on a fresh Builder.
func Build(req *Request, opts ...Option) (*State, error) {
	b := NewBuilder(opts...)
	if err := b.Check(req); err != nil {
		return nil, err
	}
	if err := b.Initialize(); err != nil {
		return nil, err
	}
	return b.Emit()
}

func unsupported(msg string, args ...any) error {
	return fmt.Errorf("sfc: "+msg+": %w", append(args, errs.UnsupportedSfcConversion)...)
}
