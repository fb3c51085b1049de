package vpcomp

import (
	"github.com/gogpu/vpcomp/diag"
	"github.com/gogpu/vpcomp/internal/admission"
	"github.com/gogpu/vpcomp/kernel"
)

// Caps describes the hardware features admission depends on.
type Caps = admission.Caps

// Option configures a Compositor during creation.
//
// Example:
//
//	// Compute compositor with the default kernel provider
//	c, err := vpcomp.New()
//
//	// Fixed-function compositor on hardware with an AVS sampler
//	c, err := vpcomp.New(vpcomp.WithLegacyFallback(), vpcomp.WithCaps(vpcomp.Caps{AVS: true}))
type Option func(*options)

// options holds optional configuration for Compositor creation.
type options struct {
	forceBilinear    bool
	legacy           bool
	fastPathDisabled bool
	caps             Caps
	provider         kernel.Provider
	sink             diag.Sink
	argCacheLimit    int
	colorCacheLimit  int
}

// defaultOptions returns the default compositor options.
func defaultOptions() options {
	return options{
		provider:        nil, // Will be set to kernel.Default() if nil
		argCacheLimit:   0,   // Unlimited: one buffer per argument and layer slot
		colorCacheLimit: 64,
	}
}

// WithForceNearestToBilinear upgrades nearest-sampled layers to bilinear
// once any admitted layer samples bilinearly, and makes the first input's
// nearest or bilinear request the default for inputs without one.
func WithForceNearestToBilinear() Option {
	return func(o *options) {
		o.forceBilinear = true
	}
}

// WithLegacyFallback selects the fixed-function compositor instead of the
// compute kernels.
func WithLegacyFallback() Option {
	return func(o *options) {
		o.legacy = true
	}
}

// WithFastPathDisabled keeps eligible single-layer compositions on the
// common kernel.
func WithFastPathDisabled() Option {
	return func(o *options) {
		o.fastPathDisabled = true
	}
}

// WithCaps sets the hardware features used by fixed-function admission.
func WithCaps(c Caps) Option {
	return func(o *options) {
		o.caps = c
	}
}

// WithKernelProvider sets the kernel metadata provider. The default is the
// highest-priority provider registered with the kernel package.
//
// Example:
//
//	c, err := vpcomp.New(vpcomp.WithKernelProvider(kernel.Static{}))
func WithKernelProvider(p kernel.Provider) Option {
	return func(o *options) {
		o.provider = p
	}
}

// WithDiagnostics sends a report of every composition to s. A sink that
// implements SetLogger follows SetLogger while the compositor is open.
func WithDiagnostics(s diag.Sink) Option {
	return func(o *options) {
		o.sink = s
	}
}

// WithArgCacheLimit bounds the number of cached kernel argument buffers.
// 0 means unlimited. A bounded cache reallocates evicted buffers, which
// invalidates the storage of jobs built earlier.
func WithArgCacheLimit(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.argCacheLimit = n
		}
	}
}
