// Package compose selects the composition strategy for a request and runs
// it. All three strategies share the geometry, color and chroma resolvers;
// only the block they emit differs.
package compose

import (
	"github.com/gogpu/vpcomp/internal/admission"
	"github.com/gogpu/vpcomp/internal/color"
	"github.com/gogpu/vpcomp/internal/params"
	"github.com/gogpu/vpcomp/layer"
)

// Kind identifies a composition strategy.
type Kind uint8

const (
	// KindLegacy is the fixed-function compositor.
	KindLegacy Kind = iota
	// KindCommon is the general compute kernel.
	KindCommon
	// KindFastPath is the single-layer compute kernel.
	KindFastPath
)

// String returns the strategy name.
func (k Kind) String() string {
	switch k {
	case KindLegacy:
		return "Legacy"
	case KindCommon:
		return "Common"
	case KindFastPath:
		return "FastPath"
	default:
		return "Unknown"
	}
}

// Plan is the output of one strategy. Exactly one of Block and Legacy is
// set.
type Plan struct {
	Kind   Kind
	Block  *params.Block
	Legacy *LegacyBlock
}

// Strategy composes admitted layers into a plan.
type Strategy interface {
	Kind() Kind
	Build(c *params.Composition) (*Plan, error)
}

// Config parameterizes admission and strategy selection.
type Config struct {
	Caps admission.Caps

	// Slots is the compute kernel's layer slot count, layer.MaxLayers
	// when zero.
	Slots int

	// Legacy selects the fixed-function compositor.
	Legacy bool

	// FastPathDisabled keeps the compute path on the common kernel.
	FastPathDisabled bool

	// ForceBilinear upgrades nearest layers to bilinear once any admitted
	// layer samples bilinearly.
	ForceBilinear bool
}

// Composer owns the three strategies of one composition context.
type Composer struct {
	cfg    Config
	legacy *Legacy
	common *Common
	fast   *FastPath
}

// New returns a composer building compute blocks with b and fixed-function
// color matrices with colors.
func New(cfg Config, b *params.Builder, colors *color.Resolver) *Composer {
	if cfg.Slots <= 0 {
		cfg.Slots = layer.MaxLayers
	}
	return &Composer{
		cfg:    cfg,
		legacy: &Legacy{caps: cfg.Caps, colors: colors},
		common: &Common{builder: b},
		fast:   &FastPath{builder: b},
	}
}

// Admit runs admission for the configured path.
func (c *Composer) Admit(layers []layer.Layer, target *layer.Layer) (admission.Decision, error) {
	if c.cfg.Legacy {
		return admission.SelectLegacy(layers, target, c.cfg.Caps, c.cfg.ForceBilinear)
	}
	return admission.SelectCompute(layers, target, c.cfg.Slots, c.cfg.ForceBilinear)
}

// Select returns the strategy composing the admitted layers of comp.
// Ineligible fast-path requests quietly use the common kernel.
func (c *Composer) Select(comp *params.Composition) Strategy {
	switch {
	case c.cfg.Legacy:
		return c.legacy
	case !c.cfg.FastPathDisabled && admission.FastPathEligible(comp.Layers, comp.Target, comp.ColorFill.Enabled):
		return c.fast
	default:
		return c.common
	}
}

// Compose admits the layers of comp, replaces them with the admitted set
// and builds the plan. The decision is returned even when admission fails
// so the caller can report deferred layers.
func (c *Composer) Compose(comp *params.Composition) (*Plan, admission.Decision, error) {
	d, err := c.Admit(comp.Layers, comp.Target)
	if err != nil {
		return nil, d, err
	}
	comp.Layers = d.Admitted
	p, err := c.Select(comp).Build(comp)
	if err != nil {
		return nil, d, err
	}
	return p, d, nil
}

// Common runs the general compute kernel.
type Common struct {
	builder *params.Builder
}

// Kind returns KindCommon.
func (*Common) Kind() Kind { return KindCommon }

// Build assembles the common kernel block.
func (s *Common) Build(c *params.Composition) (*Plan, error) {
	blk, err := s.builder.Build(c, false)
	if err != nil {
		return nil, err
	}
	return &Plan{Kind: KindCommon, Block: blk}, nil
}

// FastPath runs the single-layer compute kernel.
type FastPath struct {
	builder *params.Builder
}

// Kind returns KindFastPath.
func (*FastPath) Kind() Kind { return KindFastPath }

// Build assembles the fast-path block.
func (s *FastPath) Build(c *params.Composition) (*Plan, error) {
	blk, err := s.builder.Build(c, true)
	if err != nil {
		return nil, err
	}
	return &Plan{Kind: KindFastPath, Block: blk}, nil
}
