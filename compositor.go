package vpcomp

import (
	"errors"
	"fmt"

	"github.com/gogpu/vpcomp/diag"
	"github.com/gogpu/vpcomp/internal/admission"
	"github.com/gogpu/vpcomp/internal/color"
	"github.com/gogpu/vpcomp/internal/compose"
	"github.com/gogpu/vpcomp/internal/errs"
	"github.com/gogpu/vpcomp/internal/params"
	"github.com/gogpu/vpcomp/kernel"
	"github.com/gogpu/vpcomp/layer"
	"github.com/gogpu/vpcomp/surface"
)

type (
	// Job is one kernel dispatch with its filled arguments and surface
	// bindings.
	Job = params.Job

	// ImageParam is the per-layer record of the compute kernels.
	ImageParam = params.ImageParam

	// TargetParam is the output record of the compute kernels.
	TargetParam = params.TargetParam

	// LegacyBlock is the fixed-function compositor's parameter block.
	LegacyBlock = compose.LegacyBlock

	// Reason explains why admission deferred a layer.
	Reason = admission.Reason
)

// Result is the outcome of one composition pass.
type Result struct {
	Strategy Strategy

	// Admitted holds the layers composed by this pass, with the scaling
	// mode admission chose. Deferred holds the layers left for a later
	// pass, starting with the one admission rejected for Reason. Removed
	// holds fully transparent layers that were dropped.
	Admitted []layer.Layer
	Deferred []layer.Layer
	Removed  []layer.Layer
	Reason   Reason

	// Pre, Main and Post are the compute dispatches in order. They are
	// empty for the legacy strategy. Their argument storage is reused by
	// the next Compose.
	Pre  []Job
	Main Job
	Post []Job

	// Images and Target are the records encoded into Main.
	Images []ImageParam
	Target TargetParam

	// Legacy is the fixed-function block of the legacy strategy.
	Legacy *LegacyBlock

	// Report describes the composition for offline comparison. It is set
	// only with WithDiagnostics.
	Report *diag.Report
}

// Jobs returns every compute dispatch in order.
func (r *Result) Jobs() []Job {
	if r.Strategy == StrategyLegacy {
		return nil
	}
	jobs := make([]Job, 0, len(r.Pre)+1+len(r.Post))
	jobs = append(jobs, r.Pre...)
	jobs = append(jobs, r.Main)
	return append(jobs, r.Post...)
}

// Compositor turns composition requests into parameter blocks.
//
// A Compositor owns its argument cache and is not safe for concurrent
// use. Each video pipeline should own one.
type Compositor struct {
	opts     options
	args     *params.ArgCache
	colors   *color.Resolver
	composer *compose.Composer
	closed   bool
}

// New returns a Compositor configured by opts.
func New(opts ...Option) (*Compositor, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.provider == nil {
		p, name := kernel.Default()
		if p == nil {
			return nil, fmt.Errorf("vpcomp: no kernel provider registered: %w", errs.UnknownKernel)
		}
		o.provider = p
		slogger().Debug("vpcomp: kernel provider selected", "name", name)
	}

	c := &Compositor{
		opts:   o,
		args:   params.NewArgCache(o.argCacheLimit),
		colors: color.NewResolver(o.colorCacheLimit),
	}
	c.composer = compose.New(compose.Config{
		Caps:             o.caps,
		Legacy:           o.legacy,
		FastPathDisabled: o.fastPathDisabled,
		ForceBilinear:    o.forceBilinear,
	}, params.NewBuilder(o.provider, c.args, c.colors), c.colors)

	if o.sink != nil {
		registerLogger(o.sink)
	}
	return c, nil
}

// composition resolves req into the layers of one composition.
func (c *Compositor) composition(req *layer.Request, p surface.Provider) (*params.Composition, error) {
	if c.closed {
		return nil, fmt.Errorf("vpcomp: compositor closed: %w", errs.InvalidState)
	}
	if req == nil || p == nil {
		return nil, fmt.Errorf("vpcomp: request and surface provider are required: %w", errs.InvalidParameter)
	}

	scaling, err := layer.DefaultScaling(req, c.opts.forceBilinear)
	if err != nil {
		return nil, fmt.Errorf("vpcomp: %w", err)
	}
	inputs, target, err := layer.Build(req, p, scaling)
	if err != nil {
		return nil, fmt.Errorf("vpcomp: %w", err)
	}

	comp := &params.Composition{Layers: inputs, Target: &target}
	if req.ColorFill != nil {
		comp.ColorFill = *req.ColorFill
	}
	if req.Alpha != nil {
		comp.Alpha = *req.Alpha
	}
	return comp, nil
}

// Compose builds one composition pass of req, resolving surfaces through
// p. Layers that do not fit are returned in Result.Deferred for a later
// pass; they are not an error.
//
// When not even the first layer fits, Compose returns the partial result
// with the deferred layers and an error matching ErrNoLayersAdmitted.
func (c *Compositor) Compose(req *layer.Request, p surface.Provider) (*Result, error) {
	comp, err := c.composition(req, p)
	if err != nil {
		return nil, err
	}

	plan, d, err := c.composer.Compose(comp)
	res := &Result{
		Admitted: d.Admitted,
		Deferred: d.Deferred,
		Removed:  d.Removed,
		Reason:   d.Reason,
	}
	if err != nil {
		if errors.Is(err, errs.NoLayersAdmitted) {
			slogger().Warn("vpcomp: no layers admitted",
				"layers", len(req.Inputs), "reason", d.Reason)
			return res, fmt.Errorf("vpcomp: %w", err)
		}
		return nil, fmt.Errorf("vpcomp: %w", err)
	}

	res.Strategy = plan.Kind
	if plan.Block != nil {
		blk := plan.Block
		res.Pre, res.Main, res.Post = blk.Pre, blk.Main, blk.Post
		res.Images, res.Target = blk.Images, blk.Target
	}
	res.Legacy = plan.Legacy

	slogger().Info("vpcomp: composition built",
		"strategy", plan.Kind, "admitted", len(d.Admitted), "perf_tag", res.Main.PerfTag)
	if len(d.Deferred) > 0 {
		slogger().Warn("vpcomp: layers deferred",
			"deferred", len(d.Deferred), "first", d.Deferred[0].OriginID, "reason", d.Reason)
	}

	if c.opts.sink != nil {
		res.Report = c.report(plan.Kind, comp, &d)
		c.opts.sink.Report(res.Report)
	}
	return res, nil
}

// report describes a built composition. Difference flags compare the
// compute kernels against the fixed-function compositor, so legacy
// compositions carry none.
func (c *Compositor) report(kind Strategy, comp *params.Composition, d *admission.Decision) *diag.Report {
	r := diag.NewReport(kind.String())
	r.Admitted, r.Deferred, r.Removed = len(d.Admitted), len(d.Deferred), len(d.Removed)
	r.Features = diag.FeaturesOf(comp.Layers, comp.ColorFill.Enabled, comp.Alpha)
	if kind != StrategyLegacy {
		r.Diff = diag.DiffOf(comp.Layers, comp.Target, comp.ColorFill.Enabled, comp.Alpha, kind == StrategyFastPath)
	}
	return r
}

// Reset drops the cached kernel argument storage. Jobs returned before
// Reset keep their storage.
func (c *Compositor) Reset() {
	c.args.Reset()
}

// ArgCacheLen returns the number of cached kernel argument buffers.
func (c *Compositor) ArgCacheLen() int {
	return c.args.Len()
}

// Close releases the compositor. Compose fails with ErrInvalidState after
// Close. Close is idempotent.
func (c *Compositor) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.args.Reset()
	if c.opts.sink != nil {
		unregisterLogger(c.opts.sink)
	}
	return nil
}
