package vpcomp

import (
	"fmt"

	"github.com/gogpu/vpcomp/internal/compose"
	"github.com/gogpu/vpcomp/layer"
	"github.com/gogpu/vpcomp/surface"
)

// Strategy is the compositor that builds a composition.
type Strategy = compose.Kind

const (
	// StrategyLegacy is the fixed-function compositor, selected only by
	// WithLegacyFallback.
	StrategyLegacy = compose.KindLegacy

	// StrategyCommon is the general compute kernel: up to eight layers
	// with every blend, key, deinterlace and color feature.
	StrategyCommon = compose.KindCommon

	// StrategyFastPath is the single-layer compute kernel writing one
	// thread per 2x2 block into a semi-planar output.
	StrategyFastPath = compose.KindFastPath
)

// SelectStrategy returns the strategy Compose would use for req without
// building any parameter block.
//
// Heuristics:
//   - WithLegacyFallback: Legacy
//   - one plain admitted layer (or none with a color fill) into
//     NV12/P010/P016 with a 2-pixel aligned region: FastPath
//   - everything else: Common
//
// SelectStrategy runs admission, so a request whose first layer cannot be
// admitted fails with ErrNoLayersAdmitted.
func (c *Compositor) SelectStrategy(req *layer.Request, p surface.Provider) (Strategy, error) {
	comp, err := c.composition(req, p)
	if err != nil {
		return StrategyCommon, err
	}
	d, err := c.composer.Admit(comp.Layers, comp.Target)
	if err != nil {
		return StrategyCommon, fmt.Errorf("vpcomp: %w", err)
	}
	comp.Layers = d.Admitted
	return c.composer.Select(comp).Kind(), nil
}
