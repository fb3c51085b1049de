// Package chroma derives chroma upsampling shifts for input layers and
// downsampling tap weights for the output from the declared chroma siting.
package chroma

import (
	"github.com/gogpu/vpcomp/format"
	"github.com/gogpu/vpcomp/layer"
)

// SamplingNeeded reports whether converting in to out requires chroma
// upsampling or downsampling through the siting-aware kernel paths. Only
// the primary layer qualifies, and semi-planar inputs only as the bottom
// layer (layerIndex 0) since the 3D sampler path cannot site chroma for
// sub-layers.
func SamplingNeeded(primary bool, layerIndex int, in, out format.Format) (up, down bool) {
	if !primary || !((in.IsPL2() && layerIndex == 0) || in == format.YUY2) {
		return false, false
	}
	src, dst := in.Pack(), out.Pack()
	up = (src == format.Pack420 && (dst == format.Pack422 || dst == format.Pack444)) ||
		(src == format.Pack422 && dst == format.Pack444)
	down = (src == format.Pack444 && (dst == format.Pack422 || dst == format.Pack420)) ||
		(src == format.Pack422 && dst == format.Pack420)
	return up, down
}

// Shift is the chroma sample offset applied when upsampling, in normalized
// texture coordinates.
type Shift struct {
	Enabled bool
	X, Y    float64
}

// Upsample returns the chroma shift for reading a layer of format f whose
// chroma is sited at s. Nearest sampling never shifts. w and h are the
// readable input width and height.
func Upsample(f format.Format, s format.ChromaSiting, mode layer.ScalingMode, w, h int) (Shift, error) {
	fx, fy, err := format.ChromaFactor(f)
	if err != nil {
		return Shift{}, err
	}

	sh := Shift{X: 0.5, Y: 0.5}
	if s == format.SitingNone {
		if fx == 2 && fy == 2 {
			// Semi-planar 4:2:0 defaults to horizontal left, vertical center.
			sh.Enabled = true
			sh.Y -= 0.5
		}
	} else {
		switch {
		case fx == 2 && fy == 2:
			upsample420(&sh, s)
		case fx == 2 && fy == 1:
			if s&format.HorzCenter != 0 {
				sh.Enabled = true
				sh.X -= 0.5
			}
		case fx == 1 && fy == 2:
			if s&format.VertCenter != 0 {
				sh.Enabled = true
				sh.Y -= 0.5
			}
		case fx == 4 && fy == 1:
			sh.Enabled = true
			sh.Y++
			if s&format.VertCenter != 0 {
				sh.X += 0.5
			} else {
				sh.X++
			}
		}
	}

	if mode == layer.ScalingNearest {
		sh.Enabled = false
	}
	sh.X /= float64(w)
	sh.Y /= float64(h)
	return sh, nil
}

// upsample420 handles the six siting positions of 4:2:0 content.
func upsample420(sh *Shift, s format.ChromaSiting) {
	switch {
	case s&format.HorzLeft != 0:
		switch {
		case s&format.VertTop != 0:
			sh.Enabled = true
		case s&format.VertCenter != 0:
			sh.Enabled = true
			sh.Y -= 0.5
		case s&format.VertBottom != 0:
			sh.Enabled = true
			sh.Y--
		}
	case s&format.HorzCenter != 0:
		sh.X -= 0.5
		switch {
		case s&format.VertTop != 0:
			sh.Enabled = true
		case s&format.VertCenter != 0:
			// Center-center keeps the shift values but leaves it disabled.
			sh.Y -= 0.5
		case s&format.VertBottom != 0:
			sh.Enabled = true
			sh.Y--
		}
	}
}

// Weights holds the output chroma downsampling taps: top-left, top-right,
// bottom-left, bottom-right.
type Weights [4]float32

// Downsample describes how the output's chroma is produced.
type Downsample struct {
	Weights Weights
	// FactorX and FactorY are the output's chroma subsampling factors.
	FactorX, FactorY int
}

// DownsampleFor returns the downsampling taps for writing format f with
// chroma sited at s.
func DownsampleFor(f format.Format, s format.ChromaSiting) (Downsample, error) {
	fx, fy, err := format.ChromaFactor(f)
	if err != nil {
		return Downsample{}, err
	}

	d := Downsample{Weights: Weights{1, 0, 0, 0}, FactorX: fx, FactorY: fy}
	if s == format.SitingNone {
		if fx == 2 && fy == 2 {
			d.Weights = Weights{0.5, 0, 0.5, 0}
		}
		return d, nil
	}

	switch {
	case fx == 2 && fy == 2:
		switch {
		case s&format.HorzLeft != 0:
			switch {
			case s&format.VertTop != 0:
				d.Weights = Weights{1, 0, 0, 0}
			case s&format.VertCenter != 0:
				d.Weights = Weights{0.5, 0, 0.5, 0}
			case s&format.VertBottom != 0:
				d.Weights = Weights{0, 0, 1, 0}
			}
		case s&format.HorzCenter != 0:
			switch {
			case s&format.VertTop != 0:
				d.Weights = Weights{0.5, 0.5, 0, 0}
			case s&format.VertCenter != 0:
				d.Weights = Weights{0.25, 0.25, 0.25, 0.25}
			case s&format.VertBottom != 0:
				d.Weights = Weights{0, 0, 0.5, 0.5}
			}
		}
	case fx == 2 && fy == 1:
		if s&format.HorzCenter != 0 {
			d.Weights = Weights{0.5, 0.5, 0, 0}
		}
	}
	return d, nil
}
