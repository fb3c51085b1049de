// Package errs holds the sentinel errors shared by the vpcomp packages.
// The root package re-exports them; internal resolvers wrap them with
// fmt.Errorf so callers can match with errors.Is.
package errs

import "errors"

var (
	// MissingRequiredSurface means a layer references a surface tag the
	// surface provider cannot resolve.
	MissingRequiredSurface = errors.New("vpcomp: missing required surface")

	// InvalidRotation means a rotation outside the eight canonical values.
	InvalidRotation = errors.New("vpcomp: invalid rotation")

	// UnsupportedColorSpacePair means no conversion path exists between
	// two color spaces.
	UnsupportedColorSpacePair = errors.New("vpcomp: unsupported color space pair")

	// UnsupportedFormatForChromaSiting means the format has no declared
	// chroma subsampling factor.
	UnsupportedFormatForChromaSiting = errors.New("vpcomp: unsupported format for chroma siting")

	// UnsupportedFormat means a table lookup has no entry for the format.
	UnsupportedFormat = errors.New("vpcomp: unsupported format")

	// NoLayersAdmitted means admission rejected the first layer.
	NoLayersAdmitted = errors.New("vpcomp: no layers admitted")

	// LayerCountOverflow means more layers than argument slots.
	LayerCountOverflow = errors.New("vpcomp: layer count overflow")

	// UnsupportedSfcConversion means the fixed-function scaler cannot
	// perform the requested conversion.
	UnsupportedSfcConversion = errors.New("vpcomp: unsupported sfc conversion")

	// InvalidParameter means a request field holds a value outside its
	// domain (scaling mode, blend mode, alpha mode and similar).
	InvalidParameter = errors.New("vpcomp: invalid parameter")

	// ArgSizeMismatch means a cached kernel argument changed size.
	ArgSizeMismatch = errors.New("vpcomp: kernel argument size mismatch")

	// UnknownKernel means the kernel metadata provider has no kernel of
	// the requested name.
	UnknownKernel = errors.New("vpcomp: unknown kernel")

	// InvalidState means an operation was called out of order.
	InvalidState = errors.New("vpcomp: invalid state")
)
