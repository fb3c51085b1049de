package vpcomp

import "github.com/gogpu/vpcomp/internal/errs"

// Errors returned by the compositor and its packages. Match them with
// errors.Is; returned errors wrap them with context.
var (
	// ErrMissingRequiredSurface means a layer references a surface the
	// surface provider cannot resolve.
	ErrMissingRequiredSurface = errs.MissingRequiredSurface

	// ErrInvalidRotation means a rotation outside the eight canonical
	// transforms.
	ErrInvalidRotation = errs.InvalidRotation

	// ErrUnsupportedColorSpacePair means no conversion exists between
	// two color spaces.
	ErrUnsupportedColorSpacePair = errs.UnsupportedColorSpacePair

	// ErrUnsupportedFormatForChromaSiting means a format without a chroma
	// subsampling factor was used for chroma siting.
	ErrUnsupportedFormatForChromaSiting = errs.UnsupportedFormatForChromaSiting

	// ErrUnsupportedFormat means a format has no entry in a lookup table.
	ErrUnsupportedFormat = errs.UnsupportedFormat

	// ErrNoLayersAdmitted means admission rejected the first layer. The
	// caller must still produce a fill-only or pass-through result.
	ErrNoLayersAdmitted = errs.NoLayersAdmitted

	// ErrLayerCountOverflow means more layers than kernel argument slots.
	ErrLayerCountOverflow = errs.LayerCountOverflow

	// ErrUnsupportedSfcConversion means the fixed-function scaler cannot
	// perform a conversion; the caller must pick another pipeline.
	ErrUnsupportedSfcConversion = errs.UnsupportedSfcConversion

	// ErrInvalidParameter means a request field outside its domain.
	ErrInvalidParameter = errs.InvalidParameter

	// ErrArgSizeMismatch means kernel metadata changed under a live
	// argument cache.
	ErrArgSizeMismatch = errs.ArgSizeMismatch

	// ErrUnknownKernel means the kernel provider has no kernel of a name.
	ErrUnknownKernel = errs.UnknownKernel

	// ErrInvalidState means an operation was called out of order, such as
	// Compose after Close.
	ErrInvalidState = errs.InvalidState
)
