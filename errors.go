package gadfly

import "errors"

// The statistics layer fails synchronously on the first violated
// contract and aborts the whole pass; none of these are recoverable by
// retrying. Match them with errors.Is.
var (
	// ErrInvalidSample reports an empty or otherwise unusable sample
	// passed to bin count selection.
	ErrInvalidSample = errors.New("invalid sample")

	// ErrMissingAesthetic reports an unset channel a statistic
	// requires.
	ErrMissingAesthetic = errors.New("missing aesthetic")

	// ErrMissingScale reports that no scale is configured for an
	// aesthetic a statistic needs to drive.
	ErrMissingScale = errors.New("missing scale")

	// ErrIncompatibleScale reports a configured scale of the wrong
	// kind, e.g. a discrete color scale where a continuous one is
	// required.
	ErrIncompatibleScale = errors.New("incompatible scale")
)
