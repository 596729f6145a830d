package ssim

import "errors"

var (
	// ErrDimensionMismatch is returned when the two inputs to Score do not
	// share the same width and height.
	ErrDimensionMismatch = errors.New("ssim: dimension mismatch")

	// ErrEmptyInput is returned when either input has zero width or height.
	ErrEmptyInput = errors.New("ssim: empty input")
)
