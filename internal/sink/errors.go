package sink

import "errors"

// ErrCreateDir is returned when the per-video output folder cannot be
// created; fatal for the video (spec.md §7).
var ErrCreateDir = errors.New("sink: cannot create output directory")

// ErrWriteFailed is returned when a single slide cannot be encoded or
// written; non-fatal, the caller logs and continues with the next slide
// (spec.md §7).
var ErrWriteFailed = errors.New("sink: write failed")
