package decoder

import "errors"

var (
	// ErrOpenFailed is returned when the container cannot be opened or its
	// codec parameters cannot be read, by any backend.
	ErrOpenFailed = errors.New("decoder: open failed")

	// ErrNoVideoStream is returned when the container has no video stream.
	ErrNoVideoStream = errors.New("decoder: no video stream")

	// ErrUnsupportedCodec is returned when the video stream's codec cannot
	// be decoded by any available backend.
	ErrUnsupportedCodec = errors.New("decoder: unsupported codec")

	// ErrDecodeFrame is the base sentinel wrapped by per-frame decode
	// failures; non-fatal, the caller skips the frame and continues.
	ErrDecodeFrame = errors.New("decoder: frame decode failed")
)
