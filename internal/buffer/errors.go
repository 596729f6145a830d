package buffer

import "errors"

// ErrOutOfMemory is returned by New when the requested frame dimensions
// cannot be satisfied.
var ErrOutOfMemory = errors.New("buffer: out of memory")
