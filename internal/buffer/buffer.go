/*
DESCRIPTION
  buffer.go implements the FrameBuffer substrate (component F): a
  single-owner, 32-byte-aligned pixel region handed between the decoder,
  the chunk queue and the detector without copying.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package buffer provides Buffer, the aligned, move-only pixel storage
// shared by the decoder, chunk queue and detector. A Buffer is BGR 8-bit;
// its contents are considered immutable once it leaves the decoder that
// created it (spec.md §3, "Frame").
package buffer

import (
	"fmt"
	"unsafe"
)

// Channels is the fixed pixel depth for all frames in this pipeline.
const Channels = 3

// alignment is the required row-stride alignment, in bytes.
const alignment = 32

// Buffer owns one frame's pixel bytes. Ownership transfers by passing the
// *Buffer pointer itself: a Buffer is moved, never copied, across component
// boundaries (the chunk queue, and the detector's last-frame slot). Callers
// must not retain a pointer to a Buffer after handing it off to a channel or
// a struct field that takes ownership of it — there is no implicit
// duplication, matching spec.md §4.F.
type Buffer struct {
	width  int
	height int
	stride int
	raw    []byte // over-allocated backing store
	pix    []byte // aligned view into raw, length stride*height
}

// View is an immutable, zero-copy borrow of a Buffer's pixels. It must not
// outlive the Buffer that produced it.
type View struct {
	Width  int
	Height int
	Stride int
	Pix    []byte
}

// alignUp rounds n up to the next multiple of a.
func alignUp(n, a int) int {
	return (n + a - 1) &^ (a - 1)
}

// New allocates a Buffer for a frame of the given dimensions. The row
// stride is width*Channels rounded up to a 32-byte boundary (spec.md §4.F).
// New fails with an error wrapping ErrOutOfMemory if the allocator refuses
// (Go's allocator does not return errors on OOM, so this only occurs for
// invalid, pathologically large dimensions that would overflow a slice
// length).
func New(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("buffer: invalid dimensions %dx%d", width, height)
	}
	stride := alignUp(width*Channels, alignment)

	size := stride * height
	if size <= 0 || size/height != stride {
		return nil, fmt.Errorf("%w: %dx%d overflows buffer size", ErrOutOfMemory, width, height)
	}

	raw := make([]byte, size+alignment)
	off := alignedOffset(raw)

	return &Buffer{
		width:  width,
		height: height,
		stride: stride,
		raw:    raw,
		pix:    raw[off : off+size],
	}, nil
}

// alignedOffset returns the offset into raw at which the slice's backing
// array is aligned to `alignment` bytes.
func alignedOffset(raw []byte) int {
	if len(raw) == 0 {
		return 0
	}
	addr := uintptr(unsafe.Pointer(&raw[0]))
	aligned := (addr + alignment - 1) &^ (alignment - 1)
	return int(aligned - addr)
}

// Width returns the frame width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the frame height in pixels.
func (b *Buffer) Height() int { return b.height }

// Stride returns the row stride in bytes.
func (b *Buffer) Stride() int { return b.stride }

// View returns an immutable borrow of the Buffer's pixels. Multiple
// concurrent views are permitted provided the owner is not concurrently
// being moved to a new owner.
func (b *Buffer) View() View {
	return View{Width: b.width, Height: b.height, Stride: b.stride, Pix: b.pix}
}

// Pix exposes the raw pixel bytes directly, for components (the SSIM
// engine, the sink) that need to hand the bytes to a gocv.Mat without a
// copy.
func (b *Buffer) Pix() []byte { return b.pix }
