/*
DESCRIPTION
  queue.go implements the chunk queue (component Q): a single-slot,
  single-producer single-consumer rendezvous between the decoder and the
  detector, with blocking put/take and cooperative cancellation.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package queue provides the single-slot handoff between the decoder
// (producer) and the detector (consumer), per spec.md §4.Q.
package queue

import (
	"context"
	"sync"

	"github.com/bit-admin/autoslides-extractor/internal/buffer"
)

// Chunk is an ordered sequence of frame buffers, as produced by the
// decoder (spec.md §3, "Chunk").
type Chunk struct {
	Frames      []*buffer.Buffer
	StartOffset int
	IsLast      bool
}

// Queue is a capacity-1 rendezvous. It is safe for exactly one producer
// goroutine to call Put/Finish and exactly one consumer goroutine to call
// Take concurrently.
type Queue struct {
	slot       chan Chunk
	finish     chan struct{}
	finishOnce sync.Once
}

// New returns an empty Queue.
func New() *Queue {
	return &Queue{
		slot:   make(chan Chunk, 1),
		finish: make(chan struct{}),
	}
}

// Put stores c in the slot, blocking until the slot is empty or ctx is
// cancelled. On cancellation it returns ctx.Err() without storing c.
func (q *Queue) Put(ctx context.Context, c Chunk) error {
	select {
	case q.slot <- c:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Finish marks the queue as end-of-stream. It is producer-only and may be
// called more than once; only the first call has effect. Any chunk already
// sitting in the slot remains available to a subsequent Take.
func (q *Queue) Finish() {
	q.finishOnce.Do(func() { close(q.finish) })
}

// Take blocks until the slot is full or Finish has been called, and returns
// either the next chunk (ok == true) or an end-of-stream marker
// (ok == false, err == nil). If ctx is cancelled first, it returns
// ctx.Err().
func (q *Queue) Take(ctx context.Context) (c Chunk, ok bool, err error) {
	select {
	case c = <-q.slot:
		return c, true, nil
	case <-q.finish:
		select {
		case c = <-q.slot:
			return c, true, nil
		default:
			return Chunk{}, false, nil
		}
	case <-ctx.Done():
		return Chunk{}, false, ctx.Err()
	}
}
