/*
DESCRIPTION
  result.go defines the coordinator's per-video outcome, grounded on
  original_source/src/videoqueue.h's VideoQueueItem/ProcessingStatus, per
  SPEC_FULL.md §5.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package pipeline

import "time"

// Status is the terminal outcome of processing one video.
type Status int

const (
	// StatusOK means every frame was processed to completion (cancellation
	// aside, this implies the video's decode and detect passes finished).
	StatusOK Status = iota

	// StatusFailed means a fatal error (OpenFailed, NoVideoStream,
	// UnsupportedCodec, DimensionMismatch, EmptyInput or SinkError) stopped
	// the video before it finished.
	StatusFailed

	// StatusCancelled means the run's context was cancelled before the
	// video finished; not a failure (spec.md §7, Cancelled).
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusFailed:
		return "failed"
	case StatusCancelled:
		return "cancelled"
	default:
		return "ok"
	}
}

// Result is the coordinator's outcome for a single video.
type Result struct {
	VideoName  string
	Status     Status
	SlideCount int
	Duration   time.Duration
	Err        error
}
