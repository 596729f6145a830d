/*
DESCRIPTION
  events.go defines the unified progress event the coordinator pushes to an
  optional observer, per spec.md §6's progress-event list.

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

import (
	"github.com/bit-admin/autoslides-extractor/internal/decoder"
	"github.com/bit-admin/autoslides-extractor/internal/sink"
)

// EventKind identifies which of spec.md §6's progress events an Event
// carries. Only the fields matching Kind are populated.
type EventKind int

const (
	// EventVideoInfo carries the decoder's classification of the stream,
	// reported once per video before any frame is decoded.
	EventVideoInfo EventKind = iota

	// EventDecoderWarning carries a human-readable reason for a non-fatal
	// decoder condition (e.g. a sparse keyframe interval).
	EventDecoderWarning

	// EventDecoderProgress carries decode position within the video.
	EventDecoderProgress

	// EventSSIMProgress carries pairwise-score completion within a chunk.
	EventSSIMProgress

	// EventDetectorProgress carries main-loop position within a chunk.
	EventDetectorProgress

	// EventSlideSaved carries the outcome of one slide written to disk.
	EventSlideSaved
)

// ChunkProgress reports how much of a chunk's pairwise-score or main-loop
// pass has completed, shared by EventSSIMProgress and EventDetectorProgress.
type ChunkProgress struct {
	Completed int
	Total     int
}

// Event is pushed to Coordinator.OnEvent. Only the field named by Kind is
// meaningful.
type Event struct {
	Kind EventKind

	VideoInfo        decoder.VideoInfo
	Warning          string
	DecoderProgress  decoder.Progress
	SSIMProgress     ChunkProgress
	DetectorProgress ChunkProgress
	SlideSaved       sink.Event
}
