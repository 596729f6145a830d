/*
DESCRIPTION
  state.go defines the cross-chunk state carried by the detector between
  successive calls to ProcessChunk, per spec.md §3 and §4.X.5.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package detector

import "github.com/bit-admin/autoslides-extractor/internal/buffer"

// VerificationState tracks how much of a stability verification was
// completed before a chunk boundary interrupted it.
type VerificationState int

const (
	// VerificationNone means no verification is in progress.
	VerificationNone VerificationState = iota

	// VerificationProgress1 means one confirming score was observed.
	VerificationProgress1

	// VerificationProgress2 means two confirming scores were observed.
	VerificationProgress2
)

func (v VerificationState) String() string {
	switch v {
	case VerificationProgress1:
		return "progress-1"
	case VerificationProgress2:
		return "progress-2"
	default:
		return "none"
	}
}

// ProcessingState is the detector's state across chunk boundaries. A new
// ProcessingState must be created per video with NewProcessingState and
// reused across every call to Detector.ProcessChunk for that video.
type ProcessingState struct {
	// SavedGlobalIndices holds every global frame index accepted as a
	// slide so far, strictly increasing.
	SavedGlobalIndices []int

	// LastStableIndex is the global index of the most recently confirmed
	// stable frame, or -1 before any frame has been confirmed.
	LastStableIndex int

	// LastFrame is the previous chunk's final frame, carried forward as
	// the single-frame overlap. Nil before the first chunk is processed.
	LastFrame *buffer.Buffer

	// LastFrameGlobalIndex is LastFrame's global index, or -1 before the
	// first chunk.
	LastFrameGlobalIndex int

	// Verification is the carried-over verification progress from the
	// previous chunk's boundary.
	Verification VerificationState

	// VerificationStartGlobalIndex is the global index of the candidate
	// frame whose verification is in progress, or -1 when Verification is
	// VerificationNone.
	VerificationStartGlobalIndex int

	// TotalFrames is the running count of frames processed across all
	// chunks, used by the end-of-sequence rule.
	TotalFrames int
}

// NewProcessingState returns state for a fresh video, before any chunk has
// been processed.
func NewProcessingState() *ProcessingState {
	return &ProcessingState{
		LastStableIndex:              -1,
		LastFrameGlobalIndex:         -1,
		VerificationStartGlobalIndex: -1,
	}
}
