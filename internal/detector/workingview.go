/*
DESCRIPTION
  workingview.go builds the per-chunk working sequence and its local-to-
  global index mapping, per spec.md §4.X.1.

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

import (
	"github.com/bit-admin/autoslides-extractor/internal/buffer"
	"github.com/bit-admin/autoslides-extractor/internal/queue"
)

// workingView is the merged frame sequence a chunk is processed against,
// along with its local-to-global index mapping.
type workingView struct {
	frames   []*buffer.Buffer
	globalOf func(localIndex int) int
}

// buildWorkingView constructs the working view for chunk, given state.
// On the very first chunk (state.LastFrame == nil) it also declares the
// first frame saved, per spec.md §4.X.1.
func buildWorkingView(chunk queue.Chunk, state *ProcessingState) workingView {
	if state.LastFrame == nil {
		state.SavedGlobalIndices = append(state.SavedGlobalIndices, chunk.StartOffset)
		state.LastStableIndex = chunk.StartOffset
		return workingView{
			frames:   chunk.Frames,
			globalOf: func(i int) int { return chunk.StartOffset + i },
		}
	}

	frames := make([]*buffer.Buffer, 0, len(chunk.Frames)+1)
	frames = append(frames, state.LastFrame)
	frames = append(frames, chunk.Frames...)

	lastFrameGlobal := state.LastFrameGlobalIndex
	startOffset := chunk.StartOffset
	return workingView{
		frames: frames,
		globalOf: func(i int) int {
			if i == 0 {
				return lastFrameGlobal
			}
			return startOffset + (i - 1)
		},
	}
}
