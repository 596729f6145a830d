/*
DESCRIPTION
  detector.go implements the detector (component X): the two-stage
  stability state machine over chunked SSIM scores, per spec.md §4.X.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package detector implements the chunk-aware two-stage stability detector
// described in spec.md §4.X: it consumes chunks of frames and produces the
// global indices (and pixel views) of frames accepted as slides.
package detector

import (
	"context"
	"sort"

	"github.com/bit-admin/autoslides-extractor/internal/buffer"
	"github.com/bit-admin/autoslides-extractor/internal/queue"
	"github.com/bit-admin/autoslides-extractor/internal/ssim"
)

// defaultParallelism bounds concurrent pairwise SSIM computation within a
// single chunk.
const defaultParallelism = 4

// Slide is one accepted slide: its global frame index and the frame that
// produced it, ready for the sink to encode.
type Slide struct {
	GlobalIndex int
	Frame       *buffer.Buffer
}

// Detector runs the two-stage stability algorithm over successive chunks.
type Detector struct {
	engine            *ssim.Engine
	threshold         float64
	verificationCount int
	parallelism       int
}

// New returns a Detector comparing frames with engine, accepting a frame as
// stable once verificationCount consecutive scores meet threshold.
func New(engine *ssim.Engine, threshold float64, verificationCount int) *Detector {
	return &Detector{
		engine:            engine,
		threshold:         threshold,
		verificationCount: verificationCount,
		parallelism:       defaultParallelism,
	}
}

// ProcessChunk advances state by one chunk and returns the slides newly
// accepted whose global index falls within this chunk's range (spec.md
// §4.X.6). It never accesses chunk.Frames[j] for j >= len(chunk.Frames).
func (d *Detector) ProcessChunk(ctx context.Context, chunk queue.Chunk, state *ProcessingState) ([]Slide, error) {
	n := len(chunk.Frames)
	state.TotalFrames += n

	if n == 0 && state.LastFrame == nil {
		return nil, nil
	}

	view := buildWorkingView(chunk, state)

	var added []Slide
	if state.LastFrame == nil {
		g := state.SavedGlobalIndices[len(state.SavedGlobalIndices)-1]
		added = append(added, Slide{GlobalIndex: g, Frame: view.frames[0]})
	}

	scores, err := pairwiseScores(ctx, d.engine, view.frames, d.parallelism)
	if err != nil {
		return nil, err
	}

	suspended, suspendedGlobal, suspendedK := d.runMainLoop(scores, view, state, &added)

	if chunk.IsLast {
		d.applyEndOfSequenceRule(scores, view, state, &added)
		state.SavedGlobalIndices = dedupeSorted(state.SavedGlobalIndices)
	}

	if n > 0 {
		d.handOff(chunk, state, suspended, suspendedGlobal, suspendedK)
	}

	return withinRange(added, chunk.StartOffset, chunk.StartOffset+n-1), nil
}

// runMainLoop implements spec.md §4.X.3. It returns whether the loop was
// suspended mid-verification (window ran past the available scores) and,
// if so, the suspended candidate's global index and how many consecutive
// confirming scores had been observed.
func (d *Detector) runMainLoop(scores []float64, view workingView, state *ProcessingState, added *[]Slide) (suspended bool, suspendedGlobal, suspendedK int) {
	i := 0
	firstScore := true
	for i < len(scores) {
		if scores[i] >= d.threshold {
			i++
			firstScore = false
			continue
		}

		v := d.verificationCount - 1
		if firstScore && state.Verification != VerificationNone {
			switch state.Verification {
			case VerificationProgress1:
				v = d.verificationCount - 2
			case VerificationProgress2:
				v = d.verificationCount - 3
			}
		}
		firstScore = false

		candidateLocal := i + 1
		candidateGlobal := view.globalOf(candidateLocal)

		failed := false
		failPos := 0
		k := 0
		for off := 1; off <= v; off++ {
			idx := i + off
			if idx >= len(scores) {
				return true, candidateGlobal, k
			}
			if scores[idx] < d.threshold {
				failed = true
				failPos = idx
				break
			}
			k++
		}
		if failed {
			i = failPos
			continue
		}

		j := candidateLocal + v
		global := view.globalOf(j)
		state.SavedGlobalIndices = append(state.SavedGlobalIndices, global)
		*added = append(*added, Slide{GlobalIndex: global, Frame: view.frames[j]})
		state.LastStableIndex = global
		i = j
	}
	return false, 0, 0
}

// applyEndOfSequenceRule implements spec.md §4.X.4.
func (d *Detector) applyEndOfSequenceRule(scores []float64, view workingView, state *ProcessingState, added *[]Slide) {
	N := state.TotalFrames
	L := state.LastStableIndex
	if N == 0 {
		return
	}

	accept := func() {
		last := view.frames[len(view.frames)-1]
		state.SavedGlobalIndices = append(state.SavedGlobalIndices, N-1)
		*added = append(*added, Slide{GlobalIndex: N - 1, Frame: last})
		state.LastStableIndex = N - 1
	}

	switch {
	case L == N-2:
		accept()
	case L == N-3 && len(scores) > 0 && scores[len(scores)-1] >= d.threshold:
		accept()
	}
}

// handOff implements spec.md §4.X.5.
func (d *Detector) handOff(chunk queue.Chunk, state *ProcessingState, suspended bool, suspendedGlobal, suspendedK int) {
	n := len(chunk.Frames)
	state.LastFrame = chunk.Frames[n-1]
	state.LastFrameGlobalIndex = chunk.StartOffset + (n - 1)

	if !suspended {
		state.Verification = VerificationNone
		state.VerificationStartGlobalIndex = -1
		return
	}

	state.VerificationStartGlobalIndex = suspendedGlobal
	switch suspendedK {
	case 1:
		state.Verification = VerificationProgress1
	case 2:
		state.Verification = VerificationProgress2
	default:
		state.Verification = VerificationNone
		state.VerificationStartGlobalIndex = -1
	}
}

func withinRange(slides []Slide, lo, hi int) []Slide {
	out := make([]Slide, 0, len(slides))
	for _, s := range slides {
		if s.GlobalIndex >= lo && s.GlobalIndex <= hi {
			out = append(out, s)
		}
	}
	return out
}

func dedupeSorted(indices []int) []int {
	sort.Ints(indices)
	out := indices[:0]
	for i, v := range indices {
		if i == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
