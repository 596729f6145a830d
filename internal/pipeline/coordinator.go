/*
DESCRIPTION
  coordinator.go wires the decoder, chunk queue, detector and sink into a
  single video's processing run: a producer goroutine executing D, and the
  calling goroutine executing X -> W as consumer, per spec.md §5's two
  cooperating threads and §7's error-taxonomy propagation policy.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package pipeline implements the coordinator: it owns the decoder and
// detector, starts the producer/consumer goroutine pair wired through the
// chunk queue, aggregates a per-video Result, and invokes any configured
// post-processing hooks once a video's slides are all on disk.
package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bit-admin/autoslides-extractor/internal/decoder"
	"github.com/bit-admin/autoslides-extractor/internal/detector"
	"github.com/bit-admin/autoslides-extractor/internal/postproc"
	"github.com/bit-admin/autoslides-extractor/internal/queue"
	"github.com/bit-admin/autoslides-extractor/internal/sink"
	"github.com/bit-admin/autoslides-extractor/internal/ssim"
	"github.com/bit-admin/autoslides-extractor/revid/config"
)

// Coordinator runs the full D -> Q -> X -> W pipeline for one video at a
// time (spec.md §1's explicit "no multi-video parallelism within one
// pipeline run" Non-goal).
type Coordinator struct {
	cfg    *config.Config
	engine *ssim.Engine
	hooks  []postproc.Hook

	// OnEvent, if set, receives every progress event emitted during Run.
	// It is called synchronously from whichever goroutine produced the
	// event; a slow observer will apply backpressure to the pipeline.
	OnEvent func(Event)
}

// New returns a Coordinator for a single pipeline run, configured by cfg and
// scoring frames with engine. hooks run, in order, after a video's slides
// are fully written, provided the video completed without a fatal error.
func New(cfg *config.Config, engine *ssim.Engine, hooks ...postproc.Hook) *Coordinator {
	return &Coordinator{cfg: cfg, engine: engine, hooks: hooks}
}

// Run processes cfg.InputPath end to end and returns its Result. Run never
// panics on a per-video error; every component's fatal errors are captured
// on the returned Result instead, per spec.md §7's propagation policy.
func (c *Coordinator) Run(ctx context.Context) Result {
	start := time.Now()
	videoName := videoBaseName(c.cfg.InputPath)
	result := Result{VideoName: videoName}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sk := sink.New(c.cfg, func(e sink.Event) { c.emit(Event{Kind: EventSlideSaved, SlideSaved: e}) })
	if err := sk.Open(videoName); err != nil {
		cancel()
		result.Status = StatusFailed
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	q := queue.New()
	dec := decoder.New(c.cfg)
	dec.OnVideoInfo = func(vi decoder.VideoInfo) {
		c.emit(Event{Kind: EventVideoInfo, VideoInfo: vi})
		if vi.ScreenRecording {
			c.emit(Event{Kind: EventDecoderWarning, Warning: "likely screen recording: " + screenHeuristicReason(vi.ScreenHeuristic)})
		}
	}
	dec.OnWarning = func(reason string) { c.emit(Event{Kind: EventDecoderWarning, Warning: reason}) }
	dec.OnProgress = func(p decoder.Progress) { c.emit(Event{Kind: EventDecoderProgress, DecoderProgress: p}) }

	var (
		wg        sync.WaitGroup
		decodeErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := dec.Run(ctx, q)
		decodeErr = err
	}()

	det := detector.New(c.engine, c.cfg.SSIMThreshold, config.VerificationCount)
	consumeErr := c.consume(ctx, q, det, sk)

	wg.Wait()

	result.SlideCount = sk.Count()
	result.Duration = time.Since(start)

	switch {
	case ctx.Err() != nil:
		result.Status = StatusCancelled
		result.Err = ctx.Err()
	case consumeErr != nil:
		result.Status = StatusFailed
		result.Err = consumeErr
	case decodeErr != nil && !errors.Is(decodeErr, context.Canceled):
		result.Status = StatusFailed
		result.Err = decodeErr
	default:
		result.Status = StatusOK
	}

	if result.Status == StatusOK {
		c.runHooks(ctx, sk.Dir())
	}

	return result
}

// consume is the consumer side of the pipeline: it takes chunks from q,
// runs the detector over each, and saves every accepted slide. It returns
// the first fatal error encountered, or nil on an orderly end-of-stream.
func (c *Coordinator) consume(ctx context.Context, q *queue.Queue, det *detector.Detector, sk *sink.Sink) error {
	state := detector.NewProcessingState()

	for {
		chunk, ok, err := q.Take(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		slides, err := det.ProcessChunk(ctx, chunk, state)
		if err != nil {
			return err
		}

		n := len(chunk.Frames)
		c.emit(Event{Kind: EventSSIMProgress, SSIMProgress: ChunkProgress{Completed: n, Total: n}})
		c.emit(Event{Kind: EventDetectorProgress, DetectorProgress: ChunkProgress{Completed: n, Total: n}})

		for _, s := range slides {
			if err := sk.Save(s); err != nil {
				c.cfg.Logger.Warning("pipeline: slide write failed, continuing", "video", sk.Dir(), "error", err)
			}
		}

		if chunk.IsLast {
			return nil
		}
	}
}

// runHooks invokes every post-processing hook in order, logging (but not
// failing the video over) a hook's own error.
func (c *Coordinator) runHooks(ctx context.Context, dir string) {
	for _, h := range c.hooks {
		if err := h.Run(ctx, dir); err != nil {
			c.cfg.Logger.Warning("pipeline: post-processing hook failed", "dir", dir, "error", err)
		}
	}
}

func (c *Coordinator) emit(e Event) {
	if c.OnEvent != nil {
		c.OnEvent(e)
	}
}

// videoBaseName returns the input path's file name with its extension
// removed, used to name the per-video output folder and slide files.
func videoBaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// screenHeuristicReason lists which of the screen-recording heuristic's
// sub-checks matched, so a decoder_warning event can explain why the flag
// fired rather than just that it did.
func screenHeuristicReason(h decoder.ScreenRecordingHeuristic) string {
	var matched []string
	if h.ResolutionMatch {
		matched = append(matched, "resolution")
	}
	if h.CodecMatch {
		matched = append(matched, "codec")
	}
	if h.FrameRateMatch {
		matched = append(matched, "frame rate")
	}
	if h.IntervalMatch {
		matched = append(matched, "keyframe interval")
	}
	if len(matched) == 0 {
		return "no sub-checks matched"
	}
	return strings.Join(matched, ", ") + " matched"
}
