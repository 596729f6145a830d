/*
DESCRIPTION
  decoder.go implements the decoder (component D): keyframe-biased frame
  sampling from a video file into the chunk queue, per spec.md §4.D.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package decoder samples keyframe-aligned BGR frames from a video file and
// assembles them into chunks for the detector, per spec.md §4.D.
package decoder

import (
	"context"
	"fmt"

	pkgerrors "github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/bit-admin/autoslides-extractor/internal/buffer"
	"github.com/bit-admin/autoslides-extractor/internal/platform"
	"github.com/bit-admin/autoslides-extractor/internal/queue"
	"github.com/bit-admin/autoslides-extractor/revid/config"
)

// probeSampleLimit bounds the initial keyframe scan used to estimate
// cadence, per spec.md §4.D step 2.
const probeSampleLimit = 100

// defaultChunkSize is used when Config.ChunkSize is unset.
const defaultChunkSize = 500

// Decoder samples keyframe-aligned frames from a video file.
type Decoder struct {
	cfg *config.Config

	// OnVideoInfo, OnWarning and OnProgress are optional hooks the
	// coordinator may set before calling Run to receive progress events.
	// Nil hooks are simply not called.
	OnVideoInfo func(VideoInfo)
	OnWarning   func(reason string)
	OnProgress  func(Progress)
}

// New returns a Decoder configured by cfg. cfg must carry a non-nil Logger.
func New(cfg *config.Config) *Decoder {
	return &Decoder{cfg: cfg}
}

// Classification summarises the decisions made before any frame is read,
// exposed so the coordinator can log or surface them.
type Classification struct {
	Strategy        SamplingStrategy
	SparseKeyframes bool
	ScreenRecording bool
	ScreenHeuristic ScreenRecordingHeuristic
	Interval        float64
}

// Run opens cfg.InputPath, classifies its keyframe cadence, and streams
// chunks of sampled frames into q until the stream is exhausted or ctx is
// cancelled. It always calls q.Finish before returning.
func (d *Decoder) Run(ctx context.Context, q *queue.Queue) (Classification, error) {
	logger := d.cfg.Logger

	info, err := probeStream(ctx, d.cfg.InputPath)
	if err != nil {
		q.Finish()
		return Classification{}, err
	}

	if !isSupportedCodec(info.CodecName) {
		q.Finish()
		logger.Error("decoder: unsupported codec", "codec", info.CodecName, "path", d.cfg.InputPath)
		return Classification{}, fmt.Errorf("%w: %s", ErrUnsupportedCodec, info.CodecName)
	}

	sample, err := probeKeyframeTimestamps(ctx, d.cfg.InputPath, probeSampleLimit)
	if err != nil {
		q.Finish()
		return Classification{}, err
	}
	interval := estimateInterval(sample)
	strategy, sparse := classify(interval)
	screen, heuristic := isScreenRecording(info, interval)
	class := Classification{Strategy: strategy, SparseKeyframes: sparse, ScreenRecording: screen, ScreenHeuristic: heuristic, Interval: interval}

	if sparse {
		logger.Warning("decoder: sparse keyframe interval", "interval", interval, "path", d.cfg.InputPath)
		if d.OnWarning != nil {
			d.OnWarning("sparse keyframe interval")
		}
	}
	logger.Debug("decoder: classified stream", "strategy", strategy.String(), "interval", interval, "screen_recording", screen)

	all, err := probeKeyframeTimestamps(ctx, d.cfg.InputPath, 0)
	if err != nil {
		q.Finish()
		return class, err
	}
	kept := applyStrategy(all, strategy)

	vc, backend, err := openCapture(d.cfg.InputPath, platform.Probe())
	if err != nil {
		q.Finish()
		return class, err
	}
	defer vc.Close()
	logger.Debug("decoder: opened backend", "backend", string(backend))

	if d.OnVideoInfo != nil {
		d.OnVideoInfo(VideoInfo{
			Width:               info.Width,
			Height:              info.Height,
			Duration:            info.Duration,
			FrameRate:           info.FrameRate,
			AvgKeyframeInterval: interval,
			ScreenRecording:     screen,
			ScreenHeuristic:     heuristic,
			Backend:             string(backend),
		})
	}

	if err := d.stream(ctx, vc, kept, q, info.Duration); err != nil {
		return class, err
	}
	return class, nil
}

// stream reads frames at the timestamps in kept, accumulating them into
// chunks of at most cfg.ChunkSize frames and emitting each onto q.
// totalDuration is reported back through OnProgress alongside each sampled
// frame's presentation timestamp.
func (d *Decoder) stream(ctx context.Context, vc *gocv.VideoCapture, kept []float64, q *queue.Queue, totalDuration float64) error {
	logger := d.cfg.Logger

	chunkSize := int(d.cfg.ChunkSize)
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}

	var (
		chunk       []*buffer.Buffer
		startOffset int
		globalIndex int
		mat         = gocv.NewMat()
	)
	defer mat.Close()

	emit := func(isLast bool) error {
		c := queue.Chunk{Frames: chunk, StartOffset: startOffset, IsLast: isLast}
		if err := q.Put(ctx, c); err != nil {
			return err
		}
		startOffset = globalIndex
		chunk = nil
		return nil
	}

	for _, ts := range kept {
		select {
		case <-ctx.Done():
			q.Finish()
			return ctx.Err()
		default:
		}

		buf, err := grabFrame(vc, &mat, ts)
		if err != nil {
			logger.Warning("decoder: dropping undecodable frame", "ts", ts, "error", err)
			continue
		}

		chunk = append(chunk, buf)
		globalIndex++

		if d.OnProgress != nil {
			percent := 0.0
			if len(kept) > 0 {
				percent = float64(globalIndex) / float64(len(kept)) * 100
			}
			d.OnProgress(Progress{CurrentPTS: ts, TotalDuration: totalDuration, Percent: percent})
		}

		if len(chunk) >= chunkSize {
			if err := emit(false); err != nil {
				q.Finish()
				return err
			}
		}
	}

	if err := emit(true); err != nil {
		q.Finish()
		return err
	}
	q.Finish()
	return nil
}

// applyStrategy filters timestamps per strategy, per spec.md §4.D step 5.
func applyStrategy(timestamps []float64, strategy SamplingStrategy) []float64 {
	if strategy != DropEveryOtherKeyframe {
		return timestamps
	}
	kept := make([]float64, 0, (len(timestamps)+1)/2)
	for i := 0; i < len(timestamps); i += 2 {
		kept = append(kept, timestamps[i])
	}
	return kept
}

// grabFrame seeks vc to ts and decodes one frame into a new aligned
// FrameBuffer. This is the single necessary pixel copy (spec.md §4.D step
// 5): it lands OpenCV's packed BGR bytes into buffer.Buffer's aligned
// storage.
func grabFrame(vc *gocv.VideoCapture, mat *gocv.Mat, ts float64) (*buffer.Buffer, error) {
	vc.Set(gocv.VideoCapturePosMsec, ts*1000)

	if ok := vc.Read(mat); !ok || mat.Empty() {
		return nil, pkgerrors.Wrapf(ErrDecodeFrame, "read frame at ts=%.3f", ts)
	}

	buf, err := copyMatToBuffer(*mat)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "copying decoded frame into buffer")
	}
	return buf, nil
}

// copyMatToBuffer copies a BGR8 gocv.Mat's pixels into a new aligned
// buffer.Buffer, respecting the buffer's (possibly wider) row stride.
func copyMatToBuffer(mat gocv.Mat) (*buffer.Buffer, error) {
	w, h := mat.Cols(), mat.Rows()
	buf, err := buffer.New(w, h)
	if err != nil {
		return nil, err
	}

	src := mat.ToBytes()
	v := buf.View()
	rowBytes := w * buffer.Channels
	for y := 0; y < h; y++ {
		copy(v.Pix[y*v.Stride:y*v.Stride+rowBytes], src[y*rowBytes:(y+1)*rowBytes])
	}
	return buf, nil
}
