/*
DESCRIPTION
  sink.go implements the sink (component W): JPEG encoding of accepted
  slides to the per-video output folder, per spec.md §4.W.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package sink writes accepted slides to disk as JPEG files, one folder per
// video, per spec.md §4.W and §6's output layout.
package sink

import (
	"fmt"
	"os"
	"path/filepath"

	"gocv.io/x/gocv"

	"github.com/bit-admin/autoslides-extractor/internal/buffer"
	"github.com/bit-admin/autoslides-extractor/internal/detector"
	"github.com/bit-admin/autoslides-extractor/revid/config"
)

// defaultJPEGQuality is used when Config.JPEGQuality is unset.
const defaultJPEGQuality = 95

// Event describes one slide written to disk, for progress reporting.
type Event struct {
	VideoName string
	Sequence  int
	FilePath  string
}

// OnSaved is called once per slide successfully written. It may be nil.
type OnSaved func(Event)

// Sink writes slides for a single video to {cfg.OutputDir}/slides_{name}/.
// A Sink is not safe for concurrent use; the pipeline's consumer thread
// owns it exclusively, per spec.md §5's shared-resource policy.
type Sink struct {
	cfg     *config.Config
	onSaved OnSaved

	dir       string
	videoName string
	seq       int
}

// New returns a Sink configured by cfg. onSaved may be nil.
func New(cfg *config.Config, onSaved OnSaved) *Sink {
	return &Sink{cfg: cfg, onSaved: onSaved}
}

// Open creates (if absent) the per-video output folder for videoName and
// resets the save sequence. It must be called once before any Save call for
// that video. Failure to create the directory is fatal for the video
// (spec.md §7).
func (s *Sink) Open(videoName string) error {
	dir := filepath.Join(s.cfg.OutputDir, "slides_"+videoName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.cfg.Logger.Error("sink: cannot create output directory", "dir", dir, "error", err)
		return fmt.Errorf("%w: %s: %v", ErrCreateDir, dir, err)
	}
	s.dir = dir
	s.videoName = videoName
	s.seq = 0
	return nil
}

// Dir returns the per-video output folder set by the most recent Open call.
func (s *Sink) Dir() string { return s.dir }

// Count returns the number of slides successfully saved so far.
func (s *Sink) Count() int { return s.seq }

// Save encodes slide and writes it to the next sequence-numbered file in
// the video's output folder. Save never returns an error that should stop
// the pipeline: a write failure is logged and reported via the returned
// error for the caller's own bookkeeping, but the video's remaining slides
// are still processed (spec.md §7, WriteFailed).
func (s *Sink) Save(slide detector.Slide) error {
	seq := s.seq + 1
	name := fmt.Sprintf("slide_%s_%03d.jpg", s.videoName, seq)
	path := filepath.Join(s.dir, name)

	mat, err := bufferToMat(slide.Frame)
	if err != nil {
		s.cfg.Logger.Warning("sink: dropping slide, cannot build image", "path", path, "error", err)
		return fmt.Errorf("%w: %s: %v", ErrWriteFailed, path, err)
	}
	defer mat.Close()

	quality := s.cfg.JPEGQuality
	if quality <= 0 {
		quality = defaultJPEGQuality
	}

	ok := gocv.IMWriteWithParams(path, mat, []int{int(gocv.IMWriteJpegQuality), quality})
	if !ok {
		s.cfg.Logger.Warning("sink: failed to write slide", "path", path)
		return fmt.Errorf("%w: %s", ErrWriteFailed, path)
	}

	s.seq = seq
	s.cfg.Logger.Info("sink: slide saved", "video", s.videoName, "sequence", s.seq, "path", path)
	if s.onSaved != nil {
		s.onSaved(Event{VideoName: s.videoName, Sequence: s.seq, FilePath: path})
	}
	return nil
}

// bufferToMat copies a Buffer's pixels into a tightly packed BGR gocv.Mat,
// stripping the Buffer's (possibly wider) row-stride padding.
func bufferToMat(buf *buffer.Buffer) (gocv.Mat, error) {
	v := buf.View()
	rowBytes := v.Width * buffer.Channels
	if rowBytes == v.Stride {
		return gocv.NewMatFromBytes(v.Height, v.Width, gocv.MatTypeCV8UC3, v.Pix)
	}

	packed := make([]byte, rowBytes*v.Height)
	for y := 0; y < v.Height; y++ {
		copy(packed[y*rowBytes:(y+1)*rowBytes], v.Pix[y*v.Stride:y*v.Stride+rowBytes])
	}
	return gocv.NewMatFromBytes(v.Height, v.Width, gocv.MatTypeCV8UC3, packed)
}
