package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bit-admin/autoslides-extractor/internal/buffer"
	"github.com/bit-admin/autoslides-extractor/internal/detector"
	"github.com/bit-admin/autoslides-extractor/internal/queue"
	"github.com/bit-admin/autoslides-extractor/internal/sink"
	"github.com/bit-admin/autoslides-extractor/internal/ssim"
	"github.com/bit-admin/autoslides-extractor/internal/testlog"
	"github.com/bit-admin/autoslides-extractor/revid/config"
)

func TestVideoBaseNameStripsExtension(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/videos/lecture01.mp4", "lecture01"},
		{"lecture01.MOV", "lecture01"},
		{"/a/b/c/no-extension", "no-extension"},
		{"lecture.final.mkv", "lecture.final"},
	}
	for _, tt := range tests {
		if got := videoBaseName(tt.path); got != tt.want {
			t.Errorf("videoBaseName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		s    Status
		want string
	}{
		{StatusOK, "ok"},
		{StatusFailed, "failed"},
		{StatusCancelled, "cancelled"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}

func TestRunFailsForMissingInput(t *testing.T) {
	cfg := &config.Config{
		InputPath: filepath.Join(t.TempDir(), "does-not-exist.mp4"),
		OutputDir: t.TempDir(),
		Logger:    testlog.New(t),
	}
	engine := ssim.New(ssim.Options{})
	c := New(cfg, engine)

	result := c.Run(context.Background())

	if result.Status != StatusFailed {
		t.Fatalf("result.Status = %v, want StatusFailed", result.Status)
	}
	if result.Err == nil {
		t.Fatal("result.Err = nil, want non-nil")
	}
	if result.VideoName != "does-not-exist" {
		t.Errorf("result.VideoName = %q", result.VideoName)
	}
}

func TestRunFailsWhenOutputDirIsBlocked(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "slides_clip")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg := &config.Config{
		InputPath: filepath.Join(dir, "clip.mp4"),
		OutputDir: dir,
		Logger:    testlog.New(t),
	}
	engine := ssim.New(ssim.Options{})
	c := New(cfg, engine)

	result := c.Run(context.Background())

	if result.Status != StatusFailed {
		t.Fatalf("result.Status = %v, want StatusFailed", result.Status)
	}
	if !errors.Is(result.Err, sink.ErrCreateDir) {
		t.Errorf("result.Err = %v, want wrapping sink.ErrCreateDir", result.Err)
	}
	if result.SlideCount != 0 {
		t.Errorf("result.SlideCount = %d, want 0", result.SlideCount)
	}
}

func solidBuffer(t *testing.T, w, h int, v byte) *buffer.Buffer {
	t.Helper()
	buf, err := buffer.New(w, h)
	if err != nil {
		t.Fatalf("buffer.New: %v", err)
	}
	pix := buf.Pix()
	for i := range pix {
		pix[i] = v
	}
	return buf
}

func TestConsumeSavesBothEndsOfIdenticalTwoFrameVideo(t *testing.T) {
	cfg := &config.Config{OutputDir: t.TempDir(), JPEGQuality: 90, SSIMThreshold: config.ThresholdNormal, Logger: testlog.New(t)}

	engine := ssim.New(ssim.Options{})
	det := detector.New(engine, cfg.SSIMThreshold, config.VerificationCount)

	c := New(cfg, engine)
	var events []Event
	c.OnEvent = func(e Event) { events = append(events, e) }

	sk := sink.New(cfg, func(e sink.Event) { c.emit(Event{Kind: EventSlideSaved, SlideSaved: e}) })
	if err := sk.Open("clip"); err != nil {
		t.Fatalf("sk.Open: %v", err)
	}

	q := queue.New()
	chunk := queue.Chunk{
		Frames:      []*buffer.Buffer{solidBuffer(t, 16, 16, 50), solidBuffer(t, 16, 16, 50)},
		StartOffset: 0,
		IsLast:      true,
	}
	if err := q.Put(context.Background(), chunk); err != nil {
		t.Fatalf("q.Put: %v", err)
	}
	q.Finish()

	if err := c.consume(context.Background(), q, det, sk); err != nil {
		t.Fatalf("consume: %v", err)
	}

	if sk.Count() != 2 {
		t.Errorf("sk.Count() = %d, want 2 (spec.md §8 boundary scenario: two-frame identical video saves both ends)", sk.Count())
	}

	var saved int
	for _, e := range events {
		if e.Kind == EventSlideSaved {
			saved++
		}
	}
	if saved != 2 {
		t.Errorf("saw %d EventSlideSaved events, want 2", saved)
	}
}

func TestConsumeRespectsCancellation(t *testing.T) {
	cfg := &config.Config{OutputDir: t.TempDir(), Logger: testlog.New(t)}
	sk := sink.New(cfg, nil)
	if err := sk.Open("clip"); err != nil {
		t.Fatalf("sk.Open: %v", err)
	}
	engine := ssim.New(ssim.Options{})
	det := detector.New(engine, config.ThresholdNormal, config.VerificationCount)

	q := queue.New() // never fed
	c := New(cfg, engine)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.consume(ctx, q, det, sk)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("consume error = %v, want context.Canceled", err)
	}
}
