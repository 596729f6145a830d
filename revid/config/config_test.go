package config

import (
	"testing"

	"github.com/bit-admin/autoslides-extractor/internal/testlog"
)

func TestValidateDefaults(t *testing.T) {
	c := Config{InputPath: "lecture.mp4", Logger: testlog.New(t)}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if c.ChunkSize != defaultChunkSize {
		t.Errorf("ChunkSize = %d, want %d", c.ChunkSize, defaultChunkSize)
	}
	if c.SSIMThreshold != defaultSSIMThreshold {
		t.Errorf("SSIMThreshold = %v, want %v", c.SSIMThreshold, defaultSSIMThreshold)
	}
	if c.DownsampleWidth != defaultDownsampleWidth || c.DownsampleHeight != defaultDownsampleHeight {
		t.Errorf("downsample dims = %dx%d, want %dx%d", c.DownsampleWidth, c.DownsampleHeight, defaultDownsampleWidth, defaultDownsampleHeight)
	}
	if c.JPEGQuality != defaultJPEGQuality {
		t.Errorf("JPEGQuality = %d, want %d", c.JPEGQuality, defaultJPEGQuality)
	}
	if c.OutputDir != "." {
		t.Errorf("OutputDir = %q, want %q", c.OutputDir, ".")
	}
}

func TestUpdate(t *testing.T) {
	c := Config{Logger: testlog.New(t)}
	c.Update(map[string]string{
		KeyInputPath:      "lecture.mp4",
		KeyChunkSize:      "250",
		KeySSIMThreshold:  "0.999",
		KeyDownsampleWidth: "640",
		KeyJPEGQuality:    "80",
	})

	if c.InputPath != "lecture.mp4" {
		t.Errorf("InputPath = %q", c.InputPath)
	}
	if c.ChunkSize != 250 {
		t.Errorf("ChunkSize = %d", c.ChunkSize)
	}
	if c.SSIMThreshold != ThresholdStrict {
		t.Errorf("SSIMThreshold = %v", c.SSIMThreshold)
	}
	if c.DownsampleWidth != 640 {
		t.Errorf("DownsampleWidth = %d", c.DownsampleWidth)
	}
	if c.JPEGQuality != 80 {
		t.Errorf("JPEGQuality = %d", c.JPEGQuality)
	}
}

func TestValidateOutOfRangeThreshold(t *testing.T) {
	c := Config{InputPath: "lecture.mp4", SSIMThreshold: 1.5, Logger: testlog.New(t)}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if c.SSIMThreshold != defaultSSIMThreshold {
		t.Errorf("SSIMThreshold = %v, want default %v", c.SSIMThreshold, defaultSSIMThreshold)
	}
}
