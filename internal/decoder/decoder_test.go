package decoder

import (
	"math"
	"testing"
)

func TestEstimateInterval(t *testing.T) {
	tests := []struct {
		name string
		ts   []float64
		want float64
	}{
		{"no samples", nil, defaultInterval},
		{"one sample", []float64{1.0}, defaultInterval},
		{"regular cadence", []float64{0, 2, 4, 6}, 2.0},
		{"irregular cadence", []float64{0, 1, 3, 6}, 2.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := estimateInterval(tt.ts)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("estimateInterval(%v) = %v, want %v", tt.ts, got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		interval     float64
		wantStrategy SamplingStrategy
		wantSparse   bool
	}{
		{"sparse", 5.0, UseAllKeyframes, true},
		{"boundary sparse", 4.0, UseAllKeyframes, true},
		{"typical cadence low", 1.6, UseAllKeyframes, false},
		{"typical cadence high", 1.9, UseAllKeyframes, false},
		{"tight cadence low", 1.0, DropEveryOtherKeyframe, false},
		{"tight cadence high", 1.5, DropEveryOtherKeyframe, false},
		{"gap between bands", 1.55, UseAllKeyframes, false},
		{"very tight", 0.2, UseAllKeyframes, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy, sparse := classify(tt.interval)
			if strategy != tt.wantStrategy {
				t.Errorf("classify(%v) strategy = %v, want %v", tt.interval, strategy, tt.wantStrategy)
			}
			if sparse != tt.wantSparse {
				t.Errorf("classify(%v) sparse = %v, want %v", tt.interval, sparse, tt.wantSparse)
			}
		})
	}
}

func TestIsScreenRecording(t *testing.T) {
	tests := []struct {
		name     string
		info     StreamInfo
		interval float64
		want     bool
	}{
		{
			name:     "matches resolution codec and framerate",
			info:     StreamInfo{Width: 1920, Height: 1080, CodecName: "h264", FrameRate: 30},
			interval: 2.0,
			want:     true,
		},
		{
			name:     "only resolution matches",
			info:     StreamInfo{Width: 1920, Height: 1080, CodecName: "vp9", FrameRate: 20},
			interval: 20.0,
			want:     false,
		},
		{
			name:     "camera-like footage",
			info:     StreamInfo{Width: 3840, Height: 2160, CodecName: "hevc", FrameRate: 29.97},
			interval: 1.0,
			want:     true,
		},
		{
			name:     "no matches",
			info:     StreamInfo{Width: 640, Height: 480, CodecName: "mpeg2video", FrameRate: 15},
			interval: 30.0,
			want:     false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, heuristic := isScreenRecording(tt.info, tt.interval)
			if got != tt.want {
				t.Errorf("isScreenRecording(%+v, %v) = %v, want %v", tt.info, tt.interval, got, tt.want)
			}
			if got != (heuristic.Matches() >= 2) {
				t.Errorf("isScreenRecording(%+v, %v) result disagrees with its own heuristic %+v", tt.info, tt.interval, heuristic)
			}
		})
	}
}

func TestIsSupportedCodec(t *testing.T) {
	tests := []struct {
		codec string
		want  bool
	}{
		{"h264", true},
		{"hevc", true},
		{"vp9", true},
		{"prores", true},
		{"wmv3", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isSupportedCodec(tt.codec); got != tt.want {
			t.Errorf("isSupportedCodec(%q) = %v, want %v", tt.codec, got, tt.want)
		}
	}
}

func TestApplyStrategyUseAll(t *testing.T) {
	ts := []float64{0, 2, 4, 6}
	got := applyStrategy(ts, UseAllKeyframes)
	if len(got) != len(ts) {
		t.Fatalf("len = %d, want %d", len(got), len(ts))
	}
	for i := range ts {
		if got[i] != ts[i] {
			t.Errorf("got[%d] = %v, want %v", i, got[i], ts[i])
		}
	}
}

func TestApplyStrategyDropEveryOther(t *testing.T) {
	ts := []float64{0, 1, 2, 3, 4}
	want := []float64{0, 2, 4}
	got := applyStrategy(ts, DropEveryOtherKeyframe)
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestParseRational(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"30/1", 30},
		{"30000/1001", 29.97002997002997},
		{"0/0", 0},
		{"bad", 0},
	}
	for _, tt := range tests {
		if got := parseRational(tt.in); math.Abs(got-tt.want) > 1e-6 {
			t.Errorf("parseRational(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
