/*
DESCRIPTION
  keyframes.go classifies a video's keyframe cadence into a sampling
  strategy and flags likely screen-recording sources, per spec.md §4.D
  steps 2-4.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package decoder

// SamplingStrategy decides which keyframes the decoder keeps.
type SamplingStrategy int

const (
	// UseAllKeyframes keeps every keyframe.
	UseAllKeyframes SamplingStrategy = iota

	// DropEveryOtherKeyframe keeps every second keyframe, starting with the
	// first.
	DropEveryOtherKeyframe
)

func (s SamplingStrategy) String() string {
	switch s {
	case DropEveryOtherKeyframe:
		return "drop-every-other-keyframe"
	default:
		return "use-all-keyframes"
	}
}

// defaultInterval is used when fewer than two keyframes were observed.
const defaultInterval = 2.0

// estimateInterval returns the average gap in seconds between consecutive
// keyframe timestamps, or defaultInterval if fewer than two were observed.
func estimateInterval(timestamps []float64) float64 {
	if len(timestamps) < 2 {
		return defaultInterval
	}
	var sum float64
	for i := 1; i < len(timestamps); i++ {
		sum += timestamps[i] - timestamps[i-1]
	}
	return sum / float64(len(timestamps)-1)
}

// classify maps an average I-frame interval to a sampling strategy, per
// spec.md §4.D step 3. sparse reports that the coordinator may want to
// surface a warning.
func classify(interval float64) (strategy SamplingStrategy, sparse bool) {
	switch {
	case interval >= 4.0:
		return UseAllKeyframes, true
	case interval >= 1.6 && interval <= 1.9:
		return UseAllKeyframes, false
	case interval >= 1.0 && interval <= 1.5:
		return DropEveryOtherKeyframe, false
	default:
		return UseAllKeyframes, false
	}
}

// screenResolutions lists {width,height} pairs common to screen captures.
var screenResolutions = [][2]int{
	{1920, 1080}, {2560, 1440}, {3840, 2160},
	{1280, 720}, {1366, 768}, {1440, 900},
}

// commonFrameRates lists the frame rates a screen-recording heuristic match
// must fall within 1fps of.
var commonFrameRates = []float64{25, 30, 60}

// ScreenRecordingHeuristic records which individual signal checked by
// isScreenRecording matched, so the coordinator's decoder_warning event can
// explain why the flag fired rather than just that it did.
type ScreenRecordingHeuristic struct {
	ResolutionMatch bool
	CodecMatch      bool
	FrameRateMatch  bool
	IntervalMatch   bool
}

// Matches reports how many of the four sub-checks matched.
func (h ScreenRecordingHeuristic) Matches() int {
	n := 0
	for _, m := range []bool{h.ResolutionMatch, h.CodecMatch, h.FrameRateMatch, h.IntervalMatch} {
		if m {
			n++
		}
	}
	return n
}

// isScreenRecording flags info as a likely screen recording if at least two
// of its signals match, per spec.md §4.D step 4. The result is informational
// only and never alters sampling.
func isScreenRecording(info StreamInfo, interval float64) (bool, ScreenRecordingHeuristic) {
	var h ScreenRecordingHeuristic

	for _, res := range screenResolutions {
		if info.Width == res[0] && info.Height == res[1] {
			h.ResolutionMatch = true
			break
		}
	}

	switch info.CodecName {
	case "h264", "hevc", "prores":
		h.CodecMatch = true
	}

	for _, fps := range commonFrameRates {
		if abs(info.FrameRate-fps) <= 1.0 {
			h.FrameRateMatch = true
			break
		}
	}

	if interval >= 0.5 && interval <= 10.0 {
		h.IntervalMatch = true
	}

	return h.Matches() >= 2, h
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// supportedCodecs lists the video codecs the available backends (software
// or GPU) can decode, per spec.md §7's UnsupportedCodec error.
var supportedCodecs = map[string]bool{
	"h264":       true,
	"hevc":       true,
	"vp8":        true,
	"vp9":        true,
	"av1":        true,
	"mpeg4":      true,
	"mpeg2video": true,
	"prores":     true,
}

// isSupportedCodec reports whether name is decodable by any backend this
// decoder can open.
func isSupportedCodec(name string) bool {
	return supportedCodecs[name]
}
