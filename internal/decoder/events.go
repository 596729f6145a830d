/*
DESCRIPTION
  events.go defines the decoder's optional progress hooks, consumed by the
  coordinator to surface spec.md §6's video_info/decoder_progress events and
  SPEC_FULL.md §5's supplemented decoder_warning event.

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

// VideoInfo summarises a classified video stream, reported once per run
// right after classification completes and before any frame is decoded.
type VideoInfo struct {
	Width               int
	Height              int
	Duration            float64
	FrameRate           float64
	AvgKeyframeInterval float64
	ScreenRecording     bool
	ScreenHeuristic     ScreenRecordingHeuristic
	Backend             string
}

// Progress reports decode position within a run.
type Progress struct {
	CurrentPTS    float64
	TotalDuration float64
	Percent       float64
}
