/*
DESCRIPTION
  probe.go shells out to ffprobe to read container/stream metadata and
  keyframe presentation timestamps ahead of the decode pass proper.

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

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
)

// StreamInfo holds the primary video stream's codec parameters, per
// spec.md §4.D step 1.
type StreamInfo struct {
	Width     int
	Height    int
	CodecName string
	FrameRate float64
	Duration  float64
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
}

type ffprobeStream struct {
	CodecType   string `json:"codec_type"`
	CodecName   string `json:"codec_name"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	RFrameRate  string `json:"r_frame_rate"`
	PktPTSTime  string `json:"pkt_pts_time"`
	BestEffortT string `json:"best_effort_timestamp_time"`
	KeyFrame    int    `json:"key_frame"`
}

type ffprobeOutput struct {
	Format  ffprobeFormat    `json:"format"`
	Streams []ffprobeStream  `json:"streams"`
	Frames  []ffprobeStream  `json:"frames"`
}

// probeStream opens the container with ffprobe and returns the primary
// video stream's parameters. It returns ErrNoVideoStream if the container
// carries no video stream, and ErrOpenFailed if ffprobe itself fails.
func probeStream(ctx context.Context, path string) (StreamInfo, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return StreamInfo{}, fmt.Errorf("%w: ffprobe: %v", ErrOpenFailed, err)
	}

	var probe ffprobeOutput
	if err := json.Unmarshal(out, &probe); err != nil {
		return StreamInfo{}, fmt.Errorf("%w: parsing ffprobe output: %v", ErrOpenFailed, err)
	}

	var dur float64
	if probe.Format.Duration != "" {
		dur, _ = strconv.ParseFloat(probe.Format.Duration, 64)
	}

	for _, s := range probe.Streams {
		if s.CodecType != "video" {
			continue
		}
		return StreamInfo{
			Width:     s.Width,
			Height:    s.Height,
			CodecName: s.CodecName,
			FrameRate: parseRational(s.RFrameRate),
			Duration:  dur,
		}, nil
	}
	return StreamInfo{}, ErrNoVideoStream
}

// probeKeyframeTimestamps runs ffprobe with "-skip_frame nokey" so that only
// keyframe packets are ever decoded, and returns their presentation
// timestamps in order. When limit > 0, only the first limit packets are
// read (spec.md §4.D step 2's "up to the first 100 packets"), and the
// keyframes among them are returned.
func probeKeyframeTimestamps(ctx context.Context, path string, limit int) ([]float64, error) {
	args := []string{
		"-v", "quiet",
		"-select_streams", "v:0",
		"-skip_frame", "nokey",
		"-show_entries", "frame=best_effort_timestamp_time,pkt_pts_time",
		"-print_format", "json",
	}
	if limit > 0 {
		args = append(args, "-read_intervals", fmt.Sprintf("%%+#%d", limit))
	}
	args = append(args, path)

	cmd := exec.CommandContext(ctx, "ffprobe", args...)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%w: ffprobe keyframe scan: %v", ErrOpenFailed, err)
	}

	var probe ffprobeOutput
	if err := json.Unmarshal(out, &probe); err != nil {
		return nil, fmt.Errorf("%w: parsing ffprobe keyframe output: %v", ErrOpenFailed, err)
	}

	ts := make([]float64, 0, len(probe.Frames))
	for _, f := range probe.Frames {
		t := f.BestEffortT
		if t == "" {
			t = f.PktPTSTime
		}
		v, err := strconv.ParseFloat(t, 64)
		if err != nil {
			continue
		}
		ts = append(ts, v)
	}
	if limit > 0 && len(ts) > limit {
		ts = ts[:limit]
	}
	return ts, nil
}

// parseRational parses ffprobe's "num/den" frame-rate strings.
func parseRational(s string) float64 {
	var num, den float64
	if _, err := fmt.Sscanf(s, "%f/%f", &num, &den); err != nil || den == 0 {
		return 0
	}
	return num / den
}
