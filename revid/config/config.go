/*
NAME
  config.go

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package config contains the parameter bundle consumed by the slide
// extraction pipeline on start. No field is mutated mid-run.
package config

import (
	"github.com/ausocean/utils/logging"
)

// Threshold presets for SSIMThreshold, matching spec.md §6.
const (
	ThresholdStrict = 0.999
	ThresholdNormal = 0.9985
	ThresholdLoose  = 0.998
)

// VerificationCount is fixed at 3 for this specification; it is not
// configurable, but is exposed as a constant so callers and tests can
// refer to it by name instead of a magic number.
const VerificationCount = 3

// Common downsample presets.
const (
	DownsampleWidthDefault  = 480
	DownsampleHeightDefault = 270
)

// Config provides the parameters relevant to a single pipeline run. A new
// Config must be passed to the coordinator constructor; default values are
// applied by Validate for any field left at its zero value.
type Config struct {
	// InputPath is the video file to decode. Must be set.
	InputPath string

	// OutputDir is the base output directory; slides are written beneath
	// {OutputDir}/slides_{video_name}/.
	OutputDir string

	// ChunkSize is the maximum number of frames the decoder accumulates
	// before emitting a chunk. Positive integer, default 500.
	ChunkSize uint

	// TargetInterval is informational only (spec.md §6): the nominal sampling
	// interval in seconds, default 2.0.
	TargetInterval float64

	// SSIMThreshold is the similarity score above which two frames are
	// considered the same slide. Range [0.9, 0.9999], default
	// ThresholdNormal.
	SSIMThreshold float64

	// DownsampleEnabled controls whether frames are resized before SSIM
	// comparison. Validate leaves it unchanged, so a Config built without
	// setting it has it false; the CLI's --downsample flag defaults to true.
	DownsampleEnabled bool

	// DownsampleWidth and DownsampleHeight define the target size used when
	// DownsampleEnabled is true. Defaults 480x270.
	DownsampleWidth  uint
	DownsampleHeight uint

	// JPEGQuality is a value 1-100 inclusive, passed to the JPEG encoder.
	// 100 represents minimal compression. Default 95.
	JPEGQuality int

	// Logger holds an implementation of the Logger interface used throughout
	// the pipeline. This must be set.
	Logger logging.Logger

	// LogLevel is the pipeline logging verbosity level. Valid values are
	// defined by enums from the logging package: logging.Debug, logging.Info,
	// logging.Warning, logging.Error, logging.Fatal.
	LogLevel int8

	// Suppress holds logger suppression state.
	Suppress bool
}

// Validate checks for errors in the config fields and defaults settings for
// any parameter left unset.
func (c *Config) Validate() error {
	for _, v := range Variables {
		if v.Validate != nil {
			v.Validate(c)
		}
	}
	return nil
}

// Update takes a map of configuration variable names and their corresponding
// string values, parses them to the correct type, and sets the config
// struct fields. Update must not be called while a pipeline run using this
// Config is in progress.
func (c *Config) Update(vars map[string]string) {
	for _, value := range Variables {
		if v, ok := vars[value.Name]; ok && value.Update != nil {
			value.Update(c, v)
		}
	}
}

// LogInvalidField logs that a field was unset or invalid and has been
// defaulted to def.
func (c *Config) LogInvalidField(name string, def interface{}) {
	c.Logger.Info(name+" bad or unset, defaulting", name, def)
}
