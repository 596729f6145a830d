/*
DESCRIPTION
  variables.go contains a list of structs that provide a variable Name, type
  in a string format, a function for updating the variable in the Config
  struct from a string, and finally, a validation function to check the
  validity of the corresponding field value in the Config.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Config map Keys.
const (
	KeyInputPath         = "InputPath"
	KeyOutputDir         = "OutputDir"
	KeyChunkSize         = "ChunkSize"
	KeyTargetInterval    = "TargetInterval"
	KeySSIMThreshold     = "SSIMThreshold"
	KeyDownsampleEnabled = "DownsampleEnabled"
	KeyDownsampleWidth   = "DownsampleWidth"
	KeyDownsampleHeight  = "DownsampleHeight"
	KeyJPEGQuality       = "JPEGQuality"
	KeySuppress          = "Suppress"
)

// Types, used only for documentation/introspection of Variables.
const (
	typeString = "string"
	typeUint   = "uint"
	typeFloat  = "float"
	typeBool   = "bool"
)

// Defaults, per spec.md §6.
const (
	defaultChunkSize        = 500
	defaultTargetInterval   = 2.0
	defaultSSIMThreshold    = ThresholdNormal
	defaultDownsampleWidth  = DownsampleWidthDefault
	defaultDownsampleHeight = DownsampleHeightDefault
	defaultJPEGQuality      = 95
)

// Variables describes the variables that can be used to drive Config.
// Each struct provides the name and type of variable, a function for
// updating this variable in a Config, and a function for validating the
// value of the variable.
var Variables = []struct {
	Name     string
	Type     string
	Update   func(*Config, string)
	Validate func(*Config)
}{
	{
		Name:   KeyInputPath,
		Type:   typeString,
		Update: func(c *Config, v string) { c.InputPath = v },
		Validate: func(c *Config) {
			if c.InputPath == "" {
				c.Logger.Error("InputPath must be set")
			}
		},
	},
	{
		Name:   KeyOutputDir,
		Type:   typeString,
		Update: func(c *Config, v string) { c.OutputDir = v },
		Validate: func(c *Config) {
			if c.OutputDir == "" {
				c.LogInvalidField(KeyOutputDir, ".")
				c.OutputDir = "."
			}
		},
	},
	{
		Name:   KeyChunkSize,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.ChunkSize = parseUint(KeyChunkSize, v, c) },
		Validate: func(c *Config) {
			if c.ChunkSize == 0 {
				c.LogInvalidField(KeyChunkSize, defaultChunkSize)
				c.ChunkSize = defaultChunkSize
			}
		},
	},
	{
		Name:   KeyTargetInterval,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.TargetInterval = parseFloat(KeyTargetInterval, v, c) },
		Validate: func(c *Config) {
			if c.TargetInterval <= 0 {
				c.LogInvalidField(KeyTargetInterval, defaultTargetInterval)
				c.TargetInterval = defaultTargetInterval
			}
		},
	},
	{
		Name:   KeySSIMThreshold,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.SSIMThreshold = parseFloat(KeySSIMThreshold, v, c) },
		Validate: func(c *Config) {
			if c.SSIMThreshold < 0.9 || c.SSIMThreshold > 0.9999 {
				c.LogInvalidField(KeySSIMThreshold, defaultSSIMThreshold)
				c.SSIMThreshold = defaultSSIMThreshold
			}
		},
	},
	{
		Name:   KeyDownsampleEnabled,
		Type:   typeBool,
		Update: func(c *Config, v string) { c.DownsampleEnabled = parseBool(KeyDownsampleEnabled, v, c) },
	},
	{
		Name:   KeyDownsampleWidth,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.DownsampleWidth = parseUint(KeyDownsampleWidth, v, c) },
		Validate: func(c *Config) {
			if c.DownsampleWidth == 0 {
				c.LogInvalidField(KeyDownsampleWidth, defaultDownsampleWidth)
				c.DownsampleWidth = defaultDownsampleWidth
			}
		},
	},
	{
		Name:   KeyDownsampleHeight,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.DownsampleHeight = parseUint(KeyDownsampleHeight, v, c) },
		Validate: func(c *Config) {
			if c.DownsampleHeight == 0 {
				c.LogInvalidField(KeyDownsampleHeight, defaultDownsampleHeight)
				c.DownsampleHeight = defaultDownsampleHeight
			}
		},
	},
	{
		Name:   KeyJPEGQuality,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.JPEGQuality = int(parseUint(KeyJPEGQuality, v, c)) },
		Validate: func(c *Config) {
			if c.JPEGQuality <= 0 || c.JPEGQuality > 100 {
				c.LogInvalidField(KeyJPEGQuality, defaultJPEGQuality)
				c.JPEGQuality = defaultJPEGQuality
			}
		},
	},
	{
		Name:   KeySuppress,
		Type:   typeBool,
		Update: func(c *Config, v string) { c.Suppress = parseBool(KeySuppress, v, c) },
	},
}

func parseUint(n, v string, c *Config) uint {
	_v, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		c.Logger.Warning(fmt.Sprintf("expected unsigned int for param %s", n), "value", v)
	}
	return uint(_v)
}

func parseFloat(n, v string, c *Config) float64 {
	_v, err := strconv.ParseFloat(v, 64)
	if err != nil {
		c.Logger.Warning(fmt.Sprintf("expected float for param %s", n), "value", v)
	}
	return _v
}

func parseBool(n, v string, c *Config) (b bool) {
	switch strings.ToLower(v) {
	case "true":
		b = true
	case "false":
		b = false
	default:
		c.Logger.Warning(fmt.Sprintf("expected bool for param %s", n), "value", v)
	}
	return
}
