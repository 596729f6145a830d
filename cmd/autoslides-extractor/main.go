/*
DESCRIPTION
  main.go is the autoslides-extractor CLI entry point: it wires flags onto a
  config.Config, builds a pipeline.Coordinator, and renders its progress
  events to the terminal.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package main is the autoslides-extractor CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/utils/logging"

	"github.com/bit-admin/autoslides-extractor/internal/pipeline"
	"github.com/bit-admin/autoslides-extractor/internal/ssim"
	"github.com/bit-admin/autoslides-extractor/revid/config"
)

// version is the current software version.
const version = "v0.1.0"

// Logging configuration, mirroring cmd/rv's fixed rotation policy.
const (
	logMaxSize   = 50 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
)

func main() {
	root := &cobra.Command{
		Use:     "autoslides-extractor",
		Short:   "Extract presentation slides from a lecture recording",
		Version: version,
	}
	root.AddCommand(newExtractCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// extractFlags holds the extract command's flag values ahead of being
// applied to a config.Config.
type extractFlags struct {
	outputDir      string
	logPath        string
	verbose        bool
	threshold      string
	chunkSize      uint
	targetInterval float64
	jpegQuality    int
	downsample     bool
	downsampleW    uint
	downsampleH    uint
}

func newExtractCmd() *cobra.Command {
	var fl extractFlags

	cmd := &cobra.Command{
		Use:   "extract <video>",
		Short: "Extract slides from a single video file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(args[0], fl)
		},
	}

	cmd.Flags().StringVarP(&fl.outputDir, "output", "o", ".", "base output directory")
	cmd.Flags().StringVar(&fl.logPath, "log-file", "autoslides-extractor.log", "log file path")
	cmd.Flags().BoolVarP(&fl.verbose, "verbose", "v", false, "also log to stderr at debug level")
	cmd.Flags().StringVar(&fl.threshold, "threshold", "normal", "SSIM threshold preset: strict, normal, loose")
	cmd.Flags().UintVar(&fl.chunkSize, "chunk-size", 500, "frames per chunk")
	cmd.Flags().Float64Var(&fl.targetInterval, "target-interval", 2.0, "informational nominal sampling interval, seconds")
	cmd.Flags().IntVar(&fl.jpegQuality, "jpeg-quality", 95, "JPEG quality, 1-100")
	cmd.Flags().BoolVar(&fl.downsample, "downsample", true, "resize frames before SSIM comparison")
	cmd.Flags().UintVar(&fl.downsampleW, "downsample-width", config.DownsampleWidthDefault, "downsample target width")
	cmd.Flags().UintVar(&fl.downsampleH, "downsample-height", config.DownsampleHeightDefault, "downsample target height")

	return cmd
}

// thresholdPreset maps a --threshold flag value to its config constant.
func thresholdPreset(name string) (float64, error) {
	switch name {
	case "strict":
		return config.ThresholdStrict, nil
	case "normal", "":
		return config.ThresholdNormal, nil
	case "loose":
		return config.ThresholdLoose, nil
	default:
		return 0, fmt.Errorf("unknown --threshold preset %q (want strict, normal or loose)", name)
	}
}

func runExtract(inputPath string, fl extractFlags) error {
	threshold, err := thresholdPreset(fl.threshold)
	if err != nil {
		return err
	}

	fileLog := &lumberjack.Logger{
		Filename:   fl.logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	defer fileLog.Close()

	level := int8(logging.Info)
	out := io.Writer(fileLog)
	if fl.verbose {
		level = logging.Debug
		out = io.MultiWriter(fileLog, os.Stderr)
	}
	logger := logging.New(level, out, false)

	cfg := &config.Config{
		InputPath:         inputPath,
		OutputDir:         fl.outputDir,
		ChunkSize:         fl.chunkSize,
		TargetInterval:    fl.targetInterval,
		SSIMThreshold:     threshold,
		DownsampleEnabled: fl.downsample,
		DownsampleWidth:   fl.downsampleW,
		DownsampleHeight:  fl.downsampleH,
		JPEGQuality:       fl.jpegQuality,
		Logger:            logger,
		LogLevel:          level,
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	engine := ssim.New(ssim.Options{
		Downsample: cfg.DownsampleEnabled,
		Width:      cfg.DownsampleWidth,
		Height:     cfg.DownsampleHeight,
	})

	coord := pipeline.New(cfg, engine)
	coord.OnEvent = newTerminalReporter().onEvent

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	result := coord.Run(ctx)

	switch result.Status {
	case pipeline.StatusOK:
		color.New(color.FgGreen, color.Bold).Printf("done: %d slide(s) saved in %s\n", result.SlideCount, result.Duration)
		return nil
	case pipeline.StatusCancelled:
		color.New(color.FgYellow).Println("cancelled")
		return nil
	default:
		return fmt.Errorf("%s: %w", result.VideoName, result.Err)
	}
}

// terminalReporter renders pipeline.Event values to the terminal, grounded
// on the same color/progressbar pairing the retrieval pack's other video
// tools use for their own terminal reporters.
type terminalReporter struct {
	bar    *progressbar.ProgressBar
	warn   *color.Color
	notice *color.Color
}

func newTerminalReporter() *terminalReporter {
	return &terminalReporter{
		warn:   color.New(color.FgYellow),
		notice: color.New(color.FgCyan),
	}
}

func (r *terminalReporter) onEvent(e pipeline.Event) {
	switch e.Kind {
	case pipeline.EventVideoInfo:
		r.notice.Printf("%dx%d, %.1fs, %.2ffps, backend=%s, screen_recording=%v\n",
			e.VideoInfo.Width, e.VideoInfo.Height, e.VideoInfo.Duration,
			e.VideoInfo.FrameRate, e.VideoInfo.Backend, e.VideoInfo.ScreenRecording)
		r.bar = progressbar.NewOptions(100, progressbar.OptionSetDescription("decoding"))
	case pipeline.EventDecoderWarning:
		r.warn.Printf("warning: %s\n", e.Warning)
	case pipeline.EventDecoderProgress:
		if r.bar != nil {
			_ = r.bar.Set(int(e.DecoderProgress.Percent))
		}
	case pipeline.EventSlideSaved:
		fmt.Printf("  saved %s\n", e.SlideSaved.FilePath)
	}
}
