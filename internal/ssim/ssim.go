/*
DESCRIPTION
  ssim.go implements the SSIM engine (component S): the single-block
  luminance structural-similarity score between two equally-sized BGR 8-bit
  frame views, with a vectorised hot path and a portable scalar fallback.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package ssim computes the structural-similarity index between two BGR
// 8-bit frame views, per spec.md §4.S.
package ssim

import (
	"gonum.org/v1/gonum/stat"

	"github.com/bit-admin/autoslides-extractor/internal/buffer"
)

// SSIM constants, spec.md §3: C1 = (0.01*255)^2, C2 = (0.03*255)^2.
const (
	C1 = 6.5025
	C2 = 58.5225
)

// Options configures how frames are prepared before the SSIM formula is
// applied.
type Options struct {
	// Downsample, when true, resizes both inputs to Width x Height using an
	// area-average resampler before converting to luminance.
	Downsample bool

	// Width and Height are the downsample target dimensions. Ignored when
	// Downsample is false. Typical default: 480x270.
	Width, Height uint
}

// Engine computes SSIM scores under a fixed set of Options. It holds no
// other state and is safe for concurrent use by multiple goroutines.
type Engine struct {
	opts Options
}

// New returns an Engine configured with opts.
func New(opts Options) *Engine {
	return &Engine{opts: opts}
}

// Score returns the SSIM similarity of a and b, using the vectorised
// (gonum-backed) computation path.
func (e *Engine) Score(a, b buffer.View) (float64, error) {
	return e.score(a, b, true)
}

// ScoreScalar returns the SSIM similarity of a and b using the portable
// scalar reference path. It must agree with Score to within 1e-9 for
// identical inputs (spec.md §4.S).
func (e *Engine) ScoreScalar(a, b buffer.View) (float64, error) {
	return e.score(a, b, false)
}

func (e *Engine) score(a, b buffer.View, vectorised bool) (float64, error) {
	if a.Width <= 0 || a.Height <= 0 || b.Width <= 0 || b.Height <= 0 {
		return 0, ErrEmptyInput
	}
	if a.Width != b.Width || a.Height != b.Height {
		return 0, ErrDimensionMismatch
	}

	ya, _, _, err := luminance(a, e.opts)
	if err != nil {
		return 0, err
	}
	yb, _, _, err := luminance(b, e.opts)
	if err != nil {
		return 0, err
	}
	if len(ya) != len(yb) {
		return 0, ErrDimensionMismatch
	}

	var muA, muB, varA, varB, covAB float64
	if vectorised {
		muA, varA = vectorStats(ya)
		muB, varB = vectorStats(yb)
		covAB = vectorCovariance(ya, yb, muA, muB)
	} else {
		muA, varA = scalarStats(ya)
		muB, varB = scalarStats(yb)
		covAB = scalarCovariance(ya, yb, muA, muB)
	}

	return combine(muA, muB, varA, varB, covAB), nil
}

// combine applies the single-block luminance SSIM formula (spec.md §3).
func combine(muA, muB, varA, varB, covAB float64) float64 {
	num := (2*muA*muB + C1) * (2*covAB + C2)
	den := (muA*muA + muB*muB + C1) * (varA + varB + C2)
	return num / den
}

// scalarStats computes the population mean and variance of samples with a
// single accumulation loop, avoiding any intermediate float64 slice. This is
// the portable fallback path.
func scalarStats(samples []byte) (mean, variance float64) {
	n := float64(len(samples))
	var sum, sumSq float64
	for _, s := range samples {
		v := float64(s)
		sum += v
		sumSq += v * v
	}
	mean = sum / n
	variance = sumSq/n - mean*mean
	return mean, variance
}

// scalarCovariance computes the population covariance of a and b given
// their means, with a single accumulation loop.
func scalarCovariance(a, b []byte, meanA, meanB float64) float64 {
	n := float64(len(a))
	var sum float64
	for i := range a {
		sum += (float64(a[i]) - meanA) * (float64(b[i]) - meanB)
	}
	return sum / n
}

// vectorStats computes the population mean and variance using gonum's
// statistics routines. gonum's Variance uses the unbiased (n-1) estimator;
// it is corrected here to the population (n) form required by spec.md §3.
func vectorStats(samples []byte) (mean, variance float64) {
	xs := toFloat64(samples)
	n := float64(len(xs))
	mean = stat.Mean(xs, nil)
	if n < 2 {
		return mean, 0
	}
	sampleVar := stat.Variance(xs, nil)
	variance = sampleVar * (n - 1) / n
	return mean, variance
}

// vectorCovariance computes the population covariance using gonum's
// Covariance, corrected from the unbiased (n-1) estimator to the population
// (n) form.
func vectorCovariance(a, b []byte, meanA, meanB float64) float64 {
	xs, ys := toFloat64(a), toFloat64(b)
	n := float64(len(xs))
	if n < 2 {
		return 0
	}
	sampleCov := stat.Covariance(xs, ys, nil)
	return sampleCov * (n - 1) / n
}

func toFloat64(samples []byte) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = float64(s)
	}
	return out
}
