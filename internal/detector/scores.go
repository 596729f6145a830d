/*
DESCRIPTION
  scores.go computes pairwise SSIM scores across a working view, optionally
  parallelised, in score-index order, per spec.md §4.X.2.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package detector

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/bit-admin/autoslides-extractor/internal/buffer"
	"github.com/bit-admin/autoslides-extractor/internal/ssim"
)

// pairwiseScores computes scores[i] = ssim(frames[i], frames[i+1]) for
// every adjacent pair in frames. Computation is fanned out across up to
// parallelism goroutines; each owns a disjoint index of the result slice,
// so the result is in score-index order regardless of completion order
// (spec.md §4.X.2).
func pairwiseScores(ctx context.Context, engine *ssim.Engine, frames []*buffer.Buffer, parallelism int) ([]float64, error) {
	n := len(frames) - 1
	if n <= 0 {
		return nil, nil
	}
	scores := make([]float64, n)

	if parallelism < 1 {
		parallelism = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, parallelism)

	for i := 0; i < n; i++ {
		i := i
		select {
		case sem <- struct{}{}:
		case <-gctx.Done():
			return nil, g.Wait()
		}
		g.Go(func() error {
			defer func() { <-sem }()
			score, err := engine.Score(frames[i].View(), frames[i+1].View())
			if err != nil {
				return err
			}
			scores[i] = score
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}
