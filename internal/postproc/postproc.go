/*
DESCRIPTION
  postproc.go defines the post-processing hook interface the coordinator
  invokes after a video's slides are written. No hook is implemented here;
  the perceptual-hash and ML-classifier pruning passes this interface would
  carry are explicit Non-goals.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package postproc declares the interface by which optional, off-by-default
// hooks may inspect or prune a video's slide folder after the sink finishes
// writing it. This package implements no hook itself.
package postproc

import "context"

// Hook inspects or mutates the slide folder at dir after a video's slides
// have all been written. Implementations are responsible for their own
// idempotency; a Hook may be invoked at most once per video.
type Hook interface {
	Run(ctx context.Context, dir string) error
}
