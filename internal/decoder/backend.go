/*
DESCRIPTION
  backend.go opens a gocv.VideoCapture by trying backend candidates in the
  order the platform package prefers, falling back to software silently on
  failure, per spec.md §4.D "Backend selection".

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
	"gocv.io/x/gocv"

	"github.com/bit-admin/autoslides-extractor/internal/platform"
)

// apiPreference maps a platform.Backend hint to the gocv api OpenCV should
// try. Several hints collapse onto the same api: OpenCV itself decides
// whether a given api path ends up hardware-accelerated, so the mapping
// here only orders the attempts, it does not guarantee acceleration.
func apiPreference(b platform.Backend) gocv.VideoCaptureAPI {
	if b == platform.BackendGPU {
		return gocv.VideoCaptureFFmpeg
	}
	return gocv.VideoCaptureAny
}

// openCapture tries each of candidates in order, returning the first one
// that opens successfully along with the backend that worked. If none
// open, it returns ErrOpenFailed.
func openCapture(path string, candidates []platform.Backend) (*gocv.VideoCapture, platform.Backend, error) {
	for _, b := range candidates {
		vc, err := gocv.VideoCaptureFileWithAPI(path, apiPreference(b))
		if err != nil || vc == nil || !vc.IsOpened() {
			if vc != nil {
				vc.Close()
			}
			continue
		}
		return vc, b, nil
	}
	return nil, "", ErrOpenFailed
}
