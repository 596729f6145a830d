/*
DESCRIPTION
  downsample.go converts a BGR frame view into a packed grayscale luminance
  buffer, optionally area-averaging it down to a fixed target size first.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package ssim

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/bit-admin/autoslides-extractor/internal/buffer"
)

// packedBGR returns v's pixels as a tightly packed BGR buffer (row stride
// equal to width*3), copying only when the view's stride carries alignment
// padding that a gocv.Mat cannot represent.
func packedBGR(v buffer.View) []byte {
	rowBytes := v.Width * buffer.Channels
	if v.Stride == rowBytes {
		return v.Pix
	}
	packed := make([]byte, rowBytes*v.Height)
	for y := 0; y < v.Height; y++ {
		copy(packed[y*rowBytes:(y+1)*rowBytes], v.Pix[y*v.Stride:y*v.Stride+rowBytes])
	}
	return packed
}

// luminance converts v to single-channel 8-bit luminance samples, resizing
// to opts' target dimensions first when downsampling is enabled. It returns
// the sample buffer along with its width and height.
func luminance(v buffer.View, opts Options) ([]byte, int, int, error) {
	if v.Width <= 0 || v.Height <= 0 {
		return nil, 0, 0, ErrEmptyInput
	}

	bgr, err := gocv.NewMatFromBytes(v.Height, v.Width, gocv.MatTypeCV8UC3, packedBGR(v))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("ssim: building BGR mat: %w", err)
	}
	defer bgr.Close()

	work := bgr
	if opts.Downsample && (int(opts.Width) != v.Width || int(opts.Height) != v.Height) {
		resized := gocv.NewMat()
		defer resized.Close()
		gocv.Resize(bgr, &resized, image.Pt(int(opts.Width), int(opts.Height)), 0, 0, gocv.InterpolationArea)
		work = resized
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(work, &gray, gocv.ColorBGRToGray)

	return gray.ToBytes(), gray.Cols(), gray.Rows(), nil
}
