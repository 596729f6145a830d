package ssim

import (
	"math"
	"testing"

	"github.com/bit-admin/autoslides-extractor/internal/buffer"
)

func solidView(t *testing.T, w, h int, b, g, r byte) buffer.View {
	t.Helper()
	buf, err := buffer.New(w, h)
	if err != nil {
		t.Fatalf("buffer.New: %v", err)
	}
	v := buf.View()
	for y := 0; y < h; y++ {
		row := v.Pix[y*v.Stride : y*v.Stride+w*buffer.Channels]
		for x := 0; x < w; x++ {
			row[x*3+0] = b
			row[x*3+1] = g
			row[x*3+2] = r
		}
	}
	return v
}

func gradientView(t *testing.T, w, h int) buffer.View {
	t.Helper()
	buf, err := buffer.New(w, h)
	if err != nil {
		t.Fatalf("buffer.New: %v", err)
	}
	v := buf.View()
	for y := 0; y < h; y++ {
		row := v.Pix[y*v.Stride : y*v.Stride+w*buffer.Channels]
		for x := 0; x < w; x++ {
			val := byte((x + y) % 256)
			row[x*3+0] = val
			row[x*3+1] = val
			row[x*3+2] = val
		}
	}
	return v
}

func noOptsEngine() *Engine { return New(Options{Downsample: false}) }

func TestIdenticalInputsScoreOne(t *testing.T) {
	e := noOptsEngine()
	a := gradientView(t, 32, 32)
	score, err := e.Score(a, a)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if math.Abs(score-1.0) > 1e-9 {
		t.Errorf("ssim(a,a) = %v, want 1.0", score)
	}
}

func TestCommutative(t *testing.T) {
	e := noOptsEngine()
	a := solidView(t, 16, 16, 10, 20, 30)
	b := gradientView(t, 16, 16)
	ab, err := e.Score(a, b)
	if err != nil {
		t.Fatalf("Score(a,b): %v", err)
	}
	ba, err := e.Score(b, a)
	if err != nil {
		t.Fatalf("Score(b,a): %v", err)
	}
	if math.Abs(ab-ba) > 1e-9 {
		t.Errorf("ssim not commutative: %v vs %v", ab, ba)
	}
}

func TestBounded(t *testing.T) {
	e := noOptsEngine()
	a := solidView(t, 16, 16, 0, 0, 0)
	b := solidView(t, 16, 16, 255, 255, 255)
	score, err := e.Score(a, b)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if score < 0 || score > 1+1e-9 {
		t.Errorf("ssim out of bounds: %v", score)
	}
}

func TestScalarAndVectorAgree(t *testing.T) {
	e := noOptsEngine()
	a := gradientView(t, 24, 24)
	b := solidView(t, 24, 24, 128, 128, 128)

	vec, err := e.Score(a, b)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	sca, err := e.ScoreScalar(a, b)
	if err != nil {
		t.Fatalf("ScoreScalar: %v", err)
	}
	if math.Abs(vec-sca) > 1e-9 {
		t.Errorf("vector/scalar mismatch: %v vs %v", vec, sca)
	}
}

func TestDimensionMismatch(t *testing.T) {
	e := noOptsEngine()
	a := gradientView(t, 16, 16)
	b := gradientView(t, 8, 8)
	if _, err := e.Score(a, b); err != ErrDimensionMismatch {
		t.Errorf("err = %v, want ErrDimensionMismatch", err)
	}
}

func TestDownsampling(t *testing.T) {
	e := New(Options{Downsample: true, Width: 8, Height: 8})
	a := gradientView(t, 32, 32)
	b := gradientView(t, 32, 32)
	score, err := e.Score(a, b)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if math.Abs(score-1.0) > 1e-9 {
		t.Errorf("ssim(a,a) downsampled = %v, want 1.0", score)
	}
}
