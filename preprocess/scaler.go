package preprocess

import (
	"image"

	"gocv.io/x/gocv"
)

// Scaler resizes frames of a fixed source size by a constant factor, used to
// scale the annotated frame for display
type Scaler struct {
	// srcWidth is the width of the source image
	srcWidth int
	// srcHeight is the height of the source image
	srcHeight int
	// factor is the scale factor applied to both dimensions
	factor float64
	// dest dimensions
	destWidth  int
	destHeight int
}

// NewScaler returns a Scaler for srcWidth x srcHeight frames.  A factor of
// 1 or less than or equal to 0 leaves frames unscaled
func NewScaler(srcWidth, srcHeight int, factor float64) *Scaler {

	if factor <= 0 {
		factor = 1
	}

	s := &Scaler{
		srcWidth:  srcWidth,
		srcHeight: srcHeight,
		factor:    factor,
	}

	s.preCalc()

	return s
}

// preCalc the destination dimensions, each at least one pixel
func (s *Scaler) preCalc() {
	s.destWidth = max(1, int(float64(s.srcWidth)*s.factor))
	s.destHeight = max(1, int(float64(s.srcHeight)*s.factor))
}

// Identity reports whether the Scaler leaves frames unchanged
func (s *Scaler) Identity() bool {
	return s.destWidth == s.srcWidth && s.destHeight == s.srcHeight
}

// Size returns the scaled frame dimensions
func (s *Scaler) Size() image.Point {
	return image.Pt(s.destWidth, s.destHeight)
}

// Factor returns the scale factor
func (s *Scaler) Factor() float64 {
	return s.factor
}

// Scale resizes src into dest.  When the Scaler is the identity src is
// copied to dest
func (s *Scaler) Scale(src gocv.Mat, dest *gocv.Mat) {

	if s.Identity() {
		src.CopyTo(dest)
		return
	}

	interp := gocv.InterpolationLinear

	if s.factor < 1 {
		interp = gocv.InterpolationArea
	}

	gocv.Resize(src, dest, s.Size(), 0, 0, interp)
}
