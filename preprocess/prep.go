// Package preprocess prepares captured frames for the pipeline and scales
// annotated frames for display.
package preprocess

import (
	"gocv.io/x/gocv"
)

// Prep converts BGR capture frames into the colour and grayscale pair the
// pipeline consumes.  Its Mats are reused between frames
type Prep struct {
	// mirror flips frames horizontally, as expected for a front camera
	mirror bool
	color  gocv.Mat
	gray   gocv.Mat
}

// NewPrep returns a Prep, optionally mirroring frames
func NewPrep(mirror bool) *Prep {
	return &Prep{
		mirror: mirror,
		color:  gocv.NewMat(),
		gray:   gocv.NewMat(),
	}
}

// Mirror reports whether frames are flipped horizontally
func (p *Prep) Mirror() bool {
	return p.mirror
}

// Process prepares the captured frame and returns the colour and gray Mats.
// The returned Mats are owned by Prep and valid until the next call
func (p *Prep) Process(src gocv.Mat) (gocv.Mat, gocv.Mat) {

	if p.mirror {
		gocv.Flip(src, &p.color, 1)
	} else {
		src.CopyTo(&p.color)
	}

	if p.color.Channels() == 1 {
		p.color.CopyTo(&p.gray)
		gocv.CvtColor(p.gray, &p.color, gocv.ColorGrayToBGR)
	} else {
		gocv.CvtColor(p.color, &p.gray, gocv.ColorBGRToGray)
	}

	return p.color, p.gray
}

// Close frees the Mats held by Prep
func (p *Prep) Close() error {
	p.color.Close()
	return p.gray.Close()
}
