// Package motion measures how much a region of the image changed between two
// consecutive grayscale frames.
package motion

import (
	"image"

	"github.com/swdee/go-actiontrack/geometry"
	"gocv.io/x/gocv"
)

// Score returns the mean absolute pixel difference between the current and
// previous grayscale frames inside roi.  The roi is intersected with the
// bounds of both frames and an empty crop scores 0.
func Score(curr, prev gocv.Mat, roi geometry.Box) float64 {

	if curr.Empty() || prev.Empty() || roi.Empty() {
		return 0
	}

	rect := roi.Rect().
		Intersect(image.Rect(0, 0, curr.Cols(), curr.Rows())).
		Intersect(image.Rect(0, 0, prev.Cols(), prev.Rows()))

	if rect.Empty() {
		return 0
	}

	currROI := curr.Region(rect)
	defer currROI.Close()

	prevROI := prev.Region(rect)
	defer prevROI.Close()

	diff := gocv.NewMat()
	defer diff.Close()

	gocv.AbsDiff(currROI, prevROI, &diff)

	return diff.Mean().Val1
}

// Halves splits a box into its upper and lower halves.  The split is at
// h/2 with the remainder going to the lower half and both halves are at least
// one pixel high and clipped to the frame.
func Halves(b geometry.Box, width, height int) (upper, lower geometry.Box) {

	half := b.H / 2

	upper = geometry.Clip(geometry.NewBox(b.X, b.Y, b.W, max(1, half)), width, height)
	lower = geometry.Clip(geometry.NewBox(b.X, b.Y+half, b.W, max(1, b.H-half)), width, height)

	return upper, lower
}

// ScoreHalves returns the motion scores of the upper and lower halves of box
func ScoreHalves(curr, prev gocv.Mat, box geometry.Box) (upper, lower float64) {

	u, l := Halves(box, curr.Cols(), curr.Rows())

	return Score(curr, prev, u), Score(curr, prev, l)
}
