package geometry

import (
	"image"
	"math"
)

// Box represents an integer bounding box in (x, y, width, height) format with
// x,y being the top left corner
type Box struct {
	X, Y, W, H int
}

// NewBox creates a new Box with given coordinates
func NewBox(x, y, w, h int) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// BoxFromRect converts an image.Rectangle as used by gocv into a Box
func BoxFromRect(r image.Rectangle) Box {
	return Box{
		X: r.Min.X,
		Y: r.Min.Y,
		W: r.Dx(),
		H: r.Dy(),
	}
}

// Rect converts the box into an image.Rectangle for use with gocv
func (b Box) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.W, b.Y+b.H)
}

// Area returns the area of the box
func (b Box) Area() int {
	return b.W * b.H
}

// BRX returns the bottom-right x coordinate of the box
func (b Box) BRX() int {
	return b.X + b.W
}

// BRY returns the bottom-right y coordinate of the box
func (b Box) BRY() int {
	return b.Y + b.H
}

// Center returns the center point of the box using integer floor division
func (b Box) Center() image.Point {
	return image.Pt(b.X+b.W/2, b.Y+b.H/2)
}

// Empty reports whether the box has no area
func (b Box) Empty() bool {
	return b.W <= 0 || b.H <= 0
}

// Clip clamps the box so it lies within a frame of the given width and height.
// The x,y origin is clamped into [0, dim-1] and width and height are reduced
// so the box stays inside the frame, with a floor of 1.
func Clip(b Box, width, height int) Box {
	x := clampInt(b.X, 0, width-1)
	y := clampInt(b.Y, 0, height-1)
	w := max(1, min(b.W, width-x))
	h := max(1, min(b.H, height-y))

	return Box{X: x, Y: y, W: w, H: h}
}

// IoU calculates the Intersection over Union of two boxes, returning 0 when
// they do not overlap
func IoU(a, b Box) float64 {

	iw := min(a.BRX(), b.BRX()) - max(a.X, b.X)
	ih := min(a.BRY(), b.BRY()) - max(a.Y, b.Y)

	if iw <= 0 || ih <= 0 {
		return 0
	}

	inter := float64(iw * ih)
	union := float64(a.Area()+b.Area()) - inter

	if union <= 0 {
		return 0
	}

	return inter / union
}

// Distance returns the Euclidean distance between two points
func Distance(p0, p1 image.Point) float64 {
	return math.Hypot(float64(p1.X-p0.X), float64(p1.Y-p0.Y))
}

// clampInt limits v to the range [lo, hi].  If hi < lo then lo wins, which
// matches how a zero sized frame degrades
func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
