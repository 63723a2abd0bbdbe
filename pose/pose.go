// Package pose defines body landmarks as produced by an external pose
// estimator.  Landmarks are only used for drawing overlays.
package pose

import (
	"image"

	"gocv.io/x/gocv"
)

// Landmark names of the upper body joints
const (
	Nose          = "nose"
	LeftShoulder  = "left_shoulder"
	RightShoulder = "right_shoulder"
	LeftElbow     = "left_elbow"
	RightElbow    = "right_elbow"
	LeftWrist     = "left_wrist"
	RightWrist    = "right_wrist"
	LeftHip       = "left_hip"
	RightHip      = "right_hip"
)

// Landmark is a single body joint with coordinates normalised to [0,1] of the
// frame size
type Landmark struct {
	Name       string
	X, Y       float64
	Visibility float64
}

// Estimator produces body landmarks for a frame
type Estimator interface {
	Estimate(frame gocv.Mat) ([]Landmark, error)
}

// Pair is a line between two named landmarks
type Pair struct {
	From, To string
}

// UpperBodyPairs are the limbs drawn for the upper body skeleton
var UpperBodyPairs = []Pair{
	{LeftShoulder, RightShoulder},
	{LeftShoulder, LeftElbow},
	{LeftElbow, LeftWrist},
	{RightShoulder, RightElbow},
	{RightElbow, RightWrist},
	{LeftShoulder, LeftHip},
	{RightShoulder, RightHip},
	{LeftHip, RightHip},
}

// UpperBodyLandmarks are the joints drawn on the upper body skeleton
var UpperBodyLandmarks = []string{
	Nose, LeftShoulder, RightShoulder, LeftElbow, RightElbow,
	LeftWrist, RightWrist, LeftHip, RightHip,
}

// Select returns the points of pts whose names are in names
func Select(pts map[string]image.Point, names []string) map[string]image.Point {

	out := make(map[string]image.Point, len(names))

	for _, name := range names {
		if pt, ok := pts[name]; ok {
			out[name] = pt
		}
	}

	return out
}

// Points converts landmarks to pixel positions in a width x height frame,
// dropping those below minVisibility or outside the frame
func Points(landmarks []Landmark, width, height int, minVisibility float64) map[string]image.Point {

	pts := make(map[string]image.Point, len(landmarks))

	for _, lm := range landmarks {

		if lm.Visibility < minVisibility {
			continue
		}

		x := int(lm.X * float64(width))
		y := int(lm.Y * float64(height))

		if x < 0 || y < 0 || x >= width || y >= height {
			continue
		}

		pts[lm.Name] = image.Pt(x, y)
	}

	return pts
}

// Segments returns the line segments of pairs where both landmarks are
// present in pts
func Segments(pts map[string]image.Point, pairs []Pair) [][2]image.Point {

	var segs [][2]image.Point

	for _, p := range pairs {

		a, okA := pts[p.From]
		b, okB := pts[p.To]

		if okA && okB {
			segs = append(segs, [2]image.Point{a, b})
		}
	}

	return segs
}
