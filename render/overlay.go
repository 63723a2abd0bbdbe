package render

import (
	"fmt"
	"image"

	"github.com/swdee/go-actiontrack/geometry"
	"github.com/swdee/go-actiontrack/pose"
	"gocv.io/x/gocv"
)

// Overlay is the per frame state drawn onto the output image
type Overlay struct {
	// Box is the person box, nil when nobody was found
	Box    *geometry.Box
	Mode   string
	Action string
	// Delta is the centre movement in pixels since the previous frame
	Delta float64
	// Centers is the recent centre history, oldest first
	Centers []image.Point
	// Landmarks from a pose estimator, drawn instead of the stick figure
	// when any limb is visible
	Landmarks []pose.Landmark
	// Debug adds the box geometry text line
	Debug bool
}

// Draw renders the overlay onto img
func (o Overlay) Draw(img *gocv.Mat, poseStyle PoseStyle, trailStyle TrailStyle) {

	if o.Box == nil {
		NotFoundFont().Text(img, "person: not found", image.Pt(20, 30))
		return
	}

	box := *o.Box

	if !Pose(img, o.Landmarks, poseStyle) {
		FrameworkFor(o.Mode).Draw(img, box, 2)
	} else {
		gocv.Rectangle(img, box.Rect(), BoxGreen, 2)
	}

	Trail(img, o.Centers, o.Mode, trailStyle)

	LabelFont().Text(img, Label(o.Mode, o.Action), LabelOrigin(box))

	if o.Debug {
		DebugFont().Text(img, DebugLine(box, o.Delta), image.Pt(20, 60))
	}
}

// Label returns the text shown above the person box
func Label(mode, action string) string {
	return fmt.Sprintf("mode:%s action:%s", mode, action)
}

// LabelOrigin returns the baseline origin of the label, kept at least 20
// pixels from the top of the image
func LabelOrigin(box geometry.Box) image.Point {
	return image.Pt(box.X, max(20, box.Y-10))
}

// DebugLine returns the box geometry debug text
func DebugLine(box geometry.Box, delta float64) string {
	return fmt.Sprintf("box=(%d,%d,%d,%d) area=%d delta=%.1fpx",
		box.X, box.Y, box.W, box.H, box.Area(), delta)
}
