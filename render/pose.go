package render

import (
	"github.com/swdee/go-actiontrack/pose"
	"gocv.io/x/gocv"
)

// PoseStyle defines the parameters used for rendering a pose skeleton
type PoseStyle struct {
	LineThickness int
	CircleRadius  int
	// MinVisibility is the landmark visibility below which a joint is not
	// drawn
	MinVisibility float64
}

// DefaultPoseStyle returns default pose style settings
func DefaultPoseStyle() PoseStyle {
	return PoseStyle{
		LineThickness: 2,
		CircleRadius:  3,
		MinVisibility: 0.35,
	}
}

// Pose draws the upper body skeleton for the landmarks onto img.  It returns
// false when no joint was visible so the caller can fall back to a stick
// figure
func Pose(img *gocv.Mat, landmarks []pose.Landmark, style PoseStyle) bool {

	pts := pose.Select(
		pose.Points(landmarks, img.Cols(), img.Rows(), style.MinVisibility),
		pose.UpperBodyLandmarks)

	if len(pts) == 0 {
		return false
	}

	segs := pose.Segments(pts, pose.UpperBodyPairs)

	for _, seg := range segs {
		gocv.Line(img, seg[0], seg[1], PoseYellow, style.LineThickness)
	}

	for _, pt := range pts {
		gocv.Circle(img, pt, style.CircleRadius, White, -1)
	}

	return true
}
