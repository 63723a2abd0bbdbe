package render

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// TrailStyle defines the parameters used for rendering the centre trail
type TrailStyle struct {
	LineColor     color.RGBA
	LineThickness int
	// CircleSame defines if the color of the current centre circle should be
	// the color of the box source mode.  If set to false then use the color
	// specified at CircleColor
	CircleSame   bool
	CircleColor  color.RGBA
	CircleRadius int
}

// DefaultTrailStyle returns default trail style settings
func DefaultTrailStyle() TrailStyle {
	return TrailStyle{
		LineColor:     Yellow,
		LineThickness: 1,
		CircleSame:    true,
		CircleColor:   Pink,
		CircleRadius:  3,
	}
}

// Trail draws the recent box centres, oldest first, as a connected line with a
// circle on the most recent centre
func Trail(img *gocv.Mat, points []image.Point, mode string, style TrailStyle) {

	if len(points) < 2 {
		return
	}

	circleClr := style.CircleColor

	if style.CircleSame {
		circleClr = ModeColor(mode)
	}

	for i := 1; i < len(points); i++ {
		gocv.Line(img, points[i-1], points[i], style.LineColor,
			style.LineThickness)
	}

	gocv.Circle(img, points[len(points)-1], style.CircleRadius, circleClr, -1)
}
