package render

import (
	"image/color"

	"github.com/swdee/go-actiontrack/detect"
	"github.com/swdee/go-actiontrack/tracker"
)

var (
	Black  = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow = color.RGBA{R: 255, G: 255, B: 50, A: 255}
	Pink   = color.RGBA{R: 255, G: 0, B: 255, A: 255}

	// BoxGreen is the color of the person bounding box
	BoxGreen = color.RGBA{R: 32, G: 220, B: 32, A: 255}
	// LimbOrange is the color of the framework skeleton lines
	LimbOrange = color.RGBA{R: 255, G: 170, B: 64, A: 255}
	// LabelGreen is the color of the mode and action label
	LabelGreen = color.RGBA{R: 20, G: 250, B: 20, A: 255}
	// NotFoundOrange is the color of the banner shown when nobody is found
	NotFoundOrange = color.RGBA{R: 255, G: 120, B: 0, A: 255}
	// DebugCyan is the color of the debug text line
	DebugCyan = color.RGBA{R: 0, G: 210, B: 255, A: 255}
	// PoseYellow is the color of the pose landmark skeleton lines
	PoseYellow = color.RGBA{R: 255, G: 220, B: 0, A: 255}

	// modeColors are the trail colors used for each box source, so drift
	// corrections show up as a color change along the trail
	modeColors = map[string]color.RGBA{
		tracker.ModeTracker: {R: 0, G: 194, B: 255, A: 255}, // #00C2FF
		detect.FaceUpper:    {R: 255, G: 178, B: 29, A: 255}, // #FFB21D
		detect.UpperBody:    {R: 255, G: 112, B: 31, A: 255}, // #FF701F
		detect.FullBody:     {R: 72, G: 249, B: 10, A: 255},  // #48F90A
	}
)

// ModeColor returns the color for a box source mode, falling back to Yellow
func ModeColor(mode string) color.RGBA {
	if clr, ok := modeColors[mode]; ok {
		return clr
	}
	return Yellow
}
