package render

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Font defines the parameters for rendering text on an image using GoCV
type Font struct {
	Face      gocv.HersheyFont
	Scale     float64
	Color     color.RGBA
	Thickness int
	LineType  gocv.LineType
}

// LabelFont is used for the mode and action label above the person box
func LabelFont() Font {
	return Font{
		Face:      gocv.FontHersheySimplex,
		Scale:     0.65,
		Color:     LabelGreen,
		Thickness: 2,
		LineType:  gocv.LineAA,
	}
}

// NotFoundFont is used for the banner shown when no person is found
func NotFoundFont() Font {
	return Font{
		Face:      gocv.FontHersheySimplex,
		Scale:     0.8,
		Color:     NotFoundOrange,
		Thickness: 2,
		LineType:  gocv.LineAA,
	}
}

// DebugFont is used for the box geometry debug line
func DebugFont() Font {
	return Font{
		Face:      gocv.FontHersheySimplex,
		Scale:     0.55,
		Color:     DebugCyan,
		Thickness: 1,
		LineType:  gocv.LineAA,
	}
}

// Text draws text with its baseline starting at pt
func (f Font) Text(img *gocv.Mat, text string, pt image.Point) {
	gocv.PutTextWithParams(img, text, pt, f.Face, f.Scale, f.Color,
		f.Thickness, f.LineType, false)
}
