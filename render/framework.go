package render

import (
	"image"

	"github.com/swdee/go-actiontrack/detect"
	"github.com/swdee/go-actiontrack/geometry"
	"gocv.io/x/gocv"
)

// joint is a skeleton point placed at a fraction of the box width and height.
// A negative fx centres the joint horizontally using integer division
type joint struct {
	fx, fy float64
	// dot draws a circle on the joint
	dot bool
}

// Framework is a stick figure drawn proportionally inside a bounding box
type Framework struct {
	joints []joint
	// limbs are pairs of indexes into joints
	limbs [][2]int
}

const centred = -1

// BodyFramework is the full body stick figure, head to feet
var BodyFramework = Framework{
	joints: []joint{
		{centred, 0.12, true},  // 0 head
		{centred, 0.22, true},  // 1 neck
		{0.30, 0.27, true},     // 2 left shoulder
		{0.70, 0.27, true},     // 3 right shoulder
		{centred, 0.36, false}, // 4 chest
		{centred, 0.58, true},  // 5 pelvis
		{0.20, 0.42, false},    // 6 left elbow
		{0.80, 0.42, false},    // 7 right elbow
		{0.16, 0.56, true},     // 8 left hand
		{0.84, 0.56, true},     // 9 right hand
		{0.40, 0.77, false},    // 10 left knee
		{0.60, 0.77, false},    // 11 right knee
		{0.38, 0.96, true},     // 12 left foot
		{0.62, 0.96, true},     // 13 right foot
	},
	limbs: [][2]int{
		{0, 1}, {1, 2}, {1, 3}, {2, 6}, {6, 8}, {3, 7}, {7, 9},
		{1, 4}, {4, 5}, {5, 10}, {10, 12}, {5, 11}, {11, 13},
	},
}

// UpperBodyFramework is the head, shoulders and arms stick figure used when
// the box only covers the upper body
var UpperBodyFramework = Framework{
	joints: []joint{
		{centred, 0.12, true},  // 0 head
		{centred, 0.28, true},  // 1 neck
		{0.25, 0.35, true},     // 2 left shoulder
		{0.75, 0.35, true},     // 3 right shoulder
		{centred, 0.48, false}, // 4 chest
		{0.16, 0.55, false},    // 5 left elbow
		{0.84, 0.55, false},    // 6 right elbow
		{0.14, 0.75, true},     // 7 left hand
		{0.86, 0.75, true},     // 8 right hand
	},
	limbs: [][2]int{
		{0, 1}, {1, 2}, {1, 3}, {2, 5}, {5, 7}, {3, 6}, {6, 8}, {1, 4},
	},
}

// FrameworkFor returns the stick figure suited to the box source mode
func FrameworkFor(mode string) Framework {
	if mode == detect.FaceUpper || mode == detect.UpperBody {
		return UpperBodyFramework
	}
	return BodyFramework
}

// Points returns the joint positions of the framework within box
func (f Framework) Points(box geometry.Box) []image.Point {

	pts := make([]image.Point, len(f.joints))

	for i, j := range f.joints {

		x := box.X + box.W/2

		if j.fx != centred {
			x = box.X + int(j.fx*float64(box.W))
		}

		pts[i] = image.Pt(x, box.Y+int(j.fy*float64(box.H)))
	}

	return pts
}

// Draw renders the bounding box and the stick figure onto img
func (f Framework) Draw(img *gocv.Mat, box geometry.Box, lineThickness int) {

	gocv.Rectangle(img, box.Rect(), BoxGreen, lineThickness)

	pts := f.Points(box)

	for _, limb := range f.limbs {
		gocv.Line(img, pts[limb[0]], pts[limb[1]], LimbOrange, lineThickness)
	}

	for i, j := range f.joints {
		if j.dot {
			gocv.Circle(img, pts[i], 3, White, -1)
		}
	}
}
