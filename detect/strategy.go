package detect

import (
	"github.com/swdee/go-actiontrack/geometry"
	"gocv.io/x/gocv"
)

// Torso scaling applied to a face box to approximate the upper body
const (
	torsoWidthScale  = 3.0
	torsoHeightScale = 5.0
)

// FaceProxy detects faces and expands each face into an estimated torso box
type FaceProxy struct {
	faces RegionDetector
}

// NewFaceProxy returns a face-as-upper-body strategy using the given face
// detector
func NewFaceProxy(faces RegionDetector) *FaceProxy {
	return &FaceProxy{faces: faces}
}

// Name returns the strategy name
func (f *FaceProxy) Name() string {
	return FaceUpper
}

// Detect returns the largest torso box derived from the detected faces.  A
// torso is valid if its clipped area is at least a third of minArea
func (f *FaceProxy) Detect(frame gocv.Mat, minArea int) (geometry.Box, int, bool) {

	cands := f.faces.Detect(frame)

	if len(cands) == 0 {
		return geometry.Box{}, 0, false
	}

	width, height := frame.Cols(), frame.Rows()

	var best geometry.Box
	bestArea := 0
	valid := 0
	found := false

	for _, c := range cands {

		torso := geometry.Clip(TorsoFromFace(c.Box), width, height)
		area := torso.Area()

		if area < minArea/3 {
			continue
		}

		valid++

		if area > bestArea {
			bestArea = area
			best = torso
			found = true
		}
	}

	return best, valid, found
}

// TorsoFromFace derives an unclipped torso box from a face box.  The torso is
// three faces wide and five faces high, centred horizontally on the face and
// starting half a face height above it
func TorsoFromFace(face geometry.Box) geometry.Box {

	fx, fy := float64(face.X), float64(face.Y)
	fw, fh := float64(face.W), float64(face.H)

	tw := int(fw * torsoWidthScale)
	th := int(fh * torsoHeightScale)

	return geometry.Box{
		X: int(fx + fw*0.5 - float64(tw)*0.5),
		Y: int(fy - fh*0.5),
		W: tw,
		H: th,
	}
}

// UpperBodies uses an upper body detector directly
type UpperBodies struct {
	bodies RegionDetector
}

// NewUpperBody returns the upper body cascade strategy
func NewUpperBody(bodies RegionDetector) *UpperBodies {
	return &UpperBodies{bodies: bodies}
}

// Name returns the strategy name
func (c *UpperBodies) Name() string {
	return UpperBody
}

// Detect returns the largest upper body box with an area of at least a third
// of minArea
func (c *UpperBodies) Detect(frame gocv.Mat, minArea int) (geometry.Box, int, bool) {

	cands := c.bodies.Detect(frame)

	if len(cands) == 0 {
		return geometry.Box{}, 0, false
	}

	var best geometry.Box
	bestArea := 0
	valid := 0
	found := false

	for _, cand := range cands {

		area := cand.Box.Area()

		if area < minArea/3 {
			continue
		}

		valid++

		if area > bestArea {
			bestArea = area
			best = cand.Box
			found = true
		}
	}

	return best, valid, found
}

// People uses a full body people detector that scores its candidates
type People struct {
	people RegionDetector
}

// NewFullBody returns the full body strategy
func NewFullBody(people RegionDetector) *People {
	return &People{people: people}
}

// Name returns the strategy name
func (p *People) Name() string {
	return FullBody
}

// Detect returns the candidate with the highest confidence x area product
// among those with an area of at least minArea
func (p *People) Detect(frame gocv.Mat, minArea int) (geometry.Box, int, bool) {

	cands := p.people.Detect(frame)

	if len(cands) == 0 {
		return geometry.Box{}, 0, false
	}

	var best geometry.Box
	bestScore := -1.0
	valid := 0
	found := false

	for _, cand := range cands {

		area := cand.Box.Area()

		if area < minArea {
			continue
		}

		valid++

		score := cand.Confidence * float64(area)

		if score > bestScore {
			bestScore = score
			best = cand.Box
			found = true
		}
	}

	return best, valid, found
}
