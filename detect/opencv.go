package detect

import (
	"fmt"
	"image"

	"github.com/swdee/go-actiontrack/geometry"
	"gocv.io/x/gocv"
)

// CascadeParams are the detectMultiScale settings of a cascade classifier
type CascadeParams struct {
	ScaleFactor  float64
	MinNeighbors int
	MinSize      image.Point
}

// FaceCascadeParams returns the settings used for frontal face detection
func FaceCascadeParams() CascadeParams {
	return CascadeParams{
		ScaleFactor:  1.1,
		MinNeighbors: 4,
		MinSize:      image.Pt(36, 36),
	}
}

// UpperBodyCascadeParams returns the settings used for upper body detection
func UpperBodyCascadeParams() CascadeParams {
	return CascadeParams{
		ScaleFactor:  1.1,
		MinNeighbors: 4,
		MinSize:      image.Pt(80, 80),
	}
}

// CascadeDetector is a RegionDetector backed by an OpenCV Haar cascade
type CascadeDetector struct {
	classifier gocv.CascadeClassifier
	params     CascadeParams
	// gray is reused between frames for the grayscale conversion
	gray gocv.Mat
}

// NewCascadeDetector loads the cascade XML file at path
func NewCascadeDetector(path string, params CascadeParams) (*CascadeDetector, error) {

	classifier := gocv.NewCascadeClassifier()

	if !classifier.Load(path) {
		classifier.Close()
		return nil, fmt.Errorf("%w: %s", ErrCascadeLoad, path)
	}

	return &CascadeDetector{
		classifier: classifier,
		params:     params,
		gray:       gocv.NewMat(),
	}, nil
}

// Detect runs the cascade on the grayscale version of img
func (c *CascadeDetector) Detect(img gocv.Mat) []Candidate {

	src := img

	if img.Channels() > 1 {
		gocv.CvtColor(img, &c.gray, gocv.ColorBGRToGray)
		src = c.gray
	}

	rects := c.classifier.DetectMultiScaleWithParams(src, c.params.ScaleFactor,
		c.params.MinNeighbors, 0, c.params.MinSize, image.Point{})

	return rectsToCandidates(rects)
}

// Close frees the classifier
func (c *CascadeDetector) Close() error {
	c.gray.Close()
	return c.classifier.Close()
}

// HOGDetector is a RegionDetector using OpenCV's HOG descriptor with the
// default people SVM.  GoCV does not expose the SVM weights of each window so
// candidates have a confidence of 1
type HOGDetector struct {
	hog gocv.HOGDescriptor
}

// NewHOGDetector returns a HOG people detector
func NewHOGDetector() (*HOGDetector, error) {

	svm := gocv.HOGDefaultPeopleDetector()
	defer svm.Close()

	hog := gocv.NewHOGDescriptor()

	if err := hog.SetSVMDetector(svm); err != nil {
		hog.Close()
		return nil, fmt.Errorf("error setting HOG people detector: %w", err)
	}

	return &HOGDetector{hog: hog}, nil
}

// Detect runs the HOG people detector over img
func (h *HOGDetector) Detect(img gocv.Mat) []Candidate {

	rects := h.hog.DetectMultiScaleWithParams(img, 0, image.Pt(8, 8),
		image.Pt(8, 8), 1.05, 2.0, false)

	return rectsToCandidates(rects)
}

// Close frees the HOG descriptor
func (h *HOGDetector) Close() error {
	return h.hog.Close()
}

// rectsToCandidates converts gocv rectangles to unscored candidates
func rectsToCandidates(rects []image.Rectangle) []Candidate {

	if len(rects) == 0 {
		return nil
	}

	cands := make([]Candidate, 0, len(rects))

	for _, r := range rects {
		cands = append(cands, Candidate{
			Box:        geometry.BoxFromRect(r),
			Confidence: 1,
		})
	}

	return cands
}
