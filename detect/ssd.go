package detect

import (
	"fmt"
	"image"

	"github.com/swdee/go-actiontrack/geometry"
	"gocv.io/x/gocv"
)

// SSDParams configures a MobileNet SSD style person detector
type SSDParams struct {
	// PersonClass is the class index of "person" in the model's label set
	PersonClass int
	// Threshold is the minimum confidence for a detection to be kept
	Threshold float64
	// InputSize is the network input resolution
	InputSize image.Point
	// Scale and Mean are applied by BlobFromImage
	Scale float64
	Mean  gocv.Scalar
	// SwapRB converts BGR frames to RGB for the network
	SwapRB bool
}

// DefaultSSDParams returns the settings for the Caffe MobileNet SSD trained on
// the VOC classes, where person is class 15
func DefaultSSDParams() SSDParams {
	return SSDParams{
		PersonClass: 15,
		Threshold:   0.5,
		InputSize:   image.Pt(300, 300),
		Scale:       1.0 / 127.5,
		Mean:        gocv.NewScalar(127.5, 127.5, 127.5, 0),
		SwapRB:      false,
	}
}

// SSDDetector is a RegionDetector running a single shot detector through the
// OpenCV DNN module.  Unlike HOG it reports a real confidence per candidate
type SSDDetector struct {
	net    gocv.Net
	params SSDParams
}

// NewSSDDetector loads the model and its config file, eg: a .caffemodel and
// .prototxt pair
func NewSSDDetector(model, config string, params SSDParams) (*SSDDetector, error) {

	net := gocv.ReadNet(model, config)

	if net.Empty() {
		net.Close()
		return nil, fmt.Errorf("%w: %s", ErrNetLoad, model)
	}

	return &SSDDetector{
		net:    net,
		params: params,
	}, nil
}

// Detect runs a forward pass on img and returns the person detections
func (s *SSDDetector) Detect(img gocv.Mat) []Candidate {

	blob := gocv.BlobFromImage(img, s.params.Scale, s.params.InputSize,
		s.params.Mean, s.params.SwapRB, false)
	defer blob.Close()

	s.net.SetInput(blob, "")

	prob := s.net.Forward("")
	defer prob.Close()

	// output is 1x1xNx7, view it as N rows of
	// [image, class, confidence, left, top, right, bottom]
	rows := prob.Reshape(1, prob.Total()/7)
	defer rows.Close()

	return ssdCandidates(rows, img.Cols(), img.Rows(), s.params)
}

// Close frees the network
func (s *SSDDetector) Close() error {
	return s.net.Close()
}

// ssdCandidates decodes the reshaped SSD output rows into candidates scaled
// to a width x height frame
func ssdCandidates(rows gocv.Mat, width, height int, params SSDParams) []Candidate {

	var cands []Candidate

	for i := 0; i < rows.Rows(); i++ {

		if int(rows.GetFloatAt(i, 1)) != params.PersonClass {
			continue
		}

		conf := float64(rows.GetFloatAt(i, 2))

		if conf < params.Threshold {
			continue
		}

		left := int(float64(rows.GetFloatAt(i, 3)) * float64(width))
		top := int(float64(rows.GetFloatAt(i, 4)) * float64(height))
		right := int(float64(rows.GetFloatAt(i, 5)) * float64(width))
		bottom := int(float64(rows.GetFloatAt(i, 6)) * float64(height))

		box := geometry.Box{X: left, Y: top, W: right - left, H: bottom - top}

		if box.Empty() {
			continue
		}

		cands = append(cands, Candidate{
			Box:        geometry.Clip(box, width, height),
			Confidence: conf,
		})
	}

	return cands
}
