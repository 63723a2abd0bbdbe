package detect

import (
	"errors"

	"github.com/swdee/go-actiontrack/geometry"
	"gocv.io/x/gocv"
)

// Strategy names reported as the detection mode
const (
	FaceUpper = "face_upper"
	UpperBody = "upper_body"
	FullBody  = "full_body"
)

var (
	// ErrCascadeLoad is returned when a cascade classifier file can not be loaded
	ErrCascadeLoad = errors.New("error loading cascade classifier")
	// ErrNetLoad is returned when a DNN model can not be loaded
	ErrNetLoad = errors.New("error loading DNN model")
)

// Candidate is a single raw detection returned by a RegionDetector
type Candidate struct {
	// Box is the bounding box of the detected region in frame coordinates
	Box geometry.Box
	// Confidence is the detector score.  Detectors that do not produce a
	// score report 1
	Confidence float64
}

// RegionDetector is the primitive object detector consumed by the
// detection strategies, such as a cascade classifier or HOG people detector
type RegionDetector interface {
	Detect(img gocv.Mat) []Candidate
}

// RegionDetectorFunc adapts a function to the RegionDetector interface
type RegionDetectorFunc func(img gocv.Mat) []Candidate

// Detect calls f(img)
func (f RegionDetectorFunc) Detect(img gocv.Mat) []Candidate {
	return f(img)
}

// Strategy is a single way of locating a person in a frame.  It returns the
// best box, the number of candidates that passed validation, and whether a
// box was found
type Strategy interface {
	Name() string
	Detect(frame gocv.Mat, minArea int) (geometry.Box, int, bool)
}

// Counts holds the number of valid candidates each strategy found in a frame,
// keyed by strategy name.  Strategies that did not run are absent
type Counts map[string]int

// Hit reports whether the named strategy found at least one valid candidate
func (c Counts) Hit(name string) bool {
	return c[name] > 0
}

// Result is the outcome of running the detector Bank on a frame
type Result struct {
	// Box is the selected bounding box, valid only when Found is true
	Box geometry.Box
	// Found indicates a strategy produced a box
	Found bool
	// Strategy is the name of the winning strategy
	Strategy string
	// Count is the number of valid candidates of the winning strategy
	Count int
	// Counts holds valid candidate counts of every strategy that ran
	Counts Counts
}
