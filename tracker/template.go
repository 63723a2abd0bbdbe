package tracker

import (
	"image"

	"github.com/swdee/go-actiontrack/geometry"
	"gocv.io/x/gocv"
)

// TemplateParams configures the TemplateTracker
type TemplateParams struct {
	// SearchScale is the size of the search window relative to the box
	SearchScale float64
	// MinScore is the lowest normalised correlation accepted as a match
	MinScore float32
	// StdWeightPosition and StdWeightVelocity are the Kalman filter noise
	// weights, relative to the box height
	StdWeightPosition float64
	StdWeightVelocity float64
}

// DefaultTemplateParams returns default TemplateTracker settings
func DefaultTemplateParams() TemplateParams {
	return TemplateParams{
		SearchScale:       2.0,
		MinScore:          0.5,
		StdWeightPosition: 1.0 / 20,
		StdWeightVelocity: 1.0 / 160,
	}
}

// TemplateTracker follows a region by normalised cross correlation template
// matching in a window around the Kalman predicted position.  It only
// depends on the core gocv modules
type TemplateTracker struct {
	params   TemplateParams
	kf       *KalmanFilter
	state    *KalmanState
	template gocv.Mat
	gray     gocv.Mat
	result   gocv.Mat
	mask     gocv.Mat
}

// NewTemplateTracker returns an uninitialised TemplateTracker
func NewTemplateTracker(params TemplateParams) *TemplateTracker {
	return &TemplateTracker{
		params:   params,
		kf:       NewKalmanFilter(params.StdWeightPosition, params.StdWeightVelocity),
		template: gocv.NewMat(),
		gray:     gocv.NewMat(),
		result:   gocv.NewMat(),
		mask:     gocv.NewMat(),
	}
}

// toGray converts frame into the reused grayscale buffer
func (t *TemplateTracker) toGray(frame gocv.Mat) gocv.Mat {

	if frame.Channels() == 1 {
		return frame
	}

	gocv.CvtColor(frame, &t.gray, gocv.ColorBGRToGray)
	return t.gray
}

// Init captures the template of the region
func (t *TemplateTracker) Init(frame gocv.Mat, region image.Rectangle) bool {

	if frame.Empty() {
		return false
	}

	region = region.Intersect(image.Rect(0, 0, frame.Cols(), frame.Rows()))

	if region.Empty() {
		return false
	}

	gray := t.toGray(frame)

	roi := gray.Region(region)
	defer roi.Close()

	t.template.Close()
	t.template = roi.Clone()
	t.state = t.kf.Initiate(geometry.BoxFromRect(region))

	return true
}

// Update searches for the template near the predicted position
func (t *TemplateTracker) Update(frame gocv.Mat) (image.Rectangle, bool) {

	if t.state == nil || t.template.Empty() || frame.Empty() {
		return image.Rectangle{}, false
	}

	t.kf.Predict(t.state)

	tw, th := t.template.Cols(), t.template.Rows()
	predicted := t.state.Box()

	// search window centred on the prediction
	cx := predicted.X + predicted.W/2
	cy := predicted.Y + predicted.H/2
	sw := int(float64(tw) * t.params.SearchScale)
	sh := int(float64(th) * t.params.SearchScale)

	window := image.Rect(cx-sw/2, cy-sh/2, cx-sw/2+sw, cy-sh/2+sh).
		Intersect(image.Rect(0, 0, frame.Cols(), frame.Rows()))

	if window.Dx() < tw || window.Dy() < th {
		return image.Rectangle{}, false
	}

	gray := t.toGray(frame)

	search := gray.Region(window)
	defer search.Close()

	gocv.MatchTemplate(search, t.template, &t.result, gocv.TmCcoeffNormed, t.mask)

	_, score, _, loc := gocv.MinMaxLoc(t.result)

	if score < t.params.MinScore {
		return image.Rectangle{}, false
	}

	matched := geometry.NewBox(window.Min.X+loc.X, window.Min.Y+loc.Y, tw, th)

	if err := t.kf.Update(t.state, matched); err != nil {
		return matched.Rect(), true
	}

	return t.state.Box().Rect(), true
}

// Close frees the Mats held by the tracker
func (t *TemplateTracker) Close() error {
	t.template.Close()
	t.gray.Close()
	t.result.Close()
	t.mask.Close()
	return nil
}
