package tracker

import (
	"github.com/swdee/go-actiontrack/detect"
	"github.com/swdee/go-actiontrack/geometry"
	"github.com/swdee/go-actiontrack/internal/monitoring"
	"gocv.io/x/gocv"
)

// ModeTracker is the mode reported when the box came from the tracker
const ModeTracker = "tracker"

// ModeNone is the mode reported when no box is available
const ModeNone = "none"

// State is the lifecycle state of the Manager
type State int

const (
	// NoTarget means there is no active tracker and the bank runs every frame
	NoTarget State = iota
	// Tracking means the active tracker holds a box
	Tracking
)

// String returns the state name
func (s State) String() string {
	if s == Tracking {
		return "tracking"
	}
	return "no_target"
}

// Detector is the detection source consulted by the Manager, satisfied by
// *detect.Bank
type Detector interface {
	Detect(frame gocv.Mat, minArea int) detect.Result
}

// Step is the outcome of one frame of the lifecycle
type Step struct {
	// Box is the raw box for the frame, valid only when Found is true
	Box   geometry.Box
	Found bool
	// Mode is ModeTracker, ModeNone or the name of the detection strategy
	Mode string
	// Detected indicates the bank ran this frame
	Detected bool
	// Counts are the bank's valid candidate counts, nil if it did not run
	Counts detect.Counts
	// Drift is the IoU between the tracker prediction and a fresh detection
	// on a drift correction frame, -1 when not applicable
	Drift float64
}

// Manager owns the single active tracker and decides each frame whether to
// trust it, run the detector bank, or reinitialise it
type Manager struct {
	detector Detector
	factory  Factory
	minArea  int
	interval int

	state    State
	active   Tracker
	disabled bool
	// sinceDetect counts frames since the bank last produced a box
	sinceDetect int
}

// NewManager returns a Manager in the NoTarget state.  Every interval frames
// the bank is re-run even while tracking, an interval of 0 disables this.  A
// nil factory disables tracking
func NewManager(detector Detector, factory Factory, minArea, interval int) *Manager {
	return &Manager{
		detector: detector,
		factory:  factory,
		minArea:  minArea,
		interval: interval,
		state:    NoTarget,
		disabled: factory == nil,
	}
}

// State returns the current lifecycle state
func (m *Manager) State() State {
	return m.state
}

// Disabled reports whether tracking has been permanently disabled
func (m *Manager) Disabled() bool {
	return m.disabled
}

// SinceDetect returns the number of frames since the bank last found a box
func (m *Manager) SinceDetect() int {
	return m.sinceDetect
}

// Step runs the lifecycle for one frame.  frameIndex counts from 1 and
// drives the periodic re-detection
func (m *Manager) Step(frame gocv.Mat, frameIndex int) Step {

	step := Step{Mode: ModeNone, Drift: -1}
	width, height := frame.Cols(), frame.Rows()

	if m.state == Tracking {

		rect, ok := m.active.Update(frame)

		if ok {
			step.Box = geometry.Clip(geometry.BoxFromRect(rect), width, height)
			step.Found = true
			step.Mode = ModeTracker
		} else {
			monitoring.Debugf("tracker lost target at frame %d", frameIndex)
			m.drop()
		}
	}

	periodic := m.interval > 0 && frameIndex%m.interval == 0
	fresh := false

	if !step.Found || periodic {

		res := m.detector.Detect(frame, m.minArea)
		step.Detected = true
		step.Counts = res.Counts

		if res.Found {

			if step.Found {
				step.Drift = geometry.IoU(step.Box, res.Box)
				monitoring.Debugf("drift correction at frame %d, iou=%.3f", frameIndex, step.Drift)
			}

			step.Box = res.Box
			step.Found = true
			step.Mode = res.Strategy
			fresh = true

			m.start(frame, res.Box)
		}
	}

	if fresh {
		m.sinceDetect = 0
	} else {
		m.sinceDetect++
	}

	return step
}

// start replaces the active tracker with a new one initialised on box.  A
// construction or initialisation failure disables tracking for good
func (m *Manager) start(frame gocv.Mat, box geometry.Box) {

	m.drop()

	if m.disabled {
		return
	}

	t, err := m.factory()

	if err != nil || t == nil {
		monitoring.Logf("tracker unavailable, tracking disabled: %v", err)
		m.disabled = true
		return
	}

	if !t.Init(frame, box.Rect()) {
		monitoring.Logf("tracker initialisation failed, tracking disabled")
		t.Close()
		m.disabled = true
		return
	}

	m.active = t
	m.state = Tracking
}

// drop closes the active tracker and returns to NoTarget
func (m *Manager) drop() {

	if m.active != nil {
		m.active.Close()
		m.active = nil
	}

	m.state = NoTarget
}

// Close frees the active tracker
func (m *Manager) Close() error {
	m.drop()
	return nil
}
