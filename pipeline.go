package actiontrack

import (
	"errors"
	"fmt"
	"image"

	"github.com/swdee/go-actiontrack/action"
	"github.com/swdee/go-actiontrack/detect"
	"github.com/swdee/go-actiontrack/geometry"
	"github.com/swdee/go-actiontrack/internal/monitoring"
	"github.com/swdee/go-actiontrack/motion"
	"github.com/swdee/go-actiontrack/tracker"
	"gocv.io/x/gocv"
)

var (
	// ErrFrameSize is returned when a frame's dimensions differ from the
	// first frame processed or the gray frame does not match the colour frame
	ErrFrameSize = errors.New("frame size mismatch")
	// ErrFrameFault is returned when processing of a frame failed unexpectedly.
	// The frame is dropped and pipeline state is left as before the frame
	ErrFrameFault = errors.New("frame processing fault")
	// ErrEmptyFrame is returned when an empty Mat is passed to Process
	ErrEmptyFrame = errors.New("empty frame")
)

// Result is the outcome of processing a single frame
type Result struct {
	// Box is the stabilised box, nil when no person was found
	Box *geometry.Box
	// Mode is where the box came from, "none", "tracker" or a detection
	// strategy name
	Mode string
	// Action is the classified action for the frame
	Action action.Label
	// FrameIndex counts frames from 1
	FrameIndex int
	// Counts are the valid candidate counts of the strategies that ran
	Counts detect.Counts
	// Tracking is true while a tracker holds the target
	Tracking bool
	// Metrics are the window statistics used for the decision
	Metrics action.Metrics
	// Delta is the distance in pixels the box centre moved since the
	// previous frame, 0 without a previous centre
	Delta float64
}

// pipelineState is the cross frame state owned by the Pipeline
type pipelineState struct {
	frameIndex int
	// prevGray is a copy of the previous frame's gray image
	prevGray gocv.Mat
	hasPrev  bool
	// prevCenter is the previous frame's box centre, nil when that frame had
	// no box
	prevCenter *image.Point
	// width and height of the first frame, zero until one is processed
	width, height int
}

// Pipeline sequences detection, tracking, smoothing, motion scoring and
// classification for each frame.  A Pipeline is not safe for concurrent use
type Pipeline struct {
	cfg        Config
	manager    *tracker.Manager
	smoother   *geometry.Smoother
	classifier *action.Classifier
	state      pipelineState
}

// New returns a Pipeline using the given detector bank and tracker factory.
// A nil factory disables tracking so the bank runs every frame
func New(cfg Config, bank *detect.Bank, factory tracker.Factory) (*Pipeline, error) {

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if bank == nil {
		return nil, fmt.Errorf("%w: detector bank is required", ErrInvalidConfig)
	}

	bank.SetFullBodyOnly(cfg.FullBody)

	if cfg.Debug {
		monitoring.SetDebug(true)
	}

	p := &Pipeline{
		cfg:        cfg,
		manager:    tracker.NewManager(bank, factory, cfg.MinArea, cfg.DetectInterval),
		smoother:   geometry.NewSmoother(cfg.SmoothAlpha),
		classifier: action.NewClassifier(cfg.History),
		state: pipelineState{
			prevGray: gocv.NewMat(),
		},
	}

	monitoring.Debugf("pipeline strategies=%v full_body=%t min_area=%d history=%d alpha=%.2f interval=%d",
		bank.Strategies(), bank.FullBodyOnly(), cfg.MinArea, cfg.History,
		p.smoother.Alpha(), cfg.DetectInterval)

	return p, nil
}

// Config returns the pipeline configuration
func (p *Pipeline) Config() Config {
	return p.cfg
}

// FrameIndex returns the index of the last processed frame
func (p *Pipeline) FrameIndex() int {
	return p.state.frameIndex
}

// Centers returns the box centres in the classification window, oldest
// first
func (p *Pipeline) Centers() []image.Point {
	return p.classifier.History().Centers.Values()
}

// TrackerState returns the lifecycle state of the tracker
func (p *Pipeline) TrackerState() tracker.State {
	return p.manager.State()
}

// Process runs the pipeline on a colour frame and its grayscale version.
// Both must have the same size as every previous frame
func (p *Pipeline) Process(frame, gray gocv.Mat) (res Result, err error) {

	if frame.Empty() || gray.Empty() {
		return Result{}, ErrEmptyFrame
	}

	width, height := frame.Cols(), frame.Rows()

	if gray.Cols() != width || gray.Rows() != height {
		return Result{}, fmt.Errorf("%w: gray %dx%d, frame %dx%d", ErrFrameSize,
			gray.Cols(), gray.Rows(), width, height)
	}

	if p.state.width == 0 {
		p.state.width, p.state.height = width, height
	} else if width != p.state.width || height != p.state.height {
		return Result{}, fmt.Errorf("%w: got %dx%d, expected %dx%d", ErrFrameSize,
			width, height, p.state.width, p.state.height)
	}

	p.state.frameIndex++
	index := p.state.frameIndex

	// committed state restored if the frame faults
	history := p.classifier.Snapshot()
	smooth, hasSmooth := p.smoother.State()
	prevCenter := p.state.prevCenter

	defer func() {
		if r := recover(); r != nil {
			p.classifier.Restore(history)

			if hasSmooth {
				p.smoother.Restore(&smooth)
			} else {
				p.smoother.Restore(nil)
			}

			p.state.prevCenter = prevCenter

			monitoring.Logf("frame %d dropped: %v", index, r)
			res = Result{}
			err = fmt.Errorf("%w: frame %d: %v", ErrFrameFault, index, r)
		}
	}()

	res = p.process(frame, gray, index)

	// only replace the previous frame once the frame completed
	p.state.prevGray.Close()
	p.state.prevGray = gray.Clone()
	p.state.hasPrev = true

	return res, nil
}

// process runs the per frame steps and updates committed state
func (p *Pipeline) process(frame, gray gocv.Mat, index int) Result {

	width, height := frame.Cols(), frame.Rows()

	step := p.manager.Step(frame, index)

	res := Result{
		Mode:       step.Mode,
		FrameIndex: index,
		Counts:     step.Counts,
		Tracking:   p.manager.State() == tracker.Tracking,
	}

	if res.Counts == nil {
		res.Counts = detect.Counts{}
	}

	if !step.Found {
		res.Mode = tracker.ModeNone
		res.Action = action.NotFound
		p.state.prevCenter = nil
		return res
	}

	box := geometry.Clip(step.Box, width, height)
	box = p.smoother.Update(box, width, height)
	center := box.Center()

	p.classifier.AddCenter(center)

	if p.state.hasPrev {
		upper, lower := motion.ScoreHalves(gray, p.state.prevGray, box)
		p.classifier.AddScores(upper, lower)
	}

	res.Box = &box
	res.Metrics = p.classifier.Metrics()
	res.Action = action.ClassifyMetrics(res.Metrics)

	if p.state.prevCenter != nil {
		res.Delta = geometry.Distance(*p.state.prevCenter, center)
	}

	p.state.prevCenter = &center

	monitoring.Debugf("frame=%d mode=%s action=%s box=(%d,%d,%d,%d) move=%.1f upper=%.1f lower=%.1f",
		index, res.Mode, res.Action, box.X, box.Y, box.W, box.H,
		res.Metrics.CenterMove, res.Metrics.Upper, res.Metrics.Lower)

	return res
}

// Close releases the previous frame and the active tracker
func (p *Pipeline) Close() error {
	p.state.prevGray.Close()
	p.state.hasPrev = false
	return p.manager.Close()
}
