package geometry

import "math"

// SmoothBox is a float valued box used as the exponential moving average
// accumulator
type SmoothBox struct {
	X, Y, W, H float64
}

// ToSmooth converts an integer box to its float representation
func ToSmooth(b Box) SmoothBox {
	return SmoothBox{
		X: float64(b.X),
		Y: float64(b.Y),
		W: float64(b.W),
		H: float64(b.H),
	}
}

// Box truncates the smoothed values back into an integer Box.  The result
// may lie fractionally outside the frame so callers should Clip it
func (s SmoothBox) Box() Box {
	return Box{
		X: int(s.X),
		Y: int(s.Y),
		W: int(s.W),
		H: int(s.H),
	}
}

// EMA applies exponential moving average smoothing of the new box against the
// previous smoothed value, weighting the new box by alpha.  If there is no
// previous value the new box is returned unchanged.
//
// The blend alpha*new + (1-alpha)*prev is evaluated as prev + alpha*(new-prev)
// so a constant input reproduces itself exactly.
func EMA(prev *SmoothBox, next Box, alpha float64) SmoothBox {

	n := ToSmooth(next)

	if prev == nil {
		return n
	}

	return SmoothBox{
		X: blend(prev.X, n.X, alpha),
		Y: blend(prev.Y, n.Y, alpha),
		W: blend(prev.W, n.W, alpha),
		H: blend(prev.H, n.H, alpha),
	}
}

func blend(prev, next, alpha float64) float64 {
	return prev + alpha*(next-prev)
}

// ClampAlpha limits the smoothing weight to [0, 1].  NaN gives 1, which
// disables smoothing
func ClampAlpha(alpha float64) float64 {
	if math.IsNaN(alpha) {
		return 1
	}
	return max(0.0, min(1.0, alpha))
}

// Smoother keeps the EMA state of a box across frames
type Smoother struct {
	alpha float64
	state *SmoothBox
}

// NewSmoother returns a Smoother with the given alpha weight on the newest
// box.  Alpha is clamped to [0, 1]
func NewSmoother(alpha float64) *Smoother {
	return &Smoother{
		alpha: ClampAlpha(alpha),
	}
}

// Update feeds a new box into the smoother and returns the smoothed box
// clipped to the frame dimensions
func (s *Smoother) Update(b Box, width, height int) Box {
	next := EMA(s.state, b, s.alpha)
	s.state = &next
	return Clip(next.Box(), width, height)
}

// State returns the current smoothed value, or false if no box has been
// seen yet
func (s *Smoother) State() (SmoothBox, bool) {
	if s.state == nil {
		return SmoothBox{}, false
	}
	return *s.state, true
}

// Restore sets the smoother back to a previously captured state.  A nil
// state resets the smoother
func (s *Smoother) Restore(state *SmoothBox) {
	if state == nil {
		s.state = nil
		return
	}
	cp := *state
	s.state = &cp
}

// Alpha returns the clamped smoothing weight
func (s *Smoother) Alpha() float64 {
	return s.alpha
}
