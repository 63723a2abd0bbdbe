// Package action classifies a tracked person's gross motion state from a
// short window of centre positions and body-half motion scores.
package action

import (
	"image"

	"github.com/swdee/go-actiontrack/geometry"
	"github.com/swdee/go-actiontrack/history"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Decision thresholds.  These are calibrated against the demo footage and
// must not be tuned.
const (
	standingMotion    = 6.0
	standingCenter    = 4.0
	walkingCenter     = 10.0
	walkingLower      = 11.0
	upperActiveMotion = 14.0
	upperActiveCenter = 8.0
)

// Metrics are the window statistics the rules are evaluated on
type Metrics struct {
	// CenterMove is the mean distance between consecutive centres in pixels
	CenterMove float64
	// Upper is the mean upper half motion score
	Upper float64
	// Lower is the mean lower half motion score
	Lower float64
	// Samples is the number of centres in the window
	Samples int
}

// History holds the bounded per-frame samples used for classification
type History struct {
	Centers *history.Ring[image.Point]
	Upper   *history.Ring[float64]
	Lower   *history.Ring[float64]
}

// NewHistory returns a History where each buffer keeps size entries
func NewHistory(size int) *History {
	return &History{
		Centers: history.NewRing[image.Point](size),
		Upper:   history.NewRing[float64](size),
		Lower:   history.NewRing[float64](size),
	}
}

// Clone returns an independent copy of the history
func (h *History) Clone() *History {
	return &History{
		Centers: h.Centers.Clone(),
		Upper:   h.Upper.Clone(),
		Lower:   h.Lower.Clone(),
	}
}

// Classifier keeps the motion history and derives an action Label from it
type Classifier struct {
	hist *History
}

// NewClassifier returns a Classifier with a history window of size frames
func NewClassifier(size int) *Classifier {
	return &Classifier{
		hist: NewHistory(size),
	}
}

// History returns the underlying sample history
func (c *Classifier) History() *History {
	return c.hist
}

// Snapshot returns a copy of the history which can be given to Restore
func (c *Classifier) Snapshot() *History {
	return c.hist.Clone()
}

// Restore replaces the history with a previously taken Snapshot
func (c *Classifier) Restore(h *History) {
	c.hist = h
}

// AddCenter records the centre point of the current box
func (c *Classifier) AddCenter(p image.Point) {
	c.hist.Centers.Push(p)
}

// AddScores records the upper and lower half motion scores of the current box
func (c *Classifier) AddScores(upper, lower float64) {
	c.hist.Upper.Push(upper)
	c.hist.Lower.Push(lower)
}

// Metrics computes the window statistics from the current history
func (c *Classifier) Metrics() Metrics {

	m := Metrics{
		Samples: c.hist.Centers.Len(),
	}

	if m.Samples >= 2 {
		dists := make([]float64, 0, m.Samples-1)

		for i := 1; i < m.Samples; i++ {
			dists = append(dists, geometry.Distance(c.hist.Centers.At(i-1), c.hist.Centers.At(i)))
		}

		m.CenterMove = floats.Sum(dists) / float64(m.Samples-1)
	}

	m.Upper = mean(c.hist.Upper)
	m.Lower = mean(c.hist.Lower)

	return m
}

// Classify returns the action label for the current history
func (c *Classifier) Classify() Label {
	return ClassifyMetrics(c.Metrics())
}

// ClassifyMetrics applies the decision rules in order, first match wins
func ClassifyMetrics(m Metrics) Label {

	if m.Samples < 2 {
		return Detecting
	}

	if m.Upper < standingMotion && m.Lower < standingMotion && m.CenterMove < standingCenter {
		return Standing
	}

	if m.CenterMove > walkingCenter || m.Lower > walkingLower {
		return WalkingOrRunning
	}

	if m.Upper > upperActiveMotion && m.CenterMove < upperActiveCenter {
		return UpperBodyActive
	}

	return Moving
}

// mean of the ring values, 0 when empty
func mean(r *history.Ring[float64]) float64 {
	if r.Len() == 0 {
		return 0
	}
	return stat.Mean(r.Values(), nil)
}
