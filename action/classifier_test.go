package action

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyMetricsScenarios(t *testing.T) {

	tests := []struct {
		name string
		m    Metrics
		want Label
	}{
		{"single sample", Metrics{Samples: 1}, Detecting},
		{"no samples", Metrics{}, Detecting},
		{"standing", Metrics{CenterMove: 2, Upper: 3, Lower: 2, Samples: 5}, Standing},
		{"fast centre", Metrics{CenterMove: 12, Upper: 0, Lower: 0, Samples: 5}, WalkingOrRunning},
		{"fast centre busy upper", Metrics{CenterMove: 12, Upper: 30, Lower: 1, Samples: 5}, WalkingOrRunning},
		{"busy legs", Metrics{CenterMove: 5, Upper: 2, Lower: 11.5, Samples: 5}, WalkingOrRunning},
		{"upper active", Metrics{CenterMove: 5, Upper: 15, Lower: 5, Samples: 5}, UpperBodyActive},
		{"moving default", Metrics{CenterMove: 6, Upper: 8, Lower: 5, Samples: 5}, Moving},
		{"standing boundary is strict", Metrics{CenterMove: 4, Upper: 1, Lower: 1, Samples: 5}, Moving},
		{"walking boundary is strict", Metrics{CenterMove: 10, Upper: 1, Lower: 11, Samples: 5}, Moving},
		{"upper active needs slow centre", Metrics{CenterMove: 8, Upper: 20, Lower: 1, Samples: 5}, Moving},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, ClassifyMetrics(tc.m), tc.name)
	}
}

func TestClassifierOneCenterIsDetecting(t *testing.T) {

	c := NewClassifier(10)
	c.AddCenter(image.Pt(100, 100))

	assert.Equal(t, Detecting, c.Classify())
}

func TestClassifierMetricsFromHistory(t *testing.T) {

	c := NewClassifier(10)

	// consecutive distances 2, 2 and 2
	for _, x := range []int{0, 2, 4, 6} {
		c.AddCenter(image.Pt(x, 50))
	}

	c.AddScores(2, 1)
	c.AddScores(4, 3)

	m := c.Metrics()

	assert.InDelta(t, 2.0, m.CenterMove, 1e-9)
	assert.InDelta(t, 3.0, m.Upper, 1e-9)
	assert.InDelta(t, 2.0, m.Lower, 1e-9)
	assert.Equal(t, 4, m.Samples)
	assert.Equal(t, Standing, c.Classify())
}

func TestClassifierEmptyScoresAreZero(t *testing.T) {

	c := NewClassifier(5)
	c.AddCenter(image.Pt(0, 0))
	c.AddCenter(image.Pt(30, 40))

	m := c.Metrics()

	assert.Zero(t, m.Upper)
	assert.Zero(t, m.Lower)
	assert.InDelta(t, 50.0, m.CenterMove, 1e-9)
	assert.Equal(t, WalkingOrRunning, c.Classify())
}

func TestClassifierWindowEviction(t *testing.T) {

	c := NewClassifier(3)

	// a large jump that later ages out of the window
	c.AddCenter(image.Pt(0, 0))
	c.AddCenter(image.Pt(100, 0))

	for i := 0; i < 3; i++ {
		c.AddCenter(image.Pt(100, 0))
		c.AddScores(1, 1)
	}

	require.Equal(t, 3, c.History().Centers.Len())
	assert.Equal(t, Standing, c.Classify())
}

// TestClassifierDeterministic checks identical histories yield identical labels
func TestClassifierDeterministic(t *testing.T) {

	build := func() *Classifier {
		c := NewClassifier(8)
		for i := 0; i < 8; i++ {
			c.AddCenter(image.Pt(i*7, i*3))
			c.AddScores(float64(i)*2.5, float64(8-i))
		}
		return c
	}

	a, b := build(), build()

	assert.Equal(t, a.Metrics(), b.Metrics())
	assert.Equal(t, a.Classify(), b.Classify())
}

func TestClassifierSnapshotRestore(t *testing.T) {

	c := NewClassifier(4)
	c.AddCenter(image.Pt(1, 1))

	snap := c.Snapshot()
	c.AddCenter(image.Pt(50, 50))
	c.Restore(snap)

	assert.Equal(t, []image.Point{image.Pt(1, 1)}, c.History().Centers.Values())
}

func TestLabelNames(t *testing.T) {

	for _, l := range []Label{Detecting, Standing, WalkingOrRunning, UpperBodyActive, Moving, NotFound} {
		parsed, ok := ParseLabel(l.String())
		require.True(t, ok, l.String())
		assert.Equal(t, l, parsed)
	}

	assert.Equal(t, "walking_or_running", WalkingOrRunning.String())
	assert.Equal(t, "unknown", Label(99).String())
}
