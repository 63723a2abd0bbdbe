package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swdee/go-actiontrack/geometry"
	"gocv.io/x/gocv"
)

// fixed returns a RegionDetector that always reports the given candidates
// and counts how often it was called
func fixed(calls *int, cands ...Candidate) RegionDetector {
	return RegionDetectorFunc(func(img gocv.Mat) []Candidate {
		*calls++
		return cands
	})
}

func cand(x, y, w, h int, conf float64) Candidate {
	return Candidate{Box: geometry.NewBox(x, y, w, h), Confidence: conf}
}

func testFrame() gocv.Mat {
	return gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
}

func TestTorsoFromFace(t *testing.T) {

	torso := TorsoFromFace(geometry.NewBox(300, 100, 40, 40))
	assert.Equal(t, geometry.NewBox(260, 80, 120, 200), torso)

	// odd sizes truncate towards zero
	torso = TorsoFromFace(geometry.NewBox(10, 10, 15, 11))
	assert.Equal(t, geometry.NewBox(-5, 4, 45, 55), torso)
}

func TestBankPrefersFaceProxy(t *testing.T) {

	frame := testFrame()
	defer frame.Close()

	var faceCalls, upperCalls, fullCalls int

	bank := NewDefaultBank(
		fixed(&faceCalls, cand(300, 100, 40, 40, 1)),
		fixed(&upperCalls, cand(100, 100, 200, 200, 1)),
		fixed(&fullCalls, cand(100, 50, 150, 400, 1)),
	)

	res := bank.Detect(frame, 12000)

	require.True(t, res.Found)
	assert.Equal(t, FaceUpper, res.Strategy)
	assert.Equal(t, geometry.NewBox(260, 80, 120, 200), res.Box)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, 1, faceCalls)
	assert.Equal(t, 0, upperCalls, "upper body must not run once face proxy succeeds")
	assert.Equal(t, 0, fullCalls)
	assert.Equal(t, Counts{FaceUpper: 1}, res.Counts)
}

func TestBankFallsThrough(t *testing.T) {

	frame := testFrame()
	defer frame.Close()

	var faceCalls, upperCalls, fullCalls int

	// face torso 30x50 is below 12000/3 and the upper body box is too small
	bank := NewDefaultBank(
		fixed(&faceCalls, cand(300, 100, 10, 10, 1)),
		fixed(&upperCalls, cand(0, 0, 50, 50, 1)),
		fixed(&fullCalls,
			cand(0, 0, 100, 200, 0.9),
			cand(300, 0, 100, 150, 0.5),
			cand(500, 0, 20, 20, 1)),
	)

	res := bank.Detect(frame, 12000)

	require.True(t, res.Found)
	assert.Equal(t, FullBody, res.Strategy)
	assert.Equal(t, geometry.NewBox(0, 0, 100, 200), res.Box)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, Counts{FaceUpper: 0, UpperBody: 0, FullBody: 2}, res.Counts)
	assert.Equal(t, 1, fullCalls)
}

func TestBankConfidenceWeighsFullBody(t *testing.T) {

	frame := testFrame()
	defer frame.Close()

	var calls int

	bank := NewBank(NewFullBody(fixed(&calls,
		cand(0, 0, 100, 200, 0.3),
		cand(300, 0, 100, 150, 0.9),
	)))

	res := bank.Detect(frame, 12000)

	require.True(t, res.Found)
	assert.Equal(t, geometry.NewBox(300, 0, 100, 150), res.Box)
}

func TestBankFullBodyOnly(t *testing.T) {

	frame := testFrame()
	defer frame.Close()

	var faceCalls, upperCalls, fullCalls int

	bank := NewDefaultBank(
		fixed(&faceCalls, cand(300, 100, 40, 40, 1)),
		fixed(&upperCalls, cand(100, 100, 200, 200, 1)),
		fixed(&fullCalls, cand(100, 50, 150, 400, 1)),
	)
	assert.False(t, bank.FullBodyOnly())
	bank.SetFullBodyOnly(true)
	assert.True(t, bank.FullBodyOnly())

	res := bank.Detect(frame, 12000)

	require.True(t, res.Found)
	assert.Equal(t, FullBody, res.Strategy)
	assert.Zero(t, faceCalls)
	assert.Zero(t, upperCalls)
	assert.Equal(t, 1, fullCalls)

	_, ran := res.Counts[FaceUpper]
	assert.False(t, ran)
}

func TestBankNothingFound(t *testing.T) {

	frame := testFrame()
	defer frame.Close()

	var faceCalls, upperCalls, fullCalls int

	bank := NewDefaultBank(
		fixed(&faceCalls),
		fixed(&upperCalls),
		fixed(&fullCalls, cand(0, 0, 10, 10, 1)),
	)

	res := bank.Detect(frame, 12000)

	assert.False(t, res.Found)
	assert.Empty(t, res.Strategy)
	assert.Equal(t, 1, faceCalls)
	assert.Equal(t, 1, upperCalls)
	assert.Equal(t, 1, fullCalls)
	assert.False(t, res.Counts.Hit(FullBody))
}

func TestFaceProxyClipsTorso(t *testing.T) {

	frame := testFrame()
	defer frame.Close()

	var calls int

	// torso extends past the left and top edges of the frame
	proxy := NewFaceProxy(fixed(&calls, cand(0, 0, 40, 40, 1)))

	box, count, ok := proxy.Detect(frame, 3000)

	require.True(t, ok)
	assert.Equal(t, 1, count)
	assert.Equal(t, geometry.NewBox(0, 0, 120, 200), box)
}

func TestStrategiesOrder(t *testing.T) {

	var n int
	bank := NewDefaultBank(fixed(&n), fixed(&n), fixed(&n))

	assert.Equal(t, []string{FaceUpper, UpperBody, FullBody}, bank.Strategies())
}
