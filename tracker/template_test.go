package tracker

import (
	"image"
	"image/color"
	"testing"

	"gocv.io/x/gocv"
)

// squareFrame returns a black grayscale frame with a filled white square
func squareFrame(square image.Rectangle) gocv.Mat {
	m := gocv.NewMatWithSize(240, 320, gocv.MatTypeCV8UC1)
	m.SetTo(gocv.NewScalar(0, 0, 0, 0))
	gocv.Rectangle(&m, square, color.RGBA{255, 255, 255, 0}, -1)
	return m
}

func TestTemplateTrackerFollowsShift(t *testing.T) {

	first := squareFrame(image.Rect(100, 80, 140, 120))
	defer first.Close()

	tr := NewTemplateTracker(DefaultTemplateParams())
	defer tr.Close()

	region := image.Rect(90, 70, 150, 130)

	if !tr.Init(first, region) {
		t.Fatal("expected init to succeed")
	}

	next := squareFrame(image.Rect(105, 80, 145, 120))
	defer next.Close()

	rect, ok := tr.Update(next)

	if !ok {
		t.Fatal("expected update to find the template")
	}

	dx := rect.Min.X - region.Min.X
	dy := rect.Min.Y - region.Min.Y

	if dx < 3 || dx > 6 {
		t.Errorf("expected x shift near 5, got %d (%v)", dx, rect)
	}

	if dy < -1 || dy > 1 {
		t.Errorf("expected no y shift, got %d (%v)", dy, rect)
	}
}

func TestTemplateTrackerRejects(t *testing.T) {

	frame := squareFrame(image.Rect(100, 80, 140, 120))
	defer frame.Close()

	tr := NewTemplateTracker(DefaultTemplateParams())
	defer tr.Close()

	if _, ok := tr.Update(frame); ok {
		t.Error("expected update before init to fail")
	}

	if tr.Init(frame, image.Rect(400, 400, 500, 500)) {
		t.Error("expected init outside the frame to fail")
	}

	empty := gocv.NewMat()
	defer empty.Close()

	if tr.Init(empty, image.Rect(0, 0, 10, 10)) {
		t.Error("expected init on empty frame to fail")
	}
}
