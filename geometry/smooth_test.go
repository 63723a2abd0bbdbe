package geometry

import (
	"math"
	"testing"
)

func TestEMANoPrevious(t *testing.T) {

	b := NewBox(10, 20, 30, 40)
	got := EMA(nil, b, 0.3)

	if got != ToSmooth(b) {
		t.Errorf("expected first EMA value to equal input %v, got %v", b, got)
	}
}

func TestEMAWeights(t *testing.T) {

	prev := SmoothBox{0, 0, 100, 100}
	next := NewBox(100, 50, 200, 100)

	got := EMA(&prev, next, 0.25)
	want := SmoothBox{25, 12.5, 125, 100}

	if got != want {
		t.Errorf("expected %v, got %v", want, got)
	}

	if got := EMA(&prev, next, 0); got != prev {
		t.Errorf("alpha 0 should keep previous %v, got %v", prev, got)
	}

	if got := EMA(&prev, next, 1); got != ToSmooth(next) {
		t.Errorf("alpha 1 should follow newest %v, got %v", next, got)
	}
}

// TestSmootherConstantInput checks that feeding the same box gives exactly that
// box from the first update onwards
func TestSmootherConstantInput(t *testing.T) {

	s := NewSmoother(0.45)
	b := NewBox(100, 120, 80, 160)

	if s.Alpha() != 0.45 {
		t.Fatalf("expected alpha 0.45, got %v", s.Alpha())
	}

	for i := 0; i < 10; i++ {
		if got := s.Update(b, 640, 480); got != b {
			t.Fatalf("update %d: expected %v, got %v", i, b, got)
		}
	}
}

func TestSmootherClipsResult(t *testing.T) {

	s := NewSmoother(0.5)
	s.Update(NewBox(600, 400, 100, 100), 640, 480)
	got := s.Update(NewBox(630, 470, 100, 100), 640, 480)

	if got.BRX() > 640 || got.BRY() > 480 {
		t.Errorf("smoothed box escaped frame: %v", got)
	}
}

func TestSmootherRestore(t *testing.T) {

	s := NewSmoother(0.5)

	if _, ok := s.State(); ok {
		t.Fatal("expected no state before first update")
	}

	s.Update(NewBox(0, 0, 10, 10), 640, 480)
	saved, _ := s.State()

	s.Update(NewBox(100, 100, 10, 10), 640, 480)
	s.Restore(&saved)

	if got, _ := s.State(); got != saved {
		t.Errorf("expected restored state %v, got %v", saved, got)
	}

	s.Restore(nil)

	if _, ok := s.State(); ok {
		t.Error("expected restore(nil) to clear state")
	}
}

func TestClampAlpha(t *testing.T) {

	for in, want := range map[float64]float64{-1: 0, 0: 0, 0.45: 0.45, 1: 1, 3: 1} {
		if got := ClampAlpha(in); got != want {
			t.Errorf("ClampAlpha(%v): expected %v, got %v", in, want, got)
		}
	}

	if got := ClampAlpha(math.NaN()); got != 1 {
		t.Errorf("ClampAlpha(NaN): expected 1, got %v", got)
	}
}

func TestSmootherNaNAlphaFollowsBox(t *testing.T) {

	s := NewSmoother(math.NaN())

	for i, b := range []Box{
		NewBox(200, 100, 120, 240),
		NewBox(210, 104, 120, 240),
		NewBox(220, 108, 118, 236),
	} {
		if got := s.Update(b, 640, 480); got != b {
			t.Errorf("frame %d: expected %+v, got %+v", i+1, b, got)
		}
	}
}
