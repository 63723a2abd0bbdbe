package pose

import (
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPoints(t *testing.T) {

	landmarks := []Landmark{
		{Name: LeftShoulder, X: 0.25, Y: 0.5, Visibility: 0.9},
		{Name: RightShoulder, X: 0.75, Y: 0.5, Visibility: 0.8},
		{Name: LeftElbow, X: 0.2, Y: 0.7, Visibility: 0.2},
		{Name: RightElbow, X: 1.2, Y: 0.7, Visibility: 0.9},
		{Name: LeftHip, X: 0.3, Y: -0.1, Visibility: 0.9},
	}

	got := Points(landmarks, 640, 480, 0.5)

	want := map[string]image.Point{
		LeftShoulder:  image.Pt(160, 240),
		RightShoulder: image.Pt(480, 240),
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Points() mismatch (-want +got):\n%s", diff)
	}
}

func TestSelect(t *testing.T) {

	pts := map[string]image.Point{
		Nose:        image.Pt(320, 60),
		"left_knee": image.Pt(300, 400),
	}

	got := Select(pts, UpperBodyLandmarks)

	want := map[string]image.Point{Nose: image.Pt(320, 60)}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Select() mismatch (-want +got):\n%s", diff)
	}
}

func TestSegments(t *testing.T) {

	pts := map[string]image.Point{
		LeftShoulder:  image.Pt(160, 240),
		RightShoulder: image.Pt(480, 240),
		LeftElbow:     image.Pt(120, 320),
	}

	got := Segments(pts, UpperBodyPairs)

	want := [][2]image.Point{
		{image.Pt(160, 240), image.Pt(480, 240)},
		{image.Pt(160, 240), image.Pt(120, 320)},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Segments() mismatch (-want +got):\n%s", diff)
	}
}
