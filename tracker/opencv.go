package tracker

import (
	"image"

	"gocv.io/x/gocv"
	"gocv.io/x/gocv/contrib"
)

func newCSRT() Tracker {
	return contrib.NewTrackerCSRT()
}

func newKCF() Tracker {
	return contrib.NewTrackerKCF()
}

// fallback is a Tracker that tries a list of tracker constructors in order
// and keeps the first one that initialises on the given region
type fallback struct {
	factories []Factory
	active    Tracker
}

// FallbackFactory returns a Factory whose trackers try each of the given
// factories in order when initialised, eg: CSRT then KCF then MIL.  The
// Factory fails with ErrNoTracker if no factories are given
func FallbackFactory(factories ...Factory) Factory {
	return func() (Tracker, error) {
		if len(factories) == 0 {
			return nil, ErrNoTracker
		}
		return &fallback{factories: factories}, nil
	}
}

// Init initialises the first tracker that accepts the region
func (f *fallback) Init(frame gocv.Mat, region image.Rectangle) bool {

	f.release()

	for _, factory := range f.factories {

		t, err := factory()

		if err != nil || t == nil {
			continue
		}

		if t.Init(frame, region) {
			f.active = t
			return true
		}

		t.Close()
	}

	return false
}

// Update passes the frame to the active tracker
func (f *fallback) Update(frame gocv.Mat) (image.Rectangle, bool) {

	if f.active == nil {
		return image.Rectangle{}, false
	}

	return f.active.Update(frame)
}

// Close frees the active tracker
func (f *fallback) Close() error {
	return f.release()
}

func (f *fallback) release() error {

	if f.active == nil {
		return nil
	}

	err := f.active.Close()
	f.active = nil

	return err
}
