// Package tracker provides visual tracker primitives and the lifecycle
// manager that decides each frame whether to trust the tracker or fall back to
// the detector bank.
package tracker

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"gocv.io/x/gocv"
)

// ErrNoTracker is returned by a Factory that can not construct a tracker
var ErrNoTracker = errors.New("no tracker available")

// Tracker is a single object visual tracker.  The method set matches
// gocv.Tracker so any gocv tracker can be used directly
type Tracker interface {
	// Init starts tracking the region of the given frame and reports success
	Init(frame gocv.Mat, region image.Rectangle) bool
	// Update locates the region in the next frame
	Update(frame gocv.Mat) (image.Rectangle, bool)
	// Close frees the tracker
	Close() error
}

// Factory constructs a new, uninitialised tracker
type Factory func() (Tracker, error)

// Kind names a tracker implementation
type Kind string

const (
	KindAuto     Kind = "auto"
	KindCSRT     Kind = "csrt"
	KindKCF      Kind = "kcf"
	KindMIL      Kind = "mil"
	KindTemplate Kind = "template"
	KindNone     Kind = "none"
)

// ParseKind converts a tracker name, as given on the command line, into a Kind
func ParseKind(name string) (Kind, error) {

	k := Kind(strings.ToLower(strings.TrimSpace(name)))

	switch k {
	case KindAuto, KindCSRT, KindKCF, KindMIL, KindTemplate, KindNone:
		return k, nil
	case "":
		return KindAuto, nil
	}

	return "", fmt.Errorf("unknown tracker %q, expected one of auto, csrt, kcf, mil, template, none", name)
}

// NewFactory returns the Factory for the given tracker kind.  KindNone
// returns a Factory that always fails, which disables tracking
func NewFactory(kind Kind) (Factory, error) {

	switch kind {
	case KindAuto:
		return FallbackFactory(
			func() (Tracker, error) { return newCSRT(), nil },
			func() (Tracker, error) { return newKCF(), nil },
			func() (Tracker, error) { return gocv.NewTrackerMIL(), nil },
		), nil

	case KindCSRT:
		return func() (Tracker, error) { return newCSRT(), nil }, nil

	case KindKCF:
		return func() (Tracker, error) { return newKCF(), nil }, nil

	case KindMIL:
		return func() (Tracker, error) { return gocv.NewTrackerMIL(), nil }, nil

	case KindTemplate:
		return func() (Tracker, error) { return NewTemplateTracker(DefaultTemplateParams()), nil }, nil

	case KindNone:
		return func() (Tracker, error) { return nil, ErrNoTracker }, nil
	}

	return nil, fmt.Errorf("unknown tracker kind %q", kind)
}
