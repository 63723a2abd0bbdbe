// Package detect locates a person in a frame by trying an ordered list of
// detection strategies, returning the result of the first one to succeed.
package detect

import (
	"gocv.io/x/gocv"
)

// Bank is a priority ordered list of detection strategies
type Bank struct {
	strategies []Strategy
	// fullBodyOnly skips every strategy other than the full body one
	fullBodyOnly bool
}

// NewBank returns a Bank that tries the given strategies in order
func NewBank(strategies ...Strategy) *Bank {
	return &Bank{
		strategies: strategies,
	}
}

// NewDefaultBank returns a Bank using the standard ordering of face proxy,
// upper body cascade and then full body detection
func NewDefaultBank(faces, upperBodies, people RegionDetector) *Bank {
	return NewBank(
		NewFaceProxy(faces),
		NewUpperBody(upperBodies),
		NewFullBody(people),
	)
}

// SetFullBodyOnly forces the Bank to use only the full body strategy
func (b *Bank) SetFullBodyOnly(on bool) {
	b.fullBodyOnly = on
}

// FullBodyOnly reports whether only the full body strategy is used
func (b *Bank) FullBodyOnly() bool {
	return b.fullBodyOnly
}

// Strategies returns the strategy names in priority order
func (b *Bank) Strategies() []string {
	names := make([]string, 0, len(b.strategies))

	for _, s := range b.strategies {
		names = append(names, s.Name())
	}

	return names
}

// Detect runs the strategies in priority order and returns the first one to
// produce a box.  Later strategies are not run once one succeeds
func (b *Bank) Detect(frame gocv.Mat, minArea int) Result {

	res := Result{
		Counts: make(Counts),
	}

	for _, s := range b.strategies {

		if b.fullBodyOnly && s.Name() != FullBody {
			continue
		}

		box, count, ok := s.Detect(frame, minArea)
		res.Counts[s.Name()] = count

		if ok {
			res.Box = box
			res.Found = true
			res.Strategy = s.Name()
			res.Count = count
			return res
		}
	}

	return res
}
