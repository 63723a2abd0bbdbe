package actiontrack

import (
	"fmt"
	"time"

	"github.com/swdee/go-actiontrack/detect"
)

// Stats accumulates frame rate and detection hit counts over a reporting
// period
type Stats struct {
	period time.Duration
	start  time.Time
	frames int
	// hits counts frames in which each strategy found a valid candidate
	hits map[string]int
	last Result
}

// NewStats returns Stats that report once per period, starting at now
func NewStats(period time.Duration, now time.Time) *Stats {
	return &Stats{
		period: period,
		start:  now,
		hits:   make(map[string]int),
	}
}

// Add records a processed frame
func (s *Stats) Add(res Result) {

	s.frames++
	s.last = res

	for name, count := range res.Counts {
		if count > 0 {
			s.hits[name]++
		}
	}
}

// Report is a summary of a reporting period
type Report struct {
	FPS    float64
	Frames int
	// Hits counts frames where each strategy found a valid candidate
	Hits map[string]int
	// Last is the result of the final frame in the period
	Last Result
}

// String formats the report as an info log line
func (r Report) String() string {
	return fmt.Sprintf("fps=%.1f face_hit=%d upper_hit=%d full_hit=%d",
		r.FPS, r.Hits[detect.FaceUpper], r.Hits[detect.UpperBody], r.Hits[detect.FullBody])
}

// Debug formats the report with the state of the last frame
func (r Report) Debug(width, height int, tracking bool) string {
	return fmt.Sprintf("fps=%.1f face_count=%d upper_count=%d full_count=%d mode=%s track_ok=%t frame=%dx%d",
		r.FPS, r.Last.Counts[detect.FaceUpper], r.Last.Counts[detect.UpperBody],
		r.Last.Counts[detect.FullBody], r.Last.Mode, tracking, width, height)
}

// Tick returns a Report and resets the counters once the period has elapsed
// since the last report
func (s *Stats) Tick(now time.Time) (Report, bool) {

	elapsed := now.Sub(s.start)

	if elapsed < s.period || elapsed <= 0 {
		return Report{}, false
	}

	rep := Report{
		FPS:    float64(s.frames) / elapsed.Seconds(),
		Frames: s.frames,
		Hits:   s.hits,
		Last:   s.last,
	}

	s.start = now
	s.frames = 0
	s.hits = make(map[string]int)

	return rep, true
}
