package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swdee/go-actiontrack"
	"github.com/swdee/go-actiontrack/action"
)

// stepClock returns a clock advancing one second per call
func stepClock(start time.Time) func() time.Time {
	calls := 0
	return func() time.Time {
		t := start.Add(time.Duration(calls) * time.Second)
		calls++
		return t
	}
}

func frame(idx int, mode string, label action.Label) actiontrack.Result {
	return actiontrack.Result{FrameIndex: idx, Mode: mode, Action: label}
}

func TestObserveMergesLabels(t *testing.T) {

	path := filepath.Join(t.TempDir(), "actions.db")
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	rec, err := newRecorder(path, "cam0", stepClock(start))
	require.NoError(t, err)

	results := []actiontrack.Result{
		frame(1, "none", action.NotFound),
		frame(2, "full_body", action.Detecting),
		frame(3, "tracker", action.Standing),
		frame(4, "tracker", action.Standing),
		frame(5, "full_body", action.Standing),
		frame(6, "tracker", action.WalkingOrRunning),
	}

	for _, res := range results {
		require.NoError(t, rec.Observe(res))
	}

	// the open segment is not written until it ends
	segs, err := rec.Segments()
	require.NoError(t, err)
	require.Len(t, segs, 3)

	assert.Equal(t, "not_found", segs[0].Label)
	assert.Equal(t, "detecting", segs[1].Label)

	standing := segs[2]
	assert.Equal(t, "standing", standing.Label)
	assert.Equal(t, "tracker", standing.Mode)
	assert.Equal(t, 3, standing.FirstFrame)
	assert.Equal(t, 5, standing.LastFrame)
	assert.Equal(t, 3, standing.Frames)
	assert.True(t, standing.EndedAt.After(standing.StartedAt))

	require.NoError(t, rec.Close())

	// reopen to read everything back including the flushed final segment
	rec2, err := newRecorder(path, "cam0", stepClock(start))
	require.NoError(t, err)
	defer rec2.Close()

	var count, ended int
	row := rec2.db.QueryRow(`SELECT COUNT(*) FROM segments WHERE session_id = ?`, rec.SessionID())
	require.NoError(t, row.Scan(&count))
	assert.Equal(t, 4, count)

	row = rec2.db.QueryRow(`SELECT COUNT(*) FROM sessions WHERE ended_at IS NOT NULL`)
	require.NoError(t, row.Scan(&ended))
	assert.Equal(t, 1, ended)

	assert.NotEqual(t, rec.SessionID(), rec2.SessionID())
}

func TestCloseWithoutFrames(t *testing.T) {

	rec, err := New(filepath.Join(t.TempDir(), "empty.db"), "video.mp4")
	require.NoError(t, err)

	segs, err := rec.Segments()
	require.NoError(t, err)
	assert.Empty(t, segs)

	assert.NoError(t, rec.Close())
}
