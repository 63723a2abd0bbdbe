// Package recorder stores the action timeline of a pipeline run in SQLite.
// Consecutive frames with the same action are merged into one segment row.
package recorder

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/swdee/go-actiontrack"
	"github.com/swdee/go-actiontrack/internal/monitoring"
	_ "modernc.org/sqlite"
)

// schema.sql defines the sessions table and the segments table holding one
// row per run of frames with the same action label
//
//go:embed schema.sql
var schemaSQL string

// Segment is a maximal run of frames classified with the same action
type Segment struct {
	Label string
	// Mode is the box source on the first frame of the segment
	Mode       string
	FirstFrame int
	LastFrame  int
	Frames     int
	StartedAt  time.Time
	EndedAt    time.Time
}

// Recorder writes segments for a single session
type Recorder struct {
	db        *sql.DB
	sessionID string
	// open is the segment being extended, nil before the first frame
	open *Segment
	now  func() time.Time
}

// New opens or creates the database at path and starts a session for the
// named video source
func New(path, source string) (*Recorder, error) {
	return newRecorder(path, source, time.Now)
}

func newRecorder(path, source string, now func() time.Time) (*Recorder, error) {

	db, err := sql.Open("sqlite", path)

	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if _, err = db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating schema: %w", err)
	}

	r := &Recorder{
		db:        db,
		sessionID: uuid.New().String(),
		now:       now,
	}

	_, err = db.Exec(`INSERT INTO sessions (session_id, source, started_at) VALUES (?, ?, ?)`,
		r.sessionID, source, now().UTC())

	if err != nil {
		db.Close()
		return nil, fmt.Errorf("error starting session: %w", err)
	}

	monitoring.Logf("recording session %s to %s", r.sessionID, path)

	return r, nil
}

// SessionID returns the id of the recording session
func (r *Recorder) SessionID() string {
	return r.sessionID
}

// Observe adds a processed frame to the timeline, extending the open segment
// when the action is unchanged or writing it out and starting a new one
func (r *Recorder) Observe(res actiontrack.Result) error {

	label := res.Action.String()
	at := r.now().UTC()

	if r.open != nil && r.open.Label == label {
		r.open.LastFrame = res.FrameIndex
		r.open.Frames++
		r.open.EndedAt = at
		return nil
	}

	if err := r.flush(); err != nil {
		return err
	}

	r.open = &Segment{
		Label:      label,
		Mode:       res.Mode,
		FirstFrame: res.FrameIndex,
		LastFrame:  res.FrameIndex,
		Frames:     1,
		StartedAt:  at,
		EndedAt:    at,
	}

	return nil
}

// flush writes the open segment
func (r *Recorder) flush() error {

	if r.open == nil {
		return nil
	}

	seg := r.open
	r.open = nil

	_, err := r.db.Exec(`
		INSERT INTO segments (session_id, label, mode, first_frame, last_frame,
			frame_count, started_at, ended_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, r.sessionID, seg.Label, seg.Mode, seg.FirstFrame, seg.LastFrame,
		seg.Frames, seg.StartedAt, seg.EndedAt)

	if err != nil {
		return fmt.Errorf("failed to insert segment: %w", err)
	}

	return nil
}

// Segments returns the written segments of the session in frame order
func (r *Recorder) Segments() ([]Segment, error) {

	rows, err := r.db.Query(`
		SELECT label, mode, first_frame, last_frame, frame_count, started_at, ended_at
		FROM segments WHERE session_id = ? ORDER BY first_frame
	`, r.sessionID)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var segs []Segment

	for rows.Next() {

		var seg Segment

		err := rows.Scan(&seg.Label, &seg.Mode, &seg.FirstFrame, &seg.LastFrame,
			&seg.Frames, &seg.StartedAt, &seg.EndedAt)

		if err != nil {
			return nil, err
		}

		segs = append(segs, seg)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return segs, nil
}

// Close writes the open segment, marks the session ended and closes the
// database
func (r *Recorder) Close() error {

	err := r.flush()

	if err == nil {
		_, err = r.db.Exec(`UPDATE sessions SET ended_at = ? WHERE session_id = ?`,
			r.now().UTC(), r.sessionID)
	}

	if cerr := r.db.Close(); err == nil {
		err = cerr
	}

	return err
}
