package db

import (
	"database/sql"
	"log"
	"time"

	"github.com/user/video-clipper-cli/capture"
)

// Journal writes capture session events to the captures table.
type Journal struct {
	DB  *sql.DB
	Now func() time.Time
}

// NewJournal wraps an open database.
func NewJournal(db *sql.DB) *Journal {
	return &Journal{DB: db, Now: time.Now}
}

// Record stores ev. It is meant to be registered with Engine.Observe, so
// errors are logged rather than returned. Rejections that never started a
// session are not journaled.
func (j *Journal) Record(ev capture.Event) {
	if ev.SessionID == "" {
		return
	}
	now := j.Now()

	var err error
	switch ev.State {
	case capture.StatePreparing:
		err = InsertCapture(j.DB, ev.SessionID, ev.Target.Name, ev.Target.Range.Start, ev.Target.Range.End, ev.State.String(), now)
	case capture.StateRecording, capture.StateFinalizing:
		err = UpdateCaptureState(j.DB, ev.SessionID, ev.State.String())
	case capture.StateReady:
		a := ev.Artifact
		if a == nil {
			return
		}
		err = MarkCaptureReady(j.DB, ev.SessionID, a.Format.MIME(), a.Filename, a.Size(), a.Chunks, now)
	case capture.StateFailed:
		err = MarkCaptureFailed(j.DB, ev.SessionID, failureText(ev.Err), now)
	}
	if err != nil {
		log.Printf("journal %s %s: %v", ev.SessionID, ev.State, err)
	}
}

// failureText keeps the diagnostic cause next to the user message.
func failureText(err error) string {
	if err == nil {
		return capture.MsgClipFailed
	}
	msg := capture.UserMessage(err)
	if ce, ok := err.(*capture.Error); ok && ce.Err != nil {
		return msg + ": " + ce.Err.Error()
	}
	return msg
}

// SourceLoaded records a newly accepted source file.
func (j *Journal) SourceLoaded(path, mime string, size int64) {
	if err := UpsertSource(j.DB, path, mime, size); err != nil {
		log.Printf("journal source %s: %v", path, err)
	}
}

// SourceDuration records the duration reported for a source.
func (j *Journal) SourceDuration(path string, duration float64) {
	if err := UpdateSourceDuration(j.DB, path, duration); err != nil {
		log.Printf("journal source %s duration: %v", path, err)
	}
}

// Saved records where a clip was written.
func (j *Journal) Saved(sessionID, path string) {
	if err := MarkCaptureSaved(j.DB, sessionID, path); err != nil {
		log.Printf("journal %s saved: %v", sessionID, err)
	}
}

// Recent returns up to limit captures, most recent first.
func (j *Journal) Recent(limit int) ([]Capture, error) {
	return SelectCaptures(j.DB, limit)
}

// Stats counts captures by outcome.
func (j *Journal) Stats() (CaptureStats, error) {
	return SelectCaptureStats(j.DB)
}
