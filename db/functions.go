package db

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"
)

// UpsertSource records that path was loaded, refreshing the row if the file
// was loaded before.
func UpsertSource(db *sql.DB, path, mime string, filesize int64) error {
	_, err := db.Exec(UpsertSourceSQL, path, filepath.Base(path), mime, filesize)
	if err != nil {
		return fmt.Errorf("upsert source: %w", err)
	}
	return nil
}

// UpdateSourceDuration stores the duration the player reported for path.
func UpdateSourceDuration(db *sql.DB, path string, duration float64) error {
	_, err := db.Exec(UpdateSourceDurationSQL, duration, path)
	if err != nil {
		return fmt.Errorf("update source duration: %w", err)
	}
	return nil
}

// SelectSources returns every loaded source, most recent first.
func SelectSources(db *sql.DB) ([]Source, error) {
	rows, err := db.Query(SelectSourcesSQL)
	if err != nil {
		return nil, fmt.Errorf("select sources: %w", err)
	}
	defer rows.Close()

	var sources []Source
	for rows.Next() {
		var s Source
		if err := rows.Scan(&s.ID, &s.Path, &s.Filename, &s.MIME, &s.Filesize, &s.Duration, &s.LoadedAt); err != nil {
			return nil, fmt.Errorf("scan source: %w", err)
		}
		sources = append(sources, s)
	}
	return sources, rows.Err()
}

// InsertCapture inserts a captures row in its initial state. Inserting the
// same session twice is a no-op.
func InsertCapture(db *sql.DB, sessionID, sourceName string, start, end float64, state string, startedAt time.Time) error {
	_, err := db.Exec(InsertCaptureSQL, sessionID, sourceName, start, end, state, startedAt)
	if err != nil {
		return fmt.Errorf("insert capture: %w", err)
	}
	return nil
}

// UpdateCaptureState moves a capture to a non-terminal state.
func UpdateCaptureState(db *sql.DB, sessionID, state string) error {
	_, err := db.Exec(UpdateCaptureStateSQL, state, sessionID)
	if err != nil {
		return fmt.Errorf("update capture state: %w", err)
	}
	return nil
}

// MarkCaptureReady records a finished clip.
func MarkCaptureReady(db *sql.DB, sessionID, format, filename string, filesize int64, chunks int, finishedAt time.Time) error {
	_, err := db.Exec(MarkCaptureReadySQL, format, filename, filesize, chunks, finishedAt, sessionID)
	if err != nil {
		return fmt.Errorf("mark capture ready: %w", err)
	}
	return nil
}

// MarkCaptureFailed records why a capture failed.
func MarkCaptureFailed(db *sql.DB, sessionID, errMsg string, finishedAt time.Time) error {
	_, err := db.Exec(MarkCaptureFailedSQL, errMsg, finishedAt, sessionID)
	if err != nil {
		return fmt.Errorf("mark capture failed: %w", err)
	}
	return nil
}

// MarkCaptureSaved records where a clip was saved.
func MarkCaptureSaved(db *sql.DB, sessionID, savedPath string) error {
	_, err := db.Exec(MarkCaptureSavedSQL, savedPath, sessionID)
	if err != nil {
		return fmt.Errorf("mark capture saved: %w", err)
	}
	return nil
}

func scanCapture(row interface{ Scan(...interface{}) error }) (*Capture, error) {
	var c Capture
	err := row.Scan(&c.ID, &c.SessionID, &c.SourceName, &c.Start, &c.End, &c.State,
		&c.Format, &c.Filename, &c.Filesize, &c.Chunks, &c.Error, &c.SavedPath,
		&c.StartedAt, &c.FinishedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// SelectCaptures returns up to limit captures, most recent first.
func SelectCaptures(db *sql.DB, limit int) ([]Capture, error) {
	rows, err := db.Query(SelectCapturesSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("select captures: %w", err)
	}
	defer rows.Close()

	var captures []Capture
	for rows.Next() {
		c, err := scanCapture(rows)
		if err != nil {
			return nil, fmt.Errorf("scan capture: %w", err)
		}
		captures = append(captures, *c)
	}
	return captures, rows.Err()
}

// SelectCaptureBySession returns one capture. It returns sql.ErrNoRows if the
// session was never journaled.
func SelectCaptureBySession(db *sql.DB, sessionID string) (*Capture, error) {
	return scanCapture(db.QueryRow(SelectCaptureBySessionSQL, sessionID))
}

// SelectCaptureStats counts captures by outcome.
func SelectCaptureStats(db *sql.DB) (CaptureStats, error) {
	var s CaptureStats
	err := db.QueryRow(SelectCaptureStatsSQL).Scan(&s.Total, &s.Ready, &s.Failed, &s.ReadyBytes)
	if err != nil {
		return CaptureStats{}, fmt.Errorf("select capture stats: %w", err)
	}
	return s, nil
}
