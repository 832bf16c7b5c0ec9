package db

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/user/video-clipper-cli/capture"
	"github.com/user/video-clipper-cli/selection"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	database, err := Open(MemoryPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	j := NewJournal(database)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	j.Now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return j
}

func target() capture.Target {
	return capture.Target{Name: "match.mp4", Range: selection.Range{Start: 5, End: 10, Duration: 60}}
}

func TestOpenAppliesMigrations(t *testing.T) {
	j := openTestJournal(t)

	var count int
	if err := j.DB.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatalf("Failed to count migrations: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 applied migration, got %d", count)
	}

	// Running migrations again must be a no-op.
	if err := runMigrations(j.DB); err != nil {
		t.Errorf("Expected migrations to be idempotent, got %v", err)
	}
}

func TestOpenFileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "journal.db")
	database, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer database.Close()

	if err := UpsertSource(database, "/videos/a.mp4", "video/mp4", 10); err != nil {
		t.Fatalf("UpsertSource failed: %v", err)
	}
}

func TestJournalRecordsSuccessfulSession(t *testing.T) {
	j := openTestJournal(t)
	tg := target()

	artifact := &capture.Artifact{
		SessionID: "s1",
		Data:      make([]byte, 150),
		Format:    capture.DefaultFormats[1],
		Filename:  "clipped-match.mp4.webm",
		Range:     tg.Range,
		Chunks:    2,
	}
	for _, ev := range []capture.Event{
		{SessionID: "s1", State: capture.StatePreparing, Target: tg},
		{SessionID: "s1", State: capture.StateRecording, Target: tg},
		{SessionID: "s1", State: capture.StateFinalizing, Target: tg},
		{SessionID: "s1", State: capture.StateReady, Target: tg, Artifact: artifact},
	} {
		j.Record(ev)
	}

	c, err := SelectCaptureBySession(j.DB, "s1")
	if err != nil {
		t.Fatalf("SelectCaptureBySession failed: %v", err)
	}
	if c.State != "ready" {
		t.Errorf("Expected state ready, got %q", c.State)
	}
	if c.Filesize != 150 || c.Chunks != 2 {
		t.Errorf("Expected 150 bytes in 2 chunks, got %d in %d", c.Filesize, c.Chunks)
	}
	if c.Format != "video/webm; codecs=vp8,opus" {
		t.Errorf("Unexpected format %q", c.Format)
	}
	if c.Start != 5 || c.End != 10 || c.SourceName != "match.mp4" {
		t.Errorf("Unexpected target columns: %+v", c)
	}
	if c.FinishedAt == nil {
		t.Error("Expected finished_at to be set")
	}

	j.Saved("s1", "/clips/clipped-match.mp4.webm")
	c, _ = SelectCaptureBySession(j.DB, "s1")
	if c.SavedPath != "/clips/clipped-match.mp4.webm" {
		t.Errorf("Expected saved path, got %q", c.SavedPath)
	}
}

func TestJournalRecordsFailure(t *testing.T) {
	j := openTestJournal(t)
	tg := target()

	j.Record(capture.Event{SessionID: "s2", State: capture.StatePreparing, Target: tg})
	j.Record(capture.Event{
		SessionID: "s2",
		State:     capture.StateFailed,
		Target:    tg,
		Err:       &capture.Error{Kind: capture.KindRecording, Message: capture.MsgRecording, Err: errors.New("ffmpeg exited 1")},
	})

	c, err := SelectCaptureBySession(j.DB, "s2")
	if err != nil {
		t.Fatalf("SelectCaptureBySession failed: %v", err)
	}
	if c.State != "failed" {
		t.Errorf("Expected state failed, got %q", c.State)
	}
	if !strings.HasPrefix(c.Error, capture.MsgRecording) || !strings.Contains(c.Error, "ffmpeg exited 1") {
		t.Errorf("Unexpected error column %q", c.Error)
	}
}

func TestJournalSkipsSessionlessEvents(t *testing.T) {
	j := openTestJournal(t)
	j.Record(capture.Event{State: capture.StateFailed, Err: capture.ErrInvalidInput})

	stats, err := j.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Total != 0 {
		t.Errorf("Expected no rows, got %d", stats.Total)
	}
	if _, err := SelectCaptureBySession(j.DB, ""); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("Expected sql.ErrNoRows, got %v", err)
	}
}

func TestRecentAndStats(t *testing.T) {
	j := openTestJournal(t)
	tg := target()

	for i := 0; i < 3; i++ {
		id := fmt.Sprintf("s%d", i)
		j.Record(capture.Event{SessionID: id, State: capture.StatePreparing, Target: tg})
		if i == 1 {
			j.Record(capture.Event{SessionID: id, State: capture.StateFailed, Err: capture.ErrRecording})
			continue
		}
		j.Record(capture.Event{SessionID: id, State: capture.StateReady, Artifact: &capture.Artifact{
			Data:     make([]byte, 100),
			Format:   capture.DefaultFormats[2],
			Filename: "clipped-match.mp4.webm",
		}})
	}

	recent, err := j.Recent(2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 captures, got %d", len(recent))
	}
	if recent[0].SessionID != "s2" || recent[1].SessionID != "s1" {
		t.Errorf("Expected most recent first, got %s, %s", recent[0].SessionID, recent[1].SessionID)
	}

	stats, err := j.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	expected := CaptureStats{Total: 3, Ready: 2, Failed: 1, ReadyBytes: 200}
	if stats != expected {
		t.Errorf("Expected %+v, got %+v", expected, stats)
	}
}

func TestSourcesUpsert(t *testing.T) {
	j := openTestJournal(t)

	j.SourceLoaded("/videos/a.mp4", "video/mp4", 100)
	j.SourceLoaded("/videos/a.mp4", "video/mp4", 120)
	j.SourceDuration("/videos/a.mp4", 42.5)

	sources, err := SelectSources(j.DB)
	if err != nil {
		t.Fatalf("SelectSources failed: %v", err)
	}
	if len(sources) != 1 {
		t.Fatalf("Expected 1 source, got %d", len(sources))
	}
	s := sources[0]
	if s.Filename != "a.mp4" || s.Filesize != 120 {
		t.Errorf("Unexpected source row: %+v", s)
	}
	if s.Duration == nil || *s.Duration != 42.5 {
		t.Errorf("Expected duration 42.5, got %v", s.Duration)
	}
}
