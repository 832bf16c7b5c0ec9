package db

import (
	_ "embed"
)

// Schema and migrations

//go:embed sql/create_tables.sql
var CreateTablesSQL string

// Source queries

//go:embed sql/upsert_source.sql
var UpsertSourceSQL string

//go:embed sql/update_source_duration.sql
var UpdateSourceDurationSQL string

//go:embed sql/select_sources.sql
var SelectSourcesSQL string

// Capture queries

//go:embed sql/insert_capture.sql
var InsertCaptureSQL string

//go:embed sql/update_capture_state.sql
var UpdateCaptureStateSQL string

//go:embed sql/mark_capture_ready.sql
var MarkCaptureReadySQL string

//go:embed sql/mark_capture_failed.sql
var MarkCaptureFailedSQL string

//go:embed sql/mark_capture_saved.sql
var MarkCaptureSavedSQL string

//go:embed sql/select_captures.sql
var SelectCapturesSQL string

//go:embed sql/select_capture_by_session.sql
var SelectCaptureBySessionSQL string

//go:embed sql/select_capture_stats.sql
var SelectCaptureStatsSQL string
