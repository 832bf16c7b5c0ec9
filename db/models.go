package db

import "time"

// Source represents a row in the sources table.
type Source struct {
	ID       int64
	Path     string
	Filename string
	MIME     string
	Filesize int64
	Duration *float64
	LoadedAt time.Time
}

// Capture represents a row in the captures table.
type Capture struct {
	ID         int64
	SessionID  string
	SourceName string
	Start      float64
	End        float64
	State      string
	Format     string
	Filename   string
	Filesize   int64
	Chunks     int
	Error      string
	SavedPath  string
	StartedAt  time.Time
	FinishedAt *time.Time
}

// CaptureStats summarizes the captures table.
type CaptureStats struct {
	Total      int
	Ready      int
	Failed     int
	ReadyBytes int64
}
