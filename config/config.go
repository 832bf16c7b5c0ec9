// Package config holds the settings shared by every command.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/user/video-clipper-cli/capture"
	"github.com/user/video-clipper-cli/clip"
	"github.com/user/video-clipper-cli/db"
	"github.com/user/video-clipper-cli/mpv"
)

// Config is the runtime configuration, populated from flags.
type Config struct {
	// SocketPath is the mpv IPC socket.
	SocketPath string
	// OutputDir is where clips are saved; the source video's directory when empty.
	OutputDir string
	// PollRate is how many times per second the clip end boundary is checked.
	PollRate int
	// ChunkSize is how many bytes are read from ffmpeg at a time.
	ChunkSize int
	// LogFile receives log output in the TUI. Empty discards it.
	LogFile string
	// Journal is the SQLite path for the capture journal.
	Journal string
	// MpvBinary and FfmpegBinary name the external tools.
	MpvBinary    string
	FfmpegBinary string
	// Headless disables mpv's video and audio output.
	Headless bool
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		SocketPath:   mpv.DefaultSocketPath,
		PollRate:     capture.DefaultFrameRate,
		ChunkSize:    clip.DefaultChunkSize,
		Journal:      db.MemoryPath,
		MpvBinary:    "mpv",
		FfmpegBinary: "ffmpeg",
	}
}

// BindFlags registers the configuration as flags on fs.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.SocketPath, "socket", c.SocketPath, "mpv IPC socket path")
	fs.StringVarP(&c.OutputDir, "out", "o", c.OutputDir, "directory clips are saved to (default: next to the video)")
	fs.IntVar(&c.PollRate, "poll-rate", c.PollRate, "clip end checks per second")
	fs.IntVar(&c.ChunkSize, "chunk-size", c.ChunkSize, "bytes read from ffmpeg per chunk")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "write logs to this file")
	fs.StringVar(&c.Journal, "journal", c.Journal, "capture journal database (\":memory:\" keeps it in memory)")
	fs.StringVar(&c.MpvBinary, "mpv", c.MpvBinary, "mpv executable")
	fs.StringVar(&c.FfmpegBinary, "ffmpeg", c.FfmpegBinary, "ffmpeg executable")
	fs.BoolVar(&c.Headless, "headless", c.Headless, "run mpv without video or audio output")
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	var errs []error
	if c.SocketPath == "" {
		errs = append(errs, errors.New("socket path must not be empty"))
	}
	if c.PollRate < 1 || c.PollRate > 1000 {
		errs = append(errs, fmt.Errorf("poll rate must be between 1 and 1000, got %d", c.PollRate))
	}
	if c.ChunkSize < 1024 {
		errs = append(errs, fmt.Errorf("chunk size must be at least 1024 bytes, got %d", c.ChunkSize))
	}
	if c.MpvBinary == "" || c.FfmpegBinary == "" {
		errs = append(errs, errors.New("mpv and ffmpeg executables must be named"))
	}
	return errors.Join(errs...)
}

// FrameInterval is the time between boundary checks.
func (c Config) FrameInterval() time.Duration {
	if c.PollRate <= 0 {
		return time.Second / capture.DefaultFrameRate
	}
	return time.Second / time.Duration(c.PollRate)
}
