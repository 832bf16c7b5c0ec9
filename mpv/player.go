package mpv

import (
	"errors"
	"fmt"
	"sync"

	"github.com/user/video-clipper-cli/capture"
	"github.com/user/video-clipper-cli/source"
)

// ErrNothingLoaded is returned by CaptureStream when mpv has no file.
var ErrNothingLoaded = errors.New("mpv: no file loaded")

// Player drives an mpv instance as the clip preview. It satisfies
// capture.Player, capture.StreamCapturer and source.Opener.
type Player struct {
	client *Client

	mu         sync.Mutex
	path       string
	generation int
}

// NewPlayer wraps a connected client.
func NewPlayer(client *Client) *Player {
	return &Player{client: client}
}

// Client returns the underlying IPC client.
func (p *Player) Client() *Client {
	return p.client
}

// Open loads path paused, replacing whatever was playing.
func (p *Player) Open(path string) (source.Handle, error) {
	if err := p.client.LoadFile(path); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if err := p.client.SetPaused(true); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.generation++
	p.path = path
	return &loadHandle{player: p, generation: p.generation}, nil
}

// Path returns the file most recently opened, or "" after it was released.
func (p *Player) Path() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.path
}

func (p *Player) Seek(seconds float64) error {
	return p.client.Seek(seconds)
}

func (p *Player) Play() error {
	return p.client.SetPaused(false)
}

func (p *Player) Pause() error {
	return p.client.SetPaused(true)
}

func (p *Player) Paused() (bool, error) {
	return p.client.GetPaused()
}

func (p *Player) TogglePause() error {
	return p.client.TogglePause()
}

// SeekRelative moves the playhead by offset seconds.
func (p *Player) SeekRelative(offset float64) error {
	return p.client.SeekRelative(offset)
}

func (p *Player) Muted() (bool, error) {
	return p.client.GetMute()
}

func (p *Player) SetMuted(muted bool) error {
	return p.client.SetMute(muted)
}

func (p *Player) Position() (float64, error) {
	return p.client.GetTimePos()
}

// Duration reports the duration of the file most recently opened. It returns
// ErrPropertyUnavailable until mpv has switched to that file and read its
// metadata, so a previous file's duration is never reported for a new one.
func (p *Player) Duration() (float64, error) {
	want := p.Path()
	if want != "" && !p.playing(want) {
		return 0, ErrPropertyUnavailable
	}
	d, err := p.client.GetDuration()
	if err != nil {
		return 0, err
	}
	if want != "" && !p.playing(want) {
		return 0, ErrPropertyUnavailable
	}
	return d, nil
}

// playing reports whether mpv's current file is path.
func (p *Player) playing(path string) bool {
	loaded, err := p.client.GetPath()
	return err == nil && loaded == path
}

// CaptureStream hands the recorder the file mpv is playing and the current
// playhead, so the recorder starts where the preview does.
func (p *Player) CaptureStream() (capture.Stream, error) {
	path := p.Path()
	if path == "" {
		loaded, err := p.client.GetPath()
		if err != nil {
			if errors.Is(err, ErrPropertyUnavailable) {
				return capture.Stream{}, ErrNothingLoaded
			}
			return capture.Stream{}, err
		}
		path = loaded
	}
	if path == "" {
		return capture.Stream{}, ErrNothingLoaded
	}

	pos, err := p.client.GetTimePos()
	if err != nil {
		return capture.Stream{}, fmt.Errorf("read position: %w", err)
	}
	return capture.Stream{Path: path, Position: pos}, nil
}

// loadHandle releases one Open. Releasing a handle that has been superseded
// by a later Open is a no-op, so the newer file keeps playing.
type loadHandle struct {
	player     *Player
	generation int
	once       sync.Once
}

func (h *loadHandle) Release() error {
	var err error
	h.once.Do(func() {
		p := h.player
		p.mu.Lock()
		current := p.generation == h.generation
		if current {
			p.path = ""
		}
		p.mu.Unlock()
		if current {
			err = p.client.Stop()
		}
	})
	return err
}
