// Package result holds the outcome of the latest clip attempt: a playable,
// saveable clip or the message of the failure.
package result

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/user/video-clipper-cli/capture"
	"github.com/user/video-clipper-cli/pkg/cliputil"
	"github.com/user/video-clipper-cli/pkg/timeutil"
)

// ErrNoClip is returned by Save and PreviewPath when no clip is ready.
var ErrNoClip = errors.New("no clip to save")

// Presenter publishes finished clips. Each published clip is written to a
// preview file that stays valid until a newer clip replaces it or Reset.
type Presenter struct {
	tempDir string

	mu       sync.Mutex
	artifact *capture.Artifact
	preview  string
	failure  string
}

// NewPresenter writes preview files under tempDir, or the system temp
// directory when tempDir is empty.
func NewPresenter(tempDir string) *Presenter {
	return &Presenter{tempDir: tempDir}
}

// BeginAttempt clears the previous failure message. A previous clip stays
// available until the new attempt succeeds.
func (p *Presenter) BeginAttempt() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failure = ""
}

// Publish makes a as the current clip and releases the one it replaces.
func (p *Presenter) Publish(a *capture.Artifact) error {
	if a == nil {
		return errors.New("publish: nil artifact")
	}

	f, err := os.CreateTemp(p.tempDir, "clip-*."+a.Format.Extension)
	if err != nil {
		return fmt.Errorf("create preview file: %w", err)
	}
	if _, err := f.Write(a.Data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return fmt.Errorf("write preview file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return fmt.Errorf("close preview file: %w", err)
	}

	p.mu.Lock()
	old := p.preview
	p.artifact = a
	p.preview = f.Name()
	p.failure = ""
	p.mu.Unlock()

	release(old)
	return nil
}

// Fail records err as the outcome of the current attempt.
func (p *Presenter) Fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failure = capture.UserMessage(err)
}

// Handle applies a capture event: a new attempt clears the last failure, a
// ready clip is published and a failure is recorded. It is meant to be
// registered with Engine.Observe.
func (p *Presenter) Handle(ev capture.Event) {
	switch ev.State {
	case capture.StatePreparing:
		p.BeginAttempt()
	case capture.StateReady:
		if err := p.Publish(ev.Artifact); err != nil {
			log.Printf("publish clip %s: %v", ev.SessionID, err)
			p.Fail(err)
		}
	case capture.StateFailed:
		p.Fail(ev.Err)
	}
}

// Reset drops the current clip and failure, as when a new source is loaded.
func (p *Presenter) Reset() {
	p.mu.Lock()
	old := p.preview
	p.artifact = nil
	p.preview = ""
	p.failure = ""
	p.mu.Unlock()

	release(old)
}

// Close releases everything the presenter holds.
func (p *Presenter) Close() {
	p.Reset()
}

// Artifact returns the current clip, or nil.
func (p *Presenter) Artifact() *capture.Artifact {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.artifact
}

// Failure returns the message of the last failed attempt, or "".
func (p *Presenter) Failure() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.failure
}

// PreviewPath returns the file the current clip can be played from.
func (p *Presenter) PreviewPath() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.artifact == nil {
		return "", ErrNoClip
	}
	return p.preview, nil
}

// Save writes the current clip into dir under its download name, adding a
// numeric suffix rather than overwriting an existing file.
func (p *Presenter) Save(dir string) (string, error) {
	a := p.Artifact()
	if a == nil {
		return "", ErrNoClip
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}

	path, err := cliputil.UniquePath(dir, a.Filename)
	if err != nil {
		return "", fmt.Errorf("save clip: %w", err)
	}
	if err := os.WriteFile(path, a.Data, 0644); err != nil {
		return "", fmt.Errorf("save clip: %w", err)
	}
	log.Printf("saved clip %s (%s)", path, humanize.Bytes(uint64(a.Size())))
	return path, nil
}

// Summary describes the current clip in one line, or "" if there is none.
func (p *Presenter) Summary() string {
	a := p.Artifact()
	if a == nil {
		return ""
	}
	return Describe(a)
}

// Describe formats a for display: name, size, range and format.
func Describe(a *capture.Artifact) string {
	return fmt.Sprintf("%s  %s  %s - %s  %s",
		a.Filename,
		humanize.Bytes(uint64(a.Size())),
		timeutil.FormatClock(a.Range.Start),
		timeutil.FormatClock(a.Range.End),
		a.Format.MIME(),
	)
}

func release(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("release preview %s: %v", path, err)
	}
}
