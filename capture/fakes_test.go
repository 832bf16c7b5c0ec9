package capture

import (
	"errors"
	"sync"
)

// fakePlayer is a Player without stream capture.
type fakePlayer struct {
	mu       sync.Mutex
	muted    bool
	position float64
	seeks    []float64
	plays    int
	pauses   int
	seekErr  error
	playErr  error
	posErr   error
}

func (p *fakePlayer) Seek(seconds float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.seekErr != nil {
		return p.seekErr
	}
	p.seeks = append(p.seeks, seconds)
	p.position = seconds
	return nil
}

func (p *fakePlayer) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.playErr != nil {
		return p.playErr
	}
	p.plays++
	return nil
}

func (p *fakePlayer) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pauses++
	return nil
}

func (p *fakePlayer) Muted() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted, nil
}

func (p *fakePlayer) SetMuted(muted bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
	return nil
}

func (p *fakePlayer) Position() (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.position, p.posErr
}

func (p *fakePlayer) setPosition(pos float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.position = pos
}

func (p *fakePlayer) isMuted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// capturingPlayer adds stream capture to fakePlayer.
type capturingPlayer struct {
	fakePlayer
	path       string
	captureErr error
}

func (p *capturingPlayer) CaptureStream() (Stream, error) {
	if p.captureErr != nil {
		return Stream{}, p.captureErr
	}
	pos, _ := p.Position()
	return Stream{Path: p.path, Position: pos}, nil
}

type fakeEncoder struct {
	supported map[string]bool
	queried   []string
	created   []*fakeRecorder
	stream    Stream
	createErr error
	startErr  error
}

func (e *fakeEncoder) IsTypeSupported(f Format) bool {
	e.queried = append(e.queried, f.MIME())
	return e.supported[f.MIME()]
}

func (e *fakeEncoder) NewRecorder(s Stream, f Format, h RecorderHandlers) (Recorder, error) {
	if e.createErr != nil {
		return nil, e.createErr
	}
	e.stream = s
	r := &fakeRecorder{format: f, handlers: h, startErr: e.startErr}
	e.created = append(e.created, r)
	return r, nil
}

func (e *fakeEncoder) last() *fakeRecorder {
	if len(e.created) == 0 {
		return nil
	}
	return e.created[len(e.created)-1]
}

type fakeRecorder struct {
	mu       sync.Mutex
	format   Format
	handlers RecorderHandlers
	state    RecorderState
	starts   int
	stops    int
	startErr error
}

func (r *fakeRecorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.startErr != nil {
		return r.startErr
	}
	r.starts++
	r.state = RecorderRecording
	return nil
}

func (r *fakeRecorder) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stops++
	return nil
}

func (r *fakeRecorder) State() RecorderState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *fakeRecorder) stopCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stops
}

// deliver simulates the recorder emitting a chunk.
func (r *fakeRecorder) deliver(chunk []byte) {
	r.handlers.OnData(chunk)
}

// finish simulates the recorder's stop event.
func (r *fakeRecorder) finish() {
	r.mu.Lock()
	r.state = RecorderInactive
	r.mu.Unlock()
	r.handlers.OnStop()
}

// fail simulates a recorder-level error.
func (r *fakeRecorder) fail(err error) {
	r.mu.Lock()
	r.state = RecorderInactive
	r.mu.Unlock()
	r.handlers.OnError(err)
}

// fakeFrames queues frame callbacks until the test runs them.
type fakeFrames struct {
	mu      sync.Mutex
	pending []*fakeFrame
}

type fakeFrame struct {
	fn        func()
	cancelled bool
}

func (f *fakeFrame) Cancel() {
	f.cancelled = true
}

func (f *fakeFrames) RequestFrame(fn func()) FrameHandle {
	f.mu.Lock()
	defer f.mu.Unlock()
	fr := &fakeFrame{fn: fn}
	f.pending = append(f.pending, fr)
	return fr
}

// runFrame runs every callback scheduled so far and reports how many ran.
func (f *fakeFrames) runFrame() int {
	f.mu.Lock()
	due := f.pending
	f.pending = nil
	f.mu.Unlock()

	ran := 0
	for _, fr := range due {
		if fr.cancelled {
			continue
		}
		fr.fn()
		ran++
	}
	return ran
}

func (f *fakeFrames) armed() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, fr := range f.pending {
		if !fr.cancelled {
			n++
		}
	}
	return n
}

var errBoom = errors.New("boom")

// allFormats marks every default format as supported.
func allFormats() map[string]bool {
	m := make(map[string]bool)
	for _, f := range DefaultFormats {
		m[f.MIME()] = true
	}
	return m
}
