package capture

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// State is the engine's position in the capture state machine.
type State int

const (
	StateIdle State = iota
	StatePreparing
	StateRecording
	StateFinalizing
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePreparing:
		return "preparing"
	case StateRecording:
		return "recording"
	case StateFinalizing:
		return "finalizing"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Busy reports whether a session is in flight.
func (s State) Busy() bool {
	return s == StatePreparing || s == StateRecording || s == StateFinalizing
}

// Event is a state change of one capture session. Artifact is set when State
// is StateReady, Err when State is StateFailed. Failures rejected before a
// session exists have an empty SessionID.
type Event struct {
	SessionID string
	State     State
	Target    Target
	Artifact  *Artifact
	Err       error
}

// session is one invocation of Capture. It is dropped when it reaches a
// terminal state; callbacks holding a dropped session are ignored.
type session struct {
	id       string
	target   Target
	format   Format
	chunks   [][]byte
	state    State
	recorder Recorder
	poll     FrameHandle

	priorMuted    bool
	mutedTouched  bool
	stopRequested bool
}

// Engine runs capture sessions against a single player.
type Engine struct {
	player  Player
	encoder Encoder
	frames  FrameScheduler
	formats []Format
	newID   func() string

	mu        sync.Mutex
	state     State
	session   *session
	observers []func(Event)
}

// Option configures an Engine.
type Option func(*Engine)

// WithFormats replaces the negotiation order.
func WithFormats(formats []Format) Option {
	return func(e *Engine) {
		e.formats = formats
	}
}

// WithSessionIDs replaces the session ID generator.
func WithSessionIDs(fn func() string) Option {
	return func(e *Engine) {
		e.newID = fn
	}
}

// NewEngine creates an idle engine.
func NewEngine(player Player, encoder Encoder, frames FrameScheduler, opts ...Option) *Engine {
	e := &Engine{
		player:  player,
		encoder: encoder,
		frames:  frames,
		formats: DefaultFormats,
		newID:   newSessionID,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Observe registers fn to receive every state change. Observers are called
// outside the engine lock and may call back into the engine.
func (e *Engine) Observe(fn func(Event)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observers = append(e.observers, fn)
}

// State returns the current engine state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Capture starts recording target. A nil target means no source is loaded.
// Failures detected while preparing are returned and also reported as a
// StateFailed event; later outcomes arrive only as events. Capture returns
// ErrSessionActive without touching the running session if one is in flight.
func (e *Engine) Capture(target *Target) error {
	e.mu.Lock()
	if e.state.Busy() {
		e.mu.Unlock()
		return ErrSessionActive
	}

	if target == nil {
		ev := e.failLocked(nil, newError(KindInvalidInput, MsgNoSource, nil))
		e.mu.Unlock()
		e.emit(ev)
		return ev.Err
	}
	if target.Range.Start >= target.Range.End {
		ev := e.failLocked(nil, newError(KindInvalidInput, MsgBadRange,
			fmt.Errorf("start %.3f >= end %.3f", target.Range.Start, target.Range.End)))
		e.mu.Unlock()
		e.emit(ev)
		return ev.Err
	}

	s := &session{id: e.newID(), target: *target, state: StatePreparing}
	e.session = s
	e.state = StatePreparing
	events := []Event{{SessionID: s.id, State: StatePreparing, Target: s.target}}

	if err := e.prepareLocked(s); err != nil {
		events = append(events, e.failLocked(s, err))
		e.mu.Unlock()
		e.emit(events...)
		return err
	}

	events = append(events, Event{SessionID: s.id, State: StateRecording, Target: s.target})
	e.mu.Unlock()
	e.emit(events...)
	return nil
}

// prepareLocked takes s from Preparing to Recording.
func (e *Engine) prepareLocked(s *session) error {
	start := s.target.Range.Start

	if err := e.player.Seek(start); err != nil {
		return newError(KindRecording, MsgRecording, fmt.Errorf("seek to %.3f: %w", start, err))
	}

	muted, err := e.player.Muted()
	if err != nil {
		return newError(KindRecording, MsgRecording, fmt.Errorf("read mute: %w", err))
	}
	s.priorMuted = muted
	if err := e.player.SetMuted(true); err != nil {
		return newError(KindRecording, MsgRecording, fmt.Errorf("mute preview: %w", err))
	}
	s.mutedTouched = true

	capturer, ok := e.player.(StreamCapturer)
	if !ok {
		return newError(KindCaptureUnsupported, MsgCaptureUnsupported, nil)
	}
	stream, err := capturer.CaptureStream()
	if err != nil {
		return newError(KindCaptureUnsupported, MsgCaptureUnsupported, err)
	}

	format, ok := Negotiate(e.formats, e.encoder.IsTypeSupported)
	if !ok {
		return newError(KindEncodingUnsupported, MsgEncodingUnsupported, nil)
	}
	s.format = format

	rec, err := e.encoder.NewRecorder(stream, format, RecorderHandlers{
		OnData:  func(chunk []byte) { e.handleData(s, chunk) },
		OnStop:  func() { e.handleStop(s) },
		OnError: func(err error) { e.handleError(s, err) },
	})
	if err != nil {
		return newError(KindRecording, MsgRecording, fmt.Errorf("create recorder: %w", err))
	}
	s.recorder = rec

	if err := rec.Start(); err != nil {
		return newError(KindRecording, MsgRecording, fmt.Errorf("start recorder: %w", err))
	}
	if err := e.player.Play(); err != nil {
		s.stopRequested = true
		if stopErr := rec.Stop(); stopErr != nil {
			log.Printf("capture %s: stop recorder after failed play: %v", s.id, stopErr)
		}
		return newError(KindRecording, MsgRecording, fmt.Errorf("play: %w", err))
	}

	s.state = StateRecording
	e.state = StateRecording
	s.poll = e.frames.RequestFrame(func() { e.checkBoundary(s) })
	log.Printf("capture %s: recording %s from %.3f to %.3f", s.id, format.MIME(), start, s.target.Range.End)
	return nil
}

// checkBoundary is the per-frame poll. It re-arms itself only while s is the
// current session and its recorder is still recording.
func (e *Engine) checkBoundary(s *session) {
	e.mu.Lock()
	if e.session != s || s.state != StateRecording || s.stopRequested ||
		s.recorder.State() != RecorderRecording {
		s.poll = nil
		e.mu.Unlock()
		return
	}

	pos, err := e.player.Position()
	if err != nil {
		log.Printf("capture %s: read position: %v", s.id, err)
	}
	if err != nil || pos < s.target.Range.End {
		s.poll = e.frames.RequestFrame(func() { e.checkBoundary(s) })
		e.mu.Unlock()
		return
	}

	s.stopRequested = true
	s.poll = nil
	rec := s.recorder
	e.mu.Unlock()

	if err := rec.Stop(); err != nil {
		log.Printf("capture %s: stop recorder: %v", s.id, err)
	}
	if err := e.player.Pause(); err != nil {
		log.Printf("capture %s: pause: %v", s.id, err)
	}
}

func (e *Engine) handleData(s *session, chunk []byte) {
	if len(chunk) == 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session != s || s.state != StateRecording {
		return
	}
	s.chunks = append(s.chunks, chunk)
}

func (e *Engine) handleStop(s *session) {
	e.mu.Lock()
	if e.session != s || s.state != StateRecording {
		e.mu.Unlock()
		return
	}

	s.state = StateFinalizing
	e.state = StateFinalizing
	e.cancelPollLocked(s)
	events := []Event{{SessionID: s.id, State: StateFinalizing, Target: s.target}}

	artifact := newArtifact(s)
	e.restoreMutedLocked(s)
	s.chunks = nil
	s.state = StateReady
	e.state = StateReady
	e.session = nil
	events = append(events, Event{SessionID: s.id, State: StateReady, Target: s.target, Artifact: artifact})
	e.mu.Unlock()

	log.Printf("capture %s: clip ready, %d bytes in %d chunks", s.id, len(artifact.Data), artifact.Chunks)
	e.emit(events...)
}

func (e *Engine) handleError(s *session, err error) {
	e.mu.Lock()
	if e.session != s || s.state != StateRecording {
		e.mu.Unlock()
		return
	}
	ev := e.failLocked(s, newError(KindRecording, MsgRecording, err))
	e.mu.Unlock()
	e.emit(ev)
}

// Close abandons any session in flight: the poll is cancelled, the recorder
// stopped and the preview's mute flag restored. Used on teardown only.
func (e *Engine) Close() {
	e.mu.Lock()
	s := e.session
	if s == nil || !s.state.Busy() {
		e.mu.Unlock()
		return
	}
	e.cancelPollLocked(s)
	e.restoreMutedLocked(s)
	s.chunks = nil
	s.state = StateIdle
	e.session = nil
	e.state = StateIdle
	rec := s.recorder
	e.mu.Unlock()

	if rec != nil && rec.State() == RecorderRecording {
		if err := rec.Stop(); err != nil {
			log.Printf("capture %s: stop recorder on close: %v", s.id, err)
		}
	}
}

// failLocked moves the engine, and s if given, to StateFailed.
func (e *Engine) failLocked(s *session, err error) Event {
	id := ""
	var target Target
	if s != nil {
		id = s.id
		target = s.target
		e.cancelPollLocked(s)
		e.restoreMutedLocked(s)
		s.chunks = nil
		s.state = StateFailed
		if e.session == s {
			e.session = nil
		}
	}
	e.state = StateFailed

	if ce, ok := err.(*Error); ok && ce.Err != nil {
		log.Printf("capture %s: %s: %v", id, ce.Kind, ce.Err)
	} else {
		log.Printf("capture %s: %v", id, err)
	}
	return Event{SessionID: id, State: StateFailed, Target: target, Err: err}
}

func (e *Engine) cancelPollLocked(s *session) {
	if s.poll != nil {
		s.poll.Cancel()
		s.poll = nil
	}
}

func (e *Engine) restoreMutedLocked(s *session) {
	if !s.mutedTouched {
		return
	}
	s.mutedTouched = false
	if err := e.player.SetMuted(s.priorMuted); err != nil {
		log.Printf("capture %s: restore mute: %v", s.id, err)
	}
}

func (e *Engine) emit(events ...Event) {
	e.mu.Lock()
	observers := make([]func(Event), len(e.observers))
	copy(observers, e.observers)
	e.mu.Unlock()

	for _, ev := range events {
		for _, fn := range observers {
			fn(ev)
		}
	}
}

// newSessionID returns a time-ordered UUID v7, or a timestamp if that fails.
func newSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf("clip-%d", time.Now().UnixNano())
	}
	return id.String()
}
