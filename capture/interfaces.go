package capture

// Player is the playback element the engine drives during a session.
type Player interface {
	Seek(seconds float64) error
	Play() error
	Pause() error
	Muted() (bool, error)
	SetMuted(muted bool) error
	// Position returns the current playback position in seconds.
	Position() (float64, error)
}

// StreamCapturer is implemented by players that can hand out a live stream
// of what they are playing. Players without it cannot be clipped, and any
// error from CaptureStream is reported as ErrCaptureUnsupported.
type StreamCapturer interface {
	CaptureStream() (Stream, error)
}

// Stream describes a live capture of a player: the media it is playing and
// the position the capture begins at.
type Stream struct {
	Path     string
	Position float64
}

// RecorderState reports whether a recorder is still producing data.
type RecorderState int

const (
	RecorderInactive RecorderState = iota
	RecorderRecording
)

func (s RecorderState) String() string {
	if s == RecorderRecording {
		return "recording"
	}
	return "inactive"
}

// RecorderHandlers receive a recorder's output. They may be called from any
// goroutine but never concurrently with each other for the same recorder.
type RecorderHandlers struct {
	OnData  func(chunk []byte)
	OnStop  func()
	OnError func(err error)
}

// Recorder encodes a captured stream and delivers the encoded bytes in chunks.
// After Stop, remaining data is flushed through OnData and then OnStop fires.
// Start and Stop never call the handlers before returning; ownership of each
// chunk passes to OnData.
type Recorder interface {
	Start() error
	Stop() error
	State() RecorderState
}

// Encoder reports which formats can be recorded and builds recorders for them.
type Encoder interface {
	IsTypeSupported(f Format) bool
	NewRecorder(s Stream, f Format, h RecorderHandlers) (Recorder, error)
}

// FrameHandle is a pending frame callback.
type FrameHandle interface {
	// Cancel prevents the callback from running if it has not started yet.
	Cancel()
}

// FrameScheduler runs a callback once, on the next rendered frame.
type FrameScheduler interface {
	RequestFrame(fn func()) FrameHandle
}
