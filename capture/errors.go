package capture

import "errors"

// Kind classifies why a capture failed.
type Kind int

const (
	KindInvalidInput Kind = iota + 1
	KindCaptureUnsupported
	KindEncodingUnsupported
	KindRecording
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "InvalidInput"
	case KindCaptureUnsupported:
		return "CaptureUnsupported"
	case KindEncodingUnsupported:
		return "EncodingUnsupported"
	case KindRecording:
		return "RecordingError"
	default:
		return "Unknown"
	}
}

// Sentinels for errors.Is against a *Error of the matching kind.
var (
	ErrInvalidInput        = &Error{Kind: KindInvalidInput}
	ErrCaptureUnsupported  = &Error{Kind: KindCaptureUnsupported}
	ErrEncodingUnsupported = &Error{Kind: KindEncodingUnsupported}
	ErrRecording           = &Error{Kind: KindRecording}
)

// ErrSessionActive is returned when Capture is called while a session is running.
var ErrSessionActive = errors.New("capture: a clip is already being recorded")

// User-facing messages.
const (
	MsgNoSource            = "No video loaded to clip."
	MsgBadRange            = "Start time must be before end time."
	MsgCaptureUnsupported  = "Video stream capture is not supported by the player."
	MsgEncodingUnsupported = "WebM video recording is not supported by ffmpeg."
	MsgRecording           = "An error occurred during video clipping. Check the log for details."
	MsgClipFailed          = "Failed to clip video."
)

// Error is a failed capture. Message is shown to the user; Err carries the
// diagnostic cause, if any.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Err: cause}
}

// UserMessage returns the message to show for err. Errors that did not come
// from the engine get the generic clip failure message.
func UserMessage(err error) string {
	var ce *Error
	if !errors.As(err, &ce) {
		return MsgClipFailed
	}
	if ce.Message != "" {
		return ce.Message
	}
	switch ce.Kind {
	case KindCaptureUnsupported:
		return MsgCaptureUnsupported
	case KindEncodingUnsupported:
		return MsgEncodingUnsupported
	case KindRecording:
		return MsgRecording
	default:
		return MsgClipFailed
	}
}
