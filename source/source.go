// Package source accepts the video file a clip is cut from.
package source

import (
	"errors"
	"fmt"
	"log"
	"math"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/user/video-clipper-cli/selection"
)

// MsgInvalidType is shown when the chosen file is not a video.
const MsgInvalidType = "Invalid file type. Please upload a video file."

// ErrInvalidInput matches every *InputError.
var ErrInvalidInput = errors.New("source: invalid input")

// InputError is a rejected candidate file.
type InputError struct {
	Path    string
	MIME    string
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Handle is a playable reference to a loaded file.
type Handle interface {
	Release() error
}

// Opener makes a file playable.
type Opener interface {
	Open(path string) (Handle, error)
}

// Source is an accepted video file. Its duration is unknown until the player
// reports it; Range stays nil until then.
type Source struct {
	Path  string
	Name  string
	MIME  string
	Size  int64
	Range *selection.Range

	handle   Handle
	duration float64
	known    bool
}

// SetDuration records the duration reported by the player. Only the first
// report counts: it creates Range over the whole file. Later reports are
// ignored so a drifting estimate never discards the user's selection.
// It returns true when the range was created.
func (s *Source) SetDuration(d float64) bool {
	if d <= 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return false
	}
	if s.known {
		return false
	}
	s.duration = d
	s.known = true
	r := selection.New(d)
	s.Range = &r
	return true
}

// Duration returns the reported duration and whether one has arrived.
func (s *Source) Duration() (float64, bool) {
	return s.duration, s.known
}

// DurationKnown reports whether range selection and capture can be enabled.
func (s *Source) DurationKnown() bool {
	return s.known
}

// Selector holds the current source and swaps it on accept.
type Selector struct {
	opener Opener

	mu       sync.Mutex
	current  *Source
	onAccept []func(*Source)
}

// NewSelector creates a selector that opens accepted files with opener.
func NewSelector(opener Opener) *Selector {
	return &Selector{opener: opener}
}

// OnAccept registers fn to run after a new source replaces the old one.
func (s *Selector) OnAccept(fn func(*Source)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onAccept = append(s.onAccept, fn)
}

// Current returns the loaded source, or nil.
func (s *Selector) Current() *Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Accept validates path as a video file and makes it the current source.
// A rejected path leaves the current source untouched.
func (s *Selector) Accept(path string) (*Source, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, &InputError{Path: path, Message: fmt.Sprintf("failed to resolve path: %v", err)}
	}

	info, err := os.Stat(absPath)
	if os.IsNotExist(err) {
		return nil, &InputError{Path: absPath, Message: fmt.Sprintf("video file not found: %s", absPath)}
	}
	if err != nil {
		return nil, &InputError{Path: absPath, Message: fmt.Sprintf("failed to access video file: %v", err)}
	}
	if info.IsDir() {
		return nil, &InputError{Path: absPath, Message: fmt.Sprintf("path is a directory, not a video file: %s", absPath)}
	}

	mediaType := DetectMIME(absPath)
	if !IsVideo(mediaType) {
		return nil, &InputError{Path: absPath, MIME: mediaType, Message: MsgInvalidType}
	}

	handle, err := s.opener.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(absPath), err)
	}

	src := &Source{
		Path:   absPath,
		Name:   filepath.Base(absPath),
		MIME:   mediaType,
		Size:   info.Size(),
		handle: handle,
	}

	s.mu.Lock()
	prev := s.current
	s.current = src
	hooks := make([]func(*Source), len(s.onAccept))
	copy(hooks, s.onAccept)
	s.mu.Unlock()

	if prev != nil && prev.handle != nil {
		if err := prev.handle.Release(); err != nil {
			log.Printf("release %s: %v", prev.Name, err)
		}
	}
	for _, fn := range hooks {
		fn(src)
	}
	return src, nil
}

// Close releases the current source.
func (s *Selector) Close() error {
	s.mu.Lock()
	src := s.current
	s.current = nil
	s.mu.Unlock()

	if src == nil || src.handle == nil {
		return nil
	}
	return src.handle.Release()
}

// videoExtensions covers containers that system mime tables often lack.
var videoExtensions = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/x-m4v",
	".mov":  "video/quicktime",
	".webm": "video/webm",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
	".wmv":  "video/x-ms-wmv",
	".flv":  "video/x-flv",
	".mpg":  "video/mpeg",
	".mpeg": "video/mpeg",
	".ts":   "video/mp2t",
	".3gp":  "video/3gpp",
	".ogv":  "video/ogg",
}

// VideoExtensions lists the extensions a file picker should offer.
func VideoExtensions() []string {
	exts := make([]string, 0, len(videoExtensions))
	for ext := range videoExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// DetectMIME returns the media type of a file: by extension first, the way a
// file picker declares it, and by content when the extension says nothing.
func DetectMIME(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if t, ok := videoExtensions[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return ""
	}
	return mt.String()
}

// IsVideo reports whether a media type is video/*.
func IsVideo(mediaType string) bool {
	return strings.HasPrefix(strings.ToLower(mediaType), "video/")
}

// CleanDroppedPath turns text pasted by a terminal when a file is dropped
// onto it into a plain path: surrounding quotes, a file:// prefix and
// backslash-escaped spaces are removed.
func CleanDroppedPath(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		s = s[1 : len(s)-1]
	}
	if strings.HasPrefix(s, "file://") {
		if u, err := url.Parse(s); err == nil {
			return u.Path
		}
		s = strings.TrimPrefix(s, "file://")
	}
	return strings.ReplaceAll(s, `\ `, " ")
}
