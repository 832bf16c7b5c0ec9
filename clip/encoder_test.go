package clip

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/user/video-clipper-cli/capture"
)

const encodersOutput = `Encoders:
 V..... = Video
 A..... = Audio
 ------
 V....D libvpx               libvpx VP8 (codec vp8)
 V....D libvpx-vp9           libvpx VP9 (codec vp9)
 V....D libx264              libx264 H.264 / AVC / MPEG-4 AVC / MPEG-4 part 10 (codec h264)
 A....D libopus              libopus Opus (codec opus)
 A..X.D opus                 Opus
`

const muxersOutput = `File formats:
 D. = Demuxing supported
 .E = Muxing supported
 --
  E matroska        Matroska
  E mp4             MP4 (MPEG-4 Part 14)
 DE ogg             Ogg
  E webm            WebM
`

func TestParseEncoders(t *testing.T) {
	got := ParseEncoders([]byte(encodersOutput))
	for _, name := range []string{"libvpx", "libvpx-vp9", "libx264", "libopus", "opus"} {
		if !got[name] {
			t.Errorf("Expected encoder %q to be parsed", name)
		}
	}
	if got["V....."] || got["Video"] {
		t.Errorf("Legend lines must not be parsed as encoders: %v", got)
	}
}

func TestParseMuxers(t *testing.T) {
	got := ParseMuxers([]byte(muxersOutput))
	for _, name := range []string{"matroska", "mp4", "ogg", "webm"} {
		if !got[name] {
			t.Errorf("Expected muxer %q to be parsed", name)
		}
	}
	if len(got) != 4 {
		t.Errorf("Expected 4 muxers, got %d: %v", len(got), got)
	}
}

func TestCapabilitiesSupports(t *testing.T) {
	vp8Only := Capabilities{
		Encoders: map[string]bool{"libvpx": true, "opus": true},
		Muxers:   map[string]bool{"webm": true},
	}

	tests := []struct {
		format   capture.Format
		expected bool
	}{
		{capture.DefaultFormats[0], false},
		{capture.DefaultFormats[1], true},
		{capture.DefaultFormats[2], true},
		{capture.Format{Container: "mp4"}, false},
	}
	for _, tt := range tests {
		if got := vp8Only.Supports(tt.format); got != tt.expected {
			t.Errorf("Supports(%s) = %v, expected %v", tt.format.MIME(), got, tt.expected)
		}
	}
}

func fakeProbe(calls *int) func(ctx context.Context, binary string, args ...string) ([]byte, error) {
	return func(ctx context.Context, binary string, args ...string) ([]byte, error) {
		*calls++
		if args[len(args)-1] == "-encoders" {
			return []byte(encodersOutput), nil
		}
		return []byte(muxersOutput), nil
	}
}

func TestEncoderProbesOnce(t *testing.T) {
	calls := 0
	e := NewEncoder(context.Background(), "sh")
	e.run = fakeProbe(&calls)

	for _, f := range capture.DefaultFormats {
		if !e.IsTypeSupported(f) {
			t.Errorf("Expected %s to be supported", f.MIME())
		}
	}
	if calls != 2 {
		t.Errorf("Expected 2 probe runs, got %d", calls)
	}

	got := e.SupportedFormats(capture.DefaultFormats)
	if len(got) != 3 {
		t.Errorf("Expected 3 supported formats, got %v", got)
	}
}

func TestEncoderProbeFailureSupportsNothing(t *testing.T) {
	e := NewEncoder(context.Background(), "sh")
	e.run = func(ctx context.Context, binary string, args ...string) ([]byte, error) {
		return nil, errors.New("exit status 1")
	}

	if e.IsTypeSupported(capture.DefaultFormats[2]) {
		t.Error("Expected nothing to be supported after a failed probe")
	}
	if _, err := e.NewRecorder(capture.Stream{Path: "/v.mp4"}, capture.DefaultFormats[2], capture.RecorderHandlers{}); err == nil {
		t.Error("Expected NewRecorder to fail after a failed probe")
	}
}

func TestEncoderMissingBinary(t *testing.T) {
	e := NewEncoder(context.Background(), "no-such-ffmpeg-binary-xyz")
	if _, err := e.Probe(); err == nil {
		t.Error("Expected probe to fail for a missing binary")
	}
}

func TestRecordArgs(t *testing.T) {
	caps := Capabilities{
		Encoders: ParseEncoders([]byte(encodersOutput)),
		Muxers:   ParseMuxers([]byte(muxersOutput)),
	}
	stream := capture.Stream{Path: "/videos/match.mp4", Position: 12.5}

	args, err := RecordArgs(stream, capture.DefaultFormats[0], caps)
	if err != nil {
		t.Fatalf("RecordArgs failed: %v", err)
	}
	expected := []string{
		"-hide_banner", "-loglevel", "error", "-re",
		"-ss", "12.500", "-i", "/videos/match.mp4",
		"-map", "0:v:0?", "-map", "0:a:0?",
		"-c:v", "libvpx-vp9", "-deadline", "realtime", "-cpu-used", "8",
		"-c:a", "libopus",
		"-f", "webm", "pipe:1",
	}
	if !reflect.DeepEqual(args, expected) {
		t.Errorf("Unexpected args:\n got %v\nwant %v", args, expected)
	}

	containerOnly, err := RecordArgs(stream, capture.DefaultFormats[2], caps)
	if err != nil {
		t.Fatalf("RecordArgs failed: %v", err)
	}
	for _, a := range containerOnly {
		if a == "-c:v" || a == "-c:a" {
			t.Errorf("Container-only format must leave codecs to the muxer: %v", containerOnly)
		}
	}

	if _, err := RecordArgs(capture.Stream{}, capture.DefaultFormats[2], caps); err == nil {
		t.Error("Expected error for stream without path")
	}
}

func TestRecordArgsNativeOpus(t *testing.T) {
	caps := Capabilities{
		Encoders: map[string]bool{"libvpx": true, "opus": true},
		Muxers:   map[string]bool{"webm": true},
	}
	args, err := RecordArgs(capture.Stream{Path: "/v.mkv"}, capture.DefaultFormats[1], caps)
	if err != nil {
		t.Fatalf("RecordArgs failed: %v", err)
	}
	joined := strings.Join(args, " ")
	if want := "-c:a opus -strict -2"; !strings.Contains(joined, want) {
		t.Errorf("Expected %q in %q", want, joined)
	}
}
