// Package clip records capture sessions with ffmpeg. The encoder probes the
// local ffmpeg build for the codecs a format needs and each recorder runs one
// ffmpeg process that streams WebM to stdout.
package clip

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"
	"sync"

	"github.com/user/video-clipper-cli/capture"
	"github.com/user/video-clipper-cli/deps"
)

// DefaultChunkSize is how many bytes a recorder reads from ffmpeg per chunk.
const DefaultChunkSize = 64 * 1024

// codecEncoders lists the ffmpeg encoders able to produce each codec, in
// order of preference.
var codecEncoders = map[string][]string{
	"vp9":  {"libvpx-vp9"},
	"vp8":  {"libvpx"},
	"opus": {"libopus", "opus"},
}

// Capabilities is what the local ffmpeg can write.
type Capabilities struct {
	Encoders map[string]bool
	Muxers   map[string]bool
}

// EncoderFor returns the ffmpeg encoder used for codec, if any is available.
func (c Capabilities) EncoderFor(codec string) (string, bool) {
	for _, name := range codecEncoders[codec] {
		if c.Encoders[name] {
			return name, true
		}
	}
	return "", false
}

// Supports reports whether every part of f can be written.
func (c Capabilities) Supports(f capture.Format) bool {
	if !c.Muxers[f.Container] {
		return false
	}
	if f.Video != "" {
		if _, ok := c.EncoderFor(f.Video); !ok {
			return false
		}
	}
	if f.Audio != "" {
		if _, ok := c.EncoderFor(f.Audio); !ok {
			return false
		}
	}
	return true
}

// Encoder implements capture.Encoder on top of the ffmpeg binary.
type Encoder struct {
	ctx       context.Context
	binary    string
	chunkSize int
	run       func(ctx context.Context, binary string, args ...string) ([]byte, error)

	once     sync.Once
	caps     Capabilities
	probeErr error
}

// NewEncoder creates an encoder. Recorders it creates are killed when ctx is
// cancelled. An empty binary means "ffmpeg".
func NewEncoder(ctx context.Context, binary string) *Encoder {
	if binary == "" {
		binary = "ffmpeg"
	}
	return &Encoder{
		ctx:       ctx,
		binary:    binary,
		chunkSize: DefaultChunkSize,
		run:       runOutput,
	}
}

// SetChunkSize changes how many bytes recorders read at a time.
func (e *Encoder) SetChunkSize(n int) {
	if n > 0 {
		e.chunkSize = n
	}
}

func runOutput(ctx context.Context, binary string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, binary, args...).Output()
}

// Probe asks ffmpeg once for its encoders and muxers and caches the answer.
func (e *Encoder) Probe() (Capabilities, error) {
	e.once.Do(func() {
		if err := deps.CheckFfmpeg(e.binary); err != nil {
			e.probeErr = err
			return
		}
		encOut, err := e.run(e.ctx, e.binary, "-hide_banner", "-encoders")
		if err != nil {
			e.probeErr = fmt.Errorf("ffmpeg -encoders: %w", err)
			return
		}
		muxOut, err := e.run(e.ctx, e.binary, "-hide_banner", "-muxers")
		if err != nil {
			e.probeErr = fmt.Errorf("ffmpeg -muxers: %w", err)
			return
		}
		e.caps = Capabilities{
			Encoders: ParseEncoders(encOut),
			Muxers:   ParseMuxers(muxOut),
		}
	})
	return e.caps, e.probeErr
}

// IsTypeSupported reports whether ffmpeg can record f. A failed probe
// supports nothing.
func (e *Encoder) IsTypeSupported(f capture.Format) bool {
	caps, err := e.Probe()
	if err != nil {
		return false
	}
	return caps.Supports(f)
}

// NewRecorder prepares, but does not start, an ffmpeg recorder for s.
func (e *Encoder) NewRecorder(s capture.Stream, f capture.Format, h capture.RecorderHandlers) (capture.Recorder, error) {
	caps, err := e.Probe()
	if err != nil {
		return nil, err
	}
	if !caps.Supports(f) {
		return nil, fmt.Errorf("ffmpeg cannot write %s", f.MIME())
	}
	args, err := RecordArgs(s, f, caps)
	if err != nil {
		return nil, err
	}
	return newRecorder(e.ctx, e.binary, args, e.chunkSize, h), nil
}

// RecordArgs builds the ffmpeg command line that streams s, starting at its
// position in real time, as f to stdout.
func RecordArgs(s capture.Stream, f capture.Format, caps Capabilities) ([]string, error) {
	if s.Path == "" {
		return nil, fmt.Errorf("stream has no media path")
	}
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-re",
		"-ss", fmt.Sprintf("%.3f", s.Position),
		"-i", s.Path,
		"-map", "0:v:0?",
		"-map", "0:a:0?",
	}

	if f.Video != "" {
		enc, ok := caps.EncoderFor(f.Video)
		if !ok {
			return nil, fmt.Errorf("no encoder for %s", f.Video)
		}
		args = append(args, "-c:v", enc, "-deadline", "realtime", "-cpu-used", "8")
	}
	if f.Audio != "" {
		enc, ok := caps.EncoderFor(f.Audio)
		if !ok {
			return nil, fmt.Errorf("no encoder for %s", f.Audio)
		}
		args = append(args, "-c:a", enc)
		if enc == "opus" {
			// ffmpeg's native opus encoder is still marked experimental.
			args = append(args, "-strict", "-2")
		}
	}

	return append(args, "-f", f.Container, "pipe:1"), nil
}

// ParseEncoders reads the output of `ffmpeg -encoders`.
func ParseEncoders(out []byte) map[string]bool {
	return parseTable(out, func(flags string) bool { return true })
}

// ParseMuxers reads the output of `ffmpeg -muxers`, keeping muxers only.
func ParseMuxers(out []byte) map[string]bool {
	return parseTable(out, func(flags string) bool { return strings.Contains(flags, "E") })
}

// parseTable handles the "flags name description" tables ffmpeg prints after
// a dashed separator line.
func parseTable(out []byte, keep func(flags string) bool) map[string]bool {
	names := make(map[string]bool)
	scanner := bufio.NewScanner(bytes.NewReader(out))
	inTable := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !inTable {
			if strings.HasPrefix(line, "--") {
				inTable = true
			}
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 || !keep(fields[0]) {
			continue
		}
		for _, name := range strings.Split(fields[1], ",") {
			names[name] = true
		}
	}
	return names
}

// SupportedFormats lists which of formats ffmpeg can record, for diagnostics.
func (e *Encoder) SupportedFormats(formats []capture.Format) []string {
	var out []string
	for _, f := range formats {
		if e.IsTypeSupported(f) {
			out = append(out, f.MIME())
		}
	}
	sort.Strings(out)
	return out
}
