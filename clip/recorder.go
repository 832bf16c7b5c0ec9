package clip

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/user/video-clipper-cli/capture"
)

// stopGrace is how long ffmpeg gets to flush after "q" before it is killed.
const stopGrace = 5 * time.Second

// Recorder runs one ffmpeg process and hands its stdout to the capture
// engine in chunks.
type Recorder struct {
	ctx       context.Context
	binary    string
	args      []string
	chunkSize int
	handlers  capture.RecorderHandlers

	mu       sync.Mutex
	state    capture.RecorderState
	started  bool
	stopping bool
	cmd      *exec.Cmd
	stdin    io.WriteCloser
	stderr   *tailBuffer
	killer   *time.Timer
}

func newRecorder(ctx context.Context, binary string, args []string, chunkSize int, h capture.RecorderHandlers) *Recorder {
	if ctx == nil {
		ctx = context.Background()
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Recorder{
		ctx:       ctx,
		binary:    binary,
		args:      args,
		chunkSize: chunkSize,
		handlers:  h,
		stderr:    &tailBuffer{max: 2048},
	}
}

// Start launches ffmpeg. Output is delivered from a background goroutine.
func (r *Recorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return errors.New("recorder already started")
	}

	cmd := exec.CommandContext(r.ctx, r.binary, r.args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe: %w", err)
	}
	cmd.Stderr = r.stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	r.cmd = cmd
	r.stdin = stdin
	r.started = true
	r.state = capture.RecorderRecording
	log.Printf("ffmpeg recorder started (pid %d): %s", cmd.Process.Pid, strings.Join(r.args, " "))

	go r.pump(stdout)
	return nil
}

// Stop asks ffmpeg to finish by sending "q" on stdin. The remaining output is
// still delivered, followed by OnStop.
func (r *Recorder) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != capture.RecorderRecording || r.stopping {
		return nil
	}
	r.stopping = true

	proc := r.cmd.Process
	r.killer = time.AfterFunc(stopGrace, func() {
		log.Printf("ffmpeg recorder (pid %d) did not stop, killing", proc.Pid)
		_ = proc.Kill()
	})

	_, err := io.WriteString(r.stdin, "q\n")
	closeErr := r.stdin.Close()
	if err != nil {
		// ffmpeg already gone; pump will report its exit.
		return nil
	}
	return closeErr
}

// State reports whether ffmpeg is still running.
func (r *Recorder) State() capture.RecorderState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Recorder) pump(stdout io.Reader) {
	buf := make([]byte, r.chunkSize)
	for {
		n, err := stdout.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			r.handlers.OnData(chunk)
		}
		if err != nil {
			break
		}
	}

	waitErr := r.cmd.Wait()

	r.mu.Lock()
	r.state = capture.RecorderInactive
	stopping := r.stopping
	if r.killer != nil {
		r.killer.Stop()
	}
	r.mu.Unlock()

	// A requested stop ends cleanly even if ffmpeg had to be killed: the data
	// written so far is a playable WebM prefix.
	if waitErr != nil && !stopping {
		tail := strings.TrimSpace(r.stderr.String())
		if tail != "" {
			r.handlers.OnError(fmt.Errorf("ffmpeg: %w: %s", waitErr, tail))
		} else {
			r.handlers.OnError(fmt.Errorf("ffmpeg: %w", waitErr))
		}
		return
	}
	if waitErr != nil {
		log.Printf("ffmpeg recorder exited after stop: %v", waitErr)
	}
	r.handlers.OnStop()
}

// tailBuffer keeps the last max bytes written to it.
type tailBuffer struct {
	mu  sync.Mutex
	max int
	buf []byte
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.max; over > 0 {
		t.buf = append(t.buf[:0], t.buf[over:]...)
	}
	return len(p), nil
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return string(t.buf)
}
