package mpv

import (
	"os"
	"os/exec"

	"github.com/user/video-clipper-cli/deps"
)

// LaunchOptions configure the mpv process that acts as the clip player.
type LaunchOptions struct {
	// Binary is the mpv executable; "mpv" when empty.
	Binary string
	// SocketPath is the IPC socket; DefaultSocketPath when empty.
	SocketPath string
	// Headless disables video and audio output (used by the clip command).
	Headless bool
}

// LaunchMpv starts mpv idle and paused with its IPC socket enabled. If
// videoPath is set it is loaded straight away. It checks that mpv is
// installed first and returns an error with install link if not.
// Returns the *exec.Cmd for the running process which can be used for cleanup.
func LaunchMpv(videoPath string, opts LaunchOptions) (*exec.Cmd, error) {
	binary := opts.Binary
	if binary == "" {
		binary = "mpv"
	}
	if err := deps.CheckMpv(binary); err != nil {
		return nil, err
	}

	socketPath := opts.SocketPath
	if socketPath == "" {
		socketPath = DefaultSocketPath
	}
	// A stale socket from a crashed session would make Connect hit a dead peer.
	_ = os.Remove(socketPath)

	cmd := exec.Command(binary, launchArgs(videoPath, socketPath, opts.Headless)...)
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return cmd, nil
}

func launchArgs(videoPath, socketPath string, headless bool) []string {
	args := []string{
		"--input-ipc-server=" + socketPath,
		"--idle=yes",
		"--pause",
		"--keep-open=yes",
		"--force-window=yes",
	}
	if headless {
		args = []string{
			"--input-ipc-server=" + socketPath,
			"--idle=yes",
			"--pause",
			"--keep-open=yes",
			"--vo=null",
			"--ao=null",
		}
	}
	if videoPath != "" {
		args = append(args, videoPath)
	}
	return args
}

// LaunchPreview opens a finished clip in its own mpv window, without IPC.
func LaunchPreview(binary, clipPath string) (*exec.Cmd, error) {
	if binary == "" {
		binary = "mpv"
	}
	if err := deps.CheckMpv(binary); err != nil {
		return nil, err
	}
	cmd := exec.Command(binary, "--force-window=yes", "--keep-open=yes", "--title=Clip preview", clipPath)
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return cmd, nil
}
