package mpv

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

const (
	// DefaultSocketPath is the default Unix socket path for mpv IPC.
	DefaultSocketPath = "/tmp/video-clipper-mpv.sock"
)

var (
	// ErrNotConnected is returned when attempting operations on a disconnected client.
	ErrNotConnected = errors.New("mpv: not connected")
	// ErrSocketNotFound is returned when the socket file doesn't exist.
	ErrSocketNotFound = errors.New("mpv: socket not found - is mpv running with --input-ipc-server?")
	// ErrPropertyUnavailable is returned for properties mpv has no value for yet
	// (for example duration before a file is loaded).
	ErrPropertyUnavailable = errors.New("mpv: property unavailable")
	// requestID is a global counter for generating unique request IDs.
	requestID uint64
)

// ipcRequest represents a JSON IPC request to mpv.
type ipcRequest struct {
	Command   []interface{} `json:"command"`
	RequestID uint64        `json:"request_id"`
}

// ipcResponse represents a JSON IPC response from mpv.
type ipcResponse struct {
	Data      interface{} `json:"data"`
	RequestID uint64      `json:"request_id"`
	Error     string      `json:"error"`
	Event     string      `json:"event"`
}

// Client is an mpv IPC client that communicates via Unix socket.
// It is safe for concurrent use; commands are serialized.
type Client struct {
	socketPath string
	timeout    time.Duration
	conn       net.Conn
	reader     *bufio.Reader
	mu         sync.Mutex
}

// NewClient creates a new mpv IPC client.
// If socketPath is empty, DefaultSocketPath is used.
func NewClient(socketPath string) *Client {
	if socketPath == "" {
		socketPath = DefaultSocketPath
	}
	return &Client{
		socketPath: socketPath,
		timeout:    2 * time.Second,
	}
}

// Connect establishes a connection to the mpv IPC socket.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return nil // Already connected
	}

	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSocketNotFound, err)
	}

	c.conn = conn
	c.reader = bufio.NewReader(conn)
	return nil
}

// ConnectWithRetry keeps trying to connect until mpv has created its socket
// or attempts run out.
func (c *Client) ConnectWithRetry(attempts int, wait time.Duration) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = c.Connect(); err == nil {
			return nil
		}
		time.Sleep(wait)
	}
	return err
}

// Close closes the connection to mpv.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}

	err := c.conn.Close()
	c.conn = nil
	c.reader = nil
	return err
}

// IsConnected returns true if the client is connected to mpv.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// SocketPath returns the socket path this client is configured to use.
func (c *Client) SocketPath() string {
	return c.socketPath
}

// GetProperty retrieves the value of an mpv property.
func (c *Client) GetProperty(name string) (interface{}, error) {
	return c.sendCommand("get_property", name)
}

// SetProperty sets the value of an mpv property.
func (c *Client) SetProperty(name string, value interface{}) error {
	_, err := c.sendCommand("set_property", name, value)
	return err
}

// Command runs an arbitrary mpv input command.
func (c *Client) Command(args ...interface{}) error {
	if len(args) == 0 {
		return errors.New("mpv: empty command")
	}
	name, ok := args[0].(string)
	if !ok {
		return fmt.Errorf("mpv: command name must be a string, got %T", args[0])
	}
	_, err := c.sendCommand(name, args[1:]...)
	return err
}

// GetTimePos returns the current playback position in seconds.
func (c *Client) GetTimePos() (float64, error) {
	result, err := c.GetProperty("time-pos")
	if err != nil {
		return 0, err
	}
	return toFloat64(result)
}

// GetDuration returns the total duration of the video in seconds.
func (c *Client) GetDuration() (float64, error) {
	result, err := c.GetProperty("duration")
	if err != nil {
		return 0, err
	}
	return toFloat64(result)
}

// GetPath returns the path of the file mpv is playing.
func (c *Client) GetPath() (string, error) {
	result, err := c.GetProperty("path")
	if err != nil {
		return "", err
	}
	path, ok := result.(string)
	if !ok {
		return "", fmt.Errorf("mpv: unexpected path value type: %T", result)
	}
	return path, nil
}

// GetPaused returns true if playback is paused.
func (c *Client) GetPaused() (bool, error) {
	return c.getBool("pause")
}

// SetPaused pauses or resumes playback.
func (c *Client) SetPaused(paused bool) error {
	return c.SetProperty("pause", paused)
}

// TogglePause flips the pause state.
func (c *Client) TogglePause() error {
	return c.Command("cycle", "pause")
}

// GetMute returns true if audio is muted.
func (c *Client) GetMute() (bool, error) {
	return c.getBool("mute")
}

// SetMute mutes or unmutes audio.
func (c *Client) SetMute(muted bool) error {
	return c.SetProperty("mute", muted)
}

// Seek jumps to an absolute position in seconds.
func (c *Client) Seek(seconds float64) error {
	return c.Command("seek", seconds, "absolute+exact")
}

// SeekRelative moves the playhead by offset seconds.
func (c *Client) SeekRelative(offset float64) error {
	return c.Command("seek", offset, "relative+exact")
}

// LoadFile replaces the current file with path.
func (c *Client) LoadFile(path string) error {
	return c.Command("loadfile", path, "replace")
}

// Stop stops playback and unloads the current file.
func (c *Client) Stop() error {
	return c.Command("stop")
}

// Quit asks mpv to exit.
func (c *Client) Quit() error {
	return c.Command("quit")
}

func (c *Client) getBool(name string) (bool, error) {
	result, err := c.GetProperty(name)
	if err != nil {
		return false, err
	}
	b, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("mpv: unexpected %s value type: %T", name, result)
	}
	return b, nil
}

// toFloat64 converts an interface{} to float64.
// JSON numbers from mpv are typically decoded as float64.
func toFloat64(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("mpv: unexpected numeric value type: %T", v)
	}
}

// sendCommand sends a JSON IPC command to mpv and returns the result.
// The command is formatted as {"command": [command, args...], "request_id": <id>}
// and sent as newline-terminated JSON over the socket. Event lines arriving
// before the matching response are skipped.
func (c *Client) sendCommand(command string, args ...interface{}) (interface{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil, ErrNotConnected
	}

	cmdArray := make([]interface{}, 0, len(args)+1)
	cmdArray = append(cmdArray, command)
	cmdArray = append(cmdArray, args...)

	reqID := atomic.AddUint64(&requestID, 1)
	data, err := json.Marshal(ipcRequest{Command: cmdArray, RequestID: reqID})
	if err != nil {
		return nil, fmt.Errorf("mpv: failed to marshal command: %w", err)
	}

	if c.timeout > 0 {
		_ = c.conn.SetDeadline(time.Now().Add(c.timeout))
		defer c.conn.SetDeadline(time.Time{})
	}

	data = append(data, '\n')
	if _, err := c.conn.Write(data); err != nil {
		return nil, fmt.Errorf("mpv: failed to send command: %w", err)
	}

	for {
		line, err := c.reader.ReadBytes('\n')
		if err != nil {
			return nil, fmt.Errorf("mpv: failed to read response: %w", err)
		}

		var resp ipcResponse
		if err := json.Unmarshal(line, &resp); err != nil {
			continue
		}
		if resp.Event != "" || resp.RequestID != reqID {
			continue
		}

		switch resp.Error {
		case "", "success":
			return resp.Data, nil
		case "property unavailable":
			return nil, ErrPropertyUnavailable
		default:
			return nil, fmt.Errorf("mpv: %s: %s", command, resp.Error)
		}
	}
}
