package tui

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/user/video-clipper-cli/capture"
	"github.com/user/video-clipper-cli/result"
	"github.com/user/video-clipper-cli/selection"
	"github.com/user/video-clipper-cli/source"
)

type fakePlayback struct {
	pos      float64
	duration float64
	paused   bool
	muted    bool
	toggles  int
	seeks    []float64
}

func (p *fakePlayback) Position() (float64, error) { return p.pos, nil }
func (p *fakePlayback) Duration() (float64, error) {
	if p.duration == 0 {
		return 0, errors.New("property unavailable")
	}
	return p.duration, nil
}
func (p *fakePlayback) Paused() (bool, error) { return p.paused, nil }
func (p *fakePlayback) Muted() (bool, error) { return p.muted, nil }
func (p *fakePlayback) SetMuted(muted bool) error { p.muted = muted; return nil }
func (p *fakePlayback) TogglePause() error { p.toggles++; return nil }
func (p *fakePlayback) Seek(seconds float64) error { p.seeks = append(p.seeks, seconds); return nil }
func (p *fakePlayback) SeekRelative(off float64) error { p.pos += off; return nil }

type fakeClipper struct {
	state   capture.State
	targets []*capture.Target
	err     error
}

func (c *fakeClipper) Capture(target *capture.Target) error {
	c.targets = append(c.targets, target)
	return c.err
}

func (c *fakeClipper) State() capture.State { return c.state }

type nopHandle struct{}

func (nopHandle) Release() error { return nil }

type nopOpener struct{}

func (nopOpener) Open(path string) (source.Handle, error) { return nopHandle{}, nil }

func newTestModel(t *testing.T) (*Model, *fakePlayback, *fakeClipper) {
	t.Helper()
	player := &fakePlayback{paused: true}
	clipper := &fakeClipper{}
	m := NewModel(Options{
		Player:    player,
		Selector:  source.NewSelector(nopOpener{}),
		Clipper:   clipper,
		Presenter: result.NewPresenter(t.TempDir()),
	})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, player, clipper
}

func writeFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// loadVideo opens a video and lets one tick deliver its duration.
func loadVideo(t *testing.T, m *Model, player *fakePlayback, duration float64) {
	t.Helper()
	if _, err := m.openPath(writeFile(t, "match.mp4")); err != nil {
		t.Fatalf("openPath failed: %v", err)
	}
	player.duration = duration
	m.Update(tickMsg{})
}

func TestTickInitializesRange(t *testing.T) {
	m, player, _ := newTestModel(t)
	if _, err := m.openPath(writeFile(t, "match.mp4")); err != nil {
		t.Fatalf("openPath failed: %v", err)
	}

	m.Update(tickMsg{})
	if m.currentRange() != nil {
		t.Fatal("Expected no range before the duration is known")
	}

	player.duration = 60
	m.Update(tickMsg{})
	r := m.currentRange()
	if r == nil {
		t.Fatal("Expected range once the duration is known")
	}
	if r.Start != 0 || r.End != 60 {
		t.Errorf("Expected range (0, 60), got (%v, %v)", r.Start, r.End)
	}
	if m.statusBar.Duration != 60 || !m.statusBar.Connected {
		t.Errorf("Expected connected status with duration 60, got %+v", m.statusBar)
	}
}

func TestRejectedFileKeepsCurrentSource(t *testing.T) {
	m, player, _ := newTestModel(t)
	loadVideo(t, m, player, 60)
	m.currentRange().SetStart(12)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(writeFile(t, "notes.txt")), Paste: true})

	if m.sourceErr != source.MsgInvalidType {
		t.Errorf("Expected %q, got %q", source.MsgInvalidType, m.sourceErr)
	}
	if got := m.selector.Current().Name; got != "match.mp4" {
		t.Errorf("Expected match.mp4 to stay loaded, got %q", got)
	}
	if m.currentRange().Start != 12 {
		t.Errorf("Expected range kept, got start %v", m.currentRange().Start)
	}
	if !strings.Contains(m.View(), source.MsgInvalidType) {
		t.Error("Expected the rejection message in the view")
	}
}

func TestMarkAndNudgeHandles(t *testing.T) {
	m, player, _ := newTestModel(t)
	loadVideo(t, m, player, 60)

	player.pos = 10
	m.Update(tickMsg{})
	m.Update(keyRunes("["))
	if got := m.currentRange().Start; got != 10 {
		t.Errorf("Expected start 10, got %v", got)
	}

	// An end before the start is clamped one step past it
	player.pos = 5
	m.Update(tickMsg{})
	m.Update(keyRunes("]"))
	if got := m.currentRange().End; got != 10+selection.Step {
		t.Errorf("Expected end %v, got %v", 10+selection.Step, got)
	}
	if m.focus != FocusEnd {
		t.Errorf("Expected focus on the end handle, got %v", m.focus)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if got := m.currentRange().End; math.Abs(got-(11+selection.Step)) > 1e-9 {
		t.Errorf("Expected end nudged to %v, got %v", 11+selection.Step, got)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if got := m.currentRange().Start; got != 9 {
		t.Errorf("Expected start nudged to 9, got %v", got)
	}
}

func TestClipCopiesSelectedRange(t *testing.T) {
	m, player, clipper := newTestModel(t)
	loadVideo(t, m, player, 60)
	m.currentRange().SetStart(5)
	m.currentRange().SetEnd(10.5)

	m.Update(keyRunes("c"))
	if len(clipper.targets) != 1 {
		t.Fatalf("Expected one capture, got %d", len(clipper.targets))
	}
	target := clipper.targets[0]
	if target.Name != "match.mp4" || target.Range.Start != 5 || target.Range.End != 10.5 {
		t.Errorf("Unexpected target: %+v", target)
	}

	// Later edits must not change the range being recorded
	m.currentRange().SetStart(1)
	if target.Range.Start != 5 {
		t.Errorf("Expected the target to hold a copy, got start %v", target.Range.Start)
	}
}

func TestClipWithoutSourcePassesNil(t *testing.T) {
	m, _, clipper := newTestModel(t)
	clipper.err = capture.ErrInvalidInput

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if len(clipper.targets) != 1 || clipper.targets[0] != nil {
		t.Errorf("Expected a single nil target, got %v", clipper.targets)
	}
}

func TestClipWaitsForDuration(t *testing.T) {
	m, _, clipper := newTestModel(t)
	if _, err := m.openPath(writeFile(t, "match.mp4")); err != nil {
		t.Fatalf("openPath failed: %v", err)
	}

	m.Update(keyRunes("c"))
	if len(clipper.targets) != 0 {
		t.Error("Expected no capture before the duration is known")
	}
	if !m.commandInput.IsError {
		t.Error("Expected an error result")
	}
}

func TestBusyLocksTransport(t *testing.T) {
	m, player, clipper := newTestModel(t)
	loadVideo(t, m, player, 60)
	clipper.state = capture.StateRecording

	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m.Update(keyRunes("["))
	if player.toggles != 0 {
		t.Error("Expected play/pause to be ignored while recording")
	}
	if !m.commandInput.IsError {
		t.Error("Expected a clip-in-progress error")
	}

	clipper.state = capture.StateReady
	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if player.toggles != 1 {
		t.Errorf("Expected one toggle after the clip finished, got %d", player.toggles)
	}
}

func TestEventsDriveClipPanel(t *testing.T) {
	m, player, _ := newTestModel(t)
	loadVideo(t, m, player, 60)

	target := capture.Target{Name: "match.mp4", Range: selection.Range{Start: 5, End: 10.5, Duration: 60}}
	m.Update(eventMsg(capture.Event{SessionID: "s1", State: capture.StatePreparing, Target: target}))
	m.Update(eventMsg(capture.Event{SessionID: "s1", State: capture.StateRecording, Target: target}))
	if m.statusBar.Recording != "recording" {
		t.Errorf("Expected recording badge, got %q", m.statusBar.Recording)
	}
	if !strings.Contains(m.View(), "Clipping") {
		t.Error("Expected the progress box while recording")
	}

	artifact := &capture.Artifact{
		SessionID: "s1",
		Data:      []byte("webm"),
		Format:    capture.DefaultFormats[0],
		Filename:  "clipped-match.mp4.webm",
		Range:     target.Range,
		Chunks:    1,
	}
	ready := capture.Event{SessionID: "s1", State: capture.StateReady, Target: target, Artifact: artifact}
	m.presenter.Handle(ready)
	m.Update(eventMsg(ready))

	if m.statusBar.Recording != "" {
		t.Errorf("Expected badge cleared, got %q", m.statusBar.Recording)
	}
	view := m.View()
	if !strings.Contains(view, "Clip Ready!") {
		t.Error("Expected the ready panel")
	}
	if !strings.Contains(view, "clipped-match.mp4.webm") {
		t.Error("Expected the clip filename in the view")
	}
}

func TestSaveCommand(t *testing.T) {
	m, player, _ := newTestModel(t)
	loadVideo(t, m, player, 60)

	if _, err := m.executeCommand("save"); !errors.Is(err, result.ErrNoClip) {
		t.Errorf("Expected ErrNoClip, got %v", err)
	}

	artifact := &capture.Artifact{SessionID: "s1", Data: []byte("webm"), Format: capture.DefaultFormats[0], Filename: "clipped-match.mp4.webm"}
	if err := m.presenter.Publish(artifact); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if !m.hasUnsavedClip() {
		t.Error("Expected an unsaved clip")
	}

	dir := t.TempDir()
	msg, err := m.executeCommand("save " + dir)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.Contains(msg, "clipped-match.mp4.webm") {
		t.Errorf("Expected saved filename in %q", msg)
	}
	if _, err := os.Stat(filepath.Join(dir, "clipped-match.mp4.webm")); err != nil {
		t.Errorf("Expected saved file: %v", err)
	}
	if m.hasUnsavedClip() {
		t.Error("Expected the clip to count as saved")
	}
}

func TestStartEndCommands(t *testing.T) {
	m, player, _ := newTestModel(t)
	loadVideo(t, m, player, 120)

	if _, err := m.executeCommand("end 1:05.5"); err != nil {
		t.Fatalf("end failed: %v", err)
	}
	if _, err := m.executeCommand("start 30"); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	r := m.currentRange()
	if r.Start != 30 || r.End != 65.5 {
		t.Errorf("Expected range (30, 65.5), got (%v, %v)", r.Start, r.End)
	}
	if _, err := m.executeCommand("start soon"); err == nil {
		t.Error("Expected parse error")
	}
	if _, err := m.executeCommand("bogus"); err == nil {
		t.Error("Expected unknown command error")
	}
}

func TestStepSizeCycles(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.Update(keyRunes(">"))
	if m.statusBar.StepSize != 2 {
		t.Errorf("Expected step 2, got %v", m.statusBar.StepSize)
	}
	for i := 0; i < len(stepSizes); i++ {
		m.Update(keyRunes("<"))
	}
	if m.statusBar.StepSize != stepSizes[0] {
		t.Errorf("Expected smallest step %v, got %v", stepSizes[0], m.statusBar.StepSize)
	}
}

type fakeObservable struct {
	fns []func(capture.Event)
}

func (o *fakeObservable) Observe(fn func(capture.Event)) {
	o.fns = append(o.fns, fn)
}

func TestSubscribeForwardsEvents(t *testing.T) {
	o := &fakeObservable{}
	done := make(chan struct{})
	ch := Subscribe(o, done)

	o.fns[0](capture.Event{SessionID: "s1", State: capture.StatePreparing})
	msg := waitForEvent(ch)()
	ev, ok := msg.(eventMsg)
	if !ok || ev.SessionID != "s1" {
		t.Fatalf("Expected forwarded event, got %#v", msg)
	}

	// After done, a full channel must not block the sender
	close(done)
	for i := 0; i < cap(ch)+1; i++ {
		o.fns[0](capture.Event{SessionID: "late"})
	}
}
