package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/user/video-clipper-cli/capture"
	"github.com/user/video-clipper-cli/db"
	"github.com/user/video-clipper-cli/pkg/cliputil"
	"github.com/user/video-clipper-cli/pkg/timeutil"
	"github.com/user/video-clipper-cli/result"
	"github.com/user/video-clipper-cli/selection"
	"github.com/user/video-clipper-cli/source"
	"github.com/user/video-clipper-cli/tui/components"
	"github.com/user/video-clipper-cli/tui/forms"
	"github.com/user/video-clipper-cli/tui/layout"
	"github.com/user/video-clipper-cli/tui/styles"
)

const (
	// tickInterval is the interval for polling mpv status.
	tickInterval = 100 * time.Millisecond
	// defaultStepSize is the default seek and nudge step in seconds.
	defaultStepSize = 1.0
	// resultDisplayDuration is how long to show command results.
	resultDisplayDuration = 3 * time.Second
)

// stepSizes defines the available step sizes for seek and nudge operations.
// Users can cycle through these with < and > keys.
var stepSizes = []float64{0.01, 0.1, 0.5, 1, 2, 5, 10, 30}

// tickMsg is a message sent on every tick interval to update playback status.
type tickMsg time.Time

// clearResultMsg is sent to clear the command result message.
type clearResultMsg struct{}

// Playback is the transport the TUI drives. *mpv.Player implements it.
type Playback interface {
	Position() (float64, error)
	Duration() (float64, error)
	Paused() (bool, error)
	Muted() (bool, error)
	SetMuted(muted bool) error
	TogglePause() error
	SeekRelative(offset float64) error
	Seek(seconds float64) error
}

// Clipper records the selected range. *capture.Engine implements it.
type Clipper interface {
	Capture(target *capture.Target) error
	State() capture.State
}

// formKind identifies which huh form is open.
type formKind int

const (
	formNone formKind = iota
	formOpen
	formSave
	formDiscard
)

// Options wires the model to the rest of the application.
type Options struct {
	Player    Playback
	Selector  *source.Selector
	Clipper   Clipper
	Presenter *result.Presenter
	// Journal is optional; without it the history column stays empty.
	Journal *db.Journal
	// Events delivers capture state changes, usually from Subscribe.
	Events <-chan capture.Event
	// OutputDir is where clips are saved; the video's directory when empty.
	OutputDir string
	// Preview plays a finished clip.
	Preview func(path string) error
	// InitialPath is opened when the model is created.
	InitialPath string
}

// Model is the Bubbletea model for the TUI application.
// It implements the tea.Model interface with Init, Update, and View methods.
type Model struct {
	player    Playback
	selector  *source.Selector
	clipper   Clipper
	presenter *result.Presenter
	journal   *db.Journal
	events    <-chan capture.Event
	outputDir string
	preview   func(path string) error

	// quitting flag to signal shutdown
	quitting bool
	// terminal width
	width int
	// terminal height
	height int
	// status bar state
	statusBar components.StatusBarState
	// command input state
	commandInput components.CommandInputState
	// showHelp indicates if the help overlay is visible
	showHelp bool
	// focus is the range handle the arrow keys move
	focus FocusTarget
	// sourceErr is the message for the last rejected file
	sourceErr string
	// savedPath is where the current clip was saved, if it was
	savedPath string

	// clipState is the last capture state seen
	clipState capture.State
	// activeRange is the range being recorded
	activeRange selection.Range
	spinner     spinner.Model

	history []components.HistoryItem
	totals  components.HistoryTotals

	form     *huh.Form
	formKind formKind
	// formPath, formDir and formDiscard are bound to the open form's fields
	formPath    string
	formDir     string
	formDiscard bool
}

// NewModel creates a new TUI model.
func NewModel(opts Options) *Model {
	m := &Model{
		player:    opts.Player,
		selector:  opts.Selector,
		clipper:   opts.Clipper,
		presenter: opts.Presenter,
		journal:   opts.Journal,
		events:    opts.Events,
		outputDir: opts.OutputDir,
		preview:   opts.Preview,
		statusBar: components.StatusBarState{
			StepSize: defaultStepSize,
		},
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.Pink)),
		),
	}
	if m.presenter == nil {
		m.presenter = result.NewPresenter("")
	}
	if opts.InitialPath != "" {
		m.openPath(opts.InitialPath)
	}
	m.loadHistory()
	return m
}

// Init initializes the model. It returns an optional command to run.
func (m *Model) Init() tea.Cmd {
	// Start the ticker for polling mpv status and listen for capture events
	return tea.Batch(tickCmd(), waitForEvent(m.events))
}

// tickCmd returns a command that sends a tickMsg after the tick interval.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// clearResultCmd schedules clearing the command result message.
func clearResultCmd() tea.Cmd {
	return tea.Tick(resultDisplayDuration, func(t time.Time) tea.Msg {
		return clearResultMsg{}
	})
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.form != nil {
			return m.updateForm(msg)
		}
		return m, nil

	case tickMsg:
		m.updateStatusFromPlayer()
		return m, tickCmd()

	case clearResultMsg:
		m.commandInput.ClearResult()
		return m, nil

	case eventMsg:
		return m, m.handleEvent(capture.Event(msg))

	case spinner.TickMsg:
		if !m.clipState.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.form != nil {
			return m.updateForm(msg)
		}

		// Handle help overlay - any key dismisses it
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		// Handle command mode input
		if m.commandInput.Active {
			return m.handleCommandInput(msg)
		}

		// A file dropped on the terminal arrives as a paste
		if msg.Paste {
			return m, m.openPathWithResult(source.CleanDroppedPath(string(msg.Runes)))
		}

		return m.handleKey(msg)
	}

	if m.form != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

// handleKey handles key events in normal mode.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?":
		m.showHelp = true
		return m, nil
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case ":":
		m.commandInput.Open()
		return m, nil
	case "<":
		m.decreaseStepSize()
		return m, nil
	case ">":
		m.increaseStepSize()
		return m, nil
	case "tab":
		m.focus = m.focus.Toggle()
		return m, nil
	case "c", "C", "enter":
		return m, m.showResult(m.clip())
	case "p", "P":
		return m, m.showResult(m.playPreview())
	case "d", "D":
		return m.openSaveForm()
	case "o", "O":
		return m.openFileForm()
	}

	// Transport and range keys are locked while a clip is recorded
	if m.busy() {
		switch msg.String() {
		case " ", "m", "M", "h", "H", "l", "L", "[", "]", "left", "right":
			return m, m.showResult("", errors.New("clip in progress"))
		}
		return m, nil
	}

	switch msg.String() {
	case " ":
		if m.player != nil {
			_ = m.player.TogglePause()
		}
	case "m", "M":
		if m.player != nil {
			if muted, err := m.player.Muted(); err == nil {
				_ = m.player.SetMuted(!muted)
			}
		}
	case "h", "H":
		if m.player != nil {
			_ = m.player.SeekRelative(-m.statusBar.StepSize)
		}
	case "l", "L":
		if m.player != nil {
			_ = m.player.SeekRelative(m.statusBar.StepSize)
		}
	case "[":
		return m, m.showResult(m.markHere(FocusStart))
	case "]":
		return m, m.showResult(m.markHere(FocusEnd))
	case "left":
		m.nudge(-m.statusBar.StepSize)
	case "right":
		m.nudge(m.statusBar.StepSize)
	}
	return m, nil
}

// busy reports whether a capture session is in flight.
func (m *Model) busy() bool {
	return m.clipper != nil && m.clipper.State().Busy()
}

// showResult flashes a command result, or an error, on the bottom line.
func (m *Model) showResult(message string, err error) tea.Cmd {
	if err != nil {
		m.commandInput.SetResult("Error: "+err.Error(), true)
		return clearResultCmd()
	}
	if message == "" {
		return nil
	}
	m.commandInput.SetResult(message, false)
	return clearResultCmd()
}

// handleCommandInput handles key events when in command mode.
func (m *Model) handleCommandInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Cancel command mode
		m.commandInput.Clear()
		return m, nil

	case "enter":
		// Execute command
		cmd := m.commandInput.GetCommand()
		if cmd == "" {
			return m, nil
		}
		result, err := m.executeCommand(cmd)
		if m.quitting {
			return m, tea.Quit
		}
		if m.form != nil {
			return m, m.form.Init()
		}
		return m, m.showResult(result, err)

	case "backspace":
		m.commandInput.Backspace()
		return m, nil

	case "delete":
		m.commandInput.Delete()
		return m, nil

	case "left":
		m.commandInput.MoveCursorLeft()
		return m, nil

	case "right":
		m.commandInput.MoveCursorRight()
		return m, nil

	case "home", "ctrl+a":
		m.commandInput.MoveCursorHome()
		return m, nil

	case "end", "ctrl+e":
		m.commandInput.MoveCursorEnd()
		return m, nil

	case "up":
		m.commandInput.HistoryPrev()
		return m, nil

	case "down":
		m.commandInput.HistoryNext()
		return m, nil

	default:
		// Insert character if it's a printable rune
		if msg.Type == tea.KeyRunes {
			for _, r := range msg.Runes {
				m.commandInput.InsertChar(r)
			}
		} else if msg.Type == tea.KeySpace {
			m.commandInput.InsertChar(' ')
		}
		return m, nil
	}
}

// executeCommand parses and executes a command string.
// Returns a result message or an error.
func (m *Model) executeCommand(cmdStr string) (string, error) {
	parts := strings.Fields(cmdStr)
	if len(parts) == 0 {
		return "", nil
	}

	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "start", "end":
		if len(args) < 1 {
			return "", fmt.Errorf("%s requires a time argument (e.g., %s 1:05.5 or %s 65.5)", cmd, cmd, cmd)
		}
		if m.busy() {
			return "", errors.New("clip in progress")
		}
		seconds, err := timeutil.ParseTimeToSeconds(args[0])
		if err != nil {
			return "", err
		}
		r, err := m.editableRange()
		if err != nil {
			return "", err
		}
		if cmd == "start" {
			r.SetStart(seconds)
			return fmt.Sprintf("Start set to %s", timeutil.FormatClock(r.Start)), nil
		}
		r.SetEnd(seconds)
		return fmt.Sprintf("End set to %s", timeutil.FormatClock(r.End)), nil
	case "clip", "c":
		return m.clip()
	case "preview", "p":
		return m.playPreview()
	case "save", "w":
		if m.presenter.Artifact() == nil {
			return "", result.ErrNoClip
		}
		if len(args) == 0 {
			m.openSaveForm()
			return "", nil
		}
		return m.save(strings.Join(args, " "))
	case "open", "e":
		if m.busy() {
			return "", errors.New("clip in progress")
		}
		if len(args) == 0 {
			m.openFileForm()
			return "", nil
		}
		src, err := m.openPath(source.CleanDroppedPath(strings.Join(args, " ")))
		if err != nil {
			return "", err
		}
		return "Opened " + src.Name, nil
	case "seek":
		if len(args) < 1 {
			return "", fmt.Errorf("seek requires a time argument (e.g., seek 1:30 or seek 90)")
		}
		if m.busy() {
			return "", errors.New("clip in progress")
		}
		seconds, err := timeutil.ParseTimeToSeconds(args[0])
		if err != nil {
			return "", err
		}
		if m.player == nil {
			return "", errors.New("not connected to mpv")
		}
		if err := m.player.Seek(seconds); err != nil {
			return "", err
		}
		return fmt.Sprintf("Seeked to %s", timeutil.FormatClock(seconds)), nil
	case "q", "quit":
		m.quitting = true
		return "", nil
	case "help", "h":
		return "Commands: start <time>, end <time>, clip, preview, save [dir], open [file], seek <time>, quit", nil
	default:
		return "", fmt.Errorf("unknown command: %s", cmd)
	}
}

// currentRange returns the range of the loaded source, or nil while there is
// no source or its duration is unknown.
func (m *Model) currentRange() *selection.Range {
	if m.selector == nil {
		return nil
	}
	src := m.selector.Current()
	if src == nil {
		return nil
	}
	return src.Range
}

// editableRange returns the range the handles move, or why there is none.
func (m *Model) editableRange() (*selection.Range, error) {
	if m.selector == nil || m.selector.Current() == nil {
		return nil, errors.New("no video loaded")
	}
	r := m.currentRange()
	if r == nil {
		return nil, errors.New("waiting for video metadata")
	}
	return r, nil
}

// markHere moves the given handle to the current playback position.
func (m *Model) markHere(handle FocusTarget) (string, error) {
	r, err := m.editableRange()
	if err != nil {
		return "", err
	}
	m.focus = handle
	if handle == FocusStart {
		r.SetStart(m.statusBar.TimePos)
		return fmt.Sprintf("Start set to %s", timeutil.FormatClock(r.Start)), nil
	}
	r.SetEnd(m.statusBar.TimePos)
	return fmt.Sprintf("End set to %s", timeutil.FormatClock(r.End)), nil
}

// nudge moves the focused handle by delta seconds.
func (m *Model) nudge(delta float64) {
	r := m.currentRange()
	if r == nil {
		return
	}
	if m.focus == FocusStart {
		r.NudgeStart(delta)
	} else {
		r.NudgeEnd(delta)
	}
}

// clip starts recording the selected range.
func (m *Model) clip() (string, error) {
	if m.clipper == nil {
		return "", errors.New("clipping is not available")
	}

	var target *capture.Target
	if m.selector != nil {
		if src := m.selector.Current(); src != nil {
			if src.Range == nil {
				return "", errors.New("waiting for video metadata")
			}
			target = &capture.Target{Name: src.Name, Range: *src.Range}
		}
	}

	if err := m.clipper.Capture(target); err != nil {
		if errors.Is(err, capture.ErrSessionActive) {
			return "", errors.New("a clip is already being recorded")
		}
		// The failure is shown in the clip panel
		return "", nil
	}
	return fmt.Sprintf("Clipping %s - %s", timeutil.FormatClock(target.Range.Start), timeutil.FormatClock(target.Range.End)), nil
}

// playPreview opens the current clip in a separate player.
func (m *Model) playPreview() (string, error) {
	path, err := m.presenter.PreviewPath()
	if err != nil {
		return "", err
	}
	if m.preview == nil {
		return "Clip preview at " + path, nil
	}
	if err := m.preview(path); err != nil {
		return "", err
	}
	return "Playing clip preview", nil
}

// save writes the current clip into dir.
func (m *Model) save(dir string) (string, error) {
	a := m.presenter.Artifact()
	path, err := m.presenter.Save(strings.TrimSpace(dir))
	if err != nil {
		return "", err
	}
	m.savedPath = path
	if m.journal != nil && a != nil {
		m.journal.Saved(a.SessionID, path)
		m.loadHistory()
	}
	return "Saved " + filepath.Base(path), nil
}

// defaultSaveDir is the configured output directory or the video's directory.
func (m *Model) defaultSaveDir() string {
	if m.outputDir != "" {
		return m.outputDir
	}
	if m.selector != nil {
		if src := m.selector.Current(); src != nil {
			return cliputil.GetOutputDir(src.Path)
		}
	}
	return "."
}

// openPath makes path the current source. A rejected file leaves the current
// source, range and clip untouched.
func (m *Model) openPath(path string) (*source.Source, error) {
	if m.selector == nil {
		return nil, errors.New("no player to load the video into")
	}
	src, err := m.selector.Accept(path)
	if err != nil {
		var inputErr *source.InputError
		if errors.As(err, &inputErr) {
			m.sourceErr = inputErr.Message
		} else {
			m.sourceErr = err.Error()
		}
		return nil, err
	}
	m.sourceErr = ""
	m.savedPath = ""
	m.focus = FocusStart
	m.statusBar.TimePos = 0
	m.statusBar.Duration = 0
	return src, nil
}

// openPathWithResult opens path and reports the outcome on the bottom line.
func (m *Model) openPathWithResult(path string) tea.Cmd {
	if m.busy() {
		return m.showResult("", errors.New("clip in progress"))
	}
	src, err := m.openPath(path)
	if err != nil {
		return m.showResult("", err)
	}
	return m.showResult("Opened "+src.Name, nil)
}

// hasUnsavedClip reports whether opening a new video would drop a clip the
// user has not saved.
func (m *Model) hasUnsavedClip() bool {
	return m.presenter.Artifact() != nil && m.savedPath == ""
}

// openFileForm shows the file picker, asking to discard an unsaved clip first.
func (m *Model) openFileForm() (tea.Model, tea.Cmd) {
	if m.busy() {
		return m, m.showResult("", errors.New("clip in progress"))
	}
	if m.hasUnsavedClip() {
		m.formDiscard = false
		return m.showForm(formDiscard, forms.NewConfirmDiscardForm(&m.formDiscard))
	}
	return m.openPicker()
}

// openPicker shows the file picker in the loaded video's directory.
func (m *Model) openPicker() (tea.Model, tea.Cmd) {
	m.formPath = ""
	dir := ""
	if m.selector != nil {
		if src := m.selector.Current(); src != nil {
			dir = filepath.Dir(src.Path)
		}
	}
	return m.showForm(formOpen, forms.NewOpenForm(dir, &m.formPath))
}

// openSaveForm asks for the directory to save the current clip into.
func (m *Model) openSaveForm() (tea.Model, tea.Cmd) {
	a := m.presenter.Artifact()
	if a == nil {
		return m, m.showResult("", result.ErrNoClip)
	}
	m.formDir = m.defaultSaveDir()
	return m.showForm(formSave, forms.NewSaveForm(a.Filename, &m.formDir))
}

func (m *Model) showForm(kind formKind, form *huh.Form) (tea.Model, tea.Cmd) {
	m.form = form
	m.formKind = kind
	return m, m.form.Init()
}

func (m *Model) closeForm() {
	m.form = nil
	m.formKind = formNone
}

// updateForm forwards msg to the open form and acts on its completion.
func (m *Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		m.closeForm()
		return m, nil
	}

	updated, cmd := m.form.Update(msg)
	if f, ok := updated.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	case huh.StateCompleted:
		kind := m.formKind
		m.closeForm()
		return m.finishForm(kind)
	}
	return m, cmd
}

// finishForm applies a completed form.
func (m *Model) finishForm(kind formKind) (tea.Model, tea.Cmd) {
	switch kind {
	case formDiscard:
		if !m.formDiscard {
			return m, nil
		}
		return m.openPicker()
	case formOpen:
		if m.formPath == "" {
			return m, nil
		}
		return m, m.openPathWithResult(m.formPath)
	case formSave:
		return m, m.showResult(m.save(m.formDir))
	}
	return m, nil
}

// handleEvent applies a capture state change.
func (m *Model) handleEvent(ev capture.Event) tea.Cmd {
	cmds := []tea.Cmd{waitForEvent(m.events)}

	wasBusy := m.clipState.Busy()
	m.clipState = ev.State
	switch ev.State {
	case capture.StatePreparing:
		m.activeRange = ev.Target.Range
		if !wasBusy {
			cmds = append(cmds, m.spinner.Tick)
		}
	case capture.StateReady:
		m.savedPath = ""
		if ev.Artifact != nil {
			cmds = append(cmds, m.showResult(fmt.Sprintf("Clip ready: %s", ev.Artifact.Filename), nil))
		}
	}
	if ev.State.Busy() {
		m.statusBar.Recording = ev.State.String()
	} else {
		m.statusBar.Recording = ""
	}

	m.loadHistory()
	return tea.Batch(cmds...)
}

// decreaseStepSize selects the next smaller step size.
func (m *Model) decreaseStepSize() {
	idx := m.findStepSizeIndex()
	if idx > 0 {
		m.statusBar.StepSize = stepSizes[idx-1]
	}
}

// increaseStepSize selects the next larger step size.
func (m *Model) increaseStepSize() {
	idx := m.findStepSizeIndex()
	if idx < len(stepSizes)-1 {
		m.statusBar.StepSize = stepSizes[idx+1]
	}
}

// findStepSizeIndex returns the index of the current step size in stepSizes.
// If not found, returns the index of the default step size.
func (m *Model) findStepSizeIndex() int {
	for i, size := range stepSizes {
		if size == m.statusBar.StepSize {
			return i
		}
	}
	for i, size := range stepSizes {
		if size == defaultStepSize {
			return i
		}
	}
	return 0
}

// updateStatusFromPlayer polls the player for current playback status and
// forwards the reported duration to the loaded source.
func (m *Model) updateStatusFromPlayer() {
	if m.player == nil {
		m.statusBar.Connected = false
		return
	}

	paused, err := m.player.Paused()
	m.statusBar.Connected = err == nil
	if err == nil {
		m.statusBar.Paused = paused
	}

	if muted, err := m.player.Muted(); err == nil {
		m.statusBar.Muted = muted
	}

	if timePos, err := m.player.Position(); err == nil {
		m.statusBar.TimePos = timePos
	}

	if m.selector == nil {
		return
	}
	src := m.selector.Current()
	if src == nil {
		return
	}
	duration, err := m.player.Duration()
	if err != nil {
		return
	}
	m.statusBar.Duration = duration
	if src.SetDuration(duration) {
		m.focus = FocusStart
		if m.journal != nil {
			m.journal.SourceDuration(src.Path, duration)
		}
	}
}

// loadHistory reloads the history column from the journal.
func (m *Model) loadHistory() {
	if m.journal == nil {
		return
	}
	captures, err := m.journal.Recent(historyLimit)
	if err != nil {
		return
	}
	items := make([]components.HistoryItem, 0, len(captures))
	for _, c := range captures {
		items = append(items, components.HistoryItem{
			Source: c.SourceName,
			Start:  c.Start,
			End:    c.End,
			State:  c.State,
			Size:   c.Filesize,
			Error:  c.Error,
			Saved:  c.SavedPath != "",
		})
	}
	m.history = items

	if stats, err := m.journal.Stats(); err == nil {
		m.totals = components.HistoryTotals{
			Total:  stats.Total,
			Ready:  stats.Ready,
			Failed: stats.Failed,
			Bytes:  stats.ReadyBytes,
		}
	}
}

// sourceState describes the loaded video for the source panel.
func (m *Model) sourceState() components.SourceState {
	state := components.SourceState{Error: m.sourceErr}
	if m.selector == nil {
		return state
	}
	if src := m.selector.Current(); src != nil {
		state.Name = src.Name
		state.Path = src.Path
		state.MIME = src.MIME
		state.Size = src.Size
	}
	return state
}

// View renders the current state of the model as a string.
func (m *Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	// If help overlay is active, show it instead of normal view
	if m.showHelp {
		return components.HelpOverlay(m.width, m.height)
	}

	// Minimum width warning
	if m.width > 0 && m.width < layout.MinTerminalWidth {
		warningStyle := lipgloss.NewStyle().
			Foreground(styles.Pink).
			Bold(true)
		hintStyle := lipgloss.NewStyle().
			Foreground(styles.Lavender).
			Italic(true)
		return warningStyle.Render(fmt.Sprintf("Terminal too narrow (%d cols)", m.width)) + "\n" +
			hintStyle.Render(fmt.Sprintf("Minimum width: %d columns", layout.MinTerminalWidth)) + "\n" +
			hintStyle.Render("Please resize your terminal.")
	}

	// Render status bar at top (full width)
	statusBar := components.StatusBar(m.statusBar, m.width)

	// Open forms replace the columns
	if m.form != nil {
		formStyle := lipgloss.NewStyle().Padding(1, 2)
		return statusBar + "\n" + formStyle.Render(m.form.View())
	}

	// Available height for columns (total height minus status bar, timeline and command line)
	colHeight := m.height - 8
	if colHeight < 5 {
		colHeight = 5
	}

	mainWidth, sideWidth, showSide := layout.ComputeColumnWidths(m.width)
	var columnsView string
	if showSide {
		columnsView = layout.JoinColumns(
			[]string{m.renderMainColumn(mainWidth, colHeight), m.renderSideColumn(sideWidth, colHeight)},
			[]int{mainWidth, sideWidth},
			colHeight,
		)
	} else {
		columnsView = m.renderMainColumn(mainWidth, colHeight)
	}

	// Render timeline below columns (full width)
	timeline := components.Timeline(m.statusBar.TimePos, m.currentRange(), m.focus == FocusEnd, m.width)

	// Render command input at bottom (full width)
	commandInput := components.CommandInput(m.commandInput, m.width)

	return statusBar + "\n" + columnsView + "\n" + timeline + "\n" + commandInput
}

// Run starts the Bubbletea program with a model built from opts.
// It returns an error if the program fails to start or run.
func Run(opts Options) error {
	model := NewModel(opts)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
