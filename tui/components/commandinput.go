package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/user/video-clipper-cli/tui/styles"
)

// commandHint is shown on the bottom line when there is nothing else to show.
const commandHint = ":start 01:05.5  :end 1:10  :clip  :save [dir]  :open <file>   ? help"

// maxCommandHistory bounds how many executed commands Up/Down can recall.
const maxCommandHistory = 50

// CommandInputState is the ':' command line. CursorPos counts runes, so
// paths with non-ASCII names edit correctly.
type CommandInputState struct {
	Active    bool
	Input     string
	CursorPos int
	// Result is the last command's outcome, shown until cleared.
	Result  string
	IsError bool

	history []string
	// recall indexes history while browsing it with Up/Down; len(history)
	// means the line being typed.
	recall int
	draft  string
}

// CommandInput renders the bottom line: the ':' prompt in command mode, the
// last command's result, or a hint with the available commands.
func CommandInput(state CommandInputState, width int) string {
	line := lipgloss.NewStyle().Background(styles.DarkPurple).Width(width)

	switch {
	case state.Active:
		prompt := lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
		text := lipgloss.NewStyle().Foreground(styles.LightLavender)

		r := []rune(state.Input)
		pos := clampCursor(state.CursorPos, len(r))
		return line.Render(prompt.Render(":") + text.Render(string(r[:pos])+"_"+string(r[pos:])))

	case state.Result != "":
		colour := styles.Cyan
		if state.IsError {
			colour = styles.Pink
		}
		return line.Render(" " + lipgloss.NewStyle().Foreground(colour).Bold(true).Render(state.Result))

	default:
		return line.Render(" " + lipgloss.NewStyle().Foreground(styles.Purple).Italic(true).Render(commandHint))
	}
}

func clampCursor(pos, n int) int {
	return min(max(pos, 0), n)
}

func (s *CommandInputState) edit(f func(r []rune, pos int) ([]rune, int)) {
	r := []rune(s.Input)
	r, s.CursorPos = f(r, clampCursor(s.CursorPos, len(r)))
	s.Input = string(r)
}

// InsertChar inserts c at the cursor.
func (s *CommandInputState) InsertChar(c rune) {
	s.edit(func(r []rune, pos int) ([]rune, int) {
		r = append(r[:pos], append([]rune{c}, r[pos:]...)...)
		return r, pos + 1
	})
}

// Backspace deletes the rune before the cursor.
func (s *CommandInputState) Backspace() {
	s.edit(func(r []rune, pos int) ([]rune, int) {
		if pos == 0 {
			return r, pos
		}
		return append(r[:pos-1], r[pos:]...), pos - 1
	})
}

// Delete deletes the rune under the cursor.
func (s *CommandInputState) Delete() {
	s.edit(func(r []rune, pos int) ([]rune, int) {
		if pos >= len(r) {
			return r, pos
		}
		return append(r[:pos], r[pos+1:]...), pos
	})
}

func (s *CommandInputState) MoveCursorLeft() {
	s.CursorPos = clampCursor(s.CursorPos-1, len([]rune(s.Input)))
}

func (s *CommandInputState) MoveCursorRight() {
	s.CursorPos = clampCursor(s.CursorPos+1, len([]rune(s.Input)))
}

func (s *CommandInputState) MoveCursorHome() {
	s.CursorPos = 0
}

func (s *CommandInputState) MoveCursorEnd() {
	s.CursorPos = len([]rune(s.Input))
}

// Open activates command mode with an empty line.
func (s *CommandInputState) Open() {
	s.Active = true
	s.Input = ""
	s.CursorPos = 0
	s.recall = len(s.history)
	s.draft = ""
	s.ClearResult()
}

// Clear empties the line and leaves command mode.
func (s *CommandInputState) Clear() {
	s.Input = ""
	s.CursorPos = 0
	s.Active = false
}

// GetCommand returns the line, remembers it for recall and clears it.
func (s *CommandInputState) GetCommand() string {
	cmd := s.Input
	if cmd != "" && (len(s.history) == 0 || s.history[len(s.history)-1] != cmd) {
		s.history = append(s.history, cmd)
		if len(s.history) > maxCommandHistory {
			s.history = s.history[len(s.history)-maxCommandHistory:]
		}
	}
	s.recall = len(s.history)
	s.Clear()
	return cmd
}

// HistoryPrev replaces the line with the previous executed command.
func (s *CommandInputState) HistoryPrev() {
	if s.recall == 0 {
		return
	}
	if s.recall == len(s.history) {
		s.draft = s.Input
	}
	s.recall--
	s.setLine(s.history[s.recall])
}

// HistoryNext steps back toward the line that was being typed.
func (s *CommandInputState) HistoryNext() {
	if s.recall >= len(s.history) {
		return
	}
	s.recall++
	if s.recall == len(s.history) {
		s.setLine(s.draft)
		return
	}
	s.setLine(s.history[s.recall])
}

func (s *CommandInputState) setLine(line string) {
	s.Input = line
	s.CursorPos = len([]rune(line))
}

func (s *CommandInputState) SetResult(msg string, isError bool) {
	s.Result = msg
	s.IsError = isError
}

func (s *CommandInputState) ClearResult() {
	s.Result = ""
	s.IsError = false
}
