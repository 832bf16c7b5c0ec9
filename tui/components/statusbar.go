// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/video-clipper-cli/pkg/timeutil"
	"github.com/user/video-clipper-cli/tui/styles"
)

// StatusBarState holds the current playback state for the status bar.
type StatusBarState struct {
	// Paused indicates if playback is paused
	Paused bool
	// Muted indicates if audio is muted
	Muted bool
	// TimePos is the current playback position in seconds
	TimePos float64
	// Duration is the total video duration in seconds
	Duration float64
	// StepSize is the current seek and nudge step in seconds
	StepSize float64
	// Connected is false when mpv stopped answering
	Connected bool
	// Recording is the capture state label while a clip is in progress
	Recording string
}

// StatusBar renders the status bar component.
// It shows the play/pause icon, the current position and duration at
// millisecond precision, the step size, a mute icon when muted and a
// recording badge while a clip is being captured.
func StatusBar(state StatusBarState, width int) string {
	// Play/pause icon
	playIcon := "▶"
	if state.Paused {
		playIcon = "⏸"
	}

	leftContent := fmt.Sprintf(" %s %s / %s", playIcon,
		timeutil.FormatClock(clampTime(state.TimePos)),
		timeutil.FormatClock(clampTime(state.Duration)))
	if !state.Connected {
		leftContent = " ⚠ mpv not connected"
	}

	// Mute icon (only shown when muted)
	var muteIcon string
	if state.Muted {
		muteIcon = " 🔇"
	}
	rightContent := fmt.Sprintf("Step: %s%s ", formatStepSize(state.StepSize), muteIcon)

	var badge string
	if state.Recording != "" {
		badge = styles.Recording.Render("● " + strings.ToUpper(state.Recording))
	}

	// Calculate padding between left and right content
	padding := width - lipgloss.Width(leftContent) - lipgloss.Width(badge) - lipgloss.Width(rightContent) - 1
	if padding < 0 {
		padding = 0
	}
	content := leftContent + " " + badge + strings.Repeat(" ", padding) + rightContent

	statusBarStyle := lipgloss.NewStyle().
		Background(styles.DarkPurple).
		Foreground(styles.LightLavender).
		Bold(true).
		Width(width)

	return statusBarStyle.Render(content)
}

// clampTime keeps not-yet-known (negative) times off the display.
func clampTime(seconds float64) float64 {
	if seconds < 0 {
		return 0
	}
	return seconds
}

// formatStepSize formats the step size for display.
// Shows decimals for values less than 1, otherwise whole number.
func formatStepSize(stepSize float64) string {
	if stepSize < 0.1 {
		return fmt.Sprintf("%.2fs", stepSize)
	}
	if stepSize < 1 {
		return fmt.Sprintf("%.1fs", stepSize)
	}
	return fmt.Sprintf("%.0fs", stepSize)
}
