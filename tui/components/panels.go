package components

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/user/video-clipper-cli/pkg/timeutil"
	"github.com/user/video-clipper-cli/selection"
	"github.com/user/video-clipper-cli/tui/styles"
)

// SourceState describes the loaded video for the source panel.
type SourceState struct {
	Name  string
	Path  string
	MIME  string
	Size  int64
	Error string
}

// SourcePanel renders the loaded file, or the drop hint when nothing is loaded.
// A rejected file's message is shown under whatever is currently loaded.
func SourcePanel(state SourceState, width int) string {
	textStyle := lipgloss.NewStyle().Foreground(styles.LightLavender)
	dimStyle := lipgloss.NewStyle().Foreground(styles.Lavender).Italic(true)

	innerW := width - 4
	if innerW < 6 {
		innerW = 6
	}

	var lines []string
	if state.Name == "" {
		lines = append(lines,
			" "+textStyle.Render("No video loaded"),
			" "+dimStyle.Render(ansi.Truncate("Press O to browse, or drop a file here", innerW, "…")),
		)
	} else {
		lines = append(lines,
			" "+textStyle.Render(ansi.Truncate(state.Name, innerW, "…")),
			" "+dimStyle.Render(ansi.Truncate(fmt.Sprintf("%s  %s  %s", state.MIME, humanize.Bytes(uint64(state.Size)), filepath.Dir(state.Path)), innerW, "…")),
		)
	}
	if state.Error != "" {
		lines = append(lines, " "+styles.Warning.Render(ansi.Truncate(state.Error, innerW, "…")))
	}
	return RenderInfoBox("Video", lines, width)
}

// RangePanel renders the selected range, the clip duration and the current
// playback time. The focused handle is marked with an arrow.
func RangePanel(r *selection.Range, timePos float64, focusEnd bool, width int) string {
	labelStyle := lipgloss.NewStyle().Foreground(styles.Lavender).Width(24)
	valueStyle := lipgloss.NewStyle().Foreground(styles.LightLavender).Bold(true)

	if r == nil {
		dim := lipgloss.NewStyle().Foreground(styles.Lavender).Italic(true)
		return RenderInfoBox("Range", []string{" " + dim.Render("Waiting for video metadata")}, width)
	}

	marker := func(focused bool) string {
		if focused {
			return styles.Focused.Render("▸")
		}
		return " "
	}

	lines := []string{
		marker(!focusEnd) + labelStyle.Render("Start Time") + valueStyle.Render(timeutil.FormatClock(r.Start)),
		marker(focusEnd) + labelStyle.Render("End Time") + valueStyle.Render(timeutil.FormatClock(r.End)),
		" " + labelStyle.Render("Selected Clip Duration") + valueStyle.Render(timeutil.FormatClock(r.Length())),
		" " + labelStyle.Render("Current Playback Time") + valueStyle.Render(timeutil.FormatClock(clampTime(timePos))),
	}
	if !r.Valid() {
		lines = append(lines, " "+styles.Warning.Render("Start time must be before end time."))
	}
	return RenderInfoBox("Range", lines, width)
}

// ClipProgressState holds the state of the clip being recorded.
type ClipProgressState struct {
	Active  bool
	Phase   string
	Spinner string
	Start   float64
	End     float64
	TimePos float64
}

// ClipProgress renders a bordered info box with the spinner, the capture
// phase and how much of the range has been recorded.
func ClipProgress(state ClipProgressState, width int) string {
	if !state.Active || width < 10 {
		return ""
	}

	greenStyle := lipgloss.NewStyle().Foreground(styles.Green)
	amberStyle := lipgloss.NewStyle().Foreground(styles.Amber)
	textStyle := lipgloss.NewStyle().Foreground(styles.LightLavender)

	innerW := width - 4
	if innerW < 6 {
		innerW = 6
	}

	var pct int
	if length := state.End - state.Start; length > 0 {
		pct = int((state.TimePos - state.Start) * 100 / length)
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	// Bar width: innerW minus " XXX%" label (5 chars) minus 1 space padding
	barWidth := innerW - 6
	if barWidth < 4 {
		barWidth = 4
	}
	filled := barWidth * pct / 100
	bar := greenStyle.Render(strings.Repeat("█", filled)) + amberStyle.Render(strings.Repeat("░", barWidth-filled))

	lines := []string{
		" " + state.Spinner + " " + textStyle.Render(fmt.Sprintf("%s %s - %s", state.Phase,
			timeutil.FormatClock(state.Start), timeutil.FormatClock(state.End))),
		" " + bar + textStyle.Render(fmt.Sprintf(" %3d%%", pct)),
	}
	return RenderInfoBox("Clipping", lines, width)
}

// ResultState is what the result panel shows.
type ResultState struct {
	Summary string
	Saved   string
	Failure string
}

// ResultPanel renders the finished clip or the failure of the last attempt.
func ResultPanel(state ResultState, width int) string {
	innerW := width - 4
	if innerW < 6 {
		innerW = 6
	}
	textStyle := lipgloss.NewStyle().Foreground(styles.LightLavender)
	dimStyle := lipgloss.NewStyle().Foreground(styles.Lavender).Italic(true)

	var lines []string
	if state.Failure != "" {
		lines = append(lines, " "+styles.Warning.Render(ansi.Truncate(state.Failure, innerW, "…")))
	}
	if state.Summary != "" {
		lines = append(lines,
			" "+styles.Success.Render("Clip Ready!"),
			" "+textStyle.Render(ansi.Truncate(state.Summary, innerW, "…")),
		)
		if state.Saved != "" {
			lines = append(lines, " "+dimStyle.Render(ansi.Truncate("Saved to "+state.Saved, innerW, "…")))
		} else {
			lines = append(lines, " "+dimStyle.Render("P to preview, D to save"))
		}
	}
	if len(lines) == 0 {
		lines = append(lines, " "+dimStyle.Render("Select a range and press C to clip"))
	}
	return RenderInfoBox("Clip", lines, width)
}
