package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/video-clipper-cli/pkg/timeutil"
	"github.com/user/video-clipper-cli/selection"
	"github.com/user/video-clipper-cli/tui/styles"
)

// Timeline renders the playback bar with the selected clip range highlighted.
// The range is placed from its offset and width percentages so the bar
// matches the numbers shown in the range panel. Total output height is 6
// lines: top border, padding, bar, handle row, padding, bottom border.
// A nil range draws the bar without a selection.
func Timeline(timePos float64, r *selection.Range, focusEnd bool, width int) string {
	if width < 20 {
		return ""
	}

	// Inner width = width - 4 (2 border chars + 2 padding spaces)
	innerWidth := width - 4

	filledStyle := lipgloss.NewStyle().Foreground(styles.Purple)
	timeStyle := lipgloss.NewStyle().Foreground(styles.LightLavender).Bold(true)
	posStyle := lipgloss.NewStyle().Foreground(styles.Pink).Bold(true)
	handleStyle := lipgloss.NewStyle().Foreground(styles.Lavender)

	duration := 0.0
	if r != nil {
		duration = r.Duration
	}
	timeDisplay := fmt.Sprintf(" %s / %s", timeutil.FormatClock(clampTime(timePos)), timeutil.FormatClock(clampTime(duration)))

	// Bar width = inner width minus time display and spacing
	barWidth := innerWidth - lipgloss.Width(timeDisplay) - 2
	if barWidth < 10 {
		barWidth = 10
	}

	playhead := -1
	if duration > 0 {
		playhead = clampCol(int(math.Round(float64(barWidth-1)*timePos/duration)), barWidth)
	}

	selStart, selEnd := -1, -1
	if r != nil && duration > 0 {
		selStart = clampCol(int(math.Round(float64(barWidth)*r.OffsetPercent()/100)), barWidth)
		selEnd = clampCol(int(math.Round(float64(barWidth)*(r.OffsetPercent()+r.WidthPercent())/100))-1, barWidth)
		if selEnd < selStart {
			selEnd = selStart
		}
	}

	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		switch {
		case i == playhead:
			bar.WriteString(posStyle.Render("┃"))
		case i >= selStart && i <= selEnd:
			bar.WriteString(styles.Selected.Render("█"))
		default:
			bar.WriteString(filledStyle.Render("─"))
		}
	}
	barLine := " " + bar.String() + " " + timeStyle.Render(timeDisplay)

	// Handle row: S under the range start, E under the end, the focused one highlighted
	var handles strings.Builder
	handles.WriteString(" ")
	for i := 0; i < barWidth; i++ {
		switch {
		case i == selStart:
			handles.WriteString(handleMark("S", !focusEnd, handleStyle))
		case i == selEnd:
			handles.WriteString(handleMark("E", focusEnd, handleStyle))
		case i == playhead:
			handles.WriteString(posStyle.Render("▲"))
		default:
			handles.WriteString(" ")
		}
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Purple)
	boxInner := width - 2
	wrapLine := func(content string) string {
		pad := boxInner - lipgloss.Width(content)
		if pad < 0 {
			pad = 0
		}
		return borderStyle.Render("│") + content + strings.Repeat(" ", pad) + borderStyle.Render("│")
	}

	// Tab header: ╭─ Timeline ─────╮
	headerText := lipgloss.NewStyle().Foreground(styles.Pink).Bold(true).Render(" Timeline ")
	fillWidth := boxInner - 1 - lipgloss.Width(headerText)
	if fillWidth < 0 {
		fillWidth = 0
	}
	topLine := borderStyle.Render("╭─") + headerText + borderStyle.Render(strings.Repeat("─", fillWidth)+"╮")
	bottomLine := borderStyle.Render("╰" + strings.Repeat("─", boxInner) + "╯")
	emptyLine := wrapLine("")

	return strings.Join([]string{topLine, emptyLine, wrapLine(barLine), wrapLine(handles.String()), emptyLine, bottomLine}, "\n")
}

func handleMark(mark string, focused bool, base lipgloss.Style) string {
	if focused {
		return styles.Focused.Render(mark)
	}
	return base.Render(mark)
}

func clampCol(col, width int) int {
	if col < 0 {
		return 0
	}
	if col >= width {
		return width - 1
	}
	return col
}
