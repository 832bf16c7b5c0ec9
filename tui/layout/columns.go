package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/video-clipper-cli/tui/styles"
)

// Responsive layout constants.
const (
	MinTerminalWidth   = 60 // minimum terminal width for any layout
	SideHideThreshold  = 90 // below this width, the history column is hidden
	SideMinWidth       = 30 // history column width in the medium layout
	SideMaxWidthFactor = 3  // in the wide layout the history column gets 1/3
)

// ComputeColumnWidths splits the terminal between the clip column and the
// history column. At >=120 width the history column gets a third, at 90-119
// it gets SideMinWidth, and below 90 it is hidden.
func ComputeColumnWidths(termWidth int) (main, side int, showSide bool) {
	showSide = termWidth >= SideHideThreshold
	if !showSide {
		return termWidth, 0, false
	}

	// One border character between the columns
	usableWidth := termWidth - 1
	if termWidth >= 120 {
		side = usableWidth / SideMaxWidthFactor
	} else {
		side = SideMinWidth
	}
	main = usableWidth - side
	return main, side, true
}

// JoinColumns joins pre-rendered column strings side by side with purple border separators.
// Each column is normalized to the given height and padded to its width.
func JoinColumns(columns []string, widths []int, height int) string {
	borderStr := lipgloss.NewStyle().
		Foreground(styles.Purple).
		Render("│")

	// Split each column into lines and normalize to height
	colLines := make([][]string, len(columns))
	for i, col := range columns {
		colLines[i] = NormalizeLines(strings.Split(col, "\n"), height)
	}

	var rows []string
	for row := 0; row < height; row++ {
		var parts []string
		for i, lines := range colLines {
			parts = append(parts, PadToWidth(lines[row], widths[i]))
		}
		rows = append(rows, strings.Join(parts, borderStr))
	}

	return strings.Join(rows, "\n")
}
