package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/user/video-clipper-cli/pkg/timeutil"
	"github.com/user/video-clipper-cli/tui/styles"
)

// HistoryItem is one clip attempt in the history panel.
type HistoryItem struct {
	// Source is the name of the video the clip was cut from
	Source string
	// Start and End are the recorded range in seconds
	Start float64
	End   float64
	// State is the attempt's last known state (ready, failed, recording...)
	State string
	// Size is the clip size in bytes, when ready
	Size int64
	// Error is the failure message, when failed
	Error string
	// Saved is true once the clip was written to disk
	Saved bool
}

// HistoryTotals summarizes every attempt in this run.
type HistoryTotals struct {
	Total  int
	Ready  int
	Failed int
	Bytes  int64
}

// History renders the most recent clip attempts, newest first, inside an
// info box with a totals line. Rows beyond height are dropped.
func History(items []HistoryItem, totals HistoryTotals, width, height int) string {
	headerStyle := lipgloss.NewStyle().Foreground(styles.Lavender).Bold(true).Underline(true)
	textStyle := lipgloss.NewStyle().Foreground(styles.LightLavender)
	dimStyle := lipgloss.NewStyle().Foreground(styles.Purple).Italic(true)
	failStyle := lipgloss.NewStyle().Foreground(styles.Red)
	okStyle := lipgloss.NewStyle().Foreground(styles.Green)

	innerW := width - 4
	if innerW < 10 {
		innerW = 10
	}

	var lines []string
	lines = append(lines, " "+headerStyle.Render(fmt.Sprintf("%-19s %s", "Range", "Result")))

	if len(items) == 0 {
		lines = append(lines, " "+dimStyle.Render("No clips yet"))
	}

	// Each item is two lines; header + totals take three
	maxItems := (height - 5) / 2
	if maxItems < 1 {
		maxItems = 1
	}
	for i, item := range items {
		if i >= maxItems {
			break
		}
		rangeStr := fmt.Sprintf("%s-%s", timeutil.FormatClock(item.Start), timeutil.FormatClock(item.End))

		var result string
		switch item.State {
		case "ready":
			mark := "✓"
			if item.Saved {
				mark = "✓ saved"
			}
			result = okStyle.Render(fmt.Sprintf("%s %s", mark, humanize.Bytes(uint64(item.Size))))
		case "failed":
			result = failStyle.Render("✗ failed")
		default:
			result = textStyle.Render(item.State + "…")
		}
		lines = append(lines, " "+textStyle.Render(rangeStr)+" "+result)

		detail := item.Source
		if item.State == "failed" && item.Error != "" {
			detail = item.Error
		}
		lines = append(lines, "   "+dimStyle.Render(ansi.Truncate(detail, innerW-2, "…")))
	}

	totalsLine := fmt.Sprintf("%d clips, %d ready, %d failed, %s", totals.Total, totals.Ready, totals.Failed, humanize.Bytes(uint64(totals.Bytes)))
	lines = append(lines, " "+textStyle.Render(ansi.Truncate(totalsLine, innerW, "…")))

	return RenderInfoBox("History", lines, width)
}
