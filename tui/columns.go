package tui

import (
	"strings"

	"github.com/user/video-clipper-cli/capture"
	"github.com/user/video-clipper-cli/tui/components"
	"github.com/user/video-clipper-cli/tui/layout"
)

// historyLimit is how many clip attempts the history column lists.
const historyLimit = 20

// minHistoryRows is the smallest history box worth drawing.
const minHistoryRows = 7

// renderMainColumn renders the clip column: loaded video, range, and either
// the capture progress or the last result.
func (m *Model) renderMainColumn(width, height int) string {
	var boxes []string

	boxes = append(boxes, components.SourcePanel(m.sourceState(), width))
	boxes = append(boxes, components.RangePanel(m.currentRange(), m.statusBar.TimePos, m.focus == FocusEnd, width))

	if m.clipState.Busy() {
		boxes = append(boxes, components.ClipProgress(components.ClipProgressState{
			Active:  true,
			Phase:   phaseLabel(m.clipState),
			Spinner: m.spinner.View(),
			Start:   m.activeRange.Start,
			End:     m.activeRange.End,
			TimePos: m.statusBar.TimePos,
		}, width))
	} else {
		boxes = append(boxes, components.ResultPanel(components.ResultState{
			Summary: m.presenter.Summary(),
			Saved:   m.savedPath,
			Failure: m.presenter.Failure(),
		}, width))
	}

	return layout.Container{Width: width, Height: height}.Render(strings.Join(boxes, "\n"))
}

// renderSideColumn renders the clip history above the keybinding control groups.
func (m *Model) renderSideColumn(width, height int) string {
	var lines []string

	var controls []string
	controlsHeight := 0
	for _, group := range components.GetControlGroups() {
		box := components.RenderControlBox(group, width)
		controls = append(controls, box)
		controlsHeight += strings.Count(box, "\n") + 1
	}

	// Drop control boxes from the bottom until history keeps minHistoryRows.
	for len(controls) > 0 && height-controlsHeight < minHistoryRows {
		last := controls[len(controls)-1]
		controlsHeight -= strings.Count(last, "\n") + 1
		controls = controls[:len(controls)-1]
	}
	historyHeight := height - controlsHeight
	lines = append(lines, components.History(m.history, m.totals, width, historyHeight))
	lines = append(lines, controls...)

	return layout.Container{Width: width, Height: height}.Render(strings.Join(lines, "\n"))
}

func phaseLabel(s capture.State) string {
	switch s {
	case capture.StatePreparing:
		return "Preparing"
	case capture.StateRecording:
		return "Recording"
	case capture.StateFinalizing:
		return "Finalizing"
	default:
		return ""
	}
}
