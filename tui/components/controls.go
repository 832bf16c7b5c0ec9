// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/user/video-clipper-cli/tui/styles"
)

// Control is one row of a control box.
type Control struct {
	Name     string
	Shortcut string
}

// ControlGroup is one control box. SubGroups are separated by dividers.
type ControlGroup struct {
	Name      string
	SubGroups [][]Control
}

// GetControlGroups builds the sidebar control boxes from Keymap, leaving out
// bindings without a short label.
func GetControlGroups() []ControlGroup {
	var groups []ControlGroup
	for _, g := range Keymap() {
		group := ControlGroup{Name: g.Title}
		for _, section := range g.Sections {
			var controls []Control
			for _, b := range section {
				if b.Short == "" {
					continue
				}
				controls = append(controls, Control{Name: b.Short, Shortcut: b.Keys})
			}
			if len(controls) > 0 {
				group.SubGroups = append(group.SubGroups, controls)
			}
		}
		if len(group.SubGroups) > 0 {
			groups = append(groups, group)
		}
	}
	return groups
}

// RenderInfoBox draws a rounded box of exactly width columns with the title
// set into the top border. Lines are padded but not styled.
func RenderInfoBox(title string, contentLines []string, width int) string {
	if width < 4 {
		return ""
	}
	inner := width - 2
	border := lipgloss.NewStyle().Foreground(styles.Purple)
	header := lipgloss.NewStyle().Foreground(styles.Pink).Bold(true).Render(" " + title + " ")

	fill := max(width-3-lipgloss.Width(header), 0)
	out := make([]string, 0, len(contentLines)+2)
	out = append(out, border.Render("╭─")+header+border.Render(strings.Repeat("─", fill)+"╮"))
	for _, line := range contentLines {
		pad := max(inner-lipgloss.Width(line), 0)
		out = append(out, border.Render("│")+line+strings.Repeat(" ", pad)+border.Render("│"))
	}
	out = append(out, border.Render("╰"+strings.Repeat("─", inner)+"╯"))
	return strings.Join(out, "\n")
}

// RenderControlBox draws a control group with a raised tab header:
//
//	 ┌───────┐
//	┌┤ Range ├┐
//	│└───────┘└───────────────┐
//	│ Start here  [ [ ]       │
//	├─────────────────────────┤
//	│ Clip        [ C ]       │
//	└─────────────────────────┘
func RenderControlBox(group ControlGroup, width int) string {
	if width < 6 {
		return ""
	}
	border := lipgloss.NewStyle().Foreground(styles.Purple)
	header := lipgloss.NewStyle().Foreground(styles.Pink).Bold(true)
	name := lipgloss.NewStyle().Foreground(styles.LightLavender)
	key := lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)

	inner := width - 2
	tab := " " + group.Name + " "
	tabW := lipgloss.Width(tab)
	rule := strings.Repeat("─", tabW)

	lines := []string{
		" " + border.Render("┌"+rule+"┐"),
		border.Render("┌┤") + header.Render(tab) + border.Render("├┐"),
		border.Render("│└" + rule + "┘└" + strings.Repeat("─", max(inner-tabW-3, 0)) + "┐"),
	}

	nameW := 0
	for _, sg := range group.SubGroups {
		for _, c := range sg {
			nameW = max(nameW, len(c.Name))
		}
	}

	for i, sg := range group.SubGroups {
		if i > 0 {
			lines = append(lines, border.Render("├"+strings.Repeat("─", inner)+"┤"))
		}
		for _, c := range sg {
			cell := name.Render(fmt.Sprintf("%-*s", nameW, c.Name)) + "  " + key.Render("[ "+c.Shortcut+" ]")
			pad := max(inner-2-lipgloss.Width(cell), 0)
			row := border.Render("│") + " " + cell + strings.Repeat(" ", pad) + " " + border.Render("│")
			if lipgloss.Width(row) > width {
				row = ansi.Truncate(row, width, "")
			}
			lines = append(lines, row)
		}
	}

	lines = append(lines, border.Render("└"+strings.Repeat("─", inner)+"┘"))
	return strings.Join(lines, "\n")
}
