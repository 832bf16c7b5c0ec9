package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/video-clipper-cli/tui/styles"
)

// HelpOverlay renders Keymap as a panel centered in a width x height screen.
func HelpOverlay(width, height int) string {
	title := lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true).Padding(0, 1)
	group := lipgloss.NewStyle().Foreground(styles.Pink).Bold(true).MarginTop(1)
	keys := lipgloss.NewStyle().Foreground(styles.Lavender).Bold(true).Width(12)
	desc := lipgloss.NewStyle().Foreground(styles.LightLavender)
	footer := lipgloss.NewStyle().Foreground(styles.Lavender).Italic(true)

	lines := []string{title.Render("Keybindings"), ""}
	for _, g := range Keymap() {
		lines = append(lines, group.Render(g.Title))
		for _, section := range g.Sections {
			for _, b := range section {
				lines = append(lines, "  "+keys.Render(b.Keys)+desc.Render(b.Long))
			}
		}
	}
	lines = append(lines, "", footer.Render("Press any key to close"))

	panel := lipgloss.NewStyle().
		Background(styles.DarkPurple).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BrightPurple).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))

	// Center by margins so the overlay keeps its own background.
	left := max((width-lipgloss.Width(panel))/2, 0)
	top := max((height-lipgloss.Height(panel))/2, 0)
	return lipgloss.NewStyle().MarginLeft(left).MarginTop(top).Render(panel)
}
