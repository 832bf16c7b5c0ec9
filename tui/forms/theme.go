package forms

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/user/video-clipper-cli/tui/styles"
)

// fieldPalette is the set of colours one focus state of a field is drawn in.
type fieldPalette struct {
	border, title, text, dim, accent lipgloss.Color
	button, buttonText              lipgloss.Color
	idleButton, idleButtonText      lipgloss.Color
}

var (
	focusedPalette = fieldPalette{
		border: styles.BrightPurple, title: styles.Pink, text: styles.LightLavender,
		dim: styles.Lavender, accent: styles.Cyan,
		button: styles.BrightPurple, buttonText: styles.LightLavender,
		idleButton: styles.Purple, idleButtonText: styles.Lavender,
	}
	blurredPalette = fieldPalette{
		border: styles.Purple, title: styles.Lavender, text: styles.Lavender,
		dim: styles.Purple, accent: styles.Purple,
		button: styles.Purple, buttonText: styles.Lavender,
		idleButton: styles.DeepPurple, idleButtonText: styles.Purple,
	}
)

// apply styles the parts of a field the clipper's forms draw: confirm
// buttons, the file picker listing and the text input.
func (p fieldPalette) apply(f *huh.FieldStyles) {
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

	f.Title = fg(p.title).Bold(p.title == styles.Pink)
	f.Description = fg(p.dim)
	f.ErrorIndicator = fg(styles.Pink).Bold(true)
	f.ErrorMessage = fg(styles.Pink)

	// File picker rows.
	f.SelectSelector = fg(p.accent).SetString("▸ ")
	f.Directory = fg(p.accent).Bold(true)
	f.File = fg(p.text)
	f.SelectedOption = fg(p.accent)
	f.Option = fg(p.text)

	f.TextInput.Cursor = fg(p.accent)
	f.TextInput.Prompt = fg(p.accent)
	f.TextInput.Placeholder = fg(styles.Purple)
	f.TextInput.Text = fg(p.text)

	f.FocusedButton = lipgloss.NewStyle().Background(p.button).Foreground(p.buttonText).Bold(p.button == styles.BrightPurple).Padding(0, 1)
	f.BlurredButton = lipgloss.NewStyle().Background(p.idleButton).Foreground(p.idleButtonText).Padding(0, 1)
	f.Next = f.FocusedButton
}

// Theme returns the huh theme matching the TUI palette. The focused field
// gets a thick left rule; blurred fields keep the space so nothing shifts.
func Theme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(focusedPalette.border).
		PaddingLeft(1)
	focusedPalette.apply(&t.Focused)

	t.Blurred.Base = t.Blurred.Base.
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true).
		PaddingLeft(1)
	blurredPalette.apply(&t.Blurred)

	return t
}
