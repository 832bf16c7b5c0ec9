package components

// Binding is one key or key combination and what it does. Short labels the
// key in the sidebar control boxes; bindings without one only appear in help.
type Binding struct {
	Keys  string
	Short string
	Long  string
}

// BindingGroup is a titled set of bindings. Sections are drawn with a
// divider between them in the control boxes.
type BindingGroup struct {
	Title    string
	Sections [][]Binding
}

// Keymap returns every keybinding of the clipper, grouped by function.
func Keymap() []BindingGroup {
	return []BindingGroup{
		{
			Title: "Playback",
			Sections: [][]Binding{
				{
					{Keys: "Space", Short: "Play", Long: "Toggle play/pause"},
					{Keys: "H", Short: "Back", Long: "Step backward by the step size"},
					{Keys: "L", Short: "Fwd", Long: "Step forward by the step size"},
					{Keys: "M", Short: "Mute", Long: "Toggle mute"},
				},
				{
					{Keys: "<", Short: "Step -", Long: "Decrease step size"},
					{Keys: ">", Short: "Step +", Long: "Increase step size"},
				},
			},
		},
		{
			Title: "Range",
			Sections: [][]Binding{{
				{Keys: "[", Short: "Start here", Long: "Set start to the current time"},
				{Keys: "]", Short: "End here", Long: "Set end to the current time"},
				{Keys: "Tab", Short: "Handle", Long: "Switch between start and end handle"},
				{Keys: "← / →", Short: "Nudge", Long: "Nudge the focused handle"},
			}},
		},
		{
			Title: "Clip",
			Sections: [][]Binding{
				{
					{Keys: "C / Enter", Short: "Clip", Long: "Clip the selected range"},
					{Keys: "P", Short: "Preview", Long: "Preview the clip in mpv"},
					{Keys: "D", Short: "Save", Long: "Save the clip"},
				},
				{
					{Keys: "O", Short: "Open", Long: "Open a video file"},
					{Keys: "(drop)", Long: "Drop a file on the terminal to open it"},
				},
			},
		},
		{
			Title: "Commands",
			Sections: [][]Binding{{
				{Keys: ":", Short: "Command", Long: "Enter command mode (start, end, clip, save, open)"},
				{Keys: "Esc", Long: "Cancel command mode or form"},
				{Keys: "↑ / ↓", Long: "Recall earlier commands in command mode"},
				{Keys: "?", Short: "Help", Long: "Show/hide this help"},
				{Keys: "Q", Short: "Quit", Long: "Quit application"},
			}},
		},
	}
}
