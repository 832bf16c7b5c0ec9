package tui

// FocusTarget represents which range handle the arrow keys move.
type FocusTarget int

const (
	// FocusStart moves the start handle.
	FocusStart FocusTarget = iota
	// FocusEnd moves the end handle.
	FocusEnd
)

// Toggle returns the other handle.
func (f FocusTarget) Toggle() FocusTarget {
	if f == FocusStart {
		return FocusEnd
	}
	return FocusStart
}

func (f FocusTarget) String() string {
	if f == FocusEnd {
		return "end"
	}
	return "start"
}
