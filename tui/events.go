package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/user/video-clipper-cli/capture"
)

// eventMsg carries a capture state change into Update.
type eventMsg capture.Event

// Observable is the part of the capture engine the TUI listens to.
type Observable interface {
	Observe(fn func(capture.Event))
}

// Subscribe forwards every event from o onto the returned channel. Sends
// give up once done is closed so a stopped TUI never blocks the engine.
func Subscribe(o Observable, done <-chan struct{}) <-chan capture.Event {
	ch := make(chan capture.Event, 16)
	o.Observe(func(ev capture.Event) {
		select {
		case ch <- ev:
		case <-done:
		}
	})
	return ch
}

// waitForEvent returns a tea.Cmd that waits for the next event on the channel.
func waitForEvent(ch <-chan capture.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return eventMsg(ev)
	}
}
