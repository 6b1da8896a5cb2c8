package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// clearToastMsg dismisses the toast with the matching id.
type clearToastMsg struct {
	id int
}

// toast is a transient notification. Each show bumps id so an older timer
// cannot dismiss a newer message.
type toast struct {
	id   int
	text string
}

func (t *toast) show(text string, ttl time.Duration) tea.Cmd {
	t.id++
	t.text = text
	id := t.id
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return clearToastMsg{id: id}
	})
}

func (t *toast) clear(msg clearToastMsg) {
	if msg.id == t.id {
		t.text = ""
	}
}

func (t toast) visible() bool {
	return t.text != ""
}
