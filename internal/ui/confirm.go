package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// confirmResultMsg carries the answer to a confirmation prompt.
type confirmResultMsg struct {
	confirmed bool
}

// confirmModal asks a yes/no question.
type confirmModal struct {
	prompt string
}

func newConfirm(prompt string) *confirmModal {
	return &confirmModal{prompt: prompt}
}

func answer(confirmed bool) tea.Cmd {
	return func() tea.Msg { return confirmResultMsg{confirmed: confirmed} }
}

// Update implements Modal. Keys other than yes or no are ignored.
func (c *confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case key.Matches(keyMsg, keys.Yes):
		return c, answer(true), true
	case key.Matches(keyMsg, keys.No):
		return c, answer(false), true
	}
	return c, nil, false
}

// View implements Modal.
func (c *confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.WarningText.Bold(true).Render(c.prompt))
	b.WriteString("\n\n")
	b.WriteString(styles.AccentText.Render("y"))
	b.WriteString(styles.MutedText.Render(" confirm   "))
	b.WriteString(styles.AccentText.Render("n"))
	b.WriteString(styles.MutedText.Render(" cancel"))

	box := styles.Modal.Width(min(max(width/2, 40), 64)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
