package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/craftbook/internal/sheet"
	"github.com/five82/craftbook/internal/urlstate"
)

// allOption is the first picker entry; choosing it clears the filter.
const allOption = "All"

// pickedMsg reports a filter value chosen in a picker.
type pickedMsg struct {
	key   urlstate.Key
	value string
}

type pickerItem struct {
	label string
	value string
	group string
}

func (i pickerItem) Title() string       { return i.label }
func (i pickerItem) Description() string { return i.group }
func (i pickerItem) FilterValue() string { return i.label }

// pickerTitles are the dropdown captions per filter key.
var pickerTitles = map[urlstate.Key]string{
	urlstate.Profession: "Profession",
	urlstate.Gear:       "Gear Slot",
	urlstate.Item:       "Item/Enchant",
	urlstate.Crafter:    "Crafter",
}

// pickerOptions builds the dropdown entries for key from the loaded rows.
// Gear slots carry their group as the description.
func pickerOptions(key urlstate.Key, rows []sheet.Row) []pickerItem {
	items := []pickerItem{{label: allOption}}
	add := func(values []string, group string) {
		for _, v := range values {
			items = append(items, pickerItem{label: v, value: v, group: group})
		}
	}
	switch key {
	case urlstate.Profession:
		add(sheet.Professions(rows), "")
	case urlstate.Gear:
		for _, g := range sheet.GearSlotGroups(rows) {
			add(g.Slots, g.Name)
		}
	case urlstate.Item:
		add(sheet.ItemNames(rows), "")
	case urlstate.Crafter:
		add(sheet.Crafters(rows), "")
	}
	return items
}

// pickerModal is a filterable dropdown for one filter control.
type pickerModal struct {
	key  urlstate.Key
	list list.Model
}

func newPicker(key urlstate.Key, rows []sheet.Row, current string, theme Theme, width, height int) *pickerModal {
	options := pickerOptions(key, rows)
	items := make([]list.Item, len(options))
	selected := 0
	for i, opt := range options {
		items[i] = opt
		if current != "" && opt.value == current {
			selected = i
		}
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = key == urlstate.Gear
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color(theme.Accent)).
		BorderForeground(lipgloss.Color(theme.Accent))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color(theme.Muted)).
		BorderForeground(lipgloss.Color(theme.Accent))

	w, h := pickerSize(width, height)
	l := list.New(items, delegate, w, h)
	l.Title = pickerTitles[key]
	l.Styles.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Background)).
		Background(lipgloss.Color(theme.Accent)).
		Padding(0, 1)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	l.Select(selected)

	return &pickerModal{key: key, list: l}
}

func pickerSize(width, height int) (int, int) {
	w := min(max(width/2, 30), 60)
	h := max(height-8, 10)
	return w, h
}

// Update implements Modal.
func (p *pickerModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && p.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(keyMsg, keys.Confirm):
			item, ok := p.list.SelectedItem().(pickerItem)
			if !ok {
				return p, nil, true
			}
			picked := pickedMsg{key: p.key, value: item.value}
			return p, func() tea.Msg { return picked }, true
		case key.Matches(keyMsg, keys.Cancel) && p.list.FilterState() == list.Unfiltered:
			return p, nil, true
		}
	}

	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return p, cmd, false
}

// View implements Modal.
func (p *pickerModal) View(theme Theme, width, height int) string {
	box := theme.Styles().Modal.Padding(0, 1).Render(p.list.View())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
