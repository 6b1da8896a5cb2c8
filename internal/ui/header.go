package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/five82/craftbook/internal/filter"
	"github.com/five82/craftbook/internal/urlstate"
)

// renderLoading shows the spinner while the sheet downloads.
func (m Model) renderLoading() string {
	styles := m.theme.Styles()
	content := m.spinner.View() + " " + styles.Text.Render("Loading craft sheet...") +
		"\n\n" + styles.FaintText.Render("q to quit")
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// renderHeader renders the title bar: name, row counts, favourites mode.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	tbl := m.ctrl.Table()

	shown := len(tbl.Visible())
	counts := bg.Render(humanize.Comma(int64(shown)), styles.Text) + bg.Space() +
		bg.Render("of", styles.MutedText) + bg.Space() +
		bg.Render(humanize.Comma(int64(tbl.Total())), styles.Text) + bg.Space() +
		bg.Render("recipes", styles.MutedText)

	favStyle := styles.MutedText
	if m.ctrl.Mode() == filter.ModeFavouritesOnly {
		favStyle = styles.StarText.Bold(true)
	}

	parts := []string{
		bg.Render("craftbook", styles.Logo),
		counts,
		bg.Render(fmt.Sprintf("★ %d", m.ctrl.FavouriteCount()), styles.StarText),
		bg.Render(m.ctrl.ToggleLabel(), favStyle),
	}
	if m.width >= 100 && !m.loadedAt.IsZero() {
		parts = append(parts, bg.Render("loaded "+humanize.Time(m.loadedAt), styles.FaintText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderFilterBar shows each filter control's value and the search box.
func (m Model) renderFilterBar() string {
	styles := m.theme.Styles()
	labels := []struct {
		key   urlstate.Key
		hint  string
		label string
	}{
		{urlstate.Profession, "p", "Profession"},
		{urlstate.Gear, "t", "Gear"},
		{urlstate.Item, "i", "Item"},
		{urlstate.Crafter, "c", "Crafter"},
	}

	parts := make([]string, 0, len(labels)+1)
	for _, l := range labels {
		value := m.ctrl.FilterValue(l.key)
		valueStyle := styles.AccentText
		if value == "" {
			value = allOption
			valueStyle = styles.MutedText
		}
		parts = append(parts,
			styles.FaintText.Render("["+l.hint+"]")+" "+
				styles.MutedText.Render(l.label+":")+" "+
				valueStyle.Render(truncateMiddle(value, 28)))
	}

	switch {
	case m.searching:
		parts = append(parts, m.search.View())
	case m.ctrl.SearchTerm() != "":
		parts = append(parts, styles.MutedText.Render("Search:")+" "+styles.AccentText.Render(m.ctrl.SearchTerm()))
	}

	return " " + strings.Join(parts, "   ")
}

// renderFooter renders page position, the toast or status, and short help.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	tbl := m.ctrl.Table()

	pg := m.paginator
	pg.TotalPages = tbl.Pages()
	pg.Page = tbl.Page()

	left := styles.MutedText.Render(pg.View())
	switch {
	case m.toast.visible():
		left += "  " + styles.Toast.Render(m.toast.text)
	case m.status != "":
		left += "  " + styles.InfoText.Render(m.status)
	}

	right := m.help.View(m.keys)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		return " " + left
	}
	return " " + left + strings.Repeat(" ", gap) + right
}
