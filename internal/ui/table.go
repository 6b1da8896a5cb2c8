package ui

import (
	"strings"

	"github.com/five82/craftbook/internal/controller"
	"github.com/five82/craftbook/internal/grid"
	"github.com/five82/craftbook/internal/sheet"
)

const emptyTableText = "No matching records found"

// columnWidths splits total display cells across columns by their percent
// widths. Columns without a width share what is left; one space separates
// adjacent columns.
func columnWidths(cols []grid.Column[sheet.Row], total int) []int {
	widths := make([]int, len(cols))
	if len(cols) == 0 {
		return widths
	}
	avail := max(total-(len(cols)-1), len(cols))

	used, flexible := 0, 0
	for i, c := range cols {
		if c.Width <= 0 {
			flexible++
			continue
		}
		widths[i] = max(avail*c.Width/100, 2)
		used += widths[i]
	}
	if flexible > 0 {
		share := max((avail-used)/flexible, 8)
		for i, c := range cols {
			if c.Width <= 0 {
				widths[i] = share
			}
		}
	}
	return widths
}

// renderTable renders the header row and the current page, windowed to
// height lines so the cursor stays visible.
func (m Model) renderTable(height int) string {
	styles := m.theme.Styles()
	tbl := m.ctrl.Table()
	cols := tbl.Columns()
	width := max(m.width-2, 40)
	widths := columnWidths(cols, width)

	orderCol, desc := tbl.Ordering()
	titles := make([]string, len(cols))
	for i, c := range cols {
		title := c.Title
		if i == orderCol {
			if desc {
				title += " ▼"
			} else {
				title += " ▲"
			}
		}
		titles[i] = fit(title, widths[i])
	}

	var b strings.Builder
	b.WriteString(" ")
	b.WriteString(styles.ColumnHeader.Render(strings.Join(titles, " ")))

	rows := tbl.PageRows()
	if len(rows) == 0 {
		b.WriteString("\n ")
		b.WriteString(styles.MutedText.Render(emptyTableText))
		return padLines(b.String(), height)
	}

	bodyHeight := max(height-1, 1)
	start := 0
	if m.cursor >= bodyHeight {
		start = m.cursor - bodyHeight + 1
	}
	end := min(start+bodyHeight, len(rows))

	for i := start; i < end; i++ {
		id := rows[i]
		cells := make([]string, len(cols))
		for col := range cols {
			cells[col] = fit(tbl.Cell(id, col), widths[col])
		}
		b.WriteString("\n ")
		if i == m.cursor {
			b.WriteString(styles.Selected.Render(strings.Join(cells, " ")))
			continue
		}
		if cells[controller.ColStar] != "" && m.ctrl.IsFavourite(id) {
			cells[controller.ColStar] = styles.StarText.Render(cells[controller.ColStar])
		}
		b.WriteString(styles.Text.Render(strings.Join(cells, " ")))
	}
	return padLines(b.String(), height)
}

// padLines appends blank lines until s spans height lines.
func padLines(s string, height int) string {
	if n := strings.Count(s, "\n") + 1; n < height {
		s += strings.Repeat("\n", height-n)
	}
	return s
}
