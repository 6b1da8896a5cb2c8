package grid

import (
	"slices"
	"strings"
)

// DefaultPageLength is used when a table is built with a non-positive page length.
const DefaultPageLength = 25

// Column describes one table column.
type Column[R any] struct {
	Title      string
	Width      int // percent of the available width; zero shares what is left
	Orderable  bool
	Searchable bool

	// Value returns the text used for searching and ordering.
	Value func(row R) string
	// Render returns the display text. When nil, Value is displayed.
	Render func(id int, row R) string
}

// Predicate is a row-visibility hook. All predicates must pass for a row to
// be visible, in addition to the column and global searches.
type Predicate func(id int) bool

// Table filters, orders and pages rows identified by their load position.
// Search terms and ordering take effect on the next Draw.
type Table[R any] struct {
	cols []Column[R]
	rows []R

	colSearch []matcher
	colTerms  []string
	global    matcher
	globalRaw string
	preds     []Predicate

	orderCol  int
	orderDesc bool

	pageLen int
	page    int
	visible []int
	cache   map[int][]string
	draws   int
}

// New returns a table over rows drawn once with every row visible.
func New[R any](rows []R, cols []Column[R], pageLength int) *Table[R] {
	if pageLength <= 0 {
		pageLength = DefaultPageLength
	}
	t := &Table[R]{
		cols:      cols,
		rows:      rows,
		colSearch: make([]matcher, len(cols)),
		colTerms:  make([]string, len(cols)),
		orderCol:  -1,
		pageLen:   pageLength,
		cache:     make(map[int][]string),
	}
	t.Draw(true)
	return t
}

// Columns returns the column definitions.
func (t *Table[R]) Columns() []Column[R] {
	return t.cols
}

// ColumnSearch sets the search term for column col.
func (t *Table[R]) ColumnSearch(col int, term string) {
	if col < 0 || col >= len(t.cols) {
		return
	}
	t.colTerms[col] = term
	t.colSearch[col] = compile(term)
}

// ColumnSearchTerm returns the current search term for column col.
func (t *Table[R]) ColumnSearchTerm(col int) string {
	if col < 0 || col >= len(t.cols) {
		return ""
	}
	return t.colTerms[col]
}

// Search sets the global search term, matched across searchable columns.
func (t *Table[R]) Search(term string) {
	t.globalRaw = term
	t.global = compile(term)
}

// SearchTerm returns the global search term.
func (t *Table[R]) SearchTerm() string {
	return t.globalRaw
}

// AddPredicate registers a row-visibility hook.
func (t *Table[R]) AddPredicate(p Predicate) {
	if p != nil {
		t.preds = append(t.preds, p)
	}
}

// Order sorts by column col. Non-orderable columns are ignored.
func (t *Table[R]) Order(col int, desc bool) {
	if col < 0 || col >= len(t.cols) || !t.cols[col].Orderable {
		return
	}
	t.orderCol = col
	t.orderDesc = desc
}

// ClearOrder restores load order.
func (t *Table[R]) ClearOrder() {
	t.orderCol = -1
	t.orderDesc = false
}

// Ordering returns the ordered column (-1 for load order) and direction.
func (t *Table[R]) Ordering() (int, bool) {
	return t.orderCol, t.orderDesc
}

// Draw recomputes the visible rows. resetPaging returns to the first page;
// otherwise the current page is kept, clamped to the new page count.
func (t *Table[R]) Draw(resetPaging bool) {
	visible := make([]int, 0, len(t.rows))
	for id := range t.rows {
		if t.passes(id) {
			visible = append(visible, id)
		}
	}

	if t.orderCol >= 0 {
		value := t.cols[t.orderCol].Value
		slices.SortStableFunc(visible, func(a, b int) int {
			c := strings.Compare(strings.ToLower(value(t.rows[a])), strings.ToLower(value(t.rows[b])))
			if t.orderDesc {
				return -c
			}
			return c
		})
	}

	t.visible = visible
	if resetPaging {
		t.page = 0
	}
	t.clampPage()
	t.draws++
}

func (t *Table[R]) passes(id int) bool {
	row := t.rows[id]
	for col, m := range t.colSearch {
		if m.empty() {
			continue
		}
		if !m.match(t.value(col, row)) {
			return false
		}
	}
	if !t.global.empty() {
		var parts []string
		for col, c := range t.cols {
			if c.Searchable {
				parts = append(parts, t.value(col, row))
			}
		}
		if !t.global.match(strings.Join(parts, "  ")) {
			return false
		}
	}
	for _, p := range t.preds {
		if !p(id) {
			return false
		}
	}
	return true
}

func (t *Table[R]) value(col int, row R) string {
	if v := t.cols[col].Value; v != nil {
		return v(row)
	}
	return ""
}

// Cell returns the rendered text for a row and column, rendering on first
// use and serving the cached text until the row is invalidated.
func (t *Table[R]) Cell(id, col int) string {
	if id < 0 || id >= len(t.rows) || col < 0 || col >= len(t.cols) {
		return ""
	}
	cells, ok := t.cache[id]
	if !ok {
		cells = t.render(id)
		t.cache[id] = cells
	}
	return cells[col]
}

func (t *Table[R]) render(id int) []string {
	row := t.rows[id]
	cells := make([]string, len(t.cols))
	for col, c := range t.cols {
		switch {
		case c.Render != nil:
			cells[col] = c.Render(id, row)
		case c.Value != nil:
			cells[col] = c.Value(row)
		}
	}
	return cells
}

// InvalidateRow drops the cached rendering for one row.
func (t *Table[R]) InvalidateRow(id int) {
	delete(t.cache, id)
}

// InvalidateAll drops every cached rendering.
func (t *Table[R]) InvalidateAll() {
	clear(t.cache)
}

// Row returns the row with identifier id.
func (t *Table[R]) Row(id int) (R, bool) {
	if id < 0 || id >= len(t.rows) {
		var zero R
		return zero, false
	}
	return t.rows[id], true
}

// Rows returns every row in load order.
func (t *Table[R]) Rows() []R {
	return t.rows
}

// Total returns the number of rows regardless of filtering.
func (t *Table[R]) Total() int {
	return len(t.rows)
}

// Visible returns the identifiers visible after the last draw, in display order.
func (t *Table[R]) Visible() []int {
	return t.visible
}

// Draws counts Draw calls.
func (t *Table[R]) Draws() int {
	return t.draws
}

// PageLength returns the number of rows per page.
func (t *Table[R]) PageLength() int {
	return t.pageLen
}

// Page returns the zero-based current page.
func (t *Table[R]) Page() int {
	return t.page
}

// Pages returns the page count; an empty result has one page.
func (t *Table[R]) Pages() int {
	if len(t.visible) == 0 {
		return 1
	}
	return (len(t.visible) + t.pageLen - 1) / t.pageLen
}

// SetPage moves to page p, clamped to the valid range.
func (t *Table[R]) SetPage(p int) {
	t.page = p
	t.clampPage()
}

func (t *Table[R]) clampPage() {
	if last := t.Pages() - 1; t.page > last {
		t.page = last
	}
	if t.page < 0 {
		t.page = 0
	}
}

// PageRows returns the identifiers on the current page.
func (t *Table[R]) PageRows() []int {
	start := t.page * t.pageLen
	if start >= len(t.visible) {
		return nil
	}
	end := min(start+t.pageLen, len(t.visible))
	return t.visible[start:end]
}
