package grid

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	kind  string
	name  string
	owner string
}

func columns(renders *int) []Column[item] {
	return []Column[item]{
		{
			Title: "",
			Render: func(id int, _ item) string {
				*renders++
				return fmt.Sprintf("#%d", id)
			},
		},
		{Title: "Kind", Orderable: true, Searchable: true, Value: func(r item) string { return r.kind }},
		{Title: "Name", Orderable: true, Searchable: true, Value: func(r item) string { return r.name }},
		{Title: "Owner", Searchable: true, Value: func(r item) string { return r.owner }},
	}
}

func sample() []item {
	return []item{
		{"Alchemy", "Flask of Power", "Ann"},
		{"Tailoring", "Silk Robe", "Bob, Ann"},
		{"Alchemy", "Elixir of Wits", "Cid"},
		{"Blacksmithing", "Iron Sword", "Bob"},
	}
}

func TestNew_DrawsEverythingInLoadOrder(t *testing.T) {
	var renders int
	tbl := New(sample(), columns(&renders), 0)

	assert.Equal(t, []int{0, 1, 2, 3}, tbl.Visible())
	assert.Equal(t, DefaultPageLength, tbl.PageLength())
	assert.Equal(t, 1, tbl.Draws())
	assert.Equal(t, 4, tbl.Total())
}

func TestColumnSearch_IsCaseInsensitiveSubstring(t *testing.T) {
	var renders int
	tbl := New(sample(), columns(&renders), 10)

	tbl.ColumnSearch(1, "alchemy")
	tbl.Draw(true)
	assert.Equal(t, []int{0, 2}, tbl.Visible())
	assert.Equal(t, "alchemy", tbl.ColumnSearchTerm(1))

	tbl.ColumnSearch(3, "ann")
	tbl.Draw(true)
	assert.Equal(t, []int{0}, tbl.Visible())

	tbl.ColumnSearch(1, "")
	tbl.Draw(true)
	assert.Equal(t, []int{0, 1}, tbl.Visible())
}

func TestColumnSearch_SmartWords(t *testing.T) {
	var renders int
	tbl := New(sample(), columns(&renders), 10)

	tbl.ColumnSearch(2, "of flask")
	tbl.Draw(true)
	assert.Equal(t, []int{0}, tbl.Visible())

	tbl.ColumnSearch(2, `"of w"`)
	tbl.Draw(true)
	assert.Equal(t, []int{2}, tbl.Visible())
}

func TestSearch_SpansSearchableColumns(t *testing.T) {
	var renders int
	tbl := New(sample(), columns(&renders), 10)

	tbl.Search("bob sword")
	tbl.Draw(true)
	assert.Equal(t, []int{3}, tbl.Visible())
	assert.Equal(t, "bob sword", tbl.SearchTerm())

	tbl.Search("")
	tbl.Draw(true)
	assert.Len(t, tbl.Visible(), 4)
}

func TestPredicates_AreANDedWithSearch(t *testing.T) {
	var renders int
	tbl := New(sample(), columns(&renders), 10)
	allowed := map[int]bool{1: true, 2: true}
	tbl.AddPredicate(func(id int) bool { return allowed[id] })
	tbl.AddPredicate(nil)

	tbl.Draw(true)
	assert.Equal(t, []int{1, 2}, tbl.Visible())

	tbl.ColumnSearch(1, "Alchemy")
	tbl.Draw(true)
	assert.Equal(t, []int{2}, tbl.Visible())
}

func TestOrder_StableAndIgnoresNonOrderable(t *testing.T) {
	var renders int
	tbl := New(sample(), columns(&renders), 10)

	tbl.Order(1, false)
	tbl.Draw(true)
	assert.Equal(t, []int{0, 2, 3, 1}, tbl.Visible())

	tbl.Order(1, true)
	tbl.Draw(true)
	assert.Equal(t, []int{1, 3, 0, 2}, tbl.Visible())

	tbl.Order(3, false)
	col, desc := tbl.Ordering()
	assert.Equal(t, 1, col)
	assert.True(t, desc)

	tbl.ClearOrder()
	tbl.Draw(true)
	assert.Equal(t, []int{0, 1, 2, 3}, tbl.Visible())
}

func TestCell_CachesUntilInvalidated(t *testing.T) {
	var renders int
	tbl := New(sample(), columns(&renders), 10)

	assert.Equal(t, "#1", tbl.Cell(1, 0))
	assert.Equal(t, "Silk Robe", tbl.Cell(1, 2))
	assert.Equal(t, 1, renders)

	tbl.InvalidateRow(1)
	tbl.Cell(1, 0)
	assert.Equal(t, 2, renders)

	tbl.Cell(0, 0)
	tbl.InvalidateAll()
	tbl.Cell(0, 0)
	tbl.Cell(1, 0)
	assert.Equal(t, 5, renders)

	assert.Empty(t, tbl.Cell(99, 0))
	assert.Empty(t, tbl.Cell(0, 99))
}

func TestPaging_HoldAndReset(t *testing.T) {
	rows := make([]item, 7)
	for i := range rows {
		rows[i] = item{kind: "k", name: fmt.Sprintf("n%d", i)}
	}
	var renders int
	tbl := New(rows, columns(&renders), 3)

	assert.Equal(t, 3, tbl.Pages())
	tbl.SetPage(2)
	assert.Equal(t, []int{6}, tbl.PageRows())

	tbl.Draw(false)
	assert.Equal(t, 2, tbl.Page())

	tbl.Draw(true)
	assert.Equal(t, 0, tbl.Page())
	assert.Equal(t, []int{0, 1, 2}, tbl.PageRows())

	tbl.SetPage(10)
	assert.Equal(t, 2, tbl.Page())
	tbl.SetPage(-1)
	assert.Equal(t, 0, tbl.Page())
}

func TestPaging_ClampsWhenRowsShrink(t *testing.T) {
	var renders int
	tbl := New(sample(), columns(&renders), 2)
	tbl.SetPage(1)

	tbl.ColumnSearch(2, "Flask")
	tbl.Draw(false)
	assert.Equal(t, 0, tbl.Page())
	assert.Equal(t, []int{0}, tbl.PageRows())

	tbl.ColumnSearch(2, "nothing matches")
	tbl.Draw(false)
	assert.Equal(t, 1, tbl.Pages())
	assert.Empty(t, tbl.PageRows())
}

func TestRow(t *testing.T) {
	var renders int
	tbl := New(sample(), columns(&renders), 2)

	r, ok := tbl.Row(3)
	require.True(t, ok)
	assert.Equal(t, "Iron Sword", r.name)

	_, ok = tbl.Row(-1)
	assert.False(t, ok)
}

func TestSplitWords(t *testing.T) {
	assert.Equal(t, []string{"a", "b c", "d"}, splitWords(`a "b c"  d`))
	assert.Empty(t, splitWords("   "))
}
