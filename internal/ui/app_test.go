package ui

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/five82/craftbook/internal/controller"
	"github.com/five82/craftbook/internal/favourites"
	"github.com/five82/craftbook/internal/filter"
	"github.com/five82/craftbook/internal/icons"
	"github.com/five82/craftbook/internal/localstore"
	"github.com/five82/craftbook/internal/sheet"
	"github.com/five82/craftbook/internal/urlstate"
)

type fakeLoader struct {
	rows []sheet.Row
	err  error
}

func (f fakeLoader) Fetch(context.Context) ([]sheet.Row, error) {
	return f.rows, f.err
}

func testRows() []sheet.Row {
	rows := []sheet.Row{
		{Profession: "Alchemy", ItemType: "Flask", Name: "Flask of the Warm Sun", SpellID: "76084", Crafters: "Ann, Bob"},
		{Profession: "Tailoring", ItemType: "Chest", Name: "Robes of Misty Bindings", Crafters: "Bob"},
		{Profession: "Alchemy", ItemType: "Potion/Elixir", Name: "Potion of the Jade Serpent", Crafters: "Cid"},
		{Profession: "Jewelcrafting", ItemType: "Red Gem", Name: "Bold Primordial Ruby", SpellID: "107705", TextureID: "134400", Crafters: "Dee"},
		{Profession: "Blacksmithing", ItemType: "Main Hand", Name: "Ghost Iron Sword", Crafters: "Ann"},
	}
	for i := range rows {
		rows[i].ID = i
	}
	return rows
}

func newTestModel(t *testing.T, storage localstore.Storage, link string, pageLength int) Model {
	t.Helper()
	m := New(Options{
		Loader:     fakeLoader{rows: testRows()},
		Storage:    storage,
		Link:       link,
		PageLength: pageLength,
		Logger:     zaptest.NewLogger(t),
	})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func loaded(t *testing.T, storage localstore.Storage, link string, pageLength int) Model {
	t.Helper()
	m := newTestModel(t, storage, link, pageLength)
	msg := loadSheetCmd(context.Background(), m.loader)()
	require.IsType(t, sheetLoadedMsg{}, msg)
	m, _ = update(t, m, msg)
	require.False(t, m.loading)
	require.NotNil(t, m.ctrl)
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestLoading_OnlyQuitIsHandled(t *testing.T) {
	m := newTestModel(t, localstore.NewMemory(), "craftbook://browse", 25)
	require.True(t, m.loading)

	m, cmd := update(t, m, keyRunes("F"))
	assert.Nil(t, cmd)
	assert.Nil(t, m.ctrl)
	assert.Contains(t, m.View(), "Loading")

	_, cmd = update(t, m, keyRunes("q"))
	assert.True(t, isQuit(cmd))
}

func TestSheetError_EndsProgram(t *testing.T) {
	boom := errors.New("sheet returned status 500")
	m := New(Options{Loader: fakeLoader{err: boom}, Logger: zaptest.NewLogger(t)})

	msg := loadSheetCmd(context.Background(), m.loader)()
	m, cmd := update(t, m, msg)
	assert.True(t, isQuit(cmd))
	assert.ErrorIs(t, m.Err(), boom)
	assert.Empty(t, m.View())
}

func TestLoadSheetCmd_NoLoader(t *testing.T) {
	msg := loadSheetCmd(context.Background(), nil)()
	errMsg, ok := msg.(sheetErrMsg)
	require.True(t, ok)
	assert.Error(t, errMsg.err)
}

func TestLoaded_AppliesLinkFilters(t *testing.T) {
	m := loaded(t, localstore.NewMemory(), "craftbook://browse?profession=Alchemy", 25)

	assert.Equal(t, []int{0, 2}, m.ctrl.Table().Visible())
	link, active := m.ShareLink()
	assert.True(t, active)
	assert.Contains(t, link, "profession=Alchemy")

	view := m.View()
	assert.Contains(t, view, "Flask of the Warm Sun")
	assert.NotContains(t, view, "Robes of Misty Bindings")
}

func TestStarKey_PersistsFavourite(t *testing.T) {
	storage := localstore.NewMemory()
	m := loaded(t, storage, "craftbook://browse", 25)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.True(t, m.ctrl.IsFavourite(0))
	raw, ok, err := storage.GetItem(favourites.StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[0]", raw)

	m, _ = update(t, m, keyRunes("j"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.True(t, m.ctrl.IsFavourite(1))
	assert.Equal(t, 2, m.ctrl.FavouriteCount())
}

func TestStarKey_PersistFailureShowsStatus(t *testing.T) {
	storage := localstore.NewMemory()
	m := loaded(t, storage, "craftbook://browse", 25)
	require.NoError(t, storage.Close())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.True(t, m.ctrl.IsFavourite(0))
	assert.Contains(t, m.status, "Star not saved")
	assert.Contains(t, m.status, localstore.ErrClosed.Error())
	assert.Contains(t, m.View(), "Star not saved")
}

func TestFavouritesOnlyKey(t *testing.T) {
	m := loaded(t, localstore.NewMemory(), "craftbook://browse", 25)
	m, _ = update(t, m, keyRunes("j"))
	m, _ = update(t, m, keyRunes("j"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})

	m, _ = update(t, m, keyRunes("F"))
	assert.Equal(t, filter.ModeFavouritesOnly, m.ctrl.Mode())
	assert.Equal(t, []int{2}, m.ctrl.Table().Visible())
	assert.Zero(t, m.cursor)
	assert.Equal(t, controller.LabelShowingFavourites, m.ctrl.ToggleLabel())
	assert.Contains(t, m.View(), "Potion of the Jade Serpent")

	m, _ = update(t, m, keyRunes("F"))
	assert.Equal(t, filter.ModeAll, m.ctrl.Mode())
	assert.Len(t, m.ctrl.Table().Visible(), 5)
}

func TestClearFavourites_ConfirmShowsToast(t *testing.T) {
	storage := localstore.NewMemory()
	m := loaded(t, storage, "craftbook://browse", 25)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})

	m, _ = update(t, m, keyRunes("C"))
	require.NotNil(t, m.modal)
	assert.Contains(t, m.View(), controller.ClearPrompt)

	// unrelated keys leave the prompt open
	m, cmd := update(t, m, keyRunes("x"))
	assert.Nil(t, cmd)
	require.NotNil(t, m.modal)

	m, cmd = update(t, m, keyRunes("y"))
	assert.Nil(t, m.modal)
	require.NotNil(t, cmd)
	result := cmd()
	assert.Equal(t, confirmResultMsg{confirmed: true}, result)

	m, cmd = update(t, m, result)
	require.NotNil(t, cmd, "toast timer")
	assert.Zero(t, m.ctrl.FavouriteCount())
	assert.True(t, m.toast.visible())
	assert.Equal(t, controller.ClearedMessage, m.toast.text)
	assert.Contains(t, m.View(), controller.ClearedMessage)

	raw, _, err := storage.GetItem(favourites.StorageKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestClearFavourites_Declined(t *testing.T) {
	m := loaded(t, localstore.NewMemory(), "craftbook://browse", 25)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})

	m, _ = update(t, m, keyRunes("C"))
	m, cmd := update(t, m, keyRunes("n"))
	require.NotNil(t, cmd)
	m, cmd = update(t, m, cmd())

	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.ctrl.FavouriteCount())
	assert.False(t, m.toast.visible())
}

func TestToast_StaleTimerIgnored(t *testing.T) {
	m := loaded(t, localstore.NewMemory(), "craftbook://browse", 25)
	m, _ = update(t, m, confirmResultMsg{confirmed: true})
	first := m.toast.id
	m, _ = update(t, m, confirmResultMsg{confirmed: true})
	require.Equal(t, first+1, m.toast.id)

	m, _ = update(t, m, clearToastMsg{id: first})
	assert.True(t, m.toast.visible(), "older timer must not dismiss the newer toast")

	m, _ = update(t, m, clearToastMsg{id: m.toast.id})
	assert.False(t, m.toast.visible())
}

func TestPicker_AppliesFilterAndLink(t *testing.T) {
	m := loaded(t, localstore.NewMemory(), "craftbook://browse", 25)

	m, _ = update(t, m, keyRunes("c"))
	picker, ok := m.modal.(*pickerModal)
	require.True(t, ok)
	assert.Equal(t, urlstate.Crafter, picker.key)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.modal)

	m, _ = update(t, m, pickedMsg{key: urlstate.Crafter, value: "Bob"})
	assert.Equal(t, []int{0, 1}, m.ctrl.Table().Visible())
	u, err := url.Parse(m.ctrl.Link())
	require.NoError(t, err)
	assert.Equal(t, "Bob", u.Query().Get("crafter"))

	m, _ = update(t, m, pickedMsg{key: urlstate.Crafter, value: ""})
	assert.Len(t, m.ctrl.Table().Visible(), 5)
	_, active := m.ShareLink()
	assert.False(t, active)
}

func TestPicker_EnterEmitsSelection(t *testing.T) {
	m := loaded(t, localstore.NewMemory(), "craftbook://browse?profession=Tailoring", 25)

	m, _ = update(t, m, keyRunes("p"))
	require.NotNil(t, m.modal)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, m.modal)
	require.NotNil(t, cmd)
	assert.Equal(t, pickedMsg{key: urlstate.Profession, value: "Tailoring"}, cmd())
}

func TestPickerOptions(t *testing.T) {
	items := pickerOptions(urlstate.Profession, testRows())
	require.NotEmpty(t, items)
	assert.Equal(t, allOption, items[0].label)
	assert.Empty(t, items[0].value)

	var labels []string
	for _, it := range items[1:] {
		labels = append(labels, it.label)
	}
	assert.Equal(t, []string{"Alchemy", "Blacksmithing", "Jewelcrafting", "Tailoring"}, labels)
}

func TestEmptyResultText(t *testing.T) {
	m := loaded(t, localstore.NewMemory(), "craftbook://browse", 25)
	m, _ = update(t, m, pickedMsg{key: urlstate.Crafter, value: "Nobody"})
	assert.Empty(t, m.ctrl.Table().Visible())
	assert.Contains(t, m.View(), emptyTableText)
}

func TestSearchKey_LiveAndCancel(t *testing.T) {
	m := loaded(t, localstore.NewMemory(), "craftbook://browse", 25)

	m, _ = update(t, m, keyRunes("/"))
	require.True(t, m.searching)
	for _, r := range "ruby" {
		m, _ = update(t, m, keyRunes(string(r)))
	}
	assert.Equal(t, "ruby", m.ctrl.SearchTerm())
	assert.Equal(t, []int{3}, m.ctrl.Table().Visible())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.searching)
	assert.Empty(t, m.ctrl.SearchTerm())
	assert.Len(t, m.ctrl.Table().Visible(), 5)
	_, active := m.ShareLink()
	assert.False(t, active, "global search is not part of the share link")
}

func TestNavigation_CrossesPages(t *testing.T) {
	m := loaded(t, localstore.NewMemory(), "craftbook://browse", 2)
	tbl := m.ctrl.Table()

	m, _ = update(t, m, keyRunes("j"))
	m, _ = update(t, m, keyRunes("j"))
	assert.Equal(t, 1, tbl.Page())
	assert.Zero(t, m.cursor)

	m, _ = update(t, m, keyRunes("k"))
	assert.Zero(t, tbl.Page())
	assert.Equal(t, 1, m.cursor)

	m, _ = update(t, m, keyRunes("G"))
	assert.Equal(t, 2, tbl.Page())
	assert.Zero(t, m.cursor, "last page holds one row")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 1, tbl.Page())
	m, _ = update(t, m, keyRunes("g"))
	assert.Zero(t, tbl.Page())
}

func TestStarKey_KeepsPage(t *testing.T) {
	m := loaded(t, localstore.NewMemory(), "craftbook://browse", 2)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	require.Equal(t, 1, m.ctrl.Table().Page())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.True(t, m.ctrl.IsFavourite(2))
	assert.Equal(t, 1, m.ctrl.Table().Page())
}

func TestThemeKey_Persisted(t *testing.T) {
	storage := localstore.NewMemory()
	m := loaded(t, storage, "craftbook://browse", 25)
	require.Equal(t, "Dracula", m.theme.Name)

	m, _ = update(t, m, keyRunes("T"))
	assert.Equal(t, "Slate", m.theme.Name)
	name, ok, err := storage.GetItem(ThemeKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Slate", name)

	again := New(Options{Storage: storage, Logger: zaptest.NewLogger(t)})
	assert.Equal(t, "Slate", again.theme.Name)
}

func TestCopyKeys(t *testing.T) {
	var copied []string
	orig := clipboardWriteAll
	clipboardWriteAll = func(text string) error {
		copied = append(copied, text)
		return nil
	}
	t.Cleanup(func() { clipboardWriteAll = orig })

	m := loaded(t, localstore.NewMemory(), "craftbook://browse?gear=Flask", 25)

	m, _ = update(t, m, keyRunes("y"))
	require.Len(t, copied, 1)
	assert.Equal(t, m.ctrl.Link(), copied[0])
	assert.Equal(t, "Copied share link", m.status)

	m, _ = update(t, m, keyRunes("w"))
	require.Len(t, copied, 2)
	assert.Equal(t, "https://www.wowhead.com/mop-classic/spell=76084", copied[1])
	assert.Equal(t, "Copied spell link", m.status)

	m, _ = update(t, m, keyRunes("e"))
	require.Len(t, copied, 3)
	flask, _ := icons.Default().Gear("Flask")
	assert.Equal(t, flask.URL, copied[2])
	assert.Equal(t, "Copied icon link", m.status)
}

func TestCopyIconKey_PrefersTexture(t *testing.T) {
	var copied []string
	orig := clipboardWriteAll
	clipboardWriteAll = func(text string) error {
		copied = append(copied, text)
		return nil
	}
	t.Cleanup(func() { clipboardWriteAll = orig })

	m := loaded(t, localstore.NewMemory(), "craftbook://browse?profession=Jewelcrafting", 25)
	assert.True(t, strings.HasPrefix(m.ctrl.Table().Cell(3, controller.ColName), controller.TextureMarker))

	m, _ = update(t, m, keyRunes("e"))
	require.Len(t, copied, 1)
	assert.Equal(t, "https://wow.zamimg.com/images/wow/icons/medium/inv_misc_questionmark.jpg", copied[0])
	assert.Equal(t, "Copied icon link", m.status)
}

func TestCopyKeys_Failures(t *testing.T) {
	orig := clipboardWriteAll
	clipboardWriteAll = func(string) error { return errors.New("no clipboard") }
	t.Cleanup(func() { clipboardWriteAll = orig })

	m := loaded(t, localstore.NewMemory(), "craftbook://browse?profession=Tailoring", 25)

	m, _ = update(t, m, keyRunes("w"))
	assert.Equal(t, "No spell link for this row", m.status)

	m, _ = update(t, m, keyRunes("y"))
	assert.Equal(t, "Copy failed", m.status)
	assert.Contains(t, m.View(), "Copy failed")

	m, _ = update(t, m, keyRunes("j"))
	assert.Empty(t, m.status)
}

func TestHelpOverlay(t *testing.T) {
	m := loaded(t, localstore.NewMemory(), "craftbook://browse", 25)

	m, _ = update(t, m, keyRunes("?"))
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "Keyboard Shortcuts")

	m, cmd := update(t, m, keyRunes("q"))
	assert.False(t, m.showHelp)
	assert.False(t, isQuit(cmd), "the closing key is swallowed")
}

func TestOrderKeys(t *testing.T) {
	m := loaded(t, localstore.NewMemory(), "craftbook://browse", 25)

	m, _ = update(t, m, keyRunes("o"))
	col, desc := m.ctrl.Table().Ordering()
	assert.Equal(t, controller.ColProfession, col)
	assert.False(t, desc)
	assert.Equal(t, []int{0, 2, 4, 3, 1}, m.ctrl.Table().Visible())
	assert.Contains(t, m.View(), "Profession ▲")

	m, _ = update(t, m, keyRunes("O"))
	_, desc = m.ctrl.Table().Ordering()
	assert.True(t, desc)
	assert.Equal(t, []int{1, 3, 4, 0, 2}, m.ctrl.Table().Visible())
}

func TestColumnWidths(t *testing.T) {
	m := loaded(t, localstore.NewMemory(), "craftbook://browse", 25)
	cols := m.ctrl.Table().Columns()

	widths := columnWidths(cols, 104)
	require.Len(t, widths, len(cols))
	sum := len(cols) - 1
	for i, w := range widths {
		assert.GreaterOrEqual(t, w, 2, "column %d", i)
		sum += w
	}
	assert.LessOrEqual(t, sum, 104)
	assert.Greater(t, widths[controller.ColName], widths[controller.ColStar])

	narrow := columnWidths(cols, 20)
	assert.GreaterOrEqual(t, narrow[controller.ColCrafters], 8)
}

func TestShareLink_BeforeLoad(t *testing.T) {
	m := New(Options{Link: "craftbook://browse?profession=Alchemy"})
	link, active := m.ShareLink()
	assert.Equal(t, "craftbook://browse?profession=Alchemy", link)
	assert.False(t, active)
	assert.True(t, strings.HasPrefix(link, "craftbook://"))
}
