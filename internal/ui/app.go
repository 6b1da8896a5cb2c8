package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/craftbook/internal/controller"
	"github.com/five82/craftbook/internal/favourites"
	"github.com/five82/craftbook/internal/icons"
	"github.com/five82/craftbook/internal/localstore"
	"github.com/five82/craftbook/internal/logging"
	"github.com/five82/craftbook/internal/sheet"
	"github.com/five82/craftbook/internal/urlstate"
)

// clipboardWriteAll is swapped out in tests.
var clipboardWriteAll = clipboard.WriteAll

// Options configures the UI.
type Options struct {
	Context    context.Context
	Loader     sheet.Loader
	Storage    localstore.Storage
	Icons      *icons.Table
	Link       string // starting share link, already resolved
	PageLength int
	Logger     *zap.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx        context.Context
	loader     sheet.Loader
	storage    localstore.Storage
	icons      *icons.Table
	link       string
	pageLength int
	log        *zap.Logger

	// UI state
	keys      keyMap
	help      help.Model
	spinner   spinner.Model
	search    textinput.Model
	paginator paginator.Model
	theme     Theme
	width     int
	height    int

	// Data state
	loading  bool
	err      error
	loadedAt time.Time
	rows     []sheet.Row
	ctrl     *controller.Controller

	// Table state
	cursor int // position within the current page

	// Overlays
	searching bool
	showHelp  bool
	modal     Modal
	toast     toast
	status    string
}

// New creates the model. The sheet is fetched by Init.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	table := opts.Icons
	if table == nil {
		table = icons.Default()
	}
	log := logging.OrNop(opts.Logger)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Search all columns"
	ti.CharLimit = 256

	pg := paginator.New()
	pg.Type = paginator.Arabic
	pg.ArabicFormat = "Page %d of %d"

	m := Model{
		ctx:        ctx,
		loader:     opts.Loader,
		storage:    opts.Storage,
		icons:      table,
		link:       opts.Link,
		pageLength: opts.PageLength,
		log:        log,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		spinner:    sp,
		search:     ti,
		paginator:  pg,
		theme:      GetTheme(loadThemeName(opts.Storage, log)),
		loading:    true,
	}
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
	return m
}

func loadThemeName(storage localstore.Storage, log *zap.Logger) string {
	if storage == nil {
		return ""
	}
	name, ok, err := storage.GetItem(ThemeKey)
	if err != nil {
		log.Warn("read theme preference", zap.Error(err))
		return ""
	}
	if !ok {
		return ""
	}
	return name
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadSheetCmd(m.ctx, m.loader))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.search.Width = max(msg.Width/3, 20)
		m.clampCursor()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case sheetLoadedMsg:
		m.handleLoaded(msg)
		return m, nil

	case sheetErrMsg:
		m.loading = false
		m.err = msg.err
		return m, tea.Quit

	case confirmResultMsg:
		return m.handleClearResult(msg.confirmed)

	case pickedMsg:
		m.applyFilter(msg.key, msg.value)
		return m, nil

	case clearToastMsg:
		m.toast.clear(msg)
		return m, nil
	}

	if m.modal != nil {
		return m.updateModal(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.err != nil {
		return ""
	}
	if m.loading {
		return m.renderLoading()
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

// Err returns the fetch error that ended the program, if any.
func (m Model) Err() error {
	return m.err
}

// ShareLink returns the current share link and whether any filter is set.
func (m Model) ShareLink() (string, bool) {
	if m.ctrl == nil {
		return m.link, false
	}
	return m.ctrl.Link(), m.ctrl.HasFilters()
}

func (m *Model) handleLoaded(msg sheetLoadedMsg) {
	favs := favourites.Load(m.storage, m.log)
	table := controller.NewTable(msg.rows, favs, m.icons, m.pageLength)
	m.rows = msg.rows
	m.ctrl = controller.New(table, favs, urlstate.New(urlstate.NewLocation(m.link)), m.log)
	m.loadedAt = msg.at
	m.loading = false
	m.cursor = 0
	m.paginator.PerPage = table.PageLength()
	m.log.Info("browser ready",
		zap.Int("rows", len(msg.rows)),
		zap.Int("favourites", favs.Len()),
		zap.String("link", m.ctrl.Link()))
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// Nothing but quit exists until the sheet is loaded.
	if m.loading || m.ctrl == nil {
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.modal != nil {
		return m.updateModal(msg)
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}

	m.status = ""
	tbl := m.ctrl.Table()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()

	case key.Matches(msg, m.keys.Down):
		m.moveDown()
	case key.Matches(msg, m.keys.Up):
		m.moveUp()
	case key.Matches(msg, m.keys.Top):
		tbl.SetPage(0)
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		tbl.SetPage(tbl.Pages() - 1)
		m.cursor = len(tbl.PageRows()) - 1
		m.clampCursor()
	case key.Matches(msg, m.keys.NextPage):
		tbl.SetPage(tbl.Page() + 1)
		m.clampCursor()
	case key.Matches(msg, m.keys.PrevPage):
		tbl.SetPage(tbl.Page() - 1)
		m.clampCursor()

	case key.Matches(msg, m.keys.ToggleStar):
		if id, ok := m.selected(); ok {
			if _, err := m.ctrl.ToggleFavourite(id); err != nil {
				m.status = "Star not saved: " + err.Error()
			}
			m.clampCursor()
		}
	case key.Matches(msg, m.keys.FavouritesOnly):
		m.ctrl.ToggleFavouritesOnly()
		m.cursor = 0
	case key.Matches(msg, m.keys.ClearFavs):
		m.modal = newConfirm(controller.ClearPrompt)

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.PickProfession):
		m.openPicker(urlstate.Profession)
	case key.Matches(msg, m.keys.PickGear):
		m.openPicker(urlstate.Gear)
	case key.Matches(msg, m.keys.PickItem):
		m.openPicker(urlstate.Item)
	case key.Matches(msg, m.keys.PickCrafter):
		m.openPicker(urlstate.Crafter)
	case key.Matches(msg, m.keys.Order):
		m.ctrl.CycleOrder()
		m.cursor = 0
	case key.Matches(msg, m.keys.Reverse):
		if m.ctrl.ReverseOrder() {
			m.cursor = 0
		}

	case key.Matches(msg, m.keys.CopyLink):
		m.copyToClipboard(m.ctrl.Link(), "Copied share link")
	case key.Matches(msg, m.keys.CopySpell):
		m.copySpellLink()
	case key.Matches(msg, m.keys.CopyIcon):
		m.copyIconLink()
	}

	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.searching = false
		m.search.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		if m.ctrl.SearchTerm() != "" {
			m.ctrl.Search("")
			m.cursor = 0
		}
		return m, nil
	}

	var cmd tea.Cmd
	before := m.search.Value()
	m.search, cmd = m.search.Update(msg)
	if value := m.search.Value(); value != before {
		m.ctrl.Search(value)
		m.cursor = 0
	}
	return m, cmd
}

func (m Model) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	modal, cmd, closed := m.modal.Update(msg, m.keys)
	if closed {
		m.modal = nil
	} else {
		m.modal = modal
	}
	return m, cmd
}

func (m Model) handleClearResult(confirmed bool) (tea.Model, tea.Cmd) {
	if m.ctrl == nil {
		return m, nil
	}
	notice, cleared, _ := m.ctrl.ClearFavourites(confirmed)
	if !cleared {
		return m, nil
	}
	m.clampCursor()
	return m, m.toast.show(notice.Message, notice.TTL)
}

func (m *Model) openPicker(k urlstate.Key) {
	m.modal = newPicker(k, m.rows, m.ctrl.FilterValue(k), m.theme, m.width, m.height)
}

func (m *Model) applyFilter(k urlstate.Key, value string) {
	if m.ctrl == nil {
		return
	}
	_ = m.ctrl.SetFilter(k, value)
	m.cursor = 0
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
	if m.storage == nil {
		return
	}
	if err := m.storage.SetItem(ThemeKey, m.theme.Name); err != nil {
		m.log.Warn("save theme preference", zap.Error(err))
	}
}

func (m *Model) copyToClipboard(text, done string) {
	if err := clipboardWriteAll(text); err != nil {
		m.log.Warn("clipboard write failed", zap.Error(err))
		m.status = "Copy failed"
		return
	}
	m.status = done
}

func (m *Model) copySpellLink() {
	id, ok := m.selected()
	if !ok {
		return
	}
	row, _ := m.ctrl.Table().Row(id)
	link, ok := icons.SpellURL(row.SpellID)
	if !ok {
		m.status = "No spell link for this row"
		return
	}
	m.copyToClipboard(link, "Copied spell link")
}

func (m *Model) copyIconLink() {
	id, ok := m.selected()
	if !ok {
		return
	}
	row, _ := m.ctrl.Table().Row(id)
	link, ok := controller.IconLink(m.icons, row)
	if !ok {
		m.status = "No icon link for this row"
		return
	}
	m.copyToClipboard(link, "Copied icon link")
}

// selected returns the row identifier under the cursor.
func (m Model) selected() (int, bool) {
	if m.ctrl == nil {
		return 0, false
	}
	rows := m.ctrl.Table().PageRows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return 0, false
	}
	return rows[m.cursor], true
}

func (m *Model) moveDown() {
	tbl := m.ctrl.Table()
	if m.cursor < len(tbl.PageRows())-1 {
		m.cursor++
		return
	}
	if tbl.Page() < tbl.Pages()-1 {
		tbl.SetPage(tbl.Page() + 1)
		m.cursor = 0
	}
}

func (m *Model) moveUp() {
	tbl := m.ctrl.Table()
	if m.cursor > 0 {
		m.cursor--
		return
	}
	if tbl.Page() > 0 {
		tbl.SetPage(tbl.Page() - 1)
		m.cursor = len(tbl.PageRows()) - 1
	}
}

func (m *Model) clampCursor() {
	if m.ctrl == nil {
		return
	}
	if n := len(m.ctrl.Table().PageRows()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// renderMain renders the browser: header, filter bar, table, footer.
func (m Model) renderMain() string {
	header := m.renderHeader()
	filters := m.renderFilterBar()
	footer := m.renderFooter()

	used := lipgloss.Height(header) + lipgloss.Height(filters) + lipgloss.Height(footer)
	table := m.renderTable(max(m.height-used, 3))

	return strings.Join([]string{header, filters, table, footer}, "\n")
}

// Messages

type sheetLoadedMsg struct {
	rows []sheet.Row
	at   time.Time
}

type sheetErrMsg struct {
	err error
}

// Commands

func loadSheetCmd(ctx context.Context, loader sheet.Loader) tea.Cmd {
	return func() tea.Msg {
		if loader == nil {
			return sheetErrMsg{err: errors.New("no sheet loader configured")}
		}
		rows, err := loader.Fetch(ctx)
		if err != nil {
			return sheetErrMsg{err: err}
		}
		return sheetLoadedMsg{rows: rows, at: time.Now()}
	}
}

// Run starts the Bubble Tea program and returns the final model.
func Run(opts Options) (Model, error) {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(opts.Context))
	final, err := p.Run()
	if err != nil {
		return Model{}, err
	}
	m, ok := final.(Model)
	if !ok {
		return Model{}, errors.New("unexpected model type")
	}
	return m, m.Err()
}
