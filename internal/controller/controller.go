package controller

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/five82/craftbook/internal/filter"
	"github.com/five82/craftbook/internal/grid"
	"github.com/five82/craftbook/internal/logging"
	"github.com/five82/craftbook/internal/sheet"
	"github.com/five82/craftbook/internal/urlstate"
)

// User-facing strings.
const (
	LabelShowFavourites    = "⭐ Show Favourites Only"
	LabelShowingFavourites = "⭐ Showing Favourites (Click to Show All)"
	ClearPrompt            = "Are you sure you want to remove all favourites?"
	ClearedMessage         = "Favourites cleared"
)

// NoticeTTL is how long a Notice stays on screen.
const NoticeTTL = 3 * time.Second

// Notice is a transient message for the user.
type Notice struct {
	Message string
	TTL     time.Duration
}

// Favourites is the mutable favourites set the controller drives.
type Favourites interface {
	filter.Membership
	Toggle(id int) (bool, error)
	Clear() error
	Len() int
}

var filterColumns = map[urlstate.Key]int{
	urlstate.Profession: ColProfession,
	urlstate.Gear:       ColItemType,
	urlstate.Item:       ColName,
	urlstate.Crafter:    ColCrafters,
}

// ColumnFor returns the table column searched by a filter key.
func ColumnFor(key urlstate.Key) (int, bool) {
	col, ok := filterColumns[key]
	return col, ok
}

// Controller keeps the table, favourites, filter controls and share link
// consistent. All methods run on the UI event loop.
type Controller struct {
	table    *grid.Table[sheet.Row]
	favs     Favourites
	registry *filter.Registry
	url      *urlstate.Sync
	log      *zap.Logger
}

// New registers the favourites predicate with table and applies any filters
// present in the link.
func New(table *grid.Table[sheet.Row], favs Favourites, url *urlstate.Sync, log *zap.Logger) *Controller {
	c := &Controller{
		table:    table,
		favs:     favs,
		registry: filter.New(favs),
		url:      url,
		log:      logging.OrNop(log),
	}
	table.AddPredicate(c.registry.Visible)
	c.ApplyURLFilters()
	return c
}

// ApplyURLFilters copies each filter present in the link into its control
// and column search, drawing after each. It returns the keys applied.
func (c *Controller) ApplyURLFilters() []urlstate.Key {
	var applied []urlstate.Key
	for _, key := range urlstate.Keys() {
		value, ok := c.url.Read(key)
		if !ok || value == "" {
			continue
		}
		c.table.ColumnSearch(filterColumns[key], value)
		c.table.Draw(true)
		applied = append(applied, key)
	}
	if len(applied) > 0 {
		c.log.Debug("applied link filters", zap.Int("count", len(applied)), zap.String("link", c.url.Link()))
	}
	return applied
}

// SetFilter handles a filter control change: the value becomes the column's
// search term, the table redraws from the first page, and the link is
// updated. An empty value clears the filter and drops the key from the link.
func (c *Controller) SetFilter(key urlstate.Key, value string) error {
	col, ok := filterColumns[key]
	if !ok {
		return fmt.Errorf("unknown filter %q", key)
	}
	c.table.ColumnSearch(col, value)
	c.table.Draw(true)

	if err := c.url.Write(key, value); err != nil {
		c.log.Warn("update share link", zap.String("key", string(key)), zap.Error(err))
		return fmt.Errorf("update share link: %w", err)
	}
	return nil
}

// FilterValue returns the value shown by a filter control, which is the
// column's current search term.
func (c *Controller) FilterValue(key urlstate.Key) string {
	col, ok := filterColumns[key]
	if !ok {
		return ""
	}
	return c.table.ColumnSearchTerm(col)
}

// Search applies a global free-text search. The link is not touched.
func (c *Controller) Search(term string) {
	c.table.Search(term)
	c.table.Draw(true)
}

// SearchTerm returns the global search term.
func (c *Controller) SearchTerm() string {
	return c.table.SearchTerm()
}

// CycleOrder moves ordering to the next orderable column, ascending. After
// the last column the table returns to load order. It returns the ordered
// column, or -1 for load order.
func (c *Controller) CycleOrder() int {
	cols := c.table.Columns()
	current, _ := c.table.Ordering()
	next := -1
	for col := current + 1; col < len(cols); col++ {
		if cols[col].Orderable {
			next = col
			break
		}
	}
	if next < 0 {
		c.table.ClearOrder()
	} else {
		c.table.Order(next, false)
	}
	c.table.Draw(true)
	return next
}

// ReverseOrder flips the direction of the current ordering. It reports false
// when the table is in load order.
func (c *Controller) ReverseOrder() bool {
	col, desc := c.table.Ordering()
	if col < 0 {
		return false
	}
	c.table.Order(col, !desc)
	c.table.Draw(true)
	return true
}

// ToggleFavourite flips the star on one row and re-renders only that row,
// keeping the current page. It reports whether the row is now favourited.
// A persist failure is logged and returned; the in-memory state still flips.
func (c *Controller) ToggleFavourite(id int) (bool, error) {
	if _, ok := c.table.Row(id); !ok {
		return false, fmt.Errorf("row %d out of range", id)
	}
	on, err := c.favs.Toggle(id)
	c.table.InvalidateRow(id)
	c.table.Draw(false)
	if err != nil {
		c.log.Warn("persist favourites", zap.Int("row", id), zap.Error(err))
	}
	return on, err
}

// ToggleFavouritesOnly flips the favourites-only mode and redraws.
func (c *Controller) ToggleFavouritesOnly() filter.Mode {
	mode := c.registry.Toggle()
	c.table.Draw(true)
	c.log.Debug("favourites mode", zap.Stringer("mode", mode))
	return mode
}

// ToggleLabel is the favourites toggle caption for the current mode.
func (c *Controller) ToggleLabel() string {
	if c.registry.Mode() == filter.ModeFavouritesOnly {
		return LabelShowingFavourites
	}
	return LabelShowFavourites
}

// ClearFavourites empties the favourites when confirmed. It leaves
// favourites-only mode, re-renders every row keeping the current page, and
// returns the notice to show. A declined call changes nothing and reports
// false. The set is cleared even when persisting fails; the error is
// returned alongside the notice.
func (c *Controller) ClearFavourites(confirmed bool) (Notice, bool, error) {
	if !confirmed {
		return Notice{}, false, nil
	}
	err := c.favs.Clear()
	if err != nil {
		c.log.Warn("persist favourites", zap.Error(err))
	}
	c.registry.Reset()
	c.table.InvalidateAll()
	c.table.Draw(false)
	c.log.Info("favourites cleared")
	return Notice{Message: ClearedMessage, TTL: NoticeTTL}, true, err
}

// Mode returns the favourites-only mode.
func (c *Controller) Mode() filter.Mode {
	return c.registry.Mode()
}

// Visible is the registered row-visibility predicate.
func (c *Controller) Visible(id int) bool {
	return c.registry.Visible(id)
}

// IsFavourite reports whether a row is starred.
func (c *Controller) IsFavourite(id int) bool {
	return c.favs.Contains(id)
}

// FavouriteCount returns the number of starred rows.
func (c *Controller) FavouriteCount() int {
	return c.favs.Len()
}

// Link returns the current share link.
func (c *Controller) Link() string {
	return c.url.Link()
}

// HasFilters reports whether the share link carries any filter.
func (c *Controller) HasFilters() bool {
	return c.url.HasFilters()
}

// Table exposes the underlying table for rendering and paging.
func (c *Controller) Table() *grid.Table[sheet.Row] {
	return c.table
}
