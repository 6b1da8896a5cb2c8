// Package filter holds the row-visibility predicate consulted by the table
// on every draw, and the favourites-only mode it depends on.
package filter

// Membership answers whether a row identifier is favourited.
type Membership interface {
	Contains(id int) bool
}

// Mode is the favourites-only toggle state.
type Mode int

const (
	// ModeAll shows every row the table's own searches allow.
	ModeAll Mode = iota
	// ModeFavouritesOnly restricts visible rows to favourites.
	ModeFavouritesOnly
)

func (m Mode) String() string {
	if m == ModeFavouritesOnly {
		return "favourites-only"
	}
	return "all"
}

// Registry owns the favourites-only mode and exposes Visible for
// registration with the table. Visible reads the mode and the favourites
// at evaluation time; it caches nothing.
type Registry struct {
	favs Membership
	mode Mode
}

// New returns a Registry in ModeAll.
func New(favs Membership) *Registry {
	return &Registry{favs: favs}
}

// Visible reports whether the row passes the favourites restriction.
// It is ANDed with the table's column and global searches.
func (r *Registry) Visible(id int) bool {
	if r.mode != ModeFavouritesOnly {
		return true
	}
	return r.favs != nil && r.favs.Contains(id)
}

// Mode returns the current mode.
func (r *Registry) Mode() Mode {
	return r.mode
}

// Toggle flips the mode and returns the new one.
func (r *Registry) Toggle() Mode {
	if r.mode == ModeAll {
		r.mode = ModeFavouritesOnly
	} else {
		r.mode = ModeAll
	}
	return r.mode
}

// Reset returns to ModeAll and reports whether the mode changed.
func (r *Registry) Reset() bool {
	changed := r.mode != ModeAll
	r.mode = ModeAll
	return changed
}
