package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type set map[int]bool

func (s set) Contains(id int) bool { return s[id] }

func TestVisible_AllModeAlwaysTrue(t *testing.T) {
	r := New(set{})
	for id := range 10 {
		assert.True(t, r.Visible(id))
	}
}

func TestVisible_FavouritesOnly(t *testing.T) {
	favs := set{2: true, 5: true}
	r := New(favs)
	assert.Equal(t, ModeFavouritesOnly, r.Toggle())

	assert.True(t, r.Visible(2))
	assert.True(t, r.Visible(5))
	assert.False(t, r.Visible(3))

	// Membership is read at evaluation time.
	favs[3] = true
	assert.True(t, r.Visible(3))
}

func TestToggle_RoundTrips(t *testing.T) {
	r := New(nil)
	assert.Equal(t, ModeAll, r.Mode())
	assert.Equal(t, ModeFavouritesOnly, r.Toggle())
	assert.Equal(t, ModeAll, r.Toggle())
}

func TestReset(t *testing.T) {
	r := New(set{})
	assert.False(t, r.Reset())
	r.Toggle()
	assert.True(t, r.Reset())
	assert.Equal(t, ModeAll, r.Mode())
	assert.True(t, r.Visible(99))
}

func TestVisible_NilMembershipHidesAllInFavouritesMode(t *testing.T) {
	r := New(nil)
	r.Toggle()
	assert.False(t, r.Visible(0))
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "all", ModeAll.String())
	assert.Equal(t, "favourites-only", ModeFavouritesOnly.String())
}
