// Package urlstate mirrors filter values into the query string of the
// current share link. The link plays the role of the page URL: writes
// replace it in place and never grow a history.
package urlstate

import (
	"fmt"
	"net/url"
	"strings"
)

// Key names a filter mirrored to the link's query string.
type Key string

// Recognised filter keys.
const (
	Profession Key = "profession"
	Gear       Key = "gear"
	Item       Key = "item"
	Crafter    Key = "crafter"
)

// Keys returns the recognised filter keys in column order.
func Keys() []Key {
	return []Key{Profession, Gear, Item, Crafter}
}

// Location holds the current link.
type Location interface {
	Href() string
	// Replace swaps the current link without adding a history entry.
	Replace(href string)
}

// MemoryLocation is a Location held in process memory.
type MemoryLocation struct {
	href     string
	replaces int
}

// NewLocation returns a Location starting at href.
func NewLocation(href string) *MemoryLocation {
	return &MemoryLocation{href: href}
}

// Href implements Location.
func (l *MemoryLocation) Href() string { return l.href }

// Replace implements Location.
func (l *MemoryLocation) Replace(href string) {
	l.href = href
	l.replaces++
}

// Replaces counts Replace calls.
func (l *MemoryLocation) Replaces() int { return l.replaces }

// HistoryLen is always one: the location never pushes entries.
func (l *MemoryLocation) HistoryLen() int { return 1 }

// Sync reads and writes filter values on a Location. Every call parses the
// current link afresh so interleaved writes to different keys never clobber
// each other.
type Sync struct {
	loc Location
}

// New returns a Sync over loc.
func New(loc Location) *Sync {
	return &Sync{loc: loc}
}

// Read returns the value for key and whether the parameter is present.
func (s *Sync) Read(key Key) (string, bool) {
	u, err := url.Parse(s.loc.Href())
	if err != nil {
		return "", false
	}
	q := u.Query()
	if !q.Has(string(key)) {
		return "", false
	}
	return q.Get(string(key)), true
}

// Write sets key to value, or removes key entirely when value is empty.
func (s *Sync) Write(key Key, value string) error {
	u, err := url.Parse(s.loc.Href())
	if err != nil {
		return fmt.Errorf("parse link: %w", err)
	}
	q := u.Query()
	if value != "" {
		q.Set(string(key), value)
	} else {
		q.Del(string(key))
	}
	u.RawQuery = q.Encode()
	s.loc.Replace(u.String())
	return nil
}

// Link returns the current link.
func (s *Sync) Link() string {
	return s.loc.Href()
}

// HasFilters reports whether any recognised key carries a non-empty value.
func (s *Sync) HasFilters() bool {
	for _, key := range Keys() {
		if v, _ := s.Read(key); v != "" {
			return true
		}
	}
	return false
}

// Resolve turns a user-supplied link into an absolute link under base.
// link may be empty, a full URL, or a bare query string with or without "?".
func Resolve(base, link string) (string, error) {
	baseURL, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return "", fmt.Errorf("parse share url %q: %w", base, err)
	}
	link = strings.TrimSpace(link)
	if link == "" {
		return baseURL.String(), nil
	}
	if strings.Contains(link, "://") {
		u, err := url.Parse(link)
		if err != nil {
			return "", fmt.Errorf("parse link %q: %w", link, err)
		}
		return u.String(), nil
	}
	q, err := url.ParseQuery(strings.TrimPrefix(link, "?"))
	if err != nil {
		return "", fmt.Errorf("parse link query %q: %w", link, err)
	}
	baseURL.RawQuery = q.Encode()
	return baseURL.String(), nil
}

// Build returns base with the given non-empty filter values applied.
func Build(base string, values map[Key]string) (string, error) {
	href, err := Resolve(base, "")
	if err != nil {
		return "", err
	}
	loc := NewLocation(href)
	s := New(loc)
	for _, key := range Keys() {
		if err := s.Write(key, values[key]); err != nil {
			return "", err
		}
	}
	return loc.Href(), nil
}
