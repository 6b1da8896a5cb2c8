package controller

import (
	"github.com/five82/craftbook/internal/filter"
	"github.com/five82/craftbook/internal/grid"
	"github.com/five82/craftbook/internal/icons"
	"github.com/five82/craftbook/internal/sheet"
)

// Column positions in the craft table.
const (
	ColStar = iota
	ColProfession
	ColItemType
	ColName
	ColCrafters
)

// Star glyphs for favourited and plain rows.
const (
	StarOn  = "★"
	StarOff = "☆"
)

// SpellMarker is appended to names that carry a spell link.
const SpellMarker = " ↗"

// TextureMarker prefixes names whose texture ID maps to an icon.
const TextureMarker = "▣ "

// Columns returns the craft table's column definitions. Searches and
// ordering use the raw field values; Render only decorates.
func Columns(favs filter.Membership, table *icons.Table) []grid.Column[sheet.Row] {
	if table == nil {
		table = icons.Default()
	}
	return []grid.Column[sheet.Row]{
		{
			Title: "",
			Width: 5,
			Render: func(id int, _ sheet.Row) string {
				if favs != nil && favs.Contains(id) {
					return StarOn
				}
				return StarOff
			},
		},
		{
			Title:      "Profession",
			Width:      20,
			Orderable:  true,
			Searchable: true,
			Value:      func(r sheet.Row) string { return r.Profession },
			Render: func(_ int, r sheet.Row) string {
				icon, ok := table.Profession(r.Profession)
				return decorate(icon, ok, r.Profession)
			},
		},
		{
			Title:      "Item Type",
			Width:      20,
			Orderable:  true,
			Searchable: true,
			Value:      func(r sheet.Row) string { return r.ItemType },
			Render: func(_ int, r sheet.Row) string {
				icon, ok := table.Gear(r.ItemType)
				return decorate(icon, ok, r.ItemType)
			},
		},
		{
			Title:      "Item/Enchant Name",
			Width:      35,
			Orderable:  true,
			Searchable: true,
			Value:      func(r sheet.Row) string { return r.Name },
			Render: func(_ int, r sheet.Row) string {
				name := r.Name
				if id, ok := r.Texture(); ok && name != "" {
					if _, ok := table.TextureName(id); ok {
						name = TextureMarker + name
					}
				}
				if _, ok := icons.SpellURL(r.SpellID); ok {
					name += SpellMarker
				}
				return name
			},
		},
		{
			Title:      "Crafter(s)",
			Orderable:  true,
			Searchable: true,
			Value:      func(r sheet.Row) string { return r.Crafters },
		},
	}
}

func decorate(icon icons.Icon, ok bool, text string) string {
	if !ok || icon.Glyph == "" || text == "" {
		return text
	}
	return icon.Glyph + " " + text
}

// IconLink returns the image URL that best represents a row: its texture
// icon, else its gear slot icon, else its profession icon.
func IconLink(table *icons.Table, r sheet.Row) (string, bool) {
	if table == nil {
		table = icons.Default()
	}
	if id, ok := r.Texture(); ok {
		if link, ok := table.TextureURL(id); ok {
			return link, true
		}
	}
	if icon, ok := table.Gear(r.ItemType); ok && icon.URL != "" {
		return icon.URL, true
	}
	if icon, ok := table.Profession(r.Profession); ok && icon.URL != "" {
		return icon.URL, true
	}
	return "", false
}

// NewTable builds the craft table over rows.
func NewTable(rows []sheet.Row, favs filter.Membership, table *icons.Table, pageLength int) *grid.Table[sheet.Row] {
	return grid.New(rows, Columns(favs, table), pageLength)
}
