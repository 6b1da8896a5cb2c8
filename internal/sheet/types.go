package sheet

import (
	"slices"
	"strconv"
	"strings"
)

// Header names of the fields craftbook reads from the sheet.
const (
	FieldProfession = "Profession"
	FieldItemType   = "Item Type"
	FieldName       = "Item/Enchant Name"
	FieldSpellID    = "Spell ID"
	FieldTextureID  = "Texture ID"
	FieldCrafters   = "Crafter(s)"
)

// Row is one sheet line. ID is its position in the parsed sequence and is
// only stable within a single load.
type Row struct {
	ID         int
	Profession string
	ItemType   string
	Name       string
	SpellID    string
	TextureID  string
	Crafters   string
}

// CrafterNames splits the comma-separated crafter list, dropping blanks.
func (r Row) CrafterNames() []string {
	var names []string
	for _, part := range strings.Split(r.Crafters, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Texture returns the numeric texture ID when the field holds one.
func (r Row) Texture() (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(r.TextureID))
	if err != nil {
		return 0, false
	}
	return id, true
}

// Group is a labelled set of gear slots for the gear picker.
type Group struct {
	Name  string
	Slots []string
}

var fixedGearGroups = []Group{
	{Name: "Armor", Slots: []string{"Helm", "Shoulders", "Chest", "Legs", "Hands", "Boots", "Wrists", "Waist"}},
	{Name: "Weapon", Slots: []string{"Main Hand", "Off-hand"}},
	{Name: "Accessories", Slots: []string{"Back", "Ring"}},
	{Name: "Gems", Slots: []string{"Red Gem", "Blue Gem", "Yellow Gem", "Purple Gem", "Orange Gem", "Green Gem", "Prismatic Gem", "Meta Gem"}},
}

// Professions returns the distinct non-empty professions, sorted.
func Professions(rows []Row) []string {
	return distinct(rows, func(r Row) []string { return []string{r.Profession} })
}

// ItemNames returns the distinct non-empty item names, sorted.
func ItemNames(rows []Row) []string {
	return distinct(rows, func(r Row) []string { return []string{r.Name} })
}

// Crafters returns every distinct crafter name across all rows, sorted.
func Crafters(rows []Row) []string {
	return distinct(rows, Row.CrafterNames)
}

// GearSlotGroups returns the fixed slot groups followed by "Other", which
// holds the remaining slots present in rows.
func GearSlotGroups(rows []Row) []Group {
	grouped := make(map[string]struct{})
	groups := make([]Group, 0, len(fixedGearGroups)+1)
	for _, g := range fixedGearGroups {
		groups = append(groups, Group{Name: g.Name, Slots: slices.Clone(g.Slots)})
		for _, slot := range g.Slots {
			grouped[slot] = struct{}{}
		}
	}

	var other []string
	for _, slot := range distinct(rows, func(r Row) []string { return []string{r.ItemType} }) {
		if _, ok := grouped[slot]; !ok {
			other = append(other, slot)
		}
	}
	return append(groups, Group{Name: "Other", Slots: other})
}

func distinct(rows []Row, values func(Row) []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range rows {
		for _, v := range values(r) {
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return out
}

// TextureIDs returns the distinct numeric texture IDs across rows, sorted.
func TextureIDs(rows []Row) []int {
	seen := make(map[int]struct{})
	var ids []int
	for _, r := range rows {
		id, ok := r.Texture()
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
