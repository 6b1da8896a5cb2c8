package icons

import (
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	textureURLFormat = "https://wow.zamimg.com/images/wow/icons/medium/%s.jpg"
	spellURLFormat   = "https://www.wowhead.com/mop-classic/spell=%s"
)

//go:embed icons.toml
var embedded []byte

// Icon is one profession or gear-slot decoration.
type Icon struct {
	URL   string `toml:"url"`
	Glyph string `toml:"glyph"`
}

type fileTables struct {
	Professions map[string]Icon   `toml:"professions,omitempty"`
	Gear        map[string]Icon   `toml:"gear,omitempty"`
	Textures    map[string]string `toml:"textures,omitempty"`
}

// Table holds the icon lookups used by the column renderers.
type Table struct {
	professions map[string]Icon
	gear        map[string]Icon
	textures    map[int]string
}

// Default returns the embedded tables.
func Default() *Table {
	t := &Table{
		professions: make(map[string]Icon),
		gear:        make(map[string]Icon),
		textures:    make(map[int]string),
	}
	if err := t.merge(embedded); err != nil {
		panic(fmt.Sprintf("embedded icons.toml: %v", err))
	}
	return t
}

// Load returns the embedded tables with the override file at path merged
// on top. An empty path or a missing file yields the embedded tables.
func Load(path string) (*Table, error) {
	t := Default()
	if strings.TrimSpace(path) == "" {
		return t, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return t, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read icons file: %w", err)
	}
	if err := t.merge(data); err != nil {
		return nil, fmt.Errorf("parse icons file: %w", err)
	}
	return t, nil
}

func (t *Table) merge(data []byte) error {
	var file fileTables
	if err := toml.Unmarshal(data, &file); err != nil {
		return err
	}
	maps.Copy(t.professions, file.Professions)
	maps.Copy(t.gear, file.Gear)
	for key, name := range file.Textures {
		id, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			return fmt.Errorf("texture id %q: %w", key, err)
		}
		if name = strings.TrimSpace(name); name != "" {
			t.textures[id] = name
		}
	}
	return nil
}

// Profession looks up the icon for a profession name.
func (t *Table) Profession(name string) (Icon, bool) {
	icon, ok := t.professions[name]
	return icon, ok
}

// Gear looks up the icon for a gear slot.
func (t *Table) Gear(slot string) (Icon, bool) {
	icon, ok := t.gear[slot]
	return icon, ok
}

// TextureName returns the icon name mapped to a texture ID.
func (t *Table) TextureName(id int) (string, bool) {
	name, ok := t.textures[id]
	return name, ok
}

// TextureURL returns the image URL for a texture ID.
func (t *Table) TextureURL(id int) (string, bool) {
	name, ok := t.textures[id]
	if !ok {
		return "", false
	}
	return fmt.Sprintf(textureURLFormat, name), true
}

// Textures returns a copy of the texture table.
func (t *Table) Textures() map[int]string {
	return maps.Clone(t.textures)
}

// Missing returns the distinct IDs in ids that have no texture mapping,
// sorted ascending.
func (t *Table) Missing(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	var out []int
	for _, id := range ids {
		if _, ok := t.textures[id]; ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// SpellURL returns the Wowhead link for a spell ID, or false when it is blank.
func SpellURL(spellID string) (string, bool) {
	spellID = strings.TrimSpace(spellID)
	if spellID == "" {
		return "", false
	}
	return fmt.Sprintf(spellURLFormat, spellID), true
}

// WriteTextures merges entries into the textures table of the override file
// at path, creating it when absent.
func WriteTextures(path string, entries map[int]string) error {
	file := fileTables{Textures: make(map[string]string)}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("parse icons file: %w", err)
		}
		if file.Textures == nil {
			file.Textures = make(map[string]string)
		}
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("read icons file: %w", err)
	}
	for id, name := range entries {
		file.Textures[strconv.Itoa(id)] = name
	}

	out, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode icons file: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create icons dir: %w", err)
		}
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write icons file: %w", err)
	}
	return nil
}
