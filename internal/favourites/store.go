// Package favourites keeps the set of bookmarked row identifiers and mirrors
// it to local storage after every mutation.
package favourites

import (
	"encoding/json"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/five82/craftbook/internal/localstore"
	"github.com/five82/craftbook/internal/logging"
)

// StorageKey is the local storage key holding the JSON array of row identifiers.
const StorageKey = "favouriteRows"

// Store is the in-memory favourites set backed by local storage.
// It is owned by the UI event loop and is not safe for concurrent use.
type Store struct {
	storage localstore.Storage
	ids     map[int]struct{}
	log     *zap.Logger
}

// Load reads the persisted set. Missing, unreadable or malformed data yields
// an empty set; Load never fails.
func Load(storage localstore.Storage, log *zap.Logger) *Store {
	s := &Store{
		storage: storage,
		ids:     make(map[int]struct{}),
		log:     logging.OrNop(log),
	}
	if storage == nil {
		return s
	}

	raw, ok, err := storage.GetItem(StorageKey)
	if err != nil {
		s.log.Warn("read favourites", zap.Error(err))
		return s
	}
	if !ok {
		return s
	}

	var ids []int
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		s.log.Warn("discarding malformed favourites", zap.String("raw", raw), zap.Error(err))
		return s
	}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Contains reports whether id is favourited.
func (s *Store) Contains(id int) bool {
	_, ok := s.ids[id]
	return ok
}

// Toggle adds id when absent and removes it when present, then persists the
// full set. It reports whether id is favourited afterwards.
func (s *Store) Toggle(id int) (bool, error) {
	_, present := s.ids[id]
	if present {
		delete(s.ids, id)
	} else {
		s.ids[id] = struct{}{}
	}
	return !present, s.Persist()
}

// Clear empties the set and persists it.
func (s *Store) Clear() error {
	clear(s.ids)
	return s.Persist()
}

// Persist writes the full set to local storage as a JSON array.
func (s *Store) Persist() error {
	if s.storage == nil {
		return nil
	}
	data, err := json.Marshal(s.IDs())
	if err != nil {
		return fmt.Errorf("encode favourites: %w", err)
	}
	if err := s.storage.SetItem(StorageKey, string(data)); err != nil {
		return fmt.Errorf("persist favourites: %w", err)
	}
	return nil
}

// IDs returns the favourited identifiers in ascending order.
func (s *Store) IDs() []int {
	ids := make([]int, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of favourites.
func (s *Store) Len() int {
	return len(s.ids)
}
