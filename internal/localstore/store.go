package localstore

import (
	"errors"
	"sync"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("local storage is closed")

// Storage is a durable string key/value store. Writes are synchronous.
type Storage interface {
	// GetItem returns the value stored under key and whether it exists.
	GetItem(key string) (string, bool, error)

	// SetItem stores value under key, replacing any previous value.
	SetItem(key, value string) error

	// RemoveItem deletes key. Removing a missing key is not an error.
	RemoveItem(key string) error
}

// Memory is an in-process Storage, used in tests and when no database is configured.
type Memory struct {
	mu     sync.RWMutex
	items  map[string]string
	closed bool
}

var (
	_ Storage = (*Memory)(nil)
	_ Storage = (*DB)(nil)
)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{items: make(map[string]string)}
}

// GetItem implements Storage.
func (m *Memory) GetItem(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return "", false, ErrClosed
	}
	v, ok := m.items[key]
	return v, ok, nil
}

// SetItem implements Storage.
func (m *Memory) SetItem(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.items[key] = value
	return nil
}

// RemoveItem implements Storage.
func (m *Memory) RemoveItem(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	delete(m.items, key)
	return nil
}

// Close marks the store closed.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
