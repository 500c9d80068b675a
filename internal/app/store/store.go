package store

import (
	"sync"

	"tracev/internal/app/entry"
	"tracev/internal/app/errors"
)

// Store is the canonical append-only sequence of all ingested entries.
// Appends come from the single ingestion goroutine; reads may come from
// anywhere. Entries are immutable once appended and are only ever removed
// by Reset, which restarts id allocation.
type Store interface {
	Append(e entry.Entry) entry.ID
	Get(id entry.ID) (entry.Entry, error)
	Len() int
	Generation() uint64
	Reset()
	Snapshot() []entry.Entry
}

type store struct {
	mu         sync.RWMutex
	entries    []entry.Entry
	nextID     entry.ID
	generation uint64
}

// NewStore creates an empty store with id allocation starting at 1
func NewStore() Store {
	return &store{
		nextID: 1,
	}
}

// Append assigns the next id, stores the entry and returns the id
func (s *store) Append(e entry.Entry) entry.ID {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = s.nextID
	s.nextID++
	s.entries = append(s.entries, e)

	return e.ID
}

// Get returns the entry with the given id, or ErrNotFound when the id was
// never assigned or the store was reset since
func (s *store) Get(id entry.ID) (entry.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := int(id) - 1
	if idx < 0 || idx >= len(s.entries) {
		return entry.Entry{}, errors.ErrNotFound
	}

	return s.entries[idx], nil
}

// Len returns the number of stored entries
func (s *store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// Generation returns the reset generation, bumped once per Reset
func (s *store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.generation
}

// Reset clears all entries and restarts id allocation. Used when the source
// was truncated or replaced.
func (s *store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	s.nextID = 1
	s.generation++
}

// Snapshot returns a consistent ordered copy of all entries, used by the
// view recompute path
func (s *store) Snapshot() []entry.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := make([]entry.Entry, len(s.entries))
	copy(snap, s.entries)

	return snap
}
