package export

import (
	"sync"

	"tracev/internal/app/entry"
	"tracev/internal/app/view"
)

// Selection tracks the user-chosen subset of the current view index.
// Selecting an id that is not currently visible is a no-op for that id.
type Selection interface {
	Select(ids []entry.ID)
	Toggle(id entry.ID)
	Has(id entry.ID) bool
	Count() int
	Clear()
}

type selection struct {
	view view.Index

	mu  sync.RWMutex
	ids map[entry.ID]struct{}
}

// NewSelection creates an empty selection over the view index
func NewSelection(v view.Index) Selection {
	return &selection{
		view: v,
		ids:  make(map[entry.ID]struct{}),
	}
}

// Select adds the ids that are present in the current view index
func (s *selection) Select(ids []entry.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		if s.view.Contains(id) {
			s.ids[id] = struct{}{}
		}
	}
}

// Toggle flips membership of one visible id
func (s *selection) Toggle(id entry.ID) {
	if !s.view.Contains(id) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
	} else {
		s.ids[id] = struct{}{}
	}
}

// Has reports whether an id is selected
func (s *selection) Has(id entry.ID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.ids[id]

	return ok
}

// Count returns the number of selected ids
func (s *selection) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.ids)
}

// Clear empties the selection
func (s *selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ids = make(map[entry.ID]struct{})
}
