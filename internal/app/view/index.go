package view

import (
	"sync"

	"tracev/internal/app/entry"
	"tracev/internal/app/filter"
	"tracev/internal/app/store"
)

// Index maintains the ordered sequence of entry ids currently visible under
// the filter set. Appends ride the hot path with a single membership test;
// any filter mutation or store reset pays a full recompute, which is total,
// idempotent and safe to re-run.
type Index interface {
	AppendIfVisible(e entry.Entry)
	Recompute()
	IDs() []entry.ID
	Len() int
	Contains(id entry.ID) bool
	Version() uint64
}

type index struct {
	store   store.Store
	filters *filter.Set

	mu      sync.RWMutex
	ids     []entry.ID
	present map[entry.ID]struct{}
	version uint64
}

// NewIndex creates an empty view index over the given store and filters
func NewIndex(s store.Store, f *filter.Set) Index {
	return &index{
		store:   s,
		filters: f,
		present: make(map[entry.ID]struct{}),
	}
}

// AppendIfVisible extends the tail with the entry's id when it passes the
// current filter. The visibility test runs under the index lock so it is
// ordered against a concurrent Recompute; an id the recompute already
// captured is not appended twice.
func (i *index) AppendIfVisible(e entry.Entry) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if !i.filters.Visible(e) {
		return
	}

	if _, ok := i.present[e.ID]; ok {
		return
	}

	i.ids = append(i.ids, e.ID)
	i.present[e.ID] = struct{}{}
	i.version++
}

// Recompute rebuilds the index from a store snapshot, retesting every
// entry's visibility. The write lock is held across snapshot, rebuild and
// swap: an append racing the recompute either lands in the snapshot or runs
// after the swap, never in between.
func (i *index) Recompute() {
	i.mu.Lock()
	defer i.mu.Unlock()

	snap := i.store.Snapshot()

	ids := make([]entry.ID, 0, len(snap))
	present := make(map[entry.ID]struct{}, len(snap))

	for _, e := range snap {
		if i.filters.Visible(e) {
			ids = append(ids, e.ID)
			present[e.ID] = struct{}{}
		}
	}

	i.ids = ids
	i.present = present
	i.version++
}

// IDs returns a copy of the visible id sequence in store order
func (i *index) IDs() []entry.ID {
	i.mu.RLock()
	defer i.mu.RUnlock()

	out := make([]entry.ID, len(i.ids))
	copy(out, i.ids)

	return out
}

// Len returns the number of visible entries
func (i *index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return len(i.ids)
}

// Contains reports whether an id is currently visible
func (i *index) Contains(id entry.ID) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()

	_, ok := i.present[id]

	return ok
}

// Version is bumped on every index change, for cheap staleness checks
func (i *index) Version() uint64 {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return i.version
}
