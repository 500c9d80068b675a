package filter

import (
	"sync"

	"tracev/internal/app/entry"
)

// Levels tracks which severities are visible. All levels start enabled;
// entries with an unknown level always pass, since they cannot be
// classified.
type Levels struct {
	mu         sync.RWMutex
	disabled   map[entry.Level]bool
	generation uint64
}

// NewLevels creates a level filter with every severity enabled
func NewLevels() *Levels {
	return &Levels{
		disabled: make(map[entry.Level]bool),
	}
}

// Toggle flips visibility of one severity
func (l *Levels) Toggle(level entry.Level) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.disabled[level] = !l.disabled[level]
	l.generation++
}

// Enabled returns whether the severity is visible
func (l *Levels) Enabled(level entry.Level) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if level == entry.LevelUnknown {
		return true
	}

	return !l.disabled[level]
}

// Generation returns the mutation counter
func (l *Levels) Generation() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.generation
}
