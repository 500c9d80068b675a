package filter

import (
	"strings"
	"sync"

	"tracev/internal/app/entry"
	"tracev/internal/config"
)

// Set combines the module tree and the level filter into the single
// visibility predicate the view index tests against. Config rules are
// applied the first time a module path shows up in the data.
type Set struct {
	tree   *Tree
	levels *Levels
	rules  *Rules

	mu   sync.Mutex
	seen map[string]struct{}
}

// NewSet creates the filter set for a session
func NewSet(cfg *config.Config) (*Set, error) {
	rules, err := NewRules(cfg.Rules)
	if err != nil {
		return nil, err
	}

	return &Set{
		tree:   NewTree(),
		levels: NewLevels(),
		rules:  rules,
		seen:   make(map[string]struct{}),
	}, nil
}

// Tree returns the module filter tree
func (s *Set) Tree() *Tree {
	return s.tree
}

// Levels returns the level filter
func (s *Set) Levels() *Levels {
	return s.levels
}

// Visible is the combined predicate: module-path visibility under the tree
// and severity visibility under the level filter
func (s *Set) Visible(e entry.Entry) bool {
	return s.tree.Visible(e.Module) && s.levels.Enabled(e.Level)
}

// Generation is monotonically increasing across any tree or level mutation
func (s *Set) Generation() uint64 {
	return s.tree.Generation() + s.levels.Generation()
}

// ObservePath registers a module path seen in the data. The first time a
// path appears, startup rules are matched against it; a matching rule sets
// an explicit tree state and the return value reports that the generation
// advanced. Without a match the node is only created for display.
func (s *Set) ObservePath(path []string) bool {
	if len(path) == 0 {
		return false
	}

	key := strings.Join(path, "::")

	s.mu.Lock()
	if _, ok := s.seen[key]; ok {
		s.mu.Unlock()
		return false
	}

	s.seen[key] = struct{}{}
	s.mu.Unlock()

	if enabled, matched := s.rules.Match(key); matched {
		st := Disabled
		if enabled {
			st = Enabled
		}

		s.tree.SetState(path, st)

		return true
	}

	s.tree.Observe(path)

	return false
}
