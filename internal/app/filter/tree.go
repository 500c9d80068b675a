package filter

import (
	"sort"
	"sync"
)

// State is the explicit visibility state of a module tree node
type State int

const (
	// Inherit defers to the nearest explicit ancestor
	Inherit State = iota
	// Enabled makes the subtree visible unless overridden below
	Enabled
	// Disabled hides the subtree unless overridden below
	Disabled
)

// String returns a display form of the state
func (s State) String() string {
	switch s {
	case Enabled:
		return "on"
	case Disabled:
		return "off"
	default:
		return "inherit"
	}
}

// NodeInfo is a flattened tree node for display
type NodeInfo struct {
	Path      []string
	Depth     int
	State     State
	Effective bool
}

// Tree is the hierarchical visibility configuration keyed by module path
// segments. Nodes are created lazily and never deleted during a session.
// Every mutation bumps a generation counter consumed by the view index.
type Tree struct {
	mu         sync.RWMutex
	root       *node
	generation uint64
}

type node struct {
	children map[string]*node
	state    State
}

func newNode() *node {
	return &node{children: make(map[string]*node)}
}

// NewTree creates a tree whose root defaults to Enabled via inheritance
func NewTree() *Tree {
	return &Tree{root: newNode()}
}

// SetState creates intermediate nodes as needed and sets the explicit state
// at path. O(depth).
func (t *Tree) SetState(path []string, st State) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.findOrCreate(path).state = st
	t.generation++
}

// Toggle flips the node at path between Enabled and Disabled. A node still
// on Inherit resolves its current effective visibility first, so the toggle
// always inverts what the user sees. Descendants' explicit states are not
// touched.
func (t *Tree) Toggle(path []string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := t.findOrCreate(path)

	switch n.state {
	case Enabled:
		n.state = Disabled
	case Disabled:
		n.state = Enabled
	default:
		if t.visibleLocked(path) {
			n.state = Disabled
		} else {
			n.state = Enabled
		}
	}

	t.generation++
}

// Visible returns the effective visibility of a module path: the explicit
// state of the nearest ancestor (including the node itself) that is not
// Inherit, defaulting to Enabled. O(depth).
func (t *Tree) Visible(path []string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.visibleLocked(path)
}

// StateOf returns the explicit state at path, Inherit when no node exists
func (t *Tree) StateOf(path []string) State {
	t.mu.RLock()
	defer t.mu.RUnlock()

	cur := t.root
	for _, seg := range path {
		next, ok := cur.children[seg]
		if !ok {
			return Inherit
		}

		cur = next
	}

	return cur.state
}

// Observe creates nodes for a path seen in the data without changing any
// state and without bumping the generation
func (t *Tree) Observe(path []string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.findOrCreate(path)
}

// Generation returns the mutation counter
func (t *Tree) Generation() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.generation
}

// Nodes returns the tree flattened depth-first with sorted siblings,
// carrying each node's explicit state and effective visibility
func (t *Tree) Nodes() []NodeInfo {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var out []NodeInfo

	inherited := true
	if t.root.state != Inherit {
		inherited = t.root.state == Enabled
	}

	var walk func(n *node, path []string, effective bool)
	walk = func(n *node, path []string, effective bool) {
		keys := make([]string, 0, len(n.children))
		for k := range n.children {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		for _, k := range keys {
			child := n.children[k]

			childEffective := effective
			if child.state != Inherit {
				childEffective = child.state == Enabled
			}

			childPath := append(append([]string{}, path...), k)

			out = append(out, NodeInfo{
				Path:      childPath,
				Depth:     len(childPath) - 1,
				State:     child.state,
				Effective: childEffective,
			})

			walk(child, childPath, childEffective)
		}
	}

	walk(t.root, nil, inherited)

	return out
}

func (t *Tree) findOrCreate(path []string) *node {
	cur := t.root

	for _, seg := range path {
		next, ok := cur.children[seg]
		if !ok {
			next = newNode()
			cur.children[seg] = next
		}

		cur = next
	}

	return cur
}

func (t *Tree) visibleLocked(path []string) bool {
	effective := true
	if t.root.state != Inherit {
		effective = t.root.state == Enabled
	}

	cur := t.root

	for _, seg := range path {
		next, ok := cur.children[seg]
		if !ok {
			break
		}

		cur = next

		if cur.state != Inherit {
			effective = cur.state == Enabled
		}
	}

	return effective
}
