package view

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracev/internal/app/entry"
	"tracev/internal/app/filter"
	"tracev/internal/app/store"
	"tracev/internal/config"
)

func newTestIndex(t *testing.T) (Index, store.Store, *filter.Set) {
	t.Helper()

	s := store.NewStore()

	f, err := filter.NewSet(config.DefaultConfig())
	require.NoError(t, err)

	return NewIndex(s, f), s, f
}

func appendEntry(s store.Store, v Index, module ...string) entry.ID {
	e := entry.Entry{Kind: entry.Parsed, Level: entry.LevelInfo, Module: module}
	e.ID = s.Append(e)
	v.AppendIfVisible(e)

	return e.ID
}

func Test_Index_AppendIfVisible_TracksVisibleTail(t *testing.T) {
	v, s, f := newTestIndex(t)

	a := appendEntry(s, v, "db")
	f.Tree().Toggle([]string{"http"})
	b := appendEntry(s, v, "http")
	c := appendEntry(s, v, "db", "pool")

	assert.Equal(t, []entry.ID{a, c}, v.IDs())
	assert.True(t, v.Contains(a))
	assert.False(t, v.Contains(b))
	assert.Equal(t, 2, v.Len())
}

func Test_Index_Recompute_MatchesIncrementalAppends(t *testing.T) {
	v, s, f := newTestIndex(t)

	f.Tree().Toggle([]string{"http"})

	appendEntry(s, v, "db")
	appendEntry(s, v, "http")
	appendEntry(s, v, "db", "pool")

	incremental := v.IDs()

	v.Recompute()

	assert.Equal(t, incremental, v.IDs(), "recompute agrees with incremental appends under an unchanged filter")
}

func Test_Index_Recompute_AfterFilterMutation(t *testing.T) {
	v, s, f := newTestIndex(t)

	a := appendEntry(s, v, "db")
	b := appendEntry(s, v, "http")

	f.Tree().Toggle([]string{"db"})
	v.Recompute()

	assert.Equal(t, []entry.ID{b}, v.IDs())

	f.Tree().Toggle([]string{"db"})
	v.Recompute()

	assert.Equal(t, []entry.ID{a, b}, v.IDs(), "re-enabling restores store order")
}

func Test_Index_Recompute_Idempotent(t *testing.T) {
	v, s, _ := newTestIndex(t)

	appendEntry(s, v, "db")
	appendEntry(s, v, "http")

	v.Recompute()
	first := v.IDs()

	v.Recompute()
	assert.Equal(t, first, v.IDs())
}

func Test_Index_Recompute_AfterStoreReset(t *testing.T) {
	v, s, _ := newTestIndex(t)

	appendEntry(s, v, "db")
	appendEntry(s, v, "http")

	s.Reset()
	v.Recompute()

	assert.Empty(t, v.IDs())
	assert.False(t, v.Contains(1))

	fresh := appendEntry(s, v, "db")
	assert.Equal(t, entry.ID(1), fresh)
	assert.Equal(t, []entry.ID{fresh}, v.IDs())
}

// snapshotHookStore delegates to a real store and runs a hook whenever a
// recompute takes its snapshot
type snapshotHookStore struct {
	store.Store
	hook func()
}

func (s *snapshotHookStore) Snapshot() []entry.Entry {
	snap := s.Store.Snapshot()

	if s.hook != nil {
		s.hook()
	}

	return snap
}

func Test_Index_Recompute_KeepsEntryAppendedMidRecompute(t *testing.T) {
	s := &snapshotHookStore{Store: store.NewStore()}

	f, err := filter.NewSet(config.DefaultConfig())
	require.NoError(t, err)

	v := NewIndex(s, f)
	appendEntry(s, v, "db")

	var wg sync.WaitGroup

	s.hook = func() {
		s.hook = nil

		e := entry.Entry{Kind: entry.Parsed, Level: entry.LevelInfo, Module: []string{"http"}}
		e.ID = s.Store.Append(e)

		wg.Add(1)
		go func() {
			defer wg.Done()
			v.AppendIfVisible(e)
		}()
	}

	v.Recompute()
	wg.Wait()

	require.Equal(t, 2, s.Len())
	assert.Equal(t, []entry.ID{1, 2}, v.IDs(), "an entry appended while the recompute runs stays visible exactly once")
}

func Test_Index_AppendIfVisible_DedupesIdCapturedByRecompute(t *testing.T) {
	v, s, _ := newTestIndex(t)

	appendEntry(s, v, "db")

	// The store append landed before the recompute's snapshot, the view
	// append after it.
	e := entry.Entry{Kind: entry.Parsed, Level: entry.LevelInfo, Module: []string{"http"}}
	e.ID = s.Append(e)

	v.Recompute()
	v.AppendIfVisible(e)

	assert.Equal(t, []entry.ID{1, 2}, v.IDs())
}

func Test_Index_ConcurrentAppendsAndRecomputes(t *testing.T) {
	v, s, _ := newTestIndex(t)

	const total = 200

	done := make(chan struct{})

	go func() {
		defer close(done)

		for n := 0; n < total; n++ {
			appendEntry(s, v, "db")
		}
	}()

	for alive := true; alive; {
		select {
		case <-done:
			alive = false
		default:
			v.Recompute()
		}
	}

	want := make([]entry.ID, total)
	for n := range want {
		want[n] = entry.ID(n + 1)
	}

	assert.Equal(t, want, v.IDs(), "no append is lost or duplicated under concurrent recomputes")
}

func Test_Index_Version_BumpsOnChange(t *testing.T) {
	v, s, _ := newTestIndex(t)
	version := v.Version()

	appendEntry(s, v, "db")
	assert.Greater(t, v.Version(), version)

	version = v.Version()
	v.Recompute()
	assert.Greater(t, v.Version(), version)
}
