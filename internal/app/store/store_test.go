package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracev/internal/app/entry"
	"tracev/internal/app/errors"
)

func Test_Store_Append_AssignsSequentialIDs(t *testing.T) {
	s := NewStore()

	first := s.Append(entry.Entry{Raw: "one"})
	second := s.Append(entry.Entry{Raw: "two"})
	third := s.Append(entry.Entry{Raw: "three"})

	assert.Equal(t, entry.ID(1), first)
	assert.Equal(t, entry.ID(2), second)
	assert.Equal(t, entry.ID(3), third)
	assert.Equal(t, 3, s.Len())
}

func Test_Store_Get_ReturnsStoredEntry(t *testing.T) {
	s := NewStore()

	id := s.Append(entry.Entry{Raw: "hello", Message: "hello"})

	e, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, id, e.ID)
	assert.Equal(t, "hello", e.Raw)
}

func Test_Store_Get_UnknownID(t *testing.T) {
	s := NewStore()
	s.Append(entry.Entry{Raw: "only"})

	_, err := s.Get(42)
	assert.ErrorIs(t, err, errors.ErrNotFound)

	_, err = s.Get(0)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func Test_Store_Reset_RestartsIDAllocation(t *testing.T) {
	s := NewStore()

	old := s.Append(entry.Entry{Raw: "before"})
	gen := s.Generation()

	s.Reset()

	assert.Equal(t, 0, s.Len())
	assert.Equal(t, gen+1, s.Generation())

	_, err := s.Get(old)
	assert.ErrorIs(t, err, errors.ErrNotFound)

	fresh := s.Append(entry.Entry{Raw: "after"})
	assert.Equal(t, entry.ID(1), fresh)
}

func Test_Store_Snapshot_IsACopy(t *testing.T) {
	s := NewStore()
	s.Append(entry.Entry{Raw: "a"})
	s.Append(entry.Entry{Raw: "b"})

	snap := s.Snapshot()
	require.Len(t, snap, 2)

	snap[0].Raw = "mutated"

	e, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "a", e.Raw)
}
