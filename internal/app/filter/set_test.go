package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracev/internal/app/entry"
	"tracev/internal/config"
)

func newTestSet(t *testing.T, rules ...config.FilterRule) *Set {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Rules = rules

	s, err := NewSet(cfg)
	require.NoError(t, err)

	return s
}

func Test_Set_Visible_CombinesTreeAndLevels(t *testing.T) {
	s := newTestSet(t)

	e := entry.Entry{Kind: entry.Parsed, Level: entry.LevelInfo, Module: []string{"db"}}
	assert.True(t, s.Visible(e))

	s.Tree().Toggle([]string{"db"})
	assert.False(t, s.Visible(e))

	s.Tree().Toggle([]string{"db"})
	s.Levels().Toggle(entry.LevelInfo)
	assert.False(t, s.Visible(e))
}

func Test_Set_Visible_UnknownLevelAlwaysPasses(t *testing.T) {
	s := newTestSet(t)

	for _, level := range entry.Levels() {
		s.Levels().Toggle(level)
	}

	e := entry.Entry{Kind: entry.Unparsed, Level: entry.LevelUnknown}
	assert.True(t, s.Visible(e))
}

func Test_Set_ObservePath_FiresRuleOnce(t *testing.T) {
	s := newTestSet(t, config.FilterRule{Pattern: "db::**", Enabled: false})

	changed := s.ObservePath([]string{"db", "pool"})
	assert.True(t, changed, "first sighting applies the rule")
	assert.False(t, s.Tree().Visible([]string{"db", "pool"}))

	changed = s.ObservePath([]string{"db", "pool"})
	assert.False(t, changed, "later sightings are no-ops")
}

func Test_Set_ObservePath_NoRuleOnlyRegisters(t *testing.T) {
	s := newTestSet(t)
	gen := s.Generation()

	changed := s.ObservePath([]string{"http", "server"})

	assert.False(t, changed)
	assert.Equal(t, gen, s.Generation())
	assert.Equal(t, Inherit, s.Tree().StateOf([]string{"http", "server"}))

	nodes := s.Tree().Nodes()
	require.Len(t, nodes, 2, "path appears in the display tree")
}

func Test_Set_Generation_CoversTreeAndLevels(t *testing.T) {
	s := newTestSet(t)
	gen := s.Generation()

	s.Tree().Toggle([]string{"db"})
	assert.Equal(t, gen+1, s.Generation())

	s.Levels().Toggle(entry.LevelDebug)
	assert.Equal(t, gen+2, s.Generation())
}
