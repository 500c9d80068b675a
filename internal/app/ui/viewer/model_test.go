package viewer

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracev/internal/app/entry"
	"tracev/internal/app/export"
	"tracev/internal/app/filter"
	"tracev/internal/app/procstats"
	"tracev/internal/app/runtime"
	"tracev/internal/app/store"
	"tracev/internal/app/view"
	"tracev/internal/config"
	"tracev/internal/config/logger"
)

type noopSink struct{}

func (noopSink) Write(string) error { return nil }

type modelFixture struct {
	model     Model
	store     store.Store
	view      view.Index
	filters   *filter.Set
	selection export.Selection
}

func newModelFixture(t *testing.T) *modelFixture {
	t.Helper()

	cfg := config.DefaultConfig()

	f, err := filter.NewSet(cfg)
	require.NoError(t, err)

	s := store.NewStore()
	v := view.NewIndex(s, f)
	sel := export.NewSelection(v)
	log := logger.NewSilentLogger(cfg)
	exp := export.NewExporterWithSink(s, v, sel, noopSink{}, log)

	m := NewModel(
		context.Background(),
		cfg, s, f, v, sel, exp,
		procstats.NewSampler(),
		runtime.NewNoOpEventBus(),
		log,
	)

	return &modelFixture{model: m, store: s, view: v, filters: f, selection: sel}
}

func (fx *modelFixture) append(level entry.Level, module ...string) entry.ID {
	e := entry.Entry{
		Kind:      entry.Parsed,
		Timestamp: time.Now(),
		Level:     level,
		Module:    module,
		Message:   "message",
		Raw:       "raw line",
	}
	e.ID = fx.store.Append(e)
	fx.filters.ObservePath(module)
	fx.view.AppendIfVisible(e)

	return e.ID
}

func (fx *modelFixture) send(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()

	updated, cmd := fx.model.Update(msg)

	var ok bool
	fx.model, ok = updated.(Model)
	require.True(t, ok)

	return cmd
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func Test_Model_WindowSizePopulatesPanes(t *testing.T) {
	fx := newModelFixture(t)
	fx.append(entry.LevelInfo, "db")
	fx.append(entry.LevelInfo, "http")

	fx.send(t, tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.True(t, fx.model.state.ready)
	assert.Len(t, fx.model.state.ids, 2)
	assert.Len(t, fx.model.state.nodes, 2, "one tree node per top-level module")
}

func Test_Model_ToggleModuleFromTreePane(t *testing.T) {
	fx := newModelFixture(t)
	fx.append(entry.LevelInfo, "db")
	fx.append(entry.LevelInfo, "http")

	fx.send(t, tea.WindowSizeMsg{Width: 120, Height: 40})
	fx.send(t, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, treePane, fx.model.state.focused)

	// Cursor starts on the first node, "db" in sorted order.
	fx.send(t, keyMsg(" "))

	assert.Equal(t, 1, fx.view.Len(), "db entries are hidden")
	assert.False(t, fx.filters.Tree().Visible([]string{"db"}))
	assert.Len(t, fx.model.state.ids, 1, "log pane reflects the new view")
}

func Test_Model_LevelKeyHidesSeverity(t *testing.T) {
	fx := newModelFixture(t)
	fx.append(entry.LevelInfo, "db")
	fx.append(entry.LevelWarn, "db")

	fx.send(t, tea.WindowSizeMsg{Width: 120, Height: 40})
	fx.send(t, keyMsg("3"))

	assert.Len(t, fx.model.state.ids, 1, "info entries are hidden")

	fx.send(t, keyMsg("3"))
	assert.Len(t, fx.model.state.ids, 2, "toggling again restores them")
}

func Test_Model_MarkAndClear(t *testing.T) {
	fx := newModelFixture(t)
	fx.append(entry.LevelInfo, "db")
	id := fx.append(entry.LevelInfo, "db")

	fx.send(t, tea.WindowSizeMsg{Width: 120, Height: 40})

	// Autoscroll pins the cursor to the last entry.
	fx.send(t, keyMsg("v"))
	assert.True(t, fx.selection.Has(id))

	fx.send(t, keyMsg("c"))
	assert.Equal(t, 0, fx.selection.Count())
}

func Test_Model_UpKeyDisablesAutoscroll(t *testing.T) {
	fx := newModelFixture(t)
	fx.append(entry.LevelInfo, "db")
	fx.append(entry.LevelInfo, "db")

	fx.send(t, tea.WindowSizeMsg{Width: 120, Height: 40})
	require.True(t, fx.model.state.autoscroll)

	fx.send(t, keyMsg("k"))

	assert.False(t, fx.model.state.autoscroll)
	assert.Equal(t, 0, fx.model.state.logCursor)

	fx.send(t, keyMsg("a"))
	assert.True(t, fx.model.state.autoscroll, "autoscroll can be re-enabled")
}

func Test_Model_QuitKey(t *testing.T) {
	fx := newModelFixture(t)
	fx.send(t, tea.WindowSizeMsg{Width: 120, Height: 40})

	cmd := fx.send(t, keyMsg("q"))

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func Test_Model_SourceResetEvent(t *testing.T) {
	fx := newModelFixture(t)
	fx.append(entry.LevelInfo, "db")
	fx.send(t, tea.WindowSizeMsg{Width: 120, Height: 40})

	fx.send(t, eventMsg(runtime.Event{
		Type: runtime.EventSourceReset,
		Data: runtime.SourceResetData{Path: "/tmp/app.log"},
	}))

	assert.Equal(t, 0, fx.model.state.logCursor)
	assert.Equal(t, "source reset", fx.model.state.notice)
}
