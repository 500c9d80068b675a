package viewer

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"tracev/internal/app/entry"
	"tracev/internal/app/export"
	"tracev/internal/app/filter"
	"tracev/internal/app/procstats"
	"tracev/internal/app/runtime"
	"tracev/internal/app/store"
	"tracev/internal/app/ui/components"
	"tracev/internal/app/view"
	"tracev/internal/config"
	"tracev/internal/config/logger"
)

type pane int

const (
	treePane pane = iota
	logPane
)

// Model is the Bubble Tea model for the viewer: a module filter tree pane
// beside a log pane, fed by the ingestion pipeline through the event bus
type Model struct {
	ctx       context.Context
	cfg       *config.Config
	store     store.Store
	filters   *filter.Set
	view      view.Index
	selection export.Selection
	exporter  export.Exporter
	sampler   procstats.Sampler
	eventCh   <-chan runtime.Event

	state struct {
		focused     pane
		nodes       []filter.NodeInfo
		treeCursor  int
		ids         []entry.ID
		logCursor   int
		autoscroll  bool
		watchState  string
		notice      string
		stats       procstats.Stats
		viewVersion uint64
		ready       bool
	}

	ui struct {
		width       int
		height      int
		keys        components.KeyMap
		help        help.Model
		treeView    viewport.Model
		logView     viewport.Model
		pulse       *components.Pulse
		tickCounter int
	}

	log logger.Logger
}

// NewModel creates the viewer model and subscribes to the event bus
func NewModel(
	ctx context.Context,
	cfg *config.Config,
	s store.Store,
	f *filter.Set,
	v view.Index,
	sel export.Selection,
	exp export.Exporter,
	sampler procstats.Sampler,
	bus runtime.EventBus,
	log logger.Logger,
) Model {
	log = log.WithComponent("UI")
	eventCh := bus.Subscribe(ctx)

	log.Debug().Msg("Created model and subscribed to events")

	m := Model{
		ctx:       ctx,
		cfg:       cfg,
		store:     s,
		filters:   f,
		view:      v,
		selection: sel,
		exporter:  exp,
		sampler:   sampler,
		eventCh:   eventCh,
		log:       log,
	}

	m.state.focused = logPane
	m.state.autoscroll = true
	m.state.watchState = "idle"

	m.ui.keys = components.DefaultKeyMap()
	m.ui.help = help.New()
	m.ui.treeView = viewport.New(0, 0)
	m.ui.logView = viewport.New(0, 0)
	m.ui.pulse = components.NewPulse()

	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForEventCmd(m.eventCh),
		tickCmd(),
		statsCmd(m.sampler),
	)
}

// cursorID returns the entry id under the log cursor
func (m Model) cursorID() (entry.ID, bool) {
	if m.state.logCursor < 0 || m.state.logCursor >= len(m.state.ids) {
		return 0, false
	}

	return m.state.ids[m.state.logCursor], true
}

// refreshTree rebuilds the filter tree pane content
func (m *Model) refreshTree() {
	m.state.nodes = m.filters.Tree().Nodes()

	if m.state.treeCursor >= len(m.state.nodes) {
		m.state.treeCursor = len(m.state.nodes) - 1
	}

	if m.state.treeCursor < 0 {
		m.state.treeCursor = 0
	}

	m.ui.treeView.SetContent(m.renderTreeContent())
	m.scrollTreeToCursor()
}

// refreshLog rebuilds the log pane content from the view index
func (m *Model) refreshLog() {
	m.state.ids = m.view.IDs()
	m.state.viewVersion = m.view.Version()

	if m.state.logCursor >= len(m.state.ids) {
		m.state.logCursor = len(m.state.ids) - 1
	}

	if m.state.logCursor < 0 {
		m.state.logCursor = 0
	}

	m.ui.logView.SetContent(m.renderLogContent())

	if m.state.autoscroll {
		m.ui.logView.GotoBottom()
		m.state.logCursor = len(m.state.ids) - 1

		if m.state.logCursor < 0 {
			m.state.logCursor = 0
		}
	} else {
		m.scrollLogToCursor()
	}
}

func (m *Model) scrollTreeToCursor() {
	m.scrollToLine(&m.ui.treeView, m.state.treeCursor)
}

func (m *Model) scrollLogToCursor() {
	m.scrollToLine(&m.ui.logView, m.state.logCursor)
}

// scrollToLine keeps the given line inside the viewport
func (m *Model) scrollToLine(vp *viewport.Model, line int) {
	if vp.Height <= 0 {
		return
	}

	if line < vp.YOffset {
		vp.YOffset = line
	} else if line >= vp.YOffset+vp.Height {
		vp.YOffset = line - vp.Height + 1
	}
}
