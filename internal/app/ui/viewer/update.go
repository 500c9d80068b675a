package viewer

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"tracev/internal/app/entry"
	"tracev/internal/app/procstats"
	"tracev/internal/app/runtime"
	"tracev/internal/app/ui/components"
)

const (
	tickInterval       = components.UITickInterval
	statsInterval      = 2 * time.Second
	tickCounterMaximum = 1000000
)

// eventMsg wraps a bus event for tea messaging
type eventMsg runtime.Event

// tickMsg signals a UI tick for animations and dirty checks
type tickMsg time.Time

// statsMsg carries a process stats sample
type statsMsg procstats.Stats

// channelClosedMsg signals the event channel has closed
type channelClosedMsg struct{}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.ui.width = msg.Width
		m.ui.height = msg.Height
		m.ui.help.Width = msg.Width

		m.resizePanes()

		if !m.state.ready {
			m.state.ready = true
		}

		m.refreshTree()
		m.refreshLog()

		return m, nil

	case tickMsg:
		m.ui.tickCounter++

		if m.ui.tickCounter >= tickCounterMaximum {
			m.ui.tickCounter = 0
		}

		m.ui.pulse.Update()

		if m.view.Version() != m.state.viewVersion {
			m.refreshTree()
			m.refreshLog()
		}

		return m, tickCmd()

	case statsMsg:
		m.state.stats = procstats.Stats(msg)

		return m, statsCmdAfter(m.sampler, statsInterval)

	case eventMsg:
		return m.handleEvent(runtime.Event(msg))

	case channelClosedMsg:
		m.log.Warn().Msg("TUI: Event channel closed, quitting")

		return m, tea.Quit
	}

	return m, nil
}

// resizePanes distributes the window between the tree and log panes
func (m *Model) resizePanes() {
	panelHeight := m.ui.height - components.PanelHeightPadding
	if panelHeight < components.MinPanelHeight {
		panelHeight = components.MinPanelHeight
	}

	treeWidth := components.TreePanelWidth
	if treeWidth > m.ui.width/2 {
		treeWidth = m.ui.width / 2
	}

	if treeWidth < components.TreePanelMinWidth {
		treeWidth = components.TreePanelMinWidth
	}

	logWidth := m.ui.width - treeWidth - 2*components.PanelBorderPadding - 2
	if logWidth < 1 {
		logWidth = 1
	}

	m.ui.treeView.Width = treeWidth
	m.ui.treeView.Height = panelHeight
	m.ui.logView.Width = logWidth
	m.ui.logView.Height = panelHeight
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.ui.keys.ForceQuit) {
		m.log.Warn().Msg("TUI: Force quit requested, exiting immediately")

		return m, tea.Quit
	}

	switch {
	case key.Matches(msg, m.ui.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.ui.keys.SwitchPane):
		if m.state.focused == treePane {
			m.state.focused = logPane
		} else {
			m.state.focused = treePane
		}

		return m, nil

	case key.Matches(msg, m.ui.keys.Up):
		return m.handleUpKey()

	case key.Matches(msg, m.ui.keys.Down):
		return m.handleDownKey()

	case key.Matches(msg, m.ui.keys.Toggle):
		return m.handleToggleKey()

	case key.Matches(msg, m.ui.keys.Mark):
		return m.handleMarkKey()

	case key.Matches(msg, m.ui.keys.ClearMarks):
		m.selection.Clear()
		m.state.notice = "marks cleared"
		m.refreshLog()

		return m, nil

	case key.Matches(msg, m.ui.keys.Copy):
		return m.handleCopyKey()

	case key.Matches(msg, m.ui.keys.Autoscroll):
		m.state.autoscroll = !m.state.autoscroll
		if m.state.autoscroll {
			m.refreshLog()
		}

		return m, nil

	case key.Matches(msg, m.ui.keys.LevelTrace):
		return m.handleLevelKey(entry.LevelTrace)

	case key.Matches(msg, m.ui.keys.LevelDebug):
		return m.handleLevelKey(entry.LevelDebug)

	case key.Matches(msg, m.ui.keys.LevelInfo):
		return m.handleLevelKey(entry.LevelInfo)

	case key.Matches(msg, m.ui.keys.LevelWarn):
		return m.handleLevelKey(entry.LevelWarn)

	case key.Matches(msg, m.ui.keys.LevelError):
		return m.handleLevelKey(entry.LevelError)
	}

	switch msg.String() {
	case "pgup", "pgdown", "home", "end":
		var cmd tea.Cmd

		if m.state.focused == logPane {
			m.state.autoscroll = false
			m.ui.logView, cmd = m.ui.logView.Update(msg)
		} else {
			m.ui.treeView, cmd = m.ui.treeView.Update(msg)
		}

		return m, cmd
	}

	return m, nil
}

// handleUpKey moves the cursor in the focused pane
func (m Model) handleUpKey() (tea.Model, tea.Cmd) {
	if m.state.focused == treePane {
		if m.state.treeCursor > 0 {
			m.state.treeCursor--
			m.ui.treeView.SetContent(m.renderTreeContent())
			m.scrollTreeToCursor()
		}

		return m, nil
	}

	if m.state.logCursor > 0 {
		m.state.logCursor--
		m.state.autoscroll = false
		m.ui.logView.SetContent(m.renderLogContent())
		m.scrollLogToCursor()
	}

	return m, nil
}

// handleDownKey moves the cursor in the focused pane
func (m Model) handleDownKey() (tea.Model, tea.Cmd) {
	if m.state.focused == treePane {
		if m.state.treeCursor < len(m.state.nodes)-1 {
			m.state.treeCursor++
			m.ui.treeView.SetContent(m.renderTreeContent())
			m.scrollTreeToCursor()
		}

		return m, nil
	}

	if m.state.logCursor < len(m.state.ids)-1 {
		m.state.logCursor++
		m.ui.logView.SetContent(m.renderLogContent())
		m.scrollLogToCursor()
	}

	return m, nil
}

// handleToggleKey flips visibility of the module under the tree cursor and
// retests every stored entry
func (m Model) handleToggleKey() (tea.Model, tea.Cmd) {
	if m.state.focused != treePane {
		return m, nil
	}

	if m.state.treeCursor < 0 || m.state.treeCursor >= len(m.state.nodes) {
		return m, nil
	}

	node := m.state.nodes[m.state.treeCursor]
	m.filters.Tree().Toggle(node.Path)
	m.view.Recompute()

	m.refreshTree()
	m.refreshLog()

	return m, nil
}

// handleLevelKey flips visibility of one severity
func (m Model) handleLevelKey(level entry.Level) (tea.Model, tea.Cmd) {
	m.filters.Levels().Toggle(level)
	m.view.Recompute()
	m.refreshLog()

	return m, nil
}

// handleMarkKey toggles selection of the log line under the cursor
func (m Model) handleMarkKey() (tea.Model, tea.Cmd) {
	if m.state.focused != logPane {
		return m, nil
	}

	id, ok := m.cursorID()
	if !ok {
		return m, nil
	}

	m.selection.Toggle(id)
	m.ui.logView.SetContent(m.renderLogContent())

	return m, nil
}

// handleCopyKey exports the marked entries to the clipboard
func (m Model) handleCopyKey() (tea.Model, tea.Cmd) {
	n, err := m.exporter.Copy()
	if err != nil {
		m.state.notice = err.Error()

		return m, nil
	}

	m.state.notice = fmt.Sprintf("copied %d entries", n)

	return m, nil
}

// handleEvent applies a bus event to the model
func (m Model) handleEvent(event runtime.Event) (tea.Model, tea.Cmd) {
	switch event.Type {
	case runtime.EventEntriesAppended:
		m.ui.pulse.Trigger()
		// Content refresh happens on the next tick via the version check.

	case runtime.EventFilterChanged:
		m.refreshTree()
		m.refreshLog()

	case runtime.EventSourceReset:
		m.state.logCursor = 0
		m.state.notice = "source reset"
		m.refreshTree()
		m.refreshLog()

	case runtime.EventSourceError:
		if data, ok := event.Data.(runtime.SourceErrorData); ok {
			m.state.notice = fmt.Sprintf("source error: %v (retry in %s)", data.Err, data.Retry)
		}

	case runtime.EventWatchState:
		if data, ok := event.Data.(runtime.WatchStateData); ok {
			m.state.watchState = data.State

			if data.State == "watching" {
				m.state.notice = ""
			}
		}

	case runtime.EventWatchStopped:
		if data, ok := event.Data.(runtime.WatchStoppedData); ok {
			m.state.watchState = fmt.Sprintf("stopped (%s)", data.Reason)
		}
	}

	return m, waitForEventCmd(m.eventCh)
}

// waitForEventCmd returns a command that waits for the next bus event
func waitForEventCmd(eventCh <-chan runtime.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-eventCh
		if !ok {
			return channelClosedMsg{}
		}

		return eventMsg(event)
	}
}

// tickCmd returns a command that sends a tick after the interval
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// statsCmd samples process stats immediately
func statsCmd(sampler procstats.Sampler) tea.Cmd {
	return func() tea.Msg {
		stats, _ := sampler.Sample()

		return statsMsg(stats)
	}
}

// statsCmdAfter samples process stats after a delay
func statsCmdAfter(sampler procstats.Sampler, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		stats, _ := sampler.Sample()

		return statsMsg(stats)
	})
}
