package viewer

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"tracev/internal/app/procstats"
	"tracev/internal/app/ui/components"
	"tracev/internal/config"
)

// View renders the UI
func (m Model) View() string {
	if !m.state.ready {
		return "Initializing…"
	}

	treeStyle := components.InactivePanelStyle
	logStyle := components.ActivePanelStyle

	if m.state.focused == treePane {
		treeStyle, logStyle = logStyle, treeStyle
	}

	treePanel := treeStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		components.TitleStyle.Render("modules"),
		m.renderTree(),
	))

	logPanel := logStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		components.TitleStyle.Render("log"),
		m.renderLog(),
	))

	panes := lipgloss.JoinHorizontal(lipgloss.Top, treePanel, logPanel)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		panes,
		m.renderStatus(),
		m.renderHelp(),
	)
}

// renderTree renders the filter tree pane or an empty state
func (m Model) renderTree() string {
	if len(m.state.nodes) == 0 {
		return components.EmptyStateStyle.Render("No modules yet")
	}

	return m.ui.treeView.View()
}

// renderLog renders the log pane or an empty state
func (m Model) renderLog() string {
	if len(m.state.ids) == 0 {
		if m.store.Len() > 0 {
			return components.EmptyStateStyle.Render("All entries filtered out")
		}

		return components.EmptyStateStyle.Render("Waiting for entries…")
	}

	return m.ui.logView.View()
}

// renderStatus renders the status bar: activity pulse, watch state, visible
// and total counts, marks, resource usage and version
func (m Model) renderStatus() string {
	parts := fmt.Sprintf("%s %s • %d/%d entries",
		m.ui.pulse.Render(components.BlinkStyle),
		m.state.watchState,
		m.view.Len(),
		m.store.Len(),
	)

	if n := m.selection.Count(); n > 0 {
		parts += fmt.Sprintf(" • %d marked", n)
	}

	if m.state.autoscroll {
		parts += " • follow"
	}

	if m.state.stats.MEM > 0 {
		parts += fmt.Sprintf(" • cpu %.1f%% • mem %s",
			m.state.stats.CPU, procstats.FormatMemory(m.state.stats.MEM))
	}

	parts += fmt.Sprintf(" • v%s", config.Version)

	if m.state.notice != "" {
		parts += "  " + components.ErrorStyle.Render(m.state.notice)
	}

	return components.StatusStyle.Render(parts)
}

// renderHelp renders the help line with keybindings
func (m Model) renderHelp() string {
	return components.HelpStyle.Render(m.ui.help.View(m.ui.keys))
}
