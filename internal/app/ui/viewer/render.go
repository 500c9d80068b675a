package viewer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tracev/internal/app/entry"
	"tracev/internal/app/filter"
	"tracev/internal/app/ui/components"
)

const timestampLayout = "15:04:05.000"

// tree node markers by explicit state
const (
	markerEnabled  = "[x]"
	markerDisabled = "[ ]"
	markerInherit  = "[·]"
)

// renderTreeContent renders all tree nodes into viewport content
func (m Model) renderTreeContent() string {
	lines := make([]string, 0, len(m.state.nodes))

	for i, node := range m.state.nodes {
		lines = append(lines, m.renderTreeNode(node, i == m.state.treeCursor))
	}

	return strings.Join(lines, "\n")
}

// renderTreeNode renders one node: indentation, state marker and the last
// path segment, dimmed when the subtree is effectively hidden
func (m Model) renderTreeNode(node filter.NodeInfo, isCursor bool) string {
	marker := markerInherit

	switch node.State {
	case filter.Enabled:
		marker = markerEnabled
	case filter.Disabled:
		marker = markerDisabled
	}

	name := node.Path[len(node.Path)-1]
	indent := strings.Repeat("  ", node.Depth)
	line := fmt.Sprintf("%s%s %s", indent, marker, name)

	width := m.ui.treeView.Width
	if width > 0 && lipgloss.Width(line) < width {
		line += strings.Repeat(" ", width-lipgloss.Width(line))
	}

	if isCursor && m.state.focused == treePane {
		return components.CursorRowStyle.Render(line)
	}

	if !node.Effective {
		return components.RawStyle.Render(line)
	}

	return line
}

// renderLogContent renders all visible entries into viewport content
func (m Model) renderLogContent() string {
	lines := make([]string, 0, len(m.state.ids))

	for i, id := range m.state.ids {
		e, err := m.store.Get(id)
		if err != nil {
			continue
		}

		isCursor := i == m.state.logCursor && m.state.focused == logPane
		lines = append(lines, m.renderEntry(e, m.selection.Has(id), isCursor))
	}

	return strings.Join(lines, "\n")
}

// renderEntry renders a single log row. Multi-line raw entries keep their
// continuation lines; the highlight covers the whole record.
func (m Model) renderEntry(e entry.Entry, marked, isCursor bool) string {
	var line string

	if e.Kind == entry.Unparsed {
		line = components.RawStyle.Render(e.Raw)
	} else {
		line = m.renderParsed(e)
	}

	switch {
	case isCursor:
		return components.CursorRowStyle.Render(line)
	case marked:
		return components.MarkedRowStyle.Render(line)
	default:
		return line
	}
}

// renderParsed renders a decoded entry: timestamp, level, span context,
// module path, message and trailing fields
func (m Model) renderParsed(e entry.Entry) string {
	var b strings.Builder

	if !e.Timestamp.IsZero() {
		b.WriteString(components.TimestampStyle.Render(e.Timestamp.Format(timestampLayout)))
		b.WriteString(" ")
	}

	levelStyle := lipgloss.NewStyle().Foreground(components.LevelColor(e.Level)).Bold(true)
	b.WriteString(levelStyle.Render(fmt.Sprintf("%-5s", e.Level.String())))
	b.WriteString(" ")

	if len(e.Spans) > 0 {
		b.WriteString(components.SpanStyle.Render(strings.Join(e.Spans, ">") + ":"))
		b.WriteString(" ")
	}

	path := e.ModulePath()
	if path != "" {
		moduleStyle := lipgloss.NewStyle().Foreground(components.ModuleColor(path)).Bold(true)
		b.WriteString(moduleStyle.Render(path + ":"))
		b.WriteString(" ")
	}

	b.WriteString(e.Message)

	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		for _, k := range keys {
			b.WriteString(" ")
			b.WriteString(components.FieldStyle.Render(k + "=" + e.Fields[k]))
		}
	}

	return b.String()
}
