package components

import "github.com/charmbracelet/lipgloss"

// Common styles shared across UI components
var (
	// TitleStyle for panel titles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// ActivePanelStyle for the focused panel border
	ActivePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary).
				Padding(0, 1)

	// InactivePanelStyle for unfocused panel borders
	InactivePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorder).
				Padding(0, 1)

	// HelpStyle for help text
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorBorder).
			Padding(0, 1)

	// StatusStyle for the status bar
	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	// TimestampStyle for entry timestamps
	TimestampStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// FieldStyle for trailing key=value fields
	FieldStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)

	// SpanStyle for span context prefixes
	SpanStyle = lipgloss.NewStyle().
			Foreground(ColorBorder).
			Italic(true)

	// RawStyle for entries that did not parse
	RawStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// ErrorStyle for error messages
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	// EmptyStateStyle for empty state messages
	EmptyStateStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(2)

	// CursorRowStyle for the row under the cursor
	CursorRowStyle = lipgloss.NewStyle().
			Background(ColorSelectionBg)

	// MarkedRowStyle for rows in the selection
	MarkedRowStyle = lipgloss.NewStyle().
			Background(ColorMarkedBg)

	// BlinkStyle for the activity indicator
	BlinkStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)
)
