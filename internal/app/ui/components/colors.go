package components

import (
	"github.com/charmbracelet/lipgloss"

	"tracev/internal/app/entry"
)

// Color palette for the UI with semantic naming
const (
	ColorPrimary = lipgloss.Color("#7D56F4") // Purple - primary/focus color
	ColorMuted   = lipgloss.Color("7")       // Light gray - muted elements
	ColorBorder  = lipgloss.Color("8")       // Gray - borders and help text

	ColorSelectionBg = lipgloss.Color("235") // Dark gray - cursor row background
	ColorMarkedBg    = lipgloss.Color("237") // Slightly lighter - marked rows

	// Severity colors
	ColorTrace = lipgloss.Color("8")  // Gray
	ColorDebug = lipgloss.Color("6")  // Cyan
	ColorInfo  = lipgloss.Color("10") // Green
	ColorWarn  = lipgloss.Color("11") // Yellow
	ColorError = lipgloss.Color("9")  // Red
)

// ModuleColorPalette provides distinct colors for module paths
var ModuleColorPalette = []lipgloss.AdaptiveColor{
	{Light: "#0891b2", Dark: "#22d3ee"}, // Cyan
	{Light: "#d97706", Dark: "#fbbf24"}, // Amber
	{Light: "#059669", Dark: "#34d399"}, // Emerald
	{Light: "#7c3aed", Dark: "#a78bfa"}, // Violet
	{Light: "#db2777", Dark: "#f472b6"}, // Pink
	{Light: "#2563eb", Dark: "#60a5fa"}, // Blue
	{Light: "#dc2626", Dark: "#f87171"}, // Red
	{Light: "#65a30d", Dark: "#a3e635"}, // Lime
	{Light: "#0d9488", Dark: "#2dd4bf"}, // Teal
	{Light: "#ea580c", Dark: "#fb923c"}, // Orange
	{Light: "#4f46e5", Dark: "#818cf8"}, // Indigo
	{Light: "#0284c7", Dark: "#38bdf8"}, // Sky
	{Light: "#15803d", Dark: "#86efac"}, // Green
	{Light: "#6d28d9", Dark: "#c4b5fd"}, // Purple
	{Light: "#b45309", Dark: "#fcd34d"}, // Gold
	{Light: "#047857", Dark: "#6ee7b7"}, // Mint
}

// LevelColor returns the severity color for a level
func LevelColor(level entry.Level) lipgloss.Color {
	switch level {
	case entry.LevelTrace:
		return ColorTrace
	case entry.LevelDebug:
		return ColorDebug
	case entry.LevelInfo:
		return ColorInfo
	case entry.LevelWarn:
		return ColorWarn
	case entry.LevelError:
		return ColorError
	default:
		return ColorMuted
	}
}

// ModuleColor returns a stable color for a module path
func ModuleColor(path string) lipgloss.AdaptiveColor {
	h := 0
	for _, c := range path {
		h = 31*h + int(c)
	}

	if h < 0 {
		h = -h
	}

	return ModuleColorPalette[h%len(ModuleColorPalette)]
}
