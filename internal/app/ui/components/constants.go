package components

import "time"

// UI timing constants
const (
	// UITickInterval is the base tick rate for the viewer UI
	UITickInterval = 100 * time.Millisecond

	// Derived FPS for animations (ticks per second)
	UITicksPerSecond = int(time.Second / UITickInterval)
)

// Layout constants
const (
	TreePanelWidth     = 34
	TreePanelMinWidth  = 20
	PanelHeightPadding = 4
	PanelBorderPadding = 2
	MinPanelHeight     = 6

	DefaultViewportWidth = 80
)
