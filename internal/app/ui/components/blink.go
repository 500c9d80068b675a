package components

import (
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
)

const (
	pulseEmpty = "◯"
	pulseFull  = "◉"

	pulseFPS = UITicksPerSecond

	// Spring physics parameters
	pulseAngularFrequency = 9.0
	pulseDampingRatio     = 0.8

	// Ticks the indicator stays lit after a trigger before decaying
	pulseHoldTicks = 2

	pulseFrameThreshold = 0.3
)

// Pulse is an activity indicator driven by spring physics: each trigger
// snaps it towards full and it decays back smoothly when the activity stops.
type Pulse struct {
	spring   harmonica.Spring
	position float64
	velocity float64
	target   float64
	hold     int
}

// NewPulse creates an idle pulse
func NewPulse() *Pulse {
	return &Pulse{
		spring: harmonica.NewSpring(harmonica.FPS(pulseFPS), pulseAngularFrequency, pulseDampingRatio),
	}
}

// Trigger lights the indicator
func (p *Pulse) Trigger() {
	p.target = 1.0
	p.hold = pulseHoldTicks
}

// Update advances the animation (called on each UI tick)
func (p *Pulse) Update() {
	if p.hold > 0 {
		p.hold--
	} else {
		p.target = 0.0
	}

	p.position, p.velocity = p.spring.Update(p.position, p.velocity, p.target)
}

// Frame returns the current frame based on the spring position
func (p *Pulse) Frame() string {
	if p.position < pulseFrameThreshold {
		return pulseEmpty
	}

	return pulseFull
}

// Render returns the styled frame
func (p *Pulse) Render(style lipgloss.Style) string {
	return style.Render(p.Frame())
}
