package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Pulse_IdleStaysEmpty(t *testing.T) {
	p := NewPulse()

	for i := 0; i < 20; i++ {
		p.Update()
	}

	assert.Equal(t, pulseEmpty, p.Frame())
}

func Test_Pulse_TriggerLightsUpThenDecays(t *testing.T) {
	p := NewPulse()

	p.Trigger()

	lit := false
	for i := 0; i < 10; i++ {
		p.Update()
		if p.Frame() == pulseFull {
			lit = true
			break
		}
	}
	assert.True(t, lit, "trigger drives the indicator to full within a few ticks")

	for i := 0; i < 60; i++ {
		p.Update()
	}
	assert.Equal(t, pulseEmpty, p.Frame(), "indicator decays back to idle")
}

func Test_Pulse_RepeatedTriggersKeepItLit(t *testing.T) {
	p := NewPulse()

	for i := 0; i < 30; i++ {
		p.Trigger()
		p.Update()
	}

	assert.Equal(t, pulseFull, p.Frame())
}
