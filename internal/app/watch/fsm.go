package watch

import (
	"context"

	"github.com/looplab/fsm"

	"tracev/internal/app/runtime"
	"tracev/internal/config/logger"
)

// FSM states
const (
	Idle     = "idle"
	Watching = "watching"
	Appended = "appended"
	Rotated  = "rotated"
	Errored  = "errored"
	Stopped  = "stopped"
)

// FSM events
const (
	Start   = "start"
	Data    = "data"
	Settle  = "settle"
	Rotate  = "rotate"
	Fail    = "fail"
	Recover = "recover"
	Stop    = "stop"
)

// newTailFSM creates a state machine for the tail lifecycle. Every
// transition is announced on the bus so the UI can surface the watch state.
func newTailFSM(path string, bus runtime.EventBus, log logger.Logger) *fsm.FSM {
	return fsm.NewFSM(
		Idle,
		fsm.Events{
			{Name: Start, Src: []string{Idle}, Dst: Watching},
			{Name: Data, Src: []string{Watching, Appended}, Dst: Appended},
			{Name: Settle, Src: []string{Appended, Rotated, Errored}, Dst: Watching},
			{Name: Rotate, Src: []string{Watching, Appended, Errored}, Dst: Rotated},
			{Name: Fail, Src: []string{Watching, Appended, Rotated, Errored}, Dst: Errored},
			{Name: Stop, Src: []string{Idle, Watching, Appended, Rotated, Errored}, Dst: Stopped},
		},
		fsm.Callbacks{
			"after_event": func(ctx context.Context, e *fsm.Event) {
				if e.Src == e.Dst {
					return
				}

				log.Debug().Msgf("STATE %s: %s → %s (trigger: %s)", path, e.Src, e.Dst, e.Event)

				bus.Publish(runtime.Event{
					Type: runtime.EventWatchState,
					Data: runtime.WatchStateData{State: e.Dst},
				})
			},
		},
	)
}
