package eventloop

import (
	"log/slog"

	"github.com/amaru-doctor/doctor/internal/layout"
)

// maxCascadeDepth bounds how many follow-up actions one event may
// produce transitively, so a component that (by mistake, or by feeding
// itself its own output) keeps emitting actions can't wedge the render
// loop forever.
const maxCascadeDepth = 64

// Handler processes one action and returns whatever follow-up actions it
// produces, to be processed in turn.
type Handler func(layout.Action) []layout.Action

// Dispatch drains initial and every action it transitively produces, in
// FIFO order, via handle. Grounded on appModelAdapter.Update
// switch (internal/ui/app.go), generalized from a single-message switch
// into an explicit queue so one input event can fan out into several
// component reactions within the same tick, capped at maxCascadeDepth.
func Dispatch(initial []layout.Action, handle Handler, log *slog.Logger) {
	if len(initial) == 0 {
		return
	}
	if log == nil {
		log = slog.Default()
	}
	queue := append([]layout.Action(nil), initial...)
	processed := 0
	for len(queue) > 0 {
		if processed >= maxCascadeDepth {
			log.Warn("eventloop: action cascade exceeded max depth, dropping remainder", "depth", maxCascadeDepth, "remaining", len(queue))
			return
		}
		action := queue[0]
		queue = queue[1:]
		queue = append(queue, handle(action)...)
		processed++
	}
}
