// Package eventloop defines the event protocol the root component reacts
// to and the bounded-cascade action dispatcher that turns
// one event into a FIFO-ordered sequence of processed follow-up actions.
// internal/appui translates bubbletea's tea.Msg directly into layout
// events rather than these Event values, and wires this package's
// Dispatch into its Update loop.
package eventloop

import "github.com/amaru-doctor/doctor/internal/layout"

// Event is the closed set of things the root component reacts to: a
// render tick, an explicit render request, a resize, an input event,
// focus changes, and shutdown.
type Event interface {
	isEvent()
}

type TickEvent struct{}

func (TickEvent) isEvent() {}

type RenderEvent struct{}

func (RenderEvent) isEvent() {}

type ResizeEvent struct {
	Width, Height int
}

func (ResizeEvent) isEvent() {}

type KeyEvent struct {
	Key layout.KeyEvent
}

func (KeyEvent) isEvent() {}

type MouseEvent struct {
	Mouse layout.MouseEvent
}

func (MouseEvent) isEvent() {}

type PasteEvent struct {
	Text string
}

func (PasteEvent) isEvent() {}

type FocusGainedEvent struct{}

func (FocusGainedEvent) isEvent() {}

type FocusLostEvent struct{}

func (FocusLostEvent) isEvent() {}

type QuitEvent struct{}

func (QuitEvent) isEvent() {}
