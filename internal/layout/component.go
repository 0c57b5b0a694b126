package layout

// Action is whatever a Component emits in response to an event — the
// event loop (internal/eventloop) interprets and cascades these; layout
// itself never inspects their contents.
type Action any

// KeyEvent and MouseEvent are the two event shapes a Component reacts to.
// internal/appui's Root translates bubbletea's tea.KeyMsg/tea.MouseMsg
// into these before routing.
type KeyEvent struct {
	Key string
}

type MouseEvent struct {
	X, Y   int
	Action string // "press", "release", "wheelup", "wheeldown", ...
}

// Component is one focusable, routable leaf of the layout tree. Grounded
// on internal/ui/view.go View interface (Init/Update/View),
// narrowed here to event handling — rendering is the presentation
// layer's job (internal/appui), not layout's.
type Component interface {
	ID() ComponentID
	HandleKey(KeyEvent) []Action
	HandleMouse(MouseEvent) []Action
}

// Router dispatches events to the right Component: keyboard always goes
// to whichever component FocusController says is focused; mouse goes to
// the smallest rect containing the event's coordinates, which also moves
// focus there.
type Router struct {
	focus      *FocusController
	components map[ComponentID]Component
}

func NewRouter(focus *FocusController, components []Component) *Router {
	byID := make(map[ComponentID]Component, len(components))
	for _, c := range components {
		byID[c.ID()] = c
	}
	return &Router{focus: focus, components: byID}
}

// RouteKey sends ev to the currently focused component, if registered.
func (r *Router) RouteKey(ev KeyEvent) []Action {
	c, ok := r.components[r.focus.Current()]
	if !ok {
		return nil
	}
	return c.HandleKey(ev)
}

// RouteMouse hit-tests ev's coordinates against rects, moves focus to the
// winning component, and dispatches the event to it.
func (r *Router) RouteMouse(rects map[ComponentID]Rect, ev MouseEvent) []Action {
	id, ok := r.focus.HitTest(rects, ev.X, ev.Y)
	if !ok {
		return nil
	}
	r.focus.SetCurrent(id)
	c, ok := r.components[id]
	if !ok {
		return nil
	}
	return c.HandleMouse(ev)
}
