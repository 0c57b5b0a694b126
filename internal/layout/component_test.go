package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingComponent struct {
	id        ComponentID
	keys      []KeyEvent
	mice      []MouseEvent
	keyAction Action
}

func (c *recordingComponent) ID() ComponentID { return c.id }

func (c *recordingComponent) HandleKey(ev KeyEvent) []Action {
	c.keys = append(c.keys, ev)
	if c.keyAction != nil {
		return []Action{c.keyAction}
	}
	return nil
}

func (c *recordingComponent) HandleMouse(ev MouseEvent) []Action {
	c.mice = append(c.mice, ev)
	return nil
}

func TestRouteKeySendsOnlyToFocused(t *testing.T) {
	a := &recordingComponent{id: "A"}
	b := &recordingComponent{id: "B"}
	fc := NewFocusController([]ComponentID{"A", "B"})
	r := NewRouter(fc, []Component{a, b})

	r.RouteKey(KeyEvent{Key: "j"})
	assert.Len(t, a.keys, 1)
	assert.Len(t, b.keys, 0)

	fc.Next()
	r.RouteKey(KeyEvent{Key: "k"})
	assert.Len(t, a.keys, 1)
	assert.Len(t, b.keys, 1)
}

func TestRouteMouseMovesFocusAndDispatches(t *testing.T) {
	a := &recordingComponent{id: "A"}
	b := &recordingComponent{id: "B"}
	fc := NewFocusController([]ComponentID{"A", "B"})
	r := NewRouter(fc, []Component{a, b})

	rects := map[ComponentID]Rect{
		"A": {X: 0, Y: 0, Width: 50, Height: 50},
		"B": {X: 50, Y: 0, Width: 50, Height: 50},
	}
	r.RouteMouse(rects, MouseEvent{X: 60, Y: 10, Action: "press"})

	assert.Equal(t, ComponentID("B"), fc.Current())
	require.Len(t, b.mice, 1)
	assert.Equal(t, 60, b.mice[0].X)
}

func TestRouteMouseOutsideAnyRectDoesNothing(t *testing.T) {
	a := &recordingComponent{id: "A"}
	fc := NewFocusController([]ComponentID{"A"})
	r := NewRouter(fc, []Component{a})

	actions := r.RouteMouse(map[ComponentID]Rect{"A": {X: 0, Y: 0, Width: 10, Height: 10}}, MouseEvent{X: 100, Y: 100})
	assert.Nil(t, actions)
	assert.Len(t, a.mice, 0)
}
