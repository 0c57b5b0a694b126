package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Scenario 6: a 2x2 grid with directional focus movement
// that wraps around the screen edges when no candidate lies in the
// requested half-plane.
func grid2x2() map[ComponentID]Rect {
	return map[ComponentID]Rect{
		"A": {X: 0, Y: 0, Width: 50, Height: 50},
		"B": {X: 50, Y: 0, Width: 50, Height: 50},
		"C": {X: 0, Y: 50, Width: 50, Height: 50},
		"D": {X: 50, Y: 50, Width: 50, Height: 50},
	}
}

func TestFocusMoveRightThenWraps(t *testing.T) {
	rects := grid2x2()
	fc := NewFocusController([]ComponentID{"A", "B", "C", "D"})

	fc.Move(rects, MoveRight)
	assert.Equal(t, ComponentID("B"), fc.Current())

	fc.Move(rects, MoveRight)
	assert.Equal(t, ComponentID("A"), fc.Current(), "wraps to the leftmost column")
}

func TestFocusMoveDownThenWraps(t *testing.T) {
	rects := grid2x2()
	fc := NewFocusController([]ComponentID{"A", "B", "C", "D"})

	fc.Move(rects, MoveDown)
	assert.Equal(t, ComponentID("C"), fc.Current())

	fc.Move(rects, MoveDown)
	assert.Equal(t, ComponentID("A"), fc.Current(), "wraps to the topmost row")
}

func TestFocusMoveUpWrapsToBottomRow(t *testing.T) {
	rects := grid2x2()
	fc := NewFocusController([]ComponentID{"A", "B", "C", "D"})
	fc.SetCurrent("A")

	fc.Move(rects, MoveUp)
	assert.Equal(t, ComponentID("C"), fc.Current(), "wraps to the bottommost row, leftmost tiebreak")
}

func TestFocusMoveLeftWrapsToRightColumn(t *testing.T) {
	rects := grid2x2()
	fc := NewFocusController([]ComponentID{"A", "B", "C", "D"})
	fc.SetCurrent("A")

	fc.Move(rects, MoveLeft)
	assert.Equal(t, ComponentID("B"), fc.Current(), "wraps to the rightmost column, topmost tiebreak")
}

func TestFocusNextPrevCycleInOrder(t *testing.T) {
	fc := NewFocusController([]ComponentID{"A", "B", "C", "D"})
	fc.Next()
	assert.Equal(t, ComponentID("B"), fc.Current())
	fc.Next()
	fc.Next()
	fc.Next()
	assert.Equal(t, ComponentID("A"), fc.Current(), "cycles back to the start")

	fc.Prev()
	assert.Equal(t, ComponentID("D"), fc.Current(), "wraps backward past the start")
}

func TestHitTestPicksSmallestContainingRect(t *testing.T) {
	rects := map[ComponentID]Rect{
		"outer": {X: 0, Y: 0, Width: 100, Height: 100},
		"inner": {X: 10, Y: 10, Width: 20, Height: 20},
	}
	fc := NewFocusController([]ComponentID{"outer", "inner"})

	id, ok := fc.HitTest(rects, 15, 15)
	assert.True(t, ok)
	assert.Equal(t, ComponentID("inner"), id)

	id, ok = fc.HitTest(rects, 90, 90)
	assert.True(t, ok)
	assert.Equal(t, ComponentID("outer"), id)

	_, ok = fc.HitTest(rects, 200, 200)
	assert.False(t, ok)
}

func TestSetOrderPreservesCurrentFocusWhenStillPresent(t *testing.T) {
	fc := NewFocusController([]ComponentID{"A", "B", "C"})
	fc.SetCurrent("B")
	fc.SetOrder([]ComponentID{"B", "C", "D"})
	assert.Equal(t, ComponentID("B"), fc.Current())

	fc.SetOrder([]ComponentID{"X", "Y"})
	assert.Equal(t, ComponentID("X"), fc.Current(), "falls back to the first entry once focus vanishes")
}
