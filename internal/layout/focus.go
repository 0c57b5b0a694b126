package layout

// Direction4 is a screen-relative direction for focus movement, distinct
// from the layout tree's split Direction.
type Direction4 int

const (
	MoveUp Direction4 = iota
	MoveDown
	MoveLeft
	MoveRight
)

// FocusController tracks which component currently has focus and computes
// where focus moves to next, given the current frame's leaf rects.
// Grounded on the upstream node's
// set_focus_by_move/find_next_focus: filter candidates to the half-plane
// in the requested direction, pick the nearest by primary-axis distance
// with secondary-axis alignment as a tiebreak, and wrap around the
// opposite screen edge when no candidate exists in that half-plane.
type FocusController struct {
	order   []ComponentID // stable order for Next/Prev cycling and HitTest ties
	current ComponentID
}

// NewFocusController builds a controller whose initial focus is the
// first entry of order, if any.
func NewFocusController(order []ComponentID) *FocusController {
	fc := &FocusController{order: append([]ComponentID(nil), order...)}
	if len(fc.order) > 0 {
		fc.current = fc.order[0]
	}
	return fc
}

// Current returns the focused component's ID.
func (fc *FocusController) Current() ComponentID {
	return fc.current
}

// SetCurrent forces focus to id, ignoring geometry. Used for mouse clicks
// and for re-deriving focus after a layout whose component set changed.
func (fc *FocusController) SetCurrent(id ComponentID) {
	fc.current = id
}

// SetOrder replaces the known component order (e.g. after a layout
// rebuild added or removed components), preserving current focus if it
// still exists and otherwise falling back to the first entry.
func (fc *FocusController) SetOrder(order []ComponentID) {
	fc.order = append([]ComponentID(nil), order...)
	for _, id := range fc.order {
		if id == fc.current {
			return
		}
	}
	if len(fc.order) > 0 {
		fc.current = fc.order[0]
	} else {
		fc.current = ""
	}
}

// Next/Prev cycle focus through order in sequence, independent of
// geometry — used for Tab/Shift-Tab style navigation.
func (fc *FocusController) Next() {
	fc.cycle(1)
}

func (fc *FocusController) Prev() {
	fc.cycle(-1)
}

func (fc *FocusController) cycle(delta int) {
	n := len(fc.order)
	if n == 0 {
		return
	}
	idx := fc.indexOf(fc.current)
	if idx < 0 {
		fc.current = fc.order[0]
		return
	}
	idx = (idx + delta + n) % n
	fc.current = fc.order[idx]
}

func (fc *FocusController) indexOf(id ComponentID) int {
	for i, c := range fc.order {
		if c == id {
			return i
		}
	}
	return -1
}

// Move shifts focus in a screen direction using rects, the current
// frame's leaf layout. If the current focus has no rect (stale layout),
// Move does nothing. If no candidate lies in the requested half-plane,
// focus wraps to the extreme component on the opposite edge.
func (fc *FocusController) Move(rects map[ComponentID]Rect, dir Direction4) {
	current, ok := rects[fc.current]
	if !ok {
		return
	}
	cx, cy := current.Center()

	type candidate struct {
		id   ComponentID
		rect Rect
	}
	var inPlane []candidate
	for id, r := range rects {
		if id == fc.current {
			continue
		}
		if inHalfPlane(dir, current, r) {
			inPlane = append(inPlane, candidate{id, r})
		}
	}

	if len(inPlane) > 0 {
		best := inPlane[0]
		bestPrimary, bestSecondary := axisDistance(dir, cx, cy, best.rect)
		for _, c := range inPlane[1:] {
			p, s := axisDistance(dir, cx, cy, c.rect)
			if p < bestPrimary || (p == bestPrimary && s < bestSecondary) {
				best, bestPrimary, bestSecondary = c, p, s
			}
		}
		fc.current = best.id
		return
	}

	// Wraparound: jump to the extreme component on the far edge.
	var wrapped candidate
	haveWrapped := false
	for id, r := range rects {
		if id == fc.current {
			continue
		}
		if !haveWrapped || wrapsBefore(dir, r, wrapped.rect) {
			wrapped = candidate{id, r}
			haveWrapped = true
		}
	}
	if haveWrapped {
		fc.current = wrapped.id
	}
}

func inHalfPlane(dir Direction4, current, candidate Rect) bool {
	switch dir {
	case MoveUp:
		return candidate.Bottom() <= current.Top()
	case MoveDown:
		return candidate.Top() >= current.Bottom()
	case MoveLeft:
		return candidate.Right() <= current.Left()
	case MoveRight:
		return candidate.Left() >= current.Right()
	}
	return false
}

// axisDistance returns (primary, secondary) distance of r's center from
// (cx, cy): for vertical moves the primary axis is Y, secondary X, and
// vice versa for horizontal moves — matching the original's tie-break
// order (closest along the move axis, then best aligned on the cross
// axis).
func axisDistance(dir Direction4, cx, cy int, r Rect) (primary, secondary int) {
	tx, ty := r.Center()
	switch dir {
	case MoveUp, MoveDown:
		return absDiff(ty, cy), absDiff(tx, cx)
	default:
		return absDiff(tx, cx), absDiff(ty, cy)
	}
}

// wrapsBefore reports whether candidate a is a "more extreme" wraparound
// target than the current best b for dir: Right wraps to the leftmost
// column, Left to the rightmost, Down to the topmost row, Up to the
// bottommost row, each tie-broken by the cross axis.
func wrapsBefore(dir Direction4, a, b Rect) bool {
	switch dir {
	case MoveRight:
		if a.Left() != b.Left() {
			return a.Left() < b.Left()
		}
		return a.Top() < b.Top()
	case MoveLeft:
		if a.Right() != b.Right() {
			return a.Right() > b.Right()
		}
		return a.Top() < b.Top()
	case MoveDown:
		if a.Top() != b.Top() {
			return a.Top() < b.Top()
		}
		return a.Left() < b.Left()
	default: // MoveUp
		if a.Bottom() != b.Bottom() {
			return a.Bottom() > b.Bottom()
		}
		return a.Left() < b.Left()
	}
}

// HitTest returns the smallest-area rect containing (x, y), breaking ties
// by the component earliest in the known order.
func (fc *FocusController) HitTest(rects map[ComponentID]Rect, x, y int) (ComponentID, bool) {
	best := ComponentID("")
	bestArea := -1
	bestRank := -1
	for id, r := range rects {
		if !r.Contains(x, y) {
			continue
		}
		area := r.Area()
		rank := fc.indexOf(id)
		if bestArea == -1 || area < bestArea || (area == bestArea && rank < bestRank) {
			best, bestArea, bestRank = id, area, rank
		}
	}
	if bestArea == -1 {
		return "", false
	}
	return best, true
}
