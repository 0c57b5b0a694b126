package layout

// Direction is the axis a node's children are split along.
type Direction int

const (
	Vertical Direction = iota
	Horizontal
)

// ConstraintKind selects how a child's share of its parent's area is
// computed, mirroring the three constraint kinds the original
// implementation's layout spec used (fixed length, percentage, and a
// weighted remainder-fill).
type ConstraintKind int

const (
	Length ConstraintKind = iota
	Percentage
	Fill
)

// Constraint sizes one child of a split. Value is a cell count for
// Length, 0-100 for Percentage, and a relative weight for Fill.
type Constraint struct {
	Kind  ConstraintKind
	Value int
}

func Fixed(cells int) Constraint       { return Constraint{Kind: Length, Value: cells} }
func Percent(pct int) Constraint       { return Constraint{Kind: Percentage, Value: pct} }
func FillWeight(weight int) Constraint { return Constraint{Kind: Fill, Value: weight} }

// ComponentID names a leaf position in the layout tree — what the
// Component tree (component.go) and FocusController key off of.
type ComponentID string

// Node is one level of the declarative layout tree. A leaf has no Children and names the ComponentID that
// occupies its computed Rect; a branch has Children, each sized by its own
// Constraint and arranged along Direction.
type Node struct {
	ID         ComponentID
	Constraint Constraint
	Direction  Direction
	Children   []*Node
}

// Leaf builds a leaf node occupying a single component's slot.
func Leaf(id ComponentID, c Constraint) *Node {
	return &Node{ID: id, Constraint: c}
}

// Split builds a branch node dividing its area among children along dir.
// The branch's own Constraint (how much of its parent's area it gets) is
// set separately when nesting it as another node's child.
func Split(dir Direction, c Constraint, children ...*Node) *Node {
	return &Node{Constraint: c, Direction: dir, Children: children}
}

// Evaluate walks spec against area and returns every leaf's computed Rect,
// keyed by ComponentID. Grounded on the upstream node's
// walk_layout: proportional constraint-driven splitting at each branch,
// recursing into sub-specs, recording leaves directly.
func Evaluate(spec *Node, area Rect) map[ComponentID]Rect {
	out := make(map[ComponentID]Rect)
	walk(spec, area, out)
	return out
}

func walk(n *Node, area Rect, out map[ComponentID]Rect) {
	if len(n.Children) == 0 {
		out[n.ID] = area
		return
	}
	constraints := make([]Constraint, len(n.Children))
	for i, c := range n.Children {
		constraints[i] = c.Constraint
	}
	rects := split(n.Direction, area, constraints)
	for i, child := range n.Children {
		walk(child, rects[i], out)
	}
}

// split divides area along direction according to constraints, in order:
// Length and Percentage consume their exact share first, then whatever
// remains is distributed among Fill constraints proportional to their
// weight, with any rounding remainder given to the last Fill slot so the
// total always exactly accounts for area's size.
func split(direction Direction, area Rect, constraints []Constraint) []Rect {
	total := area.Width
	if direction == Vertical {
		total = area.Height
	}

	sizes := make([]int, len(constraints))
	remaining := total
	fillIdx := make([]int, 0, len(constraints))
	fillWeightSum := 0

	for i, c := range constraints {
		switch c.Kind {
		case Length:
			sizes[i] = c.Value
			remaining -= c.Value
		case Percentage:
			sizes[i] = total * c.Value / 100
			remaining -= sizes[i]
		case Fill:
			fillIdx = append(fillIdx, i)
			fillWeightSum += c.Value
		}
	}
	if remaining < 0 {
		remaining = 0
	}

	if len(fillIdx) > 0 && fillWeightSum > 0 {
		distributed := 0
		for _, idx := range fillIdx[:len(fillIdx)-1] {
			share := remaining * constraints[idx].Value / fillWeightSum
			sizes[idx] = share
			distributed += share
		}
		sizes[fillIdx[len(fillIdx)-1]] = remaining - distributed
	}

	out := make([]Rect, len(constraints))
	offset := 0
	for i, size := range sizes {
		if size < 0 {
			size = 0
		}
		if direction == Horizontal {
			out[i] = Rect{X: area.X + offset, Y: area.Y, Width: size, Height: area.Height}
		} else {
			out[i] = Rect{X: area.X, Y: area.Y + offset, Width: area.Width, Height: size}
		}
		offset += size
	}
	return out
}
