package docpos

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// Slice is one level of a Path: a node, a cell inside it, an element
// inside that cell and an offset inside that element.
//
// The node reference is borrowed. The node is owned by its parent in the
// document tree and a Slice is only meaningful while that tree is unchanged.
type Slice struct {
	node     Node
	cell     int
	element  int
	offset   int
	boundary bool
}

// newSlice returns a slice at the first position of n.
func newSlice(n Node) Slice {
	return Slice{node: n}
}

// lastSlice returns a slice at the last position of n.
func lastSlice(n Node) Slice {
	s := Slice{node: n, cell: n.CellCount() - 1}
	s.element = n.LastElement(s.cell)
	s.offset = n.LastOffset(s.cell, s.element)
	return s
}

// Node returns the node this slice addresses.
func (s Slice) Node() Node { return s.node }

// Cell returns the cell index (row-major for grids).
func (s Slice) Cell() int { return s.cell }

// Element returns the paragraph index, always 0 inside math cells.
func (s Slice) Element() int { return s.element }

// Offset returns the offset inside the element.
func (s Slice) Offset() int { return s.offset }

// Boundary reports whether the slice sits at the end of the previous run
// rather than at the start of the next one.
func (s Slice) Boundary() bool { return s.boundary }

// Row returns the grid row of the slice's cell.
func (s Slice) Row() int {
	if s.node == nil {
		return 0
	}
	return s.cell / s.node.Cols()
}

// Col returns the grid column of the slice's cell.
func (s Slice) Col() int {
	if s.node == nil {
		return 0
	}
	return s.cell % s.node.Cols()
}

// LastCell returns the highest cell index of the node.
func (s Slice) LastCell() int { return s.node.CellCount() - 1 }

// LastElement returns the highest element index of the current cell.
func (s Slice) LastElement() int { return s.node.LastElement(s.cell) }

// LastOffset returns the highest offset of the current element.
func (s Slice) LastOffset() int { return s.node.LastOffset(s.cell, s.element) }

// AtEnd reports whether the offset is the end of its element.
func (s Slice) AtEnd() bool { return s.offset == s.LastOffset() }

// nextNode returns the active node right after the offset, if any.
func (s Slice) nextNode() (Node, bool) {
	if s.offset >= s.LastOffset() {
		return nil, false
	}
	return s.node.ContainedNodeAt(s.cell, s.element, s.offset)
}

// Equal compares node identity, all indices and the boundary flag.
func (s Slice) Equal(o Slice) bool {
	return s.node == o.node &&
		s.cell == o.cell &&
		s.element == o.element &&
		s.offset == o.offset &&
		s.boundary == o.boundary
}

// compare orders slices of the same node by cell, element, offset and
// finally boundary.
func (s Slice) compare(o Slice) int {
	if c := cmp.Compare(s.cell, o.cell); c != 0 {
		return c
	}
	if c := cmp.Compare(s.element, o.element); c != 0 {
		return c
	}
	if c := cmp.Compare(s.offset, o.offset); c != 0 {
		return c
	}
	switch {
	case s.boundary == o.boundary:
		return 0
	case s.boundary:
		return 1
	default:
		return -1
	}
}

// validate checks the slice's indices against its node.
func (s Slice) validate() error {
	if s.node == nil {
		return fmt.Errorf("slice has no node: %w", ErrInvariantViolation)
	}
	if s.cell < 0 || s.cell >= s.node.CellCount() {
		return fmt.Errorf("%s: cell %d of %d: %w", nodeName(s.node), s.cell, s.node.CellCount(), ErrInvariantViolation)
	}
	if last := s.node.LastElement(s.cell); s.element < 0 || s.element > last {
		return fmt.Errorf("%s: element %d > %d: %w", nodeName(s.node), s.element, last, ErrInvariantViolation)
	}
	if last := s.node.LastOffset(s.cell, s.element); s.offset < 0 || s.offset > last {
		return fmt.Errorf("%s: offset %d > %d: %w", nodeName(s.node), s.offset, last, ErrInvariantViolation)
	}
	return nil
}

// String returns a diagnostic form such as "math#4[c3 (1,1) e0 o0]".
func (s Slice) String() string {
	var sb strings.Builder
	sb.WriteString(nodeName(s.node))
	sb.WriteString("[c")
	sb.WriteString(strconv.Itoa(s.cell))
	if s.node != nil && s.node.CellCount() > 1 {
		fmt.Fprintf(&sb, " (%d,%d)", s.Row(), s.Col())
	}
	sb.WriteString(" e")
	sb.WriteString(strconv.Itoa(s.element))
	sb.WriteString(" o")
	sb.WriteString(strconv.Itoa(s.offset))
	if s.boundary {
		sb.WriteString(" b")
	}
	sb.WriteByte(']')
	return sb.String()
}
