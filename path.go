package docpos

import (
	"cmp"
	"fmt"
	"strings"
)

// Path addresses a position inside a document tree as a stack of slices,
// from the root node down to the innermost node.
//
// A Path is a view: it never owns nodes. After any edit that may have
// removed a node along its route, a live Path must be re-derived (see
// Document.Edit) or discarded.
//
// An empty Path is the sentinel for "before the beginning" or "past the
// end" of the document. It still remembers its root, so Forward and
// Backward re-enter the tree from it.
type Path struct {
	root   Node
	slices []Slice
}

// NewPath returns a path at the first position of root. It is the same as
// Begin.
func NewPath(root Node) *Path {
	return Begin(root)
}

// Begin returns a path at the first position of root.
func Begin(root Node) *Path {
	p := &Path{root: root}
	if root != nil {
		p.slices = []Slice{newSlice(root)}
	}
	return p
}

// End returns the empty sentinel path for root.
func End(root Node) *Path {
	return &Path{root: root}
}

// Last returns a path at the last position of root.
func Last(root Node) *Path {
	p := &Path{root: root}
	if root != nil {
		p.slices = []Slice{lastSlice(root)}
	}
	return p
}

// Clone returns a copy that shares node references but not slices.
func (p *Path) Clone() *Path {
	return &Path{
		root:   p.root,
		slices: append([]Slice(nil), p.slices...),
	}
}

// Root returns the node the path starts from.
func (p *Path) Root() Node { return p.root }

// Empty reports whether the path is the sentinel.
func (p *Path) Empty() bool { return len(p.slices) == 0 }

// Depth returns the number of slices.
func (p *Path) Depth() int { return len(p.slices) }

// At returns the slice at depth i (0 is the root).
func (p *Path) At(i int) Slice { return p.slices[i] }

// Top returns the innermost slice, or the zero Slice for an empty path.
func (p *Path) Top() Slice {
	if len(p.slices) == 0 {
		return Slice{}
	}
	return p.slices[len(p.slices)-1]
}

func (p *Path) top() *Slice {
	return &p.slices[len(p.slices)-1]
}

// Node returns the innermost node, or nil for an empty path.
func (p *Path) Node() Node { return p.Top().node }

// Cell returns the innermost cell index.
func (p *Path) Cell() int { return p.Top().cell }

// Element returns the innermost element index.
func (p *Path) Element() int { return p.Top().element }

// Offset returns the innermost offset.
func (p *Path) Offset() int { return p.Top().offset }

// Boundary returns the innermost boundary flag.
func (p *Path) Boundary() bool { return p.Top().boundary }

// Row returns the grid row of the innermost cell.
func (p *Path) Row() int { return p.Top().Row() }

// Col returns the grid column of the innermost cell.
func (p *Path) Col() int { return p.Top().Col() }

// LastCell returns the highest cell index of the innermost node.
func (p *Path) LastCell() int {
	if p.Empty() {
		return 0
	}
	return p.Top().LastCell()
}

// LastElement returns the highest element index of the innermost cell.
func (p *Path) LastElement() int {
	if p.Empty() {
		return 0
	}
	return p.Top().LastElement()
}

// LastOffset returns the highest offset of the innermost element.
func (p *Path) LastOffset() int {
	if p.Empty() {
		return 0
	}
	return p.Top().LastOffset()
}

// InMath reports whether the innermost node is math-like.
func (p *Path) InMath() bool {
	return !p.Empty() && p.Node().MathLike()
}

// InText reports whether the innermost node is text-like.
func (p *Path) InText() bool {
	return !p.Empty() && p.Node().TextLike()
}

// InnerText returns the innermost text-like node on the path, or nil.
func (p *Path) InnerText() Node {
	for i := len(p.slices) - 1; i >= 0; i-- {
		if n := p.slices[i].node; n.TextLike() {
			return n
		}
	}
	return nil
}

// NextItem returns the item right after the cursor.
func (p *Path) NextItem() (Item, bool) {
	if p.Empty() {
		return Item{}, false
	}
	s := p.Top()
	return s.node.At(s.cell, s.element, s.offset)
}

// PrevItem returns the item right before the cursor.
func (p *Path) PrevItem() (Item, bool) {
	if p.Empty() || p.Offset() == 0 {
		return Item{}, false
	}
	s := p.Top()
	return s.node.At(s.cell, s.element, s.offset-1)
}

// NextNode returns the contained node right after the cursor, active or not.
func (p *Path) NextNode() (Node, bool) {
	it, ok := p.NextItem()
	if !ok || it.Node == nil {
		return nil, false
	}
	return it.Node, true
}

// PrevNode returns the contained node right before the cursor, active or not.
func (p *Path) PrevNode() (Node, bool) {
	it, ok := p.PrevItem()
	if !ok || it.Node == nil {
		return nil, false
	}
	return it.Node, true
}

// SetPos moves the innermost slice to (cell, element, offset). Indices the
// node does not have are rejected with ErrInvariantViolation and the path
// is left unchanged.
func (p *Path) SetPos(cell, element, offset int) error {
	if p.Empty() {
		return ErrEmptyPath
	}
	s := p.Top()
	s.cell, s.element, s.offset, s.boundary = cell, element, offset, false
	if err := s.validate(); err != nil {
		return err
	}
	*p.top() = s
	return nil
}

// SetGridCell moves the innermost slice to the start of (row, col) of the
// current math node.
func (p *Path) SetGridCell(row, col int) error {
	if !p.InMath() {
		return ErrNotMath
	}
	n := p.Node()
	if row < 0 || row >= n.Rows() || col < 0 || col >= n.Cols() {
		return fmt.Errorf("%s: cell (%d,%d) outside %dx%d: %w",
			nodeName(n), row, col, n.Rows(), n.Cols(), ErrInvariantViolation)
	}
	return p.SetPos(row*n.Cols()+col, 0, 0)
}

// SetBoundary sets the innermost boundary flag.
func (p *Path) SetBoundary(b bool) error {
	if p.Empty() {
		return ErrEmptyPath
	}
	p.top().boundary = b
	return nil
}

// Push descends into n, which must be the active node right after the
// cursor (or the root when the path is empty).
func (p *Path) Push(n Node) error {
	if p.Empty() {
		if n != p.root {
			return fmt.Errorf("push %s onto empty path rooted at %s: %w",
				nodeName(n), nodeName(p.root), ErrInvariantViolation)
		}
		p.slices = append(p.slices, newSlice(n))
		return nil
	}
	next, ok := p.Top().nextNode()
	if !ok || next != n {
		return fmt.Errorf("push %s: not the active node after %s: %w",
			nodeName(n), p.Top(), ErrInvariantViolation)
	}
	p.slices = append(p.slices, newSlice(n))
	return nil
}

// Pop leaves the innermost node, placing the cursor right before it in
// its parent. It reports whether a slice was removed.
func (p *Path) Pop() bool {
	if p.Empty() {
		return false
	}
	p.slices = p.slices[:len(p.slices)-1]
	return true
}

// Validate checks every slice against its node and checks that each node
// is reachable from the slice above it.
func (p *Path) Validate() error {
	for i, s := range p.slices {
		if err := s.validate(); err != nil {
			return fmt.Errorf("depth %d: %w", i, err)
		}
		if i == 0 {
			if s.node != p.root {
				return fmt.Errorf("depth 0 is %s, root is %s: %w",
					nodeName(s.node), nodeName(p.root), ErrInvariantViolation)
			}
			continue
		}
		if next, ok := p.slices[i-1].nextNode(); !ok || next != s.node {
			return fmt.Errorf("depth %d: %s not reachable from %s: %w",
				i, nodeName(s.node), p.slices[i-1], ErrInvariantViolation)
		}
	}
	return nil
}

// Equal reports whether both paths address the same position: the same
// nodes with the same indices and boundary flags at every depth.
func (p *Path) Equal(o *Path) bool {
	if len(p.slices) != len(o.slices) {
		return false
	}
	for i := range p.slices {
		if !p.slices[i].Equal(o.slices[i]) {
			return false
		}
	}
	return true
}

// Compare orders two paths into the same tree in document order. A path
// sitting right before a contained node sorts before any path inside it.
// The empty sentinel sorts after everything.
func (p *Path) Compare(o *Path) int {
	switch {
	case p.Empty() && o.Empty():
		return 0
	case p.Empty():
		return 1
	case o.Empty():
		return -1
	}
	n := min(len(p.slices), len(o.slices))
	for i := 0; i < n; i++ {
		if c := p.slices[i].compare(o.slices[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(p.slices), len(o.slices))
}

// HasPart reports whether o addresses a position inside (or equal to) the
// subtree of p's innermost node. The check is by node identity at p's
// depth, so two paths into sibling subtrees never match even when their
// indices coincide.
func (p *Path) HasPart(o *Path) bool {
	d := len(p.slices)
	if d == 0 || len(o.slices) < d {
		return false
	}
	return o.slices[d-1].node == p.slices[d-1].node
}

// String dumps the slice sequence for diagnostics.
func (p *Path) String() string {
	if p.Empty() {
		return "<empty " + nodeName(p.root) + ">"
	}
	parts := make([]string, len(p.slices))
	for i, s := range p.slices {
		parts[i] = s.String()
	}
	return strings.Join(parts, " > ")
}
