package docpos

import (
	"strconv"
	"sync/atomic"
)

// NodeID uniquely identifies a node within the process.
type NodeID uint64

// nodeIDCounter is a global counter for assigning node identifiers.
var nodeIDCounter uint64

// nextNodeID returns the next unique node identifier.
func nextNodeID() NodeID {
	return NodeID(atomic.AddUint64(&nodeIDCounter, 1))
}

// Node is the capability every addressable container in a document tree
// provides. A Path walks any tree built from Nodes without knowing the
// concrete types involved.
//
// Text-like nodes have a single cell holding many paragraphs (elements).
// Math-like nodes have Rows()*Cols() cells, each holding exactly one element.
type Node interface {
	// ID returns the node's identity, used in diagnostics only.
	ID() NodeID

	// CellCount returns the number of addressable cells.
	CellCount() int

	// Rows and Cols describe the grid shape. Non-grid nodes report 1x1.
	Rows() int
	Cols() int

	// LastElement returns the highest valid element index in cell.
	LastElement(cell int) int

	// LastOffset returns the highest valid offset in the given element.
	// An offset equal to LastOffset addresses the end of the element.
	LastOffset(cell, element int) int

	// At returns the item that starts at offset. ok is false at the end
	// of the element.
	At(cell, element, offset int) (item Item, ok bool)

	// ContainedNodeAt returns the child node at offset if there is one
	// and it can be entered.
	ContainedNodeAt(cell, element, offset int) (Node, bool)

	// Active reports whether traversal may enter this node.
	Active() bool

	// MathLike and TextLike select the traversal rules for this level.
	MathLike() bool
	TextLike() bool
}

// Item is one addressable unit inside an element: either a grapheme
// cluster of text or a contained node.
type Item struct {
	Text string
	Node Node
}

// IsNode returns true if the item is a contained node.
func (it Item) IsNode() bool {
	return it.Node != nil
}

// String returns the item's text, or a placeholder for a node.
func (it Item) String() string {
	if it.Node != nil {
		return "[" + nodeName(it.Node) + "]"
	}
	return it.Text
}

// NodeItem wraps a node so it can be inserted as an item.
func NodeItem(n Node) Item {
	return Item{Node: n}
}

// containedAt is the shared implementation of ContainedNodeAt over a
// sequence of items.
func containedAt(items []Item, offset int) (Node, bool) {
	if offset < 0 || offset >= len(items) {
		return nil, false
	}
	n := items[offset].Node
	if n == nil || !n.Active() {
		return nil, false
	}
	return n, true
}

// nodeName returns a short diagnostic name such as "text#3" or "math#7".
func nodeName(n Node) string {
	if n == nil {
		return "<nil>"
	}
	kind := "node"
	switch {
	case n.MathLike():
		kind = "math"
	case n.TextLike():
		kind = "text"
	}
	return kind + "#" + strconv.FormatUint(uint64(n.ID()), 10)
}

// CountPositions returns the number of positions a Path visits when it
// walks the whole subtree rooted at n, including positions inside active
// contained nodes.
func CountPositions(n Node) int {
	total := 0
	for cell := 0; cell < n.CellCount(); cell++ {
		for el := 0; el <= n.LastElement(cell); el++ {
			last := n.LastOffset(cell, el)
			total += last + 1
			for off := 0; off < last; off++ {
				if child, ok := n.ContainedNodeAt(cell, el, off); ok {
					total += CountPositions(child)
				}
			}
		}
	}
	return total
}
