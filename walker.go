package docpos

import "iter"

// NodeWalker visits every contained node under a root in document order,
// skipping the text between them. Inactive nodes are reported but not
// entered; active nodes are reported before their own contents.
type NodeWalker struct {
	path *Path
}

// NewNodeWalker returns a walker positioned at the first contained node
// under root. Done reports true right away if there is none.
func NewNodeWalker(root Node) *NodeWalker {
	w := &NodeWalker{path: End(root)}
	w.path.ForwardNode()
	return w
}

// Done reports whether the walker has passed the last node.
func (w *NodeWalker) Done() bool {
	return w.path.Empty()
}

// Next advances to the next contained node and reports whether there is one.
func (w *NodeWalker) Next() bool {
	if w.Done() {
		return false
	}
	return w.path.ForwardNode()
}

// Node returns the contained node at the walker's position, or nil once
// the walker is done.
func (w *NodeWalker) Node() Node {
	n, _ := w.path.NextNode()
	return n
}

// Path returns a copy of the position right before the current node.
func (w *NodeWalker) Path() *Path {
	return w.path.Clone()
}

// Equal reports whether two walkers stand at the same position.
func (w *NodeWalker) Equal(o *NodeWalker) bool {
	return w.path.Equal(o.path)
}

// Nodes returns an iterator over every contained node under root together
// with the path right before it.
func Nodes(root Node) iter.Seq2[*Path, Node] {
	return func(yield func(*Path, Node) bool) {
		for w := NewNodeWalker(root); !w.Done(); w.Next() {
			if !yield(w.Path(), w.Node()) {
				return
			}
		}
	}
}
