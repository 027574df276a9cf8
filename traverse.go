package docpos

// Forward advances the path by one position. If an active node starts at
// the cursor, the path enters it. Otherwise it moves to the next offset,
// element or cell, and at the end of a node it leaves the node and steps
// past it in the parent.
//
// It returns false when the path has run off the end of the document and
// is now empty. An empty path is re-entered at the first position of its
// root.
func (p *Path) Forward() bool {
	if p.Empty() {
		if p.root == nil {
			return false
		}
		p.slices = append(p.slices, newSlice(p.root))
		return true
	}

	top := p.top()
	top.boundary = false

	if n, ok := top.nextNode(); ok {
		p.slices = append(p.slices, newSlice(n))
		return true
	}

	switch {
	case top.offset < top.LastOffset():
		top.offset++
	case top.element < top.LastElement():
		top.element++
		top.offset = 0
	case top.cell < top.LastCell():
		top.cell++
		top.element = 0
		top.offset = 0
	default:
		// leave the node and jump over it as a whole
		p.slices = p.slices[:len(p.slices)-1]
		if p.Empty() {
			return false
		}
		top = p.top()
		top.boundary = false
		top.offset++
	}
	return true
}

// Backward moves the path back by one position. Stepping back over an
// active node enters it at its last position. At the start of a node the
// path leaves it and ends up right before it in the parent.
//
// It returns false when the path has run off the start of the document.
// An empty path is re-entered at the last position of its root.
func (p *Path) Backward() bool {
	if p.Empty() {
		if p.root == nil {
			return false
		}
		p.slices = append(p.slices, lastSlice(p.root))
		return true
	}

	top := p.top()
	top.boundary = false

	switch {
	case top.offset > 0:
		top.offset--
		if n, ok := top.node.ContainedNodeAt(top.cell, top.element, top.offset); ok {
			p.slices = append(p.slices, lastSlice(n))
		}
	case top.element > 0:
		top.element--
		top.offset = top.LastOffset()
	case top.cell > 0:
		top.cell--
		top.element = top.LastElement()
		top.offset = top.LastOffset()
	default:
		p.slices = p.slices[:len(p.slices)-1]
		if p.Empty() {
			return false
		}
		p.top().boundary = false
	}
	return true
}

// ForwardChar advances to the next position that is not the end of an
// element, so that each call crosses exactly one character or enters or
// leaves one node.
func (p *Path) ForwardChar() bool {
	p.Forward()
	for !p.Empty() && p.Top().AtEnd() {
		p.Forward()
	}
	return !p.Empty()
}

// BackwardChar is the mirror of ForwardChar.
func (p *Path) BackwardChar() bool {
	p.Backward()
	for !p.Empty() && p.Top().AtEnd() {
		p.Backward()
	}
	return !p.Empty()
}

// ForwardPar advances to the start of the next paragraph of any text-like
// node. Positions inside math nodes are never stops.
func (p *Path) ForwardPar() bool {
	p.Forward()
	for !p.Empty() && !p.atParagraphStart() {
		if p.InText() {
			p.skipToNextNode()
		}
		p.Forward()
	}
	return !p.Empty()
}

// BackwardPar moves back to the start of the current paragraph, or of the
// previous one when already at a paragraph start.
func (p *Path) BackwardPar() bool {
	p.Backward()
	for !p.Empty() && !p.atParagraphStart() {
		p.Backward()
	}
	return !p.Empty()
}

// ForwardCell advances until the path is in another cell of the node it
// started in, or has left that node.
func (p *Path) ForwardCell() bool {
	if p.Empty() {
		return p.Forward()
	}
	depth := p.Depth()
	cell := p.Cell()
	for p.Forward() {
		if p.Depth() < depth {
			return true
		}
		if p.Depth() == depth && p.Cell() != cell {
			return true
		}
	}
	return false
}

// ForwardNode advances until a contained node, active or not, starts at
// the cursor.
func (p *Path) ForwardNode() bool {
	p.Forward()
	for !p.Empty() && !p.atNode() {
		if p.InText() {
			p.skipToNextItemNode()
		}
		if p.atNode() {
			break
		}
		p.Forward()
	}
	return !p.Empty()
}

// BackwardNode moves back until a contained node starts at the cursor.
func (p *Path) BackwardNode() bool {
	p.Backward()
	for !p.Empty() && !p.atNode() {
		p.Backward()
	}
	return !p.Empty()
}

func (p *Path) atParagraphStart() bool {
	return p.InText() && p.Offset() == 0
}

func (p *Path) atNode() bool {
	_, ok := p.NextNode()
	return ok
}

// skipToNextNode moves the innermost offset forward to the next active
// node or the end of the element, whichever comes first.
func (p *Path) skipToNextNode() {
	top := p.top()
	last := top.LastOffset()
	for top.offset < last {
		if _, ok := top.nextNode(); ok {
			return
		}
		top.offset++
	}
}

// skipToNextItemNode is skipToNextNode for nodes of any activity.
func (p *Path) skipToNextItemNode() {
	top := p.top()
	last := top.LastOffset()
	for top.offset < last {
		if it, _ := top.node.At(top.cell, top.element, top.offset); it.Node != nil {
			return
		}
		top.offset++
	}
}
