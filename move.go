package docpos

// MoveUnit selects the granularity of a Move.
type MoveUnit int

const (
	// ByPos moves one position, entering and leaving nodes.
	ByPos MoveUnit = iota

	// ByChar moves one character, skipping element end positions.
	ByChar

	// ByParagraph moves to a paragraph start.
	ByParagraph

	// ByCell moves to the next cell of the current node (forward only).
	ByCell

	// ByNode moves to the next or previous contained node.
	ByNode

	// ToEdge moves to the first or last position of the document.
	ToEdge
)

// MoveDir is the direction of a Move.
type MoveDir int

const (
	// DirForward moves toward the end of the document.
	DirForward MoveDir = iota
	// DirBackward moves toward the start of the document.
	DirBackward
)

// Move is a cursor movement request.
type Move struct {
	Unit MoveUnit
	Dir  MoveDir
}

// Move applies m to the path. Unlike the raw traversal methods it never
// leaves the path empty: a move that would run off the document returns
// ErrAtDocumentStart or ErrAtDocumentEnd and the path does not change.
func (p *Path) Move(m Move) error {
	if p.Empty() {
		return ErrEmptyPath
	}

	if m.Unit == ToEdge {
		var edge *Path
		if m.Dir == DirForward {
			edge = Last(p.root)
		} else {
			edge = Begin(p.root)
		}
		p.slices = edge.slices
		return nil
	}

	next := p.Clone()
	var ok bool
	switch m.Dir {
	case DirForward:
		switch m.Unit {
		case ByPos:
			ok = next.Forward()
		case ByChar:
			ok = next.ForwardChar()
		case ByParagraph:
			ok = next.ForwardPar()
		case ByCell:
			ok = next.ForwardCell()
		case ByNode:
			ok = next.ForwardNode()
		default:
			return ErrUnsupportedMove
		}
		if !ok {
			return ErrAtDocumentEnd
		}
	case DirBackward:
		switch m.Unit {
		case ByPos:
			ok = next.Backward()
		case ByChar:
			ok = next.BackwardChar()
		case ByParagraph:
			ok = next.BackwardPar()
		case ByNode:
			ok = next.BackwardNode()
		default:
			return ErrUnsupportedMove
		}
		if !ok {
			return ErrAtDocumentStart
		}
	default:
		return ErrUnsupportedMove
	}

	p.slices = next.slices
	return nil
}
