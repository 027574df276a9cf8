package docpos

import "fmt"

// MathNode is a math grid: Rows()*Cols() cells addressed in row-major
// order. Each cell is a single short sequence of items, so its only
// element index is 0.
type MathNode struct {
	id       NodeID
	rows     int
	cols     int
	cells    [][]Item
	inactive bool
}

// NewMath creates a rows x cols grid. cells are given in row-major order;
// missing cells are left empty and extra ones are ignored.
func NewMath(rows, cols int, cells ...string) *MathNode {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	m := &MathNode{
		id:    nextNodeID(),
		rows:  rows,
		cols:  cols,
		cells: make([][]Item, rows*cols),
	}
	for i := 0; i < len(cells) && i < len(m.cells); i++ {
		m.cells[i] = TextItems(cells[i])
	}
	return m
}

func (m *MathNode) ID() NodeID { return m.id }

func (m *MathNode) CellCount() int { return len(m.cells) }

func (m *MathNode) Rows() int { return m.rows }

func (m *MathNode) Cols() int { return m.cols }

func (m *MathNode) LastElement(cell int) int { return 0 }

func (m *MathNode) LastOffset(cell, element int) int {
	if cell < 0 || cell >= len(m.cells) {
		return 0
	}
	return len(m.cells[cell])
}

func (m *MathNode) At(cell, element, offset int) (Item, bool) {
	if cell < 0 || cell >= len(m.cells) || element != 0 {
		return Item{}, false
	}
	if offset < 0 || offset >= len(m.cells[cell]) {
		return Item{}, false
	}
	return m.cells[cell][offset], true
}

func (m *MathNode) ContainedNodeAt(cell, element, offset int) (Node, bool) {
	if cell < 0 || cell >= len(m.cells) || element != 0 {
		return nil, false
	}
	return containedAt(m.cells[cell], offset)
}

func (m *MathNode) Active() bool { return !m.inactive }

// SetActive controls whether traversal may enter this node.
func (m *MathNode) SetActive(active bool) {
	m.inactive = !active
}

func (m *MathNode) MathLike() bool { return true }

func (m *MathNode) TextLike() bool { return false }

// Index returns the cell index of (row, col).
func (m *MathNode) Index(row, col int) int {
	return row*m.cols + col
}

// RowCol returns the row and column of a cell index.
func (m *MathNode) RowCol(cell int) (row, col int) {
	return cell / m.cols, cell % m.cols
}

// Cell returns the items of a cell. The slice must be treated as
// read-only.
func (m *MathNode) Cell(cell int) []Item {
	if cell < 0 || cell >= len(m.cells) {
		return nil
	}
	return m.cells[cell]
}

// SetCell replaces the content of a cell.
func (m *MathNode) SetCell(cell int, items ...Item) error {
	if cell < 0 || cell >= len(m.cells) {
		return fmt.Errorf("set cell %d of %d: %w", cell, len(m.cells), ErrInvalidPosition)
	}
	m.cells[cell] = items
	return nil
}

// InsertInCell inserts items into a cell before offset.
func (m *MathNode) InsertInCell(cell, offset int, items ...Item) error {
	if cell < 0 || cell >= len(m.cells) || offset < 0 || offset > len(m.cells[cell]) {
		return fmt.Errorf("insert in cell %d offset %d: %w", cell, offset, ErrInvalidPosition)
	}
	m.cells[cell] = insertItems(m.cells[cell], offset, items)
	return nil
}

// EraseInCell removes items [from, to) from a cell and returns them.
func (m *MathNode) EraseInCell(cell, from, to int) ([]Item, error) {
	if cell < 0 || cell >= len(m.cells) || from < 0 || from > to || to > len(m.cells[cell]) {
		return nil, fmt.Errorf("erase cell %d [%d,%d): %w", cell, from, to, ErrInvalidPosition)
	}
	var removed []Item
	m.cells[cell], removed = eraseItems(m.cells[cell], from, to)
	return removed, nil
}

// AddRow inserts an empty row before row at. at == Rows() appends.
func (m *MathNode) AddRow(at int) error {
	if at < 0 || at > m.rows {
		return fmt.Errorf("add row %d of %d: %w", at, m.rows, ErrInvalidPosition)
	}
	start := at * m.cols
	cells := make([][]Item, 0, len(m.cells)+m.cols)
	cells = append(cells, m.cells[:start]...)
	cells = append(cells, make([][]Item, m.cols)...)
	cells = append(cells, m.cells[start:]...)
	m.cells = cells
	m.rows++
	return nil
}

// RemoveRow deletes row at. The last remaining row cannot be removed.
func (m *MathNode) RemoveRow(at int) error {
	if at < 0 || at >= m.rows || m.rows == 1 {
		return fmt.Errorf("remove row %d of %d: %w", at, m.rows, ErrInvalidPosition)
	}
	start := at * m.cols
	m.cells = append(m.cells[:start], m.cells[start+m.cols:]...)
	m.rows--
	return nil
}
