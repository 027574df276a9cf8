package docpos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMove(t *testing.T) {
	root, m := scenarioDoc(t)

	tests := []struct {
		name  string
		start *Path
		move  Move
		check func(t *testing.T, p *Path)
	}{
		{
			name:  "pos forward enters grid",
			start: pathTo(t, root, [3]int{0, 1, 0}),
			move:  Move{ByPos, DirForward},
			check: func(t *testing.T, p *Path) { assert.Same(t, m, p.Node()) },
		},
		{
			name:  "char backward",
			start: pathTo(t, root, [3]int{0, 2, 0}),
			move:  Move{ByChar, DirBackward},
			check: func(t *testing.T, p *Path) {
				assert.Equal(t, 1, p.Element())
				assert.Equal(t, 1, p.Offset())
			},
		},
		{
			name:  "paragraph forward",
			start: Begin(root),
			move:  Move{ByParagraph, DirForward},
			check: func(t *testing.T, p *Path) { assert.Equal(t, 1, p.Element()) },
		},
		{
			name:  "cell forward",
			start: pathTo(t, root, [3]int{0, 1, 0}, [3]int{1, 0, 0}),
			move:  Move{ByCell, DirForward},
			check: func(t *testing.T, p *Path) { assert.Equal(t, 2, p.Cell()) },
		},
		{
			name:  "node forward",
			start: Begin(root),
			move:  Move{ByNode, DirForward},
			check: func(t *testing.T, p *Path) {
				n, _ := p.NextNode()
				assert.Same(t, m, n)
			},
		},
		{
			name:  "node backward",
			start: Last(root),
			move:  Move{ByNode, DirBackward},
			check: func(t *testing.T, p *Path) {
				n, _ := p.NextNode()
				assert.Same(t, m, n)
			},
		},
		{
			name:  "edge forward",
			start: Begin(root),
			move:  Move{ToEdge, DirForward},
			check: func(t *testing.T, p *Path) { assert.True(t, p.Equal(Last(root))) },
		},
		{
			name:  "edge backward from inside the grid",
			start: pathTo(t, root, [3]int{0, 1, 0}, [3]int{3, 0, 1}),
			move:  Move{ToEdge, DirBackward},
			check: func(t *testing.T, p *Path) { assert.True(t, p.Equal(Begin(root))) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.start.Move(tt.move))
			require.NoError(t, tt.start.Validate())
			tt.check(t, tt.start)
		})
	}
}

func TestMoveAtDocumentEdges(t *testing.T) {
	root, _ := scenarioDoc(t)

	p := Last(root)
	for _, unit := range []MoveUnit{ByPos, ByChar, ByParagraph, ByCell, ByNode} {
		assert.ErrorIs(t, p.Move(Move{unit, DirForward}), ErrAtDocumentEnd)
	}
	assert.True(t, p.Equal(Last(root)), "failed moves leave the path alone")

	p = Begin(root)
	for _, unit := range []MoveUnit{ByPos, ByChar, ByParagraph, ByNode} {
		assert.ErrorIs(t, p.Move(Move{unit, DirBackward}), ErrAtDocumentStart)
	}
	assert.True(t, p.Equal(Begin(root)))
}

func TestMoveErrors(t *testing.T) {
	root, _ := scenarioDoc(t)

	assert.ErrorIs(t, End(root).Move(Move{ByPos, DirForward}), ErrEmptyPath)
	assert.ErrorIs(t, Begin(root).Move(Move{ByCell, DirBackward}), ErrUnsupportedMove)
	assert.ErrorIs(t, Begin(root).Move(Move{MoveUnit(42), DirForward}), ErrUnsupportedMove)
	assert.ErrorIs(t, Begin(root).Move(Move{ByPos, MoveDir(7)}), ErrUnsupportedMove)
}
