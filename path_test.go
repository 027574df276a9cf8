package docpos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathConstructors(t *testing.T) {
	root, _ := scenarioDoc(t)

	b := Begin(root)
	assert.Equal(t, 1, b.Depth())
	assert.Equal(t, 0, b.Offset())
	assert.True(t, NewPath(root).Equal(b))

	l := Last(root)
	assert.Equal(t, 2, l.Element())
	assert.Equal(t, 5, l.Offset())

	e := End(root)
	assert.True(t, e.Empty())
	assert.Same(t, root, e.Root())
	assert.Nil(t, e.Node())
	assert.Equal(t, 0, e.LastOffset())

	assert.True(t, Begin(nil).Empty())
	assert.True(t, Last(nil).Empty())
}

func TestPathCloneIsIndependent(t *testing.T) {
	root, _ := scenarioDoc(t)
	p := Begin(root)
	q := p.Clone()
	require.NoError(t, q.SetPos(0, 2, 1))
	assert.Equal(t, 0, p.Element())
	assert.False(t, p.Equal(q))
}

func TestPathSetPos(t *testing.T) {
	root, _ := scenarioDoc(t)
	p := Begin(root)

	require.NoError(t, p.SetPos(0, 2, 5))
	assert.Equal(t, 2, p.Element())
	assert.Equal(t, 5, p.Offset())

	before := p.Clone()
	assert.ErrorIs(t, p.SetPos(0, 2, 6), ErrInvariantViolation)
	assert.ErrorIs(t, p.SetPos(0, 3, 0), ErrInvariantViolation)
	assert.ErrorIs(t, p.SetPos(1, 0, 0), ErrInvariantViolation)
	assert.True(t, before.Equal(p), "rejected setters leave the path unchanged")

	assert.ErrorIs(t, End(root).SetPos(0, 0, 0), ErrEmptyPath)
}

func TestPathSetGridCell(t *testing.T) {
	root, m := scenarioDoc(t)
	p := pathTo(t, root, [3]int{0, 1, 0}, [3]int{0, 0, 0})
	assert.Same(t, m, p.Node())

	require.NoError(t, p.SetGridCell(1, 0))
	assert.Equal(t, 2, p.Cell())
	assert.Equal(t, 1, p.Row())
	assert.Equal(t, 0, p.Col())

	assert.ErrorIs(t, p.SetGridCell(2, 0), ErrInvariantViolation)
	assert.ErrorIs(t, Begin(root).SetGridCell(0, 0), ErrNotMath)
}

func TestPathPushPop(t *testing.T) {
	root, m := scenarioDoc(t)
	p := Begin(root)

	assert.ErrorIs(t, p.Push(m), ErrInvariantViolation, "grid is not after the cursor")

	require.NoError(t, p.SetPos(0, 1, 0))
	require.NoError(t, p.Push(m))
	assert.Equal(t, 2, p.Depth())
	assert.True(t, p.InMath())
	assert.NoError(t, p.Validate())

	assert.True(t, p.Pop())
	assert.Equal(t, 1, p.Depth())
	assert.Equal(t, 0, p.Offset(), "pop leaves the cursor right before the node")

	m.SetActive(false)
	assert.ErrorIs(t, p.Push(m), ErrInvariantViolation, "inactive nodes cannot be entered")

	e := End(root)
	assert.False(t, e.Pop())
	assert.ErrorIs(t, e.Push(m), ErrInvariantViolation)
	require.NoError(t, e.Push(root))
	assert.True(t, e.Equal(Begin(root)))
}

func TestPathValidateAfterRemoval(t *testing.T) {
	root, _ := scenarioDoc(t)
	p := pathTo(t, root, [3]int{0, 1, 0}, [3]int{3, 0, 1})
	require.NoError(t, p.Validate())

	_, err := root.Erase(1, 0, 1)
	require.NoError(t, err)
	assert.ErrorIs(t, p.Validate(), ErrInvariantViolation)
}

func TestPathQueries(t *testing.T) {
	tree := nestedDoc(t)

	p := pathTo(t, tree.root, [3]int{0, 1, 0}, [3]int{0, 0, 0})
	assert.Same(t, tree.box, p.Node())
	assert.True(t, p.InText())
	assert.Same(t, tree.box, p.InnerText())
	assert.Equal(t, 1, p.LastElement())

	p = pathTo(t, tree.root, [3]int{0, 0, 2}, [3]int{0, 0, 1}, [3]int{0, 0, 0})
	assert.Same(t, tree.inner, p.Node())
	assert.Same(t, tree.root, p.InnerText(), "innermost text-like node on the path")
	assert.Same(t, tree.outer, p.At(1).Node())
	assert.Equal(t, 0, p.LastCell())

	q := pathTo(t, tree.root, [3]int{0, 0, 2}, [3]int{0, 0, 1})
	n, ok := q.NextNode()
	assert.True(t, ok)
	assert.Same(t, tree.inner, n)
	it, ok := q.PrevItem()
	assert.True(t, ok)
	assert.Equal(t, "p", it.Text)
	_, ok = q.PrevNode()
	assert.False(t, ok)

	r := pathTo(t, tree.root, [3]int{0, 1, 2})
	n, ok = r.PrevNode()
	assert.True(t, ok)
	assert.Same(t, tree.dead, n, "inactive nodes are still reported")
	it, ok = r.NextItem()
	assert.True(t, ok)
	assert.Equal(t, "!", it.Text)

	_, ok = End(tree.root).NextItem()
	assert.False(t, ok)
}

func TestPathCompareFollowsDocumentOrder(t *testing.T) {
	for name, root := range map[string]Node{
		"scenario": func() Node { r, _ := scenarioDoc(t); return r }(),
		"nested":   nestedDoc(t).root,
	} {
		t.Run(name, func(t *testing.T) {
			positions := collectForward(root)
			for i := 1; i < len(positions); i++ {
				assert.Negative(t, positions[i-1].Compare(positions[i]),
					"%s should sort before %s", positions[i-1], positions[i])
				assert.Positive(t, positions[i].Compare(positions[i-1]))
			}
			last := positions[len(positions)-1]
			assert.Negative(t, last.Compare(End(root)), "the sentinel sorts last")
			assert.Zero(t, End(root).Compare(End(root)))
		})
	}
}

func TestPathBoundary(t *testing.T) {
	root, _ := scenarioDoc(t)
	p := pathTo(t, root, [3]int{0, 0, 2})
	q := p.Clone()

	require.NoError(t, q.SetBoundary(true))
	assert.True(t, q.Boundary())
	assert.False(t, p.Equal(q))
	assert.Positive(t, q.Compare(p))

	q.Forward()
	assert.False(t, q.Boundary(), "traversal clears the flag")

	require.NoError(t, q.SetBoundary(true))
	require.NoError(t, q.SetPos(0, 0, 1))
	assert.False(t, q.Boundary(), "SetPos clears the flag")

	assert.ErrorIs(t, End(root).SetBoundary(true), ErrEmptyPath)
}

func TestPathHasPart(t *testing.T) {
	// two grids with identical content side by side
	m1 := NewMath(1, 1, "a")
	m2 := NewMath(1, 1, "a")
	root := NewText("")
	require.NoError(t, root.InsertItems(0, 0, NodeItem(m1), NodeItem(m2)))

	inM1 := pathTo(t, root, [3]int{0, 0, 0}, [3]int{0, 0, 0})
	inM2 := pathTo(t, root, [3]int{0, 0, 1}, [3]int{0, 0, 0})
	deeper := pathTo(t, root, [3]int{0, 0, 0}, [3]int{0, 0, 1})
	top := Begin(root)

	assert.True(t, inM1.HasPart(inM1))
	assert.True(t, inM1.HasPart(deeper), "same innermost node")
	assert.False(t, inM1.HasPart(inM2), "sibling subtree with the same numbers")
	assert.False(t, inM2.HasPart(inM1))
	assert.True(t, top.HasPart(inM1))
	assert.True(t, top.HasPart(inM2))
	assert.False(t, inM1.HasPart(top), "shallower path is not a part")
	assert.False(t, End(root).HasPart(top))
}

func TestPathString(t *testing.T) {
	root, m := scenarioDoc(t)
	p := pathTo(t, root, [3]int{0, 1, 0}, [3]int{3, 0, 0})
	assert.Equal(t,
		nodeName(root)+"[c0 e1 o0] > "+nodeName(m)+"[c3 (1,1) e0 o0]",
		p.String())
	assert.Equal(t, "<empty "+nodeName(root)+">", End(root).String())
}
