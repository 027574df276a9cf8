package docpos

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// scenarioDoc builds three paragraphs where the middle one holds a 2x2
// grid followed by "x":
//
//	first
//	[a b / c d] x
//	third
func scenarioDoc(t *testing.T) (*TextNode, *MathNode) {
	t.Helper()
	m := NewMath(2, 2, "a", "b", "c", "d")
	root := NewText("first", "", "third")
	require.NoError(t, root.InsertNode(1, 0, m))
	require.NoError(t, root.Insert(1, 1, "x"))
	return root, m
}

// nestedTree holds a document with nodes at several depths:
//
//	a b [p [z] | q] c
//	{in / out} [k]! (the k grid is inactive)
type nestedTree struct {
	root  *TextNode
	outer *MathNode
	inner *MathNode
	box   *TextNode
	dead  *MathNode
}

func nestedDoc(t *testing.T) nestedTree {
	t.Helper()
	inner := NewMath(1, 1, "z")
	outer := NewMath(1, 2, "p", "q")
	require.NoError(t, outer.InsertInCell(0, 1, NodeItem(inner)))

	box := NewText("in", "out")
	dead := NewMath(1, 1, "k")
	dead.SetActive(false)

	root := NewText("abc", "!")
	require.NoError(t, root.InsertNode(0, 2, outer))
	require.NoError(t, root.InsertItems(1, 0, NodeItem(box), NodeItem(dead)))

	return nestedTree{root: root, outer: outer, inner: inner, box: box, dead: dead}
}

// collectForward returns a copy of every position Forward visits from the
// first position of root.
func collectForward(root Node) []*Path {
	var out []*Path
	for p := Begin(root); !p.Empty(); p.Forward() {
		out = append(out, p.Clone())
	}
	return out
}

// pathTo builds a path by setting the root position and then entering
// nodes, each entry giving (cell, element, offset) for one more level.
func pathTo(t *testing.T, root Node, levels ...[3]int) *Path {
	t.Helper()
	p := Begin(root)
	for i, l := range levels {
		if i > 0 {
			n, ok := p.Top().nextNode()
			require.True(t, ok, "no active node after %s", p)
			require.NoError(t, p.Push(n))
		}
		require.NoError(t, p.SetPos(l[0], l[1], l[2]))
	}
	return p
}
