package docpos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeWalker(t *testing.T) {
	tree := nestedDoc(t)
	w := NewNodeWalker(tree.root)

	var got []Node
	var stable []string
	for ; !w.Done(); w.Next() {
		got = append(got, w.Node())
		stable = append(stable, w.Path().Stable().String())
	}
	assert.Equal(t, []Node{tree.outer, tree.inner, tree.box, tree.dead}, got)
	assert.Equal(t, []string{"0.0.2", "0.0.2/0.0.1", "0.1.0", "0.1.1"}, stable)

	assert.False(t, w.Next())
	assert.Nil(t, w.Node())
}

func TestNodeWalkerNoNodes(t *testing.T) {
	w := NewNodeWalker(NewText("plain", "text"))
	assert.True(t, w.Done())
	assert.False(t, w.Next())
}

func TestNodeWalkerPathIsACopy(t *testing.T) {
	root, m := scenarioDoc(t)
	w := NewNodeWalker(root)
	require.False(t, w.Done())

	p := w.Path()
	p.Forward()
	assert.Same(t, m, w.Node(), "moving the copy does not move the walker")
}

func TestNodeWalkerEqual(t *testing.T) {
	tree := nestedDoc(t)
	a := NewNodeWalker(tree.root)
	b := NewNodeWalker(tree.root)
	assert.True(t, a.Equal(b))

	b.Next()
	assert.False(t, a.Equal(b))
	a.Next()
	assert.True(t, a.Equal(b))
}

func TestNodesIterator(t *testing.T) {
	tree := nestedDoc(t)

	var got []Node
	for p, n := range Nodes(tree.root) {
		next, ok := p.NextNode()
		require.True(t, ok)
		assert.Same(t, n, next)
		got = append(got, n)
	}
	assert.Len(t, got, 4)

	count := 0
	for range Nodes(tree.root) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}
