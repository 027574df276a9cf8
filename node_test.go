package docpos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeIDsAreUnique(t *testing.T) {
	seen := make(map[NodeID]bool)
	for i := 0; i < 100; i++ {
		var n Node = NewText()
		if i%2 == 1 {
			n = NewMath(1, 1)
		}
		assert.False(t, seen[n.ID()], "duplicate id %d", n.ID())
		seen[n.ID()] = true
	}
}

func TestCountPositions(t *testing.T) {
	root, m := scenarioDoc(t)
	// 6 in "first", 3 around the grid plus 2 per cell, 6 in "third"
	assert.Equal(t, 23, CountPositions(root))
	assert.Equal(t, 8, CountPositions(m))

	m.SetActive(false)
	assert.Equal(t, 15, CountPositions(root), "inactive nodes contribute nothing")

	tree := nestedDoc(t)
	assert.Equal(t, 23, CountPositions(tree.root))
	assert.Equal(t, 1, CountPositions(NewText()))
}

func TestItemString(t *testing.T) {
	m := NewMath(1, 1)
	assert.Equal(t, "x", Item{Text: "x"}.String())
	assert.Equal(t, "["+nodeName(m)+"]", NodeItem(m).String())
	assert.True(t, NodeItem(m).IsNode())
	assert.False(t, Item{Text: "x"}.IsNode())
}

func TestNodeName(t *testing.T) {
	tx := NewText()
	m := NewMath(1, 1)
	assert.Regexp(t, `^text#\d+$`, nodeName(tx))
	assert.Regexp(t, `^math#\d+$`, nodeName(m))
	assert.Equal(t, "<nil>", nodeName(nil))
}

func TestContainedNodeAtSkipsInactive(t *testing.T) {
	root, m := scenarioDoc(t)

	n, ok := root.ContainedNodeAt(0, 1, 0)
	assert.True(t, ok)
	assert.Same(t, m, n)

	_, ok = root.ContainedNodeAt(0, 1, 1)
	assert.False(t, ok, "text item is not a node")
	_, ok = root.ContainedNodeAt(0, 1, 2)
	assert.False(t, ok, "end of element")
	_, ok = root.ContainedNodeAt(0, 7, 0)
	assert.False(t, ok, "bad element")

	m.SetActive(false)
	_, ok = root.ContainedNodeAt(0, 1, 0)
	assert.False(t, ok)

	it, ok := root.At(0, 1, 0)
	assert.True(t, ok)
	assert.Same(t, m, it.Node, "At still reports inactive nodes")
}
