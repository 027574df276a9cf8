package docpos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSliceCompare(t *testing.T) {
	m := NewMath(2, 2)
	tests := []struct {
		name string
		a, b Slice
		want int
	}{
		{"equal", Slice{node: m, cell: 1, offset: 2}, Slice{node: m, cell: 1, offset: 2}, 0},
		{"cell first", Slice{node: m, cell: 0, offset: 5}, Slice{node: m, cell: 1}, -1},
		{"element", Slice{node: m, element: 1}, Slice{node: m, element: 0, offset: 3}, 1},
		{"offset", Slice{node: m, offset: 1}, Slice{node: m, offset: 2}, -1},
		{"boundary sorts after", Slice{node: m, offset: 1, boundary: true}, Slice{node: m, offset: 1}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.compare(tt.b))
			assert.Equal(t, -tt.want, tt.b.compare(tt.a))
			assert.Equal(t, tt.want == 0, tt.a.Equal(tt.b))
		})
	}
}

func TestSliceEqualUsesNodeIdentity(t *testing.T) {
	a := Slice{node: NewMath(1, 1)}
	b := Slice{node: NewMath(1, 1)}
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(a))
}

func TestSliceRowCol(t *testing.T) {
	m := NewMath(2, 3)
	s := Slice{node: m, cell: 4}
	assert.Equal(t, 1, s.Row())
	assert.Equal(t, 1, s.Col())
	assert.Equal(t, 5, s.LastCell())
	assert.Equal(t, 0, Slice{}.Row())
}

func TestSliceValidate(t *testing.T) {
	tx := NewText("ab", "c")

	assert.NoError(t, Slice{node: tx, element: 1, offset: 1}.validate())
	assert.ErrorIs(t, Slice{}.validate(), ErrInvariantViolation)
	assert.ErrorIs(t, Slice{node: tx, cell: 1}.validate(), ErrInvariantViolation)
	assert.ErrorIs(t, Slice{node: tx, element: 2}.validate(), ErrInvariantViolation)
	assert.ErrorIs(t, Slice{node: tx, offset: 3}.validate(), ErrInvariantViolation)
	assert.ErrorIs(t, Slice{node: tx, offset: -1}.validate(), ErrInvariantViolation)
}

func TestSliceString(t *testing.T) {
	m := NewMath(2, 2)
	s := Slice{node: m, cell: 3, boundary: true}
	assert.Equal(t, nodeName(m)+"[c3 (1,1) e0 o0 b]", s.String())

	tx := NewText("abc")
	assert.Equal(t, nodeName(tx)+"[c0 e0 o2]", Slice{node: tx, offset: 2}.String())
}

func TestSliceAtEndAndNextNode(t *testing.T) {
	root, m := scenarioDoc(t)
	s := Slice{node: root, element: 1}
	n, ok := s.nextNode()
	assert.True(t, ok)
	assert.Same(t, m, n)
	assert.False(t, s.AtEnd())

	s.offset = 2
	assert.True(t, s.AtEnd())
	_, ok = s.nextNode()
	assert.False(t, ok)
}
