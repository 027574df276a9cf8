package docpos

import (
	"fmt"
	"strconv"
	"strings"
)

// Resolution reports how much of a StablePath could be re-derived.
type Resolution int

const (
	// Full means every level was resolved.
	Full Resolution = iota

	// Partial means the tree changed: the returned path is the longest
	// prefix that still exists, with indices clamped into range.
	Partial

	// Failed means nothing could be resolved (no root).
	Failed
)

func (r Resolution) String() string {
	switch r {
	case Full:
		return "full"
	case Partial:
		return "partial"
	case Failed:
		return "failed"
	default:
		return "Resolution(" + strconv.Itoa(int(r)) + ")"
	}
}

// StableSlice is the node-free part of a Slice.
type StableSlice struct {
	Cell     int
	Element  int
	Offset   int
	Boundary bool
}

// StablePath is a Path with every node reference removed. It is a plain
// value that survives edits, and it can be persisted through its text
// form. It means nothing without a root to resolve it against.
type StablePath struct {
	slices []StableSlice
}

// Snapshot returns the stable form of p.
func Snapshot(p *Path) StablePath {
	s := StablePath{slices: make([]StableSlice, len(p.slices))}
	for i, sl := range p.slices {
		s.slices[i] = StableSlice{
			Cell:     sl.cell,
			Element:  sl.element,
			Offset:   sl.offset,
			Boundary: sl.boundary,
		}
	}
	return s
}

// Stable returns the stable form of the path.
func (p *Path) Stable() StablePath {
	return Snapshot(p)
}

// NewStablePath builds a stable path from explicit tuples.
func NewStablePath(slices ...StableSlice) StablePath {
	return StablePath{slices: append([]StableSlice(nil), slices...)}
}

// Depth returns the number of levels.
func (s StablePath) Depth() int { return len(s.slices) }

// Empty reports whether this is the stable form of an empty path.
func (s StablePath) Empty() bool { return len(s.slices) == 0 }

// At returns level i.
func (s StablePath) At(i int) StableSlice { return s.slices[i] }

// Equal compares two stable paths level by level.
func (s StablePath) Equal(o StablePath) bool {
	if len(s.slices) != len(o.slices) {
		return false
	}
	for i := range s.slices {
		if s.slices[i] != o.slices[i] {
			return false
		}
	}
	return true
}

// Resolve turns the stable path back into a live path under root.
//
// The node at depth 0 is root. The node at each following depth is the
// active node that the previous level's (cell, element, offset) points at.
// Indices that no longer fit their node are clamped and resolution stops
// there. When no node is found where one is expected, resolution stops at
// the previous level. Both cases report Partial together with the longest
// path that could be re-derived; the result never references a node that
// is not currently in the tree.
func (s StablePath) Resolve(root Node) (*Path, Resolution) {
	p := End(root)
	if root == nil {
		return p, Failed
	}

	node := root
	for i, ss := range s.slices {
		sl := Slice{
			node:     node,
			cell:     ss.Cell,
			element:  ss.Element,
			offset:   ss.Offset,
			boundary: ss.Boundary,
		}
		clamped := clampSlice(&sl)
		p.slices = append(p.slices, sl)
		if clamped {
			return p, Partial
		}
		if i == len(s.slices)-1 {
			break
		}
		next, ok := node.ContainedNodeAt(sl.cell, sl.element, sl.offset)
		if !ok {
			return p, Partial
		}
		node = next
	}
	return p, Full
}

// ResolveErr is Resolve for callers that prefer an error: a partial
// result comes with ErrStructureChanged.
func (s StablePath) ResolveErr(root Node) (*Path, error) {
	p, res := s.Resolve(root)
	switch res {
	case Full:
		return p, nil
	case Partial:
		return p, fmt.Errorf("resolved %d of %d levels: %w", p.Depth(), s.Depth(), ErrStructureChanged)
	default:
		return p, fmt.Errorf("no root to resolve against: %w", ErrStructureChanged)
	}
}

// clampSlice forces the slice's indices into range for its node and
// reports whether anything had to change.
func clampSlice(s *Slice) bool {
	changed := false
	clamp := func(v *int, hi int) {
		switch {
		case *v < 0:
			*v = 0
			changed = true
		case *v > hi:
			*v = hi
			changed = true
		}
	}
	clamp(&s.cell, s.node.CellCount()-1)
	clamp(&s.element, s.node.LastElement(s.cell))
	clamp(&s.offset, s.node.LastOffset(s.cell, s.element))
	if changed {
		s.boundary = false
	}
	return changed
}

// String returns the text form.
func (s StablePath) String() string {
	parts := make([]string, len(s.slices))
	for i, ss := range s.slices {
		parts[i] = fmt.Sprintf("%d.%d.%d", ss.Cell, ss.Element, ss.Offset)
		if ss.Boundary {
			parts[i] += "b"
		}
	}
	return strings.Join(parts, "/")
}

// MarshalText encodes the path as "cell.element.offset" levels joined by
// "/", with a trailing "b" on levels whose boundary flag is set.
func (s StablePath) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses the form written by MarshalText.
func (s *StablePath) UnmarshalText(text []byte) error {
	str := strings.TrimSpace(string(text))
	if str == "" {
		s.slices = nil
		return nil
	}
	levels := strings.Split(str, "/")
	slices := make([]StableSlice, len(levels))
	for i, level := range levels {
		var ss StableSlice
		if strings.HasSuffix(level, "b") {
			ss.Boundary = true
			level = strings.TrimSuffix(level, "b")
		}
		fields := strings.Split(level, ".")
		if len(fields) != 3 {
			return fmt.Errorf("level %d %q: %w", i, levels[i], ErrMalformedStablePath)
		}
		var nums [3]int
		for j, f := range fields {
			n, err := strconv.Atoi(f)
			if err != nil || n < 0 {
				return fmt.Errorf("level %d %q: %w", i, levels[i], ErrMalformedStablePath)
			}
			nums[j] = n
		}
		ss.Cell, ss.Element, ss.Offset = nums[0], nums[1], nums[2]
		slices[i] = ss
	}
	s.slices = slices
	return nil
}
