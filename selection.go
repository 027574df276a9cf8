package docpos

// Selection is a range between an anchor (where selecting started) and a
// head (where the cursor is now). Either may be the earlier one.
type Selection struct {
	Anchor *Path
	Head   *Path
}

// NewSelection returns a selection over copies of anchor and head.
func NewSelection(anchor, head *Path) Selection {
	return Selection{Anchor: anchor.Clone(), Head: head.Clone()}
}

// Empty reports whether anchor and head are the same position.
func (s Selection) Empty() bool {
	return s.Anchor.Equal(s.Head)
}

// Range returns the selection's start and end in document order, both in
// the same node. When the ends sit at different depths, they are lifted to
// the deepest level they share and the end is widened to cover the whole
// node it was inside. Ends in different cells of one grid stay in that
// grid, which makes a rectangular cell selection.
func (s Selection) Range() (start, end *Path) {
	a, h := s.Anchor, s.Head
	if a.Compare(h) > 0 {
		a, h = h, a
	}
	if a.Empty() || h.Empty() {
		return a.Clone(), h.Clone()
	}

	k := 0
	for k < a.Depth()-1 && k < h.Depth()-1 && a.slices[k].compare(h.slices[k]) == 0 {
		k++
	}

	start = &Path{root: a.root, slices: append([]Slice(nil), a.slices[:k+1]...)}
	end = &Path{root: h.root, slices: append([]Slice(nil), h.slices[:k+1]...)}
	if h.Depth() > k+1 {
		top := end.top()
		top.boundary = false
		top.offset++
	}
	if a.Depth() > k+1 {
		start.top().boundary = false
	}
	return start, end
}

// Contains reports whether p lies inside the selection's range.
func (s Selection) Contains(p *Path) bool {
	start, end := s.Range()
	return start.Compare(p) <= 0 && p.Compare(end) < 0
}

// Stable returns the stable form of the selection.
func (s Selection) Stable() StableSelection {
	return StableSelection{Anchor: s.Anchor.Stable(), Head: s.Head.Stable()}
}

// StableSelection is a Selection with node references removed, used for
// saved selections and undo records.
type StableSelection struct {
	Anchor StablePath `yaml:"anchor"`
	Head   StablePath `yaml:"head"`
}

// Resolve re-derives the selection under root. Each end falls back to its
// longest surviving prefix independently; the returned resolution is the
// worse of the two.
func (s StableSelection) Resolve(root Node) (Selection, Resolution) {
	anchor, ra := s.Anchor.Resolve(root)
	head, rh := s.Head.Resolve(root)
	return Selection{Anchor: anchor, Head: head}, max(ra, rh)
}
