package docpos

import (
	"fmt"
	"log/slog"
)

// Options configures a Document.
type Options struct {
	// Logger receives edit and re-resolution events. Defaults to a logger
	// that discards everything.
	Logger *slog.Logger

	// BookmarkLimit caps the number of bookmarks; the oldest is evicted
	// first. 0 means the default of 256, negative means no limit.
	BookmarkLimit int
}

const defaultBookmarkLimit = 256

// Document owns a root text node and keeps positions into it meaningful
// across edits.
//
// A Document is not safe for concurrent use. Live paths into it must not
// be used after an edit unless they were passed to Edit.
type Document struct {
	root     *TextNode
	revision uint64
	log      *slog.Logger
	opt      Options

	bookmarks map[string]*Bookmark
	order     []string // bookmark names, oldest first
}

// NewDocument wraps root. A nil root is replaced by an empty text node.
func NewDocument(root *TextNode, opt Options) *Document {
	if root == nil {
		root = NewText()
	}
	if opt.Logger == nil {
		opt.Logger = slog.New(slog.DiscardHandler)
	}
	if opt.BookmarkLimit == 0 {
		opt.BookmarkLimit = defaultBookmarkLimit
	}
	return &Document{
		root:      root,
		log:       opt.Logger,
		opt:       opt,
		bookmarks: make(map[string]*Bookmark),
	}
}

// Root returns the document's root node.
func (d *Document) Root() *TextNode {
	return d.root
}

// Revision returns a counter that increases with every Edit.
func (d *Document) Revision() uint64 {
	return d.revision
}

// NewPath returns a path at the first position of the document.
func (d *Document) NewPath() *Path {
	return NewPath(d.root)
}

// Begin returns a path at the first position of the document.
func (d *Document) Begin() *Path {
	return Begin(d.root)
}

// End returns the empty sentinel path of the document.
func (d *Document) End() *Path {
	return End(d.root)
}

// Last returns a path at the last position of the document.
func (d *Document) Last() *Path {
	return Last(d.root)
}

// Resolve resolves a stable path against the document, logging when the
// structure no longer matches.
func (d *Document) Resolve(s StablePath) (*Path, Resolution) {
	p, res := s.Resolve(d.root)
	if res != Full {
		d.log.Warn("stable path resolved partially",
			"stable", s.String(),
			"depth", p.Depth(),
			"want_depth", s.Depth(),
			"resolution", res.String(),
			"revision", d.revision)
	}
	return p, res
}

// Edit runs fn on the root and advances the revision. The paths in keep
// are downgraded to their stable form before fn runs and re-resolved in
// place afterwards; the returned resolutions tell the caller which of them
// had to fall back to a shallower position. Bookmarks whose structure
// changed are replaced by their degraded position.
//
// Edit cannot tell where fn changed the tree, so positions after a change
// in the same element are not moved. Insert and Erase do move them.
//
// The revision advances even when fn fails, since fn may have mutated the
// tree before failing.
func (d *Document) Edit(fn func(root *TextNode) error, keep ...*Path) ([]Resolution, error) {
	return d.edit(fn, nil, keep...)
}

func (d *Document) edit(fn func(root *TextNode) error, sh *shift, keep ...*Path) ([]Resolution, error) {
	stable := make([]StablePath, len(keep))
	for i, p := range keep {
		stable[i] = p.Stable()
	}

	err := fn(d.root)
	d.revision++
	if err != nil {
		d.log.Warn("edit failed", "revision", d.revision, "error", err)
		sh = nil
	}

	results := make([]Resolution, len(keep))
	for i, s := range stable {
		removed := false
		if sh != nil {
			s, removed = sh.apply(s)
		}
		p, res := d.Resolve(s)
		if removed {
			d.log.Warn("kept position was erased",
				"stable", s.String(),
				"revision", d.revision)
			res = Partial
		}
		*keep[i] = *p
		results[i] = res
	}
	d.refreshBookmarks(sh)

	d.log.Debug("edit applied",
		"revision", d.revision,
		"kept_paths", len(keep),
		"bookmarks", len(d.bookmarks))
	return results, err
}

// Insert inserts items at p's position and moves p past them. Kept
// positions and bookmarks after the insertion point in the same element
// move with the content.
func (d *Document) Insert(p *Path, items ...Item) error {
	if p.Empty() {
		return ErrEmptyPath
	}
	s := p.Top()
	sh := &shift{at: p.Stable(), delta: len(items)}
	_, err := d.edit(func(*TextNode) error {
		switch n := s.node.(type) {
		case *TextNode:
			return n.InsertItems(s.element, s.offset, items...)
		case *MathNode:
			return n.InsertInCell(s.cell, s.offset, items...)
		default:
			return fmt.Errorf("%s: %w", nodeName(s.node), ErrNotEditable)
		}
	}, sh, p)
	return err
}

// Erase removes up to n items after p's position and returns them. p
// stays where it is. Positions after the erased items move back; positions
// inside them fall back to p's position and are reported as degraded.
func (d *Document) Erase(p *Path, n int) ([]Item, error) {
	if p.Empty() {
		return nil, ErrEmptyPath
	}
	s := p.Top()
	to := min(s.offset+max(n, 0), s.LastOffset())
	sh := &shift{at: p.Stable(), delta: s.offset - to}
	var removed []Item
	_, err := d.edit(func(*TextNode) error {
		var err error
		switch node := s.node.(type) {
		case *TextNode:
			removed, err = node.Erase(s.element, s.offset, to)
		case *MathNode:
			removed, err = node.EraseInCell(s.cell, s.offset, to)
		default:
			err = fmt.Errorf("%s: %w", nodeName(s.node), ErrNotEditable)
		}
		return err
	}, sh, p)
	return removed, err
}

// shift describes how an insert or erase at one position moved the items
// after it within the same element. A positive delta is an insertion; a
// negative delta erased the items [offset, offset-delta).
type shift struct {
	at    StablePath
	delta int
}

// apply moves s to follow the edit. It reports true when s addressed
// erased content and was cut back to the start of the erased range.
func (sh *shift) apply(s StablePath) (StablePath, bool) {
	d := sh.at.Depth()
	if d == 0 || s.Depth() < d || sh.delta == 0 {
		return s, false
	}
	for i := 0; i < d-1; i++ {
		a, b := sh.at.slices[i], s.slices[i]
		if a.Cell != b.Cell || a.Element != b.Element || a.Offset != b.Offset {
			return s, false
		}
	}
	edit, lvl := sh.at.slices[d-1], s.slices[d-1]
	if edit.Cell != lvl.Cell || edit.Element != lvl.Element || lvl.Offset < edit.Offset {
		return s, false
	}

	out := NewStablePath(s.slices...)
	switch {
	case sh.delta > 0, lvl.Offset >= edit.Offset-sh.delta:
		out.slices[d-1].Offset += sh.delta
		return out, false
	case lvl.Offset == edit.Offset && s.Depth() == d:
		// sits right before the erased items
		return s, false
	default:
		out.slices = out.slices[:d]
		out.slices[d-1].Offset = edit.Offset
		out.slices[d-1].Boundary = false
		return out, true
	}
}
