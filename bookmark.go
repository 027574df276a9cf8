package docpos

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"
)

// Bookmark is a named position kept in stable form, such as a saved
// selection end or a search hit.
type Bookmark struct {
	Name     string     `yaml:"name"`
	Pos      StablePath `yaml:"pos"`
	Revision uint64     `yaml:"revision"`
}

type bookmarkFile struct {
	Bookmarks []Bookmark `yaml:"bookmarks"`
}

// SetBookmark records p under name, replacing any previous bookmark of
// that name.
func (d *Document) SetBookmark(name string, p *Path) {
	d.putBookmark(&Bookmark{Name: name, Pos: p.Stable(), Revision: d.revision})
}

func (d *Document) putBookmark(b *Bookmark) {
	if _, ok := d.bookmarks[b.Name]; ok {
		d.order = slices.DeleteFunc(d.order, func(n string) bool { return n == b.Name })
	}
	d.bookmarks[b.Name] = b
	d.order = append(d.order, b.Name)

	if limit := d.opt.BookmarkLimit; limit > 0 {
		for len(d.order) > limit {
			oldest := d.order[0]
			d.order = d.order[1:]
			delete(d.bookmarks, oldest)
			d.log.Debug("bookmark evicted", "name", oldest)
		}
	}
}

// Bookmark resolves the named bookmark against the current tree.
func (d *Document) Bookmark(name string) (*Path, Resolution, error) {
	b, ok := d.bookmarks[name]
	if !ok {
		return nil, Failed, fmt.Errorf("%q: %w", name, ErrBookmarkNotFound)
	}
	p, res := d.Resolve(b.Pos)
	return p, res, nil
}

// RemoveBookmark deletes the named bookmark.
func (d *Document) RemoveBookmark(name string) error {
	if _, ok := d.bookmarks[name]; !ok {
		return fmt.Errorf("%q: %w", name, ErrBookmarkNotFound)
	}
	delete(d.bookmarks, name)
	d.order = slices.DeleteFunc(d.order, func(n string) bool { return n == name })
	return nil
}

// Bookmarks returns all bookmarks, oldest first.
func (d *Document) Bookmarks() []Bookmark {
	out := make([]Bookmark, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, *d.bookmarks[name])
	}
	return out
}

// refreshBookmarks moves every bookmark along with sh, if any, then
// re-resolves it and stores the degraded position of those whose
// structure changed or whose content was erased.
func (d *Document) refreshBookmarks(sh *shift) {
	for _, name := range d.order {
		b := d.bookmarks[name]
		pos, removed := b.Pos, false
		if sh != nil {
			pos, removed = sh.apply(b.Pos)
		}
		p, res := pos.Resolve(d.root)
		if res == Full && !removed {
			b.Pos = pos
			continue
		}
		d.log.Info("bookmark degraded",
			"name", name,
			"from", b.Pos.String(),
			"to", p.Stable().String(),
			"erased", removed,
			"revision", d.revision)
		b.Pos = p.Stable()
		b.Revision = d.revision
	}
}

// SaveBookmarks writes all bookmarks as YAML.
func (d *Document) SaveBookmarks(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(bookmarkFile{Bookmarks: d.Bookmarks()}); err != nil {
		return fmt.Errorf("encode bookmarks: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode bookmarks: %w", err)
	}
	d.log.Debug("bookmarks saved", "count", len(d.order))
	return nil
}

// LoadBookmarks reads bookmarks written by SaveBookmarks and adds them to
// the document, replacing bookmarks with the same names.
func (d *Document) LoadBookmarks(r io.Reader) error {
	var f bookmarkFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode bookmarks: %w", err)
	}
	for i := range f.Bookmarks {
		b := f.Bookmarks[i]
		d.putBookmark(&b)
	}
	d.log.Debug("bookmarks loaded", "count", len(f.Bookmarks))
	return nil
}
