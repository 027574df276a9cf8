package docpos

import (
	"fmt"
	"strings"

	"github.com/phroun/docpos/internal/grapheme"
)

// Paragraph is one element of a text node: a sequence of grapheme clusters
// and contained nodes.
type Paragraph struct {
	items []Item
}

// Len returns the number of items (the paragraph's last offset).
func (p *Paragraph) Len() int {
	return len(p.items)
}

// Items returns the paragraph's items. The slice must be treated as
// read-only.
func (p *Paragraph) Items() []Item {
	return p.items
}

// Text returns the paragraph's text with contained nodes shown as
// placeholders.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, it := range p.items {
		sb.WriteString(it.String())
	}
	return sb.String()
}

// TextItems converts a string into grapheme items.
func TextItems(text string) []Item {
	clusters := grapheme.Split(text)
	items := make([]Item, len(clusters))
	for i, c := range clusters {
		items[i] = Item{Text: c}
	}
	return items
}

// TextNode is a text container: one cell holding one or more paragraphs.
// A text node always has at least one paragraph.
type TextNode struct {
	id         NodeID
	paragraphs []*Paragraph
	inactive   bool
}

// NewText creates a text node with one paragraph per argument. With no
// arguments the node holds a single empty paragraph.
func NewText(paragraphs ...string) *TextNode {
	t := &TextNode{id: nextNodeID()}
	for _, s := range paragraphs {
		t.paragraphs = append(t.paragraphs, &Paragraph{items: TextItems(s)})
	}
	if len(t.paragraphs) == 0 {
		t.paragraphs = []*Paragraph{{}}
	}
	return t
}

func (t *TextNode) ID() NodeID { return t.id }

func (t *TextNode) CellCount() int { return 1 }

func (t *TextNode) Rows() int { return 1 }

func (t *TextNode) Cols() int { return 1 }

func (t *TextNode) LastElement(cell int) int {
	return len(t.paragraphs) - 1
}

func (t *TextNode) LastOffset(cell, element int) int {
	if element < 0 || element >= len(t.paragraphs) {
		return 0
	}
	return len(t.paragraphs[element].items)
}

func (t *TextNode) At(cell, element, offset int) (Item, bool) {
	if cell != 0 || element < 0 || element >= len(t.paragraphs) {
		return Item{}, false
	}
	items := t.paragraphs[element].items
	if offset < 0 || offset >= len(items) {
		return Item{}, false
	}
	return items[offset], true
}

func (t *TextNode) ContainedNodeAt(cell, element, offset int) (Node, bool) {
	if cell != 0 || element < 0 || element >= len(t.paragraphs) {
		return nil, false
	}
	return containedAt(t.paragraphs[element].items, offset)
}

func (t *TextNode) Active() bool { return !t.inactive }

// SetActive controls whether traversal may enter this node when it is
// contained in another node.
func (t *TextNode) SetActive(active bool) {
	t.inactive = !active
}

func (t *TextNode) MathLike() bool { return false }

func (t *TextNode) TextLike() bool { return true }

// NumParagraphs returns the number of paragraphs.
func (t *TextNode) NumParagraphs() int {
	return len(t.paragraphs)
}

// Paragraph returns paragraph i, or nil if i is out of range.
func (t *TextNode) Paragraph(i int) *Paragraph {
	if i < 0 || i >= len(t.paragraphs) {
		return nil
	}
	return t.paragraphs[i]
}

// AppendParagraph adds a paragraph built from items and returns its index.
func (t *TextNode) AppendParagraph(items ...Item) int {
	t.paragraphs = append(t.paragraphs, &Paragraph{items: items})
	return len(t.paragraphs) - 1
}

// InsertParagraph inserts a paragraph of text before index at.
// at == NumParagraphs() appends.
func (t *TextNode) InsertParagraph(at int, text string) error {
	if at < 0 || at > len(t.paragraphs) {
		return fmt.Errorf("insert paragraph %d of %d: %w", at, len(t.paragraphs), ErrInvalidPosition)
	}
	p := &Paragraph{items: TextItems(text)}
	t.paragraphs = append(t.paragraphs, nil)
	copy(t.paragraphs[at+1:], t.paragraphs[at:])
	t.paragraphs[at] = p
	return nil
}

// RemoveParagraph removes paragraph at. Removing the only paragraph
// leaves a single empty paragraph behind.
func (t *TextNode) RemoveParagraph(at int) error {
	if at < 0 || at >= len(t.paragraphs) {
		return fmt.Errorf("remove paragraph %d of %d: %w", at, len(t.paragraphs), ErrInvalidPosition)
	}
	t.paragraphs = append(t.paragraphs[:at], t.paragraphs[at+1:]...)
	if len(t.paragraphs) == 0 {
		t.paragraphs = []*Paragraph{{}}
	}
	return nil
}

// Insert inserts text into paragraph par before offset.
func (t *TextNode) Insert(par, offset int, text string) error {
	return t.InsertItems(par, offset, TextItems(text)...)
}

// InsertNode inserts a contained node into paragraph par before offset.
func (t *TextNode) InsertNode(par, offset int, n Node) error {
	return t.InsertItems(par, offset, NodeItem(n))
}

// InsertItems inserts items into paragraph par before offset.
func (t *TextNode) InsertItems(par, offset int, items ...Item) error {
	p := t.Paragraph(par)
	if p == nil || offset < 0 || offset > len(p.items) {
		return fmt.Errorf("insert at paragraph %d offset %d: %w", par, offset, ErrInvalidPosition)
	}
	p.items = insertItems(p.items, offset, items)
	return nil
}

// Erase removes items [from, to) from paragraph par and returns them.
func (t *TextNode) Erase(par, from, to int) ([]Item, error) {
	p := t.Paragraph(par)
	if p == nil || from < 0 || to > len(p.items) || from > to {
		return nil, fmt.Errorf("erase paragraph %d [%d,%d): %w", par, from, to, ErrInvalidPosition)
	}
	var removed []Item
	p.items, removed = eraseItems(p.items, from, to)
	return removed, nil
}

// PlainText returns the node's paragraphs joined by newlines, with
// contained nodes shown as placeholders.
func (t *TextNode) PlainText() string {
	lines := make([]string, len(t.paragraphs))
	for i, p := range t.paragraphs {
		lines[i] = p.Text()
	}
	return strings.Join(lines, "\n")
}

func insertItems(dst []Item, at int, items []Item) []Item {
	out := make([]Item, 0, len(dst)+len(items))
	out = append(out, dst[:at]...)
	out = append(out, items...)
	return append(out, dst[at:]...)
}

func eraseItems(src []Item, from, to int) (kept, removed []Item) {
	removed = append([]Item(nil), src[from:to]...)
	kept = append(src[:from:from], src[to:]...)
	return kept, removed
}
