package docpos

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// LoadDocument reads a YAML document description and builds its tree.
//
// The format is a mapping with a "paragraphs" list. Each paragraph is a
// string or a list of items; an item is a string, a math grid
//
//	{math: {rows: 2, cols: 2, cells: ["a", "b", "c", ["d", {math: ...}]]}}
//
// or an embedded text box
//
//	{text: {paragraphs: [...], inactive: true}}
//
// Grids and text boxes accept "inactive: true" to make them unenterable.
func LoadDocument(r io.Reader) (*TextNode, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return ParseDocument(data)
}

// ParseDocument is LoadDocument for a byte slice.
func ParseDocument(data []byte) (*TextNode, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return NewText(), nil
	}
	return buildText(doc.Content[0])
}

type textDesc struct {
	Paragraphs []yaml.Node `yaml:"paragraphs"`
	Inactive   bool        `yaml:"inactive"`
}

type mathDesc struct {
	Rows     int         `yaml:"rows"`
	Cols     int         `yaml:"cols"`
	Cells    []yaml.Node `yaml:"cells"`
	Inactive bool        `yaml:"inactive"`
}

func invalid(n *yaml.Node, format string, args ...any) error {
	return fmt.Errorf("line %d: %s: %w", n.Line, fmt.Sprintf(format, args...), ErrInvalidDocument)
}

func buildText(n *yaml.Node) (*TextNode, error) {
	if n.Kind != yaml.MappingNode {
		return nil, invalid(n, "text node must be a mapping")
	}
	var desc textDesc
	if err := n.Decode(&desc); err != nil {
		return nil, invalid(n, "%v", err)
	}

	t := &TextNode{id: nextNodeID(), inactive: desc.Inactive}
	for i := range desc.Paragraphs {
		items, err := buildItems(&desc.Paragraphs[i])
		if err != nil {
			return nil, err
		}
		t.paragraphs = append(t.paragraphs, &Paragraph{items: items})
	}
	if len(t.paragraphs) == 0 {
		t.paragraphs = []*Paragraph{{}}
	}
	return t, nil
}

func buildMath(n *yaml.Node) (*MathNode, error) {
	if n.Kind != yaml.MappingNode {
		return nil, invalid(n, "math node must be a mapping")
	}
	var desc mathDesc
	if err := n.Decode(&desc); err != nil {
		return nil, invalid(n, "%v", err)
	}
	if desc.Rows == 0 {
		desc.Rows = 1
	}
	if desc.Cols == 0 {
		desc.Cols = 1
	}
	if desc.Rows < 1 || desc.Cols < 1 {
		return nil, invalid(n, "grid must be at least 1x1, got %dx%d", desc.Rows, desc.Cols)
	}
	if len(desc.Cells) > desc.Rows*desc.Cols {
		return nil, invalid(n, "%d cells do not fit a %dx%d grid", len(desc.Cells), desc.Rows, desc.Cols)
	}

	m := NewMath(desc.Rows, desc.Cols)
	m.inactive = desc.Inactive
	for i := range desc.Cells {
		items, err := buildItems(&desc.Cells[i])
		if err != nil {
			return nil, err
		}
		m.cells[i] = items
	}
	return m, nil
}

// buildItems accepts a string, a single node mapping, or a list of both.
func buildItems(n *yaml.Node) ([]Item, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return TextItems(n.Value), nil
	case yaml.MappingNode:
		node, err := buildNode(n)
		if err != nil {
			return nil, err
		}
		return []Item{NodeItem(node)}, nil
	case yaml.SequenceNode:
		var items []Item
		for _, c := range n.Content {
			if c.Kind == yaml.SequenceNode {
				return nil, invalid(c, "nested item lists are not allowed")
			}
			more, err := buildItems(c)
			if err != nil {
				return nil, err
			}
			items = append(items, more...)
		}
		return items, nil
	default:
		return nil, invalid(n, "unexpected yaml node kind %d", n.Kind)
	}
}

func buildNode(n *yaml.Node) (Node, error) {
	if len(n.Content) != 2 {
		return nil, invalid(n, "a node item must have exactly one key, math or text")
	}
	key, body := n.Content[0], n.Content[1]
	switch key.Value {
	case "math":
		return buildMath(body)
	case "text":
		return buildText(body)
	default:
		return nil, invalid(key, "unknown node kind %q", key.Value)
	}
}
