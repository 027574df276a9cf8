package docpos

import (
	"unicode"
	"unicode/utf8"

	"github.com/phroun/docpos/internal/grapheme"
)

// SearchResult is one match, from Start up to (not including) End. Both
// paths address the same element.
type SearchResult struct {
	Start *Path
	End   *Path
}

// SearchOptions configures string search behavior.
type SearchOptions struct {
	CaseSensitive bool // If false, search is case-insensitive
	WholeWord     bool // If true, only match whole words
	SkipMath      bool // If true, math cells are not searched
}

// FindString returns every match of needle under root in document order.
// Matches never span a contained node or an element boundary.
func FindString(root Node, needle string, opts SearchOptions) []SearchResult {
	want := grapheme.Split(needle)
	if len(want) == 0 || root == nil {
		return nil
	}
	if !opts.CaseSensitive {
		for i := range want {
			want[i] = grapheme.Fold(want[i])
		}
	}

	var results []SearchResult
	p := Begin(root)
	for !p.Empty() {
		// every element is entered exactly once at offset 0
		if p.Offset() == 0 && !(opts.SkipMath && p.InMath()) {
			results = append(results, matchElement(p, want, opts)...)
		}
		p.Forward()
	}
	return results
}

// FindNext returns the first match at or after from, or nil.
func FindNext(from *Path, needle string, opts SearchOptions) *SearchResult {
	for _, r := range FindString(from.Root(), needle, opts) {
		if r.Start.Compare(from) >= 0 {
			return &r
		}
	}
	return nil
}

func matchElement(p *Path, want []string, opts SearchOptions) []SearchResult {
	s := p.Top()
	last := s.LastOffset()
	items := make([]Item, last)
	for i := range items {
		items[i], _ = s.node.At(s.cell, s.element, i)
	}

	var results []SearchResult
	for i := 0; i+len(want) <= len(items); i++ {
		if !matchAt(items, i, want, opts.CaseSensitive) {
			continue
		}
		end := i + len(want)
		if opts.WholeWord && !isWholeWord(items, i, end) {
			continue
		}
		start := p.Clone()
		start.top().offset = i
		stop := p.Clone()
		stop.top().offset = end
		results = append(results, SearchResult{Start: start, End: stop})
	}
	return results
}

func matchAt(items []Item, at int, want []string, caseSensitive bool) bool {
	for j, w := range want {
		it := items[at+j]
		if it.Node != nil {
			return false
		}
		got := it.Text
		if !caseSensitive {
			got = grapheme.Fold(got)
		}
		if got != w {
			return false
		}
	}
	return true
}

func isWholeWord(items []Item, start, end int) bool {
	if start > 0 && isWordItem(items[start-1]) {
		return false
	}
	if end < len(items) && isWordItem(items[end]) {
		return false
	}
	return true
}

func isWordItem(it Item) bool {
	if it.Node != nil || grapheme.IsSpace(it.Text) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(it.Text)
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
