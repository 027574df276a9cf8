// Package grapheme splits text into the user-perceived characters that
// document offsets count.
package grapheme

import (
	"unicode"

	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Normalize returns text in Unicode normalization form C.
func Normalize(text string) string {
	return norm.NFC.String(text)
}

// Split normalizes text and returns its grapheme clusters in order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	text = Normalize(text)
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Fold returns a case-folded form of a cluster for case-insensitive
// comparison.
func Fold(cluster string) string {
	return cases.Fold().String(cluster)
}

// IsSpace reports whether all runes in cluster are Unicode whitespace.
func IsSpace(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
