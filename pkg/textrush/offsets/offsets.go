// Package offsets converts byte offsets into code point (rune) offsets for
// callers that index strings by character.
package offsets

import (
	"unicode/utf8"

	"github.com/cognicore/textrush/pkg/textrush/extract"
)

// Table maps every byte offset of a text to the index of the rune starting
// at or containing it. Building a table is O(len(text)); lookups are O(1).
type Table struct {
	runes []int // nil when the text is ASCII
	size  int
}

// NewTable builds the position table for text.
func NewTable(text string) *Table {
	t := &Table{size: len(text)}
	if isASCII(text) {
		return t
	}
	t.runes = make([]int, len(text)+1)
	idx := 0
	for i := range text {
		_, w := utf8.DecodeRuneInString(text[i:])
		for k := 0; k < w; k++ {
			t.runes[i+k] = idx
		}
		idx++
	}
	t.runes[len(text)] = idx
	return t
}

// Rune returns the rune offset for byteOffset. Offsets outside the text
// are clamped to its bounds.
func (t *Table) Rune(byteOffset int) int {
	if byteOffset < 0 {
		return 0
	}
	if byteOffset > t.size {
		byteOffset = t.size
	}
	if t.runes == nil {
		return byteOffset
	}
	return t.runes[byteOffset]
}

// Len returns the number of runes in the text.
func (t *Table) Len() int {
	return t.Rune(t.size)
}

// Spans returns a copy of matches with Start and End in rune offsets.
func (t *Table) Spans(matches []extract.Match) []extract.Match {
	if matches == nil {
		return nil
	}
	out := make([]extract.Match, len(matches))
	for i, m := range matches {
		out[i] = extract.Match{CleanName: m.CleanName, Start: t.Rune(m.Start), End: t.Rune(m.End)}
	}
	return out
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
