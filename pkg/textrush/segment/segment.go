// Package segment splits text into Unicode word-boundary tokens (UAX #29).
//
// Every byte of the input belongs to exactly one token: words, punctuation
// and whitespace runs are all emitted, each with its byte offset. Keyword
// phrases and searched text go through the same segmentation, so matching
// is token-sequence equality rather than substring search.
package segment

import "github.com/rivo/uniseg"

// Token is one word-boundary unit of a text.
type Token struct {
	Offset int    // byte offset in the owning text
	Text   string // token text, a slice of the owning text
}

// End returns the byte offset just past the token.
func (t Token) End() int {
	return t.Offset + len(t.Text)
}

// Each calls fn for every token of text in order until fn returns false.
// Each call starts a fresh segmentation.
func Each(text string, fn func(Token) bool) {
	offset := 0
	state := -1
	rest := text
	for len(rest) > 0 {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		if !fn(Token{Offset: offset, Text: word}) {
			return
		}
		offset += len(word)
	}
}

// Tokenize returns all tokens of text. An empty text yields nil.
func Tokenize(text string) []Token {
	if text == "" {
		return nil
	}
	tokens := make([]Token, 0, len(text)/4+1)
	Each(text, func(tok Token) bool {
		tokens = append(tokens, tok)
		return true
	})
	return tokens
}

// Words returns the token texts of text without offsets.
func Words(text string) []string {
	var words []string
	Each(text, func(tok Token) bool {
		words = append(words, tok.Text)
		return true
	})
	return words
}
