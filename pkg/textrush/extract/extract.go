// Package extract walks a tokenized text against a keyword trie.
package extract

import (
	"fmt"

	"github.com/cognicore/textrush/pkg/textrush/segment"
	"github.com/cognicore/textrush/pkg/textrush/trie"
)

// Match is one keyword occurrence. Start and End are byte offsets into the
// searched text, End exclusive.
type Match struct {
	CleanName string
	Start     int
	End       int
}

// Extract returns the matches of tr's keywords in tokens under strategy s,
// ordered by Start and then by End. The caller must hold tr stable for the
// duration of the call.
func Extract(tr *trie.Trie, tokens []segment.Token, s Strategy) []Match {
	if len(tokens) == 0 {
		return nil
	}
	switch s {
	case All:
		return extractAll(tr, tokens)
	case Longest:
		return extractLongest(tr, tokens)
	default:
		panic(fmt.Sprintf("extract: unhandled strategy %v", s))
	}
}

// Text tokenizes text and extracts from it.
func Text(tr *trie.Trie, text string, s Strategy) []Match {
	return Extract(tr, segment.Tokenize(text), s)
}

func extractAll(tr *trie.Trie, tokens []segment.Token) []Match {
	var matches []Match
	for i := range tokens {
		start := tokens[i].Offset
		walk(tr, tokens, i, func(clean string, j int) {
			matches = append(matches, Match{CleanName: clean, Start: start, End: tokens[j].End()})
		})
	}
	return matches
}

func extractLongest(tr *trie.Trie, tokens []segment.Token) []Match {
	var matches []Match
	i := 0
	for i < len(tokens) {
		best := ""
		last := -1
		walk(tr, tokens, i, func(clean string, j int) {
			best, last = clean, j
		})
		if last < 0 {
			i++
			continue
		}
		matches = append(matches, Match{CleanName: best, Start: tokens[i].Offset, End: tokens[last].End()})
		i = last + 1
	}
	return matches
}

// walk follows tokens from index i down the trie and calls hit with the
// clean name and token index of every terminal node crossed, shortest first.
func walk(tr *trie.Trie, tokens []segment.Token, i int, hit func(clean string, j int)) {
	node := tr.Root()
	for j := i; j < len(tokens); j++ {
		node = tr.Child(node, tokens[j].Text)
		if node == nil {
			return
		}
		if clean, ok := node.CleanName(); ok {
			hit(clean, j)
		}
	}
}
