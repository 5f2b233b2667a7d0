package textrush

import (
	"strings"
	"sync/atomic"

	"github.com/cognicore/textrush/pkg/textrush/extract"
	"github.com/cognicore/textrush/pkg/textrush/fuzzy"
	"github.com/cognicore/textrush/pkg/textrush/offsets"
	"github.com/cognicore/textrush/pkg/textrush/segment"
)

// ExtractKeywordsWithSpan returns every match in text with byte offsets.
func (p *Processor) ExtractKeywordsWithSpan(text string, s extract.Strategy) []extract.Match {
	// Tokenize outside the lock; it does not touch the trie.
	tokens := segment.Tokenize(text)

	p.mu.RLock()
	defer p.mu.RUnlock()
	return extract.Extract(p.trie, tokens, s)
}

// ExtractKeywords returns the clean names of every match in text.
func (p *Processor) ExtractKeywords(text string, s extract.Strategy) []string {
	matches := p.ExtractKeywordsWithSpan(text, s)
	if matches == nil {
		return nil
	}
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.CleanName
	}
	return names
}

// ExtractKeywordsWithRuneSpan is ExtractKeywordsWithSpan with offsets
// counted in runes instead of bytes.
func (p *Processor) ExtractKeywordsWithRuneSpan(text string, s extract.Strategy) []extract.Match {
	matches := p.ExtractKeywordsWithSpan(text, s)
	if len(matches) == 0 {
		return matches
	}
	return offsets.NewTable(text).Spans(matches)
}

// ExtractKeywordsFromList extracts from each text in turn.
func (p *Processor) ExtractKeywordsFromList(texts []string, s extract.Strategy) [][]string {
	out := make([][]string, len(texts))
	for i, text := range texts {
		out[i] = p.ExtractKeywords(text, s)
	}
	return out
}

// ExtractKeywordsWithSpanFromList extracts spans from each text in turn.
func (p *Processor) ExtractKeywordsWithSpanFromList(texts []string, s extract.Strategy) [][]extract.Match {
	out := make([][]extract.Match, len(texts))
	for i, text := range texts {
		out[i] = p.ExtractKeywordsWithSpan(text, s)
	}
	return out
}

// ReplaceKeywords substitutes every longest, non-overlapping match in text
// with its clean name. Unmatched bytes are copied unchanged.
func (p *Processor) ReplaceKeywords(text string) string {
	matches := p.ExtractKeywordsWithSpan(text, extract.Longest)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	prev := 0
	for _, m := range matches {
		b.WriteString(text[prev:m.Start])
		b.WriteString(m.CleanName)
		prev = m.End
	}
	b.WriteString(text[prev:])
	return b.String()
}

// FuzzySearch returns the clean names of keywords whose phrase has a
// similarity to query of at least threshold, most similar first.
func (p *Processor) FuzzySearch(query string, threshold float64) []fuzzy.Result {
	p.mu.RLock()
	entries := make([]fuzzy.Entry, 0, p.len)
	p.trie.Walk(func(phrase, clean string) bool {
		entries = append(entries, fuzzy.Entry{Phrase: phrase, CleanName: clean})
		return true
	})
	p.mu.RUnlock()

	return fuzzy.Search(entries, query, threshold, p.opts.CaseSensitive)
}

// Handle publishes a Processor that can be replaced wholesale while
// readers keep using it, e.g. when a dictionary file is reloaded.
type Handle struct {
	p atomic.Pointer[Processor]
}

// NewHandle creates a handle publishing p.
func NewHandle(p *Processor) *Handle {
	h := &Handle{}
	h.p.Store(p)
	return h
}

// Load returns the current processor.
func (h *Handle) Load() *Processor { return h.p.Load() }

// Swap publishes p and returns the previous processor.
func (h *Handle) Swap(p *Processor) *Processor { return h.p.Swap(p) }
