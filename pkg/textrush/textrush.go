// Package textrush extracts and replaces keyword phrases in text using a
// single token trie.
//
// A Processor is built once from a dictionary of phrases, each mapped to a
// clean name, and then queried against any number of texts. Phrases and
// texts are split into Unicode word-boundary tokens, so "New York" matches
// in "I love New York!" but "cat" never matches inside "concatenate".
//
// Processor methods are safe for concurrent use. Mutations take an
// exclusive lock for the duration of the trie walk; queries share a read
// lock for one call and return fully materialized results.
package textrush

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/cognicore/textrush/pkg/textrush/internalerr"
	"github.com/cognicore/textrush/pkg/textrush/segment"
	"github.com/cognicore/textrush/pkg/textrush/trie"
)

// Keyword is a stored phrase and its clean name.
type Keyword struct {
	Phrase    string
	CleanName string
}

// Options configures a Processor.
type Options struct {
	CaseSensitive bool
	FoldCacheSize int // memoized folded tokens; <= 0 uses trie.DefaultFoldCacheSize
}

// Processor owns a keyword trie and the count of live keywords.
type Processor struct {
	mu   sync.RWMutex
	trie *trie.Trie
	len  int
	opts Options
}

// New creates an empty Processor.
func New(caseSensitive bool) *Processor {
	return NewWithOptions(Options{CaseSensitive: caseSensitive})
}

// NewWithOptions creates an empty Processor with the given options.
func NewWithOptions(opts Options) *Processor {
	return &Processor{trie: newTrie(opts), opts: opts}
}

func newTrie(opts Options) *trie.Trie {
	return trie.New(trie.PolicyFor(opts.CaseSensitive, opts.FoldCacheSize))
}

// CaseSensitive reports the matching mode fixed at construction.
func (p *Processor) CaseSensitive() bool { return p.opts.CaseSensitive }

// Len returns the number of keywords, not the number of trie nodes.
func (p *Processor) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.len
}

// IsEmpty reports whether the processor holds no keywords.
func (p *Processor) IsEmpty() bool { return p.Len() == 0 }

func (p *Processor) String() string {
	return fmt.Sprintf("<KeywordProcessor len=%d case_sensitive=%t>", p.Len(), p.opts.CaseSensitive)
}

// AddKeyword adds word as its own clean name.
func (p *Processor) AddKeyword(word string) error {
	return p.AddKeywordWithCleanName(word, word)
}

// AddKeywordWithCleanName maps word to cleanName. Adding an existing
// phrase again replaces its clean name. An empty cleanName means word.
func (p *Processor) AddKeywordWithCleanName(word, cleanName string) error {
	if !trie.IsValidKeyword(word) {
		return fmt.Errorf("%w: %q", internalerr.ErrInvalidKeyword, word)
	}
	if cleanName == "" {
		cleanName = word
	}
	tokens := segment.Words(word)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.trie.Insert(tokens, cleanName) {
		p.len++
	}
	return nil
}

// AddKeywords adds every word as its own clean name. Invalid words are
// skipped and reported together.
func (p *Processor) AddKeywords(words []string) error {
	var errs []error
	for _, w := range words {
		if err := p.AddKeyword(w); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// AddKeywordsWithCleanNames adds every pair, reporting all failures together.
func (p *Processor) AddKeywordsWithCleanNames(keywords []Keyword) error {
	var errs []error
	for _, kw := range keywords {
		if err := p.AddKeywordWithCleanName(kw.Phrase, kw.CleanName); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// AddKeywordsFromMap adds each variant under its clean name, for example
// {"NY": {"New York", "NYC"}}. Clean names are processed in sorted order.
func (p *Processor) AddKeywordsFromMap(m map[string][]string) error {
	var errs []error
	for _, clean := range sortedKeys(m) {
		for _, word := range m[clean] {
			if err := p.AddKeywordWithCleanName(word, clean); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// RemoveKeyword removes word. Removing an absent phrase does nothing;
// an invalid phrase is ErrInvalidKeyword.
func (p *Processor) RemoveKeyword(word string) error {
	if !trie.IsValidKeyword(word) {
		return fmt.Errorf("%w: %q", internalerr.ErrInvalidKeyword, word)
	}
	tokens := segment.Words(word)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.trie.Remove(tokens) {
		p.len--
	}
	return nil
}

// RemoveKeywords removes every word, reporting all invalid ones together.
func (p *Processor) RemoveKeywords(words []string) error {
	var errs []error
	for _, w := range words {
		if err := p.RemoveKeyword(w); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RemoveKeywordsFromMap removes every variant listed in m. The clean names
// are ignored.
func (p *Processor) RemoveKeywordsFromMap(m map[string][]string) error {
	var errs []error
	for _, clean := range sortedKeys(m) {
		if err := p.RemoveKeywords(m[clean]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Keywords returns every stored phrase with its clean name, depth-first.
func (p *Processor) Keywords() []Keyword {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.keywordsLocked()
}

func (p *Processor) keywordsLocked() []Keyword {
	keywords := make([]Keyword, 0, p.len)
	p.trie.Walk(func(phrase, clean string) bool {
		keywords = append(keywords, Keyword{Phrase: phrase, CleanName: clean})
		return true
	})
	return keywords
}

// Nodes returns the number of allocated trie nodes. It grows with
// insertions and is only reduced by Compact.
func (p *Processor) Nodes() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.trie.Nodes()
}

// Compact rebuilds the trie from the live keywords, dropping branches left
// behind by removals. It returns the number of nodes released.
func (p *Processor) Compact() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	before := p.trie.Nodes()
	rebuilt := trie.New(p.trie.Policy())
	for _, kw := range p.keywordsLocked() {
		rebuilt.Insert(segment.Words(kw.Phrase), kw.CleanName)
	}
	p.trie = rebuilt
	return before - rebuilt.Nodes()
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
