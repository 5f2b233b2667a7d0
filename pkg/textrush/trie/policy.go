package trie

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/cases"
)

// DefaultFoldCacheSize bounds the number of memoized folded tokens.
const DefaultFoldCacheSize = 8192

// Policy decides which tokens are equal for child lookup. Two tokens are
// the same edge label iff their keys are equal. IndexKey is used when
// inserting keyword tokens and Key when walking searched text; both must
// return the same key for the same token.
type Policy interface {
	Key(token string) string
	IndexKey(token string) string
	CaseSensitive() bool
}

// Exact compares tokens byte for byte.
type Exact struct{}

// Key returns the token unchanged.
func (Exact) Key(token string) string { return token }

// IndexKey returns the token unchanged.
func (Exact) IndexKey(token string) string { return token }

// CaseSensitive implements Policy.
func (Exact) CaseSensitive() bool { return true }

// Folded compares tokens under full Unicode case folding ("Straße" and
// "STRASSE" share a key). Keys of inserted keyword tokens are memoized in
// an LRU cache; searched text only reads it, so text tokens never evict
// keyword keys and concurrent searches share the cache's read lock.
type Folded struct {
	cache *lru.Cache[string, string]
}

// NewFolded creates a folding policy with a cache of the given size.
// A size <= 0 uses DefaultFoldCacheSize.
func NewFolded(cacheSize int) *Folded {
	if cacheSize <= 0 {
		cacheSize = DefaultFoldCacheSize
	}
	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		panic(err) // only fails on non-positive size
	}
	return &Folded{cache: cache}
}

// Key returns the case-folded form of token without touching recency or
// adding to the cache.
func (f *Folded) Key(token string) string {
	if key, ok := f.cache.Peek(token); ok {
		return key
	}
	return fold(token)
}

// IndexKey folds token and memoizes the result.
func (f *Folded) IndexKey(token string) string {
	if key, ok := f.cache.Get(token); ok {
		return key
	}
	key := fold(token)
	f.cache.Add(token, key)
	return key
}

// fold creates a Caser per call: cases.Caser is stateful and must not be
// shared between goroutines.
func fold(token string) string {
	return cases.Fold().String(token)
}

// CaseSensitive implements Policy.
func (f *Folded) CaseSensitive() bool { return false }

// PolicyFor returns the policy matching a case-sensitivity flag.
// foldCacheSize is passed to NewFolded.
func PolicyFor(caseSensitive bool, foldCacheSize int) Policy {
	if caseSensitive {
		return Exact{}
	}
	return NewFolded(foldCacheSize)
}
