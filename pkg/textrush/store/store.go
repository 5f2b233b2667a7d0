package store

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/textrush/pkg/textrush"
	"github.com/cognicore/textrush/pkg/textrush/lexicon"
	"github.com/cognicore/textrush/pkg/textrush/segment"
	"github.com/cognicore/textrush/pkg/textrush/trie"
)

// Store persists keyword dictionary entries. It never stores the trie:
// a processor is rebuilt from the entries with Load.
type Store interface {
	Close() error

	// UpsertEntries adds entries, replacing any with the same phrase.
	// A replaced entry counts as written again.
	UpsertEntries(ctx context.Context, entries []Entry) (Revision, error)
	// DeleteEntries removes entries by exact phrase; unknown phrases are
	// ignored.
	DeleteEntries(ctx context.Context, phrases []string) (Revision, error)
	// Entries returns all entries in write order, oldest first, so that
	// loading them replays the writes.
	Entries(ctx context.Context) ([]Entry, error)
	// Revisions returns the change log, oldest first.
	Revisions(ctx context.Context) ([]Revision, error)
}

// Entry is one stored phrase -> clean name mapping
type Entry struct {
	Phrase    string `json:"phrase"`
	CleanName string `json:"clean_name"`
	Category  string `json:"category,omitempty"`
}

// Revision records one write to a store.
type Revision struct {
	ID      string    `json:"id"` // ULID, sortable by time
	At      time.Time `json:"at"`
	Added   int       `json:"added"`
	Removed int       `json:"removed"`
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewRevision stamps a revision with a fresh ULID.
func NewRevision(added, removed int) Revision {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	now := time.Now().UTC()
	return Revision{
		ID:      ulid.MustNew(ulid.Timestamp(now), entropy).String(),
		At:      now,
		Added:   added,
		Removed: removed,
	}
}

// EntriesFromLexicon converts lexicon pairs to store entries.
func EntriesFromLexicon(lex *lexicon.Lexicon) []Entry {
	pairs := lex.Pairs()
	entries := make([]Entry, len(pairs))
	for i, p := range pairs {
		entries[i] = Entry{Phrase: p.Phrase, CleanName: p.CleanName, Category: p.Category}
	}
	return entries
}

// Delete removes every stored entry whose phrase a processor with the
// given case mode would treat as one of phrases. Case-insensitive deletion
// of "new york" also removes a stored "New York".
func Delete(ctx context.Context, s Store, phrases []string, caseSensitive bool) (Revision, error) {
	if caseSensitive {
		return s.DeleteEntries(ctx, phrases)
	}

	wanted := trie.New(trie.PolicyFor(false, len(phrases)))
	for _, phrase := range phrases {
		if trie.IsValidKeyword(phrase) {
			wanted.Insert(segment.Words(phrase), phrase)
		}
	}

	entries, err := s.Entries(ctx)
	if err != nil {
		return Revision{}, err
	}
	var matched []string
	for _, e := range entries {
		if _, ok := wanted.Lookup(segment.Words(e.Phrase)); ok {
			matched = append(matched, e.Phrase)
		}
	}
	return s.DeleteEntries(ctx, matched)
}

// Load inserts every stored entry into p in write order, so the latest
// write wins when phrases share a key. Entries that are not valid keywords
// are skipped and reported together.
func Load(ctx context.Context, s Store, p *textrush.Processor) error {
	entries, err := s.Entries(ctx)
	if err != nil {
		return err
	}
	keywords := make([]textrush.Keyword, len(entries))
	for i, e := range entries {
		keywords[i] = textrush.Keyword{Phrase: e.Phrase, CleanName: e.CleanName}
	}
	if err := p.AddKeywordsWithCleanNames(keywords); err != nil {
		return fmt.Errorf("load entries: %w", err)
	}
	return nil
}
