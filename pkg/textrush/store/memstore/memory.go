package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/cognicore/textrush/pkg/textrush/store"
)

// Store is an in-memory implementation of store.Store for tests and
// one-shot runs.
type Store struct {
	mu        sync.RWMutex
	entries   map[string]record
	seq       uint64
	revisions []store.Revision
}

// record is an entry with its write sequence number.
type record struct {
	entry store.Entry
	seq   uint64
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{entries: make(map[string]record)}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// UpsertEntries implements store.Store.
func (s *Store) UpsertEntries(ctx context.Context, entries []store.Entry) (store.Revision, error) {
	if err := ctx.Err(); err != nil {
		return store.Revision{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range entries {
		s.seq++
		s.entries[e.Phrase] = record{entry: e, seq: s.seq}
	}
	rev := store.NewRevision(len(entries), 0)
	s.revisions = append(s.revisions, rev)
	return rev, nil
}

// DeleteEntries implements store.Store.
func (s *Store) DeleteEntries(ctx context.Context, phrases []string) (store.Revision, error) {
	if err := ctx.Err(); err != nil {
		return store.Revision{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for _, phrase := range phrases {
		if _, ok := s.entries[phrase]; ok {
			delete(s.entries, phrase)
			removed++
		}
	}
	rev := store.NewRevision(0, removed)
	s.revisions = append(s.revisions, rev)
	return rev, nil
}

// Entries implements store.Store.
func (s *Store) Entries(ctx context.Context) ([]store.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]record, 0, len(s.entries))
	for _, r := range s.entries {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].seq < records[j].seq
	})
	entries := make([]store.Entry, len(records))
	for i, r := range records {
		entries[i] = r.entry
	}
	return entries, nil
}

// Revisions implements store.Store.
func (s *Store) Revisions(ctx context.Context) ([]store.Revision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]store.Revision(nil), s.revisions...), nil
}
