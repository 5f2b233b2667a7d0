// Package bolt implements store.Store on bbolt (embedded B+ tree).
// Entries live in the "entries" bucket keyed by phrase with JSON values
// carrying a write sequence from the bucket's NextSequence;
// revisions live in the "revisions" bucket keyed by ULID, so cursor order
// is chronological. Writes are transactional.
package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/cognicore/textrush/pkg/textrush/store"
)

// Bucket keys
var (
	bucketEntries   = []byte("entries")
	bucketRevisions = []byte("revisions")
)

// record is the stored form of an entry.
type record struct {
	store.Entry
	Seq uint64 `json:"seq"`
}

// Store implements store.Store backed by bbolt.
type Store struct {
	db *bolt.DB
}

// NewStore opens (or creates) a bbolt database at the given path.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketEntries, bucketRevisions} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("bbolt init: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// UpsertEntries implements store.Store.
func (s *Store) UpsertEntries(ctx context.Context, entries []store.Entry) (store.Revision, error) {
	if err := ctx.Err(); err != nil {
		return store.Revision{}, err
	}
	rev := store.NewRevision(len(entries), 0)
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketEntries)
		for _, e := range entries {
			seq, err := b.NextSequence()
			if err != nil {
				return err
			}
			data, err := json.Marshal(record{Entry: e, Seq: seq})
			if err != nil {
				return fmt.Errorf("marshal entry: %w", err)
			}
			if err := b.Put([]byte(e.Phrase), data); err != nil {
				return err
			}
		}
		return putRevision(tx, rev)
	})
	if err != nil {
		return store.Revision{}, err
	}
	return rev, nil
}

// DeleteEntries implements store.Store.
func (s *Store) DeleteEntries(ctx context.Context, phrases []string) (store.Revision, error) {
	if err := ctx.Err(); err != nil {
		return store.Revision{}, err
	}
	var rev store.Revision
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketEntries)
		removed := 0
		for _, phrase := range phrases {
			key := []byte(phrase)
			if b.Get(key) == nil {
				continue
			}
			if err := b.Delete(key); err != nil {
				return err
			}
			removed++
		}
		rev = store.NewRevision(0, removed)
		return putRevision(tx, rev)
	})
	if err != nil {
		return store.Revision{}, err
	}
	return rev, nil
}

func putRevision(tx *bolt.Tx, rev store.Revision) error {
	data, err := json.Marshal(rev)
	if err != nil {
		return fmt.Errorf("marshal revision: %w", err)
	}
	return tx.Bucket(bucketRevisions).Put([]byte(rev.ID), data)
}

// Entries implements store.Store. Keys are byte-ordered, so records are
// re-sorted by write sequence.
func (s *Store) Entries(ctx context.Context) ([]store.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var records []record
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketEntries).ForEach(func(k, v []byte) error {
			var r record
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("unmarshal entry %q: %w", k, err)
			}
			records = append(records, r)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Seq < records[j].Seq
	})
	entries := make([]store.Entry, len(records))
	for i, r := range records {
		entries[i] = r.Entry
	}
	return entries, nil
}

// Revisions implements store.Store.
func (s *Store) Revisions(ctx context.Context) ([]store.Revision, error) {
	var revs []store.Revision
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketRevisions).ForEach(func(k, v []byte) error {
			var rev store.Revision
			if err := json.Unmarshal(v, &rev); err != nil {
				return fmt.Errorf("unmarshal revision %s: %w", k, err)
			}
			revs = append(revs, rev)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return revs, nil
}
