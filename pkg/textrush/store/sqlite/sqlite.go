package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/textrush/pkg/textrush/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled and creates the
// dictionary schema if needed.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS dict_entries (
	phrase TEXT PRIMARY KEY,
	clean_name TEXT NOT NULL,
	category TEXT NOT NULL DEFAULT '',
	revision TEXT NOT NULL,
	seq INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS revisions (
	id TEXT PRIMARY KEY,
	at TEXT NOT NULL,
	added INTEGER NOT NULL,
	removed INTEGER NOT NULL
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// UpsertEntries adds or replaces entries in a single transaction.
func (s *sqliteStore) UpsertEntries(ctx context.Context, entries []store.Entry) (store.Revision, error) {
	rev := store.NewRevision(len(entries), 0)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.Revision{}, err
	}
	defer tx.Rollback()

	if len(entries) > 0 {
		var seq int64
		if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM dict_entries`).Scan(&seq); err != nil {
			return store.Revision{}, err
		}

		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO dict_entries (phrase, clean_name, category, revision, seq) VALUES (?, ?, ?, ?, ?)
ON CONFLICT(phrase) DO UPDATE SET clean_name=excluded.clean_name, category=excluded.category,
	revision=excluded.revision, seq=excluded.seq;
`)
		if err != nil {
			return store.Revision{}, err
		}
		defer stmt.Close()
		for _, e := range entries {
			seq++
			if _, err := stmt.ExecContext(ctx, e.Phrase, e.CleanName, e.Category, rev.ID, seq); err != nil {
				return store.Revision{}, fmt.Errorf("upsert %q: %w", e.Phrase, err)
			}
		}
	}

	if err := insertRevision(ctx, tx, rev); err != nil {
		return store.Revision{}, err
	}
	return rev, tx.Commit()
}

// DeleteEntries removes entries by phrase in a single transaction.
func (s *sqliteStore) DeleteEntries(ctx context.Context, phrases []string) (store.Revision, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.Revision{}, err
	}
	defer tx.Rollback()

	removed := 0
	for _, phrase := range phrases {
		res, err := tx.ExecContext(ctx, `DELETE FROM dict_entries WHERE phrase=?`, phrase)
		if err != nil {
			return store.Revision{}, fmt.Errorf("delete %q: %w", phrase, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return store.Revision{}, err
		}
		removed += int(n)
	}

	rev := store.NewRevision(0, removed)
	if err := insertRevision(ctx, tx, rev); err != nil {
		return store.Revision{}, err
	}
	return rev, tx.Commit()
}

func insertRevision(ctx context.Context, tx *sql.Tx, rev store.Revision) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO revisions (id, at, added, removed) VALUES (?, ?, ?, ?)`,
		rev.ID, rev.At.Format(time.RFC3339Nano), rev.Added, rev.Removed)
	return err
}

// Entries returns all entries in write order.
func (s *sqliteStore) Entries(ctx context.Context) ([]store.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT phrase, clean_name, category FROM dict_entries ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []store.Entry{}
	for rows.Next() {
		var e store.Entry
		if err := rows.Scan(&e.Phrase, &e.CleanName, &e.Category); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Revisions returns the change log ordered by ULID.
func (s *sqliteStore) Revisions(ctx context.Context) ([]store.Revision, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, at, added, removed FROM revisions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var revs []store.Revision
	for rows.Next() {
		var rev store.Revision
		var at string
		if err := rows.Scan(&rev.ID, &at, &rev.Added, &rev.Removed); err != nil {
			return nil, err
		}
		if rev.At, err = time.Parse(time.RFC3339Nano, at); err != nil {
			return nil, fmt.Errorf("revision %s: %w", rev.ID, err)
		}
		revs = append(revs, rev)
	}
	return revs, rows.Err()
}
