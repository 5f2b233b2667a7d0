// Package storetest holds behaviour tests shared by every store.Store
// implementation.
package storetest

import (
	"context"
	"reflect"
	"testing"

	"github.com/cognicore/textrush/pkg/textrush"
	"github.com/cognicore/textrush/pkg/textrush/extract"
	"github.com/cognicore/textrush/pkg/textrush/store"
)

// Run exercises s. The store must start empty.
func Run(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("EmptyStore", func(t *testing.T) {
		entries, err := s.Entries(ctx)
		if err != nil {
			t.Fatalf("Entries failed: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("expected empty store, got %v", entries)
		}
	})

	t.Run("UpsertReplacesByPhrase", func(t *testing.T) {
		rev, err := s.UpsertEntries(ctx, []store.Entry{
			{Phrase: "New York", CleanName: "NY", Category: "place"},
			{Phrase: "python", CleanName: "Python"},
		})
		if err != nil {
			t.Fatalf("UpsertEntries failed: %v", err)
		}
		if rev.ID == "" || rev.Added != 2 {
			t.Errorf("unexpected revision %+v", rev)
		}

		if _, err := s.UpsertEntries(ctx, []store.Entry{{Phrase: "New York", CleanName: "NYC"}}); err != nil {
			t.Fatalf("UpsertEntries failed: %v", err)
		}

		entries, err := s.Entries(ctx)
		if err != nil {
			t.Fatalf("Entries failed: %v", err)
		}
		// Rewriting a phrase moves it to the end of the write order
		expected := []store.Entry{
			{Phrase: "python", CleanName: "Python"},
			{Phrase: "New York", CleanName: "NYC"},
		}
		if !reflect.DeepEqual(entries, expected) {
			t.Errorf("Entries = %+v, want %+v", entries, expected)
		}
	})

	t.Run("DeleteIgnoresUnknown", func(t *testing.T) {
		rev, err := s.DeleteEntries(ctx, []string{"python", "missing"})
		if err != nil {
			t.Fatalf("DeleteEntries failed: %v", err)
		}
		if rev.Removed != 1 {
			t.Errorf("expected 1 removed, got %+v", rev)
		}
		entries, _ := s.Entries(ctx)
		if len(entries) != 1 || entries[0].Phrase != "New York" {
			t.Errorf("Entries after delete = %+v", entries)
		}
	})

	t.Run("RevisionsOrdered", func(t *testing.T) {
		revs, err := s.Revisions(ctx)
		if err != nil {
			t.Fatalf("Revisions failed: %v", err)
		}
		if len(revs) != 3 {
			t.Fatalf("expected 3 revisions, got %d", len(revs))
		}
		for i := 1; i < len(revs); i++ {
			if revs[i].ID <= revs[i-1].ID {
				t.Errorf("revision IDs not increasing: %s <= %s", revs[i].ID, revs[i-1].ID)
			}
		}
	})

	t.Run("LoadIntoProcessor", func(t *testing.T) {
		p := textrush.New(false)
		if err := store.Load(ctx, s, p); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if got := p.ExtractKeywords("I love new york", extract.All); !reflect.DeepEqual(got, []string{"NYC"}) {
			t.Errorf("Extract after Load = %v", got)
		}
	})
	t.Run("LaterWriteWinsAcrossCase", func(t *testing.T) {
		if _, err := s.UpsertEntries(ctx, []store.Entry{{Phrase: "Boston", CleanName: "OLD"}}); err != nil {
			t.Fatalf("UpsertEntries failed: %v", err)
		}
		if _, err := s.UpsertEntries(ctx, []store.Entry{{Phrase: "BOSTON", CleanName: "NEW"}}); err != nil {
			t.Fatalf("UpsertEntries failed: %v", err)
		}

		p := textrush.New(false)
		if err := store.Load(ctx, s, p); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if got := p.ExtractKeywords("boston", extract.All); !reflect.DeepEqual(got, []string{"NEW"}) {
			t.Errorf("Extract after Load = %v, want [NEW]", got)
		}
	})

	t.Run("DeleteFollowsCaseMode", func(t *testing.T) {
		rev, err := store.Delete(ctx, s, []string{"boston"}, true)
		if err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if rev.Removed != 0 {
			t.Errorf("case-sensitive delete removed %d, want 0", rev.Removed)
		}

		rev, err = store.Delete(ctx, s, []string{"boston"}, false)
		if err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if rev.Removed != 2 {
			t.Errorf("case-insensitive delete removed %d, want 2", rev.Removed)
		}

		entries, err := s.Entries(ctx)
		if err != nil {
			t.Fatalf("Entries failed: %v", err)
		}
		if len(entries) != 1 || entries[0].Phrase != "New York" {
			t.Errorf("Entries after delete = %+v", entries)
		}
	})
}
