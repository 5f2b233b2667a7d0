package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cognicore/textrush/pkg/textrush"
	"github.com/cognicore/textrush/pkg/textrush/internalerr"
	"github.com/cognicore/textrush/pkg/textrush/lexicon"
	"github.com/cognicore/textrush/pkg/textrush/store"
	"github.com/cognicore/textrush/pkg/textrush/store/memstore"
)

func TestLoadReportsInvalidEntries(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	s.UpsertEntries(ctx, []store.Entry{
		{Phrase: "...", CleanName: "dots"},
		{Phrase: "rust", CleanName: "Rust"},
	})

	p := textrush.New(false)
	err := store.Load(ctx, s, p)
	if !errors.Is(err, internalerr.ErrInvalidKeyword) {
		t.Errorf("Load error = %v, want ErrInvalidKeyword", err)
	}
	if p.Len() != 1 {
		t.Errorf("Valid entries should still load, Len = %d", p.Len())
	}
}

func TestEntriesFromLexicon(t *testing.T) {
	lex := lexicon.New()
	lex.AddGroup("NY", "place", []string{"New York", "NYC"})

	entries := store.EntriesFromLexicon(lex)
	if len(entries) != 2 || entries[1].Phrase != "NYC" || entries[1].Category != "place" {
		t.Errorf("EntriesFromLexicon = %+v", entries)
	}
}

func TestNewRevisionIDsIncrease(t *testing.T) {
	prev := store.NewRevision(0, 0)
	for i := 0; i < 100; i++ {
		rev := store.NewRevision(i, 0)
		if rev.ID <= prev.ID {
			t.Fatalf("ULID %s not after %s", rev.ID, prev.ID)
		}
		prev = rev
	}
}
