package memstore

import (
	"context"
	"testing"

	"github.com/cognicore/textrush/pkg/textrush/store"
	"github.com/cognicore/textrush/pkg/textrush/store/storetest"
)

func TestMemstore(t *testing.T) {
	storetest.Run(t, New())
}

func TestMemstoreCanceledContext(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.UpsertEntries(ctx, []store.Entry{{Phrase: "x", CleanName: "x"}}); err == nil {
		t.Error("expected error for canceled context")
	}
	if _, err := s.Entries(ctx); err == nil {
		t.Error("expected error for canceled context")
	}
}
