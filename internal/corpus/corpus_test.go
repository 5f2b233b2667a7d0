package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadJSONL(t *testing.T) {
	in := `{"id":"a","text":"python rocks"}

not json
{"text":"java too"}
`
	docs, err := ReadJSONL(strings.NewReader(in), "test")
	if err != nil {
		t.Fatalf("ReadJSONL: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].ID != "a" || docs[0].Text != "python rocks" {
		t.Errorf("unexpected first document %+v", docs[0])
	}
	if docs[1].ID != "4" {
		t.Errorf("expected line number id 4, got %q", docs[1].ID)
	}

	texts := Texts(docs)
	if texts[1] != "java too" {
		t.Errorf("unexpected texts %v", texts)
	}
}

func TestReadJSONLEmpty(t *testing.T) {
	if _, err := ReadJSONL(strings.NewReader("\n\nbroken\n"), "empty"); err == nil {
		t.Fatal("expected error for input without documents")
	}
}

func TestLoadJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs.jsonl")
	if err := os.WriteFile(path, []byte(`{"id":"x","text":"go"}`+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	docs, err := LoadJSONL(path)
	if err != nil {
		t.Fatalf("LoadJSONL: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "x" {
		t.Errorf("unexpected documents %+v", docs)
	}

	if _, err := LoadJSONL(filepath.Join(t.TempDir(), "missing.jsonl")); err == nil {
		t.Error("expected error for missing file")
	}
}
