package extract

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/cognicore/textrush/pkg/textrush/internalerr"
	"github.com/cognicore/textrush/pkg/textrush/segment"
	"github.com/cognicore/textrush/pkg/textrush/trie"
)

func buildTrie(caseSensitive bool, pairs ...string) *trie.Trie {
	tr := trie.New(trie.PolicyFor(caseSensitive, 0))
	for i := 0; i+1 < len(pairs); i += 2 {
		tr.Insert(segment.Words(pairs[i]), pairs[i+1])
	}
	return tr
}

func TestExtractLongestNonOverlapping(t *testing.T) {
	tr := buildTrie(false, "New York", "NY", "New York City", "NYC")
	text := "I love New York City"

	got := Text(tr, text, Longest)
	start := strings.Index(text, "New")
	expected := []Match{{CleanName: "NYC", Start: start, End: len(text)}}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Longest = %+v, want %+v", got, expected)
	}
}

func TestExtractAllOverlapping(t *testing.T) {
	tr := buildTrie(false, "New York", "NY", "New York City", "NYC")
	text := "I love New York City"

	got := Text(tr, text, All)
	start := strings.Index(text, "New")
	expected := []Match{
		{CleanName: "NY", Start: start, End: start + len("New York")},
		{CleanName: "NYC", Start: start, End: len(text)},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("All = %+v, want %+v", got, expected)
	}
}

func TestExtractAllNested(t *testing.T) {
	tr := buildTrie(true, "New", "new", "New York", "ny", "York", "york")
	got := Text(tr, "New York", All)

	var names []string
	for _, m := range got {
		names = append(names, m.CleanName)
	}
	// start 0: New, New York; start 2: York
	expected := []string{"new", "ny", "york"}
	if !reflect.DeepEqual(names, expected) {
		t.Errorf("All names = %v, want %v", names, expected)
	}

	longest := Text(tr, "New York", Longest)
	if len(longest) != 1 || longest[0].CleanName != "ny" {
		t.Errorf("Longest should return only the longer keyword, got %+v", longest)
	}
}

func TestExtractLongestResumesAfterMatch(t *testing.T) {
	tr := buildTrie(false, "a b", "AB", "b c", "BC", "c", "C")
	got := Text(tr, "a b c", Longest)

	expected := []Match{
		{CleanName: "AB", Start: 0, End: 3},
		{CleanName: "C", Start: 4, End: 5},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Longest = %+v, want %+v", got, expected)
	}
}

func TestExtractLongestSingleTokenMatches(t *testing.T) {
	tr := buildTrie(false, "python", "Python", "rust", "Rust")
	got := Text(tr, "python rust", Longest)

	expected := []Match{
		{CleanName: "Python", Start: 0, End: 6},
		{CleanName: "Rust", Start: 7, End: 11},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Longest = %+v, want %+v", got, expected)
	}
}

func TestExtractTokenAligned(t *testing.T) {
	tr := buildTrie(false, "cat", "CAT")
	if got := Text(tr, "concatenate category", All); len(got) != 0 {
		t.Errorf("Substrings should not match, got %+v", got)
	}
	if got := Text(tr, "a cat.", All); len(got) != 1 {
		t.Errorf("Expected one token-aligned match, got %+v", got)
	}
}

func TestExtractEmpty(t *testing.T) {
	tr := buildTrie(false, "x", "X")
	for _, s := range []Strategy{All, Longest} {
		if got := Text(tr, "", s); len(got) != 0 {
			t.Errorf("%v: empty text should yield no matches, got %+v", s, got)
		}
		if got := Text(trie.New(nil), "some text", s); len(got) != 0 {
			t.Errorf("%v: empty trie should yield no matches, got %+v", s, got)
		}
		if got := Text(tr, "nothing here", s); len(got) != 0 {
			t.Errorf("%v: expected no matches, got %+v", s, got)
		}
	}
}

func TestExtractUnicodeOffsets(t *testing.T) {
	tr := buildTrie(true, "😊", "smile", "Café", "coffee")
	text := "Un Café 😊"
	got := Text(tr, text, All)

	if len(got) != 2 {
		t.Fatalf("Expected 2 matches, got %+v", got)
	}
	for _, m := range got {
		span := text[m.Start:m.End]
		if (m.CleanName == "coffee" && span != "Café") || (m.CleanName == "smile" && span != "😊") {
			t.Errorf("Match %q spans %q", m.CleanName, span)
		}
	}
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in   string
		want Strategy
	}{
		{"all", All},
		{"longest", Longest},
	}
	for _, tt := range tests {
		got, err := ParseStrategy(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseStrategy(%q) = (%v, %v), want %v", tt.in, got, err, tt.want)
		}
		if got.String() != tt.want.String() {
			t.Errorf("String mismatch for %q", tt.in)
		}
	}

	for _, bad := range []string{"", "Longest", "first", "ALL"} {
		if _, err := ParseStrategy(bad); !errors.Is(err, internalerr.ErrUnknownStrategy) {
			t.Errorf("ParseStrategy(%q) error = %v, want ErrUnknownStrategy", bad, err)
		}
	}
}

func BenchmarkExtractLongest(b *testing.B) {
	tr := trie.New(trie.NewFolded(0))
	words := strings.Fields("alpha beta gamma delta epsilon zeta eta theta iota kappa lambda mu")
	for i, w := range words {
		tr.Insert(segment.Words(w), w)
		if i > 0 {
			tr.Insert(segment.Words(words[i-1]+" "+w), w)
		}
	}
	text := strings.Repeat("the alpha beta and gamma went to delta epsilon zeta. ", 200)
	tokens := segment.Tokenize(text)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Extract(tr, tokens, Longest)
	}
}
