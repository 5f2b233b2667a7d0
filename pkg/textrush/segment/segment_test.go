package segment

import (
	"reflect"
	"strings"
	"testing"
)

func TestTokenizeBasic(t *testing.T) {
	tokens := Tokenize("I love New York.")

	var words []string
	for _, tok := range tokens {
		words = append(words, tok.Text)
	}
	expected := []string{"I", " ", "love", " ", "New", " ", "York", "."}
	if !reflect.DeepEqual(words, expected) {
		t.Errorf("Expected %q, got %q", expected, words)
	}
}

func TestTokenizeOffsetsCoverText(t *testing.T) {
	texts := []string{
		"",
		"plain",
		"Hello, world!  Two  spaces.",
		"Café au lait coûte 3,50 €",
		"emoji 😊 in 👨‍💻 text",
		"line one\r\nline two\n",
	}
	for _, text := range texts {
		var b strings.Builder
		next := 0
		for _, tok := range Tokenize(text) {
			if tok.Offset != next {
				t.Errorf("%q: token %q at %d, expected offset %d", text, tok.Text, tok.Offset, next)
			}
			if text[tok.Offset:tok.End()] != tok.Text {
				t.Errorf("%q: token %q does not match text slice", text, tok.Text)
			}
			b.WriteString(tok.Text)
			next = tok.End()
		}
		if b.String() != text {
			t.Errorf("Tokens do not reassemble %q, got %q", text, b.String())
		}
	}
}

func TestTokenizeEmpty(t *testing.T) {
	if tokens := Tokenize(""); tokens != nil {
		t.Errorf("Expected nil for empty text, got %v", tokens)
	}
}

func TestTokenizeKeepsMidWordPunctuation(t *testing.T) {
	words := Words("a.b can't 3.14")
	expected := []string{"a.b", " ", "can't", " ", "3.14"}
	if !reflect.DeepEqual(words, expected) {
		t.Errorf("Expected %q, got %q", expected, words)
	}
}

func TestEachStopsEarly(t *testing.T) {
	var seen []string
	Each("one two three", func(tok Token) bool {
		seen = append(seen, tok.Text)
		return len(seen) < 3
	})
	if len(seen) != 3 {
		t.Errorf("Expected 3 tokens before stop, got %d", len(seen))
	}
}
