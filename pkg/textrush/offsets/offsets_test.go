package offsets

import (
	"reflect"
	"testing"

	"github.com/cognicore/textrush/pkg/textrush/extract"
)

func TestTableASCII(t *testing.T) {
	tbl := NewTable("hello world")
	for _, b := range []int{0, 5, 11} {
		if got := tbl.Rune(b); got != b {
			t.Errorf("Rune(%d) = %d, want %d", b, got, b)
		}
	}
	if tbl.Len() != 11 {
		t.Errorf("Len = %d, want 11", tbl.Len())
	}
}

func TestTableMultibyte(t *testing.T) {
	text := "Café 😊 ok"
	tbl := NewTable(text)

	tests := []struct{ b, want int }{
		{0, 0},
		{3, 3},  // é starts at byte 3
		{5, 4},  // space after é
		{6, 5},  // 😊
		{10, 6}, // space after emoji
		{len(text), 9},
	}
	for _, tt := range tests {
		if got := tbl.Rune(tt.b); got != tt.want {
			t.Errorf("Rune(%d) = %d, want %d", tt.b, got, tt.want)
		}
	}
	if tbl.Len() != 9 {
		t.Errorf("Len = %d, want 9", tbl.Len())
	}
}

func TestTableClamps(t *testing.T) {
	tbl := NewTable("añb")
	if tbl.Rune(-4) != 0 {
		t.Error("Negative offsets should clamp to 0")
	}
	if tbl.Rune(100) != 3 {
		t.Errorf("Offsets past the end should clamp to rune length, got %d", tbl.Rune(100))
	}
}

func TestSpans(t *testing.T) {
	text := "I ❤️ NY"
	tbl := NewTable(text)
	start := len("I ❤️ ")
	matches := []extract.Match{{CleanName: "new york", Start: start, End: start + 2}}

	got := tbl.Spans(matches)
	expected := []extract.Match{{CleanName: "new york", Start: 5, End: 7}}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Spans = %+v, want %+v", got, expected)
	}
	if matches[0].Start != start {
		t.Error("Spans should not modify its input")
	}
	if tbl.Spans(nil) != nil {
		t.Error("Spans(nil) should be nil")
	}
}
