package htmltext

import (
	"strings"
	"testing"
)

func TestExtractVisibleText(t *testing.T) {
	doc := `<html><head><title>ignored</title><style>p{color:red}</style></head>
<body><h1>New York</h1><p>I love <b>New York City</b>.</p><script>var x = "Boston";</script></body></html>`

	got, err := Extract(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if strings.Contains(got, "Boston") || strings.Contains(got, "color") || strings.Contains(got, "ignored") {
		t.Errorf("Hidden text leaked: %q", got)
	}
	if !strings.Contains(got, "I love New York City.") {
		t.Errorf("Inline markup should not split text: %q", got)
	}
	if !strings.HasPrefix(got, "New York\n") {
		t.Errorf("Block elements should end with a newline: %q", got)
	}
}

func TestStringPlainText(t *testing.T) {
	if got := String("just text"); got != "just text" {
		t.Errorf("String = %q", got)
	}
}
