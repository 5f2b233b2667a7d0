// Package corpus reads document batches stored as JSON lines.
package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Document is one line of a JSONL corpus.
type Document struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// LoadJSONL reads documents from a JSONL file.
func LoadJSONL(path string) ([]Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}
	defer f.Close()

	docs, err := ReadJSONL(f, path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}
	return docs, nil
}

// ReadJSONL decodes one document per line. Malformed lines are logged and
// skipped; documents without an id get their line number.
func ReadJSONL(r io.Reader, name string) ([]Document, error) {
	var docs []Document
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var doc Document
		if err := json.Unmarshal([]byte(text), &doc); err != nil {
			log.Printf("Warning: skipping malformed JSON at line %d in %s: %v", line, name, err)
			continue
		}
		if doc.ID == "" {
			doc.ID = fmt.Sprintf("%d", line)
		}
		docs = append(docs, doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no valid documents found in %s", name)
	}
	return docs, nil
}

// Texts returns the document bodies in order.
func Texts(docs []Document) []string {
	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text
	}
	return texts
}
