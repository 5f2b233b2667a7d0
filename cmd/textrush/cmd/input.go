package cmd

import (
	"encoding/json"
	"io"
	"os"

	"github.com/cognicore/textrush/internal/htmltext"
	"github.com/cognicore/textrush/pkg/textrush/extract"
)

// input is one text to process.
type input struct {
	Source string
	Text   string
}

// readInputs reads each file, or stdin when no files are given.
func readInputs(stdin io.Reader, files []string, asHTML bool) ([]input, error) {
	if len(files) == 0 {
		text, err := readText(stdin, asHTML)
		if err != nil {
			return nil, err
		}
		return []input{{Source: "-", Text: text}}, nil
	}

	inputs := make([]input, 0, len(files))
	for _, path := range files {
		text, err := readFile(path, asHTML)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, input{Source: path, Text: text})
	}
	return inputs, nil
}

func readFile(path string, asHTML bool) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return readText(f, asHTML)
}

func readText(r io.Reader, asHTML bool) (string, error) {
	if asHTML {
		return htmltext.Extract(r)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// jsonMatch is the output form of one match.
type jsonMatch struct {
	CleanName string `json:"clean_name"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
}

// extractResult is one output line of the extract command.
type extractResult struct {
	Source   string      `json:"source"`
	Keywords []string    `json:"keywords,omitempty"`
	Spans    []jsonMatch `json:"spans,omitempty"`
}

func toJSONMatches(matches []extract.Match) []jsonMatch {
	out := make([]jsonMatch, len(matches))
	for i, m := range matches {
		out[i] = jsonMatch{CleanName: m.CleanName, Start: m.Start, End: m.End}
	}
	return out
}

func writeJSONLine(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}
