package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Lexicon is a keyword dictionary: groups of phrase variants, each group
// sharing one clean name.
//
// Design principles:
//   - File order is kept, so later groups overwrite earlier ones the same way
//     repeated insertion does.
//   - Case is kept as written; folding is the processor's job.
//   - A group without variants uses its clean name as the only phrase.
type Lexicon struct {
	groups []Group
	index  map[string]int // clean name -> position in groups
}

// Group is one clean name and the phrases that map to it.
type Group struct {
	CleanName string   `yaml:"clean_name"`
	Category  string   `yaml:"category,omitempty"`
	Variants  []string `yaml:"variants"`
}

// Pair is a single phrase -> clean name mapping.
type Pair struct {
	Phrase    string
	CleanName string
	Category  string
}

// New creates an empty lexicon.
func New() *Lexicon {
	return &Lexicon{index: make(map[string]int)}
}

// AddGroup adds variants under cleanName, merging with an existing group
// of the same clean name. Duplicate variants are dropped.
func (l *Lexicon) AddGroup(cleanName, category string, variants []string) {
	cleanName = strings.TrimSpace(cleanName)
	if cleanName == "" {
		return
	}

	pos, exists := l.index[cleanName]
	if !exists {
		l.groups = append(l.groups, Group{CleanName: cleanName, Category: category})
		pos = len(l.groups) - 1
		l.index[cleanName] = pos
	}
	g := &l.groups[pos]
	if category != "" {
		g.Category = category
	}

	seen := make(map[string]bool, len(g.Variants)+len(variants))
	for _, v := range g.Variants {
		seen[v] = true
	}
	for _, v := range variants {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		g.Variants = append(g.Variants, v)
	}
}

// Groups returns the groups in insertion order.
func (l *Lexicon) Groups() []Group {
	return l.groups
}

// Pairs flattens the lexicon into phrase -> clean name pairs.
func (l *Lexicon) Pairs() []Pair {
	var pairs []Pair
	for _, g := range l.groups {
		if len(g.Variants) == 0 {
			pairs = append(pairs, Pair{Phrase: g.CleanName, CleanName: g.CleanName, Category: g.Category})
			continue
		}
		for _, v := range g.Variants {
			pairs = append(pairs, Pair{Phrase: v, CleanName: g.CleanName, Category: g.Category})
		}
	}
	return pairs
}

// Map returns clean name -> variants.
func (l *Lexicon) Map() map[string][]string {
	m := make(map[string][]string, len(l.groups))
	for _, g := range l.groups {
		if len(g.Variants) == 0 {
			m[g.CleanName] = []string{g.CleanName}
			continue
		}
		m[g.CleanName] = append([]string(nil), g.Variants...)
	}
	return m
}

// Merge appends every group of other.
func (l *Lexicon) Merge(other *Lexicon) {
	for _, g := range other.groups {
		l.AddGroup(g.CleanName, g.Category, g.Variants)
	}
}

// Stats returns statistics about the lexicon contents.
func (l *Lexicon) Stats() LexiconStats {
	total := 0
	for _, g := range l.groups {
		total += max(len(g.Variants), 1)
	}
	return LexiconStats{Groups: len(l.groups), Phrases: total}
}

// LexiconStats holds statistics about lexicon contents.
type LexiconStats struct {
	Groups  int // Number of clean names
	Phrases int // Number of phrases across all groups
}

// yamlFile is the on-disk YAML layout.
//
//	keywords:
//	  - clean_name: NY
//	    category: place
//	    variants: [New York, NYC]
//	clean_names:
//	  Big Apple: NY
type yamlFile struct {
	Keywords   []Group           `yaml:"keywords"`
	CleanNames map[string]string `yaml:"clean_names"`
}

// ParseYAML reads a YAML dictionary.
func ParseYAML(data []byte) (*Lexicon, error) {
	var f yamlFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	lex := New()
	for _, g := range f.Keywords {
		lex.AddGroup(g.CleanName, g.Category, g.Variants)
	}
	for _, phrase := range sortedPhrases(f.CleanNames) {
		lex.AddGroup(f.CleanNames[phrase], "", []string{phrase})
	}
	return lex, nil
}

// LoadFromYAML loads a YAML dictionary file.
func LoadFromYAML(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseYAML(data)
}

// maxDictLine bounds one pipe-format line; a clean name with thousands of
// variants fits well within it.
const maxDictLine = 16 * 1024 * 1024

// ParseDict reads the pipe-delimited format, one group per line:
//
//	# comment
//	clean name|variant one|variant two
//
// A line with a single field is a keyword that is its own clean name.
func ParseDict(r io.Reader) (*Lexicon, error) {
	lex := New()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxDictLine)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		parts := strings.Split(text, "|")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if parts[0] == "" {
			return nil, fmt.Errorf("line %d: empty clean name", line)
		}
		lex.AddGroup(parts[0], "", parts[1:])
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lex, nil
}

// LoadDict loads a pipe-delimited dictionary file.
func LoadDict(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseDict(f)
}

// Load picks the format from the file extension: .yaml and .yml are YAML,
// anything else is the pipe-delimited format.
func Load(path string) (*Lexicon, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadFromYAML(path)
	default:
		return LoadDict(path)
	}
}

func sortedPhrases(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
