// Package fuzzy scores stored keywords against a query by normalized
// edit distance.
package fuzzy

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Entry is a stored keyword phrase and the clean name it maps to.
type Entry struct {
	Phrase    string
	CleanName string
}

// Result is a keyword whose phrase is similar enough to the query.
type Result struct {
	CleanName  string
	Similarity float64
}

// Distance is the single-rune insert/delete/substitute edit distance
// between a and b. Without caseSensitive both are lowercased first.
func Distance(a, b string, caseSensitive bool) int {
	if !caseSensitive {
		a, b = strings.ToLower(a), strings.ToLower(b)
	}
	return levenshtein.ComputeDistance(a, b)
}

// Similarity returns 1 - Distance/max(runes(a), runes(b)), in [0, 1].
// Two empty strings are identical.
func Similarity(a, b string, caseSensitive bool) float64 {
	if !caseSensitive {
		a, b = strings.ToLower(a), strings.ToLower(b)
	}
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}

// Search scores every entry's phrase against query and returns those with
// similarity >= threshold, most similar first. Ties have no defined order.
func Search(entries []Entry, query string, threshold float64, caseSensitive bool) []Result {
	var results []Result
	for _, e := range entries {
		sim := Similarity(e.Phrase, query, caseSensitive)
		if sim >= threshold {
			results = append(results, Result{CleanName: e.CleanName, Similarity: sim})
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	return results
}
