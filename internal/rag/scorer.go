package rag

import (
	"fmt"
	"strings"
)

// Scorer rates how well a chunk's text matches the query terms.
// terms are already lowercased; a score of 0 means the chunk is not a match.
type Scorer interface {
	Score(terms []string, text string) float64
}

// ScorerFunc adapts a function to the Scorer interface.
type ScorerFunc func(terms []string, text string) float64

// Score calls f(terms, text).
func (f ScorerFunc) Score(terms []string, text string) float64 {
	return f(terms, text)
}

// SubstringScorer scores 1 when the lowercased text contains any term as a
// substring, partial words included, and 0 otherwise. Every match ties.
var SubstringScorer Scorer = ScorerFunc(func(terms []string, text string) float64 {
	lower := strings.ToLower(text)
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return 1
		}
	}
	return 0
})

// TermFrequencyScorer scores the total number of non-overlapping term occurrences.
var TermFrequencyScorer Scorer = ScorerFunc(func(terms []string, text string) float64 {
	lower := strings.ToLower(text)
	total := 0
	for _, term := range terms {
		total += strings.Count(lower, term)
	}
	return float64(total)
})

// ParseScorer maps a config name to a Scorer.
func ParseScorer(name string) (Scorer, error) {
	switch name {
	case "", "substring":
		return SubstringScorer, nil
	case "frequency":
		return TermFrequencyScorer, nil
	}
	return nil, fmt.Errorf("unknown scorer %q (want substring or frequency)", name)
}
