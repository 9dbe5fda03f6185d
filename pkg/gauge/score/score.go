package score

import (
	"strings"

	"github.com/tonegauge/tonegauge/pkg/gauge/lexicon"
)

// TermFreq computes a term -> raw-frequency map over one article's own
// tokens (local frequency, not corpus-wide).
func TermFreq(tokens []string) map[string]int {
	freq := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		freq[tok]++
	}
	return freq
}

// Sentiment computes the frequency-weighted polarity score of one
// cleaned token string against the lexicon. Terms absent from the
// lexicon are removed from the weighting denominator, not zero-weighted.
// The result is in [-1, 1]; an article with no lexicon terms scores 0.
func Sentiment(cleaned string, lex *lexicon.Lexicon) float64 {
	freq := TermFreq(strings.Fields(cleaned))

	// Restrict to lexicon terms.
	total := 0
	retained := make(map[string]int, len(freq))
	for term, n := range freq {
		if _, ok := lex.Polarity(term); !ok {
			continue
		}
		retained[term] = n
		total += n
	}
	if total == 0 {
		return 0.0
	}

	var score float64
	for term, n := range retained {
		tag, _ := lex.Polarity(term)
		weight := float64(n) / float64(total)
		score += float64(tag) * weight
	}
	return score
}
