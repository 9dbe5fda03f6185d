package sanitize

import (
	"regexp"
	"strings"

	"github.com/clipperhouse/uax29/v2/sentences"
	"github.com/clipperhouse/uax29/v2/words"
)

// Lemmatizer reduces an inflected word to its dictionary form.
// *golem.Lemmatizer satisfies this.
type Lemmatizer interface {
	Lemma(word string) string
}

// Sanitizer produces a cleaned, lemmatized, stopword-free token stream
// from article body text, restricted to a reference vocabulary. All
// resources are injected at construction; a Sanitizer holds no mutable
// state and is safe for concurrent use.
type Sanitizer struct {
	vocabulary map[string]struct{}
	stopwords  map[string]struct{}
	lemma      Lemmatizer
}

// New creates a sanitizer over the given reference vocabulary, stopword
// set, and lemmatizer.
func New(vocabulary []string, stopwords []string, lemma Lemmatizer) *Sanitizer {
	vocab := make(map[string]struct{}, len(vocabulary))
	for _, w := range vocabulary {
		vocab[w] = struct{}{}
	}
	stops := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stops[strings.ToLower(w)] = struct{}{}
	}
	return &Sanitizer{vocabulary: vocab, stopwords: stops, lemma: lemma}
}

// Noise patterns, each applied as an independent substitution.
var (
	currencyScaleRe = regexp.MustCompile(`(?i)\$?[0-9]+.?[0-9]*-b?m?illion`) // $123.4-billion phrases
	currencyRe      = regexp.MustCompile(`\$[0-9]+`)                         // bare $ amounts
	numHyphenWordRe = regexp.MustCompile(`\d+-\w`)                           // digit-prefixed hyphenated words
	numWordRe       = regexp.MustCompile(`\d+\w`)                            // digit-prefixed words
	urlRe           = regexp.MustCompile(`(?i)https?://\S+|www\.\S+`)
	digitsRe        = regexp.MustCompile(`\d+`)
)

// Clean runs the full sanitization pipeline on one article body and
// returns a single cleaned string (empty if everything was filtered).
func (s *Sanitizer) Clean(text string) string {
	lowered := strings.TrimSpace(strings.ToLower(text))

	var cleanedSentences []string
	sents := sentences.FromString(lowered)
	for sents.Next() {
		if cleaned := s.cleanSentence(sents.Value()); cleaned != "" {
			cleanedSentences = append(cleanedSentences, cleaned)
		}
	}

	return strings.Join(cleanedSentences, " ")
}

func (s *Sanitizer) cleanSentence(sentence string) string {
	var toks []string
	iter := words.FromString(sentence)
	for iter.Next() {
		tok := strings.TrimSpace(iter.Value())
		if tok == "" {
			continue
		}
		tok = currencyScaleRe.ReplaceAllString(tok, "")
		tok = currencyRe.ReplaceAllString(tok, "")
		tok = numHyphenWordRe.ReplaceAllString(tok, "")
		tok = numWordRe.ReplaceAllString(tok, "")
		toks = append(toks, tok)
	}

	// Re-join and re-split: the substitutions above leave spacing
	// artifacts behind.
	toks = strings.Fields(strings.Join(toks, " "))

	var kept []string
	for _, tok := range toks {
		tok = urlRe.ReplaceAllString(tok, "")
		tok = digitsRe.ReplaceAllString(tok, "")
		tok = strings.TrimSpace(tok)

		// Vocabulary filter: suppresses proper nouns, garbled OCR
		// fragments, and non-English text.
		if _, ok := s.vocabulary[tok]; !ok {
			continue
		}

		tok = s.lemma.Lemma(tok)

		if _, stop := s.stopwords[tok]; stop {
			continue
		}
		kept = append(kept, tok)
	}

	return strings.Join(kept, " ")
}
