package config

import (
	"fmt"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"

	"github.com/tonegauge/tonegauge/pkg/gauge/lexicon"
	"github.com/tonegauge/tonegauge/pkg/gauge/sanitize"
)

// Components holds the scoring-run collaborators built from config:
// the sanitizer with its injected resources and the polarity lexicon.
type Components struct {
	Sanitizer *sanitize.Sanitizer
	Lexicon   *lexicon.Lexicon
}

// LoadComponents reads the word list, stopwords, and polarity lexicon
// named by the config and constructs the sanitizer and lexicon. The
// resources are loaded once and shared across every article in a run.
func (c *Config) LoadComponents() (*Components, error) {
	if c.WordList == "" {
		return nil, fmt.Errorf("config: word_list is required")
	}
	if c.Lexicon == "" {
		return nil, fmt.Errorf("config: lexicon is required")
	}

	vocabulary, err := sanitize.LoadWordList(c.WordList)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}

	stopwords := sanitize.DefaultStopwords()
	if c.Stopwords != "" {
		stopwords, err = sanitize.LoadWordList(c.Stopwords)
		if err != nil {
			return nil, fmt.Errorf("load stopwords: %w", err)
		}
	}

	lemmatizer, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("init lemmatizer: %w", err)
	}

	lex, err := lexicon.LoadCSV(c.Lexicon)
	if err != nil {
		return nil, err
	}

	return &Components{
		Sanitizer: sanitize.New(vocabulary, stopwords, lemmatizer),
		Lexicon:   lex,
	}, nil
}
