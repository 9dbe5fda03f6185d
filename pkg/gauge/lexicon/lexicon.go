package lexicon

import (
	"encoding/csv"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/tonegauge/tonegauge/pkg/gauge/internalerr"
)

// Polarity tags for lexicon terms.
const (
	Positive = 1
	Negative = -1
	Neutral  = 0
)

// Lexicon maps normalized terms to a polarity tag. It is a read-only
// reference resource: loaded once and shared across a scoring run.
type Lexicon struct {
	polarity map[string]int
}

// Sense-disambiguation suffixes like "abound#1" are stripped before use.
var senseSuffixRe = regexp.MustCompile(`#\d+`)

// LoadCSV loads a polarity lexicon from a CSV file with a header row.
// The file must carry an entry-term column plus positive/negative flag
// columns; a non-empty flag marks the polarity. Duplicate entries by
// normalized term keep their first occurrence.
func LoadCSV(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lexicon %s: %w: %v", path, internalerr.ErrLexiconLoad, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read lexicon %s: %w: %v", path, internalerr.ErrLexiconLoad, err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("lexicon %s: %w: empty file", path, internalerr.ErrLexiconLoad)
	}

	entryCol, posCol, negCol, err := headerColumns(records[0])
	if err != nil {
		return nil, fmt.Errorf("lexicon %s: %w: %v", path, internalerr.ErrLexiconLoad, err)
	}

	lex := &Lexicon{polarity: make(map[string]int, len(records)-1)}
	for _, row := range records[1:] {
		if entryCol >= len(row) {
			continue
		}
		term := Normalize(row[entryCol])
		if term == "" {
			continue
		}
		if _, seen := lex.polarity[term]; seen {
			continue // first occurrence wins
		}

		tag := Neutral
		if posCol < len(row) && strings.TrimSpace(row[posCol]) != "" {
			tag = Positive
		} else if negCol < len(row) && strings.TrimSpace(row[negCol]) != "" {
			tag = Negative
		}
		lex.polarity[term] = tag
	}

	return lex, nil
}

// headerColumns locates the entry/positive/negative columns by name.
func headerColumns(header []string) (entry, pos, neg int, err error) {
	entry, pos, neg = -1, -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "entry":
			entry = i
		case "positiv", "positive":
			pos = i
		case "negativ", "negative":
			neg = i
		}
	}
	if entry < 0 || pos < 0 || neg < 0 {
		return 0, 0, 0, fmt.Errorf("header missing entry/positiv/negativ columns: %v", header)
	}
	return entry, pos, neg, nil
}

// Normalize strips a "#<digits>" sense suffix and lower-cases a term.
func Normalize(term string) string {
	return strings.ToLower(strings.TrimSpace(senseSuffixRe.ReplaceAllString(term, "")))
}

// Polarity returns the polarity tag for a term and whether the term is
// in the lexicon at all.
func (l *Lexicon) Polarity(term string) (int, bool) {
	tag, ok := l.polarity[term]
	return tag, ok
}

// Len returns the number of distinct lexicon entries.
func (l *Lexicon) Len() int {
	return len(l.polarity)
}
