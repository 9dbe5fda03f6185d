package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/araddon/dateparse"

	"github.com/tonegauge/tonegauge/pkg/gauge/internalerr"
)

// Fields holds the structured result of parsing one raw article file.
type Fields struct {
	Title     string
	Date      string // YYYY-MM-DD
	Publisher string
	Author    *string // nil when no byline was present
	Body      string
	WordCount int
}

// FormatAdapter parses one vendor export format into article fields.
// Alternate export formats plug in here without touching the batch's
// duplicate/store logic.
type FormatAdapter interface {
	Parse(raw string) (Fields, error)
}

// ParseError reports which extraction stage failed for a file.
type ParseError struct {
	Stage string // "header", "metadata", "date", "body"
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse stage %s: %v", e.Stage, e.Err)
}

func (e *ParseError) Unwrap() error { return internalerr.ErrMalformedInput }

func parseErr(stage, format string, args ...any) error {
	return &ParseError{Stage: stage, Err: fmt.Errorf(format, args...)}
}

// NexisAdapter parses the plain-text export format of the Nexis Uni
// news database. The format is a header segment (title, publisher,
// date, byline), a run of blank lines, the article body, and a
// "Language:"/"Classification" trailer.
type NexisAdapter struct{}

var (
	blankRunRe = regexp.MustCompile(`\n{4,}`)
	// Metadata block terminators, in priority order. The leading \s in
	// the correction marker matches the vendor's indented layout.
	correctionRe = regexp.MustCompile(`(?i)\n\scorrection\sappended`)
	copyrightRe  = regexp.MustCompile(`(?i)\ncopyright`)
	bylineRe     = regexp.MustCompile(`(?i)byline:`)
	trailerRe    = regexp.MustCompile(`(?i)\nlanguage:|\nclassification`)
	yearRe       = regexp.MustCompile(`[0-9]{4}`)
	dayRe        = regexp.MustCompile(`[0-9]{1,2}`)
	monthRe      = regexp.MustCompile(`(?i)(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)`)
	// First run of word characters followed by a newline or end of text:
	// the start of the trailing boilerplate appended after the narrative.
	footerRe = regexp.MustCompile(`\w+(?:\n|\z)`)
)

// Parse extracts article fields from one raw Nexis text blob.
func (NexisAdapter) Parse(raw string) (Fields, error) {
	content := strings.TrimSpace(raw)

	// Header: everything before the first run of 4+ newlines.
	loc := blankRunRe.FindStringIndex(content)
	if loc == nil {
		return Fields{}, parseErr("header", "no blank-line run separating header from body")
	}
	header := content[:loc[0]]

	// Primary metadata block: header content before the correction or
	// copyright marker.
	meta := metadataBlock(header)
	if meta == "" {
		return Fields{}, parseErr("metadata", "no correction/copyright marker in header")
	}

	var lines []string
	for _, line := range strings.Split(meta, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, strings.TrimSpace(line))
		}
	}
	if len(lines) < 2 {
		return Fields{}, parseErr("metadata", "metadata block has %d non-empty lines, need at least 2", len(lines))
	}

	f := Fields{
		Title:     lines[0],
		Publisher: lines[1],
	}

	// Author: first header line starting with "byline", prefix stripped.
	for _, line := range strings.Split(header, "\n") {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "byline") {
			author := strings.TrimSpace(bylineRe.ReplaceAllString(line, ""))
			f.Author = &author
			break
		}
	}

	// Date: the last metadata line, reassembled from independently
	// matched year, day, and month fragments.
	date, err := parseDate(lines[len(lines)-1])
	if err != nil {
		return Fields{}, &ParseError{Stage: "date", Err: err}
	}
	f.Date = date

	// Body: between the blank run that ended the header and the trailer.
	endLoc := trailerRe.FindStringIndex(content)
	if endLoc == nil {
		return Fields{}, parseErr("body", "no language/classification trailer")
	}
	if endLoc[0] < loc[1] {
		return Fields{}, parseErr("body", "trailer precedes body start")
	}
	body := content[loc[1]:endLoc[0]]

	// Truncate at the first word run that ends a line; what follows is
	// footer boilerplate. The retained prefix loses its line breaks.
	if fLoc := footerRe.FindStringIndex(body); fLoc != nil {
		body = strings.ReplaceAll(body[:fLoc[0]], "\n", "")
	}
	f.Body = body

	// Split on a single space: repeated spaces yield empty tokens, and
	// those count. Stored word counts feed the duplicate key, so this
	// must match corpora built by earlier runs.
	f.WordCount = len(strings.Split(body, " "))

	return f, nil
}

func metadataBlock(header string) string {
	if loc := correctionRe.FindStringIndex(header); loc != nil {
		return header[:loc[0]]
	}
	if loc := copyrightRe.FindStringIndex(header); loc != nil {
		return header[:loc[0]]
	}
	return ""
}

// parseDate pulls a 4-digit year, 1-2 digit day, and 3-letter month
// abbreviation out of the raw date line, then lets dateparse resolve
// the reassembled year-month-day string.
func parseDate(raw string) (string, error) {
	year := yearRe.FindString(raw)
	if year == "" {
		return "", fmt.Errorf("no 4-digit year in %q", raw)
	}
	day := dayRe.FindString(raw)
	if day == "" {
		return "", fmt.Errorf("no day in %q", raw)
	}
	month := monthRe.FindString(raw)
	if month == "" {
		return "", fmt.Errorf("no month abbreviation in %q", raw)
	}

	t, err := dateparse.ParseAny(year + "-" + month + "-" + day)
	if err != nil {
		return "", fmt.Errorf("parse %s-%s-%s: %w", year, month, day, err)
	}
	return t.Format("2006-01-02"), nil
}
