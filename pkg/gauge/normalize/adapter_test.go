package normalize

import (
	"errors"
	"strings"
	"testing"

	"github.com/tonegauge/tonegauge/pkg/gauge/internalerr"
)

const sampleArticle = `Oil prices slump as demand craters
The Globe and Mail
March 15, 2020 Sunday
Copyright 2020 The Globe and Mail
Byline: Jane Smith
Section: Business; Pg. B1
Length: 645 words




Crude futures fell sharply. Analysts cite collapsing demand.

Reporting contributed by staff
Language: ENGLISH
Classification: oil; markets
`

func TestNexisAdapterParse(t *testing.T) {
	fields, err := NexisAdapter{}.Parse(sampleArticle)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if fields.Title != "Oil prices slump as demand craters" {
		t.Errorf("Title = %q", fields.Title)
	}
	if fields.Publisher != "The Globe and Mail" {
		t.Errorf("Publisher = %q", fields.Publisher)
	}
	if fields.Date != "2020-03-15" {
		t.Errorf("Date = %q, want 2020-03-15", fields.Date)
	}
	if fields.Author == nil || *fields.Author != "Jane Smith" {
		t.Errorf("Author = %v, want Jane Smith", fields.Author)
	}

	// The narrative keeps its text up to the first line-ending word run
	// (the footer), with embedded newlines removed.
	wantBody := "Crude futures fell sharply. Analysts cite collapsing demand.Reporting contributed by "
	if fields.Body != wantBody {
		t.Errorf("Body = %q, want %q", fields.Body, wantBody)
	}
}

func TestNexisAdapterWordCountCountsEmptyTokens(t *testing.T) {
	// Double spaces yield empty tokens and those count, to stay
	// compatible with word counts already stored in the corpus.
	raw := strings.ReplaceAll(sampleArticle, "fell sharply", "fell  sharply")

	fields, err := NexisAdapter{}.Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := len(strings.Split(fields.Body, " "))
	if fields.WordCount != want {
		t.Errorf("WordCount = %d, want %d", fields.WordCount, want)
	}

	base, err := NexisAdapter{}.Parse(sampleArticle)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if fields.WordCount != base.WordCount+1 {
		t.Errorf("doubled space should add one empty token: got %d, base %d",
			fields.WordCount, base.WordCount)
	}
}

func TestNexisAdapterNoAuthor(t *testing.T) {
	raw := strings.Replace(sampleArticle, "Byline: Jane Smith\n", "", 1)

	fields, err := NexisAdapter{}.Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if fields.Author != nil {
		t.Errorf("Author = %q, want nil", *fields.Author)
	}
}

func TestNexisAdapterCorrectionMarker(t *testing.T) {
	// "correction appended" takes priority over "copyright" as the
	// metadata terminator.
	raw := strings.Replace(sampleArticle,
		"Copyright 2020 The Globe and Mail\n",
		" Correction Appended\nCopyright 2020 The Globe and Mail\n", 1)

	fields, err := NexisAdapter{}.Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if fields.Date != "2020-03-15" {
		t.Errorf("Date = %q, want 2020-03-15", fields.Date)
	}
}

func TestNexisAdapterFailureStages(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		stage string
	}{
		{
			name:  "no blank run",
			raw:   "Title\nPublisher\nMarch 15, 2020\nCopyright 2020\nBody here\nLanguage: ENGLISH",
			stage: "header",
		},
		{
			name:  "no metadata marker",
			raw:   "Title\nPublisher\nMarch 15, 2020\n\n\n\n\nBody here\nLanguage: ENGLISH",
			stage: "metadata",
		},
		{
			name:  "date missing month",
			raw:   "Title\nPublisher\n15, 2020\nCopyright 2020\n\n\n\n\nBody here\nLanguage: ENGLISH",
			stage: "date",
		},
		{
			name:  "no trailer",
			raw:   "Title\nPublisher\nMarch 15, 2020\nCopyright 2020\n\n\n\n\nBody with no trailer at all",
			stage: "body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NexisAdapter{}.Parse(tt.raw)
			if err == nil {
				t.Fatal("Parse succeeded, want failure")
			}

			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error %v is not a ParseError", err)
			}
			if pe.Stage != tt.stage {
				t.Errorf("Stage = %q, want %q", pe.Stage, tt.stage)
			}
			if !errors.Is(err, internalerr.ErrMalformedInput) {
				t.Errorf("error does not wrap ErrMalformedInput")
			}
		})
	}
}
