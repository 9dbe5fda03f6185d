package normalize

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oklog/ulid/v2"

	"github.com/tonegauge/tonegauge/pkg/gauge/store"
)

// Batch normalizes raw article files into the corpus store.
type Batch struct {
	store   store.Store
	adapter FormatAdapter
	entropy *ulid.MonotonicEntropy
}

// NewBatch creates a batch processor over the given store and format adapter.
func NewBatch(s store.Store, adapter FormatAdapter) *Batch {
	return &Batch{
		store:   s,
		adapter: adapter,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// FileFailure records one skipped file with its failing stage.
type FileFailure struct {
	File  string
	Stage string
	Err   string
}

// Report summarizes one normalization run.
type Report struct {
	RunID      string
	Processed  int // files attempted
	Inserted   int // new corpus rows
	Duplicates int // candidates discarded by the duplicate check
	Failures   []FileFailure
}

// DuplicatePercent returns duplicates as a percentage of processed files.
func (r *Report) DuplicatePercent() float64 {
	if r.Processed == 0 {
		return 0
	}
	return 100 * float64(r.Duplicates) / float64(r.Processed)
}

// Run processes files in the given order. Per-file read and parse
// failures are recorded in the report and skipped; only a store error
// stops the run.
func (b *Batch) Run(ctx context.Context, files []string) (*Report, error) {
	report := &Report{
		RunID: ulid.MustNew(ulid.Now(), b.entropy).String(),
	}

	for _, path := range files {
		report.Processed++

		content, err := os.ReadFile(path)
		if err != nil {
			report.Failures = append(report.Failures, FileFailure{
				File: filepath.Base(path), Stage: "read", Err: err.Error(),
			})
			continue
		}

		fields, err := b.adapter.Parse(string(content))
		if err != nil {
			report.Failures = append(report.Failures, failureFor(path, err))
			continue
		}

		candidate := store.Article{
			Title:     fields.Title,
			Date:      fields.Date,
			Publisher: fields.Publisher,
			Author:    fields.Author,
			Body:      fields.Body,
			WordCount: fields.WordCount,
		}

		dup, err := b.store.HasDuplicate(ctx, candidate)
		if err != nil {
			return report, fmt.Errorf("duplicate check for %s: %w", filepath.Base(path), err)
		}
		if dup {
			report.Duplicates++
			continue
		}

		if _, err := b.store.InsertArticle(ctx, candidate); err != nil {
			return report, fmt.Errorf("insert %s: %w", filepath.Base(path), err)
		}
		report.Inserted++
	}

	return report, nil
}

func failureFor(path string, err error) FileFailure {
	var pe *ParseError
	stage := "parse"
	if errors.As(err, &pe) {
		stage = pe.Stage
	}
	return FileFailure{File: filepath.Base(path), Stage: stage, Err: err.Error()}
}
