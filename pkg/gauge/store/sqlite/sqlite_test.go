package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/tonegauge/tonegauge/pkg/gauge/store"
)

func openTestStore(t *testing.T) store.Store {
	t.Helper()
	ctx := context.Background()
	s, err := Open(ctx, filepath.Join(t.TempDir(), "articles.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func strptr(s string) *string { return &s }

func testArticle() store.Article {
	return store.Article{
		Title:     "Oil prices slump as demand craters",
		Date:      "2020-03-15",
		Publisher: "The Globe and Mail",
		Author:    strptr("Jane Smith"),
		Body:      "Crude futures fell sharply.",
		WordCount: 4,
	}
}

func TestInsertAndCount(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	id, err := s.InsertArticle(ctx, testArticle())
	if err != nil {
		t.Fatalf("InsertArticle: %v", err)
	}
	if id != 1 {
		t.Errorf("first insert ID = %d, want 1", id)
	}

	a2 := testArticle()
	a2.Title = "Markets rebound"
	if _, err := s.InsertArticle(ctx, a2); err != nil {
		t.Fatalf("InsertArticle: %v", err)
	}

	total, err := s.CountArticles(ctx)
	if err != nil {
		t.Fatalf("CountArticles: %v", err)
	}
	if total != 2 {
		t.Errorf("CountArticles = %d, want 2", total)
	}
}

func TestHasDuplicate(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	a := testArticle()
	if _, err := s.InsertArticle(ctx, a); err != nil {
		t.Fatalf("InsertArticle: %v", err)
	}

	dup, err := s.HasDuplicate(ctx, a)
	if err != nil {
		t.Fatalf("HasDuplicate: %v", err)
	}
	if !dup {
		t.Error("HasDuplicate = false for identical key")
	}

	// Body is not part of the duplicate key.
	reworded := a
	reworded.Body = "Entirely different text."
	dup, err = s.HasDuplicate(ctx, reworded)
	if err != nil {
		t.Fatalf("HasDuplicate: %v", err)
	}
	if !dup {
		t.Error("HasDuplicate = false when only the body differs")
	}

	changed := a
	changed.WordCount = 99
	dup, err = s.HasDuplicate(ctx, changed)
	if err != nil {
		t.Fatalf("HasDuplicate: %v", err)
	}
	if dup {
		t.Error("HasDuplicate = true for a different word count")
	}
}

func TestHasDuplicateNullAuthor(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	a := testArticle()
	a.Author = nil
	if _, err := s.InsertArticle(ctx, a); err != nil {
		t.Fatalf("InsertArticle: %v", err)
	}

	dup, err := s.HasDuplicate(ctx, a)
	if err != nil {
		t.Fatalf("HasDuplicate: %v", err)
	}
	if !dup {
		t.Error("HasDuplicate = false for matching row with NULL author")
	}

	authored := a
	authored.Author = strptr("Jane Smith")
	dup, err = s.HasDuplicate(ctx, authored)
	if err != nil {
		t.Fatalf("HasDuplicate: %v", err)
	}
	if dup {
		t.Error("HasDuplicate = true across NULL and non-NULL authors")
	}
}

func TestArticleDatesAndBodies(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	a := testArticle()
	b := testArticle()
	b.Date = "2020-04-01"
	b.Body = "Second body."
	for _, art := range []store.Article{a, b} {
		if _, err := s.InsertArticle(ctx, art); err != nil {
			t.Fatalf("InsertArticle: %v", err)
		}
	}

	dates, err := s.ArticleDates(ctx)
	if err != nil {
		t.Fatalf("ArticleDates: %v", err)
	}
	if len(dates) != 2 || dates[0] != "2020-03-15" || dates[1] != "2020-04-01" {
		t.Errorf("ArticleDates = %v, want insertion order dates", dates)
	}

	bodies, err := s.DatedBodies(ctx)
	if err != nil {
		t.Fatalf("DatedBodies: %v", err)
	}
	if len(bodies) != 2 {
		t.Fatalf("DatedBodies returned %d rows, want 2", len(bodies))
	}
	if bodies[1].Date != "2020-04-01" || bodies[1].Body != "Second body." {
		t.Errorf("second row = %+v, want 2020-04-01/Second body.", bodies[1])
	}
}

func TestReopenPersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "articles.db")

	s, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := s.InsertArticle(ctx, testArticle()); err != nil {
		t.Fatalf("InsertArticle: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	total, err := s.CountArticles(ctx)
	if err != nil {
		t.Fatalf("CountArticles: %v", err)
	}
	if total != 1 {
		t.Errorf("CountArticles after reopen = %d, want 1", total)
	}
}
