package memstore

import (
	"context"
	"sync"

	"github.com/tonegauge/tonegauge/pkg/gauge/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu       sync.RWMutex
	nextID   int64
	articles []store.Article
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{nextID: 1}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// InsertArticle appends an article with the next auto-assigned ID.
func (s *Store) InsertArticle(ctx context.Context, a store.Article) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.ID = s.nextID
	s.nextID++
	s.articles = append(s.articles, a)
	return a.ID, nil
}

// HasDuplicate reports whether the duplicate key of a matches a stored row.
func (s *Store) HasDuplicate(ctx context.Context, a store.Article) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, existing := range s.articles {
		if existing.Title == a.Title &&
			existing.Date == a.Date &&
			existing.Publisher == a.Publisher &&
			sameAuthor(existing.Author, a.Author) &&
			existing.WordCount == a.WordCount {
			return true, nil
		}
	}
	return false, nil
}

// ArticleDates returns the dates of all stored articles in insertion order.
func (s *Store) ArticleDates(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dates := make([]string, 0, len(s.articles))
	for _, a := range s.articles {
		dates = append(dates, a.Date)
	}
	return dates, nil
}

// DatedBodies returns (date, body) pairs in insertion order.
func (s *Store) DatedBodies(ctx context.Context) ([]store.DatedBody, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]store.DatedBody, 0, len(s.articles))
	for _, a := range s.articles {
		result = append(result, store.DatedBody{Date: a.Date, Body: a.Body})
	}
	return result, nil
}

// CountArticles returns the number of stored articles.
func (s *Store) CountArticles(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.articles)), nil
}

// Articles returns a copy of all stored articles, for test assertions.
func (s *Store) Articles() []store.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Article, len(s.articles))
	copy(out, s.articles)
	return out
}

func sameAuthor(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
