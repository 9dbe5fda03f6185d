package store

import (
	"context"
)

// Store is the interface for persisting and querying the article corpus
type Store interface {
	Close() error

	// InsertArticle appends a new article and returns its auto-assigned ID.
	InsertArticle(ctx context.Context, a Article) (int64, error)

	// HasDuplicate reports whether an article with the same
	// (title, date, publisher, author, word count) is already stored.
	HasDuplicate(ctx context.Context, a Article) (bool, error)

	// ArticleDates returns the DATE column of every stored article,
	// one entry per row, in insertion order.
	ArticleDates(ctx context.Context) ([]string, error)

	// DatedBodies returns (date, body) for every stored article,
	// in insertion order.
	DatedBodies(ctx context.Context) ([]DatedBody, error)

	// CountArticles returns the number of stored articles.
	CountArticles(ctx context.Context) (int64, error)
}

// Article represents one stored news article
type Article struct {
	ID        int64
	Title     string
	Date      string // YYYY-MM-DD
	Publisher string
	Author    *string // nil when the source carried no byline
	Body      string
	WordCount int
}

// DatedBody pairs an article's publication date with its body text
type DatedBody struct {
	Date string // YYYY-MM-DD
	Body string
}
