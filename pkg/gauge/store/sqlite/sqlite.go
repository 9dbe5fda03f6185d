package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/tonegauge/tonegauge/pkg/gauge/internalerr"
	"github.com/tonegauge/tonegauge/pkg/gauge/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// Open opens (creating if necessary) a SQLite-backed corpus store.
// The ARTICLES table is created on first use.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open corpus store %s: %w: %v", path, internalerr.ErrStoreUnavailable, err)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init corpus schema: %w: %v", internalerr.ErrStoreUnavailable, err)
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates the ARTICLES table if it doesn't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS ARTICLES (
	ID INTEGER PRIMARY KEY AUTOINCREMENT,
	TITLE TEXT NOT NULL,
	DATE TEXT NOT NULL,
	PUBLISHER TEXT NOT NULL,
	AUTHOR TEXT,
	BODY TEXT NOT NULL,
	WORDCOUNT INTEGER NOT NULL
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// InsertArticle appends one article row and returns the auto-assigned ID.
// Each insert is its own implicit transaction, so an interrupted batch
// leaves only whole rows behind.
func (s *sqliteStore) InsertArticle(ctx context.Context, a store.Article) (int64, error) {
	const stmt = `
INSERT INTO ARTICLES (TITLE, DATE, PUBLISHER, AUTHOR, BODY, WORDCOUNT)
VALUES (?, ?, ?, ?, ?, ?);
`
	res, err := s.db.ExecContext(ctx, stmt,
		a.Title, a.Date, a.Publisher, nullable(a.Author), a.Body, a.WordCount)
	if err != nil {
		return 0, fmt.Errorf("insert article: %w", err)
	}
	return res.LastInsertId()
}

// HasDuplicate checks for an existing row matching the duplicate key.
// AUTHOR uses IS rather than = so that two NULL authors compare equal.
func (s *sqliteStore) HasDuplicate(ctx context.Context, a store.Article) (bool, error) {
	const query = `
SELECT ID FROM ARTICLES
WHERE TITLE = ? AND DATE = ? AND PUBLISHER = ? AND AUTHOR IS ? AND WORDCOUNT = ?
LIMIT 1;
`
	var id int64
	err := s.db.QueryRowContext(ctx, query,
		a.Title, a.Date, a.Publisher, nullable(a.Author), a.WordCount).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("duplicate lookup: %w", err)
	}
	return true, nil
}

// ArticleDates returns the DATE column for all stored articles
func (s *sqliteStore) ArticleDates(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DATE FROM ARTICLES ORDER BY ID`)
	if err != nil {
		return nil, fmt.Errorf("query dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// DatedBodies returns (DATE, BODY) for all stored articles
func (s *sqliteStore) DatedBodies(ctx context.Context) ([]store.DatedBody, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DATE, BODY FROM ARTICLES ORDER BY ID`)
	if err != nil {
		return nil, fmt.Errorf("query bodies: %w", err)
	}
	defer rows.Close()

	var result []store.DatedBody
	for rows.Next() {
		var db store.DatedBody
		if err := rows.Scan(&db.Date, &db.Body); err != nil {
			return nil, err
		}
		result = append(result, db)
	}
	return result, rows.Err()
}

// CountArticles returns the total number of stored articles
func (s *sqliteStore) CountArticles(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ARTICLES`).Scan(&total)
	return total, err
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
