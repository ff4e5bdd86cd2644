package readinglist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store is the user-keyed reading-list storage the resolver reads from.
type Store interface {
	List(ctx context.Context, userID string) ([]Entry, error)
	Put(ctx context.Context, userID string, entries []Entry) error
	Close() error
}

const listSchema = `
CREATE TABLE IF NOT EXISTS reading_list (
	user_id TEXT NOT NULL,
	title TEXT NOT NULL,
	author TEXT NOT NULL DEFAULT '',
	isbn TEXT NOT NULL DEFAULT '',
	isbn13 TEXT NOT NULL DEFAULT '',
	exclusive_shelf TEXT NOT NULL DEFAULT '',
	my_rating REAL NOT NULL DEFAULT 0,
	date_read TEXT NOT NULL DEFAULT '',
	date_added TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (user_id, title, author)
);

CREATE INDEX IF NOT EXISTS idx_reading_list_user ON reading_list(user_id);
`

// SQLiteStore keeps reading lists in a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (and if needed initializes) the reading-list
// database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open reading list database: %w", err)
	}

	if err := db.Ping(); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to connect to reading list database: %w", err), closeErr)
	}

	if _, err := db.Exec(listSchema); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to create reading list table: %w", err), closeErr)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// List returns the user's reading-list snapshot.
func (s *SQLiteStore) List(ctx context.Context, userID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT title, author, isbn, isbn13, exclusive_shelf, my_rating, date_read, date_added
		FROM reading_list
		WHERE user_id = ?
		ORDER BY date_added, title
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reading list: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Title, &e.Author, &e.ISBN, &e.ISBN13,
			&e.ExclusiveShelf, &e.MyRating, &e.DateRead, &e.DateAdded); err != nil {
			return nil, fmt.Errorf("failed to scan reading list row: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Put upserts entries into the user's reading list.
func (s *SQLiteStore) Put(ctx context.Context, userID string, entries []Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO reading_list
				(user_id, title, author, isbn, isbn13, exclusive_shelf, my_rating, date_read, date_added)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, userID, e.Title, e.Author, e.ISBN, e.ISBN13,
			e.ExclusiveShelf, e.MyRating, e.DateRead, e.DateAdded); err != nil {
			return fmt.Errorf("failed to upsert reading list entry: %w", err)
		}
	}

	return tx.Commit()
}
