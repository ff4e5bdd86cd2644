// Package cache provides the two-tier resolution cache over SQLite.
// Merged books and ratings live in separate tables with different
// lifetimes; entries carry their expiry so the two TTL policies cannot
// bleed into each other.
package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const (
	// BookTTL is the lifetime of merged-book entries (30 days).
	BookTTL = 720 * time.Hour
	// RatingTTL is the lifetime of rating entries (90 days). Community
	// ratings drift far slower than bibliographic fields.
	RatingTTL = 2160 * time.Hour
)

// DB manages the SQLite connection backing both cache tiers.
type DB struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens the cache database at dbPath and creates the cache tables.
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	if err := db.Ping(); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to connect to cache database: %w", err), closeErr)
	}

	for _, schema := range allSchemas {
		if _, err := db.Exec(schema); err != nil {
			closeErr := db.Close()
			return nil, errors.Join(fmt.Errorf("failed to create cache table: %w", err), closeErr)
		}
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (c *DB) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Get retrieves a live cached value. Returns the data and whether the key
// was present and unexpired. Backend errors are returned so the caller can
// decide to fail open.
func (c *DB) Get(table, key string) (string, bool, error) {
	if err := validateTableName(table); err != nil {
		return "", false, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	query := fmt.Sprintf(`
		SELECT data, expires_at
		FROM %s
		WHERE cache_key = ?
	`, table)

	var data string
	var expiresAt time.Time
	err := c.db.QueryRow(query, key).Scan(&data, &expiresAt)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query cache: %w", err)
	}

	if time.Now().UTC().After(expiresAt) {
		return "", false, nil
	}

	return data, true, nil
}

// Set stores a value with the given TTL. Existing entries are replaced.
func (c *DB) Set(table, key, data string, ttl time.Duration) error {
	if err := validateTableName(table); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	query := fmt.Sprintf(`
		INSERT OR REPLACE INTO %s (cache_key, data, expires_at)
		VALUES (?, ?, ?)
	`, table)

	if _, err := c.db.Exec(query, key, data, time.Now().UTC().Add(ttl)); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}

	return nil
}

// ClearExpired removes entries past their expiry from the given table and
// returns the number of rows deleted.
func (c *DB) ClearExpired(table string) (int64, error) {
	if err := validateTableName(table); err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE expires_at < ?
	`, table)

	result, err := c.db.Exec(query, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to clear expired cache: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}

// ClearAll removes every entry from the given table and returns the number
// of rows deleted.
func (c *DB) ClearAll(table string) (int64, error) {
	if err := validateTableName(table); err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	result, err := c.db.Exec(fmt.Sprintf("DELETE FROM %s", table))
	if err != nil {
		return 0, fmt.Errorf("failed to clear cache: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}

// validateTableName checks the table against the whitelist to prevent
// SQL injection through interpolated table names.
func validateTableName(table string) error {
	if !validTableNames[table] {
		return fmt.Errorf("invalid cache table name: %s", table)
	}
	return nil
}
