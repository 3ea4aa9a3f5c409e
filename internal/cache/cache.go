// Package cache stores resolved citations in a local SQLite database so
// repeat resolutions skip the network.
package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS citations (
  format     TEXT NOT NULL,
  id         TEXT NOT NULL,
  citation   TEXT NOT NULL,
  fetched_at TEXT NOT NULL,
  PRIMARY KEY (format, id)
)`

// Cache is a citation cache keyed by (format, normalized identifier).
type Cache struct {
	db *sql.DB
}

// Open opens (and initializes if needed) a cache database at path.
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached citation for (format, id), if present.
func (c *Cache) Get(format, id string) (string, bool, error) {
	var citation string
	err := c.db.QueryRow(
		`SELECT citation FROM citations WHERE format = ? AND id = ?`,
		format, id).Scan(&citation)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying cache: %w", err)
	}
	return citation, true, nil
}

// Put stores a citation for (format, id), replacing any previous value.
func (c *Cache) Put(format, id, citation string) error {
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO citations (format, id, citation, fetched_at) VALUES (?, ?, ?, ?)`,
		format, id, citation, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Count returns the number of cached citations.
func (c *Cache) Count() (int, error) {
	var n int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM citations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting cache entries: %w", err)
	}
	return n, nil
}

// Clear removes all cached citations.
func (c *Cache) Clear() error {
	if _, err := c.db.Exec(`DELETE FROM citations`); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	return nil
}
