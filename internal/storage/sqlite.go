// Package storage persists the price cache between runs using SQLite.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rishabhm/dealscope/internal/model"
	"github.com/rishabhm/dealscope/internal/resolver"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements resolver.Store backed by a local SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

const schema = `
CREATE TABLE IF NOT EXISTS price_cache (
	cache_key   TEXT PRIMARY KEY,
	price       REAL NOT NULL,
	source      TEXT NOT NULL,
	source_url  TEXT NOT NULL DEFAULT '',
	is_miss     INTEGER NOT NULL DEFAULT 0,
	resolved_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_price_cache_resolved_at ON price_cache(resolved_at);
`

// NewSQLiteStore opens (creating if necessary) a price cache database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("dbPath cannot be empty")
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db, dbPath: dbPath}, nil
}

// LoadEntries returns every persisted cache entry.
func (s *SQLiteStore) LoadEntries(ctx context.Context) (map[string]resolver.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT cache_key, price, source, source_url, is_miss FROM price_cache`)
	if err != nil {
		return nil, fmt.Errorf("failed to query price cache: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := make(map[string]resolver.Entry)
	for rows.Next() {
		var (
			key, source, sourceURL string
			price                  float64
			isMiss                 bool
		)
		if err := rows.Scan(&key, &price, &source, &sourceURL, &isMiss); err != nil {
			return nil, fmt.Errorf("failed to scan cache row: %w", err)
		}
		if isMiss {
			entries[key] = resolver.Entry{Miss: true}
			continue
		}
		entries[key] = resolver.Entry{
			Price: model.ResolvedPrice{
				Value:     price,
				Source:    model.PriceSource(source),
				SourceURL: sourceURL,
			},
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cache rows: %w", err)
	}

	return entries, nil
}

// SaveEntry upserts one cache entry.
func (s *SQLiteStore) SaveEntry(ctx context.Context, key string, e resolver.Entry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO price_cache (cache_key, price, source, source_url, is_miss, resolved_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET
			price = excluded.price,
			source = excluded.source,
			source_url = excluded.source_url,
			is_miss = excluded.is_miss,
			resolved_at = excluded.resolved_at`,
		key, e.Price.Value, string(e.Price.Source), e.Price.SourceURL, e.Miss, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save cache entry: %w", err)
	}
	return nil
}

// Clear removes all persisted entries.
func (s *SQLiteStore) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM price_cache`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear price cache: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// Count returns the number of persisted entries.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM price_cache`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count price cache: %w", err)
	}
	return n, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
