package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"craftmanager/internal/ports"
)

const schemaVersion = "1"

// TagStore implements ports.TagStore using SQLite
type TagStore struct {
	db *sql.DB
}

// Ensure TagStore implements ports.TagStore
var _ ports.TagStore = (*TagStore)(nil)

// NewTagStore creates a new SQLite tag store
func NewTagStore() *TagStore {
	return &TagStore{}
}

// Open opens or creates the database at dbPath. The path is used as
// given; config.Load has already expanded ~.
func (s *TagStore) Open(dbPath string) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create tag store directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS tags (
			ref_key TEXT NOT NULL,
			tag TEXT NOT NULL,
			created_at INTEGER NOT NULL DEFAULT (strftime('%s','now')),
			PRIMARY KEY (ref_key, tag)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_tags_tag ON tags(tag);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	return nil
}

// Close closes the database connection
func (s *TagStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Tags returns the tags of a craft, sorted
func (s *TagStore) Tags(ctx context.Context, key string) ([]string, error) {
	return s.queryStrings(ctx, `SELECT tag FROM tags WHERE ref_key = ? ORDER BY tag`, key)
}

// AllTags returns every distinct tag, sorted
func (s *TagStore) AllTags(ctx context.Context) ([]string, error) {
	return s.queryStrings(ctx, `SELECT DISTINCT tag FROM tags ORDER BY tag`)
}

// Keys returns every tagged reference key starting with prefix
func (s *TagStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	return s.queryStrings(ctx, `
		SELECT DISTINCT ref_key FROM tags
		WHERE substr(ref_key, 1, length(?)) = ?
		ORDER BY ref_key
	`, prefix, prefix)
}

// AddTag assigns tag to key. Adding an existing tag is a no-op.
func (s *TagStore) AddTag(ctx context.Context, key, tag string) error {
	_, err := s.db.ExecContext(ctx, insertTag, key, tag)
	return err
}

// RemoveTag removes tag from key. Removing a missing tag is a no-op.
func (s *TagStore) RemoveTag(ctx context.Context, key, tag string) error {
	_, err := s.db.ExecContext(ctx, deleteTag, key, tag)
	return err
}

// BeginTx starts a new transaction
func (s *TagStore) BeginTx(ctx context.Context) (ports.TagTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &tagTx{tx: tx}, nil
}

func (s *TagStore) queryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	return out, rows.Err()
}
