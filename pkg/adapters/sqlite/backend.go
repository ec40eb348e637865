// Package sqlite stores values in a key-value table of a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/introspection"
	_ "modernc.org/sqlite"

	"github.com/aretw0/jot/pkg/core"
)

// DefaultTable is the table holding every key written by jot.
const DefaultTable = "jot_kv"

// Config holds the configuration for the SQLite backend.
type Config struct {
	// Path of the database file. ":memory:" keeps everything in memory.
	Path  string
	Table string
	// Quota caps the size of a single value in bytes. Zero means unlimited.
	Quota  int
	Logger *slog.Logger
}

// Backend implements core.Backend on SQLite.
type Backend struct {
	config Config
	db     *sql.DB
}

// Open opens (creating if needed) the database at config.Path.
func Open(ctx context.Context, config Config) (*Backend, error) {
	if config.Table == "" {
		config.Table = DefaultTable
	}
	if config.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(config.Path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	b := &Backend{config: config, db: db}
	if err := b.initialize(ctx); err != nil {
		db.Close()
		return nil, err
	}

	if config.Logger != nil {
		config.Logger.Debug("sqlite database opened", "path", config.Path, "table", config.Table)
	}
	return b, nil
}

func (b *Backend) initialize(ctx context.Context) error {
	schema := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %q (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`, b.config.Table)

	if _, err := b.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create table %q: %w", b.config.Table, err)
	}
	return nil
}

// Get reads the value stored under key.
func (b *Backend) Get(ctx context.Context, key string) (string, bool, error) {
	query := fmt.Sprintf(`SELECT value FROM %q WHERE key = ?`, b.config.Table)

	var value string
	err := b.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return value, true, nil
}

// Set overwrites the value stored under key.
func (b *Backend) Set(ctx context.Context, key, value string) error {
	if b.config.Quota > 0 && len(value) > b.config.Quota {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", core.ErrQuotaExceeded, len(value), b.config.Quota)
	}

	query := fmt.Sprintf(`
	INSERT INTO %q (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(key) DO UPDATE SET
		value = excluded.value,
		updated_at = excluded.updated_at`, b.config.Table)

	if _, err := b.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

// Remove deletes the value stored under key.
func (b *Backend) Remove(ctx context.Context, key string) error {
	query := fmt.Sprintf(`DELETE FROM %q WHERE key = ?`, b.config.Table)
	if _, err := b.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to remove %q: %w", key, err)
	}
	return nil
}

// Close closes the database.
func (b *Backend) Close() error {
	return b.db.Close()
}

// BackendState exposes internal state for observability.
type BackendState struct {
	Path  string `json:"path"`
	Table string `json:"table"`
	Quota int    `json:"quota,omitempty"`
	Keys  int    `json:"keys"`
}

// State implements introspection.Introspectable.
func (b *Backend) State() any {
	st := BackendState{
		Path:  b.config.Path,
		Table: b.config.Table,
		Quota: b.config.Quota,
		Keys:  -1,
	}
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %q`, b.config.Table)
	_ = b.db.QueryRow(query).Scan(&st.Keys)
	return st
}

// ComponentType implements introspection.Component.
func (b *Backend) ComponentType() string {
	return "sqlite"
}

var (
	_ core.Backend                 = (*Backend)(nil)
	_ introspection.Introspectable = (*Backend)(nil)
	_ introspection.Component      = (*Backend)(nil)
)
