// Package bolt stores values in a single bbolt database file.
package bolt

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/aretw0/introspection"
	bolt "go.etcd.io/bbolt"

	"github.com/aretw0/jot/pkg/core"
)

const (
	// DefaultBucket holds every key written by jot.
	DefaultBucket = "jot"
	// DefaultTimeout bounds how long Open waits for the file lock held by
	// another process.
	DefaultTimeout = time.Second
)

// Config holds the configuration for the bbolt backend.
type Config struct {
	Path    string
	Bucket  string
	Timeout time.Duration
	// Quota caps the size of a single value in bytes. Zero means unlimited.
	Quota  int
	Logger *slog.Logger
}

// Backend implements core.Backend on a bbolt database.
type Backend struct {
	config Config
	db     *bolt.DB
	writes atomic.Int64
}

// Open opens (creating if needed) the database at config.Path.
func Open(config Config) (*Backend, error) {
	if config.Bucket == "" {
		config.Bucket = DefaultBucket
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if err := os.MkdirAll(filepath.Dir(config.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := bolt.Open(config.Path, 0600, &bolt.Options{Timeout: config.Timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", config.Path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(config.Bucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket %q: %w", config.Bucket, err)
	}

	if config.Logger != nil {
		config.Logger.Debug("bolt database opened", "path", config.Path, "bucket", config.Bucket)
	}
	return &Backend{config: config, db: db}, nil
}

// Get reads the value stored under key.
func (b *Backend) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	var (
		value string
		ok    bool
	)
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(b.config.Bucket)).Get([]byte(key))
		if v != nil {
			// v is only valid inside the transaction.
			value, ok = string(v), true
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return value, ok, nil
}

// Set overwrites the value stored under key.
func (b *Backend) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return fmt.Errorf("invalid key %q", key)
	}
	if b.config.Quota > 0 && len(value) > b.config.Quota {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", core.ErrQuotaExceeded, len(value), b.config.Quota)
	}

	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(b.config.Bucket)).Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	b.writes.Add(1)
	return nil
}

// Remove deletes the value stored under key.
func (b *Backend) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(b.config.Bucket)).Delete([]byte(key))
	})
}

// Keys lists the stored keys in byte order.
func (b *Backend) Keys() ([]string, error) {
	var keys []string
	err := b.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(b.config.Bucket)).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, err
}

// Close releases the database file lock.
func (b *Backend) Close() error {
	return b.db.Close()
}

// BackendState exposes internal state for observability.
type BackendState struct {
	Path   string `json:"path"`
	Bucket string `json:"bucket"`
	Quota  int    `json:"quota,omitempty"`
	Writes int64  `json:"writes"`
}

// State implements introspection.Introspectable.
func (b *Backend) State() any {
	return BackendState{
		Path:   b.config.Path,
		Bucket: b.config.Bucket,
		Quota:  b.config.Quota,
		Writes: b.writes.Load(),
	}
}

// ComponentType implements introspection.Component.
func (b *Backend) ComponentType() string {
	return "bolt"
}

var (
	_ core.Backend                 = (*Backend)(nil)
	_ introspection.Introspectable = (*Backend)(nil)
	_ introspection.Component      = (*Backend)(nil)
)
