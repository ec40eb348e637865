// Package fs stores values as files under a system directory of a notes
// folder, one file per key.
package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/jot/pkg/core"
)

const (
	// DefaultSystemDir is the folder, relative to Path, holding the data files.
	DefaultSystemDir = ".jot"
	// DefaultExt is the extension of a data file.
	DefaultExt = ".json"
)

// Config holds the configuration for the filesystem backend.
type Config struct {
	Path      string
	SystemDir string
	Ext       string
	// Quota caps the size of a single value in bytes. Zero means unlimited.
	Quota  int
	Logger *slog.Logger
	// ErrorHandler receives errors raised by background watchers.
	ErrorHandler func(error)
}

// Backend implements core.Backend and core.Watchable on the local filesystem.
type Backend struct {
	config Config

	mu        sync.Mutex
	watchers  int
	lastWrite *time.Time
}

// New creates a filesystem backend. Nothing is touched on disk until the
// first write.
func New(config Config) *Backend {
	if config.SystemDir == "" {
		config.SystemDir = DefaultSystemDir
	}
	if config.Ext == "" {
		config.Ext = DefaultExt
	}
	if !strings.HasPrefix(config.Ext, ".") {
		config.Ext = "." + config.Ext
	}
	return &Backend{config: config}
}

// Dir returns the directory holding the data files.
func (b *Backend) Dir() string {
	return filepath.Join(b.config.Path, b.config.SystemDir)
}

// Path returns the file a key is stored in.
func (b *Backend) Path(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(b.Dir(), key+b.config.Ext), nil
}

// Get reads the value stored under key.
func (b *Backend) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	path, err := b.Path(key)
	if err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), true, nil
}

// Set writes value under key atomically, creating the system directory on
// first use.
func (b *Backend) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := b.Path(key)
	if err != nil {
		return err
	}
	if b.config.Quota > 0 && len(value) > b.config.Quota {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", core.ErrQuotaExceeded, len(value), b.config.Quota)
	}

	if err := os.MkdirAll(b.Dir(), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", b.Dir(), err)
	}
	if err := writeFileAtomic(path, []byte(value), 0644); err != nil {
		return err
	}

	now := time.Now()
	b.mu.Lock()
	b.lastWrite = &now
	b.mu.Unlock()

	if b.config.Logger != nil {
		b.config.Logger.Debug("value written", "path", path, "bytes", len(value))
	}
	return nil
}

// Remove deletes the value stored under key. Removing an absent key is not
// an error.
func (b *Backend) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := b.Path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}

var (
	_ core.Backend   = (*Backend)(nil)
	_ core.Watchable = (*Backend)(nil)
)
