package jot

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/jot/internal/platform"
	"github.com/aretw0/jot/pkg/core"
)

// Version of the library, set at build time by the CLI release.
var Version = "dev"

// --- Types ---

// Note is a public alias for the core note.
type Note = core.Note

// Draft is a public alias for the editable fields of a note.
type Draft = core.Draft

// Store is a public alias for the note store.
type Store = core.Store

// ListOptions is a public alias for the list query.
type ListOptions = core.ListOptions

// --- Configuration ---

// Option defines a functional option for configuring jot.
type Option = platform.Option

// WithAdapter selects the storage adapter: "fs" (default), "bolt", "sqlite" or "memory".
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithBackend injects a custom backend.
func WithBackend(b core.Backend) Option {
	return platform.WithBackend(b)
}

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithKey sets the key the collection is stored under.
func WithKey(key string) Option {
	return platform.WithKey(key)
}

// WithCodec selects the collection encoding ("json" or "yaml").
func WithCodec(name string) Option {
	return platform.WithCodec(name)
}

// WithSystemDir sets the hidden directory name (e.g. ".jot").
func WithSystemDir(name string) Option {
	return platform.WithSystemDir(name)
}

// WithQuota caps the stored size of the collection in bytes.
func WithQuota(bytes int) Option {
	return platform.WithQuota(bytes)
}

// WithRollback restores the previous collection when a write fails.
func WithRollback(enabled bool) Option {
	return platform.WithRollback(enabled)
}

// WithReadOnly rejects every mutation.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return platform.WithClock(now)
}

// WithEventBuffer sets the buffer of each subscriber channel.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithRecentWindow sets how far back the "recent" filter reaches.
func WithRecentWindow(d time.Duration) Option {
	return platform.WithRecentWindow(d)
}

// WithWatcherErrorHandler registers a callback for watcher errors.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithForceTemp forces the data into a temporary directory.
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety controls the sandbox applied under `go run`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// --- Factory ---

// New creates and loads a note store.
func New(ctx context.Context, uri string, opts ...Option) (*core.Store, error) {
	return platform.New(ctx, uri, opts...)
}

// Init builds the backend selected by opts without loading a store.
func Init(ctx context.Context, uri string, opts ...Option) (core.Backend, error) {
	return platform.Init(ctx, uri, opts...)
}

// --- Utils ---

// FindRoot looks upwards from startDir for a folder holding a ".jot" directory.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir, "")
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}
