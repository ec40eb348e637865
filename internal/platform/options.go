package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/jot/pkg/core"
)

// options holds the internal configuration for a jot store.
type options struct {
	backend      core.Backend
	logger       *slog.Logger
	adapter      string
	key          string
	codec        string
	systemDir    string
	quota        int
	rollback     bool
	readOnly     bool
	forceTemp    bool
	devSafety    bool
	eventBuffer  int
	recentWindow time.Duration
	clock        func() time.Time
	errorHandler func(error)
}

// Option defines a functional option for configuring jot.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter:   "fs",
		key:       core.DefaultKey,
		codec:     "json",
		devSafety: true,
	}
}

// WithAdapter selects the storage adapter by name: "fs" (default), "bolt",
// "sqlite" or "memory".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithBackend injects a custom backend (e.g. a mock). The adapter
// selection is skipped.
func WithBackend(b core.Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithLogger sets the logger for the store and its adapter.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithKey sets the key the collection is stored under.
func WithKey(key string) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithCodec selects the collection encoding by name ("json" or "yaml").
func WithCodec(name string) Option {
	return func(o *options) {
		o.codec = name
	}
}

// WithSystemDir sets the hidden directory holding data files (default ".jot").
func WithSystemDir(name string) Option {
	return func(o *options) {
		o.systemDir = name
	}
}

// WithQuota caps the stored size of the collection in bytes.
func WithQuota(bytes int) Option {
	return func(o *options) {
		o.quota = bytes
	}
}

// WithRollback restores the previous collection when a write fails instead
// of keeping the unsaved change in memory.
func WithRollback(enabled bool) Option {
	return func(o *options) {
		o.rollback = enabled
	}
}

// WithReadOnly rejects every mutation with core.ErrReadOnly. Read-only
// stores also bypass the dev sandbox.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithClock replaces the time source used for timestamps and the recent
// filter.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.clock = now
	}
}

// WithEventBuffer sets the buffer of each subscriber channel.
// Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}

// WithRecentWindow sets how far back the "recent" filter reaches.
func WithRecentWindow(d time.Duration) Option {
	return func(o *options) {
		o.recentWindow = d
	}
}

// WithWatcherErrorHandler registers a callback for errors raised while
// watching the backend for external changes.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}

// WithForceTemp forces the data into a temporary directory.
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.forceTemp = force
	}
}

// WithDevSafety controls the sandbox applied under `go run` and `go test`:
// when enabled (the default) the data is redirected to a temporary
// directory unless the path is already inside one.
//
// CAUTION: only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.devSafety = enabled
	}
}
