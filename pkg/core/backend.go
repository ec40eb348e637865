package core

import "context"

// Backend defines the contract of the key-value medium the Store persists to.
// Adhering to this interface keeps the core independent of the
// underlying storage mechanism (memory, filesystem, bbolt, SQLite).
type Backend interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set overwrites the value stored under key.
	// Backends with a size limit return ErrQuotaExceeded.
	Set(ctx context.Context, key, value string) error
}

// Watchable defines an interface for backends that can report changes
// made to a key by someone else (another process, another tab).
type Watchable interface {
	// Watch emits a signal every time the value under key may have changed.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context, key string) (<-chan struct{}, error)
}

// Codec converts the whole note collection to and from its stored form.
type Codec interface {
	Name() string
	Marshal(notes []Note) ([]byte, error)
	Unmarshal(data []byte) ([]Note, error)
}
