// Package memory provides an in-process key-value backend with the
// semantics of a browser's local storage, including an optional quota.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/aretw0/jot/pkg/core"
)

// Backend implements core.Backend in memory.
type Backend struct {
	mu     sync.RWMutex
	values map[string]string
	used   int
	quota  int
}

// New creates an empty backend. A quota > 0 caps the total size in bytes of
// all keys and values; writes beyond it fail with core.ErrQuotaExceeded.
func New(quota int) *Backend {
	return &Backend{
		values: make(map[string]string),
		quota:  quota,
	}
}

// Get implements core.Backend.
func (b *Backend) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	v, ok := b.values[key]
	return v, ok, nil
}

// Set implements core.Backend.
func (b *Backend) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	used := b.used
	if old, ok := b.values[key]; ok {
		used -= len(key) + len(old)
	}
	used += len(key) + len(value)

	if b.quota > 0 && used > b.quota {
		return fmt.Errorf("%w: %d of %d bytes", core.ErrQuotaExceeded, used, b.quota)
	}

	b.values[key] = value
	b.used = used
	return nil
}

// Remove deletes key. Removing an absent key is a no-op.
func (b *Backend) Remove(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if old, ok := b.values[key]; ok {
		b.used -= len(key) + len(old)
		delete(b.values, key)
	}
}

// Used returns the number of bytes currently counted against the quota.
func (b *Backend) Used() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.used
}

// BackendState exposes internal state for observability.
type BackendState struct {
	Keys  int `json:"keys"`
	Used  int `json:"used"`
	Quota int `json:"quota"`
}

// State implements introspection.Introspectable.
func (b *Backend) State() any {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return BackendState{Keys: len(b.values), Used: b.used, Quota: b.quota}
}

// ComponentType implements introspection.Component.
func (b *Backend) ComponentType() string {
	return "memory"
}
