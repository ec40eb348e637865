package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// BackendState exposes internal state for observability.
type BackendState struct {
	Path      string     `json:"path"`
	SystemDir string     `json:"system_dir"`
	Ext       string     `json:"ext"`
	Quota     int        `json:"quota,omitempty"`
	Watchers  int        `json:"watchers"`
	LastWrite *time.Time `json:"last_write,omitempty"`
}

// State implements introspection.Introspectable.
func (b *Backend) State() any {
	b.mu.Lock()
	defer b.mu.Unlock()

	return BackendState{
		Path:      b.config.Path,
		SystemDir: b.config.SystemDir,
		Ext:       b.config.Ext,
		Quota:     b.config.Quota,
		Watchers:  b.watchers,
		LastWrite: b.lastWrite,
	}
}

// ComponentType implements introspection.Component.
func (b *Backend) ComponentType() string {
	return "fs"
}

var _ introspection.Introspectable = (*Backend)(nil)
var _ introspection.Component = (*Backend)(nil)

func (b *Backend) trackWatcher(delta int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.watchers += delta
}
