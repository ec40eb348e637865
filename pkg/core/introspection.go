package core

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Key         string `json:"key"`
	Codec       string `json:"codec"`
	BackendType string `json:"backend_type"`
	Notes       int    `json:"notes"`
	Pinned      int    `json:"pinned"`
	Dirty       bool   `json:"dirty"`
	Rollback    bool   `json:"rollback"`
	ReadOnly    bool   `json:"read_only"`
	Subscribers int    `json:"subscribers"`
	LastError   string `json:"last_error,omitempty"`
	Recovered   string `json:"recovered,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	backendType := "unknown"
	if s.backend != nil {
		backendType = "backend"
		if comp, ok := s.backend.(introspection.Component); ok {
			backendType = comp.ComponentType()
		}
	}

	pinned := 0
	for _, n := range s.notes {
		if n.Pinned {
			pinned++
		}
	}

	st := StoreState{
		Key:         s.config.Key,
		Codec:       s.config.Codec.Name(),
		BackendType: backendType,
		Notes:       len(s.notes),
		Pinned:      pinned,
		Dirty:       s.dirty,
		Rollback:    s.config.Rollback,
		ReadOnly:    s.config.ReadOnly,
		Subscribers: len(s.subs),
	}
	if s.lastErr != nil {
		st.LastError = s.lastErr.Error()
	}
	if s.recovered != nil {
		st.Recovered = s.recovered.Error()
	}
	return st
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
