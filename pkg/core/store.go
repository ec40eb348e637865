package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/google/uuid"
)

const (
	// DefaultKey is the backend key holding the serialized collection.
	DefaultKey = "jot.notes"
	// DefaultRecentWindow is how far back FilterRecent looks.
	DefaultRecentWindow = 7 * 24 * time.Hour
	// DefaultEventBuffer is the capacity of each subscriber channel.
	DefaultEventBuffer = 100
)

// Config holds the configuration of a Store. Zero values select the defaults.
type Config struct {
	Key          string
	Codec        Codec
	Logger       *slog.Logger
	Clock        func() time.Time
	NewID        func() string
	RecentWindow time.Duration
	EventBuffer  int

	// Rollback restores the previous collection when a write fails.
	// When false (the default) a failed write leaves memory ahead of storage
	// until the next successful write.
	Rollback bool
	ReadOnly bool
}

// Store owns the note collection and keeps it in agreement with the backend.
// The whole collection is written under a single key after every mutation.
type Store struct {
	mu      sync.RWMutex
	backend Backend
	config  Config

	notes     []Note
	lastBlob  string
	lastStamp time.Time
	dirty     bool
	lastErr   error
	recovered error

	subs    map[int]chan Event
	nextSub int
}

// NewStore creates a Store on top of backend. Call Load before using it.
func NewStore(backend Backend, config Config) *Store {
	if config.Key == "" {
		config.Key = DefaultKey
	}
	if config.Codec == nil {
		config.Codec = JSONCodec{}
	}
	if config.Clock == nil {
		config.Clock = time.Now
	}
	if config.NewID == nil {
		config.NewID = uuid.NewString
	}
	if config.RecentWindow <= 0 {
		config.RecentWindow = DefaultRecentWindow
	}
	if config.EventBuffer <= 0 {
		config.EventBuffer = DefaultEventBuffer
	}
	return &Store{
		backend: backend,
		config:  config,
		notes:   []Note{},
		subs:    make(map[int]chan Event),
	}
}

// Load reads the collection from the backend.
// An absent or unparsable value yields an empty collection; a parse failure
// is logged and reported by State, never returned.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notes = []Note{}
	value, ok, err := s.backend.Get(ctx, s.config.Key)
	if err != nil {
		return fmt.Errorf("%w: failed to read %q: %w", ErrStorage, s.config.Key, err)
	}
	s.notes = s.decode(value, ok)
	s.lastBlob = value

	if s.config.Logger != nil {
		s.config.Logger.Debug("collection loaded", "key", s.config.Key, "notes", len(s.notes))
	}
	return nil
}

// Reload re-reads the backend and replaces the collection if the stored
// value differs from the last one seen by this store.
// It reports whether the collection was replaced.
func (s *Store) Reload(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok, err := s.backend.Get(ctx, s.config.Key)
	if err != nil {
		return false, fmt.Errorf("%w: failed to read %q: %w", ErrStorage, s.config.Key, err)
	}
	if value == s.lastBlob {
		return false, nil
	}

	s.notes = s.decode(value, ok)
	s.lastBlob = value
	s.dirty = false

	if s.config.Logger != nil {
		s.config.Logger.Info("collection reloaded from storage", "key", s.config.Key, "notes", len(s.notes))
	}
	s.publish(Event{Type: EventReload, Timestamp: s.config.Clock().Unix()})
	return true, nil
}

// Create adds a new note at the front of the collection and persists it.
func (s *Store) Create(ctx context.Context, d Draft) (Note, error) {
	d = d.normalize()
	if err := d.validate(); err != nil {
		return Note{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.config.ReadOnly {
		return Note{}, ErrReadOnly
	}

	id := s.config.NewID()
	for s.indexOf(id) >= 0 {
		id = s.config.NewID()
	}
	now := s.tick()
	n := Note{
		ID:        id,
		Title:     d.Title,
		Content:   d.Content,
		Tags:      d.Tags,
		Pinned:    d.Pinned,
		CreatedAt: now,
		UpdatedAt: now,
	}

	prev := s.notes
	s.notes = append([]Note{n}, s.notes...)
	if err := s.persist(ctx, prev, Event{Type: EventCreate, ID: id}); err != nil {
		if s.config.Rollback {
			return Note{}, err
		}
		return n.clone(), err
	}
	return n.clone(), nil
}

// Update replaces the editable fields of an existing note, preserving its
// ID and creation time.
func (s *Store) Update(ctx context.Context, id string, d Draft) (Note, error) {
	d = d.normalize()
	if err := d.validate(); err != nil {
		return Note{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.config.ReadOnly {
		return Note{}, ErrReadOnly
	}

	i := s.indexOf(id)
	if i < 0 {
		return Note{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return s.mutate(ctx, i, func(n *Note) {
		n.Title = d.Title
		n.Content = d.Content
		n.Tags = d.Tags
		n.Pinned = d.Pinned
	})
}

// Save is the editor's save action: an empty id creates a note, any other
// id updates it.
func (s *Store) Save(ctx context.Context, id string, d Draft) (Note, error) {
	if id == "" {
		return s.Create(ctx, d)
	}
	return s.Update(ctx, id, d)
}

// TogglePin flips the pinned flag of a note.
func (s *Store) TogglePin(ctx context.Context, id string) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.config.ReadOnly {
		return Note{}, ErrReadOnly
	}

	i := s.indexOf(id)
	if i < 0 {
		return Note{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return s.mutate(ctx, i, func(n *Note) {
		n.Pinned = !n.Pinned
	})
}

// Delete removes a note. Deleting an unknown id is a no-op and does not
// touch the backend.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.config.ReadOnly {
		return ErrReadOnly
	}

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}

	prev := s.notes
	s.notes = slices.Delete(slices.Clone(s.notes), i, i+1)
	return s.persist(ctx, prev, Event{Type: EventDelete, ID: id})
}

// Get returns a copy of the note with the given id.
func (s *Store) Get(id string) (Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return Note{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.notes[i].clone(), nil
}

// Len returns the number of notes in the collection.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

// Close releases the backend if it holds resources.
func (s *Store) Close() error {
	if c, ok := s.backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Subscribe returns a stream of collection events.
// Events are dropped for subscribers that fall behind; the channel is closed
// when ctx is done.
func (s *Store) Subscribe(ctx context.Context) <-chan Event {
	ch := make(chan Event, s.config.EventBuffer)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.mu.Unlock()

	context.AfterFunc(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
		close(ch)
	})
	return ch
}

// Watch follows changes made to the stored collection by someone else,
// reloading on each one. It returns the store's event stream.
func (s *Store) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.backend.(Watchable)
	if !ok {
		return nil, errors.New("backend does not support watching")
	}

	changes, err := w.Watch(ctx, s.config.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to watch %q: %w", s.config.Key, err)
	}

	events := s.Subscribe(ctx)
	lifecycle.Go(ctx, func(ctx context.Context) error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case _, ok := <-changes:
				if !ok {
					return nil
				}
				if _, err := s.Reload(ctx); err != nil && s.config.Logger != nil {
					s.config.Logger.Warn("reload failed", "key", s.config.Key, "error", err)
				}
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		if s.config.Logger != nil {
			s.config.Logger.Error("watch loop panic", "error", err)
		}
	}))

	return events, nil
}

// mutate applies fn to a copy of the note at index i, bumps its update time
// and persists. Must be called with the lock held.
func (s *Store) mutate(ctx context.Context, i int, fn func(n *Note)) (Note, error) {
	n := s.notes[i].clone()
	fn(&n)
	n.UpdatedAt = s.tick()

	prev := s.notes
	s.notes = slices.Clone(s.notes)
	s.notes[i] = n

	if err := s.persist(ctx, prev, Event{Type: EventModify, ID: n.ID}); err != nil {
		if s.config.Rollback {
			return Note{}, err
		}
		return n.clone(), err
	}
	return n.clone(), nil
}

// persist writes the whole collection. On failure it either restores prev
// (Rollback) or marks the store dirty. Must be called with the lock held.
func (s *Store) persist(ctx context.Context, prev []Note, ev Event) error {
	err := s.write(ctx)
	if err != nil {
		s.lastErr = err
		if s.config.Rollback {
			s.notes = prev
			if s.config.Logger != nil {
				s.config.Logger.Warn("write failed, change rolled back", "key", s.config.Key, "id", ev.ID, "error", err)
			}
			return err
		}
		s.dirty = true
		if s.config.Logger != nil {
			s.config.Logger.Warn("write failed, memory is ahead of storage", "key", s.config.Key, "id", ev.ID, "error", err)
		}
	} else {
		s.dirty = false
		s.lastErr = nil
	}

	ev.Timestamp = s.config.Clock().Unix()
	s.publish(ev)
	return err
}

func (s *Store) write(ctx context.Context) error {
	data, err := s.config.Codec.Marshal(s.notes)
	if err != nil {
		return fmt.Errorf("%w: failed to encode collection: %w", ErrStorage, err)
	}
	blob := string(data)
	if err := s.backend.Set(ctx, s.config.Key, blob); err != nil {
		return fmt.Errorf("%w: failed to write %q: %w", ErrStorage, s.config.Key, err)
	}
	s.lastBlob = blob

	if s.config.Logger != nil {
		s.config.Logger.Debug("collection written", "key", s.config.Key, "notes", len(s.notes), "bytes", len(blob))
	}
	return nil
}

func (s *Store) publish(ev Event) {
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
			if s.config.Logger != nil {
				s.config.Logger.Warn("subscriber is slow, event dropped", "event", ev.String())
			}
		}
	}
}

// decode turns a stored value into a repaired collection.
func (s *Store) decode(value string, ok bool) []Note {
	s.recovered = nil
	if !ok || strings.TrimSpace(value) == "" {
		return []Note{}
	}

	notes, err := s.config.Codec.Unmarshal([]byte(value))
	if err != nil {
		s.recovered = fmt.Errorf("%w: %w", ErrParse, err)
		if s.config.Logger != nil {
			s.config.Logger.Warn("stored collection is malformed, starting empty", "key", s.config.Key, "error", err)
		}
		return []Note{}
	}
	return s.repair(notes)
}

// repair defaults missing fields and drops duplicate IDs so that a loaded
// collection satisfies the same invariants as one built through the API.
func (s *Store) repair(notes []Note) []Note {
	out := make([]Note, 0, len(notes))
	seen := make(map[string]bool, len(notes))
	loadedAt := s.config.Clock().UTC()

	for _, n := range notes {
		if n.ID == "" {
			n.ID = s.config.NewID()
		}
		if seen[n.ID] {
			if s.config.Logger != nil {
				s.config.Logger.Warn("duplicate note id dropped", "id", n.ID)
			}
			continue
		}
		seen[n.ID] = true

		switch {
		case n.CreatedAt.IsZero() && n.UpdatedAt.IsZero():
			n.CreatedAt, n.UpdatedAt = loadedAt, loadedAt
		case n.CreatedAt.IsZero():
			n.CreatedAt = n.UpdatedAt
		case n.UpdatedAt.IsZero():
			n.UpdatedAt = n.CreatedAt
		}
		if n.CreatedAt.After(n.UpdatedAt) {
			n.UpdatedAt = n.CreatedAt
		}
		n.CreatedAt = n.CreatedAt.UTC()
		n.UpdatedAt = n.UpdatedAt.UTC()
		n.Tags = NormalizeTags(n.Tags)

		if n.UpdatedAt.After(s.lastStamp) {
			s.lastStamp = n.UpdatedAt
		}
		out = append(out, n)
	}
	return out
}

// tick returns the current time, strictly after every timestamp this store
// has handed out or loaded.
func (s *Store) tick() time.Time {
	t := s.config.Clock().UTC()
	if !t.After(s.lastStamp) {
		t = s.lastStamp.Add(time.Nanosecond)
	}
	s.lastStamp = t
	return t
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.notes, func(n Note) bool { return n.ID == id })
}
