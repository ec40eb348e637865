// Package lifecycle exposes store events as a lifecycle.Source.
package lifecycle

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/jot/pkg/core"
)

// DefaultBuffer is the output buffer used when none is configured.
const DefaultBuffer = 16

var _ lifecycle.Source = (*Source)(nil)

// Option configures a Source.
type Option func(*Source)

// WithTypes keeps only events of the given types. RELOAD is always kept
// because it tells the consumer to re-read the whole collection.
func WithTypes(types ...core.EventType) Option {
	return func(s *Source) {
		if len(types) == 0 {
			return
		}
		s.types = make(map[core.EventType]bool, len(types)+1)
		for _, t := range types {
			s.types[t] = true
		}
		s.types[core.EventReload] = true
	}
}

// WithBuffer sets how many events may wait for a slow consumer.
func WithBuffer(n int) Option {
	return func(s *Source) {
		if n > 0 {
			s.buffer = n
		}
	}
}

// WithLogger reports dropped events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Source) {
		s.logger = l
	}
}

// Source re-emits store events as lifecycle events. It never blocks the
// store: when the consumer falls behind, events are dropped and the next
// delivered event is a RELOAD so the consumer knows to resynchronize.
type Source struct {
	events <-chan core.Event
	out    chan lifecycle.Event

	types   map[core.EventType]bool
	buffer  int
	logger  *slog.Logger
	dropped atomic.Int64
}

// NewSource creates a Source reading from a channel returned by
// Store.Subscribe or Store.Watch.
func NewSource(events <-chan core.Event, opts ...Option) *Source {
	s := &Source{events: events, buffer: DefaultBuffer}
	for _, opt := range opts {
		opt(s)
	}
	s.out = make(chan lifecycle.Event, s.buffer)
	return s
}

// Events returns the output channel. It is closed once Start's loop ends.
func (s *Source) Events() <-chan lifecycle.Event {
	return s.out
}

// Dropped returns how many events were discarded for a slow consumer.
func (s *Source) Dropped() int64 {
	return s.dropped.Load()
}

// Start forwards events until ctx is done or the input closes.
func (s *Source) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)

		resync := false
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				if s.types != nil && !s.types[e.Type] {
					continue
				}
				if resync {
					e = core.Event{Type: core.EventReload, Timestamp: e.Timestamp}
				}
				select {
				case s.out <- e:
					resync = false
				default:
					resync = true
					s.dropped.Add(1)
					if s.logger != nil {
						s.logger.Warn("watch consumer is slow, event dropped", "event", e.String())
					}
				}
			}
		}
	})
	return nil
}
