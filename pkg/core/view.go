package core

import (
	"slices"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// List returns the notes selected by opts in display order: pinned notes
// first, then by descending update time. Ties keep collection order.
// It never mutates the collection.
func (s *Store) List(opts ListOptions) []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.config.Clock()
	search := strings.ToLower(strings.TrimSpace(opts.Search))
	tag := strings.TrimSpace(opts.Tag)

	out := make([]Note, 0, len(s.notes))
	for _, n := range s.notes {
		if !matchesFilter(n, opts.Filter, now, s.config.RecentWindow) {
			continue
		}
		if search != "" && !matchesSearch(n, search) {
			continue
		}
		if tag != "" && !matchesTag(n, tag) {
			continue
		}
		out = append(out, n.clone())
	}

	SortNotes(out)
	return out
}

// Tags returns the distinct tags in use, sorted.
func (s *Store) Tags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var tags []string
	for _, n := range s.notes {
		tags = append(tags, n.Tags...)
	}
	slices.Sort(tags)
	return slices.Compact(tags)
}

// SortNotes orders notes for display in place: pinned first, then most
// recently updated first.
func SortNotes(notes []Note) {
	slices.SortStableFunc(notes, func(a, b Note) int {
		if a.Pinned != b.Pinned {
			if a.Pinned {
				return -1
			}
			return 1
		}
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
}

func matchesFilter(n Note, f Filter, now time.Time, window time.Duration) bool {
	switch f {
	case FilterPinned:
		return n.Pinned
	case FilterRecent:
		return now.Sub(n.UpdatedAt) < window
	default:
		return true
	}
}

// matchesSearch expects term to be lower-cased already.
func matchesSearch(n Note, term string) bool {
	if strings.Contains(strings.ToLower(n.Title), term) ||
		strings.Contains(strings.ToLower(n.Content), term) {
		return true
	}
	for _, t := range n.Tags {
		if strings.Contains(strings.ToLower(t), term) {
			return true
		}
	}
	return false
}

func matchesTag(n Note, pattern string) bool {
	if n.HasTag(pattern) {
		return true
	}
	for _, t := range n.Tags {
		// An invalid glob only matches literally, which HasTag already covered.
		if ok, err := doublestar.Match(pattern, t); err == nil && ok {
			return true
		}
	}
	return false
}
