package core

import (
	"fmt"
	"strings"
)

// Filter restricts the notes returned by List.
type Filter string

const (
	FilterAll    Filter = "all"
	FilterPinned Filter = "pinned"
	FilterRecent Filter = "recent"
)

// ParseFilter maps a user supplied name to a Filter. The empty string means FilterAll.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FilterAll:
		return FilterAll, nil
	case FilterPinned, FilterRecent:
		return f, nil
	default:
		return "", fmt.Errorf("unknown filter %q (want all, pinned or recent)", s)
	}
}

// ListOptions narrows and orders the view returned by Store.List.
type ListOptions struct {
	// Search is matched case-insensitively as a substring of title, content and tags.
	Search string
	Filter Filter
	// Tag is a doublestar glob (e.g. "work/**") that at least one tag must match.
	Tag string
}
