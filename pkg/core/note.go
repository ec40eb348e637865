package core

import (
	"slices"
	"strings"
	"time"
)

// Note is the central entity of the domain.
// It is agnostic to storage format (JSON, YAML, Markdown).
type Note struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content" yaml:"content"`
	Tags      []string  `json:"tags" yaml:"tags"`
	Pinned    bool      `json:"pinned" yaml:"pinned"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// Draft holds the editable fields of a note as supplied by the editor.
type Draft struct {
	Title   string
	Content string
	Tags    []string
	Pinned  bool
}

// Draft returns the editable fields of n.
func (n Note) Draft() Draft {
	return Draft{
		Title:   n.Title,
		Content: n.Content,
		Tags:    slices.Clone(n.Tags),
		Pinned:  n.Pinned,
	}
}

// HasTag reports whether n carries tag (exact match).
func (n Note) HasTag(tag string) bool {
	return slices.Contains(n.Tags, tag)
}

func (n Note) clone() Note {
	n.Tags = slices.Clone(n.Tags)
	if n.Tags == nil {
		n.Tags = []string{}
	}
	return n
}

// normalize trims the text fields and drops blank tags.
// Duplicate tags are kept.
func (d Draft) normalize() Draft {
	d.Title = strings.TrimSpace(d.Title)
	d.Content = strings.TrimSpace(d.Content)
	d.Tags = NormalizeTags(d.Tags)
	return d
}

func (d Draft) validate() error {
	if d.Title == "" && d.Content == "" {
		return ErrValidation
	}
	return nil
}

// NormalizeTags trims every tag and drops the empty ones, preserving order.
// The result is never nil.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ParseTags splits a comma separated tag list, e.g. "work, ideas,,todo".
func ParseTags(s string) []string {
	return NormalizeTags(strings.Split(s, ","))
}
