package core_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jot/pkg/core"
)

func titles(notes []core.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.Title
	}
	return out
}

func TestStore_List(t *testing.T) {
	ctx := context.Background()
	store, _, clock := newStore(t, core.Config{})

	mk := func(d core.Draft, age time.Duration) {
		t.Helper()
		_, err := store.Create(ctx, d)
		require.NoError(t, err)
		clock.Advance(age)
	}

	// Created oldest first; the clock then moves 10 days ahead of the first two.
	mk(core.Draft{Title: "ancient", Content: "Foo bar", Tags: []string{"archive"}}, 5*24*time.Hour)
	mk(core.Draft{Title: "pinned-old", Pinned: true, Tags: []string{"work/project-x"}}, 5*24*time.Hour)
	mk(core.Draft{Title: "fresh", Tags: []string{"FOOD"}}, time.Hour)
	mk(core.Draft{Title: "pinned-new", Pinned: true, Tags: []string{"work/ideas"}}, time.Hour)
	mk(core.Draft{Title: "newest", Content: "nothing"}, 0)

	tests := []struct {
		name string
		opts core.ListOptions
		want []string
	}{
		{
			name: "All Sorted Pinned First",
			opts: core.ListOptions{},
			want: []string{"pinned-new", "pinned-old", "newest", "fresh", "ancient"},
		},
		{
			name: "Pinned Filter",
			opts: core.ListOptions{Filter: core.FilterPinned},
			want: []string{"pinned-new", "pinned-old"},
		},
		{
			name: "Recent Filter",
			opts: core.ListOptions{Filter: core.FilterRecent},
			want: []string{"pinned-new", "pinned-old", "newest", "fresh"},
		},
		{
			name: "Search Is Case Insensitive Across Fields",
			opts: core.ListOptions{Search: "foo"},
			want: []string{"fresh", "ancient"},
		},
		{
			name: "Search Combined With Filter",
			opts: core.ListOptions{Search: "foo", Filter: core.FilterRecent},
			want: []string{"fresh"},
		},
		{
			name: "Tag Glob",
			opts: core.ListOptions{Tag: "work/**"},
			want: []string{"pinned-new", "pinned-old"},
		},
		{
			name: "Tag Literal",
			opts: core.ListOptions{Tag: "archive"},
			want: []string{"ancient"},
		},
		{
			name: "No Match",
			opts: core.ListOptions{Search: "zzz"},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, titles(store.List(tt.opts)))
		})
	}
}

func TestStore_List_RecentBoundary(t *testing.T) {
	ctx := context.Background()
	store, _, clock := newStore(t, core.Config{RecentWindow: time.Hour})

	_, err := store.Create(ctx, core.Draft{Title: "edge"})
	require.NoError(t, err)

	clock.Advance(time.Hour - time.Nanosecond)
	assert.Len(t, store.List(core.ListOptions{Filter: core.FilterRecent}), 1)

	clock.Advance(time.Nanosecond)
	assert.Empty(t, store.List(core.ListOptions{Filter: core.FilterRecent}), "window is exclusive")
}

func TestStore_List_TagWithGlobSyntax(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newStore(t, core.Config{})
	n, err := store.Create(ctx, core.Draft{Title: "odd", Tags: []string{"[draft", "c*de"}})
	require.NoError(t, err)
	_, err = store.Create(ctx, core.Draft{Title: "plain", Tags: []string{"code"}})
	require.NoError(t, err)

	assert.True(t, n.HasTag("[draft"))
	assert.False(t, n.HasTag("draft"))

	got := store.List(core.ListOptions{Tag: "[draft"})
	require.Len(t, got, 1, "an invalid glob still matches literally")
	assert.Equal(t, n.ID, got[0].ID)

	assert.Len(t, store.List(core.ListOptions{Tag: "c*de"}), 2, "exact tag or glob match")
}

func TestStore_List_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newStore(t, core.Config{})
	_, err := store.Create(ctx, core.Draft{Title: "t", Tags: []string{"a"}})
	require.NoError(t, err)

	notes := store.List(core.ListOptions{})
	notes[0].Tags[0] = "mutated"
	notes[0].Title = "mutated"

	again := store.List(core.ListOptions{})
	assert.Equal(t, "t", again[0].Title)
	assert.Equal(t, []string{"a"}, again[0].Tags)
}

func TestStore_Tags(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newStore(t, core.Config{})
	_, err := store.Create(ctx, core.Draft{Title: "a", Tags: []string{"b", "a"}})
	require.NoError(t, err)
	_, err = store.Create(ctx, core.Draft{Title: "b", Tags: []string{"a", "c", "a"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, store.Tags())
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in      string
		want    core.Filter
		wantErr bool
	}{
		{in: "", want: core.FilterAll},
		{in: "all", want: core.FilterAll},
		{in: " Pinned ", want: core.FilterPinned},
		{in: "recent", want: core.FilterRecent},
		{in: "starred", wantErr: true},
	}
	for _, tt := range tests {
		got, err := core.ParseFilter(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFilter(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFilter(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"work", "ideas", "work"}, core.ParseTags(" work, ideas,,work ,"))
	assert.Equal(t, []string{}, core.ParseTags(""))
}
