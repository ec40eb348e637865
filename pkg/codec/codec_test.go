package codec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jot/pkg/codec"
	"github.com/aretw0/jot/pkg/core"
)

func sampleNotes() []core.Note {
	created := time.Date(2024, 5, 1, 9, 30, 0, 123456789, time.UTC)
	return []core.Note{
		{
			ID:        "a1",
			Title:     "Shopping",
			Content:   "<b>milk</b>\neggs",
			Tags:      []string{"home", "home"},
			Pinned:    true,
			CreatedAt: created,
			UpdatedAt: created.Add(time.Hour),
		},
		{
			ID:        "b2",
			Title:     "",
			Content:   "untitled: body with a colon",
			Tags:      []string{},
			CreatedAt: created,
			UpdatedAt: created,
		},
	}
}

func TestCollectionCodecs_RoundTrip(t *testing.T) {
	for _, name := range []string{"json", "yaml"} {
		t.Run(name, func(t *testing.T) {
			c, err := codec.ByName(name)
			require.NoError(t, err)
			assert.Equal(t, name, c.Name())

			data, err := c.Marshal(sampleNotes())
			require.NoError(t, err)

			got, err := c.Unmarshal(data)
			require.NoError(t, err)
			require.Len(t, got, 2)
			for i, want := range sampleNotes() {
				assert.Equal(t, want.ID, got[i].ID)
				assert.Equal(t, want.Title, got[i].Title)
				assert.Equal(t, want.Content, got[i].Content)
				assert.Equal(t, want.Tags, got[i].Tags)
				assert.Equal(t, want.Pinned, got[i].Pinned)
				assert.True(t, want.CreatedAt.Equal(got[i].CreatedAt))
				assert.True(t, want.UpdatedAt.Equal(got[i].UpdatedAt))
			}
		})
	}
}

func TestCollectionCodecs_Empty(t *testing.T) {
	data, err := codec.JSON.Marshal(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	data, err = codec.YAML{}.Marshal(nil)
	require.NoError(t, err)
	got, err := codec.YAML{}.Unmarshal(data)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCollectionCodecs_Malformed(t *testing.T) {
	_, err := codec.JSON.Unmarshal([]byte(`{"id":`))
	assert.Error(t, err)

	_, err = codec.YAML{}.Unmarshal([]byte("- id: [unclosed"))
	assert.Error(t, err)
}

func TestByName(t *testing.T) {
	c, err := codec.ByName(".YML")
	require.NoError(t, err)
	assert.Equal(t, "yaml", c.Name())

	c, err = codec.ByName("")
	require.NoError(t, err)
	assert.Equal(t, "json", c.Name())

	_, err = codec.ByName("toml")
	assert.Error(t, err)
}

func TestMarkdown_RoundTrip(t *testing.T) {
	want := sampleNotes()[0]

	data, err := codec.MarshalMarkdown(want)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "---\n"))
	assert.Contains(t, string(data), "title: Shopping")

	got, err := codec.ParseMarkdown(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Title, got.Title)
	assert.Equal(t, want.Content, got.Content)
	assert.Equal(t, want.Tags, got.Tags)
	assert.True(t, got.Pinned)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
	assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt))
}

func TestMarkdown_SingleFrontmatterBlock(t *testing.T) {
	data, err := codec.MarshalMarkdown(core.Note{ID: "n1", Title: "t", Content: "body"})
	require.NoError(t, err)

	assert.Equal(t, "---\nid: n1\ntitle: t\n---\nbody\n", string(data))
}

func TestParseMarkdown(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantTitle   string
		wantContent string
		wantTags    []string
		wantErr     bool
	}{
		{
			name: "Basic Frontmatter",
			input: `---
title: Hello World
tags: [a, " b ", ""]
---
# Content Here`,
			wantTitle:   "Hello World",
			wantContent: "# Content Here",
			wantTags:    []string{"a", "b"},
		},
		{
			name:        "No Frontmatter",
			input:       "# Just Markdown\n",
			wantContent: "# Just Markdown",
			wantTags:    []string{},
		},
		{
			name:        "Horizontal Rule In Body",
			input:       "---\ntitle: T\n---\nabove\n---\nbelow",
			wantTitle:   "T",
			wantContent: "above\n---\nbelow",
			wantTags:    []string{},
		},
		{
			name:    "Invalid YAML",
			input:   "---\nkey: : value\n---\nContent",
			wantErr: true,
		},
		{
			name:    "Unclosed Frontmatter",
			input:   "---\ntitle: Unclosed\nContent",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := codec.ParseMarkdown(strings.NewReader(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMarkdown() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got.Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", got.Title, tt.wantTitle)
			}
			if got.Content != tt.wantContent {
				t.Errorf("content = %q, want %q", got.Content, tt.wantContent)
			}
			assert.Equal(t, tt.wantTags, got.Tags)
		})
	}
}
