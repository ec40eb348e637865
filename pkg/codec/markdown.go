package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/jot/pkg/core"
)

// frontmatter is the YAML header of a Markdown note.
type frontmatter struct {
	ID        string    `yaml:"id,omitempty"`
	Title     string    `yaml:"title,omitempty"`
	Tags      []string  `yaml:"tags,omitempty"`
	Pinned    bool      `yaml:"pinned,omitempty"`
	CreatedAt time.Time `yaml:"createdAt,omitempty"`
	UpdatedAt time.Time `yaml:"updatedAt,omitempty"`
}

// MarshalMarkdown renders a note as Markdown with a YAML frontmatter block
// holding everything except the content.
func MarshalMarkdown(n core.Note) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(frontmatter{
		ID:        n.ID,
		Title:     n.Title,
		Tags:      n.Tags,
		Pinned:    n.Pinned,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	buf.WriteString("---\n")
	buf.WriteString(n.Content)
	if n.Content != "" && !strings.HasSuffix(n.Content, "\n") {
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

// ParseMarkdown reads a Markdown note. A document without frontmatter
// becomes a note whose content is the whole text.
func ParseMarkdown(r io.Reader) (core.Note, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return core.Note{}, err
	}

	if !bytes.HasPrefix(data, []byte("---\n")) && !bytes.HasPrefix(data, []byte("---\r\n")) {
		return core.Note{Content: strings.TrimSpace(string(data)), Tags: []string{}}, nil
	}

	rest := data[bytes.IndexByte(data, '\n')+1:]
	header, body, found := cutFence(rest)
	if !found {
		return core.Note{}, errors.New("frontmatter started but no closing delimiter found")
	}

	var fm frontmatter
	if err := yaml.Unmarshal(header, &fm); err != nil {
		return core.Note{}, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	return core.Note{
		ID:        fm.ID,
		Title:     fm.Title,
		Content:   strings.TrimSpace(string(body)),
		Tags:      core.NormalizeTags(fm.Tags),
		Pinned:    fm.Pinned,
		CreatedAt: fm.CreatedAt,
		UpdatedAt: fm.UpdatedAt,
	}, nil
}

// cutFence splits data at the first line consisting only of "---".
func cutFence(data []byte) (header, body []byte, found bool) {
	offset := 0
	for offset <= len(data) {
		line := data[offset:]
		end := bytes.IndexByte(line, '\n')
		next := len(data)
		if end >= 0 {
			line = line[:end]
			next = offset + end + 1
		}
		if string(bytes.TrimRight(line, "\r")) == "---" {
			return data[:offset], data[next:], true
		}
		if end < 0 {
			break
		}
		offset = next
	}
	return nil, nil, false
}
