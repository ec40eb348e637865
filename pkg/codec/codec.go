// Package codec provides the encodings of the note collection (JSON, YAML)
// and of single notes (Markdown with YAML frontmatter).
package codec

import (
	"fmt"
	"strings"

	"github.com/aretw0/jot/pkg/core"
)

// JSON is the reference collection encoding.
var JSON core.Codec = core.JSONCodec{}

// ByName returns the collection codec registered under name ("json", "yaml" or "yml").
func ByName(name string) (core.Codec, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "", "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML{}, nil
	default:
		return nil, fmt.Errorf("unknown codec %q", name)
	}
}
