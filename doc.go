// Package jot is the composition root of jot, a small note-taking store.
//
// It connects the note store (pkg/core) with a storage adapter using the
// hexagonal architecture pattern: the core only knows a key-value port, and
// the whole note collection is written under a single key after every
// change.
//
// Features:
//
//   - Create, update, pin and delete notes with strictly ordered timestamps.
//   - List with case-insensitive search, pinned/recent filters and tag globs.
//   - Adapters for memory, the local filesystem, bbolt and SQLite.
//   - JSON or YAML encoding of the collection; Markdown import and export.
//   - Debounced auto-save of a note being edited (pkg/autosave).
//   - Change events, and reload on external changes for watchable adapters.
//
// Usage:
//
//	store, err := jot.New(ctx, "./notes",
//		jot.WithAdapter("fs"),
//		jot.WithLogger(logger),
//	)
//	if err != nil {
//		return err
//	}
//	defer store.Close()
//
//	note, err := store.Create(ctx, jot.Draft{Title: "Groceries", Tags: []string{"home"}})
package jot
