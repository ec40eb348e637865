package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot/pkg/codec"
	"github.com/aretw0/jot/pkg/core"
)

var importCmd = &cobra.Command{
	Use:   "import <file.md>...",
	Short: "Import Markdown files as notes",
	Long: `Each file becomes a note. Frontmatter supplies the title, tags and pin;
the body becomes the content. A file whose frontmatter id names an
existing note updates that note instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore(store)

		var errs []error
		imported := 0
		for _, path := range args {
			n, err := importFile(cmd, store, path)
			if err != nil {
				slog.Warn("import failed", "path", path, "error", err)
				errs = append(errs, fmt.Errorf("%s: %w", path, err))
				continue
			}
			slog.Debug("imported", "path", path, "id", n.ID)
			imported++
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d files\n", imported, len(args))
		return errors.Join(errs...)
	},
}

func importFile(cmd *cobra.Command, store *core.Store, path string) (core.Note, error) {
	f, err := os.Open(path)
	if err != nil {
		return core.Note{}, err
	}
	defer f.Close()

	parsed, err := codec.ParseMarkdown(f)
	if err != nil {
		return core.Note{}, err
	}

	if parsed.ID != "" {
		if _, err := store.Get(parsed.ID); err == nil {
			return store.Update(cmd.Context(), parsed.ID, parsed.Draft())
		}
	}
	return store.Create(cmd.Context(), parsed.Draft())
}

func init() {
	rootCmd.AddCommand(importCmd)
}
