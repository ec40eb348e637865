package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot/pkg/codec"
	"github.com/aretw0/jot/pkg/core"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every note",
	Long: `Export the collection as one JSON or YAML document (to --out or stdout),
or as one Markdown file per note into the --out folder.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore(store)

		notes := store.List(core.ListOptions{})

		if exportFormat == "md" || exportFormat == "markdown" {
			if exportOut == "" {
				return fmt.Errorf("--out is required for markdown export")
			}
			if err := exportMarkdown(notes, exportOut); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d notes to %s\n", len(notes), exportOut)
			return nil
		}

		c, err := codec.ByName(exportFormat)
		if err != nil {
			return err
		}
		data, err := c.Marshal(notes)
		if err != nil {
			return fmt.Errorf("failed to encode notes: %w", err)
		}

		if exportOut == "" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(exportOut, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", exportOut, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d notes to %s\n", len(notes), exportOut)
		return nil
	},
}

func exportMarkdown(notes []core.Note, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	for _, n := range notes {
		data, err := codec.MarshalMarkdown(n)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", n.ID, err)
		}
		path := filepath.Join(dir, n.ID+".md")
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "json, yaml or md")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (json, yaml) or folder (md)")
}
