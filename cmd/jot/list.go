package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot/pkg/core"
)

var (
	listJSON   bool
	listSearch string
	listFilter string
	listTag    string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, pinned first then most recently updated",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := core.ParseFilter(listFilter)
		if err != nil {
			return err
		}

		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore(store)

		notes := store.List(core.ListOptions{
			Search: listSearch,
			Filter: filter,
			Tag:    listTag,
		})

		out := cmd.OutOrStdout()
		if listJSON {
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(notes)
		}

		for _, n := range notes {
			fmt.Fprintln(out, formatLine(n))
		}
		return nil
	},
}

// formatLine renders a note as "<id> [*] <title> #tag #tag".
func formatLine(n core.Note) string {
	var b strings.Builder
	b.WriteString(n.ID)
	if n.Pinned {
		b.WriteString(" *")
	}
	b.WriteString(" ")
	if n.Title != "" {
		b.WriteString(n.Title)
	} else {
		b.WriteString(firstLine(n.Content))
	}
	for _, t := range n.Tags {
		b.WriteString(" #")
		b.WriteString(t)
	}
	return b.String()
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Case-insensitive text to look for in title, body and tags")
	listCmd.Flags().StringVarP(&listFilter, "filter", "f", "all", "all, pinned or recent")
	listCmd.Flags().StringVar(&listTag, "tag", "", "Only notes with a tag matching this glob (e.g. work/**)")
}
