package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot/pkg/core"
)

var (
	editTitle   string
	editContent string
	editTags    string
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change the title, body or tags of a note",
	Long:  `Only the fields given as flags change; the others keep their value.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore(store)

		current, err := store.Get(args[0])
		if err != nil {
			return err
		}

		d := current.Draft()
		flags := cmd.Flags()
		if flags.Changed("title") {
			d.Title = editTitle
		}
		if flags.Changed("content") {
			d.Content = editContent
		}
		if flags.Changed("tags") {
			d.Tags = core.ParseTags(editTags)
		}

		n, err := store.Update(ctx, current.ID, d)
		if err != nil {
			return fmt.Errorf("failed to update note: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Note updated: %s\n", n.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	editCmd.Flags().StringVarP(&editContent, "content", "c", "", "New body")
	editCmd.Flags().StringVarP(&editTags, "tags", "t", "", "New comma-separated tags (empty clears them)")
}
