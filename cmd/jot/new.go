package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot/pkg/core"
)

var (
	newContent string
	newTags    string
	newPin     bool
)

var newCmd = &cobra.Command{
	Use:   "new [title]",
	Short: "Create a note",
	Long:  `Create a note and print its id. A note needs a title or some content.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore(store)

		d := core.Draft{
			Content: newContent,
			Tags:    core.ParseTags(newTags),
			Pinned:  newPin,
		}
		if len(args) == 1 {
			d.Title = args[0]
		}

		n, err := store.Create(ctx, d)
		if err != nil {
			return fmt.Errorf("failed to create note: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), n.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringVarP(&newContent, "content", "c", "", "Note body")
	newCmd.Flags().StringVarP(&newTags, "tags", "t", "", "Comma-separated tags")
	newCmd.Flags().BoolVarP(&newPin, "pin", "p", false, "Pin the note")
}
