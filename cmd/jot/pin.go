package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pinCmd = &cobra.Command{
	Use:   "pin <id>",
	Short: "Pin or unpin a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore(store)

		n, err := store.TogglePin(ctx, args[0])
		if err != nil {
			return err
		}

		state := "unpinned"
		if n.Pinned {
			state = "pinned"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Note %s: %s\n", state, n.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pinCmd)
}
