package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot/pkg/autosave"
	"github.com/aretw0/jot/pkg/core"
)

var (
	composeID    string
	composeTitle string
	composeTags  string
	composeDelay time.Duration
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Write a note from stdin, saving as you type",
	Long: `Read the note body line by line from stdin. The note is saved once input
has been quiet for --delay, and a final time at end of input. With --id
the existing note is edited instead of creating a new one.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore(store)

		draft := core.Draft{Title: composeTitle, Tags: core.ParseTags(composeTags)}
		if composeID != "" {
			current, err := store.Get(composeID)
			if err != nil {
				return err
			}
			draft = current.Draft()
			draft.Content = ""
			if cmd.Flags().Changed("title") {
				draft.Title = composeTitle
			}
			if cmd.Flags().Changed("tags") {
				draft.Tags = core.ParseTags(composeTags)
			}
		}

		saver := autosave.New(ctx, store, autosave.Config{
			Delay:  composeDelay,
			Logger: slog.Default(),
			OnSave: func(n core.Note) {
				slog.Debug("draft saved", "id", n.ID, "updated_at", n.UpdatedAt)
			},
		})
		defer saver.Close()
		saver.Edit(composeID, draft)

		var body strings.Builder
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			if body.Len() > 0 {
				body.WriteByte('\n')
			}
			body.WriteString(scanner.Text())
			draft.Content = body.String()
			saver.Changed(draft)
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		if _, _, err := saver.Flush(ctx); err != nil {
			return fmt.Errorf("failed to save note: %w", err)
		}
		if saver.ID() == "" {
			return fmt.Errorf("nothing to save: %w", core.ErrValidation)
		}
		fmt.Fprintln(cmd.OutOrStdout(), saver.ID())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(composeCmd)
	composeCmd.Flags().StringVar(&composeID, "id", "", "Edit this note instead of creating one")
	composeCmd.Flags().StringVar(&composeTitle, "title", "", "Note title")
	composeCmd.Flags().StringVarP(&composeTags, "tags", "t", "", "Comma-separated tags")
	composeCmd.Flags().DurationVar(&composeDelay, "delay", autosave.DefaultDelay, "Quiet period before an automatic save")
}
