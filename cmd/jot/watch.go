package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	jotlifecycle "github.com/aretw0/jot/pkg/adapters/lifecycle"
	"github.com/aretw0/jot/pkg/core"
)

var watchTypes string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print note events as they happen",
	Long: `Follow the collection, reloading when another process changes it, and
print every event until interrupted. Requires a watchable adapter (fs).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore(store)

		events, err := store.Watch(ctx)
		if err != nil {
			return err
		}

		types, err := parseEventTypes(watchTypes)
		if err != nil {
			return err
		}
		src := jotlifecycle.NewSource(events,
			jotlifecycle.WithTypes(types...),
			jotlifecycle.WithLogger(slog.Default()),
		)
		if err := src.Start(ctx); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Watching %d notes (Ctrl+C to stop)\n", store.Len())
		for e := range src.Events() {
			fmt.Fprintln(out, e.String())
		}
		return nil
	},
}

func parseEventTypes(s string) ([]core.EventType, error) {
	var types []core.EventType
	for _, name := range core.ParseTags(s) {
		t := core.EventType(strings.ToUpper(name))
		switch t {
		case core.EventCreate, core.EventModify, core.EventDelete, core.EventReload:
			types = append(types, t)
		default:
			return nil, fmt.Errorf("unknown event type %q", name)
		}
	}
	return types, nil
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchTypes, "types", "", "Comma-separated event types to print (create, modify, delete); reloads are always printed")
}
