package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/aretw0/jot"
	"github.com/aretw0/jot/pkg/core"
)

var (
	verbose   bool
	dir       string
	adapter   string
	codecName string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jot",
	Short: "Quick notes from the terminal",
	Long: `jot keeps a small collection of notes: title, body, tags and a pin.
The whole collection lives under one key of a storage adapter
(a folder, a bbolt file or a SQLite database).`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// A .env file in the working directory may set the flag defaults.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&dir, "dir", "d", os.Getenv("JOT_DIR"), "Notes folder (default: nearest folder holding .jot, else the working directory)")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", envOr("JOT_ADAPTER", "fs"), "Storage adapter: fs, bolt, sqlite or memory")
	rootCmd.PersistentFlags().StringVar(&codecName, "codec", envOr("JOT_CODEC", "json"), "Collection encoding for the fs adapter: json or yaml")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// openStore opens the store selected by the global flags.
func openStore(ctx context.Context) (*core.Store, error) {
	root := dir
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		root = wd
		if found, err := jot.FindRoot(wd); err == nil {
			root = found
		}
	}

	store, err := jot.New(ctx, root,
		jot.WithAdapter(adapter),
		jot.WithCodec(codecName),
		jot.WithLogger(slog.Default()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open notes in %s: %w", root, err)
	}
	return store, nil
}

func closeStore(store *core.Store) {
	if err := store.Close(); err != nil {
		slog.Warn("failed to close store", "error", err)
	}
}
