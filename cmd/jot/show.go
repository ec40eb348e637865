package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/jot/pkg/codec"
)

var showFormat string

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a note",
	Long:  `Print a note as Markdown with frontmatter (default), JSON or YAML.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore(store)

		n, err := store.Get(args[0])
		if err != nil {
			return err
		}

		var data []byte
		switch showFormat {
		case "md", "markdown":
			data, err = codec.MarshalMarkdown(n)
		case "json":
			data, err = json.MarshalIndent(n, "", "  ")
			data = append(data, '\n')
		case "yaml", "yml":
			data, err = yaml.Marshal(n)
		default:
			return fmt.Errorf("unknown format %q", showFormat)
		}
		if err != nil {
			return fmt.Errorf("failed to encode note: %w", err)
		}

		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringVar(&showFormat, "format", "md", "md, json or yaml")
}
