package main

import (
	"fmt"

	"github.com/aretw0/tapestry/internal/cli"
	"github.com/aretw0/tapestry/pkg/adapters/file"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [story]",
	Short: "Convert a story to a single YAML or JSON document",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := storyPath(args)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		switch file.Format(format) {
		case file.FormatYAML, file.FormatJSON:
		default:
			return fmt.Errorf("unknown format %q: expected yaml or json", format)
		}
		return cli.Export(cmd.Context(), path, file.Format(format), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("format", "f", string(file.FormatYAML), "Output format: yaml or json")
}
