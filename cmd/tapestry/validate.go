package main

import (
	"fmt"

	"github.com/aretw0/tapestry/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [story]",
	Short: "Check the story graph for consistency",
	Long: `Reports missing targets, misplaced choices, bad anchors and dynamic
chapters that do not exist. Nodes the title cannot reach are warnings.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := storyPath(args)
		if err != nil {
			return err
		}
		if err := cli.Validate(cmd.Context(), path, cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
