package main

import (
	"github.com/aretw0/tapestry/internal/cli"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play [story]",
	Short: "Read a story in the terminal",
	Long: `Starts a reading session. Press enter to continue, type a number to pick
a choice, t to show or hide choices and q to quit. Reaching the end starts
the story again from the title.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := storyPath(args)
		if err != nil {
			return err
		}
		jsonMode, _ := cmd.Flags().GetBool("json")
		debug, _ := cmd.Flags().GetBool("debug")
		sessionID, _ := cmd.Flags().GetString("session")

		return cli.Play(cmd.Context(), cfg, cli.PlayOptions{
			Story:     path,
			JSON:      jsonMode,
			Debug:     debug,
			SessionID: sessionID,
			In:        cmd.InOrStdin(),
			Out:       cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")
	playCmd.Flags().Bool("debug", false, "Log every navigation at debug level")
	playCmd.Flags().String("session", "", "Session ID used in logs and published events (default: random)")
	playCmd.Flags().String("redis", "", "Publish navigation events to this Redis address")
	playCmd.Flags().String("metrics-addr", "", "Serve /healthz and /metrics on this address")
	playCmd.Flags().Bool("typewriter", true, "Reveal lines one character at a time")
}
