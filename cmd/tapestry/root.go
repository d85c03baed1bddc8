package main

import (
	"fmt"
	"os"

	"github.com/aretw0/tapestry/internal/config"
	"github.com/spf13/cobra"
)

// cfg is loaded before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "tapestry",
	Short: "Tapestry reads branching stories in the terminal",
	Long: `Tapestry plays short branching stories one screen at a time.
A story is a YAML or JSON file, or a directory of markdown nodes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var files []string
		if envFile, _ := cmd.Flags().GetString("env-file"); envFile != "" {
			files = append(files, envFile)
		}
		loaded, err := config.Load(files...)
		if err != nil {
			return err
		}
		applyFlags(cmd, loaded)
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("env-file", "", "Load variables from this file instead of .env")
	rootCmd.PersistentFlags().String("env", "", "Environment: development or production")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")
}

// applyFlags overrides environment values with the flags the user set.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("env") {
		c.Env, _ = flags.GetString("env")
	}
	if flags.Changed("log-level") {
		c.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		c.LogFormat, _ = flags.GetString("log-format")
	}
	if flags.Lookup("redis") != nil && flags.Changed("redis") {
		c.RedisAddr, _ = flags.GetString("redis")
	}
	if flags.Lookup("metrics-addr") != nil && flags.Changed("metrics-addr") {
		c.MetricsAddr, _ = flags.GetString("metrics-addr")
	}
	if flags.Lookup("typewriter") != nil && flags.Changed("typewriter") {
		c.Typewriter, _ = flags.GetBool("typewriter")
	}
}

// storyPath takes the story from the first argument, else TAPESTRY_STORY.
func storyPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Story != "" {
		return cfg.Story, nil
	}
	return "", fmt.Errorf("no story given: pass a path or set TAPESTRY_STORY")
}
