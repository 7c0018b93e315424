package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aeoboost",
		Short: "AEOBooster - measure brand visibility in LLM answers",
		Long: `AEOBooster measures how discoverable a brand is when people ask
LLM-based answer engines for recommendations.

It generates a balanced batch of buyer-style prompts, runs them against an
answer engine, scores each response for brand mentions, and reports the
question types where the brand is weak.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newGenerateCommand())
	cmd.AddCommand(newScoreCommand())
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newInitCommand())
	cmd.AddCommand(newCacheCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
