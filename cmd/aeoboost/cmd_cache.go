package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aeobooster/aeobooster/internal/cache"
	"github.com/aeobooster/aeobooster/internal/projectconfig"
)

func newCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the response cache",
		Long: `Manage the engine response cache.

The cache stores raw engine responses to speed up repeated analyses with
the same prompts. Cached responses are keyed by engine type, model, and
prompt text, so a changed scoring rubric reuses cached responses while a
changed prompt set does not.`,
	}

	cmd.AddCommand(newCacheClearCommand())

	return cmd
}

func newCacheClearCommand() *cobra.Command {
	var cacheDir string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear the response cache",
		Long: `Clear all cached engine responses.

The next analysis run will send every prompt to the engine from scratch.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Resolve to absolute path
			absDir, err := filepath.Abs(cacheDir)
			if err != nil {
				return fmt.Errorf("resolving cache directory: %w", err)
			}

			c := cache.New(absDir)
			if err := c.Clear(); err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}

			fmt.Printf("Cache cleared: %s\n", absDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&cacheDir, "cache-dir", projectconfig.DefaultCacheDir, "Cache directory to clear")

	return cmd
}
