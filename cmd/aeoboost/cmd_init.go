package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aeobooster/aeobooster/internal/projectconfig"
	"github.com/aeobooster/aeobooster/internal/projects"
	"github.com/aeobooster/aeobooster/internal/wizard"
)

func newInitCommand() *cobra.Command {
	var (
		siteURL     string
		category    string
		brands      []string
		competitors []string
		count       int
		engineType  string
	)

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new analysis",
		Long: `Initialize a new analysis with a guided setup wizard.

Creates an analysis.yaml spec file and an entities.yaml file describing
the brands and products to look for in answer-engine responses.

By default the wizard runs interactively. Passing --url together with
--brand skips the wizard and scaffolds the files directly from flags.

If no directory is specified, the analyses directory from .aeobooster.yaml
is used (analyses/ by default).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dir string
			if len(args) > 0 {
				dir = args[0]
			} else {
				cfg, err := projectconfig.Load(".")
				if err != nil {
					return err
				}
				dir = cfg.Paths.Analyses
			}

			var setup *wizard.AnalysisSetup
			if siteURL != "" && len(brands) > 0 {
				normalized, err := projects.NormalizeSiteURL(siteURL)
				if err != nil {
					return err
				}
				if category != "" && !projects.IsValidBusinessCategory(category) {
					return fmt.Errorf("unknown business category %q", category)
				}
				setup = &wizard.AnalysisSetup{
					SiteURL:          normalized,
					BusinessCategory: category,
					BrandNames:       brands,
					CompetitorTerms:  competitors,
					TargetCount:      count,
					EngineType:       engineType,
				}
			} else {
				var err error
				setup, err = wizard.RunSetupWizard(cmd.InOrStdin(), cmd.OutOrStdout(), siteURL)
				if err != nil {
					return fmt.Errorf("wizard failed: %w", err)
				}
			}

			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
			if err := wizard.WriteAnalysisFiles(setup, dir); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Initialized analysis:")                           //nolint:errcheck
			fmt.Fprintf(out, "  %s\n", filepath.Join(dir, "analysis.yaml"))      //nolint:errcheck
			fmt.Fprintf(out, "  %s\n", filepath.Join(dir, "entities.yaml"))      //nolint:errcheck
			fmt.Fprintln(out, "Run it with: aeoboost run", filepath.Join(dir, "analysis.yaml")) //nolint:errcheck

			return nil
		},
	}

	cmd.Flags().StringVar(&siteURL, "url", "", "Site URL to analyze (skips the wizard when --brand is also set)")
	cmd.Flags().StringVar(&category, "category", "", "Business category")
	cmd.Flags().StringArrayVar(&brands, "brand", nil, "Brand name to look for (can be repeated)")
	cmd.Flags().StringArrayVar(&competitors, "competitor", nil, "Competitor term (can be repeated)")
	cmd.Flags().IntVar(&count, "count", 100, "Number of prompts to generate")
	cmd.Flags().StringVar(&engineType, "engine", "openai", "Engine to use (openai, copilot, mock)")

	return cmd
}
