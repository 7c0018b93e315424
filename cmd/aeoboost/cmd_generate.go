package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aeobooster/aeobooster/internal/catalog"
	"github.com/aeobooster/aeobooster/internal/generate"
	"github.com/aeobooster/aeobooster/internal/models"
)

var (
	generateCount   int
	generateAsJSON  bool
	generateCatalog string
)

func newGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <analysis.yaml>",
		Short: "Generate the prompt batch without executing it",
		Long: `Generate the prompt batch for an analysis spec and print it.

Useful for reviewing which questions will be asked before spending API
calls, and for piping prompts into other tools.`,
		Args: cobra.ExactArgs(1),
		RunE: generateCommandE,
	}

	cmd.Flags().IntVar(&generateCount, "count", 0, "Number of prompts to generate (overrides spec config)")
	cmd.Flags().BoolVar(&generateAsJSON, "json", false, "Emit the batch as JSON")
	cmd.Flags().StringVar(&generateCatalog, "catalog", "", "Template catalog file (overrides spec config)")

	return cmd
}

func generateCommandE(cmd *cobra.Command, args []string) error {
	specPath := args[0]

	spec, err := models.LoadAnalysisSpec(specPath)
	if err != nil {
		return fmt.Errorf("failed to load spec: %w", err)
	}
	if generateCount > 0 {
		spec.TargetCount = generateCount
	}
	if generateCatalog != "" {
		spec.CatalogPath = generateCatalog
	}

	entities, err := spec.ResolveEntities(filepath.Dir(specPath))
	if err != nil {
		return err
	}

	cat, err := catalog.Load(spec.CatalogPath)
	if err != nil {
		return fmt.Errorf("loading prompt catalog: %w", err)
	}

	batch, err := generate.GeneratePrompts(cat, entities, generate.Config{
		TargetCount:      spec.TargetCount,
		ClusterWeights:   spec.ClusterWeights,
		BusinessCategory: spec.BusinessCategory,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if generateAsJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(batch)
	}

	for _, p := range batch.Prompts {
		fmt.Fprintf(out, "[%s] %s\n", p.Cluster, p.Text)
	}
	fmt.Fprintf(out, "\n%d prompts from %d candidates (coverage %.0f%%)\n",
		len(batch.Prompts), batch.CandidateCount, batch.Coverage*100)

	return nil
}
