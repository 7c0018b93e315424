package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aeobooster/aeobooster/internal/cache"
	"github.com/aeobooster/aeobooster/internal/execution"
	"github.com/aeobooster/aeobooster/internal/models"
	"github.com/aeobooster/aeobooster/internal/orchestration"
	"github.com/aeobooster/aeobooster/internal/projectconfig"
	"github.com/aeobooster/aeobooster/internal/reporting"
	"github.com/aeobooster/aeobooster/internal/validation"
)

var (
	outputPath  string
	verbose     bool
	parallel    bool
	workers     int
	interpret   bool
	enableCache bool
	runCacheDir string
	failOnWeak  bool
	modelFlag   string
	engineFlag  string
	targetCount int
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <analysis.yaml>",
		Short: "Run a discoverability analysis",
		Long: `Run a discoverability analysis from a spec file.

The spec file names the site, its entities, competitor terms, and the
engine configuration. Values the spec omits fall back to a .aeobooster.yaml
found near the spec file, then to built-in defaults. Prompts are generated
from the template catalog, executed against the engine, and scored for
brand mentions. The outcome is written to the results directory, or to
--output when given.`,
		Args: cobra.ExactArgs(1),
		RunE: runCommandE,
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output JSON file for results")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output with per-prompt progress")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "Execute prompts concurrently")
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of concurrent workers (default: 4, requires --parallel)")
	cmd.Flags().BoolVar(&interpret, "interpret", false, "Print a plain-language interpretation of the results")
	cmd.Flags().BoolVar(&enableCache, "cache", false, "Enable response caching (default: false)")
	cmd.Flags().StringVar(&runCacheDir, "cache-dir", projectconfig.DefaultCacheDir, "Cache directory for storing responses")
	cmd.Flags().BoolVar(&failOnWeak, "fail-on-weak", false, "Exit non-zero when weak clusters are found")
	cmd.Flags().StringVar(&modelFlag, "model", "", "Model to use (overrides spec config)")
	cmd.Flags().StringVar(&engineFlag, "engine", "", "Engine to use: openai, copilot, mock (overrides spec config)")
	cmd.Flags().IntVar(&targetCount, "count", 0, "Number of prompts to run (overrides spec config)")

	return cmd
}

func runCommandE(cmd *cobra.Command, args []string) error {
	specPath := args[0]

	data, err := os.ReadFile(specPath)
	if err != nil {
		return fmt.Errorf("failed to read spec: %w", err)
	}
	if errs := validation.ValidateAnalysisBytes(data); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", e)
		}
		return fmt.Errorf("%s is not a valid analysis spec", specPath)
	}

	spec, err := models.ParseAnalysisSpec(data)
	if err != nil {
		return fmt.Errorf("failed to load spec: %w", err)
	}

	// Project configuration fills spec gaps, then package defaults fill
	// the rest. CLI flags, applied below, override everything.
	cfg, err := projectconfig.Load(filepath.Dir(specPath))
	if err != nil {
		return err
	}
	cfg.ApplyToSpec(spec)
	spec.ApplyDefaults()
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("invalid spec: %w", err)
	}

	// CLI flags override spec config
	if parallel {
		spec.Config.Concurrent = true
	}
	if workers > 0 {
		spec.Config.Workers = workers
	}
	if modelFlag != "" {
		spec.Config.ModelID = modelFlag
	}
	if engineFlag != "" {
		spec.Config.EngineType = engineFlag
	}
	if targetCount > 0 {
		spec.TargetCount = targetCount
	}

	entities, err := spec.ResolveEntities(filepath.Dir(specPath))
	if err != nil {
		return err
	}

	engine, err := buildEngine(spec)
	if err != nil {
		return err
	}

	useCache := enableCache
	if !cmd.Flags().Changed("cache") && cfg.Cache.Enabled != nil {
		useCache = *cfg.Cache.Enabled
	}
	cacheDir := runCacheDir
	if !cmd.Flags().Changed("cache-dir") && cfg.Cache.Dir != "" {
		cacheDir = cfg.Cache.Dir
	}

	opts := []orchestration.RunnerOption{orchestration.WithEntities(entities)}
	if useCache {
		opts = append(opts, orchestration.WithCache(cache.New(cacheDir)))
	}

	runner := orchestration.NewAnalysisRunner(spec, engine, opts...)
	runner.OnProgress(newProgressReporter(cmd.OutOrStdout(), verbose))

	outcome, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}

	printOutcomeTable(cmd.OutOrStdout(), outcome)

	if interpret {
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprint(cmd.OutOrStdout(), reporting.FormatSummaryReport(outcome))
	}

	resultsPath := outputPath
	if resultsPath == "" {
		dir := cfg.Paths.Results
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(filepath.Dir(specPath), dir)
		}
		resultsPath = filepath.Join(dir, outcome.RunID+".json")
	}
	if err := writeOutcome(resultsPath, outcome); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Results written to %s\n", resultsPath)

	if failOnWeak && len(outcome.WeakClusters) > 0 {
		return &WeakClusterError{
			Message: fmt.Sprintf("%d weak cluster(s) found", len(outcome.WeakClusters)),
		}
	}

	return nil
}

// buildEngine constructs the engine named by the spec, resolving the API
// key from the environment.
func buildEngine(spec *models.AnalysisSpec) (execution.Engine, error) {
	params := map[string]any{
		"model":               spec.Config.ModelID,
		"base_url":            spec.Config.BaseURL,
		"requests_per_minute": spec.Config.RequestsPerMinute,
	}

	if spec.Config.EngineType == "openai" {
		keyEnv := spec.Config.APIKeyEnv
		if keyEnv == "" {
			keyEnv = projectconfig.DefaultAPIKeyEnv
		}
		apiKey := os.Getenv(keyEnv)
		if apiKey == "" {
			return nil, fmt.Errorf("environment variable %s is not set (required for the openai engine)", keyEnv)
		}
		params["api_key"] = apiKey
	}

	return execution.Create(spec.Config.EngineType, params)
}

func writeOutcome(path string, outcome *models.AnalysisOutcome) error {
	data, err := json.MarshalIndent(outcome, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling outcome: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	return nil
}
