// Package orchestration drives one full analysis: generate the prompt
// batch, execute it against an engine, score every response, and assemble
// the run outcome.
package orchestration

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/aeobooster/aeobooster/internal/aggregate"
	"github.com/aeobooster/aeobooster/internal/cache"
	"github.com/aeobooster/aeobooster/internal/catalog"
	"github.com/aeobooster/aeobooster/internal/execution"
	"github.com/aeobooster/aeobooster/internal/generate"
	"github.com/aeobooster/aeobooster/internal/models"
	"github.com/aeobooster/aeobooster/internal/scoring"
)

// AnalysisRunner executes one analysis spec end to end.
type AnalysisRunner struct {
	spec   *models.AnalysisSpec
	engine execution.Engine

	entities []models.Entity

	// Response caching
	cache *cache.Cache

	// Progress tracking
	progressMu sync.Mutex
	listeners  []ProgressListener
}

// ProgressListener receives progress updates
type ProgressListener func(event ProgressEvent)

// EventType represents the type of progress event
type EventType string

// EventType constants
const (
	EventAnalysisStart    EventType = "analysis_start"
	EventAnalysisComplete EventType = "analysis_complete"
	EventPromptStart      EventType = "prompt_start"
	EventPromptComplete   EventType = "prompt_complete"
	EventPromptCached     EventType = "prompt_cached"
)

// ProgressEvent represents a progress update
type ProgressEvent struct {
	EventType    EventType
	Cluster      models.Cluster
	PromptNum    int
	TotalPrompts int
	Score        int
	MentionKind  models.MentionKind
	DurationMs   int64
	Err          string
}

// RunnerOption configures an AnalysisRunner.
type RunnerOption func(*AnalysisRunner)

// WithCache enables response caching
func WithCache(c *cache.Cache) RunnerOption {
	return func(r *AnalysisRunner) {
		r.cache = c
	}
}

// WithEntities overrides the entities resolved from the spec.
func WithEntities(entities []models.Entity) RunnerOption {
	return func(r *AnalysisRunner) {
		r.entities = entities
	}
}

// NewAnalysisRunner creates a new runner
func NewAnalysisRunner(spec *models.AnalysisSpec, engine execution.Engine, opts ...RunnerOption) *AnalysisRunner {
	r := &AnalysisRunner{
		spec:      spec,
		engine:    engine,
		entities:  spec.Entities,
		listeners: []ProgressListener{},
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// OnProgress registers a progress listener
func (r *AnalysisRunner) OnProgress(listener ProgressListener) {
	r.progressMu.Lock()
	defer r.progressMu.Unlock()
	r.listeners = append(r.listeners, listener)
}

func (r *AnalysisRunner) notifyProgress(event ProgressEvent) {
	r.progressMu.Lock()
	listeners := make([]ProgressListener, len(r.listeners))
	copy(listeners, r.listeners)
	r.progressMu.Unlock()

	for _, l := range listeners {
		l(event)
	}
}

// Run generates the batch, executes it, and returns the scored outcome.
// Individual prompt failures are recorded on their result and do not abort
// the run; only setup failures (catalog, generation, engine init) do.
func (r *AnalysisRunner) Run(ctx context.Context) (*models.AnalysisOutcome, error) {
	start := time.Now()

	cat, err := catalog.Load(r.spec.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("loading prompt catalog: %w", err)
	}

	batch, err := generate.GeneratePrompts(cat, r.entities, generate.Config{
		TargetCount:      r.spec.TargetCount,
		ClusterWeights:   r.spec.ClusterWeights,
		BusinessCategory: r.spec.BusinessCategory,
	})
	if err != nil {
		return nil, fmt.Errorf("generating prompts: %w", err)
	}

	if err := r.engine.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("initializing engine: %w", err)
	}
	defer func() {
		if err := r.engine.Shutdown(context.WithoutCancel(ctx)); err != nil {
			slog.Warn("engine shutdown failed", "error", err)
		}
	}()

	r.notifyProgress(ProgressEvent{
		EventType:    EventAnalysisStart,
		TotalPrompts: len(batch.Prompts),
	})

	results := r.executePrompts(ctx, batch.Prompts)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	outcome := r.buildOutcome(batch, results, start)

	r.notifyProgress(ProgressEvent{
		EventType:    EventAnalysisComplete,
		TotalPrompts: len(results),
		Score:        outcome.TotalScore,
		DurationMs:   outcome.DurationMs,
	})

	return outcome, nil
}

// executePrompts runs the batch with up to Workers in flight. Results land
// in their prompt's slot, so output order never depends on scheduling.
func (r *AnalysisRunner) executePrompts(ctx context.Context, prompts []models.GeneratedPrompt) []models.PromptResult {
	workers := r.spec.Config.Workers
	if workers <= 0 || !r.spec.Config.Concurrent {
		workers = 1
	}

	scorer := &scoring.Scorer{
		Competitors: r.spec.CompetitorTerms,
		Aliases:     r.spec.Aliases,
	}

	results := make([]models.PromptResult, len(prompts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, prompt := range prompts {
		g.Go(func() error {
			results[i] = r.executePrompt(ctx, prompt, scorer, i+1, len(prompts))
			return ctx.Err()
		})
	}

	// The only error an executor returns is context cancellation, which
	// the caller re-checks; partial results are still worth keeping.
	_ = g.Wait()

	return results
}

func (r *AnalysisRunner) executePrompt(ctx context.Context, prompt models.GeneratedPrompt, scorer *scoring.Scorer, num, total int) models.PromptResult {
	r.notifyProgress(ProgressEvent{
		EventType:    EventPromptStart,
		Cluster:      prompt.Cluster,
		PromptNum:    num,
		TotalPrompts: total,
	})

	responseText, durationMs, errMsg := r.fetchResponse(ctx, prompt, num, total)

	result := models.PromptResult{
		Prompt:       prompt,
		ResponseText: responseText,
		DurationMs:   durationMs,
		Error:        errMsg,
	}

	// Scores are always recomputed, even on a cache hit. The rubric is
	// deterministic, so this is cheap and survives rubric changes.
	scored := scorer.Score(responseText, prompt.TargetEntities)
	result.MentionKind = scored.MentionKind
	result.Score = scored.Score

	r.notifyProgress(ProgressEvent{
		EventType:    EventPromptComplete,
		Cluster:      prompt.Cluster,
		PromptNum:    num,
		TotalPrompts: total,
		Score:        result.Score,
		MentionKind:  result.MentionKind,
		DurationMs:   durationMs,
		Err:          errMsg,
	})

	return result
}

// fetchResponse returns the raw response text, serving from cache when
// possible. Engine errors come back as errMsg, never as a panic or abort.
func (r *AnalysisRunner) fetchResponse(ctx context.Context, prompt models.GeneratedPrompt, num, total int) (text string, durationMs int64, errMsg string) {
	key := cache.Key(r.spec.Config.EngineType, r.spec.Config.ModelID, prompt.Text)

	if r.cache != nil {
		if entry, ok := r.cache.Get(key); ok {
			r.notifyProgress(ProgressEvent{
				EventType:    EventPromptCached,
				Cluster:      prompt.Cluster,
				PromptNum:    num,
				TotalPrompts: total,
			})
			return entry.ResponseText, 0, ""
		}
	}

	resp, err := r.engine.Execute(ctx, &execution.Request{
		PromptID:   key,
		Prompt:     prompt.Text,
		TimeoutSec: r.spec.Config.TimeoutSec,
	})
	if err != nil {
		return "", 0, err.Error()
	}
	if !resp.Success {
		return resp.ResponseText, resp.DurationMs, resp.ErrorMsg
	}

	if r.cache != nil {
		if err := r.cache.Put(key, &cache.Entry{
			EngineType:   r.spec.Config.EngineType,
			ModelID:      r.spec.Config.ModelID,
			PromptText:   prompt.Text,
			ResponseText: resp.ResponseText,
			CachedAt:     time.Now().UTC(),
		}); err != nil {
			slog.Warn("failed to write cache entry", "error", err)
		}
	}

	return resp.ResponseText, resp.DurationMs, ""
}

func (r *AnalysisRunner) buildOutcome(batch *generate.Batch, results []models.PromptResult, start time.Time) *models.AnalysisOutcome {
	weakThreshold := models.DefaultWeakThreshold
	if r.spec.WeakThreshold != nil {
		weakThreshold = *r.spec.WeakThreshold
	}

	summary := aggregate.Aggregate(results, weakThreshold)

	return &models.AnalysisOutcome{
		RunID:            uuid.NewString(),
		SiteURL:          r.spec.SiteURL,
		BusinessCategory: r.spec.BusinessCategory,
		Timestamp:        start.UTC(),
		Setup: models.OutcomeSetup{
			EngineType:  r.spec.Config.EngineType,
			ModelID:     r.spec.Config.ModelID,
			TargetCount: r.spec.TargetCount,
			TimeoutSec:  r.spec.Config.TimeoutSec,
		},
		TotalScore:     summary.TotalScore,
		PromptCount:    summary.PromptCount,
		CandidateCount: batch.CandidateCount,
		Coverage:       batch.Coverage,
		ErrorCount:     summary.ErrorCount,
		DurationMs:     time.Since(start).Milliseconds(),
		Clusters:       summary.Clusters,
		WeakClusters:   summary.WeakClusters,
		Results:        results,
	}
}
