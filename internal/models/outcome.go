package models

import "time"

// ClusterStats aggregates the scores of all prompts in one cluster.
type ClusterStats struct {
	Count    int     `json:"count"`
	ScoreSum int     `json:"score_sum"`
	Average  float64 `json:"average"`
}

// WeakCluster identifies a cluster whose average score fell below the
// configured threshold.
type WeakCluster struct {
	Cluster Cluster `json:"cluster"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// OutcomeSetup records how a run was executed.
type OutcomeSetup struct {
	EngineType  string `json:"engine_type"`
	ModelID     string `json:"model_id"`
	TargetCount int    `json:"target_count"`
	TimeoutSec  int    `json:"timeout_sec"`
}

// AnalysisOutcome is the complete result of one analysis run.
//
// Invariant: TotalScore equals the sum of all Results[i].Score, and the
// ScoreSum values in Clusters also sum to TotalScore.
type AnalysisOutcome struct {
	RunID            string       `json:"run_id"`
	ProjectID        string       `json:"project_id,omitempty"`
	SiteURL          string       `json:"site_url"`
	BusinessCategory string       `json:"business_category,omitempty"`
	Timestamp        time.Time    `json:"timestamp"`
	Setup            OutcomeSetup `json:"config"`

	TotalScore     int     `json:"total_score"`
	PromptCount    int     `json:"prompt_count"`
	CandidateCount int     `json:"candidate_count"`
	Coverage       float64 `json:"coverage"`
	ErrorCount     int     `json:"error_count,omitempty"`
	DurationMs     int64   `json:"duration_ms"`

	Clusters     map[Cluster]ClusterStats `json:"cluster_breakdown"`
	WeakClusters []WeakCluster            `json:"weak_clusters"`

	Results []PromptResult `json:"results"`
}

// AverageScore returns the mean per-prompt score, 0 for an empty run.
func (o *AnalysisOutcome) AverageScore() float64 {
	if o.PromptCount == 0 {
		return 0
	}
	return float64(o.TotalScore) / float64(o.PromptCount)
}

// MentionCounts tallies results by mention kind.
func (o *AnalysisOutcome) MentionCounts() map[MentionKind]int {
	counts := make(map[MentionKind]int)
	for _, r := range o.Results {
		counts[r.MentionKind]++
	}
	return counts
}
