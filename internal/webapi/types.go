package webapi

import (
	"time"

	"github.com/aeobooster/aeobooster/internal/models"
)

// RunSummary is the API response for a single run in the list.
type RunSummary struct {
	ID           string    `json:"id"`
	SiteURL      string    `json:"siteUrl"`
	Category     string    `json:"category,omitempty"`
	Model        string    `json:"model"`
	Engine       string    `json:"engine"`
	TotalScore   int       `json:"totalScore"`
	AverageScore float64   `json:"averageScore"`
	PromptCount  int       `json:"promptCount"`
	WeakClusters int       `json:"weakClusters"`
	Coverage     float64   `json:"coverage"`
	Duration     float64   `json:"duration"`
	Timestamp    time.Time `json:"timestamp"`
}

// RunDetail is the API response for a single run with the cluster
// breakdown and per-prompt results.
type RunDetail struct {
	RunSummary
	Clusters []ClusterResult `json:"clusters"`
	Weak     []WeakCluster   `json:"weak"`
	Results  []PromptResult  `json:"results"`
}

// ClusterResult is one cluster's aggregate within a run.
type ClusterResult struct {
	Cluster  string  `json:"cluster"`
	Count    int     `json:"count"`
	ScoreSum int     `json:"scoreSum"`
	Average  float64 `json:"average"`
}

// WeakCluster is a cluster flagged below the weak threshold.
type WeakCluster struct {
	Cluster string  `json:"cluster"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
	Advice  string  `json:"advice"`
}

// PromptResult is a per-prompt result within a run.
type PromptResult struct {
	Cluster     string             `json:"cluster"`
	Prompt      string             `json:"prompt"`
	MentionKind models.MentionKind `json:"mentionKind"`
	Score       int                `json:"score"`
	Duration    float64            `json:"duration"`
	Error       string             `json:"error,omitempty"`
}

// SummaryResponse is the aggregate KPI response.
type SummaryResponse struct {
	TotalRuns    int     `json:"totalRuns"`
	TotalPrompts int     `json:"totalPrompts"`
	AvgScore     float64 `json:"avgScore"`
	AvgCoverage  float64 `json:"avgCoverage"`
	AvgDuration  float64 `json:"avgDuration"`
}

// ProjectRequest is the body for creating a project.
type ProjectRequest struct {
	SiteURL          string `json:"site_url"`
	BusinessCategory string `json:"business_category,omitempty"`
}

// ProjectResponse is returned after project creation.
type ProjectResponse struct {
	ProjectID string `json:"project_id"`
	Status    string `json:"status"`
}

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is returned for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
