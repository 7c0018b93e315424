// Package aggregate rolls per-prompt scores into run-level totals, a
// per-cluster breakdown, and the list of weak clusters.
package aggregate

import (
	"sort"

	"github.com/aeobooster/aeobooster/internal/models"
)

// Summary is the aggregation of one run's prompt results. It is a pure
// function of the result set: shuffling the input changes nothing.
type Summary struct {
	TotalScore  int
	PromptCount int
	ErrorCount  int
	Clusters    map[models.Cluster]models.ClusterStats
	// WeakClusters is sorted by ascending average, ties broken by
	// cluster name so output is stable.
	WeakClusters []models.WeakCluster
}

// Aggregate computes totals and the cluster breakdown. Clusters with no
// prompts are omitted rather than zero-filled; a zero average would read
// as a real (and misleading) signal. Clusters whose average falls below
// weakThreshold are flagged weak.
func Aggregate(results []models.PromptResult, weakThreshold float64) *Summary {
	summary := &Summary{
		Clusters: map[models.Cluster]models.ClusterStats{},
	}

	for _, r := range results {
		summary.TotalScore += r.Score
		summary.PromptCount++
		if r.Error != "" {
			summary.ErrorCount++
		}

		stats := summary.Clusters[r.Prompt.Cluster]
		stats.Count++
		stats.ScoreSum += r.Score
		summary.Clusters[r.Prompt.Cluster] = stats
	}

	for cluster, stats := range summary.Clusters {
		stats.Average = float64(stats.ScoreSum) / float64(stats.Count)
		summary.Clusters[cluster] = stats

		if stats.Average < weakThreshold {
			summary.WeakClusters = append(summary.WeakClusters, models.WeakCluster{
				Cluster: cluster,
				Average: stats.Average,
				Count:   stats.Count,
			})
		}
	}

	sort.Slice(summary.WeakClusters, func(i, j int) bool {
		a, b := summary.WeakClusters[i], summary.WeakClusters[j]
		if a.Average != b.Average {
			return a.Average < b.Average
		}
		return a.Cluster < b.Cluster
	})

	return summary
}
