package aggregate

import (
	"math/rand"
	"testing"

	"github.com/aeobooster/aeobooster/internal/models"
	"github.com/stretchr/testify/require"
)

func result(cluster models.Cluster, score int) models.PromptResult {
	return models.PromptResult{
		Prompt: models.GeneratedPrompt{Cluster: cluster, Text: "prompt"},
		Score:  score,
	}
}

func TestAggregate(t *testing.T) {
	results := []models.PromptResult{
		result(models.ClusterBestX, 4),
		result(models.ClusterBestX, 3),
		result(models.ClusterPainPoint, 1),
		result(models.ClusterPainPoint, 0),
		result(models.ClusterComparison, -2),
	}

	summary := Aggregate(results, 1.0)

	require.Equal(t, 6, summary.TotalScore)
	require.Equal(t, 5, summary.PromptCount)
	require.Equal(t, 0, summary.ErrorCount)

	require.Len(t, summary.Clusters, 3)
	require.Equal(t, models.ClusterStats{Count: 2, ScoreSum: 7, Average: 3.5}, summary.Clusters[models.ClusterBestX])
	require.Equal(t, models.ClusterStats{Count: 2, ScoreSum: 1, Average: 0.5}, summary.Clusters[models.ClusterPainPoint])
	require.Equal(t, models.ClusterStats{Count: 1, ScoreSum: -2, Average: -2}, summary.Clusters[models.ClusterComparison])

	// Weakest first.
	require.Equal(t, []models.WeakCluster{
		{Cluster: models.ClusterComparison, Average: -2, Count: 1},
		{Cluster: models.ClusterPainPoint, Average: 0.5, Count: 2},
	}, summary.WeakClusters)
}

func TestAggregateBreakdownSumsToTotal(t *testing.T) {
	results := []models.PromptResult{
		result(models.ClusterBestX, 4),
		result(models.ClusterAffordable, -2),
		result(models.ClusterSupport, 1),
		result(models.ClusterSupport, 3),
		result(models.ClusterSafety, 0),
	}

	summary := Aggregate(results, 1.0)

	sum := 0
	for _, stats := range summary.Clusters {
		sum += stats.ScoreSum
	}
	require.Equal(t, summary.TotalScore, sum)
}

func TestAggregateOrderInvariant(t *testing.T) {
	results := []models.PromptResult{
		result(models.ClusterBestX, 4),
		result(models.ClusterBestX, 1),
		result(models.ClusterPainPoint, 0),
		result(models.ClusterComparison, -2),
		result(models.ClusterSupport, 3),
		result(models.ClusterSafety, 1),
	}

	want := Aggregate(results, 1.0)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 5; i++ {
		shuffled := make([]models.PromptResult, len(results))
		copy(shuffled, results)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		require.Equal(t, want, Aggregate(shuffled, 1.0))
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	summary := Aggregate(nil, 1.0)
	require.Equal(t, 0, summary.TotalScore)
	require.Equal(t, 0, summary.PromptCount)
	require.Empty(t, summary.Clusters)
	require.Empty(t, summary.WeakClusters)
}

func TestAggregateWeakTies(t *testing.T) {
	results := []models.PromptResult{
		result(models.ClusterSupport, 0),
		result(models.ClusterSafety, 0),
	}

	summary := Aggregate(results, 1.0)
	require.Equal(t, []models.WeakCluster{
		{Cluster: models.ClusterSafety, Average: 0, Count: 1},
		{Cluster: models.ClusterSupport, Average: 0, Count: 1},
	}, summary.WeakClusters)
}

func TestAggregateCountsErrors(t *testing.T) {
	results := []models.PromptResult{
		result(models.ClusterBestX, 3),
		{Prompt: models.GeneratedPrompt{Cluster: models.ClusterBestX}, Error: "timeout"},
	}

	summary := Aggregate(results, 1.0)
	require.Equal(t, 1, summary.ErrorCount)
	require.Equal(t, 2, summary.PromptCount)
}
