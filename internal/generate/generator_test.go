package generate

import (
	"testing"

	"github.com/aeobooster/aeobooster/internal/catalog"
	"github.com/aeobooster/aeobooster/internal/models"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	return &catalog.Catalog{
		Version: "1",
		Templates: []models.PromptTemplate{
			{Cluster: models.ClusterPainPoint, Text: "How do I fix issues with {{.Entity}}?"},
			{Cluster: models.ClusterPainPoint, Text: "What are common problems with {{.Entity}}?"},
			{Cluster: models.ClusterBestX, Text: "What is the best alternative to {{.Entity}}?"},
			{Cluster: models.ClusterBestX, Text: "Which {{.Category}} product is best in 2026?"},
			{Cluster: models.ClusterComparison, Text: "How does {{.Entity}} compare to its competitors?"},
		},
	}
}

func TestGeneratePrompts(t *testing.T) {
	cat := testCatalog(t)
	entities := []models.Entity{
		{Type: models.EntityBrand, Value: "Acme"},
		{Type: models.EntityProduct, Value: "Acme Cloud"},
	}

	batch, err := GeneratePrompts(cat, entities, Config{TargetCount: 100, BusinessCategory: "saas"})
	require.NoError(t, err)

	// "Which {{.Category}} product is best" renders identically for both
	// entities, so the duplicate collapses: 4 templates x 2 entities + 1.
	require.Equal(t, 9, batch.CandidateCount)
	require.Len(t, batch.Prompts, 9)
	require.InDelta(t, 0.09, batch.Coverage, 0.0001)

	require.Equal(t, "How do I fix issues with Acme?", batch.Prompts[0].Text)
	require.Equal(t, models.ClusterPainPoint, batch.Prompts[0].Cluster)
	require.Equal(t, []string{"Acme"}, batch.Prompts[0].TargetEntities)

	for _, p := range batch.Prompts {
		require.NotContains(t, p.Text, "{{")
	}
}

func TestGeneratePromptsBalancesClusters(t *testing.T) {
	cat := testCatalog(t)

	entities := make([]models.Entity, 0, 20)
	for _, v := range []string{"Acme", "BravoSoft", "CorpX", "DeltaOne", "EchoApp"} {
		entities = append(entities, models.Entity{Type: models.EntityBrand, Value: v})
	}

	batch, err := GeneratePrompts(cat, entities, Config{TargetCount: 6, BusinessCategory: "saas"})
	require.NoError(t, err)
	require.Len(t, batch.Prompts, 6)
	require.Equal(t, 1.0, batch.Coverage)

	counts := map[models.Cluster]int{}
	for _, p := range batch.Prompts {
		counts[p.Cluster]++
	}
	require.Equal(t, 2, counts[models.ClusterPainPoint])
	require.Equal(t, 2, counts[models.ClusterBestX])
	require.Equal(t, 2, counts[models.ClusterComparison])
}

func TestGeneratePromptsClusterWeights(t *testing.T) {
	cat := testCatalog(t)

	entities := make([]models.Entity, 0, 8)
	for _, v := range []string{"Acme", "BravoSoft", "CorpX", "DeltaOne"} {
		entities = append(entities, models.Entity{Type: models.EntityBrand, Value: v})
	}

	batch, err := GeneratePrompts(cat, entities, Config{
		TargetCount:      8,
		BusinessCategory: "saas",
		ClusterWeights:   map[models.Cluster]int{models.ClusterComparison: 3},
	})
	require.NoError(t, err)
	require.Len(t, batch.Prompts, 8)

	counts := map[models.Cluster]int{}
	for _, p := range batch.Prompts {
		counts[p.Cluster]++
	}
	// Comparison takes three slots per round, the rest take one.
	require.Equal(t, 4, counts[models.ClusterComparison])
	require.Equal(t, 2, counts[models.ClusterPainPoint])
	require.Equal(t, 2, counts[models.ClusterBestX])
}

func TestGeneratePromptsEntityTypeFilter(t *testing.T) {
	cat := &catalog.Catalog{
		Version: "1",
		Templates: []models.PromptTemplate{
			{Cluster: models.ClusterBestX, Text: "Is {{.Entity}} worth buying?", EntityTypes: []models.EntityType{models.EntityProduct}},
		},
	}

	batch, err := GeneratePrompts(cat, []models.Entity{
		{Type: models.EntityBrand, Value: "Acme"},
		{Type: models.EntityProduct, Value: "Acme Cloud"},
	}, Config{TargetCount: 10})
	require.NoError(t, err)
	require.Len(t, batch.Prompts, 1)
	require.Equal(t, "Is Acme Cloud worth buying?", batch.Prompts[0].Text)
}

func TestGeneratePromptsErrors(t *testing.T) {
	cat := testCatalog(t)

	t.Run("no entities", func(t *testing.T) {
		_, err := GeneratePrompts(cat, nil, Config{TargetCount: 10})
		require.ErrorIs(t, err, ErrNoEntities)
	})

	t.Run("only non promptable entities", func(t *testing.T) {
		_, err := GeneratePrompts(cat, []models.Entity{
			{Type: models.EntityLocation, Value: "Seattle"},
		}, Config{TargetCount: 10})
		require.ErrorIs(t, err, ErrNoEntities)
	})

	t.Run("zero target count", func(t *testing.T) {
		_, err := GeneratePrompts(cat, []models.Entity{{Type: models.EntityBrand, Value: "Acme"}}, Config{TargetCount: 0})
		require.ErrorIs(t, err, ErrInvalidConfiguration)
	})

	t.Run("negative cluster weight", func(t *testing.T) {
		_, err := GeneratePrompts(cat, []models.Entity{{Type: models.EntityBrand, Value: "Acme"}}, Config{
			TargetCount:    10,
			ClusterWeights: map[models.Cluster]int{models.ClusterBestX: -1},
		})
		require.ErrorIs(t, err, ErrInvalidConfiguration)
	})
}

func TestGeneratePromptsDeduplicatesEntities(t *testing.T) {
	cat := testCatalog(t)

	batch, err := GeneratePrompts(cat, []models.Entity{
		{Type: models.EntityBrand, Value: "Acme"},
		{Type: models.EntityBrand, Value: "  acme "},
	}, Config{TargetCount: 100, BusinessCategory: "saas"})
	require.NoError(t, err)
	require.Len(t, batch.Prompts, 5)
}
