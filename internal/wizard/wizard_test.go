package wizard

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aeobooster/aeobooster/internal/models"
)

func testSetup() *AnalysisSetup {
	return &AnalysisSetup{
		SiteURL:          "https://acme.example",
		BusinessCategory: "saas",
		BrandNames:       []string{"Acme", "Acme Cloud"},
		CompetitorTerms:  []string{"BrandX"},
		TargetCount:      50,
		EngineType:       "mock",
	}
}

func TestGenerateAnalysisYAML(t *testing.T) {
	out, err := GenerateAnalysisYAML(testSetup())
	require.NoError(t, err)

	require.Contains(t, out, "name: acme-example")
	require.Contains(t, out, "site_url: https://acme.example")
	require.Contains(t, out, "business_category: saas")
	require.Contains(t, out, "- BrandX")
	require.Contains(t, out, "target_count: 50")
	require.Contains(t, out, "engine: mock")
}

func TestGenerateEntitiesYAML(t *testing.T) {
	out, err := GenerateEntitiesYAML(testSetup())
	require.NoError(t, err)

	require.Contains(t, out, "type: brand")
	require.Contains(t, out, "value: Acme Cloud")
}

func TestWriteAnalysisFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "acme")
	require.NoError(t, WriteAnalysisFiles(testSetup(), dir))

	// The scaffolded spec must load cleanly.
	spec, err := models.LoadAnalysisSpec(filepath.Join(dir, "analysis.yaml"))
	require.NoError(t, err)
	require.Equal(t, "https://acme.example", spec.SiteURL)
	require.Equal(t, 50, spec.TargetCount)
	require.Equal(t, "mock", spec.Config.EngineType)

	entities, err := spec.ResolveEntities(dir)
	require.NoError(t, err)
	require.Len(t, entities, 2)
	require.Equal(t, models.EntityBrand, entities[0].Type)

	_, err = os.Stat(filepath.Join(dir, "entities.yaml"))
	require.NoError(t, err)
}

func TestSpecName(t *testing.T) {
	require.Equal(t, "acme-example", specName("https://acme.example"))
	require.Equal(t, "www-acme-example", specName("https://www.acme.example/pricing"))
	require.Equal(t, "localhost", specName("https://localhost:8080"))
}
