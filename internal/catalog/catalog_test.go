package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aeobooster/aeobooster/internal/models"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	require.Equal(t, "1", c.Version)
	require.NotEmpty(t, c.Templates)

	// The shipped catalog covers all six canonical clusters.
	clusters := c.Clusters()
	require.ElementsMatch(t, []models.Cluster{
		models.ClusterPainPoint,
		models.ClusterBestX,
		models.ClusterAffordable,
		models.ClusterComparison,
		models.ClusterSupport,
		models.ClusterSafety,
	}, clusters)

	// Order of first appearance is the catalog file order.
	require.Equal(t, models.ClusterPainPoint, clusters[0])
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	require.NotEmpty(t, c.Templates)
}

func TestLoad_CustomCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `version: "2"
templates:
  - cluster: best_x
    text: "What is the best {{.Entity}}?"
    entity_types: [product]
  - cluster: safety
    text: "Is {{.Entity}} safe to use?"
    entity_types: [brand, product]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "2", c.Version)
	require.Len(t, c.Templates, 2)
	require.Equal(t, models.ClusterBestX, c.Templates[0].Cluster)
	require.Equal(t, []models.EntityType{models.EntityBrand, models.EntityProduct}, c.Templates[1].EntityTypes)
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errText string
	}{
		{
			name:    "no templates",
			content: `version: "1"` + "\n",
			errText: "no templates",
		},
		{
			name: "missing cluster",
			content: `templates:
  - cluster: ""
    text: "A prompt"
`,
			errText: "cluster is required",
		},
		{
			name: "missing text",
			content: `templates:
  - cluster: best_x
    text: ""
`,
			errText: "text is required",
		},
		{
			name: "malformed template text",
			content: `templates:
  - cluster: best_x
    text: "Broken {{.Entity"
`,
			errText: "parse",
		},
		{
			name: "unknown entity type",
			content: `templates:
  - cluster: best_x
    text: "What is the best {{.Entity}}?"
    entity_types: [widget]
`,
			errText: "invalid entity type",
		},
		{
			name:    "not yaml",
			content: "{{{{",
			errText: "parsing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "catalog.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			_, err := Load(path)
			require.ErrorContains(t, err, tt.errText)
		})
	}
}

func TestListTemplates_Order(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	a := c.ListTemplates()
	b := c.ListTemplates()
	require.Equal(t, a, b)
	require.Equal(t, len(c.Templates), len(a))
}
