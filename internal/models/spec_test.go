package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAnalysisSpec(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "analysis.yaml", `name: acme-run
site_url: https://acme.example
business_category: E-commerce

entities:
  - type: brand
    value: Acme

competitor_terms:
  - BrandX

target_count: 50
cluster_weights:
  comparison: 3

config:
  engine: mock
  model: gpt-4o-mini
  timeout_seconds: 30
  parallel: true
  max_workers: 8
`)

	spec, err := LoadAnalysisSpec(path)
	require.NoError(t, err)

	require.Equal(t, "acme-run", spec.Name)
	require.Equal(t, "https://acme.example", spec.SiteURL)
	require.Equal(t, "E-commerce", spec.BusinessCategory)
	require.Equal(t, []Entity{{Type: EntityBrand, Value: "Acme"}}, spec.Entities)
	require.Equal(t, []string{"BrandX"}, spec.CompetitorTerms)
	require.Equal(t, 50, spec.TargetCount)
	require.Equal(t, 3, spec.ClusterWeights[ClusterComparison])
	require.Equal(t, "mock", spec.Config.EngineType)
	require.Equal(t, 30, spec.Config.TimeoutSec)
	require.True(t, spec.Config.Concurrent)
	require.Equal(t, 8, spec.Config.Workers)
}

func TestLoadAnalysisSpec_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "analysis.yaml", `site_url: acme.example
`)

	spec, err := LoadAnalysisSpec(path)
	require.NoError(t, err)

	require.Equal(t, DefaultTargetCount, spec.TargetCount)
	require.NotNil(t, spec.WeakThreshold)
	require.Equal(t, DefaultWeakThreshold, *spec.WeakThreshold)
	require.Equal(t, DefaultTimeoutSec, spec.Config.TimeoutSec)
	require.Equal(t, DefaultWorkers, spec.Config.Workers)
	require.Equal(t, DefaultEngineType, spec.Config.EngineType)
}

func TestLoadAnalysisSpec_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		errText string
	}{
		{
			name:    "missing site url",
			yaml:    "name: no-url\n",
			errText: "site_url is required",
		},
		{
			name:    "negative target count",
			yaml:    "site_url: acme.example\ntarget_count: -5\n",
			errText: "target_count must be positive",
		},
		{
			name:    "negative cluster weight",
			yaml:    "site_url: acme.example\ncluster_weights:\n  best_x: -1\n",
			errText: "cluster_weights[best_x] must not be negative",
		},
		{
			name:    "bad entity",
			yaml:    "site_url: acme.example\nentities:\n  - type: widget\n    value: Acme\n",
			errText: "invalid entity type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "analysis.yaml", tt.yaml)
			_, err := LoadAnalysisSpec(path)
			require.ErrorContains(t, err, tt.errText)
		})
	}
}

func TestLoadAnalysisSpec_NotFound(t *testing.T) {
	_, err := LoadAnalysisSpec(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestResolveEntities(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "entities.yaml", `entities:
  - type: brand
    value: Acme
  - type: product
    value: Cloud Backup
`)

	spec := &AnalysisSpec{
		SiteURL:      "acme.example",
		Entities:     []Entity{{Type: EntityBrand, Value: "ACME"}},
		EntitiesFile: "entities.yaml",
	}

	entities, err := spec.ResolveEntities(dir)
	require.NoError(t, err)

	// The inline "ACME" wins over the file's "Acme" after normalization.
	require.Equal(t, []Entity{
		{Type: EntityBrand, Value: "ACME"},
		{Type: EntityProduct, Value: "Cloud Backup"},
	}, entities)
}

func TestResolveEntities_MissingFile(t *testing.T) {
	spec := &AnalysisSpec{SiteURL: "acme.example", EntitiesFile: "missing.yaml"}
	_, err := spec.ResolveEntities(t.TempDir())
	require.ErrorContains(t, err, "loading entities file")
}

func TestLoadEntitiesFile_JSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "entities.json",
		`{"entities": [{"type": "service", "value": "hosting"}]}`)

	entities, err := LoadEntitiesFile(path)
	require.NoError(t, err)
	require.Equal(t, []Entity{{Type: EntityService, Value: "hosting"}}, entities)
}

func TestLoadEntitiesFile_InvalidEntity(t *testing.T) {
	path := writeFile(t, t.TempDir(), "entities.yaml", `entities:
  - type: brand
    value: ""
`)

	_, err := LoadEntitiesFile(path)
	require.ErrorContains(t, err, "must not be empty")
}

func TestAnalysisOutcome_AverageScore(t *testing.T) {
	o := &AnalysisOutcome{TotalScore: 14, PromptCount: 4}
	require.InDelta(t, 3.5, o.AverageScore(), 0.0001)

	empty := &AnalysisOutcome{}
	require.Zero(t, empty.AverageScore())
}

func TestAnalysisOutcome_MentionCounts(t *testing.T) {
	o := &AnalysisOutcome{Results: []PromptResult{
		{MentionKind: MentionTop3},
		{MentionKind: MentionTop3},
		{MentionKind: MentionVague},
		{MentionKind: MentionNone},
	}}

	counts := o.MentionCounts()
	require.Equal(t, 2, counts[MentionTop3])
	require.Equal(t, 1, counts[MentionVague])
	require.Equal(t, 1, counts[MentionNone])
	require.Zero(t, counts[MentionCompetitorOnly])
}
