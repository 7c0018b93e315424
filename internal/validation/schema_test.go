package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateAnalysisBytes(t *testing.T) {
	t.Run("valid spec", func(t *testing.T) {
		doc := `
name: acme
site_url: https://acme.example
business_category: saas
entities:
  - type: brand
    value: Acme
target_count: 50
config:
  engine: mock
  model: mock-model
  timeout_seconds: 30
`
		require.Empty(t, ValidateAnalysisBytes([]byte(doc)))
	})

	t.Run("missing site_url", func(t *testing.T) {
		errs := ValidateAnalysisBytes([]byte(`name: acme`))
		require.NotEmpty(t, errs)
	})

	t.Run("bad engine type", func(t *testing.T) {
		doc := `
site_url: https://acme.example
config:
  engine: carrier-pigeon
`
		errs := ValidateAnalysisBytes([]byte(doc))
		require.NotEmpty(t, errs)
		require.True(t, strings.Contains(strings.Join(errs, "\n"), "engine"))
	})

	t.Run("unknown top level key", func(t *testing.T) {
		doc := `
site_url: https://acme.example
target_cuont: 50
`
		require.NotEmpty(t, ValidateAnalysisBytes([]byte(doc)))
	})

	t.Run("negative target count", func(t *testing.T) {
		doc := `
site_url: https://acme.example
target_count: -5
`
		require.NotEmpty(t, ValidateAnalysisBytes([]byte(doc)))
	})

	t.Run("yaml parse error", func(t *testing.T) {
		errs := ValidateAnalysisBytes([]byte("site_url: [unclosed"))
		require.Len(t, errs, 1)
		require.Contains(t, errs[0], "YAML parse error")
	})
}

func TestValidateEntitiesBytes(t *testing.T) {
	t.Run("valid yaml", func(t *testing.T) {
		doc := `
entities:
  - type: brand
    value: Acme
  - type: product
    value: Acme Cloud
`
		require.Empty(t, ValidateEntitiesBytes([]byte(doc)))
	})

	t.Run("valid json", func(t *testing.T) {
		doc := `{"entities": [{"type": "brand", "value": "Acme"}]}`
		require.Empty(t, ValidateEntitiesBytes([]byte(doc)))
	})

	t.Run("unknown entity type", func(t *testing.T) {
		doc := `
entities:
  - type: mascot
    value: Rocket
`
		require.NotEmpty(t, ValidateEntitiesBytes([]byte(doc)))
	})

	t.Run("empty list", func(t *testing.T) {
		require.NotEmpty(t, ValidateEntitiesBytes([]byte(`entities: []`)))
	})

	t.Run("empty value", func(t *testing.T) {
		doc := `
entities:
  - type: brand
    value: ""
`
		require.NotEmpty(t, ValidateEntitiesBytes([]byte(doc)))
	})
}
