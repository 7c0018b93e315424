// Package catalog holds the prompt cluster library: the canonical, versioned
// set of prompt templates an analysis run draws from.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aeobooster/aeobooster/internal/models"
	"github.com/aeobooster/aeobooster/internal/template"
)

//go:embed default.yaml
var defaultCatalogYAML []byte

// Catalog is an immutable, ordered collection of prompt templates.
type Catalog struct {
	Version   string                  `yaml:"version"`
	Templates []models.PromptTemplate `yaml:"templates"`
}

// Default returns the embedded catalog shipped with the binary.
func Default() (*Catalog, error) {
	return parse(defaultCatalogYAML, "embedded default catalog")
}

// Load reads a catalog from a YAML file. An empty path loads the default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parse(data, path)
}

func parse(data []byte, source string) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", source, err)
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Templates) == 0 {
		return fmt.Errorf("catalog has no templates")
	}
	for i, t := range c.Templates {
		if strings.TrimSpace(string(t.Cluster)) == "" {
			return fmt.Errorf("template %d: cluster is required", i)
		}
		if strings.TrimSpace(t.Text) == "" {
			return fmt.Errorf("template %d: text is required", i)
		}
		if err := template.Check(t.Text); err != nil {
			return fmt.Errorf("template %d: %w", i, err)
		}
		for _, et := range t.EntityTypes {
			if _, err := models.ParseEntityType(string(et)); err != nil {
				return fmt.Errorf("template %d: %w", i, err)
			}
		}
	}
	return nil
}

// ListTemplates returns the templates in catalog order. The ordering is
// stable for the lifetime of the process; callers must not mutate the
// returned slice.
func (c *Catalog) ListTemplates() []models.PromptTemplate {
	return c.Templates
}

// Clusters returns the distinct clusters in order of first appearance.
func (c *Catalog) Clusters() []models.Cluster {
	seen := make(map[models.Cluster]bool)
	var out []models.Cluster
	for _, t := range c.Templates {
		if !seen[t.Cluster] {
			seen[t.Cluster] = true
			out = append(out, t.Cluster)
		}
	}
	return out
}
