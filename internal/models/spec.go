package models

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults applied by LoadAnalysisSpec when the YAML omits a value.
const (
	DefaultTargetCount   = 100
	DefaultWeakThreshold = 1.0
	DefaultTimeoutSec    = 60
	DefaultWorkers       = 4
	DefaultEngineType    = "openai"
)

// AnalysisSpec describes one analysis run: the site under test, its
// entities, competitor terms, and generation/scoring knobs.
type AnalysisSpec struct {
	Name             string `yaml:"name"`
	SiteURL          string `yaml:"site_url"`
	BusinessCategory string `yaml:"business_category,omitempty"`

	// Entities may be listed inline, referenced from a file, or both.
	Entities     []Entity `yaml:"entities,omitempty"`
	EntitiesFile string   `yaml:"entities_file,omitempty"`

	CompetitorTerms []string            `yaml:"competitor_terms,omitempty"`
	Aliases         map[string][]string `yaml:"aliases,omitempty"`

	TargetCount    int             `yaml:"target_count,omitempty"`
	ClusterWeights map[Cluster]int `yaml:"cluster_weights,omitempty"`
	WeakThreshold  *float64        `yaml:"weak_threshold,omitempty"`

	// CatalogPath overrides the embedded template catalog.
	CatalogPath string `yaml:"catalog,omitempty"`

	Config RunConfig `yaml:"config"`
}

// RunConfig controls execution behavior for the LLM engine.
type RunConfig struct {
	EngineType        string `yaml:"engine" json:"engine_type"`
	ModelID           string `yaml:"model" json:"model_id"`
	BaseURL           string `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	APIKeyEnv         string `yaml:"api_key_env,omitempty" json:"-"`
	TimeoutSec        int    `yaml:"timeout_seconds" json:"timeout_sec"`
	Concurrent        bool   `yaml:"parallel" json:"concurrent"`
	Workers           int    `yaml:"max_workers,omitempty" json:"workers,omitempty"`
	RequestsPerMinute int    `yaml:"requests_per_minute,omitempty" json:"requests_per_minute,omitempty"`
}

// LoadAnalysisSpec loads a spec from a YAML file and applies defaults.
func LoadAnalysisSpec(path string) (*AnalysisSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	spec, err := ParseAnalysisSpec(data)
	if err != nil {
		return nil, err
	}

	spec.ApplyDefaults()

	if err := spec.Validate(); err != nil {
		return nil, err
	}

	return spec, nil
}

// ParseAnalysisSpec unmarshals a spec without applying defaults or
// validating. Callers that layer project configuration beneath the spec
// use this, then ApplyDefaults and Validate once the layers are merged.
func ParseAnalysisSpec(data []byte) (*AnalysisSpec, error) {
	var spec AnalysisSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

// ApplyDefaults fills zero-valued fields with package defaults.
func (s *AnalysisSpec) ApplyDefaults() {
	if s.TargetCount == 0 {
		s.TargetCount = DefaultTargetCount
	}
	if s.WeakThreshold == nil {
		t := DefaultWeakThreshold
		s.WeakThreshold = &t
	}
	if s.Config.TimeoutSec == 0 {
		s.Config.TimeoutSec = DefaultTimeoutSec
	}
	if s.Config.Workers == 0 {
		s.Config.Workers = DefaultWorkers
	}
	if s.Config.EngineType == "" {
		s.Config.EngineType = DefaultEngineType
	}
}

// Validate checks that the spec is well formed. It does not resolve the
// entities file; see ResolveEntities.
func (s *AnalysisSpec) Validate() error {
	if strings.TrimSpace(s.SiteURL) == "" {
		return fmt.Errorf("site_url is required")
	}
	if s.TargetCount <= 0 {
		return fmt.Errorf("target_count must be positive, got %d", s.TargetCount)
	}
	for cluster, weight := range s.ClusterWeights {
		if weight < 0 {
			return fmt.Errorf("cluster_weights[%s] must not be negative, got %d", cluster, weight)
		}
	}
	if s.Config.TimeoutSec < 1 {
		return fmt.Errorf("timeout_seconds must be at least 1, got %d", s.Config.TimeoutSec)
	}
	for _, e := range s.Entities {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("entities: %w", err)
		}
	}
	return nil
}

// ResolveEntities merges inline entities with the entities file (if set,
// resolved relative to baseDir) and deduplicates the result.
func (s *AnalysisSpec) ResolveEntities(baseDir string) ([]Entity, error) {
	entities := append([]Entity(nil), s.Entities...)

	if s.EntitiesFile != "" {
		path := s.EntitiesFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		fromFile, err := LoadEntitiesFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading entities file: %w", err)
		}
		entities = append(entities, fromFile...)
	}

	return DedupeEntities(entities), nil
}

// entitiesDoc is the on-disk shape of an entities file, matching the
// extractor's output envelope.
type entitiesDoc struct {
	Entities []Entity `yaml:"entities" json:"entities"`
}

// LoadEntitiesFile reads entities from a JSON or YAML file.
func LoadEntitiesFile(path string) ([]Entity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc entitiesDoc
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	for _, e := range doc.Entities {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	return doc.Entities, nil
}
