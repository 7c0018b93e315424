// Package projectconfig provides the ProjectConfig struct and loader for
// .aeobooster.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/aeobooster/aeobooster/internal/models"
)

// Default values for project configuration. These are the single source of
// truth; New() references them and no other code should duplicate them.
const (
	DefaultAnalysesDir = "analyses/"
	DefaultResultsDir  = "results/"
	DefaultProjectsDir = "projects/"

	DefaultEngine  = "openai"
	DefaultModel   = "gpt-4o-mini"
	DefaultTimeout = 60
	DefaultWorkers = 4

	DefaultAPIKeyEnv = "OPENAI_API_KEY"

	DefaultCacheDir = ".aeobooster-cache"

	DefaultServerPort = 3000
)

// PathsConfig holds directory paths for analyses, results, and projects.
type PathsConfig struct {
	Analyses string `yaml:"analyses,omitempty"`
	Results  string `yaml:"results,omitempty"`
	Projects string `yaml:"projects,omitempty"`
}

// DefaultsConfig holds default execution parameters.
type DefaultsConfig struct {
	Engine            string `yaml:"engine,omitempty"`
	Model             string `yaml:"model,omitempty"`
	BaseURL           string `yaml:"base_url,omitempty"`
	APIKeyEnv         string `yaml:"api_key_env,omitempty"`
	Timeout           int    `yaml:"timeout,omitempty"`
	Parallel          *bool  `yaml:"parallel,omitempty"`
	Workers           int    `yaml:"workers,omitempty"`
	RequestsPerMinute int    `yaml:"requests_per_minute,omitempty"`
}

// CacheConfig holds cache settings.
type CacheConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Dir     string `yaml:"dir,omitempty"`
}

// ServerConfig holds API server settings. An empty ResultsDir means the
// server reads from Paths.Results.
type ServerConfig struct {
	Port           int      `yaml:"port,omitempty"`
	ResultsDir     string   `yaml:"results_dir,omitempty"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .aeobooster.yaml.
type ProjectConfig struct {
	Paths    PathsConfig    `yaml:"paths,omitempty"`
	Defaults DefaultsConfig `yaml:"defaults,omitempty"`
	Cache    CacheConfig    `yaml:"cache,omitempty"`
	Server   ServerConfig   `yaml:"server,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Paths: PathsConfig{
			Analyses: DefaultAnalysesDir,
			Results:  DefaultResultsDir,
			Projects: DefaultProjectsDir,
		},
		Defaults: DefaultsConfig{
			Engine:    DefaultEngine,
			Model:     DefaultModel,
			APIKeyEnv: DefaultAPIKeyEnv,
			Timeout:   DefaultTimeout,
			Parallel:  boolPtr(false),
			Workers:   DefaultWorkers,
		},
		Cache: CacheConfig{
			Enabled: boolPtr(false),
			Dir:     DefaultCacheDir,
		},
		Server: ServerConfig{
			Port: DefaultServerPort,
		},
	}
}

// Load finds .aeobooster.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // no file found → return defaults
		}
		return nil, fmt.Errorf("loading .aeobooster.yaml: %w", err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing .aeobooster.yaml: %w", err)
	}

	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// findConfigFile walks up from dir looking for .aeobooster.yaml (max 10
// levels). Returns os.ErrNotExist if no config file is found. Propagates
// real I/O errors (e.g. permission denied) instead of silently swallowing
// them.
func findConfigFile(dir string) ([]byte, error) {
	// Convert to absolute path so filepath.Dir(".") walks correctly.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, ".aeobooster.yaml")
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// ApplyToSpec fills execution fields the spec YAML left unset from the
// project configuration. Spec values win; CLI flags are applied by the
// caller afterwards and win over both.
func (c *ProjectConfig) ApplyToSpec(spec *models.AnalysisSpec) {
	if spec.Config.EngineType == "" {
		spec.Config.EngineType = c.Defaults.Engine
	}
	if spec.Config.ModelID == "" {
		spec.Config.ModelID = c.Defaults.Model
	}
	if spec.Config.BaseURL == "" {
		spec.Config.BaseURL = c.Defaults.BaseURL
	}
	if spec.Config.APIKeyEnv == "" {
		spec.Config.APIKeyEnv = c.Defaults.APIKeyEnv
	}
	if spec.Config.TimeoutSec == 0 {
		spec.Config.TimeoutSec = c.Defaults.Timeout
	}
	// A plain yaml bool cannot distinguish "false" from "unset", so the
	// project default can only enable concurrency, never disable it.
	if !spec.Config.Concurrent && c.Defaults.Parallel != nil {
		spec.Config.Concurrent = *c.Defaults.Parallel
	}
	if spec.Config.Workers == 0 {
		spec.Config.Workers = c.Defaults.Workers
	}
	if spec.Config.RequestsPerMinute == 0 {
		spec.Config.RequestsPerMinute = c.Defaults.RequestsPerMinute
	}
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	// Paths
	if src.Paths.Analyses != "" {
		dst.Paths.Analyses = src.Paths.Analyses
	}
	if src.Paths.Results != "" {
		dst.Paths.Results = src.Paths.Results
	}
	if src.Paths.Projects != "" {
		dst.Paths.Projects = src.Paths.Projects
	}

	// Defaults
	if src.Defaults.Engine != "" {
		dst.Defaults.Engine = src.Defaults.Engine
	}
	if src.Defaults.Model != "" {
		dst.Defaults.Model = src.Defaults.Model
	}
	if src.Defaults.BaseURL != "" {
		dst.Defaults.BaseURL = src.Defaults.BaseURL
	}
	if src.Defaults.APIKeyEnv != "" {
		dst.Defaults.APIKeyEnv = src.Defaults.APIKeyEnv
	}
	if src.Defaults.Timeout != 0 {
		dst.Defaults.Timeout = src.Defaults.Timeout
	}
	if src.Defaults.Parallel != nil {
		dst.Defaults.Parallel = src.Defaults.Parallel
	}
	if src.Defaults.Workers != 0 {
		dst.Defaults.Workers = src.Defaults.Workers
	}
	if src.Defaults.RequestsPerMinute != 0 {
		dst.Defaults.RequestsPerMinute = src.Defaults.RequestsPerMinute
	}

	// Cache
	if src.Cache.Enabled != nil {
		dst.Cache.Enabled = src.Cache.Enabled
	}
	if src.Cache.Dir != "" {
		dst.Cache.Dir = src.Cache.Dir
	}

	// Server
	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
	if src.Server.ResultsDir != "" {
		dst.Server.ResultsDir = src.Server.ResultsDir
	}
	if len(src.Server.AllowedOrigins) > 0 {
		dst.Server.AllowedOrigins = src.Server.AllowedOrigins
	}
}

func boolPtr(b bool) *bool {
	return &b
}
