// Package generate turns the prompt catalog and a run's entities into a
// cluster-balanced batch of concrete prompts.
package generate

import (
	"errors"
	"fmt"

	"github.com/aeobooster/aeobooster/internal/catalog"
	"github.com/aeobooster/aeobooster/internal/models"
	"github.com/aeobooster/aeobooster/internal/template"
)

// ErrNoEntities is returned when the entity list is empty. Ungrounded
// prompts carry no scoring signal, so the caller must supply at least one
// entity, even a generic placeholder.
var ErrNoEntities = errors.New("no entities supplied")

// ErrInvalidConfiguration is returned for a non-positive target count or a
// malformed cluster weight. Wrapped errors carry the detail.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Config controls batch generation.
type Config struct {
	// TargetCount is the desired batch size.
	TargetCount int
	// ClusterWeights sets how many prompts a cluster receives per selection
	// round when candidates exceed TargetCount. Missing or zero means 1.
	ClusterWeights map[models.Cluster]int
	// BusinessCategory is available to templates as {{.Category}}.
	BusinessCategory string
}

// Batch is the generator's result envelope. Partial coverage (fewer
// candidates than the target) is a normal outcome, reported via Coverage,
// never padded and never an error.
type Batch struct {
	Prompts        []models.GeneratedPrompt
	CandidateCount int
	// Coverage is len(Prompts) / TargetCount, capped at 1.
	Coverage float64
}

// GeneratePrompts produces one batch of prompts for the given entities.
//
// Candidates are built in catalog order: for each template, every entity
// whose type the template accepts yields one prompt. Duplicate
// (cluster, text) pairs are dropped. When candidates exceed the target, a
// weighted round-robin across clusters picks a representative subset,
// preserving template order within each cluster so no single cluster
// dominates the sample.
func GeneratePrompts(cat *catalog.Catalog, entities []models.Entity, cfg Config) (*Batch, error) {
	if cfg.TargetCount <= 0 {
		return nil, fmt.Errorf("%w: target_count must be positive, got %d", ErrInvalidConfiguration, cfg.TargetCount)
	}
	for cluster, weight := range cfg.ClusterWeights {
		if weight < 0 {
			return nil, fmt.Errorf("%w: cluster_weights[%s] must not be negative, got %d", ErrInvalidConfiguration, cluster, weight)
		}
	}

	entities = models.DedupeEntities(entities)
	promptable := entities[:0:0]
	for _, e := range entities {
		if e.Type.Promptable() {
			promptable = append(promptable, e)
		}
	}
	if len(promptable) == 0 {
		return nil, ErrNoEntities
	}

	// Build candidates per cluster, preserving catalog order.
	clusterOrder := []models.Cluster{}
	byCluster := map[models.Cluster][]models.GeneratedPrompt{}
	seen := map[string]bool{}
	candidateCount := 0

	for _, tmpl := range cat.ListTemplates() {
		accepts := map[models.EntityType]bool{}
		for _, et := range tmpl.EntityTypes {
			accepts[et] = true
		}
		for _, e := range promptable {
			if len(accepts) > 0 && !accepts[e.Type] {
				continue
			}
			text, err := template.Render(tmpl.Text, &template.Context{
				Entity:   e.Value,
				Category: cfg.BusinessCategory,
			})
			if err != nil {
				return nil, fmt.Errorf("rendering template for cluster %s: %w", tmpl.Cluster, err)
			}

			key := string(tmpl.Cluster) + "\x00" + text
			if seen[key] {
				continue
			}
			seen[key] = true

			if _, ok := byCluster[tmpl.Cluster]; !ok {
				clusterOrder = append(clusterOrder, tmpl.Cluster)
			}
			byCluster[tmpl.Cluster] = append(byCluster[tmpl.Cluster], models.GeneratedPrompt{
				Cluster:        tmpl.Cluster,
				Text:           text,
				TargetEntities: []string{e.Value},
			})
			candidateCount++
		}
	}

	var prompts []models.GeneratedPrompt
	if candidateCount <= cfg.TargetCount {
		// Everything fits; keep catalog order across clusters.
		prompts = make([]models.GeneratedPrompt, 0, candidateCount)
		for _, cluster := range clusterOrder {
			prompts = append(prompts, byCluster[cluster]...)
		}
	} else {
		prompts = selectBalanced(clusterOrder, byCluster, cfg)
	}

	coverage := float64(len(prompts)) / float64(cfg.TargetCount)
	if coverage > 1 {
		coverage = 1
	}

	return &Batch{
		Prompts:        prompts,
		CandidateCount: candidateCount,
		Coverage:       coverage,
	}, nil
}

// selectBalanced picks TargetCount prompts via weighted round-robin over
// clusters. Each round a cluster contributes up to its weight (default 1)
// of its next unused candidates.
func selectBalanced(order []models.Cluster, byCluster map[models.Cluster][]models.GeneratedPrompt, cfg Config) []models.GeneratedPrompt {
	cursors := make(map[models.Cluster]int, len(order))
	out := make([]models.GeneratedPrompt, 0, cfg.TargetCount)

	for len(out) < cfg.TargetCount {
		progressed := false
		for _, cluster := range order {
			weight := 1
			if w, ok := cfg.ClusterWeights[cluster]; ok && w > 0 {
				weight = w
			}
			for take := 0; take < weight && len(out) < cfg.TargetCount; take++ {
				idx := cursors[cluster]
				if idx >= len(byCluster[cluster]) {
					break
				}
				out = append(out, byCluster[cluster][idx])
				cursors[cluster] = idx + 1
				progressed = true
			}
			if len(out) == cfg.TargetCount {
				break
			}
		}
		if !progressed {
			break
		}
	}

	return out
}
