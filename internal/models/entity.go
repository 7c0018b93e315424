package models

import (
	"fmt"
	"strings"
)

// EntityType classifies an extracted business entity.
type EntityType string

const (
	EntityBrand   EntityType = "brand"
	EntityProduct EntityType = "product"
	EntityService EntityType = "service"

	// Additional types the extractor may emit. They are stored and reported
	// but do not participate in prompt generation.
	EntityFeature  EntityType = "feature"
	EntityLocation EntityType = "location"
	EntityPrice    EntityType = "price"
)

var knownEntityTypes = map[EntityType]bool{
	EntityBrand:    true,
	EntityProduct:  true,
	EntityService:  true,
	EntityFeature:  true,
	EntityLocation: true,
	EntityPrice:    true,
}

// ParseEntityType converts a string to an EntityType.
func ParseEntityType(s string) (EntityType, error) {
	t := EntityType(strings.ToLower(strings.TrimSpace(s)))
	if !knownEntityTypes[t] {
		return "", fmt.Errorf("invalid entity type %q", s)
	}
	return t, nil
}

// Promptable returns true when entities of this type can be injected
// into prompt templates.
func (t EntityType) Promptable() bool {
	return t == EntityBrand || t == EntityProduct || t == EntityService
}

// Entity is a business term extracted from a site by the external extractor.
type Entity struct {
	Type  EntityType `yaml:"type" json:"type"`
	Value string     `yaml:"value" json:"value"`
}

// Normalized returns the value used for deduplication: lowercased, trimmed,
// with runs of whitespace collapsed to a single space.
func (e Entity) Normalized() string {
	return strings.Join(strings.Fields(strings.ToLower(e.Value)), " ")
}

// Validate checks that the entity has a known type and a non-empty value.
func (e Entity) Validate() error {
	if !knownEntityTypes[e.Type] {
		return fmt.Errorf("invalid entity type %q", e.Type)
	}
	if strings.TrimSpace(e.Value) == "" {
		return fmt.Errorf("entity value must not be empty")
	}
	return nil
}

// DedupeEntities removes duplicate entities, keyed on (type, normalized value).
// The first occurrence wins and input order is preserved.
func DedupeEntities(entities []Entity) []Entity {
	seen := make(map[string]bool, len(entities))
	out := make([]Entity, 0, len(entities))
	for _, e := range entities {
		key := string(e.Type) + "\x00" + e.Normalized()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	return out
}
