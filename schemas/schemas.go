// Package schemas holds the embedded JSON Schemas for analysis spec and
// entities files.
package schemas

import _ "embed"

// AnalysisSchemaJSON is the JSON Schema for analysis.yaml files.
//
//go:embed analysis.schema.json
var AnalysisSchemaJSON string

// EntitiesSchemaJSON is the JSON Schema for entities files.
//
//go:embed entities.schema.json
var EntitiesSchemaJSON string
