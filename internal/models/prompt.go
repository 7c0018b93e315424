package models

// Cluster tags a prompt template with its intent cluster.
type Cluster string

// Canonical clusters shipped with the default catalog. A catalog may define
// additional clusters.
const (
	ClusterPainPoint  Cluster = "pain_point"
	ClusterBestX      Cluster = "best_x"
	ClusterAffordable Cluster = "affordable"
	ClusterComparison Cluster = "comparison"
	ClusterSupport    Cluster = "support"
	ClusterSafety     Cluster = "safety"
)

// PromptTemplate is one entry in the prompt cluster library. Templates are
// loaded once at startup and never mutated.
type PromptTemplate struct {
	Cluster Cluster `yaml:"cluster" json:"cluster"`
	// Text contains Go text/template markers, e.g. {{.Entity}}.
	Text string `yaml:"text" json:"text"`
	// EntityTypes lists which entity types this template accepts. A template
	// with no compatible entity in a run is skipped, not an error.
	EntityTypes []EntityType `yaml:"entity_types" json:"entity_types"`
}

// GeneratedPrompt is a concrete prompt produced by substituting an entity
// into a template. Immutable once created; belongs to exactly one run.
type GeneratedPrompt struct {
	Cluster Cluster `json:"cluster"`
	Text    string  `json:"text"`
	// TargetEntities are the entity values expected to be discoverable via
	// this prompt.
	TargetEntities []string `json:"target_entities"`
}

// MentionKind classifies how (or whether) a target entity shows up in a
// model response.
type MentionKind string

const (
	MentionNone           MentionKind = "none"
	MentionVague          MentionKind = "vague"
	MentionTop3           MentionKind = "top3"
	MentionCompetitorOnly MentionKind = "competitor_only"

	// MentionRanked is part of the stored record shape but is not produced
	// by the current rubric. Reserved for list-position scoring.
	MentionRanked MentionKind = "ranked"
)

// PromptResult pairs a generated prompt with the model's raw response and
// the derived score. Score and MentionKind are pure functions of the
// response text and the run's target/competitor terms; they are recomputed,
// never stored authoritatively elsewhere.
type PromptResult struct {
	Prompt       GeneratedPrompt `json:"prompt"`
	ResponseText string          `json:"response_text"`
	MentionKind  MentionKind     `json:"mention_kind"`
	Score        int             `json:"score"`
	DurationMs   int64           `json:"duration_ms,omitempty"`
	Error        string          `json:"error,omitempty"`
}
