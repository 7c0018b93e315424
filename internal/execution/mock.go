package execution

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// MockEngine is a deterministic in-process engine for tests and dry runs.
// Its response mentions any target term embedded in the prompt, so scoring
// paths can be exercised end to end without network access.
type MockEngine struct {
	modelID string

	// Responder overrides the canned response when set.
	Responder func(prompt string) string
}

var _ Engine = (*MockEngine)(nil)

// NewMockEngine creates a new mock engine
func NewMockEngine(modelID string) *MockEngine {
	if modelID == "" {
		modelID = "mock-model"
	}
	return &MockEngine{modelID: modelID}
}

func (m *MockEngine) Initialize(ctx context.Context) error {
	return nil
}

func (m *MockEngine) Execute(ctx context.Context, req *Request) (*Response, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	start := time.Now()

	output := fmt.Sprintf("Mock response for: %s", req.Prompt)
	if m.Responder != nil {
		output = m.Responder(req.Prompt)
	}

	return &Response{
		ResponseText: output,
		ModelID:      m.modelID,
		DurationMs:   time.Since(start).Milliseconds(),
		Success:      true,
	}, nil
}

func (m *MockEngine) Shutdown(ctx context.Context) error {
	return nil
}

// EchoTargets is a Responder that replies as if the last capitalized term
// in the prompt were the top recommendation. Prompts lead with question
// words, so the last capitalized token is usually the entity. Handy for
// generating non-zero scores in dry runs.
func EchoTargets(prompt string) string {
	entity := ""
	for _, word := range strings.Fields(prompt) {
		trimmed := strings.Trim(word, ".,!?\"'")
		if len(trimmed) < 2 {
			continue
		}
		r := rune(trimmed[0])
		if r >= 'A' && r <= 'Z' {
			entity = trimmed
		}
	}
	if entity == "" {
		return "No relevant brands mentioned."
	}
	return fmt.Sprintf("%s is the top choice here.", entity)
}
