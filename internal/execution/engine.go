// Package execution sends generated prompts to an answer engine and
// returns the raw response text. Engines are deliberately dumb transports;
// mention classification happens downstream in scoring.
package execution

import (
	"context"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Engine is the interface for executing prompts against an answer engine.
type Engine interface {
	// Initialize sets up the engine
	Initialize(ctx context.Context) error

	// Execute sends one prompt and waits for the full response
	Execute(ctx context.Context, req *Request) (*Response, error)

	// Shutdown cleans up resources
	Shutdown(ctx context.Context) error
}

// Request is one prompt execution request.
type Request struct {
	PromptID   string
	Prompt     string
	TimeoutSec int
}

// Response is the result of one execution.
type Response struct {
	ResponseText string
	ModelID      string
	DurationMs   int64
	Success      bool
	ErrorMsg     string
}

// Options carries engine construction parameters decoded from run
// configuration. Engine-specific keys ride in by name.
type Options struct {
	ModelID           string `mapstructure:"model"`
	BaseURL           string `mapstructure:"base_url"`
	APIKey            string `mapstructure:"api_key"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute"`
}

// Create builds an engine by type name. params is decoded into Options so
// callers holding loosely typed configuration maps don't need to know each
// engine's constructor shape.
func Create(engineType string, params map[string]any) (Engine, error) {
	var opts Options
	if err := mapstructure.Decode(params, &opts); err != nil {
		return nil, fmt.Errorf("invalid engine params: %w", err)
	}

	switch engineType {
	case "openai":
		return NewOpenAIEngine(opts), nil
	case "copilot":
		return NewCopilotEngine(opts.ModelID), nil
	case "mock":
		return NewMockEngine(opts.ModelID), nil
	default:
		return nil, fmt.Errorf("unknown engine type: %s", engineType)
	}
}
