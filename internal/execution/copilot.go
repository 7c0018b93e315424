package execution

import (
	"context"
	"fmt"
	"sync"
	"time"

	copilot "github.com/github/copilot-sdk/go"
)

// CopilotEngine executes prompts through the GitHub Copilot CLI. Useful
// for probing how an agentic assistant surfaces a brand versus a plain
// chat completion endpoint.
type CopilotEngine struct {
	modelID string
	client  *copilot.Client

	startOnce sync.Once
}

var _ Engine = (*CopilotEngine)(nil)

// NewCopilotEngine creates the engine. modelID may be blank, in which case
// the copilot CLI picks its own fallback model.
func NewCopilotEngine(modelID string) *CopilotEngine {
	return &CopilotEngine{
		modelID: modelID,
		client: copilot.NewClient(&copilot.ClientOptions{
			LogLevel:  "error",
			AutoStart: copilot.Bool(false),
		}),
	}
}

func (e *CopilotEngine) Initialize(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

func (e *CopilotEngine) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, fmt.Errorf("nil req was passed to CopilotEngine.Execute")
	}

	var startErr error

	e.startOnce.Do(func() {
		// The client's autostart runs into trouble when first use happens on
		// concurrent goroutines, so start it exactly once ourselves.
		startErr = e.client.Start(ctx)
	})

	if startErr != nil {
		return nil, fmt.Errorf("copilot failed to start: %w", startErr)
	}

	if req.TimeoutSec > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(req.TimeoutSec)*time.Second)
		defer cancel()
	}

	start := time.Now()

	session, err := e.client.CreateSession(ctx, &copilot.SessionConfig{
		Model: e.modelID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	var mu sync.Mutex
	var parts []string

	unsubscribe := session.On(func(evt copilot.SessionEvent) {
		if evt.Type != copilot.AssistantMessage || evt.Data.Content == nil {
			return
		}
		mu.Lock()
		parts = append(parts, *evt.Data.Content)
		mu.Unlock()
	})
	defer unsubscribe()

	_, err = session.SendAndWait(ctx, copilot.MessageOptions{
		Prompt: req.Prompt,
	})

	var errMsg string
	if err != nil {
		// Inline conversation errors arrive through the returned error too;
		// carry the message in the response instead of failing the call.
		errMsg = err.Error()
	}

	mu.Lock()
	text := joinParts(parts)
	mu.Unlock()

	return &Response{
		ResponseText: text,
		ModelID:      e.modelID,
		DurationMs:   time.Since(start).Milliseconds(),
		Success:      err == nil,
		ErrorMsg:     errMsg,
	}, nil
}

func (e *CopilotEngine) Shutdown(ctx context.Context) error {
	if err := e.client.Stop(); err != nil {
		return fmt.Errorf("failed to stop copilot client: %w", err)
	}
	return nil
}

func joinParts(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "\n"
		}
		out += p
	}
	return out
}
