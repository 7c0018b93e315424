package execution

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"
)

// OpenAIEngine talks to any OpenAI-compatible chat completion endpoint.
type OpenAIEngine struct {
	opts    Options
	cm      model.BaseChatModel
	limiter *rate.Limiter
}

var _ Engine = (*OpenAIEngine)(nil)

// NewOpenAIEngine creates the engine. The chat model is built lazily in
// Initialize so construction never needs a context or network.
func NewOpenAIEngine(opts Options) *OpenAIEngine {
	var limiter *rate.Limiter
	if opts.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(opts.RequestsPerMinute)/60.0), 1)
	}
	return &OpenAIEngine{
		opts:    opts,
		limiter: limiter,
	}
}

func (e *OpenAIEngine) Initialize(ctx context.Context) error {
	if e.opts.APIKey == "" {
		return fmt.Errorf("openai engine requires an API key")
	}
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: e.opts.BaseURL,
		APIKey:  e.opts.APIKey,
		Model:   e.opts.ModelID,
	})
	if err != nil {
		return fmt.Errorf("failed to create chat model: %w", err)
	}
	e.cm = cm
	return nil
}

func (e *OpenAIEngine) Execute(ctx context.Context, req *Request) (*Response, error) {
	if e.cm == nil {
		return nil, fmt.Errorf("engine not initialized")
	}

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	if req.TimeoutSec > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(req.TimeoutSec)*time.Second)
		defer cancel()
	}

	start := time.Now()
	resp, err := e.cm.Generate(ctx, []*schema.Message{
		{
			Role:    schema.User,
			Content: req.Prompt,
		},
	})
	if err != nil {
		// Model errors become a failed Response rather than an error so a
		// single bad prompt doesn't sink the whole batch.
		return &Response{
			ModelID:    e.opts.ModelID,
			DurationMs: time.Since(start).Milliseconds(),
			Success:    false,
			ErrorMsg:   err.Error(),
		}, nil
	}

	return &Response{
		ResponseText: resp.Content,
		ModelID:      e.opts.ModelID,
		DurationMs:   time.Since(start).Milliseconds(),
		Success:      true,
	}, nil
}

func (e *OpenAIEngine) Shutdown(ctx context.Context) error {
	e.cm = nil
	return nil
}
