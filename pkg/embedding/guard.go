package embedding

import (
	"context"
	"fmt"

	"device-assistant-ai/internal/pkg/logger"

	"golang.org/x/sync/semaphore"
)

// ExclusiveEmbedder serializes access to one shared provider handle.
// At most one Generate call runs at a time across all requests; a waiting
// caller gives up when its context ends.
type ExclusiveEmbedder struct {
	slot     *semaphore.Weighted
	provider EmbeddingProvider
	logger   logger.ILogger
}

var _ EmbeddingProvider = &ExclusiveEmbedder{}

func NewExclusiveEmbedder(provider EmbeddingProvider, log logger.ILogger) *ExclusiveEmbedder {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &ExclusiveEmbedder{slot: semaphore.NewWeighted(1), provider: provider, logger: log}
}

func (e *ExclusiveEmbedder) Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error) {
	if !e.slot.TryAcquire(1) {
		e.logger.Debug("EMBEDDING", "embedding model busy, waiting", nil)
		if err := e.slot.Acquire(ctx, 1); err != nil {
			return nil, err
		}
	}
	defer e.slot.Release(1)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.provider.Generate(ctx, text, taskType)
}

// Embed returns just the vector values.
func (e *ExclusiveEmbedder) Embed(ctx context.Context, text string, taskType string) ([]float32, error) {
	res, err := e.Generate(ctx, text, taskType)
	if err != nil {
		return nil, err
	}
	if res == nil || len(res.Embedding.Values) == 0 {
		return nil, fmt.Errorf("embedding provider returned no values")
	}
	return res.Embedding.Values, nil
}

type Settings struct {
	Provider string // "gemini", "ollama", "openai"
	Model    string
	BaseURL  string
	APIKey   string
}

func NewProvider(s Settings) (EmbeddingProvider, error) {
	switch s.Provider {
	case "gemini":
		p := NewGeminiProvider(s.APIKey, s.Model)
		return p, nil
	case "ollama":
		return NewOllamaProvider(s.BaseURL, s.Model), nil
	case "openai":
		return NewOpenAIProvider(s.APIKey, s.BaseURL, s.Model), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", s.Provider)
	}
}
