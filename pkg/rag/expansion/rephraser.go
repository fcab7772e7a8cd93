package expansion

import (
	"context"
	"strings"

	"device-assistant-ai/internal/pkg/logger"
	"device-assistant-ai/pkg/llm"
	"device-assistant-ai/pkg/rag/prompt"
)

// VariantCache remembers successful rephrasings per query.
type VariantCache interface {
	Get(ctx context.Context, query string) ([]string, bool)
	Set(ctx context.Context, query string, variants []string) error
}

type Rephraser struct {
	llm    llm.LLMProvider
	cache  VariantCache
	legacy bool
	logger logger.ILogger
}

// NewRephraser accepts a nil cache.
func NewRephraser(provider llm.LLMProvider, cache VariantCache, legacyStrip bool, log logger.ILogger) *Rephraser {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Rephraser{llm: provider, cache: cache, legacy: legacyStrip, logger: log}
}

// Rephrase returns three manual-style variants when the model cooperates,
// the raw reply when it answers off-format, and the query itself when the
// model fails or says nothing.
func (r *Rephraser) Rephrase(ctx context.Context, query string) []string {
	if r.cache != nil {
		if variants, ok := r.cache.Get(ctx, query); ok {
			r.logger.Debug("REPHRASER", "variant cache hit", nil)
			return variants
		}
	}

	raw, err := r.llm.Generate(ctx, prompt.Rephrase(query))
	if err != nil {
		r.logger.Warn("REPHRASER", "rephrasing failed, using original query", map[string]interface{}{"error": err.Error()})
		return []string{query}
	}
	if strings.TrimSpace(raw) == "" {
		r.logger.Warn("REPHRASER", "empty rephrasing, using original query", nil)
		return []string{query}
	}

	variants := ParseRephrasings(raw, r.legacy)
	if len(variants) == expectedRephrasings && r.cache != nil {
		if err := r.cache.Set(ctx, query, variants); err != nil {
			r.logger.Warn("REPHRASER", "failed to cache variants", map[string]interface{}{"error": err.Error()})
		}
	}
	return variants
}
