package expansion

import (
	"context"
	"strings"

	"device-assistant-ai/internal/pkg/logger"
	"device-assistant-ai/pkg/llm"
	"device-assistant-ai/pkg/rag/history"
	"device-assistant-ai/pkg/rag/prompt"
)

// HistoryExpander rewrites a follow-up question into a standalone one using
// earlier turns. Two model calls: compress the history, then rewrite.
type HistoryExpander struct {
	loader *history.Loader
	llm    llm.LLMProvider
	logger logger.ILogger
}

func NewHistoryExpander(loader *history.Loader, provider llm.LLMProvider, log logger.ILogger) *HistoryExpander {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &HistoryExpander{loader: loader, llm: provider, logger: log}
}

// Expand returns query unchanged when there is no usable history or either
// model call fails.
func (h *HistoryExpander) Expand(ctx context.Context, query, conversationId string) string {
	block, turns := h.loader.Load(ctx, conversationId)
	if turns == 0 {
		return query
	}

	facts, ok := h.call(ctx, "compress", prompt.CompressHistory(block, query))
	if !ok {
		return query
	}
	rewritten, ok := h.call(ctx, "rewrite", prompt.RewriteQuery(query, facts))
	if !ok {
		return query
	}

	h.logger.Debug("HISTORY_EXPANDER", "query expanded from history", map[string]interface{}{
		"turns": turns,
	})
	return rewritten
}

func (h *HistoryExpander) call(ctx context.Context, step, p string) (string, bool) {
	out, err := h.llm.Generate(ctx, p)
	if err != nil {
		h.logger.Warn("HISTORY_EXPANDER", "model call failed, keeping original query", map[string]interface{}{
			"step":  step,
			"error": err.Error(),
		})
		return "", false
	}
	out = strings.TrimSpace(out)
	if out == "" {
		h.logger.Warn("HISTORY_EXPANDER", "model returned nothing, keeping original query", map[string]interface{}{"step": step})
		return "", false
	}
	return out, true
}
