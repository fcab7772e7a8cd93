package response

import (
	"context"
	"strings"

	"device-assistant-ai/internal/pkg/logger"
	"device-assistant-ai/pkg/llm"
	"device-assistant-ai/pkg/rag/prompt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("device-assistant-ai/pkg/rag/response")

// Generator turns retrieved chunk texts into an answer. The provider is
// expected to carry its own retry policy (llm.ResilientProvider).
type Generator struct {
	llm           llm.LLMProvider
	detector      *LanguageDetector
	contextBudget int
	logger        logger.ILogger
}

func NewGenerator(provider llm.LLMProvider, contextBudget int, log logger.ILogger) *Generator {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Generator{
		llm:           provider,
		detector:      NewLanguageDetector(provider, log),
		contextBudget: contextBudget,
		logger:        log,
	}
}

type outcome int

const (
	outcomeOK outcome = iota
	outcomeEmpty
	outcomeError
)

// Generate never fails. An empty optimized answer yields MessageLLMUnavailable
// directly; an optimized error moves on to the fallback prompt, and a failed
// fallback yields the apology matching how it failed.
func (g *Generator) Generate(ctx context.Context, query string, chunks []string) string {
	ctx, span := tracer.Start(ctx, "Generator.Generate")
	defer span.End()

	gc := BuildContext(chunks, g.contextBudget)
	span.SetAttributes(attribute.Int("rag.sources", gc.Sources), attribute.Int("rag.context_length", gc.Length))

	language := g.detector.Detect(ctx, query)
	answer, result := g.call(ctx, "optimized", prompt.Answer(query, language, gc.Text))
	switch result {
	case outcomeOK:
		span.SetAttributes(attribute.String("rag.path", "optimized"))
		return answer
	case outcomeEmpty:
		// the fallback prompt is only for errors
		span.SetAttributes(attribute.String("rag.path", "apology"))
		return MessageLLMUnavailable
	}

	answer, result = g.call(ctx, "fallback", prompt.Fallback(query, gc.Text))
	if result == outcomeOK {
		span.SetAttributes(attribute.String("rag.path", "fallback"))
		return answer
	}

	span.SetAttributes(attribute.String("rag.path", "apology"))
	if result == outcomeError {
		return MessageProcessingError
	}
	return MessageLLMUnavailable
}

// Summarize returns query itself when the model gives nothing back.
func (g *Generator) Summarize(ctx context.Context, query string) string {
	ctx, span := tracer.Start(ctx, "Generator.Summarize")
	defer span.End()

	summary, result := g.call(ctx, "summary", prompt.Summary(query))
	if result != outcomeOK {
		return query
	}
	return summary
}

func (g *Generator) call(ctx context.Context, path, p string) (string, outcome) {
	out, err := g.llm.Generate(ctx, p)
	if err != nil {
		g.logger.Error("GENERATOR", "generation failed", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return "", outcomeError
	}
	out = strings.TrimSpace(out)
	if out == "" {
		g.logger.Warn("GENERATOR", "model returned empty text", map[string]interface{}{"path": path})
		return "", outcomeEmpty
	}
	return out, outcomeOK
}
