package response

import (
	"context"
	"strings"
	"unicode"

	"device-assistant-ai/internal/pkg/logger"
	"device-assistant-ai/pkg/llm"
	"device-assistant-ai/pkg/rag/prompt"
)

const DefaultLanguage = "en"

type LanguageDetector struct {
	llm    llm.LLMProvider
	logger logger.ILogger
}

func NewLanguageDetector(provider llm.LLMProvider, log logger.ILogger) *LanguageDetector {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &LanguageDetector{llm: provider, logger: log}
}

// Detect returns an ISO 639-1 code. Empty or pure ASCII text is "en" without
// asking the model.
func (d *LanguageDetector) Detect(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" || isASCII(text) {
		return DefaultLanguage
	}

	out, err := d.llm.Generate(ctx, prompt.DetectLanguage(sample(text, prompt.LanguageSampleRunes)))
	if err != nil {
		d.logger.Warn("LANGUAGE", "detection failed, assuming english", map[string]interface{}{"error": err.Error()})
		return DefaultLanguage
	}

	code := strings.ToLower(strings.Trim(strings.TrimSpace(out), "'\"`.,;: "))
	if code == "" {
		return DefaultLanguage
	}
	return code
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}

func sample(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
