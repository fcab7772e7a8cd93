package factory

import (
	"testing"

	"device-assistant-ai/pkg/llm/gemini"
	"device-assistant-ai/pkg/llm/ollama"
	"device-assistant-ai/pkg/llm/openai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		wantType interface{}
		wantErr  bool
	}{
		{"ollama default url", Settings{Provider: "ollama", Model: "llama3"}, &ollama.OllamaProvider{}, false},
		{"gemini", Settings{Provider: "gemini", Model: "gemini-1.5-flash", APIKey: "k"}, &gemini.GeminiProvider{}, false},
		{"gemini without key", Settings{Provider: "gemini"}, nil, true},
		{"openai", Settings{Provider: "openai", Model: "gpt-4o-mini", APIKey: "k"}, &openai.OpenAIProvider{}, false},
		{"unknown", Settings{Provider: "bard"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewLLMProvider(tt.settings)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, p)
		})
	}

	p, _ := NewLLMProvider(Settings{Provider: "ollama"})
	assert.Equal(t, "http://localhost:11434", p.(*ollama.OllamaProvider).BaseURL)
}
