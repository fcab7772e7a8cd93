// Package llmtest holds LLMProvider doubles shared by tests across packages.
package llmtest

import (
	"context"
	"strings"
	"sync"

	"device-assistant-ai/pkg/llm"

	"github.com/stretchr/testify/mock"
)

// MockProvider is a testify mock. Expectations are set on Generate and Chat.
type MockProvider struct {
	mock.Mock
}

var _ llm.LLMProvider = &MockProvider{}

func (m *MockProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	args := m.Called(ctx, history)
	return args.String(0), args.Error(1)
}

func (m *MockProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// Reply is one scripted answer.
type Reply struct {
	Text string
	Err  error
}

// Rule answers any prompt containing Contains.
type Rule struct {
	Contains string
	Reply    Reply
}

// ScriptedProvider answers from a rule list, first match wins, and records
// every prompt it saw. Unmatched prompts get Default.
type ScriptedProvider struct {
	mu      sync.Mutex
	Rules   []Rule
	Default Reply
	Prompts []string
}

var _ llm.LLMProvider = &ScriptedProvider{}

func (s *ScriptedProvider) Generate(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Prompts = append(s.Prompts, prompt)
	for _, r := range s.Rules {
		if strings.Contains(prompt, r.Contains) {
			return r.Reply.Text, r.Reply.Err
		}
	}
	return s.Default.Text, s.Default.Err
}

func (s *ScriptedProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	var b strings.Builder
	for _, m := range history {
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	return s.Generate(ctx, b.String(), opts...)
}

// Calls returns how many prompts were received.
func (s *ScriptedProvider) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Prompts)
}
