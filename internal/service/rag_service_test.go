package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"device-assistant-ai/internal/dto"
	"device-assistant-ai/internal/entity"
	"device-assistant-ai/pkg/llm/llmtest"
	"device-assistant-ai/pkg/rag/expansion"
	"device-assistant-ai/pkg/rag/history"
	"device-assistant-ai/pkg/rag/prompt"
	"device-assistant-ai/pkg/rag/response"
	"device-assistant-ai/pkg/rag/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	rephraseMarker = "reformulates technical support"
	answerMarker   = "User Query:"
	compressMarker = "summarize relevant background knowledge"
	rewriteMarker  = "Rewrite the query so that it becomes self-contained"
)

func reply(contains, text string) llmtest.Rule {
	return llmtest.Rule{Contains: contains, Reply: llmtest.Reply{Text: text}}
}

func defaultOptions() RagOptions {
	return RagOptions{
		TopK: 10,
		Schedules: RagSchedules{
			Text:          search.Schedule{Start: 0.75, Min: 0.5, Step: 0.1},
			Images:        search.Schedule{Start: 1.0, Min: 0.5, Step: 0.05},
			HistoryText:   search.Schedule{Start: 0.7, Min: 0.3, Step: 0.1},
			HistoryImages: search.Schedule{Start: 0.7, Min: 0.3, Step: 0.05},
		},
	}
}

type harness struct {
	llm      *llmtest.ScriptedProvider
	store    *corpusStore
	embedder *variantEmbedder
	audit    *recordingAudit
	svc      IRagService
}

func newHarness(provider *llmtest.ScriptedProvider, store *corpusStore, embedder *variantEmbedder, turns []*entity.ConversationTurn) *harness {
	catalog := staticCatalog{7: "Acme Router X1"}
	audit := &recordingAudit{}

	svc := NewRagService(
		expansion.NewRephraser(provider, nil, false, nil),
		expansion.NewDeviceContextInjector(catalog, nil),
		expansion.NewHistoryExpander(history.NewLoader(&turnStore{turns: turns}, 5, 1000, nil), provider, nil),
		search.NewRetriever(embedder, search.NewThresholdSearcher(store, nil), nil),
		response.NewGenerator(provider, 3_000_000, nil),
		audit,
		defaultOptions(),
		nil,
	)
	return &harness{llm: provider, store: store, embedder: embedder, audit: audit, svc: svc}
}

func answerPrompt(t *testing.T, p *llmtest.ScriptedProvider) string {
	t.Helper()
	for _, pr := range p.Prompts {
		if strings.Contains(pr, answerMarker) {
			return pr
		}
	}
	require.Fail(t, "answer prompt was never sent")
	return ""
}

func TestRagQueryWithDevice_EndToEnd(t *testing.T) {
	provider := &llmtest.ScriptedProvider{Rules: []llmtest.Rule{
		reply(rephraseMarker, "1. Reset the router\n2. Restore factory settings\n3. Hold the reset button"),
		reply(answerMarker, "Press and hold the reset button for 10 seconds."),
	}}
	store := &corpusStore{
		text: map[float32][]*entity.RetrievedChunk{
			1: {{Context: "Use a paperclip on the reset pinhole.", Similarity: 0.8}},
			2: {{Context: "Hold RESET for ten seconds to restore defaults.", Similarity: 0.9}},
		},
		images: map[float32][]*entity.RetrievedImageRef{
			1: {{ImageId: 11, Similarity: 0.7}},
			3: {{ImageId: 12, Similarity: 0.95}},
		},
	}
	embedder := &variantEmbedder{vectors: map[string]float32{
		"Reset the router":         1,
		"Restore factory settings": 2,
		"Hold the reset button":    3,
	}}
	h := newHarness(provider, store, embedder, nil)

	res, err := h.svc.RagQueryWithDevice(context.Background(), &dto.RagQueryWithDeviceRequest{Query: "How do I reset it?", DeviceId: 7})
	require.NoError(t, err)

	assert.Equal(t, "Press and hold the reset button for 10 seconds.", res.Response)
	assert.Equal(t, []int64{12, 11}, res.ImageIds)

	assert.Contains(t, provider.Prompts[0], "[Info: Acme Router X1] How do I reset it?")
	p := answerPrompt(t, provider)
	assert.Contains(t, p, "User Query: [Info: Acme Router X1] How do I reset it?")
	assert.Contains(t, p, "[Source 1]: Hold RESET for ten seconds to restore defaults.\n\n[Source 2]: Use a paperclip on the reset pinhole.")
	assert.NotContains(t, p, "[Source 3]")

	for _, f := range store.filters {
		require.NotNil(t, f.DeviceId)
		assert.Equal(t, 7, *f.DeviceId)
	}

	require.Len(t, h.audit.events, 1)
	assert.Equal(t, "RagQueryWithDevice", h.audit.events[0].Rpc)
	assert.Equal(t, 3, h.audit.events[0].Variants)
	assert.Equal(t, 2, h.audit.events[0].Chunks)
}

func TestRagQuery_NoEvidence(t *testing.T) {
	provider := &llmtest.ScriptedProvider{Rules: []llmtest.Rule{
		reply(rephraseMarker, "1. a\n2. b\n3. c"),
		reply(answerMarker, "From general knowledge: restart it."),
	}}
	store := &corpusStore{}
	h := newHarness(provider, store, &variantEmbedder{}, nil)

	res, err := h.svc.RagQuery(context.Background(), &dto.RagQueryRequest{Query: "Why is the light blinking?"})
	require.NoError(t, err)

	assert.Equal(t, "From general knowledge: restart it.", res.Response)
	assert.Empty(t, res.ImageIds)
	assert.NotNil(t, res.ImageIds)
	assert.Contains(t, answerPrompt(t, provider), prompt.NoContextMarker)
	for _, f := range store.filters {
		assert.Nil(t, f.DeviceId)
	}
}

func TestRagQuery_ProviderAlwaysFails(t *testing.T) {
	provider := &llmtest.ScriptedProvider{Default: llmtest.Reply{Err: errors.New("503 service unavailable")}}
	store := &corpusStore{fail: true}
	h := newHarness(provider, store, &variantEmbedder{}, nil)

	var res *dto.RagQueryResponse
	var err error
	assert.NotPanics(t, func() {
		res, err = h.svc.RagQuery(context.Background(), &dto.RagQueryRequest{Query: "How do I pair the remote?"})
	})

	require.NoError(t, err)
	assert.Equal(t, response.MessageProcessingError, res.Response)
	assert.Empty(t, res.ImageIds)
	assert.Equal(t, []string{"How do I pair the remote?"}, h.embedder.seen[:1])
}

func TestRagQuery_EmbeddingOutage(t *testing.T) {
	provider := &llmtest.ScriptedProvider{Rules: []llmtest.Rule{
		reply(rephraseMarker, "1. a\n2. b\n3. c"),
		reply(answerMarker, "answer"),
	}}
	store := &corpusStore{}
	h := newHarness(provider, store, &variantEmbedder{err: errors.New("model not loaded")}, nil)

	res, err := h.svc.RagQuery(context.Background(), &dto.RagQueryRequest{Query: "q"})

	require.NoError(t, err)
	assert.Equal(t, "answer", res.Response)
	assert.Empty(t, store.thresholds)
}

func TestRagQueryWithHistory_UsesExpandedQuery(t *testing.T) {
	provider := &llmtest.ScriptedProvider{Rules: []llmtest.Rule{
		reply(compressMarker, "User owns an Acme Router X1."),
		reply(rewriteMarker, "How do I reset the Acme Router X1?"),
		reply(answerMarker, "Hold reset."),
	}}
	store := &corpusStore{text: map[float32][]*entity.RetrievedChunk{
		5: {{Context: "Reset procedure", Similarity: 0.65}},
	}}
	embedder := &variantEmbedder{vectors: map[string]float32{"How do I reset the Acme Router X1?": 5}}
	turns := []*entity.ConversationTurn{{Request: "I have an Acme Router X1", Response: "Great, how can I help?", CreatedTime: time.Now()}}
	h := newHarness(provider, store, embedder, turns)

	res, err := h.svc.RagQueryWithHistory(context.Background(), &dto.RagQueryWithHistoryRequest{
		Query:          "How do I reset it?",
		ConversationId: "c-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "Hold reset.", res.Response)
	assert.Equal(t, []string{"How do I reset the Acme Router X1?", "How do I reset the Acme Router X1?"}, embedder.seen)
	assert.Equal(t, []float64{0.7, 0.6}, store.thresholds)
	assert.Contains(t, answerPrompt(t, provider), "[Source 1]: Reset procedure")
	for _, pr := range provider.Prompts {
		assert.NotContains(t, pr, rephraseMarker)
	}
}

func TestRagQueryWithHistory_NoHistoryKeepsQuery(t *testing.T) {
	provider := &llmtest.ScriptedProvider{Rules: []llmtest.Rule{reply(answerMarker, "ok")}}
	embedder := &variantEmbedder{}
	h := newHarness(provider, &corpusStore{}, embedder, nil)

	_, err := h.svc.RagQueryWithHistory(context.Background(), &dto.RagQueryWithHistoryRequest{Query: "q", ConversationId: "c-1"})

	require.NoError(t, err)
	assert.Equal(t, 1, provider.Calls())
	assert.Equal(t, "q", embedder.seen[0])
}

func TestRagQuery_CancelledContext(t *testing.T) {
	provider := &llmtest.ScriptedProvider{Default: llmtest.Reply{Text: "x"}}
	h := newHarness(provider, &corpusStore{}, &variantEmbedder{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.svc.RagQuery(ctx, &dto.RagQueryRequest{Query: "q"})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, h.audit.events)
}

func TestSummarize(t *testing.T) {
	provider := &llmtest.ScriptedProvider{Default: llmtest.Reply{Text: "router reset"}}
	h := newHarness(provider, &corpusStore{}, &variantEmbedder{}, nil)

	res, err := h.svc.Summarize(context.Background(), &dto.SummarizeQueryRequest{Query: "how can I reset my router"})

	require.NoError(t, err)
	assert.Equal(t, "router reset", res.Summary)
}
