package search

import (
	"context"
	"sort"
	"strings"

	"device-assistant-ai/internal/entity"
	"device-assistant-ai/internal/pkg/logger"
	"device-assistant-ai/internal/repository/contract"
	"device-assistant-ai/pkg/embedding"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("device-assistant-ai/pkg/rag/search")

// Embedder turns a query into a vector. embedding.ExclusiveEmbedder is the
// production implementation.
type Embedder interface {
	Embed(ctx context.Context, text string, taskType string) ([]float32, error)
}

// Retriever fans a set of query variants out over one lane and merges the hits.
// Variants are processed one after another.
type Retriever struct {
	embedder Embedder
	searcher *ThresholdSearcher
	logger   logger.ILogger
}

func NewRetriever(embedder Embedder, searcher *ThresholdSearcher, log logger.ILogger) *Retriever {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Retriever{embedder: embedder, searcher: searcher, logger: log}
}

func normalizeChunkKey(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// RetrieveText merges chunks across variants. Duplicate texts (after trim and
// lower-casing) keep the highest similarity; on a tie the first one seen stays.
func (r *Retriever) RetrieveText(ctx context.Context, variants []string, filter contract.SearchFilter, topK int, schedule Schedule) []*entity.RetrievedChunk {
	ctx, span := tracer.Start(ctx, "Retriever.RetrieveText")
	defer span.End()
	span.SetAttributes(attribute.Int("rag.variants", len(variants)), attribute.Int("rag.top_k", topK))

	if topK <= 0 {
		return []*entity.RetrievedChunk{}
	}

	var merged []*entity.RetrievedChunk
	index := make(map[string]int)

	for i, variant := range variants {
		vector, ok := r.embed(ctx, i, variant)
		if !ok {
			continue
		}
		for _, hit := range r.searcher.SearchText(ctx, vector, filter, topK, schedule) {
			if hit == nil {
				continue
			}
			key := normalizeChunkKey(hit.Context)
			if pos, seen := index[key]; seen {
				if hit.Similarity > merged[pos].Similarity {
					merged[pos] = hit
				}
				continue
			}
			index[key] = len(merged)
			merged = append(merged, hit)
		}
	}

	sort.SliceStable(merged, func(a, b int) bool {
		return merged[a].Similarity > merged[b].Similarity
	})
	if len(merged) > topK {
		merged = merged[:topK]
	}
	if merged == nil {
		merged = []*entity.RetrievedChunk{}
	}
	span.SetAttributes(attribute.Int("rag.chunks", len(merged)))
	return merged
}

// RetrieveImages merges image hits keyed by image id, keeping first-seen order
// for ties, and returns them best-first.
func (r *Retriever) RetrieveImages(ctx context.Context, variants []string, filter contract.SearchFilter, topK int, schedule Schedule) []*entity.RetrievedImageRef {
	ctx, span := tracer.Start(ctx, "Retriever.RetrieveImages")
	defer span.End()
	span.SetAttributes(attribute.Int("rag.variants", len(variants)), attribute.Int("rag.top_k", topK))

	if topK <= 0 {
		return []*entity.RetrievedImageRef{}
	}

	var merged []*entity.RetrievedImageRef
	index := make(map[int64]int)

	for i, variant := range variants {
		vector, ok := r.embed(ctx, i, variant)
		if !ok {
			continue
		}
		for _, hit := range r.searcher.SearchImages(ctx, vector, filter, topK, schedule) {
			if hit == nil {
				continue
			}
			if pos, seen := index[hit.ImageId]; seen {
				if hit.Similarity > merged[pos].Similarity {
					merged[pos] = hit
				}
				continue
			}
			index[hit.ImageId] = len(merged)
			merged = append(merged, hit)
		}
	}

	sort.SliceStable(merged, func(a, b int) bool {
		return merged[a].Similarity > merged[b].Similarity
	})
	if len(merged) > topK {
		merged = merged[:topK]
	}
	if merged == nil {
		merged = []*entity.RetrievedImageRef{}
	}
	span.SetAttributes(attribute.Int("rag.images", len(merged)))
	return merged
}

// ImageIds projects refs to their ids, preserving order.
func ImageIds(refs []*entity.RetrievedImageRef) []int64 {
	ids := make([]int64, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.ImageId)
	}
	return ids
}

// ChunkTexts projects chunks to their text, preserving order.
func ChunkTexts(chunks []*entity.RetrievedChunk) []string {
	texts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		texts = append(texts, c.Context)
	}
	return texts
}

func (r *Retriever) embed(ctx context.Context, i int, variant string) ([]float32, bool) {
	if ctx.Err() != nil {
		return nil, false
	}
	if strings.TrimSpace(variant) == "" {
		r.logger.Debug("RETRIEVER", "skipping blank variant", map[string]interface{}{"variant": i})
		return nil, false
	}
	vector, err := r.embedder.Embed(ctx, variant, embedding.TaskRetrievalQuery)
	if err != nil {
		r.logger.Error("RETRIEVER", "embedding failed, variant skipped", map[string]interface{}{
			"variant": i,
			"error":   err.Error(),
		})
		return nil, false
	}
	return vector, true
}
