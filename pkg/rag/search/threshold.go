package search

import (
	"context"

	"device-assistant-ai/internal/entity"
	"device-assistant-ai/internal/pkg/logger"
	"device-assistant-ai/internal/repository/contract"
)

// ThresholdSearcher walks a Schedule from strict to loose and stops at the
// first threshold that returns anything.
type ThresholdSearcher struct {
	store  contract.VectorStore
	logger logger.ILogger
}

func NewThresholdSearcher(store contract.VectorStore, log logger.ILogger) *ThresholdSearcher {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &ThresholdSearcher{store: store, logger: log}
}

func (s *ThresholdSearcher) SearchText(ctx context.Context, vector []float32, filter contract.SearchFilter, topK int, schedule Schedule) []*entity.RetrievedChunk {
	return relax(ctx, s.logger, "text", schedule, func(threshold float64) ([]*entity.RetrievedChunk, error) {
		return s.store.SearchText(ctx, vector, filter, threshold, topK)
	})
}

func (s *ThresholdSearcher) SearchImages(ctx context.Context, vector []float32, filter contract.SearchFilter, topK int, schedule Schedule) []*entity.RetrievedImageRef {
	return relax(ctx, s.logger, "image", schedule, func(threshold float64) ([]*entity.RetrievedImageRef, error) {
		return s.store.SearchImages(ctx, vector, filter, threshold, topK)
	})
}

// relax treats a store error as an empty result for that threshold and keeps
// going. A done context ends the walk with nothing.
func relax[T any](ctx context.Context, log logger.ILogger, lane string, schedule Schedule, query func(threshold float64) ([]T, error)) []T {
	for _, threshold := range schedule.Thresholds() {
		if ctx.Err() != nil {
			log.Warn("THRESHOLD_SEARCH", "context done, abandoning relaxation", map[string]interface{}{
				"lane":      lane,
				"threshold": threshold,
				"error":     ctx.Err().Error(),
			})
			return nil
		}

		hits, err := query(threshold)
		if err != nil {
			log.Error("THRESHOLD_SEARCH", "vector store query failed", map[string]interface{}{
				"lane":      lane,
				"threshold": threshold,
				"error":     err.Error(),
			})
			continue
		}
		if len(hits) > 0 {
			log.Debug("THRESHOLD_SEARCH", "threshold satisfied", map[string]interface{}{
				"lane":      lane,
				"threshold": threshold,
				"hits":      len(hits),
			})
			return hits
		}
	}
	return nil
}
