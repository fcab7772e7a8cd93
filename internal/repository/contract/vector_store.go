package contract

import (
	"context"

	"device-assistant-ai/internal/entity"
)

// SearchFilter scopes a similarity search. A nil DeviceId searches the whole corpus.
type SearchFilter struct {
	DeviceId *int
}

func DeviceScope(deviceId int) SearchFilter {
	if deviceId <= 0 {
		return SearchFilter{}
	}
	return SearchFilter{DeviceId: &deviceId}
}

// VectorStore runs one thresholded similarity query per call. Rows come back
// ordered by similarity descending, each with similarity >= threshold.
type VectorStore interface {
	// SearchText dedups on trimmed, lower-cased chunk text.
	SearchText(ctx context.Context, vector []float32, filter SearchFilter, threshold float64, limit int) ([]*entity.RetrievedChunk, error)
	// SearchImages dedups on image id.
	SearchImages(ctx context.Context, vector []float32, filter SearchFilter, threshold float64, limit int) ([]*entity.RetrievedImageRef, error)
}
