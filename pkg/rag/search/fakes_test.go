package search

import (
	"context"
	"errors"

	"device-assistant-ai/internal/entity"
	"device-assistant-ai/internal/repository/contract"
)

// fakeStore answers each call from per-query-vector tables keyed by threshold.
type fakeStore struct {
	text       map[float32]func(threshold float64) ([]*entity.RetrievedChunk, error)
	images     map[float32]func(threshold float64) ([]*entity.RetrievedImageRef, error)
	thresholds []float64
	limits     []int
}

func (f *fakeStore) SearchText(_ context.Context, vector []float32, _ contract.SearchFilter, threshold float64, limit int) ([]*entity.RetrievedChunk, error) {
	f.thresholds = append(f.thresholds, threshold)
	f.limits = append(f.limits, limit)
	if fn, ok := f.text[vector[0]]; ok {
		return fn(threshold)
	}
	return nil, nil
}

func (f *fakeStore) SearchImages(_ context.Context, vector []float32, _ contract.SearchFilter, threshold float64, limit int) ([]*entity.RetrievedImageRef, error) {
	f.thresholds = append(f.thresholds, threshold)
	f.limits = append(f.limits, limit)
	if fn, ok := f.images[vector[0]]; ok {
		return fn(threshold)
	}
	return nil, nil
}

// fakeEmbedder maps each known variant to a one-dimensional vector.
type fakeEmbedder struct {
	vectors map[string]float32
	calls   []string
}

func (f *fakeEmbedder) Embed(_ context.Context, text string, _ string) ([]float32, error) {
	f.calls = append(f.calls, text)
	v, ok := f.vectors[text]
	if !ok {
		return nil, errors.New("embedding service unavailable")
	}
	return []float32{v}, nil
}

func chunk(text string, sim float64) *entity.RetrievedChunk {
	return &entity.RetrievedChunk{Context: text, Similarity: sim}
}

func image(id int64, sim float64) *entity.RetrievedImageRef {
	return &entity.RetrievedImageRef{ImageId: id, Similarity: sim}
}

func chunksAbove(threshold float64, all ...*entity.RetrievedChunk) []*entity.RetrievedChunk {
	var out []*entity.RetrievedChunk
	for _, c := range all {
		if c.Similarity >= threshold {
			out = append(out, c)
		}
	}
	return out
}
