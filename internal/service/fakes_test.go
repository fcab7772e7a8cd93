package service

import (
	"context"
	"errors"
	"sync"

	"device-assistant-ai/internal/entity"
	"device-assistant-ai/internal/repository/contract"
	"device-assistant-ai/internal/repository/specification"
	"device-assistant-ai/pkg/events"
)

// corpusStore serves fixed hits per query vector, honouring the threshold.
type corpusStore struct {
	mu         sync.Mutex
	text       map[float32][]*entity.RetrievedChunk
	images     map[float32][]*entity.RetrievedImageRef
	filters    []contract.SearchFilter
	thresholds []float64
	fail       bool
}

func (s *corpusStore) SearchText(_ context.Context, vector []float32, filter contract.SearchFilter, threshold float64, limit int) ([]*entity.RetrievedChunk, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = append(s.filters, filter)
	s.thresholds = append(s.thresholds, threshold)
	if s.fail {
		return nil, errors.New("connection refused")
	}
	var out []*entity.RetrievedChunk
	for _, c := range s.text[vector[0]] {
		if c.Similarity >= threshold && len(out) < limit {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *corpusStore) SearchImages(_ context.Context, vector []float32, filter contract.SearchFilter, threshold float64, limit int) ([]*entity.RetrievedImageRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = append(s.filters, filter)
	if s.fail {
		return nil, errors.New("connection refused")
	}
	var out []*entity.RetrievedImageRef
	for _, img := range s.images[vector[0]] {
		if img.Similarity >= threshold && len(out) < limit {
			out = append(out, img)
		}
	}
	return out, nil
}

// variantEmbedder gives every distinct text its own one-dimensional vector,
// taken from vectors when listed there.
type variantEmbedder struct {
	mu      sync.Mutex
	vectors map[string]float32
	seen    []string
	err     error
}

func (e *variantEmbedder) Embed(_ context.Context, text string, _ string) ([]float32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.seen = append(e.seen, text)
	if e.err != nil {
		return nil, e.err
	}
	if v, ok := e.vectors[text]; ok {
		return []float32{v}, nil
	}
	return []float32{-1}, nil
}

type staticCatalog map[int]string

func (c staticCatalog) FindById(_ context.Context, id int) (*entity.Device, error) {
	if _, ok := c[id]; !ok {
		return nil, nil
	}
	return &entity.Device{Id: id, Label: c[id]}, nil
}

func (c staticCatalog) Describe(_ context.Context, id int) (string, error) {
	return c[id], nil
}

type turnStore struct {
	turns []*entity.ConversationTurn
}

func (s *turnStore) FindAll(context.Context, ...specification.Specification) ([]*entity.ConversationTurn, error) {
	return s.turns, nil
}

func (s *turnStore) FetchRecent(_ context.Context, _ string, limit int) ([]*entity.ConversationTurn, error) {
	if len(s.turns) > limit {
		return s.turns[:limit], nil
	}
	return s.turns, nil
}

type recordingAudit struct {
	events []events.QueryServed
}

func (r *recordingAudit) Record(_ context.Context, e events.QueryServed) {
	r.events = append(r.events, e)
}
