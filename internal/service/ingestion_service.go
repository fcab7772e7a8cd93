package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"device-assistant-ai/internal/dto"
	"device-assistant-ai/internal/pkg/logger"
	"device-assistant-ai/pkg/embedding"
	"device-assistant-ai/pkg/utils"
)

var (
	ErrExtractorUnavailable = errors.New("pdf extraction worker is not connected")
	ErrExtractionFailed     = errors.New("pdf extraction failed")
	ErrEmbeddingFailed      = errors.New("chunk embedding failed")
)

// PDFExtractor turns a stored PDF into the extraction worker's result JSON.
type PDFExtractor interface {
	Extract(ctx context.Context, objectName string) (string, error)
}

// ChunkEmbedder is satisfied by embedding.ExclusiveEmbedder.
type ChunkEmbedder interface {
	Embed(ctx context.Context, text string, taskType string) ([]float32, error)
}

type IIngestionService interface {
	ExtractPdf(ctx context.Context, req *dto.ExtractPdfRequest) (*dto.ResultJsonResponse, error)
	ChunkAndEmbed(ctx context.Context, req *dto.ChunkAndEmbedRequest) (*dto.ResultJsonResponse, error)
}

type ChunkingOptions struct {
	MaxTokens int
	Overlap   int
}

type ingestionService struct {
	extractor PDFExtractor
	embedder  ChunkEmbedder
	chunking  ChunkingOptions
	logger    logger.ILogger
}

// NewIngestionService accepts a nil extractor; ExtractPdf then reports
// ErrExtractorUnavailable.
func NewIngestionService(extractor PDFExtractor, embedder ChunkEmbedder, chunking ChunkingOptions, log logger.ILogger) IIngestionService {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &ingestionService{
		extractor: extractor,
		embedder:  embedder,
		chunking:  chunking,
		logger:    log,
	}
}

func (s *ingestionService) ExtractPdf(ctx context.Context, req *dto.ExtractPdfRequest) (*dto.ResultJsonResponse, error) {
	if s.extractor == nil {
		return nil, ErrExtractorUnavailable
	}

	result, err := s.extractor.Extract(ctx, req.GcsObjectName)
	if err != nil {
		s.logger.Error("INGESTION", "pdf extraction failed", map[string]interface{}{
			"object": req.GcsObjectName,
			"error":  err.Error(),
		})
		return nil, fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}

	s.logger.Info("INGESTION", "pdf extracted", map[string]interface{}{
		"object": req.GcsObjectName,
		"bytes":  len(result),
	})
	return &dto.ResultJsonResponse{ResultJson: result}, nil
}

// ChunkAndEmbed fails as a whole when any chunk cannot be embedded, so a
// caller never stores a partial document.
func (s *ingestionService) ChunkAndEmbed(ctx context.Context, req *dto.ChunkAndEmbedRequest) (*dto.ResultJsonResponse, error) {
	chunks := utils.SplitTokens(req.Text, s.chunking.MaxTokens, s.chunking.Overlap)

	out := dto.EmbeddedChunks{Chunks: make([]dto.EmbeddedChunk, 0, len(chunks))}
	for i, chunk := range chunks {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		vector, err := s.embedder.Embed(ctx, chunk, embedding.TaskRetrievalDocument)
		if err != nil {
			s.logger.Error("INGESTION", "failed to embed chunk", map[string]interface{}{
				"chunk": i,
				"total": len(chunks),
				"error": err.Error(),
			})
			return nil, fmt.Errorf("%w: chunk %d: %v", ErrEmbeddingFailed, i, err)
		}
		out.Chunks = append(out.Chunks, dto.EmbeddedChunk{Context: chunk, Vector: vector})
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal chunks: %w", err)
	}

	s.logger.Info("INGESTION", "text chunked and embedded", map[string]interface{}{"chunks": len(out.Chunks)})
	return &dto.ResultJsonResponse{ResultJson: string(data)}, nil
}
