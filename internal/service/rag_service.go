package service

import (
	"context"
	"time"

	"device-assistant-ai/internal/dto"
	"device-assistant-ai/internal/pkg/logger"
	"device-assistant-ai/internal/repository/contract"
	"device-assistant-ai/pkg/events"
	"device-assistant-ai/pkg/rag/expansion"
	"device-assistant-ai/pkg/rag/response"
	"device-assistant-ai/pkg/rag/search"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type IRagService interface {
	RagQuery(ctx context.Context, req *dto.RagQueryRequest) (*dto.RagQueryResponse, error)
	RagQueryWithDevice(ctx context.Context, req *dto.RagQueryWithDeviceRequest) (*dto.RagQueryResponse, error)
	RagQueryWithHistory(ctx context.Context, req *dto.RagQueryWithHistoryRequest) (*dto.RagQueryResponse, error)
	Summarize(ctx context.Context, req *dto.SummarizeQueryRequest) (*dto.SummarizeQueryResponse, error)
}

// RagSchedules holds one threshold schedule per lane and query path.
type RagSchedules struct {
	Text          search.Schedule
	Images        search.Schedule
	HistoryText   search.Schedule
	HistoryImages search.Schedule
}

type RagOptions struct {
	TopK      int
	Schedules RagSchedules
}

type ragService struct {
	rephraser *expansion.Rephraser
	injector  *expansion.DeviceContextInjector
	history   *expansion.HistoryExpander
	retriever *search.Retriever
	generator *response.Generator
	audit     IAuditPublisher
	opts      RagOptions
	logger    logger.ILogger
}

func NewRagService(
	rephraser *expansion.Rephraser,
	injector *expansion.DeviceContextInjector,
	history *expansion.HistoryExpander,
	retriever *search.Retriever,
	generator *response.Generator,
	audit IAuditPublisher,
	opts RagOptions,
	log logger.ILogger,
) IRagService {
	if log == nil {
		log = logger.NewNopLogger()
	}
	if audit == nil {
		audit = NewNopAuditPublisher()
	}
	return &ragService{
		rephraser: rephraser,
		injector:  injector,
		history:   history,
		retriever: retriever,
		generator: generator,
		audit:     audit,
		opts:      opts,
		logger:    log,
	}
}

func (s *ragService) RagQuery(ctx context.Context, req *dto.RagQueryRequest) (*dto.RagQueryResponse, error) {
	variants := s.rephraser.Rephrase(ctx, req.Query)
	return s.answer(ctx, "RagQuery", req.Query, variants, 0, s.opts.Schedules.Text, s.opts.Schedules.Images)
}

func (s *ragService) RagQueryWithDevice(ctx context.Context, req *dto.RagQueryWithDeviceRequest) (*dto.RagQueryResponse, error) {
	query := s.injector.Inject(ctx, req.Query, req.DeviceId)
	variants := s.rephraser.Rephrase(ctx, query)
	return s.answer(ctx, "RagQueryWithDevice", query, variants, req.DeviceId, s.opts.Schedules.Text, s.opts.Schedules.Images)
}

// RagQueryWithHistory retrieves with the single history-expanded query; no
// rephrasing on this path.
func (s *ragService) RagQueryWithHistory(ctx context.Context, req *dto.RagQueryWithHistoryRequest) (*dto.RagQueryResponse, error) {
	query := s.history.Expand(ctx, req.Query, req.ConversationId)
	return s.answer(ctx, "RagQueryWithHistory", query, []string{query}, req.DeviceId, s.opts.Schedules.HistoryText, s.opts.Schedules.HistoryImages)
}

func (s *ragService) Summarize(ctx context.Context, req *dto.SummarizeQueryRequest) (*dto.SummarizeQueryResponse, error) {
	summary := s.generator.Summarize(ctx, req.Query)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &dto.SummarizeQueryResponse{Summary: summary}, nil
}

// answer runs both lanes over the variants and generates from the text lane.
// It only fails when ctx ended before an answer was ready.
func (s *ragService) answer(
	ctx context.Context,
	rpc string,
	query string,
	variants []string,
	deviceId int,
	textSchedule search.Schedule,
	imageSchedule search.Schedule,
) (*dto.RagQueryResponse, error) {
	start := time.Now()
	filter := contract.DeviceScope(deviceId)

	chunks := s.retriever.RetrieveText(ctx, variants, filter, s.opts.TopK, textSchedule)
	text := s.generator.Generate(ctx, query, search.ChunkTexts(chunks))
	images := s.retriever.RetrieveImages(ctx, variants, filter, s.opts.TopK, imageSchedule)

	if err := ctx.Err(); err != nil {
		s.logger.Warn("RAG", "request ended before answer was ready", map[string]interface{}{
			"rpc":   rpc,
			"error": err.Error(),
		})
		return nil, err
	}

	requestId := uuid.NewString()
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("rag.request_id", requestId),
		attribute.String("rag.rpc", rpc),
	)

	s.audit.Record(ctx, events.QueryServed{
		RequestId:  requestId,
		Rpc:        rpc,
		Query:      query,
		DeviceId:   deviceId,
		Variants:   len(variants),
		Chunks:     len(chunks),
		Images:     len(images),
		Duration:   time.Since(start),
		OccurredAt: time.Now(),
	})

	return &dto.RagQueryResponse{
		Response: text,
		ImageIds: search.ImageIds(images),
	}, nil
}
