package bootstrap

import (
	"context"
	"fmt"

	"device-assistant-ai/internal/config"
	"device-assistant-ai/internal/controller"
	"device-assistant-ai/internal/pkg/logger"
	"device-assistant-ai/internal/pkg/serverutils"
	"device-assistant-ai/internal/repository/contract"
	"device-assistant-ai/internal/repository/implementation"
	"device-assistant-ai/internal/repository/memory"
	"device-assistant-ai/internal/repository/rediscache"
	"device-assistant-ai/internal/service"
	"device-assistant-ai/pkg/embedding"
	"device-assistant-ai/pkg/llm"
	"device-assistant-ai/pkg/llm/factory"
	pktNats "device-assistant-ai/pkg/nats"
	"device-assistant-ai/pkg/rag/expansion"
	"device-assistant-ai/pkg/rag/history"
	"device-assistant-ai/pkg/rag/response"
	"device-assistant-ai/pkg/rag/search"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/nats-io/nats.go"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	RagController       controller.IRagController
	IngestionController controller.IIngestionController
	HealthController    controller.IHealthController

	Limiter *serverutils.ConcurrencyLimiter
	Logger  logger.ILogger

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	closers []func()
}

// Close releases connections opened by NewContainer, newest first.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func NewContainer(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) (*Container, error) {
	c := &Container{Logger: sysLogger}

	// 1. Model providers
	embeddingProvider, err := embedding.NewProvider(embedding.Settings{
		Provider: cfg.Ai.EmbeddingProvider,
		Model:    cfg.Ai.EmbeddingModel,
		BaseURL:  cfg.Ai.OllamaBaseURL,
		APIKey:   embeddingKey(cfg),
	})
	if err != nil {
		return nil, fmt.Errorf("embedding provider: %w", err)
	}
	embedder := embedding.NewExclusiveEmbedder(embeddingProvider, sysLogger)
	sysLogger.Info("BOOTSTRAP", "embedding provider ready", map[string]interface{}{
		"provider": cfg.Ai.EmbeddingProvider,
		"model":    cfg.Ai.EmbeddingModel,
	})

	baseLLM, err := factory.NewLLMProvider(factory.Settings{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		BaseURL:  llmBaseURL(cfg),
		APIKey:   llmKey(cfg),
	})
	if err != nil {
		return nil, fmt.Errorf("llm provider: %w", err)
	}
	llmProvider := llm.NewResilientProvider(baseLLM, llm.RetryPolicy{
		MaxAttempts: cfg.Ai.Retry.MaxAttempts,
		BaseDelay:   cfg.Ai.Retry.BaseDelay,
		Multiplier:  cfg.Ai.Retry.Multiplier,
	}, sysLogger).WithDefaultOptions(llm.WithTemperature(cfg.Ai.LLMTemperature))
	sysLogger.Info("BOOTSTRAP", "llm provider ready", map[string]interface{}{
		"provider": cfg.Ai.LLMProvider,
		"model":    cfg.Ai.LLMModel,
	})

	// 2. Repositories
	vectorStore := implementation.NewVectorStore(db)
	deviceCatalog := memory.NewCachedDeviceCatalog(implementation.NewDeviceCatalog(db), cfg.Rag.DeviceCacheTTL)
	conversations := implementation.NewConversationRepository(db)

	checks := map[string]controller.Pinger{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}

	// 3. Infrastructure (optional: the service degrades without them)
	var variantCache expansion.VariantCache
	if cfg.Messaging.RedisURL != "" {
		rdb := rediscache.NewClient(cfg.Messaging.RedisURL)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			sysLogger.Warn("BOOTSTRAP", "redis unreachable, rephrasing cache disabled", map[string]interface{}{"error": err.Error()})
			_ = rdb.Close()
		} else {
			variantCache = rediscache.NewVariantCache(rdb, cfg.Rag.VariantCacheTTL)
			checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
			c.closers = append(c.closers, func() { _ = rdb.Close() })
		}
	}

	var extractor service.PDFExtractor
	var sink service.EventSink
	nc, err := pktNats.Connect(cfg.Messaging.NatsURL)
	if err != nil {
		sysLogger.Warn("BOOTSTRAP", "NATS unavailable, pdf extraction and audit forwarding disabled", map[string]interface{}{"error": err.Error()})
	} else {
		c.closers = append(c.closers, nc.Close)
		extractor = pktNats.NewExtractor(nc, cfg.Messaging.PdfExtractSubject, cfg.Messaging.PdfExtractTimeout)
		checks["nats"] = natsCheck(nc)

		publisher, err := pktNats.NewPublisher(nc, sysLogger)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "JetStream unavailable, audit events stay local", map[string]interface{}{"error": err.Error()})
		} else {
			sink = publisher
		}
	}

	// 4. Event bus
	audit := service.NewNopAuditPublisher()
	if cfg.Messaging.AuditEnabled {
		pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 256}, watermill.NewStdLogger(false, false))
		c.closers = append(c.closers, func() { _ = pubSub.Close() })
		audit = service.NewAuditPublisher(pubSub, service.AuditTopic, sysLogger)
		c.ConsumerService = service.NewConsumerService(pubSub, service.AuditTopic, sink, sysLogger)
	}

	// 5. Engine
	ragService := service.NewRagService(
		expansion.NewRephraser(llmProvider, variantCache, cfg.Rag.LegacyNumberStrip, sysLogger),
		expansion.NewDeviceContextInjector(deviceCatalog, sysLogger),
		expansion.NewHistoryExpander(newHistoryLoader(conversations, cfg, sysLogger), llmProvider, sysLogger),
		search.NewRetriever(embedder, search.NewThresholdSearcher(vectorStore, sysLogger), sysLogger),
		response.NewGenerator(llmProvider, cfg.Rag.ContextCharBudget, sysLogger),
		audit,
		service.RagOptions{
			TopK: cfg.Rag.TopK,
			Schedules: service.RagSchedules{
				Text:          schedule(cfg.Rag.TextSchedule),
				Images:        schedule(cfg.Rag.ImageSchedule),
				HistoryText:   schedule(cfg.Rag.HistoryTextSchedule),
				HistoryImages: schedule(cfg.Rag.HistoryImgSchedule),
			},
		},
		sysLogger,
	)

	ingestionService := service.NewIngestionService(extractor, embedder, service.ChunkingOptions{
		MaxTokens: cfg.Rag.ChunkMaxTokens,
		Overlap:   cfg.Rag.ChunkOverlap,
	}, sysLogger)

	// 6. Controllers
	c.RagController = controller.NewRagController(ragService)
	c.IngestionController = controller.NewIngestionController(ingestionService)
	c.HealthController = controller.NewHealthController(checks)
	c.Limiter = serverutils.NewConcurrencyLimiter(cfg.App.WorkerPoolSize)

	return c, nil
}

func newHistoryLoader(repo contract.ConversationRepository, cfg *config.Config, log logger.ILogger) *history.Loader {
	return history.NewLoader(repo, cfg.Rag.HistoryTurns, cfg.Rag.HistoryTokenBudget, log)
}

func schedule(s config.ScheduleConfig) search.Schedule {
	return search.Schedule{Start: s.Start, Min: s.Min, Step: s.Step}
}

func natsCheck(nc *nats.Conn) controller.Pinger {
	return func(context.Context) error {
		if !nc.IsConnected() {
			return fmt.Errorf("nats status %s", nc.Status())
		}
		return nil
	}
}

func embeddingKey(cfg *config.Config) string {
	if cfg.Ai.EmbeddingProvider == "openai" {
		return cfg.Keys.OpenAI
	}
	return cfg.Keys.GoogleGemini
}

func llmKey(cfg *config.Config) string {
	if cfg.Ai.LLMProvider == "openai" {
		return cfg.Keys.OpenAI
	}
	return cfg.Keys.GoogleGemini
}

func llmBaseURL(cfg *config.Config) string {
	if cfg.Ai.LLMBaseURL == "" && cfg.Ai.LLMProvider == "ollama" {
		return cfg.Ai.OllamaBaseURL
	}
	return cfg.Ai.LLMBaseURL
}
