package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Keys      APIKeys
	Ai        AIConfig
	Rag       RagConfig
	Messaging MessagingConfig
	Tracing   TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	WorkerPoolSize     int
	RequestTimeout     time.Duration
	ServiceJWTSecret   string // empty disables auth
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini string
	OpenAI       string
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	EmbeddingModel    string
	OllamaBaseURL     string
	LLMProvider       string // "gemini", "ollama", "openai"
	LLMModel          string
	LLMBaseURL        string // openai-compatible endpoints
	LLMTemperature    float64
	Retry             RetryConfig
}

type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
}

// ScheduleConfig mirrors search.Schedule; kept here so config has no engine imports.
type ScheduleConfig struct {
	Start float64
	Min   float64
	Step  float64
}

type RagConfig struct {
	TopK                int
	TextSchedule        ScheduleConfig
	ImageSchedule       ScheduleConfig
	HistoryTextSchedule ScheduleConfig
	HistoryImgSchedule  ScheduleConfig
	HistoryTurns        int
	HistoryTokenBudget  int
	ContextCharBudget   int
	LegacyNumberStrip   bool
	ChunkMaxTokens      int
	ChunkOverlap        int
	DeviceCacheTTL      time.Duration
	VariantCacheTTL     time.Duration
}

type MessagingConfig struct {
	NatsURL           string
	RedisURL          string
	PdfExtractSubject string
	PdfExtractTimeout time.Duration
	AuditEnabled      bool
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
	SampleRatio float64
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "50051"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "device-assistant.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			WorkerPoolSize:     getEnvAsInt("WORKER_POOL_SIZE", 4),
			RequestTimeout:     getEnvAsDuration("REQUEST_TIMEOUT", 2*time.Minute),
			ServiceJWTSecret:   getEnv("SERVICE_JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			OpenAI:       getEnv("OPENAI_API_KEY", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "text-embedding-004"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			LLMProvider:       getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:          getEnv("LLM_MODEL", "gemini-1.5-flash"),
			LLMBaseURL:        getEnv("LLM_BASE_URL", ""),
			LLMTemperature:    getEnvAsFloat("LLM_TEMPERATURE", 0.2),
			Retry: RetryConfig{
				MaxAttempts: getEnvAsInt("LLM_RETRY_ATTEMPTS", 3),
				BaseDelay:   getEnvAsDuration("LLM_RETRY_BASE_DELAY", time.Second),
				Multiplier:  getEnvAsFloat("LLM_RETRY_MULTIPLIER", 2),
			},
		},
		Rag: RagConfig{
			TopK: getEnvAsInt("RAG_TOP_K", 10),
			TextSchedule: ScheduleConfig{
				Start: getEnvAsFloat("RAG_TEXT_THRESHOLD_START", 0.75),
				Min:   getEnvAsFloat("RAG_TEXT_THRESHOLD_MIN", 0.5),
				Step:  getEnvAsFloat("RAG_TEXT_THRESHOLD_STEP", 0.1),
			},
			ImageSchedule: ScheduleConfig{
				Start: getEnvAsFloat("RAG_IMAGE_THRESHOLD_START", 1.0),
				Min:   getEnvAsFloat("RAG_IMAGE_THRESHOLD_MIN", 0.5),
				Step:  getEnvAsFloat("RAG_IMAGE_THRESHOLD_STEP", 0.05),
			},
			HistoryTextSchedule: ScheduleConfig{
				Start: getEnvAsFloat("RAG_HISTORY_TEXT_THRESHOLD_START", 0.7),
				Min:   getEnvAsFloat("RAG_HISTORY_TEXT_THRESHOLD_MIN", 0.3),
				Step:  getEnvAsFloat("RAG_HISTORY_TEXT_THRESHOLD_STEP", 0.1),
			},
			HistoryImgSchedule: ScheduleConfig{
				Start: getEnvAsFloat("RAG_HISTORY_IMAGE_THRESHOLD_START", 0.7),
				Min:   getEnvAsFloat("RAG_HISTORY_IMAGE_THRESHOLD_MIN", 0.3),
				Step:  getEnvAsFloat("RAG_HISTORY_IMAGE_THRESHOLD_STEP", 0.05),
			},
			HistoryTurns:       getEnvAsInt("RAG_HISTORY_TURNS", 5),
			HistoryTokenBudget: getEnvAsInt("RAG_HISTORY_TOKEN_BUDGET", 1_000_000),
			ContextCharBudget:  getEnvAsInt("RAG_CONTEXT_CHAR_BUDGET", 3_000_000),
			LegacyNumberStrip:  getEnvAsBool("RAG_LEGACY_NUMBER_STRIP", false),
			ChunkMaxTokens:     getEnvAsInt("CHUNK_MAX_TOKENS", 512),
			ChunkOverlap:       getEnvAsInt("CHUNK_OVERLAP", 50),
			DeviceCacheTTL:     getEnvAsDuration("DEVICE_CACHE_TTL", time.Hour),
			VariantCacheTTL:    getEnvAsDuration("VARIANT_CACHE_TTL", 24*time.Hour),
		},
		Messaging: MessagingConfig{
			NatsURL:           getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:          getEnv("REDIS_URL", ""),
			PdfExtractSubject: getEnv("PDF_EXTRACT_SUBJECT", "pdf.extract"),
			PdfExtractTimeout: getEnvAsDuration("PDF_EXTRACT_TIMEOUT", 5*time.Minute),
			AuditEnabled:      getEnvAsBool("AUDIT_ENABLED", true),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "device-assistant-ai"),
			SampleRatio: getEnvAsFloat("OTEL_SAMPLE_RATIO", 1.0),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go duration strings ("90s", "2m").
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}
