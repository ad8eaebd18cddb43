package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	OAuth    OAuthConfig
	Ai       AIConfig
	RAG      RAGConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	EventLogFilePath   string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	UploadDir          string
	JwtSecret          string
	KeySealingSecret   string
	IngestTopic        string
}

type DatabaseConfig struct {
	Connection string
	Driver     string // "postgres" or "memory"
}

type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

type AIConfig struct {
	EmbeddingProvider  string // "ollama", "gemini", "jina", "vertex" or "none"
	EmbeddingModel     string
	EmbeddingDimension int
	EmbeddingCacheTTL  time.Duration
	GeminiAPIKey       string // server-wide key for the gemini embedding provider
	JinaAPIKey         string
	OllamaBaseURL      string
	LLMProvider        string // fallback when the user has no key: "ollama", "vertex" or "none"
	LLMModel           string // e.g. "llama3", "qwen2.5"
	GeminiChatModel    string
	VertexProject      string
	VertexLocation     string
}

type RAGConfig struct {
	ChunkSize         int
	ChunkOverlap      int
	TopK              int
	DetailConcurrency int
	IngestConcurrency int
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			EventLogFilePath:   getEnv("EVENT_LOG_FILE_PATH", "logs/events.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			UploadDir:          getEnv("UPLOAD_DIR", "uploads"),
			JwtSecret:          getEnv("JWT_SECRET", "default_secret"),
			KeySealingSecret:   getEnv("KEY_SEALING_SECRET", ""),
			IngestTopic:        getEnv("INGEST_FILE_TOPIC_NAME", "INGEST_LESSON_FILE"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
			Driver:     getEnv("STORE_DRIVER", "postgres"),
		},
		OAuth: OAuthConfig{
			GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider:  getEnv("EMBEDDING_PROVIDER", "ollama"),
			EmbeddingModel:     getEnv("EMBEDDING_MODEL", "nomic-embed-text"),
			EmbeddingDimension: getEnvAsInt("EMBEDDING_DIMENSION", 768),
			EmbeddingCacheTTL:  getEnvAsDuration("EMBEDDING_CACHE_TTL", 24*time.Hour),
			GeminiAPIKey:       getEnv("GOOGLE_GEMINI_API_KEY", ""),
			JinaAPIKey:         getEnv("JINA_API_KEY", ""),
			OllamaBaseURL:      getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			LLMProvider:        getEnv("LLM_PROVIDER", "none"),
			LLMModel:           getEnv("LLM_MODEL", "llama3"),
			GeminiChatModel:    getEnv("GEMINI_CHAT_MODEL", "gemini-1.5-flash"),
			VertexProject:      getEnv("VERTEX_PROJECT", ""),
			VertexLocation:     getEnv("VERTEX_LOCATION", "us-central1"),
		},
		RAG: RAGConfig{
			ChunkSize:         getEnvAsInt("RAG_CHUNK_SIZE", 1000),
			ChunkOverlap:      getEnvAsInt("RAG_CHUNK_OVERLAP", 200),
			TopK:              getEnvAsInt("RAG_TOP_K", 5),
			DetailConcurrency: getEnvAsInt("RAG_DETAIL_CONCURRENCY", 4),
			IngestConcurrency: getEnvAsInt("RAG_INGEST_CONCURRENCY", 4),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "lessoncraft-be"),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
