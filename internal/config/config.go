package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	Keys     APIKeys
	Ai       AIConfig
	Match    MatchConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type SessionConfig struct {
	// Backend selects the durable session store: "postgres", "redis" or "memory".
	Backend    string
	CookieName string
}

type APIKeys struct {
	GoogleGemini    string
	EmbedJobTopic   string // watermill topic for job embedding recompute
	JobUpdatedEvent string // NATS event type published by the scrapers
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	EmbeddingModel    string
	EmbeddingDim      int
	OllamaBaseURL     string
	LLMProvider       string // "gemini" or "ollama"
	LLMModel          string
	LLMTemperature    float64
}

type MatchConfig struct {
	RetrievalCount int // K: nearest postings fetched per query
	RerankCount    int // N: postings the rerank pass keeps
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:8000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Session: SessionConfig{
			Backend:    getEnv("SESSION_STORE_BACKEND", "postgres"),
			CookieName: getEnv("SESSION_COOKIE_NAME", "session_id"),
		},
		Keys: APIKeys{
			GoogleGemini:    getEnv("GOOGLE_GEMINI_API_KEY", ""),
			EmbedJobTopic:   getEnv("EMBED_JOB_TOPIC_NAME", "EMBED_JOB_SENTENCES"),
			JobUpdatedEvent: getEnv("JOB_UPDATED_EVENT_NAME", "JOB_SENTENCES_UPDATED"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "text-embedding-004"),
			EmbeddingDim:      getEnvAsInt("EMBEDDING_DIM", 768),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			LLMProvider:       getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:          getEnv("LLM_MODEL", "gemini-2.0-flash"),
			LLMTemperature:    getEnvAsFloat("LLM_TEMPERATURE", 0.2),
		},
		Match: MatchConfig{
			RetrievalCount: getEnvAsInt("RETRIEVAL_COUNT", 10),
			RerankCount:    getEnvAsInt("RERANK_COUNT", 5),
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
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
