package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr string

	DBDriver string
	DBDSN    string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string

	// orders dataset + fallback document index
	OrdersCSVPath   string
	DocstoreBackend string // redis | pgvector | none

	ChatContextWindowSize int
	SessionTTL            time.Duration
	SessionStore          string // memory | redis

	// AI provider
	AIProvider        string
	LLMTimeout        time.Duration
	OllamaBaseURL     string
	OllamaModel       string
	OpenRouterBaseURL string
	OpenRouterAPIKey  string
	OpenRouterModel   string
	OpenRouterSiteURL string
	OpenRouterAppName string

	// rabbitMQ
	RabbitURL   string
	RabbitQueue string
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getdur(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func Load() Config {
	return Config{
		Addr: getenv("ADDR", ":8080"),

		// sqlite by default so the service runs with zero external deps;
		// DSN demo for mysql:
		// app:apppass@tcp(127.0.0.1:3306)/support_chat?charset=utf8mb4&parseTime=true&loc=Local
		DBDriver: getenv("DB_DRIVER", "sqlite"),
		DBDSN:    getenv("DB_DSN", "support_chat.db"),

		RedisAddr:     getenv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getint("REDIS_DB", 0),

		JWTSecret: getenv("JWT_SECRET", "dev-secret-change-me"),

		OrdersCSVPath:   getenv("ORDERS_CSV_PATH", "data/olist_orders_dataset.csv"),
		DocstoreBackend: getenv("DOCSTORE_BACKEND", "none"),

		ChatContextWindowSize: getint("CHAT_CONTEXT_WINDOW_SIZE", 15),
		SessionTTL:            getdur("SESSION_TTL", 30*time.Minute),
		SessionStore:          getenv("SESSION_STORE", "memory"),

		AIProvider:        getenv("AI_PROVIDER", "ollama"),
		LLMTimeout:        getdur("LLM_TIMEOUT", 8*time.Second),
		OllamaBaseURL:     getenv("OLLAMA_BASE_URL", "http://localhost:11434"),
		OllamaModel:       getenv("OLLAMA_MODEL", "llama3:latest"),
		OpenRouterBaseURL: getenv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		OpenRouterAPIKey:  os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterModel:   getenv("OPENROUTER_MODEL", "openrouter/auto"),
		OpenRouterSiteURL: os.Getenv("OPENROUTER_SITE_URL"),
		OpenRouterAppName: os.Getenv("OPENROUTER_APP_NAME"),

		RabbitURL:   os.Getenv("RABBIT_URL"),
		RabbitQueue: getenv("RABBIT_QUEUE", "contact_requests"),
	}
}
