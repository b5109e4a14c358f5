package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	ServerPort string

	// LLM provider (OpenAI-compatible chat completions endpoint)
	LLMAPIKey  string
	LLMBaseURL string
	LLMModel   string

	// Optional Redis response cache; empty RedisURL disables caching
	RedisURL      string
	RedisPassword string
	CacheTTL      int // seconds

	// External PDF renderer and generated-file storage
	PDFRendererURL string
	UploadsDir     string

	// Links embedded in scheduling confirmations
	MeetingPlatformURL string
	FrontendURL        string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "portfolio_blog"),
		JWTSecret:  getEnv("JWT_SECRET", "secret"),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		LLMAPIKey:  getEnv("MISTRAL_API_KEY", ""),
		LLMBaseURL: getEnv("LLM_BASE_URL", "https://api.mistral.ai/v1"),
		LLMModel:   getEnv("LLM_MODEL", "mistral-small"),

		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		CacheTTL:      getEnvInt("CACHE_TTL", 300),

		PDFRendererURL: getEnv("PDF_RENDERER_URL", ""),
		UploadsDir:     getEnv("UPLOADS_DIR", "uploads"),

		MeetingPlatformURL: getEnv("MEETING_PLATFORM_URL", "https://meet.google.com"),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:3000"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
