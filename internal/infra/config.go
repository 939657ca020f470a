package infra

import (
	"os"
	"strconv"
)

// Config is loaded once at process start and passed into constructors.
// Nothing inside the course engine reads the environment directly.
type Config struct {
	Port        string
	PostgresURL string
	JWTSecret   string

	MapboxAccessToken string
	RoutingRetries    int

	OpenAIAPIKey string
	GeminiAPIKey string
	LLMProvider  string // "openai" | "gemini" | "" (rule-based fallback)
}

func LoadConfig() Config {
	retries := 3
	if v := os.Getenv("ROUTING_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			retries = n
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return Config{
		Port:              port,
		PostgresURL:       os.Getenv("POSTGRES_URL"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		MapboxAccessToken: os.Getenv("MAPBOX_ACCESS_TOKEN"),
		RoutingRetries:    retries,
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		LLMProvider:       os.Getenv("LLM_PROVIDER"),
	}
}
