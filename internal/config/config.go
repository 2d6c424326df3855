// Package config builds the runtime configuration from environment
// variables so main stays lean. godotenv loads a local .env before this
// runs; in deployed environments the variables come from the platform.
package config

import (
	"os"
	"strconv"
)

// Extractor selection values.
const (
	ExtractorHeuristic = "heuristic"
	ExtractorGemini    = "gemini"
)

type Config struct {
	Addr        string
	DatabaseURL string

	JWTSecret      string
	TokenTTLHours  int
	UploadDir      string
	MaxUploadBytes int64

	// Extractor picks the field-extraction backend: "heuristic" (default)
	// or "gemini".
	Extractor    string
	GeminiAPIKey string
	GeminiModel  string

	// GoogleCredentials is the service-account file for the Vision OCR
	// client; empty means application default credentials.
	GoogleCredentials string

	FrontendBaseURL string

	LogLevel  string
	LogFormat string
}

func FromEnv() Config {
	cfg := Config{
		Addr:              getenv("ADDR", ":8080"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		JWTSecret:         getenv("JWT_SECRET", "dev-secret-change-in-production"),
		TokenTTLHours:     getenvInt("TOKEN_TTL_HOURS", 24),
		UploadDir:         getenv("UPLOAD_DIR", "uploads"),
		MaxUploadBytes:    10 << 20,
		Extractor:         getenv("EXTRACTOR", ExtractorHeuristic),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       os.Getenv("GEMINI_MODEL"),
		GoogleCredentials: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		FrontendBaseURL:   getenv("FRONTEND_BASE_URL", "http://localhost:3000"),
		LogLevel:          getenv("LOG_LEVEL", "info"),
		LogFormat:         getenv("LOG_FORMAT", "json"),
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
