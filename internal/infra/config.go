package infra

import (
	"log"
	"os"

	"bettrack/pkg/utils"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	PostgresURL string

	ExtractionProvider string // "gemini" or "openai"
	GeminiAPIKey       string
	GeminiModel        string
	OpenAIAPIKey       string
	OpenAIModel        string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	// Where the OAuth callback sends the signed-in browser back to.
	ExtensionURL string
}

// LoadConfig reads .env when present and validates the values the
// process cannot run without. Missing secrets stop the process here,
// before anything is served.
func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnv("PORT", "3000"),
		PostgresURL:        os.Getenv("POSTGRES_URL"),
		ExtractionProvider: getEnv("EXTRACTION_PROVIDER", "gemini"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiModel:        getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:        getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URI"),
		ExtensionURL:       os.Getenv("EXTENSION_URL"),
	}

	if cfg.PostgresURL == "" {
		log.Fatal("POSTGRES_URL environment variable is required")
	}
	if err := utils.InitSigningKey(os.Getenv("JWT_SECRET")); err != nil {
		log.Fatalf("JWT configuration: %v", err)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
