package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config collects every environment-driven setting in one place.
type Config struct {
	Port string

	// LLMProvider selects the adapter: "anthropic", "openai", or "mock".
	LLMProvider     string
	LLMModel        string
	AnthropicAPIKey string
	OpenAIAPIKey    string

	// ExcerptLimit caps the document prefix (in bytes) sent to the model.
	ExcerptLimit int

	SessionKey string
}

func Load() *Config {
	// .env is optional — real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		LLMProvider:     getEnv("LLM_PROVIDER", "anthropic"),
		LLMModel:        os.Getenv("LLM_MODEL"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		ExcerptLimit:    getEnvInt("EXCERPT_LIMIT", 10000),
		SessionKey:      getEnv("SESSION_KEY", "smart-assistant-session-key"),
	}

	if os.Getenv("MOCK_LLM") == "true" {
		cfg.LLMProvider = "mock"
	}

	return cfg
}

// APIKey returns the credential for the configured provider.
func (c *Config) APIKey() string {
	switch c.LLMProvider {
	case "openai":
		return c.OpenAIAPIKey
	default:
		return c.AnthropicAPIKey
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
