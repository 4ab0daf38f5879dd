package agentdemo

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	OpenAIAPIKey  string
	OpenAIBaseURL string
	Model         string
	DatabaseDSN   string
}

// LoadConfig reads a local .env when present and falls back to process
// environment variables.
func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, falling back to environment variables")
	}

	return &Config{
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
		Model:         getEnv("AGENTDEMO_MODEL", "gpt-4o-mini"),
		DatabaseDSN:   getEnv("AGENTDEMO_DB", "bank_agent.db"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
