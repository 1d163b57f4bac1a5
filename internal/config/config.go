package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`

	StoreBackend        string `env:"STORE_BACKEND" envDefault:"sqlite"`
	InventoryCollection string `env:"INVENTORY_COLLECTION" envDefault:"inventory"`
	DBPath              string `env:"DB_PATH" envDefault:"/data/pantry.db"`
	FileStorePath       string `env:"FILE_STORE_PATH" envDefault:"/data/documents"`
	FirestoreProjectID  string `env:"FIRESTORE_PROJECT_ID"`
	FirestoreDatabase   string `env:"FIRESTORE_DATABASE" envDefault:"(default)"`
	RedisAddr           string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword       string `env:"REDIS_PASSWORD"`
	RedisDB             int    `env:"REDIS_DB" envDefault:"0"`

	RecipeBackend string `env:"RECIPE_BACKEND" envDefault:"groq"`
	RecipeModel   string `env:"RECIPE_MODEL"`
	GroqAPIKey    string `env:"GROQ_API_KEY"`
	GroqBaseURL   string `env:"GROQ_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	GeminiAPIKey  string `env:"GEMINI_API_KEY"`

	ClassifierBackend string `env:"CLASSIFIER_BACKEND" envDefault:"openai"`
	ClassifierModel   string `env:"CLASSIFIER_MODEL"`
	OpenAIAPIKey      string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL     string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	OllamaHost        string `env:"OLLAMA_HOST" envDefault:"http://localhost:11434"`

	ClaudeAPIKey string `env:"CLAUDE_API_KEY"`

	SessionTTL  time.Duration `env:"SESSION_TTL" envDefault:"2h"`
	MaxSessions int           `env:"MAX_SESSIONS" envDefault:"1024"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`
}

// Load reads an optional .env file (ENV_FILE, default ".env") and then parses
// the environment. Variables already set in the environment win over the file.
func Load() (*Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
