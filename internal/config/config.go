package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" env-default:"development"`
	LogLevel    string `env:"LOG_LEVEL" env-default:"info"`

	TelegramToken string `env:"TELEGRAM_TOKEN" env-required:"true"`

	AI AIConfig
	DB DBConfig

	// ExtractionMinConfidence is the policy threshold below which extracted
	// financial data is logged but not persisted.
	ExtractionMinConfidence float64 `env:"EXTRACTION_MIN_CONFIDENCE" env-default:"0.3"`
}

type AIConfig struct {
	APIKey             string `env:"OPENAI_API_KEY" env-required:"true"`
	BaseURL            string `env:"OPENAI_BASE_URL" env-default:"https://api.openai.com/v1"`
	TranscriptionModel string `env:"TRANSCRIPTION_MODEL" env-default:"whisper-1"`
	ExtractionModel    string `env:"EXTRACTION_MODEL" env-default:"gpt-4o-mini"`
}

type DBConfig struct {
	Host     string `env:"DB_HOST" env-required:"true"`
	Port     int    `env:"DB_PORT" env-default:"5432"`
	Name     string `env:"DB_NAME" env-required:"true"`
	User     string `env:"DB_USER" env-required:"true"`
	Password string `env:"DB_PASSWORD" env-required:"true"`
	SSLMode  string `env:"DB_SSLMODE" env-default:"disable"`
	MinConns int32  `env:"DB_MIN_CONNS" env-default:"2"`
	MaxConns int32  `env:"DB_MAX_CONNS" env-default:"10"`
}

// URI builds a pgx connection string from the individual settings.
func (c DBConfig) URI() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s&pool_min_conns=%d&pool_max_conns=%d",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode, c.MinConns, c.MaxConns)
}

func Load() (*Config, error) {
	// .env file is optional in production
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config from environment: %w", err)
	}
	return &cfg, nil
}
