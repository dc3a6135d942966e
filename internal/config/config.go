package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centralizes service configuration.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	LLMAPIKey         string `env:"LLM_API_KEY"`
	LLMBaseURL        string `env:"LLM_BASE_URL" envDefault:"https://ark.ap-southeast.bytepluses.com/api/v3"`
	LLMModel          string `env:"LLM_MODEL"`
	LLMEmbeddingModel string `env:"LLM_EMBEDDING_MODEL" envDefault:"text-embedding-3-small"`

	JWTSecret     string        `env:"JWT_SECRET,required"`
	JWTAccessTTL  time.Duration `env:"JWT_ACCESS_TTL" envDefault:"15m"`
	JWTRefreshTTL time.Duration `env:"JWT_REFRESH_TTL" envDefault:"720h"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	TurnRateWindow time.Duration `env:"TURN_RATE_WINDOW" envDefault:"1m"`
	TurnRateMax    int           `env:"TURN_RATE_MAX" envDefault:"20"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPass     string `env:"SMTP_PASS"`
	SMTPFrom     string `env:"SMTP_FROM"`
	SMTPFromName string `env:"SMTP_FROM_NAME" envDefault:"EVOLVE"`
	SMTPUseTLS   bool   `env:"SMTP_USE_TLS" envDefault:"false"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
