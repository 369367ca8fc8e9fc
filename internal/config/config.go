// Package config reads engine settings from the environment. A .env
// file in the working directory is loaded first when present.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// Parser backends.
	LocalBaseURL string `env:"LOCAL_BASE_URL" envDefault:"http://localhost:11434/v1"`
	LocalAPIKey  string `env:"LOCAL_API_KEY"`
	LocalModel   string `env:"LOCAL_MODEL" envDefault:"llama3.2"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`

	// Transcript database.
	TranscriptDB string `env:"TRANSCRIPT_DB" envDefault:"./transcript.db"`

	// Tracing.
	TraceEnabled   bool   `env:"OTEL_TRACES_ENABLED"`
	TraceEndpoint  string `env:"OTEL_TRACES_ENDPOINT" envDefault:"https://cloud.langfuse.com/api/public/otel/v1/traces"`
	TracePublicKey string `env:"LANGFUSE_PUBLIC_KEY"`
	TraceSecretKey string `env:"LANGFUSE_SECRET_KEY"`
	Environment    string `env:"ENVIRONMENT" envDefault:"development"`
}

// Load reads the optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}
