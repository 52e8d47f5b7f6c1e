package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the client configuration, loaded from environment variables
// with the CANTEEN_ prefix (e.g. CANTEEN_API_BASE_URL).
type Config struct {
	// APIBaseURL is the root of the backend API. In development the backend
	// listens on 8080.
	APIBaseURL string `envconfig:"API_BASE_URL" default:"http://localhost:8080"`

	// RequestTimeout bounds every API call; a call that exceeds it fails as
	// a transport error.
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"warn"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"` // json, console
}

// Load loads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	cfg := new(Config)
	if err := envconfig.Process("canteen", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
