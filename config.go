package authclient

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the explicit construction values for a client. There is
// no package level base URL; callers build a Config and pass it in.
type Config struct {
	// BaseURL is the API origin requests resolve against. Absolute
	// paths passed to the client bypass it.
	BaseURL string
	// StorageDSN is the sqlite DSN backing the durable storage tier.
	StorageDSN string
	// HTTPTimeout bounds each request via the underlying http.Client.
	// Zero means the transport default.
	HTTPTimeout time.Duration
	// LogLevel configures the zap adapter when one is built from config.
	LogLevel string
}

const (
	defaultBaseURL    = "http://localhost:8080"
	defaultStorageDSN = "file:auth_client.db?cache=shared"
)

// LoadConfig reads configuration from environment variables, applying
// defaults where possible. A .env file is honored when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	timeoutSeconds, err := strconv.Atoi(getEnv("AUTH_HTTP_TIMEOUT_SECONDS", "0"))
	if err != nil {
		timeoutSeconds = 0
	}

	cfg := &Config{
		BaseURL:     getEnv("AUTH_API_BASE_URL", defaultBaseURL),
		StorageDSN:  getEnv("AUTH_STORAGE_DSN", defaultStorageDSN),
		HTTPTimeout: time.Duration(timeoutSeconds) * time.Second,
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

func (c *Config) GetBaseURL() string {
	if c == nil || c.BaseURL == "" {
		return defaultBaseURL
	}
	return c.BaseURL
}

func (c *Config) GetStorageDSN() string {
	if c == nil || c.StorageDSN == "" {
		return defaultStorageDSN
	}
	return c.StorageDSN
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
