package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv              string
	Port                string
	DatabaseURL         string
	CurrencyAPIKey      string
	CurrencyAPIURL      string
	BaseCurrency        string
	CurrencyCacheWindow time.Duration
	SessionLifetime     time.Duration
	AllowedOrigins      []string
	HTTPReadTimeout     time.Duration
	HTTPWriteTimeout    time.Duration
	HTTPIdleTimeout     time.Duration
	RateLimitPerMin     int
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:              getEnv("APP_ENV", "development"),
		Port:                getEnv("PORT", "8080"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		CurrencyAPIKey:      os.Getenv("CURRENCY_API_KEY"),
		CurrencyAPIURL:      getEnv("CURRENCY_API_URL", "https://api.freecurrencyapi.com/v1/latest"),
		BaseCurrency:        strings.ToUpper(getEnv("CURRENCY_BASE", "USD")),
		CurrencyCacheWindow: time.Minute * time.Duration(getEnvInt("CURRENCY_CACHE_MINUTES", 60)),
		SessionLifetime:     time.Hour * time.Duration(getEnvInt("SESSION_LIFETIME_HOURS", 12)),
		AllowedOrigins:      splitEnv("CORS_ALLOWED_ORIGINS"),
		HTTPReadTimeout:     time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:    time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:     time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:     getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if len(cfg.BaseCurrency) != 3 {
		return nil, fmt.Errorf("CURRENCY_BASE must be a 3-letter code, got %q", cfg.BaseCurrency)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitEnv(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
