package infra

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string
	RedisURL    string

	SessionCacheTTL time.Duration

	GeoIPDBPath   string
	DefaultLocale string

	CollectionsBaseURL     string
	CollectionsAPIKey      string
	PropertyTemplateSet    string
	TipTemplateSet         string
	ReviewTemplateSet      string
	PreferredAssetFragment string

	VideoBaseURL    string
	VideoAPIKey     string
	VideoTemplateID string

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	PollInterval    time.Duration
	PollMaxAttempts int

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:      getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		SessionCacheTTL: time.Second * time.Duration(getEnvInt("SESSION_CACHE_TTL_SECONDS", 300)),

		GeoIPDBPath:   os.Getenv("GEOIP_DB_PATH"),
		DefaultLocale: getEnv("DEFAULT_LOCALE", "en"),

		CollectionsBaseURL:     getEnv("COLLECTIONS_BASE_URL", "https://api.bannerkit.dev/v2"),
		CollectionsAPIKey:      os.Getenv("COLLECTIONS_API_KEY"),
		PropertyTemplateSet:    getEnv("PROPERTY_TEMPLATE_SET", "property_showcase"),
		TipTemplateSet:         getEnv("TIP_TEMPLATE_SET", "agent_advice"),
		ReviewTemplateSet:      getEnv("REVIEW_TEMPLATE_SET", "client_review"),
		PreferredAssetFragment: getEnv("PREFERRED_ASSET_FRAGMENT", "square"),

		VideoBaseURL:    getEnv("VIDEO_BASE_URL", "https://api.videoforge.dev/v1"),
		VideoAPIKey:     os.Getenv("VIDEO_API_KEY"),
		VideoTemplateID: os.Getenv("VIDEO_TEMPLATE_ID"),

		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),

		PollInterval:    time.Millisecond * time.Duration(getEnvInt("POLL_INTERVAL_MS", 2500)),
		PollMaxAttempts: getEnvInt("POLL_MAX_ATTEMPTS", 24),

		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 90)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.CollectionsAPIKey == "" {
		return nil, fmt.Errorf("COLLECTIONS_API_KEY is required")
	}

	if cfg.PollMaxAttempts <= 0 {
		return nil, fmt.Errorf("POLL_MAX_ATTEMPTS must be positive")
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
