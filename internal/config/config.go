package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// Config aggregates application-wide configuration values.
type Config struct {
	DatabaseURL        string
	RedisURL           string
	Port               string
	JWTSecret          string
	TokenTTL           time.Duration
	MapsAPIKey         string
	MapsBaseURL        string
	VapiAPIKey         string
	VapiBaseURL        string
	VapiPhoneNumberID  string
	VapiAssistantID    string
	VapiWebhookSecret  string
	PriceExtractorURL  string
	RateLimitDiscovery RateLimitConfig
	DiscoveryQueue     string
	DiscoveryWorkers   int
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisURL:          getEnv("REDIS_URL", "redis://localhost:6379/0"),
		Port:              getEnv("PORT", "8080"),
		JWTSecret:         getEnv("JWT_SECRET", "dev-secret"),
		TokenTTL:          parseDuration(getEnv("JWT_TTL", "24h")),
		MapsAPIKey:        os.Getenv("MAPS_API_KEY"),
		MapsBaseURL:       getEnv("MAPS_BASE_URL", "https://maps.googleapis.com"),
		VapiAPIKey:        os.Getenv("VAPI_API_KEY"),
		VapiBaseURL:       getEnv("VAPI_BASE_URL", "https://api.vapi.ai"),
		VapiPhoneNumberID: os.Getenv("VAPI_PHONE_ID"),
		VapiAssistantID:   os.Getenv("VAPI_ASSISTANT_ID"),
		VapiWebhookSecret: os.Getenv("VAPI_WEBHOOK_SECRET"),
		PriceExtractorURL: os.Getenv("PRICE_EXTRACTOR_URL"),
		DiscoveryQueue:    getEnv("DISCOVERY_QUEUE", "default"),
		DiscoveryWorkers:  parseIntDefault(getEnv("DISCOVERY_CONCURRENCY", "10"), 10),
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_DISCOVERY", "5/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_DISCOVERY value: %w", err)
	}
	cfg.RateLimitDiscovery = rl

	return cfg, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(input string) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

func parseIntDefault(input string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
