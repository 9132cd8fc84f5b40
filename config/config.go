package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAPIBaseURL    = "https://api.transferbooking.app"
	defaultMapsAPIKey    = "AIzaSyD-transfer-dashboard-public"
	defaultPort          = "8080"
	defaultSessionStore  = "memory"
	defaultMigrations    = "file://db/migrations"
	defaultLogLevel      = "info"
	defaultLogFormat     = "text"
	defaultAPITimeout    = 15 * time.Second
	defaultCallCountdown = 30
	defaultMaxImageBytes = 5 << 20
	defaultLocales       = "en,hi"
)

type Config struct {
	APIBaseURL string
	MapsAPIKey string
	APITimeout time.Duration
	Port       string

	SessionStore   string // memory | postgres | mongo | redis
	SessionSecret  string
	CookieSecure   bool
	PostgresURL    string
	MongoURL       string
	RedisURL       string
	MigrationsPath string

	LogLevel  string
	LogFormat string // text | json

	CallCountdown  int
	MaxImageBytes  int64
	AllowedOrigins []string
	// CallsWebhookSecret must accompany every POST /calls/incoming.
	CallsWebhookSecret string

	TranslationLocales []string

	// Currency words used when spelling report amounts; empty keeps the defaults.
	CurrencyUnit    string
	CurrencySubunit string

	R2 R2Config
}

// R2Config holds the Cloudflare R2 bucket used to archive generated reports.
// Archival is disabled when Bucket is empty.
type R2Config struct {
	Bucket          string
	AccountID       string
	PublicURL       string
	AccessKeyID     string
	SecretAccessKey string
}

func (c R2Config) Enabled() bool {
	return c.Bucket != "" && c.AccountID != "" && c.PublicURL != ""
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		APIBaseURL:     strings.TrimRight(valueOrDefault("API_BASE_URL", defaultAPIBaseURL), "/"),
		MapsAPIKey:     valueOrDefault("MAPS_API_KEY", defaultMapsAPIKey),
		Port:           valueOrDefault("PORT", defaultPort),
		SessionStore:   strings.ToLower(valueOrDefault("SESSION_STORE", defaultSessionStore)),
		SessionSecret:  os.Getenv("SESSION_SECRET"),
		PostgresURL:    os.Getenv("POSTGRES_URL"),
		MongoURL:       os.Getenv("MONGO_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		MigrationsPath: valueOrDefault("MIGRATIONS_PATH", defaultMigrations),
		LogLevel:       valueOrDefault("LOG_LEVEL", defaultLogLevel),
		LogFormat:      valueOrDefault("LOG_FORMAT", defaultLogFormat),
		AllowedOrigins: splitCSV(os.Getenv("ALLOWED_ORIGINS")),

		CallsWebhookSecret: os.Getenv("CALLS_WEBHOOK_SECRET"),
		TranslationLocales: splitCSV(valueOrDefault("TRANSLATION_LOCALES", defaultLocales)),
		CurrencyUnit:       os.Getenv("REPORT_CURRENCY_UNIT"),
		CurrencySubunit:    os.Getenv("REPORT_CURRENCY_SUBUNIT"),

		R2: R2Config{
			Bucket:          os.Getenv("R2_BUCKET"),
			AccountID:       os.Getenv("R2_ACCOUNT_ID"),
			PublicURL:       os.Getenv("R2_PUBLIC_URL"),
			AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		},
	}

	timeout, err := parseDuration("API_TIMEOUT", defaultAPITimeout)
	if err != nil {
		return nil, err
	}
	cfg.APITimeout = timeout

	countdown, err := parsePositiveInt("CALL_COUNTDOWN", defaultCallCountdown)
	if err != nil {
		return nil, err
	}
	cfg.CallCountdown = countdown

	secure, err := parseBool("COOKIE_SECURE", false)
	if err != nil {
		return nil, err
	}
	cfg.CookieSecure = secure

	maxImage, err := parsePositiveInt("MAX_IMAGE_BYTES", defaultMaxImageBytes)
	if err != nil {
		return nil, err
	}
	cfg.MaxImageBytes = int64(maxImage)

	if len(cfg.TranslationLocales) == 0 {
		return nil, fmt.Errorf("TRANSLATION_LOCALES must name at least one locale")
	}

	switch cfg.SessionStore {
	case "memory":
	case "postgres":
		if cfg.PostgresURL == "" {
			return nil, fmt.Errorf("POSTGRES_URL is required for SESSION_STORE=postgres")
		}
	case "mongo":
		if cfg.MongoURL == "" {
			return nil, fmt.Errorf("MONGO_URL is required for SESSION_STORE=mongo")
		}
	case "redis":
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL is required for SESSION_STORE=redis")
		}
	default:
		return nil, fmt.Errorf("SESSION_STORE %q not supported", cfg.SessionStore)
	}

	return cfg, nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func parsePositiveInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", key, n)
	}
	return n, nil
}

func parseBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, v, err)
	}
	return b, nil
}

func splitCSV(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
