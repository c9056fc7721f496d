package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DevJWTSecret signs tokens outside production when JWT_SECRET is unset.
const DevJWTSecret = "dev-secret-change-me"

// ErrInsecureSecret is returned when production runs without its own JWT_SECRET.
var ErrInsecureSecret = errors.New("JWT_SECRET must be set to a private value in production")

// Config holds the application configuration.
type Config struct {
	ServerPort   int
	DatabasePath string
	StaticDir    string // Built frontend bundle, served with an index.html fallback
	AppEnv       string
	LogLevel     string

	JWTSecret string
	TokenTTL  time.Duration

	CORSAllowedOrigins []string

	// Seed admin account, created on first start when no user exists
	AdminUsername string
	AdminEmail    string
	AdminPassword string

	ContactRatePerMinute int

	MessageRetentionDays int // Read messages older than this are purged; 0 disables
	EventRetention       int // Number of activity events kept
	HousekeepingCron     string
}

// IsProduction reports whether the server runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load loads configuration from environment variables or sets defaults.
// A .env file in the working directory is read first when present;
// variables already set in the environment win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "4000"))
	if err != nil {
		return nil, err
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, err
	}

	contactRate, err := strconv.Atoi(getEnv("CONTACT_RATE_PER_MIN", "5"))
	if err != nil {
		return nil, err
	}

	retentionDays, err := strconv.Atoi(getEnv("MESSAGE_RETENTION_DAYS", "0"))
	if err != nil {
		return nil, err
	}

	eventRetention, err := strconv.Atoi(getEnv("EVENT_RETENTION", "500"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ServerPort:           port,
		DatabasePath:         getEnv("DATABASE_PATH", "./portfolio.db"),
		StaticDir:            getEnv("STATIC_DIR", "./dist"),
		AppEnv:               getEnv("APP_ENV", "development"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		JWTSecret:            getEnv("JWT_SECRET", DevJWTSecret),
		TokenTTL:             ttl,
		CORSAllowedOrigins:   splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:8080")),
		AdminUsername:        getEnv("ADMIN_USERNAME", "admin"),
		AdminEmail:           getEnv("ADMIN_EMAIL", ""),
		AdminPassword:        getEnv("ADMIN_PASSWORD", ""),
		ContactRatePerMinute: contactRate,
		MessageRetentionDays: retentionDays,
		EventRetention:       eventRetention,
		HousekeepingCron:     getEnv("HOUSEKEEPING_CRON", "0 3 * * *"),
	}
	if cfg.IsProduction() && (cfg.JWTSecret == "" || cfg.JWTSecret == DevJWTSecret) {
		return nil, ErrInsecureSecret
	}
	return cfg, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
