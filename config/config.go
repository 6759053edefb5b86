package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	GinMode  string
	LogLevel string
	DBUrl    string
	// Resend Configuration
	ResendAPIKey string
	FromEmail    string // Verified sender address, provider default when empty
	// SMTP Configuration (Brevo), used when Resend is not configured
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	// Internal copy of every submission, disabled when empty
	ContactEmailTo string
	BrandName      string
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	IdempotencyTTL       time.Duration
	IdempotencyPending   time.Duration // lifetime of a key whose request has not finished
	// Timeouts
	NotifyTimeout   time.Duration
	ShutdownTimeout time.Duration
}

func LoadConfig() (*Config, error) {
	// Load .env file (only effective locally, ignored in production when the file is absent)
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		GinMode:  getEnv("GIN_MODE", "debug"),
		LogLevel: getEnv("LOG_LEVEL", "INFO"),
		DBUrl:    getEnv("DATABASE_URL", ""),
		// Resend Configuration
		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		FromEmail:    strings.TrimSpace(getEnv("FROM_MY_DOMAIN_EMAIL", "")),
		// SMTP Configuration
		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		ContactEmailTo: strings.TrimSpace(getEnv("CONTACT_EMAIL_TO", "")),
		BrandName:      getEnv("BRAND_NAME", "SecurePrimedex"),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		IdempotencyTTL:       getEnvSeconds("IDEMPOTENCY_TTL_SECONDS", 24*time.Hour),
		IdempotencyPending:   getEnvSeconds("IDEMPOTENCY_PENDING_SECONDS", 30*time.Second),
		// Timeouts
		NotifyTimeout:   getEnvSeconds("NOTIFY_TIMEOUT_SECONDS", 10*time.Second),
		ShutdownTimeout: getEnvSeconds("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}

	if cfg.ResendAPIKey == "" && cfg.SMTPHost == "" {
		log.Println("WARNING: neither RESEND_API_KEY nor SMTP_HOST configured. Thank-you emails will not be sent.")
	}

	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Idempotency keys will be ignored.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvSeconds reads a whole number of seconds; non-positive values fall back
func getEnvSeconds(key string, fallback time.Duration) time.Duration {
	secs := getEnvInt(key, -1)
	if secs <= 0 {
		return fallback
	}
	return time.Duration(secs) * time.Second
}
