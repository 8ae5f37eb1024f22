package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string

	DatabaseURL string

	RedisURL string

	JWTSecret       string
	JWTAccessExpiry time.Duration

	CORSOrigins string

	ResendAPIKey string
	FromEmail    string
	AdminEmail   string
	SiteName     string

	// Rate-limit scopes, per client IP.
	CommentRateLimit  int
	CommentRateWindow time.Duration
	MessageRateLimit  int
	MessageRateWindow time.Duration
	LoginRateLimit    int
	LoginRateWindow   time.Duration

	// New comments start as pending when moderation is on.
	CommentModeration bool

	// Soft-deleted articles older than this are purged by the cleanup loop.
	ArticleRetentionDays int

	VisitQueueSize   int
	VisitWorkerCount int
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),

		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTAccessExpiry: getDurationEnv("JWT_ACCESS_EXPIRY", 24*time.Hour),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173"),

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@example.com"),
		AdminEmail:   getEnv("ADMIN_EMAIL", ""),
		SiteName:     getEnv("SITE_NAME", "Inkwell"),

		CommentRateLimit:  getIntEnv("COMMENT_RATE_LIMIT", 3),
		CommentRateWindow: getDurationEnv("COMMENT_RATE_WINDOW", 60*time.Second),
		MessageRateLimit:  getIntEnv("MESSAGE_RATE_LIMIT", 3),
		MessageRateWindow: getDurationEnv("MESSAGE_RATE_WINDOW", 60*time.Second),
		LoginRateLimit:    getIntEnv("LOGIN_RATE_LIMIT", 10),
		LoginRateWindow:   getDurationEnv("LOGIN_RATE_WINDOW", time.Hour),

		CommentModeration: getBoolEnv("COMMENT_MODERATION", false),

		ArticleRetentionDays: getIntEnv("ARTICLE_RETENTION_DAYS", 30),

		VisitQueueSize:   getIntEnv("VISIT_QUEUE_SIZE", 1024),
		VisitWorkerCount: getIntEnv("VISIT_WORKER_COUNT", 2),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
