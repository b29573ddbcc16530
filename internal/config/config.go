package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is only meant for local development
const DefaultJWTSecret = "dev-secret-change-me"

// Config holds application configuration
type Config struct {
	ServerPort   string
	DatabaseType string
	DatabasePath string
	DatabaseURL  string

	JWTSecret string
	TokenTTL  time.Duration

	LogLevel  string
	LogFormat string

	CORSAllowedOrigins []string
	LoginRateLimit     int
	AccessRateLimit    int
	MaxBodyBytes       int64
	TrustedProxies     []string

	AWSRegion       string
	SESFromEmail    string
	SESFromName     string
	RSVPNotifyEmail string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first when present; variables
// already set in the environment win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:   getEnv("PORT", "5174"),
		DatabaseType: getEnv("DATABASE_TYPE", "sqlite"),
		DatabasePath: getEnv("DB_PATH", "./data/app.db"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),

		JWTSecret: getEnv("ADMIN_JWT_SECRET", DefaultJWTSecret),
		TokenTTL:  getEnvDuration("TOKEN_TTL", 7*24*time.Hour),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LoginRateLimit:     getEnvInt("LOGIN_RATE_LIMIT", 10),
		AccessRateLimit:    getEnvInt("ACCESS_RATE_LIMIT", 30),
		MaxBodyBytes:       1 << 20, // 1MB
		TrustedProxies:     splitList(getEnv("TRUSTED_PROXIES", "")),

		AWSRegion:       getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail:    getEnv("SES_FROM_EMAIL", ""),
		SESFromName:     getEnv("SES_FROM_NAME", ""),
		RSVPNotifyEmail: getEnv("RSVP_NOTIFY_EMAIL", ""),
	}
}

// UsesDefaultSecret reports whether tokens are signed with the development secret
func (c *Config) UsesDefaultSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
