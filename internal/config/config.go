package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP server
	Port       string
	Env        string
	CORSOrigin string

	// Database
	DatabaseURL string

	// Sessions
	JWTSecret  string
	JWTExpires time.Duration

	// Uploads
	UploadDir      string
	MaxUploadBytes int64

	// Rate limits
	AuthRateMax  int
	WriteRateMax int
	RateWindow   time.Duration

	// Logging
	LogLevel string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:       getEnv("PORT", "8080"),
		Env:        strings.ToLower(getEnv("ENV", "dev")),
		CORSOrigin: getEnv("CORS_ORIGIN", "*"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret:  strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTExpires: getEnvDuration("JWT_EXPIRES", 7*24*time.Hour),

		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadBytes: getEnvInt64("MAX_UPLOAD_BYTES", 5*1024*1024),

		AuthRateMax:  getEnvInt("RATE_LIMIT_AUTH_MAX", 10),
		WriteRateMax: getEnvInt("RATE_LIMIT_WRITE_MAX", 60),
		RateWindow:   getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}
