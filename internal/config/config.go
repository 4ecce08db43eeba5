// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int
	// ShutdownTimeout bounds graceful shutdown of the HTTP servers.
	ShutdownTimeout time.Duration

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// TokenDefaultBitSize is the entropy used when a request does not specify one.
	TokenDefaultBitSize int
	// TokenDefaultAlphabet is a preset name (e.g., "base58") or a literal alphabet used
	// when a request does not specify one.
	TokenDefaultAlphabet string
	// TokenMaxBitSize is the largest bit size a request may ask for.
	TokenMaxBitSize int
	// TokenMaxBatchSize is the largest number of tokens a single request may generate.
	TokenMaxBatchSize int
	// TokenBatchWorkers bounds the goroutines used to generate a batch.
	TokenBatchWorkers int
	// TokenHashEnabled allows callers to request an Argon2id hash of each token.
	TokenHashEnabled bool

	// RateLimitEnabled indicates whether per-IP rate limiting of token endpoints is enabled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of requests allowed per second per IP.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size for per-IP rate limiting.
	RateLimitBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost:      env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort:      env.GetInt("SERVER_PORT", 8080),
		ShutdownTimeout: env.GetDuration("SHUTDOWN_TIMEOUT_SECONDS", 10, time.Second),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Token generation
		TokenDefaultBitSize:  env.GetInt("TOKEN_DEFAULT_BIT_SIZE", 128),
		TokenDefaultAlphabet: env.GetString("TOKEN_DEFAULT_ALPHABET", "base58"),
		TokenMaxBitSize:      env.GetInt("TOKEN_MAX_BIT_SIZE", 4096),
		TokenMaxBatchSize:    env.GetInt("TOKEN_MAX_BATCH_SIZE", 1000),
		TokenBatchWorkers:    env.GetInt("TOKEN_BATCH_WORKERS", 8),
		TokenHashEnabled:     env.GetBool("TOKEN_HASH_ENABLED", true),

		// Rate Limiting (per IP)
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 10.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 20),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "randtoken"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	default:
		return "release"
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}
