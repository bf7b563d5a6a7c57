// Package config provides environment-based configuration and logger setup.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values.
type Config struct {
	// CallHub API defaults
	DefaultAccount string
	BaseURL        string

	// Retry/backoff
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	BackoffFactor  float64

	// HTTP
	HTTPTimeout time.Duration

	// Batch activation
	BatchSize  int
	BatchDelay time.Duration

	// Credentials file
	CredentialsPath string

	// Progress broadcasting (empty = disabled)
	ProgressAddr string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from environment variables.
// Retry defaults follow the CallHub rate-limit guidance: 3 retries starting
// at 2s, doubling up to 60s.
func Load() Config {
	return Config{
		DefaultAccount: getEnv("CALLHUB_ACCOUNT", "default"),
		BaseURL:        getEnv("CALLHUB_BASE_URL", "https://api-na1.callhub.io"),

		MaxRetries:     getEnvInt("CALLHUB_MAX_RETRIES", 3),
		InitialBackoff: getEnvDuration("CALLHUB_INITIAL_BACKOFF", 2*time.Second),
		MaxBackoff:     getEnvDuration("CALLHUB_MAX_BACKOFF", 60*time.Second),
		BackoffFactor:  getEnvFloat("CALLHUB_BACKOFF_FACTOR", 2.0),

		HTTPTimeout: getEnvDuration("CALLHUB_HTTP_TIMEOUT", 30*time.Second),

		BatchSize:  getEnvInt("CALLHUB_BATCH_SIZE", 10),
		BatchDelay: getEnvDuration("CALLHUB_BATCH_DELAY", 500*time.Millisecond),

		CredentialsPath: getEnv("CALLHUB_CREDENTIALS", defaultCredentialsPath()),

		ProgressAddr: getEnv("CALLHUB_PROGRESS_ADDR", ""),

		LogFile:  getEnv("CALLHUB_LOG_FILE", "/tmp/callhub-mcp.log"),
		LogLevel: parseLogLevel(getEnv("CALLHUB_LOG_LEVEL", "INFO")),
	}
}

func defaultCredentialsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "accounts.yaml"
	}
	return filepath.Join(home, ".config", "callhub", "accounts.yaml")
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

// getEnvDuration accepts either a Go duration ("2s", "1m30s") or a bare
// number of seconds, which is what the original env files used.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	if secs, err := strconv.ParseFloat(val, 64); err == nil {
		return time.Duration(secs * float64(time.Second))
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
