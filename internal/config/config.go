package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/logger"
)

type Config struct {
	Addr                string
	DBPath              string
	LogLevel            string
	SuggestURL          string
	SuggestTimeout      time.Duration
	InferURL            string
	InferTimeout        time.Duration
	SessionLimit        int
	GestureConfidence   float64
	GesturePollInterval time.Duration
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                envOr("ADDR", ":8080"),
		DBPath:              envOr("DB_PATH", "file:flashcards.db"),
		LogLevel:            envOr("LOG_LEVEL", "INFO"),
		SuggestURL:          envOr("SUGGEST_URL", ""),
		SuggestTimeout:      envDurationOr("SUGGEST_TIMEOUT", 10*time.Second),
		InferURL:            envOr("INFER_URL", ""),
		InferTimeout:        envDurationOr("INFER_TIMEOUT", 5*time.Second),
		SessionLimit:        envIntOr("SESSION_LIMIT", 20),
		GestureConfidence:   envFloatOr("GESTURE_CONFIDENCE", 0.85),
		GesturePollInterval: envDurationOr("GESTURE_POLL_INTERVAL", 200*time.Millisecond),
	}
}

// Validate checks the configuration for values that would break startup,
// collecting every problem into a single error.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not a valid level", c.LogLevel))
	}
	if c.SessionLimit < 0 {
		problems = append(problems, "SESSION_LIMIT cannot be negative")
	}
	if c.GestureConfidence < 0 || c.GestureConfidence > 1 {
		problems = append(problems, "GESTURE_CONFIDENCE must be between 0 and 1")
	}
	if c.GesturePollInterval <= 0 {
		problems = append(problems, "GESTURE_POLL_INTERVAL must be positive")
	}
	if c.SuggestTimeout <= 0 {
		problems = append(problems, "SUGGEST_TIMEOUT must be positive")
	}
	if c.InferTimeout <= 0 {
		problems = append(problems, "INFER_TIMEOUT must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		logger.Default().Warn("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envFloatOr(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		logger.Default().Warn("invalid value for %s=%q, using default %g", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		logger.Default().Warn("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}
