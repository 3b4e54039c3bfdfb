package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath       string // empty means the default data directory
	CatalogPath  string // empty means the embedded catalog
	LogLevel     string
	SaveDebounce time.Duration
	QuizSize     int
	StorageQuota int64 // bytes, 0 = unlimited
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent.
	_ = godotenv.Load()

	return Config{
		DBPath:       os.Getenv("WORDIZ_DB"),
		CatalogPath:  os.Getenv("WORDIZ_CATALOG"),
		LogLevel:     envOr("WORDIZ_LOG_LEVEL", "info"),
		SaveDebounce: envDurationOr("WORDIZ_SAVE_DEBOUNCE", 300*time.Millisecond),
		QuizSize:     envIntOr("WORDIZ_QUIZ_SIZE", 10),
		StorageQuota: int64(envIntOr("WORDIZ_STORAGE_QUOTA", 0)),
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.SaveDebounce < 0 {
		return errors.New("WORDIZ_SAVE_DEBOUNCE cannot be negative")
	}
	if c.QuizSize <= 0 {
		return fmt.Errorf("WORDIZ_QUIZ_SIZE must be positive, got %d", c.QuizSize)
	}
	if c.StorageQuota < 0 {
		return errors.New("WORDIZ_STORAGE_QUOTA cannot be negative")
	}
	return nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
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
		slog.Warn("invalid config value, using default", "key", key, "value", v, "default", def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		slog.Warn("invalid config value, using default", "key", key, "value", v, "default", def)
	}
	return def
}
