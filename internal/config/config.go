package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"healthy-bite-selector/internal/catalog"
	"healthy-bite-selector/internal/planner"
)

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// Config holds the configuration for the application.
type Config struct {
	DataDir         string
	DatabasePath    string
	StorageBackend  string
	UserItemScope   planner.UserItemScope
	DefaultCuisine  catalog.Cuisine
	GenerationDelay time.Duration
	RandomSeed      uint64
	LogLevel        string

	// HTTP API
	Port         string
	APIJWTSecret string
	CORSOrigins  []string

	// Telegram Config
	TelegramBotToken       string
	TelegramWebhookURL     string
	TelegramAllowedUserIDs []int64
	AdminTelegramID        int64
}

// NewFromEnv creates a new Config object from environment variables.
// Every variable is optional; malformed values are rejected.
func NewFromEnv() (*Config, error) {
	dataDir := getEnvOrDefault("DATA_DIR", "data")

	backend := strings.ToLower(getEnvOrDefault("STORAGE_BACKEND", BackendSQLite))
	if backend != BackendSQLite && backend != BackendFile {
		return nil, fmt.Errorf("STORAGE_BACKEND environment variable invalid: %q", backend)
	}

	scope, err := planner.ParseUserItemScope(getEnvOrDefault("USER_ITEM_SCOPE", string(planner.ScopeSnackOnly)))
	if err != nil {
		return nil, fmt.Errorf("USER_ITEM_SCOPE environment variable invalid: %w", err)
	}

	cuisine, err := catalog.ParseCuisine(getEnvOrDefault("DEFAULT_CUISINE", string(catalog.Healthy)))
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_CUISINE environment variable invalid: %w", err)
	}

	delay, err := time.ParseDuration(getEnvOrDefault("GENERATION_DELAY", "0s"))
	if err != nil || delay < 0 {
		return nil, fmt.Errorf("GENERATION_DELAY environment variable invalid: %q", os.Getenv("GENERATION_DELAY"))
	}

	var seed uint64
	if s := os.Getenv("RANDOM_SEED"); s != "" {
		seed, err = strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("RANDOM_SEED environment variable invalid: %w", err)
		}
	}

	allowed, err := parseIDs(os.Getenv("TELEGRAM_ALLOWED_USER_IDS"))
	if err != nil {
		return nil, fmt.Errorf("TELEGRAM_ALLOWED_USER_IDS environment variable invalid: %w", err)
	}

	var adminID int64
	if s := os.Getenv("ADMIN_TELEGRAM_ID"); s != "" {
		adminID, err = strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ADMIN_TELEGRAM_ID environment variable invalid: %w", err)
		}
	}

	return &Config{
		DataDir:                dataDir,
		DatabasePath:           getEnvOrDefault("DATABASE_PATH", filepath.Join(dataDir, "healthy-bite.db")),
		StorageBackend:         backend,
		UserItemScope:          scope,
		DefaultCuisine:         cuisine,
		GenerationDelay:        delay,
		RandomSeed:             seed,
		LogLevel:               getEnvOrDefault("LOG_LEVEL", "info"),
		Port:                   getEnvOrDefault("PORT", "8080"),
		APIJWTSecret:           os.Getenv("API_JWT_SECRET"),
		CORSOrigins:            splitList(os.Getenv("CORS_ORIGINS")),
		TelegramBotToken:       os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL:     os.Getenv("TELEGRAM_WEBHOOK_URL"),
		TelegramAllowedUserIDs: allowed,
		AdminTelegramID:        adminID,
	}, nil
}

// ValidateTelegram checks the variables the chat bot needs.
func (c *Config) ValidateTelegram() error {
	if c.TelegramBotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable not set")
	}
	if c.TelegramWebhookURL == "" {
		return fmt.Errorf("TELEGRAM_WEBHOOK_URL environment variable not set")
	}
	if len(c.TelegramAllowedUserIDs) == 0 {
		return fmt.Errorf("TELEGRAM_ALLOWED_USER_IDS environment variable not set")
	}
	return nil
}

// Seed returns the configured random seed, or a time based one when unset.
func (c *Config) Seed() uint64 {
	if c.RandomSeed != 0 {
		return c.RandomSeed
	}
	return uint64(time.Now().UnixNano())
}

func getEnvOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseIDs(s string) ([]int64, error) {
	var ids []int64
	for _, part := range splitList(s) {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
