package config

import (
	"strings"
	"testing"
	"time"

	"healthy-bite-selector/internal/catalog"
	"healthy-bite-selector/internal/planner"
)

var allVars = []string{
	"DATA_DIR", "DATABASE_PATH", "STORAGE_BACKEND", "USER_ITEM_SCOPE", "DEFAULT_CUISINE",
	"GENERATION_DELAY", "RANDOM_SEED", "LOG_LEVEL", "PORT", "API_JWT_SECRET", "CORS_ORIGINS",
	"TELEGRAM_BOT_TOKEN", "TELEGRAM_WEBHOOK_URL", "TELEGRAM_ALLOWED_USER_IDS", "ADMIN_TELEGRAM_ID",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allVars {
		t.Setenv(k, "")
	}
}

func TestNewFromEnv(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		clearEnv(t)

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DataDir != "data" {
			t.Errorf("Expected DataDir to be 'data', got '%s'", cfg.DataDir)
		}
		if cfg.DatabasePath != "data/healthy-bite.db" {
			t.Errorf("Expected DatabasePath to be 'data/healthy-bite.db', got '%s'", cfg.DatabasePath)
		}
		if cfg.StorageBackend != BackendSQLite {
			t.Errorf("Expected StorageBackend to be 'sqlite', got '%s'", cfg.StorageBackend)
		}
		if cfg.UserItemScope != planner.ScopeSnackOnly {
			t.Errorf("Expected UserItemScope to be 'snack_only', got '%s'", cfg.UserItemScope)
		}
		if cfg.DefaultCuisine != catalog.Healthy {
			t.Errorf("Expected DefaultCuisine to be 'healthy', got '%s'", cfg.DefaultCuisine)
		}
		if cfg.GenerationDelay != 0 {
			t.Errorf("Expected no generation delay, got %v", cfg.GenerationDelay)
		}
		if cfg.Port != "8080" {
			t.Errorf("Expected Port to be '8080', got '%s'", cfg.Port)
		}
	})

	t.Run("Success", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DATA_DIR", "/tmp/bite")
		t.Setenv("STORAGE_BACKEND", "FILE")
		t.Setenv("USER_ITEM_SCOPE", "all_categories")
		t.Setenv("DEFAULT_CUISINE", "Indian")
		t.Setenv("GENERATION_DELAY", "1500ms")
		t.Setenv("RANDOM_SEED", "42")
		t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
		t.Setenv("TELEGRAM_ALLOWED_USER_IDS", "1, 2,3")
		t.Setenv("ADMIN_TELEGRAM_ID", "1")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DatabasePath != "/tmp/bite/healthy-bite.db" {
			t.Errorf("Expected database under DATA_DIR, got '%s'", cfg.DatabasePath)
		}
		if cfg.StorageBackend != BackendFile {
			t.Errorf("Expected StorageBackend to be 'file', got '%s'", cfg.StorageBackend)
		}
		if cfg.UserItemScope != planner.ScopeAllCategories {
			t.Errorf("Expected all_categories, got '%s'", cfg.UserItemScope)
		}
		if cfg.DefaultCuisine != catalog.Indian {
			t.Errorf("Expected indian, got '%s'", cfg.DefaultCuisine)
		}
		if cfg.GenerationDelay != 1500*time.Millisecond {
			t.Errorf("Expected 1.5s delay, got %v", cfg.GenerationDelay)
		}
		if cfg.Seed() != 42 {
			t.Errorf("Expected seed 42, got %d", cfg.Seed())
		}
		if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
			t.Errorf("Unexpected CORS origins: %v", cfg.CORSOrigins)
		}
		if len(cfg.TelegramAllowedUserIDs) != 3 || cfg.TelegramAllowedUserIDs[2] != 3 {
			t.Errorf("Unexpected allowed ids: %v", cfg.TelegramAllowedUserIDs)
		}
	})

	invalid := map[string]string{
		"STORAGE_BACKEND":           "postgres",
		"USER_ITEM_SCOPE":           "lunch_only",
		"DEFAULT_CUISINE":           "thai",
		"GENERATION_DELAY":          "soon",
		"RANDOM_SEED":               "-1",
		"TELEGRAM_ALLOWED_USER_IDS": "1,abc",
		"ADMIN_TELEGRAM_ID":         "root",
	}
	for key, value := range invalid {
		t.Run("Invalid"+key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)

			_, err := NewFromEnv()
			if err == nil {
				t.Fatalf("Expected an error for %s=%s, got nil", key, value)
			}
			expected := key + " environment variable invalid"
			if !strings.HasPrefix(err.Error(), expected) {
				t.Errorf("Expected error starting with '%s', got '%s'", expected, err.Error())
			}
		})
	}
}

func TestValidateTelegram(t *testing.T) {
	cfg := &Config{}
	if err := cfg.ValidateTelegram(); err == nil || err.Error() != "TELEGRAM_BOT_TOKEN environment variable not set" {
		t.Errorf("Expected missing token error, got %v", err)
	}

	cfg.TelegramBotToken = "token"
	if err := cfg.ValidateTelegram(); err == nil || err.Error() != "TELEGRAM_WEBHOOK_URL environment variable not set" {
		t.Errorf("Expected missing webhook error, got %v", err)
	}

	cfg.TelegramWebhookURL = "https://bot.test/webhook"
	if err := cfg.ValidateTelegram(); err == nil {
		t.Error("Expected missing allow-list error, got nil")
	}

	cfg.TelegramAllowedUserIDs = []int64{7}
	if err := cfg.ValidateTelegram(); err != nil {
		t.Errorf("Expected valid telegram config, got %v", err)
	}
}
