package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"healthy-bite-selector/internal/api"
	"healthy-bite-selector/internal/app"
	"healthy-bite-selector/internal/config"
	"healthy-bite-selector/internal/logging"
	"healthy-bite-selector/internal/telegram"
)

// webhookPath is where Telegram delivers updates.
const webhookPath = "/telegram/webhook"

func main() {
	// 1. Load Configuration
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// 2. Initialize Storage and Services
	application, closeStore, err := app.Bootstrap(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}
	defer closeStore()

	// 3. Initialize HTTP API
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.APIJWTSecret == "" {
		logger.Warn("API_JWT_SECRET not set, /api is unauthenticated")
	}
	router := api.NewRouter(application, api.RouterOptions{
		JWTSecret:   cfg.APIJWTSecret,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
	})

	// 4. Initialize Telegram Bot (optional)
	var bot *telegram.Bot
	if cfg.TelegramBotToken != "" {
		if err := cfg.ValidateTelegram(); err != nil {
			logger.Fatal("invalid telegram configuration", zap.Error(err))
		}
		bot, err = telegram.NewBot(cfg, application, logger)
		if err != nil {
			logger.Fatal("failed to initialize telegram bot", zap.Error(err))
		}
		router.POST(webhookPath, gin.WrapF(bot.HandleWebhook))
	}

	// 5. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	// Updates still in flight must finish before storage is closed.
	if bot != nil {
		bot.Wait()
	}

	logger.Info("server exiting")
}
