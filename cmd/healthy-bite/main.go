package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"healthy-bite-selector/internal/app"
	"healthy-bite-selector/internal/config"
	"healthy-bite-selector/internal/logging"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	application, closeStore, err := app.Bootstrap(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	ctx := app.WithSource(context.Background(), "cli")
	err = run(ctx, application, cfg, os.Args[1:], os.Stdout)
	if cerr := closeStore(); cerr != nil {
		logger.Warn("failed to close storage", zap.Error(cerr))
	}
	if errors.Is(err, errUsage) {
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: healthy-bite <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  add <food>           Add a food item to your list")
	fmt.Println("  remove <n>           Remove item n (as shown by list)")
	fmt.Println("  list                 Show your food items")
	fmt.Println("  pick                 Pick a random food item")
	fmt.Println("  import <url>         Add the list items of a web page")
	fmt.Println("  plan [flags]         Generate a meal plan (-h for flags)")
	fmt.Println("  shopping             Show the shopping list of the current plan")
	fmt.Println("  export [-o file]     Write the current plan to a spreadsheet")
	fmt.Println("  favorites <list|add|remove>")
	fmt.Println("                       Manage favorite dishes")
	fmt.Println("  history [-all]       Show recently planned days")
	fmt.Println("  metrics-cleanup      Remove old metric records")
	fmt.Println("  token                Issue an API token")
}
