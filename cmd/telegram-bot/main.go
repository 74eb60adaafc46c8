package main

import (
	"context"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"menu-planner/internal/app"
	"menu-planner/internal/config"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load(os.Getenv("MENU_CONFIG_FILE"))
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg.App.LogLevel, true)
	slog.SetDefault(logger)

	ctx := context.Background()

	// 2. Open storage and services
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize app", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer a.Close()

	// 3. Serve the webhook until a signal arrives
	if err := a.Serve(ctx, app.ServeOptions{Bot: true}); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
