// Package main implements the entry point for the storefront API server:
// user accounts with token authentication, a product catalog, shopping
// carts, and checkout.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/calebhs/storefront-api/internal/config"
	"github.com/calebhs/storefront-api/internal/migrations"
	"github.com/calebhs/storefront-api/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Setup(cfg.Server.LogLevel)
	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupDatabase(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	if err := migrations.Run(context.Background(), db); err != nil {
		return err
	}
	slog.Info("migrations applied")

	app, err := newApplication(cfg, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.startHTTPServer(context.Background(), app.setupRouter())
}
