// Package main implements the entry point for the product description
// service: a synchronous generation endpoint plus batch processing of
// Shoper product identifiers into XLSX reports.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/mamyzabawki/descgen-api/internal/config"
	"github.com/mamyzabawki/descgen-api/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

// run loads configuration, wires the application, and serves until
// shutdown.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server)
	appLogger.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"provider", cfg.LLM.Provider,
		"model", cfg.LLM.Model,
		"workers", cfg.Batch.Workers)

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	app.pool.Start()

	return app.startHTTPServer(ctx, app.setupRouter())
}
