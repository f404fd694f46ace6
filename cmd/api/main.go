// Command api serves the processed match logs over HTTP.
//
// Usage:
//
//	matchlogs-api
//	API_PORT=8080 matchlogs-api

// @title Match Logs API
// @version 1.0.0
// @description Read-only API over the processed per-player match logs and their summaries.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name albapepper
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/matchlogs/internal/api"
	"github.com/albapepper/matchlogs/internal/api/handler"
	"github.com/albapepper/matchlogs/internal/cache"
	"github.com/albapepper/matchlogs/internal/config"
	"github.com/albapepper/matchlogs/internal/db"
	"github.com/albapepper/matchlogs/internal/table"

	_ "github.com/albapepper/matchlogs/docs" // swagger docs
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var logHandler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if cfg.IsProduction() {
		logHandler = slog.NewJSONHandler(os.Stdout, opts)
	}
	logger := slog.New(logHandler)
	slog.SetDefault(logger)

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Database is optional; the API reads the processed tables from disk.
	var pool *db.Pool
	if cfg.DatabaseURL != "" {
		logger.Info("Connecting to database...")
		pool, err = db.New(ctx, cfg)
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		logger.Info("Database connected",
			"min_conns", cfg.DBPoolMinConns,
			"max_conns", cfg.DBPoolMaxConns)
	}

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	store := handler.FileStore{
		Dir:    cfg.ProcessedDir,
		Format: table.Format{Delimiter: cfg.Delimiter, Decimal: cfg.DecimalSeparator},
	}

	// Create router
	router := api.NewRouter(store, pool, appCache, cfg, logger)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Match Logs API",
			"addr", addr,
			"environment", cfg.Environment,
			"processed_dir", cfg.ProcessedDir,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
