package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/invoice-ticket-api/internal/app"
	"github.com/sangkips/invoice-ticket-api/internal/config"
	"github.com/sangkips/invoice-ticket-api/internal/infrastructure/database"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger := app.NewLogger(&cfg.App, os.Stdout)
	slog.SetDefault(logger)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Open(&cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed default data
	if err := database.SeedDefaultData(db, &cfg.Admin); err != nil {
		logger.Warn("failed to seed default data", "error", err)
	}

	application := app.New(cfg, db, logger)

	if err := application.Cleanup.Start(); err != nil {
		logger.Error("failed to schedule idempotency cleanup", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           application.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", "service", cfg.App.Name, "port", port, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
	logger.Info("server stopped")
}
