package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/stockwise/stockwise/internal/config"
	"github.com/stockwise/stockwise/internal/dispatch"
	"github.com/stockwise/stockwise/internal/logging"
	"github.com/stockwise/stockwise/internal/router"
	"github.com/stockwise/stockwise/internal/utils"
)

var (
	Version   = "dev"     // Injected via ldflags during build
	GitCommit = "unknown" // Injected via ldflags during build
	BuildTime = "unknown" // Injected via ldflags during build
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	logger, err := logging.NewFromConfig(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetGlobal(logger)
	logger.Info("Analytics service starting...",
		"version", Version, "commit", GitCommit, "build time", BuildTime)

	// Alert dispatch (broker delivery is optional; disabled yields a no-op)
	dispatcher, err := dispatch.NewDispatcher(cfg.Dispatch, logger)
	if err != nil {
		logger.Fatal("Failed to initialize alert dispatcher", "error", err)
	}
	defer func() { _ = dispatcher.Close() }()
	if cfg.Dispatch.Enabled {
		logger.Info("Alert dispatch enabled",
			"type", cfg.Dispatch.Type, "subject", cfg.Dispatch.Subject)
	} else {
		logger.Info("Alert dispatch disabled - batches are returned to callers only")
	}

	// Initialize router
	app := router.New(logger, dispatcher)

	// Start server in goroutine
	go func() {
		addr := cfg.ListenAddress()
		logger.Info("Server listening", "address", addr)
		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), utils.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
