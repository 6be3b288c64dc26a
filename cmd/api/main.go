package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/logger"
	timeProvider "github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/bootstrap"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/config"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewFromConfig(cfg.Logger.Format, cfg.Logger.Level)
	defer func() { _ = appLogger.Flush() }()

	tp := timeProvider.NewRealTimeProvider()

	// Connect the store, run migrations and build the use cases
	app, err := bootstrap.New(context.Background(), cfg, appLogger, tp, bootstrap.Options{Migrate: true})
	if err != nil {
		appLogger.Error("Failed to initialize application", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			appLogger.Error("Failed to release resources", map[string]any{"error": err.Error()})
		}
	}()

	// Initialize API handlers
	formatter := dto.NewMoneyFormatter(cfg.Currency.Code)
	handlers := routes.Handlers{
		User:        handler.NewUserHandler(app.Users, appLogger),
		Account:     handler.NewAccountHandler(app.Accounts, formatter, appLogger),
		Transaction: handler.NewTransactionHandler(app.Transactions, formatter, appLogger),
		Health:      handler.NewHealthHandler(app.Store),
	}

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger, tp)
	routes.SetupRoutes(router, handlers, app.Users, appLogger)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr":     server.Addr,
			"env":      cfg.Environment,
			"driver":   cfg.Database.Driver,
			"currency": formatter.Currency(),
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		appLogger.Error("Server failed", map[string]any{"error": err.Error()})
	}

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}
