package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-tracker/internal/api/config"
	delivery "portfolio-tracker/internal/api/delivery/http"
	"portfolio-tracker/internal/api/repository"
	"portfolio-tracker/internal/api/service"
	"portfolio-tracker/pkg/logger"
	"portfolio-tracker/pkg/postgres"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the portfolio API service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting API Service", logger.Field("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize repositories
	portfolioRepo := repository.NewPortfolioRepository(db.DB)
	holdingRepo := repository.NewHoldingRepository(db.DB)
	transactionRepo := repository.NewTransactionRepository(db.DB)
	watchlistRepo := repository.NewWatchlistRepository(db.DB)
	stocksRepo := repository.NewStocksRepository(db.DB)
	signalRepo := repository.NewStockSignalRepository(db.DB)
	snapshotRepo := repository.NewSnapshotRepository(db.DB)

	// Initialize services
	portfolioSvc := service.NewPortfolioService(portfolioRepo, signalRepo, snapshotRepo, appLogger)
	transactionSvc := service.NewTransactionService(transactionRepo, holdingRepo, appLogger)
	watchlistSvc := service.NewWatchlistService(watchlistRepo, appLogger)
	stockSvc := service.NewStockService(stocksRepo, appLogger)
	researchSvc := service.NewResearchService(signalRepo, appLogger)

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	// Initialize handlers and routes
	apiV1 := e.Group("/api/v1")

	portfolioHandler := delivery.NewPortfolioHandler(portfolioSvc, appLogger)
	portfoliosGroup := apiV1.Group("/portfolios")
	portfolioHandler.RegisterRoutes(portfoliosGroup)

	transactionHandler := delivery.NewTransactionHandler(transactionSvc, appLogger)
	transactionsGroup := apiV1.Group("/portfolios/:id/transactions")
	transactionHandler.RegisterRoutes(transactionsGroup)

	watchlistHandler := delivery.NewWatchlistHandler(watchlistSvc, appLogger)
	watchlistsGroup := apiV1.Group("/watchlists")
	watchlistHandler.RegisterRoutes(watchlistsGroup)

	stockHandler := delivery.NewStockHandler(stockSvc, researchSvc, appLogger)
	stocksGroup := apiV1.Group("/stocks")
	stockHandler.RegisterRoutes(stocksGroup)

	e.GET("/swagger/*", swagger.WrapHandler)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// @title Portfolio Tracker API
// @version 1.0
// @description Personal investment portfolio tracking and stock research API.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "api-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-api.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing api-service CLI: %s\n", err)
		os.Exit(1)
	}
}
