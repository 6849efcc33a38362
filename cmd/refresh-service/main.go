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

	"portfolio-tracker/internal/refresher/config"
	"portfolio-tracker/internal/refresher/delivery/consumer"
	delivery "portfolio-tracker/internal/refresher/delivery/http"
	"portfolio-tracker/internal/refresher/repository"
	"portfolio-tracker/internal/refresher/service"
	"portfolio-tracker/internal/refresher/strategy"
	"portfolio-tracker/pkg/common"
	"portfolio-tracker/pkg/logger"
	"portfolio-tracker/pkg/postgres"
	"portfolio-tracker/pkg/redis"
	"portfolio-tracker/pkg/telegram"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the refresh service",
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

	appLogger.Info("Starting Refresh Service", logger.Field("name", cfg.App.Name))

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

	// Initialize Redis
	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	// Create the consumer group if it doesn't exist.
	// MKSTREAM creates the stream if it doesn't exist.
	if err := redisClient.XGroupCreateMkStream(context.Background(), common.RedisStreamRefreshTaskExecution, common.RedisStreamGroup, "0").Err(); err != nil {
		if err.Error() != "BUSYGROUP Consumer Group name already exists" {
			appLogger.Fatal("Failed to create consumer group", logger.ErrorField(err))
		}
	}

	// Initialize repositories
	jobRepo := repository.NewJobRepository(db.DB)
	scheduleRepo := repository.NewScheduleRepository(db.DB)
	runRepo := repository.NewRunRepository(db.DB)
	signalRepo := repository.NewStockSignalRepository(db.DB)
	universeRepo := repository.NewUniverseRepository(db.DB)
	portfolioRepo := repository.NewPortfolioRepository(db.DB)
	yahooRepo := repository.NewYahooFinanceRepository(cfg, appLogger)
	finnhubRepo := repository.NewFinnhubRepository(cfg, appLogger)
	polygonRepo := repository.NewPolygonRepository(cfg, appLogger)
	newsRepo := repository.NewNewsFeedRepository(cfg, appLogger)

	telegramNotifier, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if err != nil {
		appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
	}

	// Initialize strategies
	strategies := []strategy.JobExecutionStrategy{
		strategy.NewSignalPriceUpdateStrategy(
			appLogger,
			universeRepo,
			yahooRepo,
			polygonRepo,
			signalRepo,
			redisClient,
		),
		strategy.NewDailySnapshotStrategy(
			appLogger,
			portfolioRepo,
			signalRepo,
			telegramNotifier,
		),
		strategy.NewResearchRefreshStrategy(
			appLogger,
			universeRepo,
			yahooRepo,
			finnhubRepo,
			newsRepo,
			signalRepo,
		),
		strategy.NewPriceAlertStrategy(
			appLogger,
			portfolioRepo,
			yahooRepo,
			telegramNotifier,
			redisClient,
		),
	}

	// Initialize services
	pollingInterval, err := time.ParseDuration(cfg.Scheduler.PollingInterval)
	if err != nil {
		appLogger.Fatal("Invalid polling interval", logger.ErrorField(err))
	}
	schedulerSvc := service.NewSchedulerService(scheduleRepo, runRepo, redisClient.Client, appLogger, pollingInterval, cfg)
	executorSvc := service.NewExecutorService(redisClient.Client, jobRepo, runRepo, appLogger, strategies)
	jobSvc := service.NewJobService(jobRepo, runRepo, appLogger)

	// Start scheduler and consumer
	go schedulerSvc.Start(ctx)

	redisConsumer := consumer.NewRedisConsumer(cfg, redisClient.Client, executorSvc, appLogger)
	redisConsumer.Start(ctx)

	// Initialize Echo server for the jobs API
	e := echo.New()
	e.HideBanner = true

	jobHandler := delivery.NewJobHandler(jobSvc, appLogger)
	apiV1 := e.Group("/api/v1")
	jobsGroup := apiV1.Group("/jobs")
	jobHandler.RegisterRoutes(jobsGroup)

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

	appLogger.Info("Shutting down refresh service...")
	redisConsumer.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Refresh service stopped")
}

func main() {
	rootCmd := &cobra.Command{Use: "refresh-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-refresher.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing refresh-service CLI: %s\n", err)
		os.Exit(1)
	}
}
