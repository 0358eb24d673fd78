package main

import (
	"context"
	"log"

	"cinema-seat-ledger/cmd"
	"cinema-seat-ledger/internal/data/repository"
	"cinema-seat-ledger/internal/usecase"
	"cinema-seat-ledger/internal/wire"
	"cinema-seat-ledger/pkg/cache"
	"cinema-seat-ledger/pkg/database"
	"cinema-seat-ledger/pkg/queue"
	"cinema-seat-ledger/pkg/telemetry"
	"cinema-seat-ledger/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx := context.Background()

	// Database
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	logger.Info("Database connected successfully")

	if config.Database.Migrate {
		if err := database.Migrate(database.DSN(config.Database), logger); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	// Redis (optional)
	redisClient := cache.NewRedisClient(config.Redis, logger)
	if redisClient != nil {
		defer redisClient.Close()
		logger.Info("Redis connected", zap.String("addr", config.Redis.Addr))
	}

	// RabbitMQ (optional)
	events, err := queue.NewRabbitPublisher(config.RabbitMQ.URL, logger)
	if err != nil {
		logger.Warn("RabbitMQ unreachable, events disabled", zap.Error(err))
		events = queue.Nop{}
	}
	defer events.Close()

	// Metrics (optional)
	tel, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName: config.App.Name,
		Endpoint:    config.Telemetry.Endpoint,
	})
	if err != nil {
		logger.Fatal("Failed to init telemetry", zap.Error(err))
	}
	defer func() {
		if err := tel.Shutdown(context.Background()); err != nil {
			logger.Warn("Telemetry shutdown", zap.Error(err))
		}
	}()

	metrics, err := telemetry.NewBookingMetrics(tel.Meter())
	if err != nil {
		logger.Fatal("Failed to create booking metrics", zap.Error(err))
	}

	// Wire all dependencies
	app := wire.Wiring(usecase.Deps{
		Repo:    repository.NewRepository(db, logger),
		Config:  config,
		Cache:   cache.New(redisClient, config.App.Name+":", config.Redis.TTL),
		Events:  events,
		Metrics: metrics,
	}, db.Ping, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, config.App.ShutdownTimeout, logger); err != nil {
		logger.Error("Server error", zap.Error(err))
	}
}
