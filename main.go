// main.go
package main

import (
	"context"
	"log"

	"car-rental-booking/cmd"
	"car-rental-booking/internal/data/entity"
	"car-rental-booking/internal/data/repository"
	"car-rental-booking/internal/gateway"
	"car-rental-booking/internal/ledger"
	"car-rental-booking/internal/usecase"
	"car-rental-booking/internal/wire"
	"car-rental-booking/pkg/database"
	"car-rental-booking/pkg/events"
	"car-rental-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
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

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Redis backs the wallet address cache; the repository falls back to
	// the database when it is down, so failure here is not fatal
	cache, err := database.InitRedis(config.Redis)
	if err != nil {
		logger.Warn("Failed to connect to redis, cache disabled", zap.Error(err))
		cache = nil
	}

	// Booking lifecycle events
	publisher := events.NewNoopPublisher()
	if config.NSQ.Enabled {
		publisher, err = events.NewPublisher(config.NSQ.Address, config.NSQ.Topic, logger)
		if err != nil {
			logger.Fatal("Failed to connect to nsq", zap.Error(err))
		}
	}
	defer publisher.Stop()

	// One ledger client per supported wallet network
	ledgers := ledger.Registry{
		entity.NetworkTRX: ledger.NewTronLedger(config.Ledger.TronAPIURL, logger),
	}
	if config.Ledger.EthRPCURL != "" {
		ledgers[entity.NetworkETH] = ledger.NewEthLedger(config.Ledger.EthRPCURL, logger)
	}

	gw := gateway.NewHTTPGateway(config.Gateway.URL, config.Gateway.SecretKey, logger)

	// Initialize all repositories and services
	repos := repository.NewRepository(db, cache, config, logger)
	service := usecase.NewService(repos, gw, ledgers, publisher, config, logger)

	// Background reaper for expired pending bookings
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	service.Checkout.StartReaper(ctx)

	// Wire all dependencies
	app := wire.Wiring(service, repos, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
