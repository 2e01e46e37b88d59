package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/fleetwatch/internal/pkg/config"
	"github.com/piresc/fleetwatch/internal/pkg/constants"
	"github.com/piresc/fleetwatch/internal/pkg/database"
	"github.com/piresc/fleetwatch/internal/pkg/geo"
	"github.com/piresc/fleetwatch/internal/pkg/health"
	"github.com/piresc/fleetwatch/internal/pkg/logger"
	"github.com/piresc/fleetwatch/internal/pkg/middleware"
	"github.com/piresc/fleetwatch/internal/pkg/nats"
	nrpkg "github.com/piresc/fleetwatch/internal/pkg/newrelic"
	"github.com/piresc/fleetwatch/internal/pkg/server"
	"github.com/piresc/fleetwatch/services/penalty"
	"github.com/piresc/fleetwatch/services/penalty/gateway"
	"github.com/piresc/fleetwatch/services/penalty/handler"
	"github.com/piresc/fleetwatch/services/penalty/repository"
	"github.com/piresc/fleetwatch/services/penalty/usecase"
)

func main() {
	appName := "penalty-service"
	configPath := "config/penalty.env"
	configs := config.InitConfig(configPath)

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()

	logger.SetGlobalLogger(zapLogger)

	logger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
		logger.String("cache_backend", configs.Penalty.CacheBackend),
		logger.String("store_backend", configs.Penalty.StoreBackend),
		logger.Int("partitions", configs.Penalty.Partitions),
	)

	// Initialize JetStream-enabled NATS client
	natsClient, err := nats.NewClient(configs.NATS.URL)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NATS with JetStream", logger.Err(err))
	}
	if err := natsClient.EnsureStreams(nats.DefaultStreamConfigs()); err != nil {
		zapLogger.Fatal("Failed to create JetStream streams", logger.Err(err))
	}

	healthService := health.NewHealthService(zapLogger)
	healthService.AddChecker("nats", health.NewNATSHealthChecker(natsClient,
		constants.StreamPosition, constants.StreamPenalty, constants.StreamDriverPenalty))

	var closers []func() error

	// Position cache
	var cache penalty.PositionCache
	switch configs.Penalty.CacheBackend {
	case "redis":
		redisClient, err := database.NewRedisClient(configs.Redis)
		if err != nil {
			zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
		}
		closers = append(closers, redisClient.Close)
		cache = repository.NewRedisPositionCache(redisClient, configs.Penalty.PositionTTL)
		healthService.AddChecker("redis", health.NewRedisHealthChecker(redisClient))
	default:
		cache = repository.NewMemoryPositionCache()
	}

	// Totals store
	var totals penalty.TotalsRepo
	durable := true
	switch configs.Penalty.StoreBackend {
	case "postgres":
		postgresClient, err := database.NewPostgresClient(configs.Database)
		if err != nil {
			zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
		}
		if err := postgresClient.MigrateUp(); err != nil {
			zapLogger.Fatal("Failed to run migrations", logger.Err(err))
		}
		closers = append(closers, postgresClient.Close)
		totals = repository.NewPostgresTotalsRepo(postgresClient.GetDB())
		healthService.AddChecker("postgres", health.NewPostgresHealthChecker(postgresClient))
	case "memory":
		totals = repository.NewMemoryTotalsRepo()
		durable = false
	default:
		kv, err := natsClient.KeyValue(context.Background(), constants.BucketDriverPenaltyPoints)
		if err != nil {
			zapLogger.Fatal("Failed to open totals bucket", logger.Err(err))
		}
		totals = repository.NewKVTotalsRepo(kv)
	}

	// Initialize gateways
	producer, err := nats.NewProducer(natsClient)
	if err != nil {
		zapLogger.Fatal("Failed to create JetStream producer", logger.Err(err))
	}
	penaltyGW := gateway.NewPenaltyGW(producer, gateway.DefaultPublishRetry())
	penaltyLog := gateway.NewPenaltyLogReader(natsClient.GetJetStream(), constants.ConsumerPenaltyAggregator)

	// Initialize usecase
	classifier, err := usecase.NewClassifier(configs.Penalty.Tiers)
	if err != nil {
		zapLogger.Fatal("Invalid penalty tiers", logger.Err(err))
	}
	estimator := usecase.NewSpeedEstimator(geo.NewEngine(configs.Geo.ArrivalThresholdKm), cache, configs.Penalty.MinDisplacementKm)
	aggregator := usecase.NewAggregator(totals, penaltyGW, penaltyLog, usecase.DefaultStoreRetry(), durable)
	penaltyUC := usecase.NewPenaltyUC(estimator, classifier, aggregator, penaltyGW, nrApp)

	// Replay before the live consumer folds anything
	recovered, err := penaltyUC.Recover(context.Background())
	if err != nil {
		zapLogger.Fatal("Failed to recover driver totals", logger.Err(err))
	}
	logger.Info("Driver totals recovered", logger.Int("events", recovered))

	// Initialize handlers
	penaltyHandler := handler.NewHandler(penaltyUC, natsClient, configs.Penalty.Partitions)
	if err := penaltyHandler.InitNATSConsumers(); err != nil {
		zapLogger.Fatal("Failed to initialize NATS consumers", logger.Err(err))
	}

	// Initialize Echo server (panic recovery first)
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))
	e.Use(middleware.RequestIDMiddleware())
	e.Use(nrpkg.EchoMiddleware(nrApp))
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	health.RegisterHealthEndpoints(e, appName, configs.App.Version, healthService)
	penaltyHandler.RegisterRoutes(e)

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port).
		WithShutdownTimeout(time.Duration(configs.Server.ShutdownTimeout) * time.Second)

	// Components stop in registration order
	components := srv.Components()
	components.Register("nats-consumers", func(context.Context) error {
		penaltyHandler.StopNATSConsumers()
		return nil
	})
	components.Register("stores", func(context.Context) error {
		var errs []error
		for _, closeFn := range closers {
			errs = append(errs, closeFn())
		}
		return errors.Join(errs...)
	})
	components.Register("nats", func(context.Context) error {
		natsClient.Close()
		return nil
	})
	if nrApp != nil {
		components.Register("newrelic", func(context.Context) error {
			nrApp.Shutdown(10 * time.Second)
			return nil
		})
	}

	if err := srv.Run(context.Background()); err != nil {
		zapLogger.Error("Server exited with error", logger.Err(err))
	}
	zapLogger.Info("Server exiting gracefully")
}
