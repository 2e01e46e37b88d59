package main

import (
	"context"
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
	"github.com/piresc/fleetwatch/services/simulator"
	"github.com/piresc/fleetwatch/services/simulator/gateway"
	"github.com/piresc/fleetwatch/services/simulator/handler"
	"github.com/piresc/fleetwatch/services/simulator/repository"
	"github.com/piresc/fleetwatch/services/simulator/usecase"
)

func main() {
	appName := "simulator-service"
	configPath := "config/simulator.env"
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
		logger.Duration("tick_interval", configs.Simulator.TickInterval),
		logger.String("state_backend", configs.Simulator.StateBackend),
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
	healthService.AddChecker("nats", health.NewNATSHealthChecker(natsClient, constants.StreamTrip, constants.StreamPosition))

	// Initialize repository
	var (
		stateRepo   simulator.StateRepo
		redisClient *database.RedisClient
	)
	switch configs.Simulator.StateBackend {
	case "redis":
		redisClient, err = database.NewRedisClient(configs.Redis)
		if err != nil {
			zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
		}
		stateRepo = repository.NewRedisStateRepo(redisClient)
		healthService.AddChecker("redis", health.NewRedisHealthChecker(redisClient))
	default:
		stateRepo = repository.NewMemoryStateRepo()
	}

	// Initialize gateway
	producer, err := nats.NewProducer(natsClient)
	if err != nil {
		zapLogger.Fatal("Failed to create JetStream producer", logger.Err(err))
	}
	heartbeatGW := gateway.NewHeartbeatGW(producer, gateway.DefaultPublishRetry(), nil)
	healthService.AddChecker("heartbeat_publisher", health.NewBreakerHealthChecker(heartbeatGW.Breaker()))

	// Initialize usecase
	simulatorUC, err := usecase.NewSimulatorUC(configs.Simulator, geo.NewEngine(configs.Geo.ArrivalThresholdKm),
		stateRepo, heartbeatGW, usecase.WithNewRelic(nrApp))
	if err != nil {
		zapLogger.Fatal("Failed to initialize simulator use case", logger.Err(err))
	}

	resumed, err := simulatorUC.Resume(context.Background())
	if err != nil {
		zapLogger.Fatal("Failed to resume simulations", logger.Err(err))
	}
	logger.Info("Simulations resumed", logger.Int("trips", resumed))

	healthService.SetInfo(func() map[string]interface{} {
		return map[string]interface{}{"active_trips": simulatorUC.ActiveTrips()}
	})

	// Initialize handlers
	simulatorHandler := handler.NewHandler(simulatorUC, natsClient, nrApp)
	if err := simulatorHandler.InitNATSConsumers(); err != nil {
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
	simulatorHandler.RegisterRoutes(e)

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port).
		WithShutdownTimeout(time.Duration(configs.Server.ShutdownTimeout) * time.Second)

	// Components stop in registration order
	components := srv.Components()
	components.Register("nats-consumers", func(context.Context) error {
		simulatorHandler.StopNATSConsumers()
		return nil
	})
	components.Register("simulations", simulatorUC.Shutdown)
	if redisClient != nil {
		components.Register("redis", func(context.Context) error {
			return redisClient.Close()
		})
	}
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
