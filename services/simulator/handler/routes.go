package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	natspkg "github.com/piresc/fleetwatch/internal/pkg/nats"
	"github.com/piresc/fleetwatch/services/simulator"
	httpHandler "github.com/piresc/fleetwatch/services/simulator/handler/http"
	natsHandler "github.com/piresc/fleetwatch/services/simulator/handler/nats"
)

// Handler combines all handlers for the simulator service
type Handler struct {
	simulatorHTTP *httpHandler.SimulatorHandler
	simulatorNATS *natsHandler.SimulatorHandler
}

// NewHandler creates a new combined handler
func NewHandler(
	simulatorUC simulator.SimulatorUC,
	natsClient *natspkg.Client,
	nrApp *newrelic.Application,
) *Handler {
	return &Handler{
		simulatorHTTP: httpHandler.NewSimulatorHandler(simulatorUC),
		simulatorNATS: natsHandler.NewSimulatorHandler(simulatorUC, natsClient, nrApp),
	}
}

// RegisterRoutes registers all HTTP routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	trips := e.Group("/v1/trips")
	trips.POST("", h.simulatorHTTP.StartTrip)
	trips.GET("/active", h.simulatorHTTP.ActiveTrips)
	trips.DELETE("/:tripID", h.simulatorHTTP.CancelTrip)
}

// InitNATSConsumers initializes all NATS consumers
func (h *Handler) InitNATSConsumers() error {
	return h.simulatorNATS.InitNATSConsumers()
}

// StopNATSConsumers stops message delivery
func (h *Handler) StopNATSConsumers() {
	h.simulatorNATS.Stop()
}
