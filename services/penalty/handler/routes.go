package handler

import (
	"github.com/labstack/echo/v4"
	natspkg "github.com/piresc/fleetwatch/internal/pkg/nats"
	"github.com/piresc/fleetwatch/services/penalty"
	httpHandler "github.com/piresc/fleetwatch/services/penalty/handler/http"
	natsHandler "github.com/piresc/fleetwatch/services/penalty/handler/nats"
)

// Handler combines all handlers for the penalty service
type Handler struct {
	penaltyHTTP *httpHandler.PenaltyHandler
	penaltyNATS *natsHandler.PenaltyHandler
}

// NewHandler creates a new combined handler
func NewHandler(
	penaltyUC penalty.PenaltyUC,
	natsClient *natspkg.Client,
	partitions int,
) *Handler {
	return &Handler{
		penaltyHTTP: httpHandler.NewPenaltyHandler(penaltyUC),
		penaltyNATS: natsHandler.NewPenaltyHandler(penaltyUC, natsClient, partitions),
	}
}

// RegisterRoutes registers all HTTP routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	drivers := e.Group("/v1/drivers")
	drivers.GET("/:driverID/penalty-points", h.penaltyHTTP.GetDriverPoints)
}

// InitNATSConsumers initializes all NATS consumers
func (h *Handler) InitNATSConsumers() error {
	return h.penaltyNATS.InitNATSConsumers()
}

// StopNATSConsumers stops delivery and drains the partitions
func (h *Handler) StopNATSConsumers() {
	h.penaltyNATS.Stop()
}
