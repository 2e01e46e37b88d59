package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/fleetwatch/internal/pkg/logger"
	"github.com/piresc/fleetwatch/internal/pkg/middleware"
	"github.com/piresc/fleetwatch/internal/pkg/models"
	nrpkg "github.com/piresc/fleetwatch/internal/pkg/newrelic"
	"github.com/piresc/fleetwatch/internal/utils"
	"github.com/piresc/fleetwatch/services/simulator"
)

// SimulatorHandler handles HTTP requests for trip simulation
type SimulatorHandler struct {
	simulatorUC simulator.SimulatorUC
}

// NewSimulatorHandler creates a new simulator HTTP handler
func NewSimulatorHandler(simulatorUC simulator.SimulatorUC) *SimulatorHandler {
	return &SimulatorHandler{simulatorUC: simulatorUC}
}

// ActiveTripsResponse lists the trips currently simulated
type ActiveTripsResponse struct {
	Count   int      `json:"count"`
	TripIDs []string `json:"trip_ids"`
}

// StartTrip starts simulating a trip posted by an operator
func (h *SimulatorHandler) StartTrip(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Simulator.StartTrip")

	var trip models.Trip
	if err := c.Bind(&trip); err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}
	middleware.SetTripID(c, trip.ID)
	middleware.SetDriverID(c, trip.DriverID)
	if err := trip.Validate(); err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	if err := h.simulatorUC.StartTrip(c.Request().Context(), trip); err != nil {
		logger.Error("Failed to start trip simulation",
			logger.String("trip_id", trip.ID),
			logger.Err(err))
		nrpkg.NoticeTransactionError(txn, err)
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusAccepted, "Trip simulation started", map[string]string{"trip_id": trip.ID})
}

// CancelTrip stops a trip simulation
func (h *SimulatorHandler) CancelTrip(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Simulator.CancelTrip")

	tripID := c.Param("tripID")
	if tripID == "" {
		return utils.BadRequestResponse(c, "Trip ID is required")
	}
	middleware.SetTripID(c, tripID)

	if err := h.simulatorUC.CancelTrip(c.Request().Context(), tripID); err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Trip simulation cancelled", map[string]string{"trip_id": tripID})
}

// ActiveTrips lists the running trip simulations
func (h *SimulatorHandler) ActiveTrips(c echo.Context) error {
	ids := h.simulatorUC.ActiveTripIDs()
	return utils.SuccessResponse(c, http.StatusOK, "", ActiveTripsResponse{Count: len(ids), TripIDs: ids})
}
